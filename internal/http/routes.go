package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/tazhibayda/threads-service/internal/security"
)

type RouterConfig struct {
	ServiceName     string
	RateLimitPerMin int
}

func NewRouter(h *Handler, auth security.Verifier, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Trace(cfg.ServiceName))
	r.Use(Metrics())
	r.Use(AccessLog())

	rl := NewRateLimiter(cfg.RateLimitPerMin, time.Minute)

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.NoRoute(func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{"error": "not found"}) })

	api := r.Group("/api")
	{
		api.GET("/feed", OptionalAuth(auth), h.ListFeed)
		api.GET("/profile", AuthJWT(auth), h.GetProfile)
		api.POST("/profile", AuthJWT(auth), RateLimitSubmit(rl), h.SaveProfile)
		api.GET("/users", AuthJWT(auth), h.ListUsers)
		api.GET("/users/:id", h.GetUser)
		api.GET("/users/:id/threads", h.GetUserThreads)
		api.GET("/activity", AuthJWT(auth), h.GetActivity)
	}
	return r
}
