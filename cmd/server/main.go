package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/threads-service/docs"
	"github.com/tazhibayda/threads-service/internal/cache"
	"github.com/tazhibayda/threads-service/internal/config"
	api "github.com/tazhibayda/threads-service/internal/http"
	"github.com/tazhibayda/threads-service/internal/log"
	"github.com/tazhibayda/threads-service/internal/metrics"
	"github.com/tazhibayda/threads-service/internal/queue"
	"github.com/tazhibayda/threads-service/internal/repo"
	"github.com/tazhibayda/threads-service/internal/security"
	"github.com/tazhibayda/threads-service/internal/service"
	"go.uber.org/zap"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

var _ service.Store = (*repo.Store)(nil)

// @title Threads API
// @version 0.1.0
// @description Profiles, user directory, threads and activity.
// @schemes http https
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	logger, err := log.Init(cfg.Production)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.DDEnabled {
		tracer.Start(tracer.WithService(cfg.ServiceName))
		defer tracer.Stop()
	}
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Fatal("ensure indexes", zap.Error(err))
	}

	var rc *cache.RenderCache
	if cfg.RedisAddr != "" {
		rc = cache.NewRender(cfg.RedisAddr, time.Duration(cfg.RenderCacheTTLSeconds)*time.Second)
		if err := rc.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, render cache disabled", zap.Error(err))
			_ = rc.Close()
			rc = nil
		} else {
			defer rc.Close()
		}
	}

	pub := queue.NewNoop()
	if cfg.RabbitURL != "" {
		p, err := queue.NewRabbit(cfg.RabbitURL, cfg.Exchange)
		if err != nil {
			logger.Fatal("rabbit publisher", zap.Error(err))
		}
		pub = p
	}
	defer pub.Close()

	jwks := security.NewFetcher(cfg.AuthJWKSURL, time.Duration(cfg.JWKSCacheSeconds)*time.Second)

	docs.SwaggerInfo.BasePath = "/"
	metrics.MustRegister()

	profiles := service.NewProfileService(store, rc, pub, cfg.Exchange)
	h := api.NewHandler(store, store, rc, profiles)
	r := api.NewRouter(h, jwks, api.RouterConfig{ServiceName: cfg.ServiceName, RateLimitPerMin: cfg.RateLimitPerMin})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	srvErr := make(chan error, 1)
	go func() { srvErr <- srv.ListenAndServe() }()

	logger.Info("threads-service listening", zap.String("port", cfg.Port), zap.Bool("render_cache", rc != nil))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("shutting down", zap.String("signal", s.String()))
	case err := <-srvErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", zap.Error(err))
	}
}
