package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/threads-service/internal/apperr"
	"github.com/tazhibayda/threads-service/internal/cache"
	"github.com/tazhibayda/threads-service/internal/domain"
	"github.com/tazhibayda/threads-service/internal/log"
	"github.com/tazhibayda/threads-service/internal/metrics"
	"github.com/tazhibayda/threads-service/internal/service"
	"go.uber.org/zap"
)

// feedPath is the page the feed rendering is cached under.
const feedPath = "/"

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Profiles  *service.ProfileService
	Directory *service.DirectoryService
	Content   *service.ContentService
	Activity  *service.ActivityService
	Feed      *service.FeedService
	Cache     *cache.RenderCache // nil disables render caching
	DB        Pinger
}

// NewHandler wires the services over store. rc may be nil.
func NewHandler(store service.Store, db Pinger, rc *cache.RenderCache, profiles *service.ProfileService) *Handler {
	return &Handler{
		Profiles:  profiles,
		Directory: service.NewDirectoryService(store),
		Content:   service.NewContentService(store),
		Activity:  service.NewActivityService(store, store),
		Feed:      service.NewFeedService(store),
		Cache:     rc,
		DB:        db,
	}
}

// Healthz godoc
// @Summary Liveness and database check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	if h.DB != nil {
		if err := h.DB.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListFeed godoc
// @Summary Top-level posts, newest first
// @Tags threads
// @Produce json
// @Param page query int false "page number, 1-based"
// @Param size query int false "page size (default 20, max 100)"
// @Success 200 {object} domain.FeedPage
// @Failure 400 {object} map[string]string
// @Router /api/feed [get]
func (h *Handler) ListFeed(c *gin.Context) {
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	viewer := c.GetString(ctxUID)
	if viewer == "" {
		viewer = "anon"
	}
	variant := viewer + ":" + strconv.Itoa(page) + ":" + strconv.Itoa(size)
	h.cached(c, feedPath, variant, func(ctx context.Context) (any, error) {
		return h.Feed.ListFeed(ctx, page, size)
	})
}

// GetProfile godoc
// @Summary The signed-in user's profile for editing
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.UserProfile
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	uid := c.GetString(ctxUID)
	h.cached(c, service.ProfileEditPath, uid, func(ctx context.Context) (any, error) {
		p, err := h.Content.GetUser(ctx, uid)
		if err == nil && p == nil {
			return nil, apperr.NotFound("user", uid)
		}
		return p, err
	})
}

type saveProfileReq struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
	Path     string `json:"path"` // page the form was submitted from
}

// SaveProfile godoc
// @Summary Create or update the signed-in user's profile
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Param payload body saveProfileReq true "profile"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /api/profile [post]
func (h *Handler) SaveProfile(c *gin.Context) {
	var in saveProfileReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	err := h.Profiles.SaveProfile(c.Request.Context(), service.ProfileInput{
		ExternalID: c.GetString(ctxUID),
		Username:   strings.TrimSpace(in.Username),
		Name:       strings.TrimSpace(in.Name),
		Bio:        in.Bio,
		Image:      strings.TrimSpace(in.Image),
		Path:       in.Path,
		RequestID:  c.GetString(headerRequestID),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUsers godoc
// @Summary Search other users
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param q query string false "case-insensitive substring of username or name"
// @Param page query int false "page number, 1-based"
// @Param size query int false "page size (default 30, max 100)"
// @Param sort query string false "asc or desc on creation time"
// @Success 200 {object} domain.UserPage
// @Failure 400 {object} map[string]string
// @Router /api/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	res, err := h.Directory.ListUsers(c.Request.Context(), service.ListUsersInput{
		ExcludeExternalID: c.GetString(ctxUID),
		Search:            c.Query("q"),
		Page:              page,
		Size:              size,
		Sort:              domain.ParseSortOrder(c.Query("sort")),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetUser godoc
// @Summary Public profile with communities
// @Tags users
// @Produce json
// @Param id path string true "external user id"
// @Success 200 {object} domain.UserProfile
// @Failure 404 {object} map[string]string
// @Router /api/users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	id := c.Param("id")
	res, err := h.Content.GetUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if res == nil {
		h.fail(c, apperr.NotFound("user", id))
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetUserThreads godoc
// @Summary A user's threads with communities, replies and reply authors
// @Tags users
// @Produce json
// @Param id path string true "external user id"
// @Success 200 {object} domain.UserThreads
// @Failure 404 {object} map[string]string
// @Router /api/users/{id}/threads [get]
func (h *Handler) GetUserThreads(c *gin.Context) {
	id := c.Param("id")
	res, err := h.Content.GetUserThreads(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if res == nil {
		h.fail(c, apperr.NotFound("user", id))
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetActivity godoc
// @Summary Replies other users left on the signed-in user's threads
// @Tags activity
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.ThreadView
// @Failure 401 {object} map[string]string
// @Router /api/activity [get]
func (h *Handler) GetActivity(c *gin.Context) {
	res, err := h.Activity.GetActivityFor(c.Request.Context(), c.GetString(ctxUID))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// cached serves path/variant from the render cache, or renders it with load
// and stores the result. Cache failures only cost a re-render.
func (h *Handler) cached(c *gin.Context, path, variant string, load func(ctx context.Context) (any, error)) {
	ctx := c.Request.Context()
	logger := log.FromContext(ctx, zap.String("path", path))

	if h.Cache != nil {
		b, hit, err := h.Cache.Get(ctx, path, variant)
		switch {
		case err != nil:
			metrics.RenderCacheLookups.WithLabelValues(path, "error").Inc()
			logger.Warn("render cache get failed", zap.Error(err))
		case hit:
			metrics.RenderCacheLookups.WithLabelValues(path, "hit").Inc()
			c.Header("X-Cache", "hit")
			c.Data(http.StatusOK, "application/json; charset=utf-8", b)
			return
		default:
			metrics.RenderCacheLookups.WithLabelValues(path, "miss").Inc()
		}
	}

	v, err := load(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		h.fail(c, err)
		return
	}
	if h.Cache != nil {
		if err := h.Cache.Set(ctx, path, variant, b); err != nil {
			logger.Warn("render cache set failed", zap.Error(err))
		}
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", b)
}

// fail writes the error response. Server-side failures expose only the
// operation; the cause stays in c.Errors for the access log.
func (h *Handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	status := statusOf(err)
	c.JSON(status, gin.H{"error": publicMessage(err, status)})
}

func publicMessage(err error, status int) string {
	if status < http.StatusInternalServerError {
		return err.Error()
	}
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Op != "" {
		return ae.Op
	}
	return http.StatusText(status)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// pageParams reads page and size; a missing value is 0 (service default).
func pageParams(c *gin.Context) (page, size int, ok bool) {
	var err error
	if s := c.Query("page"); s != "" {
		if page, err = strconv.Atoi(s); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a number"})
			return 0, 0, false
		}
	}
	if s := c.Query("size"); s != "" {
		if size, err = strconv.Atoi(s); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size must be a number"})
			return 0, 0, false
		}
	}
	return page, size, true
}
