package http_test

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/threads-service/internal/cache"
	api "github.com/tazhibayda/threads-service/internal/http"
	"github.com/tazhibayda/threads-service/internal/queue"
	"github.com/tazhibayda/threads-service/internal/repo/memrepo"
	"github.com/tazhibayda/threads-service/internal/security"
	"github.com/tazhibayda/threads-service/internal/service"
)

func init() { gin.SetMode(gin.TestMode) }

// stubVerifier accepts tokens of the form "tok-<uid>".
type stubVerifier struct{}

func (stubVerifier) ParseAndVerify(ctx context.Context, tok string) (*security.Claims, error) {
	uid, ok := strings.CutPrefix(tok, "tok-")
	if !ok {
		return nil, errors.New("bad token")
	}
	return &security.Claims{UID: uid}, nil
}

type testEnv struct {
	Store  *memrepo.Store
	Redis  *miniredis.Miniredis
	Cache  *cache.RenderCache
	Router *gin.Engine
}

func newTestEnv(t *testing.T, rateLimit int) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := cache.NewRender(mr.Addr(), time.Minute)
	t.Cleanup(func() { _ = rc.Close() })

	store := memrepo.New()
	profiles := service.NewProfileService(store, rc, queue.NewNoop(), "threads.events")
	h := api.NewHandler(store, nil, rc, profiles)
	r := api.NewRouter(h, stubVerifier{}, api.RouterConfig{ServiceName: "threads-test", RateLimitPerMin: rateLimit})
	return &testEnv{Store: store, Redis: mr, Cache: rc, Router: r}
}

func (e *testEnv) do(method, path, body, uid string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if uid != "" {
		req.Header.Set("Authorization", "Bearer tok-"+uid)
	}
	e.Router.ServeHTTP(w, req)
	return w
}

var errBoom = errors.New("boom")
