package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tazhibayda/threads-service/internal/apperr"
)

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	require.True(t, rl.Allow("a"))
	require.True(t, rl.Allow("a"))
	require.False(t, rl.Allow("a"))
	require.True(t, rl.Allow("b"))

	now = now.Add(2 * time.Minute)
	require.True(t, rl.Allow("a"))
}

func TestRateLimiterEvictsIdleBuckets(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, time.Minute)
	rl.now = func() time.Time { return now }

	for _, k := range []string{"a", "b", "c"} {
		require.True(t, rl.Allow(k))
	}
	require.Len(t, rl.buckets, 3)

	now = now.Add(30 * time.Second)
	require.False(t, rl.Allow("a"))

	now = now.Add(2 * time.Minute)
	require.True(t, rl.Allow("d"))
	require.Len(t, rl.buckets, 1)
	require.Contains(t, rl.buckets, "d")
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(headerRequestID)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	require.NotEmpty(t, w.Body.String())
	require.Equal(t, w.Body.String(), w.Header().Get(headerRequestID))

	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(headerRequestID, "req-42")
	r.ServeHTTP(w, req)
	require.Equal(t, "req-42", w.Body.String())
}

func TestPublicMessage(t *testing.T) {
	require.Equal(t, "failed to fetch user", publicMessage(errOther, statusOf(errOther)))
	require.Equal(t, "failed to fetch user", publicMessage(errTimeout, statusOf(errTimeout)))
	require.Equal(t, errInvalid.Error(), publicMessage(errInvalid, statusOf(errInvalid)))
	require.Equal(t, "Internal Server Error", publicMessage(errors.New("raw"), http.StatusInternalServerError))
}

func TestStatusOf(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		err  error
		want int
	}{
		{errInvalid, http.StatusBadRequest},
		{errMissing, http.StatusNotFound},
		{errTimeout, http.StatusServiceUnavailable},
		{errOther, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, statusOf(tt.err), tt.err.Error())
	}
}

var (
	errInvalid = apperr.Invalid("failed to list users", "page and size must not be negative")
	errMissing = apperr.NotFound("user", "u1")
	errTimeout = apperr.Wrap("failed to fetch user", context.DeadlineExceeded)
	errOther   = apperr.Wrap("failed to fetch user", errors.New("boom"))
)
