// Package cache keeps rendered page payloads in Redis so a write can drop
// every variant of a page path at once.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "render:"

// RenderCache stores payloads under render:<path>|<variant>. A nil
// *RenderCache is a valid, always-empty cache.
type RenderCache struct {
	C   *redis.Client
	TTL time.Duration
}

func NewRender(addr string, ttl time.Duration) *RenderCache {
	return &RenderCache{C: redis.NewClient(&redis.Options{Addr: addr}), TTL: ttl}
}

func (r *RenderCache) Ping(ctx context.Context) error {
	if r == nil {
		return nil
	}
	return r.C.Ping(ctx).Err()
}

func (r *RenderCache) Close() error {
	if r == nil {
		return nil
	}
	return r.C.Close()
}

func key(path, variant string) string {
	return keyPrefix + path + "|" + variant
}

// Get returns the cached payload, or ok=false on a miss.
func (r *RenderCache) Get(ctx context.Context, path, variant string) ([]byte, bool, error) {
	if r == nil {
		return nil, false, nil
	}
	b, err := r.C.Get(ctx, key(path, variant)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *RenderCache) Set(ctx context.Context, path, variant string, body []byte) error {
	if r == nil {
		return nil
	}
	return r.C.Set(ctx, key(path, variant), body, r.TTL).Err()
}

// Invalidate drops every variant cached for path.
func (r *RenderCache) Invalidate(ctx context.Context, path string) error {
	if r == nil {
		return nil
	}
	iter := r.C.Scan(ctx, 0, keyPrefix+escapeGlob(path)+"|*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.C.Del(ctx, keys...).Err()
}

// escapeGlob quotes the characters SCAN MATCH treats specially.
func escapeGlob(s string) string {
	return strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`).Replace(s)
}
