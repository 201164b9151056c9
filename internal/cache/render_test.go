package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func setupTestCache(t *testing.T) (*RenderCache, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	c := NewRender(s.Addr(), time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	return c, s
}

func TestGetSet(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "/", "anon"); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}
	if err := c.Set(ctx, "/", "anon", []byte(`{"posts":[]}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	b, ok, err := c.Get(ctx, "/", "anon")
	if err != nil || !ok || string(b) != `{"posts":[]}` {
		t.Fatalf("Get = %q, %v, %v", b, ok, err)
	}
}

func TestExpiry(t *testing.T) {
	c, s := setupTestCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "/", "anon", []byte("x"))
	s.FastForward(2 * time.Minute)

	if _, ok, _ := c.Get(ctx, "/", "anon"); ok {
		t.Error("entry should have expired")
	}
}

func TestInvalidate(t *testing.T) {
	c, s := setupTestCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "profile/edit", "user_1", []byte("a"))
	_ = c.Set(ctx, "profile/edit", "user_2", []byte("b"))
	_ = c.Set(ctx, "profile/editor", "user_1", []byte("c"))
	_ = c.Set(ctx, "/", "anon", []byte("d"))

	if err := c.Invalidate(ctx, "profile/edit"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if s.Exists(key("profile/edit", "user_1")) || s.Exists(key("profile/edit", "user_2")) {
		t.Error("profile/edit variants survived invalidation")
	}
	if !s.Exists(key("profile/editor", "user_1")) || !s.Exists(key("/", "anon")) {
		t.Error("unrelated paths were invalidated")
	}
}

func TestInvalidateGlobCharacters(t *testing.T) {
	c, s := setupTestCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "a*", "v", []byte("x"))
	_ = c.Set(ctx, "abc", "v", []byte("y"))

	if err := c.Invalidate(ctx, "a*"); err != nil {
		t.Fatal(err)
	}
	if s.Exists(key("a*", "v")) {
		t.Error("literal path not invalidated")
	}
	if !s.Exists(key("abc", "v")) {
		t.Error("glob in path matched another key")
	}
}

func TestNilCache(t *testing.T) {
	var c *RenderCache
	ctx := context.Background()
	if err := c.Set(ctx, "/", "v", nil); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(ctx, "/", "v"); ok || err != nil {
		t.Fatalf("nil cache Get: %v %v", ok, err)
	}
	if err := c.Invalidate(ctx, "/"); err != nil {
		t.Fatal(err)
	}
}
