package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("MONGO_DB", "")
	t.Setenv("RABBIT_CONCURRENCY", "")
	t.Setenv("APP_ENV", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.MongoDB != "threads" {
		t.Fatalf("MongoDB = %q", cfg.MongoDB)
	}
	if cfg.Concurrency != 4 {
		t.Fatalf("Concurrency = %d", cfg.Concurrency)
	}
	if cfg.Production {
		t.Fatal("expected development by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("RATE_LIMIT_PER_MIN", "3")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("DD_ENABLED", "true")
	t.Setenv("JWKS_CACHE_SECONDS", "not-a-number")

	cfg := Load()
	if cfg.Port != "9000" || cfg.RateLimitPerMin != 3 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if !cfg.Production || !cfg.DDEnabled {
		t.Fatalf("flags not parsed: %+v", cfg)
	}
	if cfg.JWKSCacheSeconds != 0 {
		t.Fatalf("bad int should fall back to 0, got %d", cfg.JWKSCacheSeconds)
	}
}
