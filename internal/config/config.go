package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	MongoURI string
	MongoDB  string

	AuthJWKSURL      string
	JWKSCacheSeconds int

	RedisAddr             string
	RenderCacheTTLSeconds int

	RabbitURL   string
	Exchange    string
	Queue       string
	BindKey     string
	Concurrency int

	RateLimitPerMin int
	Production      bool
	DDEnabled       bool
	ServiceName     string
}

// Load reads .env (when present) and then the process environment.
func Load() Config {
	_ = godotenv.Load(".env")
	return Config{
		Port:                  getenv("APP_PORT", "8080"),
		MongoURI:              getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:               getenv("MONGO_DB", "threads"),
		AuthJWKSURL:           getenv("AUTH_JWKS_URL", "http://localhost:8081/.well-known/jwks.json"),
		JWKSCacheSeconds:      atoi(getenv("JWKS_CACHE_SECONDS", "300")),
		RedisAddr:             getenv("REDIS_ADDR", ""),
		RenderCacheTTLSeconds: atoi(getenv("RENDER_CACHE_TTL_SECONDS", "60")),
		RabbitURL:             getenv("RABBIT_URL", ""),
		Exchange:              getenv("RABBIT_EXCHANGE", "threads.events"),
		Queue:                 getenv("RABBIT_QUEUE", "profileq"),
		BindKey:               getenv("RABBIT_BIND_KEY", "profile.saved"),
		Concurrency:           atoi(getenv("RABBIT_CONCURRENCY", "4")),
		RateLimitPerMin:       atoi(getenv("RATE_LIMIT_PER_MIN", "10")),
		Production:            strings.EqualFold(getenv("APP_ENV", "development"), "production"),
		DDEnabled:             parseBool(getenv("DD_ENABLED", "false")),
		ServiceName:           getenv("SERVICE_NAME", "threads-service"),
	}
}

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return 0
}

func parseBool(s string) bool {
	v, _ := strconv.ParseBool(s)
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
