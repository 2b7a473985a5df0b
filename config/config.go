package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port         string
	MongoURI     string
	MongoDB      string
	RedisAddr    string
	JWTSecret    string
	PostsPerPage int
	FeedCacheTTL time.Duration
}

// Load reads everything from the environment. main calls godotenv
// first, so a local .env works too.
func Load() Config {
	return Config{
		Port:         getenv("PORT", "8080"),
		MongoURI:     getenv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:      getenv("MONGODB_DATABASE", "yatube"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		PostsPerPage: getenvInt("POSTS_PER_PAGE", 10),
		FeedCacheTTL: getenvDuration("FEED_CACHE_TTL", 15*time.Second),
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
