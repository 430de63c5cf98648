package config

import (
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port string
	Env  string

	DatabaseURL string
	RedisURL    string

	JWTSecret string

	// Media handling for message attachments. The disk uploader writes
	// into MediaDir and serves under MediaBaseURL.
	MediaDir     string
	MediaBaseURL string
}

// Load reads configuration from environment variables.
// In development it loads from a .env file if present.
// In production it panics on missing required variables.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("ENV", "development"),
		DatabaseURL:  os.Getenv("DB_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		JWTSecret:    getEnv("JWT_SECRET", "dev-secret-change-me"),
		MediaDir:     getEnv("MEDIA_DIR", "./data/media"),
		MediaBaseURL: getEnv("MEDIA_BASE_URL", "/media"),
	}

	if cfg.Env == "production" {
		if cfg.DatabaseURL == "" {
			panic("DB_URL is required in production")
		}
		if cfg.RedisURL == "" {
			panic("REDIS_URL is required in production")
		}
		if os.Getenv("JWT_SECRET") == "" {
			panic("JWT_SECRET is required in production")
		}
	}

	return cfg
}

// LocalMediaPath returns the route path for serving uploaded media from
// this process. It reports false when MediaBaseURL is an absolute URL (a
// CDN or separate media host) or not a rooted path; mounting such a value
// as a route would be rejected by the router.
func (c *Config) LocalMediaPath() (string, bool) {
	u, err := url.Parse(c.MediaBaseURL)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	if !strings.HasPrefix(u.Path, "/") {
		return "", false
	}
	return u.Path, true
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
