package main

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// RouteConfig pairs the token subject a Wix HTTP function expects with the
// endpoint it lives at. One pair per collection family.
type RouteConfig struct {
	Subject  string
	Endpoint string
}

// AppConfig holds all configuration for the fetcher, loaded from the
// environment (and a .env file during local development).
type AppConfig struct {
	Port       string
	DataDir    string
	AuthSecret string
	RedisAddr  string
	CacheTTL   time.Duration

	Events      RouteConfig
	BlogPosts   RouteConfig
	Collections RouteConfig
	Taxonomies  RouteConfig
	Members     RouteConfig
}

// LoadConfig loads configuration from a .env file and environment variables.
// In release mode configuration is expected to arrive as real environment
// variables (Docker Compose), so the .env lookup is skipped.
func LoadConfig() (*AppConfig, error) {
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("WARNING: No .env file found for local development.")
		}
	}

	cfg := &AppConfig{
		Port:       envOrDefault("PORT", "8080"),
		DataDir:    envOrDefault("FETCHER_DATA_DIR", "data"),
		AuthSecret: os.Getenv("WIX_AUTH_SECRET"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		CacheTTL:   10 * time.Minute,

		Events: RouteConfig{
			Subject:  os.Getenv("JWT_SUBJECT_EVENTS"),
			Endpoint: os.Getenv("WIX_EVENTS_ENDPOINT"),
		},
		BlogPosts: RouteConfig{
			Subject:  os.Getenv("JWT_SUBJECT_BLOG_POSTS"),
			Endpoint: os.Getenv("WIX_BLOG_POSTS_ENDPOINT"),
		},
		Collections: RouteConfig{
			Subject:  os.Getenv("JWT_SUBJECT_COLLECTIONS"),
			Endpoint: os.Getenv("WIX_COLLECTIONS_ENDPOINT"),
		},
		Taxonomies: RouteConfig{
			Subject:  os.Getenv("JWT_SUBJECT_BLOG_TAXONOMIES"),
			Endpoint: os.Getenv("WIX_BLOG_TAXONOMIES_ENDPOINT"),
		},
		Members: RouteConfig{
			Subject:  os.Getenv("JWT_SUBJECT_MEMBERS"),
			Endpoint: os.Getenv("WIX_MEMBERS_ENDPOINT"),
		},
	}

	if raw := os.Getenv("WIX_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errors.New("WIX_CACHE_TTL must be a duration like 10m or 1h")
		}
		cfg.CacheTTL = ttl
	}

	if cfg.AuthSecret == "" {
		return nil, errors.New("WIX_AUTH_SECRET environment variable is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
