package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration loaded from environment variables.
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// MongoDB
	MongoURI        string
	MongoDatabase   string
	UsersCollection string

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Client (userctl)
	APIBaseURL string

	// Debug metrics (/api/debug/vars)
	DebugMetricsEnabled bool

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "userboard"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "4000"),
		GinMode: getenv("GIN_MODE", "release"),

		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getenv("MONGO_DB", "userboard"),
		UsersCollection: getenv("MONGO_USERS_COLLECTION", "users"),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		APIBaseURL: getenv("API_BASE_URL", "http://localhost:4000"),

		// Debug metrics toggle (default true to match dev ergonomics)
		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", true),

		// HTTP access log toggle (default false; enable when needed)
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
