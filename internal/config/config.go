package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	MongoURI       string
	RedisURI       string   // optional: enables Redis-backed auth rate limiting
	PostgresURI    string   // optional: enables the admin audit log
	JWTSecret      string
	JWTExpire      time.Duration
	AdminSecretKey string
	Port           string
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS, falls back to the known frontends
	AllowedHost    string   // production only: bare hostname requests must target; empty disables the check
	TrustProxy     bool     // TRUST_PROXY=true: client IP comes from X-Forwarded-For / X-Real-IP
	Environment    string   // ENV / NODE_ENV: production, development, etc.
}

var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"http://localhost:5002",
	"https://e-sangrahan.netlify.app",
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", getEnv("NODE_ENV", "development"))))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = append(allowedOrigins, defaultOrigins...)
	}

	expire, err := ParseDuration(getEnv("JWT_EXPIRE", "30d"))
	if err != nil || expire <= 0 {
		expire = 30 * 24 * time.Hour
	}

	return &Config{
		MongoURI:       getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/ewaste")),
		RedisURI:       getEnv("REDIS_URI", ""),
		PostgresURI:    getEnv("POSTGRES_URI", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTExpire:      expire,
		AdminSecretKey: getEnv("ADMIN_SECRET_KEY", ""),
		Environment:    env,
		Port:           getEnv("PORT", "5002"),
		AllowedOrigins: allowedOrigins,
		AllowedHost:    strings.TrimSpace(getEnv("ALLOWED_HOST", "")),
		TrustProxy:     strings.EqualFold(getEnv("TRUST_PROXY", ""), "true"),
	}
}

// Missing lists the required variables that are not set. Outside production
// the server still starts and operations depending on them fail at request
// time. A production server refuses to start without JWT_SECRET.
func (c *Config) Missing() []string {
	var out []string
	if os.Getenv("MONGO_URI") == "" && os.Getenv("MONGODB_URI") == "" {
		out = append(out, "MONGO_URI")
	}
	if c.JWTSecret == "" {
		out = append(out, "JWT_SECRET")
	}
	if c.AdminSecretKey == "" {
		out = append(out, "ADMIN_SECRET_KEY")
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// ParseDuration accepts Go durations ("12h", "90m") plus a day suffix ("30d").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid day duration %q: %w", s, err)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
