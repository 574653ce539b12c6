package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Demo struct {
	Username string
	Password string
}

type Config struct {
	Port        string
	FrontendURL string
	SecretKey   string
	CookieName  string
	RedisURI    string
	Timezone    string
	DraftTTL    time.Duration
	MaxUploadMB int
	Demo        Demo
}

func LoadConfig() *Config {
	return &Config{
		Port:        getEnv("PORT", "3000"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		SecretKey:   getEnv("SECRET_KEY", ""),
		CookieName:  getEnv("COOKIE_NAME", "composer_session"),
		RedisURI:    getEnv("REDIS_URI", ""),
		Timezone:    getEnv("TIMEZONE", "Asia/Bangkok"),
		DraftTTL:    getDuration("DRAFT_TTL", 2*time.Hour),
		MaxUploadMB: getInt("MAX_UPLOAD_MB", 100),
		Demo: Demo{
			Username: getEnv("DEMO_USERNAME", "admin"),
			Password: getEnv("DEMO_PASSWORD", "admin123"),
		},
	}
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Error("unknown timezone, using UTC", "timezone", c.Timezone, "error", err)
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
