// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	minSendTimeout = 10 * time.Second
	maxSendTimeout = 30 * time.Second
)

type Config struct {
	Port           string
	Environment    string
	DatabaseURL    string
	MigrationsPath string
	RedisURL       string
	LogLevel       string
	CORSOrigins    []string

	// Session gate
	SessionSecret string
	SessionTTL    time.Duration
	AdminPassword string

	// Lets non-browser callers use the dispatch function without a session.
	FunctionKey string

	// Email configuration
	EmailProvider    string
	ResendAPIKey     string
	ResendAPIURL     string
	EmailFrom        string
	EmailFromName    string
	EmailSendTimeout time.Duration

	// Upper bound for one dispatch batch; the HTTP write timeout is derived from it.
	DispatchBatchTimeout time.Duration

	// 0 means one goroutine per recipient
	DispatchConcurrency int

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPUseTLS   bool

	NotificationRetention time.Duration
}

func Load() *Config {
	return &Config{
		Port:           getEnv("API_PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./internal/db/migrations"),
		RedisURL:       getEnv("REDIS_URL", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    getEnvList("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),

		SessionSecret: getEnv("SESSION_SECRET", "change-me"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		FunctionKey:   getEnv("FUNCTION_KEY", ""),

		EmailProvider:        strings.ToLower(getEnv("EMAIL_PROVIDER", "resend")),
		ResendAPIKey:         getEnv("RESEND_API_KEY", ""),
		ResendAPIURL:         getEnv("RESEND_API_URL", "https://api.resend.com"),
		EmailFrom:            getEnv("EMAIL_FROM", "noreply@resend.dev"),
		EmailFromName:        getEnv("EMAIL_FROM_NAME", "Fashion Walk Club"),
		EmailSendTimeout:     clampDuration(getEnvDuration("EMAIL_SEND_TIMEOUT", 15*time.Second), minSendTimeout, maxSendTimeout),
		DispatchConcurrency:  getEnvInt("DISPATCH_CONCURRENCY", 0),
		DispatchBatchTimeout: getEnvDuration("DISPATCH_BATCH_TIMEOUT", 60*time.Second),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:   getEnvBool("SMTP_USE_TLS", false),

		NotificationRetention: getEnvDuration("NOTIFICATION_RETENTION", 30*24*time.Hour),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}
