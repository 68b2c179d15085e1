package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret string // Required: shared secret for HS256 session tokens (min 32 bytes)

	DatabaseFile string // Optional: path to SQLite database file (default: ./auth.db)
	RedisAddr    string // Optional: Redis address for the CSRF correlator (default: localhost:6379)
	RedisDB      int    // Optional: Redis database number (default: 0)

	SMTPHost     string // SMTP relay host
	SMTPPort     int    // SMTP relay port (default: 587)
	SMTPUsername string // SMTP username
	SMTPPassword string // SMTP password
	MailFrom     string // From address for outgoing mail

	PublicBaseURL string // Website origin embedded in emailed links (default: http://localhost:3000)

	SessionTTL      time.Duration // Session token lifetime (default: 24h)
	VerificationTTL time.Duration // Email verification token/code lifetime (default: 24h)
	ResetTokenTTL   time.Duration // Password reset token lifetime (default: 1h)
	ResetLockWindow time.Duration // Lockout window after repeated reset requests (default: 24h)
	CsrfTTL         time.Duration // CSRF token binding lifetime (default: 1h)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	CookieSecure        bool          // Mark the session cookie Secure (default: true outside dev)
}

func LoadConfig() Config {
	cfg := Config{
		JWTSecret: os.Getenv("AUTH_JWT_SECRET"),

		DatabaseFile: getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		RedisAddr:    getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvIntOrDefault("REDIS_DB", 0),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     getEnvOrDefault("MAIL_FROM", "no-reply@hebrewclub.local"),

		PublicBaseURL: getEnvOrDefault("WEBSITE_URL", "http://localhost:3000"),

		SessionTTL:      getEnvDurationOrDefault("AUTH_SESSION_TTL", 24*time.Hour),
		VerificationTTL: getEnvDurationOrDefault("AUTH_VERIFICATION_TTL", 24*time.Hour),
		ResetTokenTTL:   getEnvDurationOrDefault("AUTH_RESET_TOKEN_TTL", time.Hour),
		ResetLockWindow: getEnvDurationOrDefault("AUTH_RESET_LOCK_WINDOW", 24*time.Hour),
		CsrfTTL:         getEnvDurationOrDefault("AUTH_CSRF_TTL", time.Hour),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	// Secure cookies everywhere except local dev, unless explicitly overridden.
	if v := os.Getenv("AUTH_COOKIE_SECURE"); v != "" {
		cfg.CookieSecure = v == "true" || v == "1"
	} else {
		cfg.CookieSecure = cfg.Env != "dev"
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
