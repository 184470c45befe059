package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config is the immutable runtime configuration, loaded once at startup and
// passed by reference to every component that needs it.
type Config struct {
	Port        string
	DatabaseURL string
	MaxConns    int32

	JWTSecret string
	JWTTTL    time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string

	OTPTTL time.Duration
}

// Load reads configuration from the environment via the supplied getter
// (usually os.Getenv) and validates the required fields.
func Load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:         fallback(getenv("PORT"), "8080"),
		DatabaseURL:  strings.TrimSpace(getenv("DATABASE_URL")),
		MaxConns:     int32(parseInt(getenv("DB_MAX_CONNS"), 5)),
		JWTSecret:    strings.TrimSpace(getenv("APP_KEY")),
		JWTTTL:       time.Duration(parseInt(getenv("JWT_TTL_HOURS"), 24)) * time.Hour,
		SMTPHost:     strings.TrimSpace(getenv("MAIL_SMTP_HOST")),
		SMTPPort:     parseInt(getenv("MAIL_SMTP_PORT"), 587),
		SMTPUsername: strings.TrimSpace(getenv("MAIL_SMTP_USERNAME")),
		SMTPPassword: strings.TrimSpace(getenv("MAIL_SMTP_PASSWORD")),
		FromEmail:    fallback(getenv("MAIL_FROM_EMAIL"), "noreply@karcis.com"),
		FromName:     fallback(getenv("MAIL_FROM_NAME"), "Karcis.com"),
		OTPTTL:       time.Duration(parseInt(getenv("OTP_TTL_MINUTES"), 5)) * time.Minute,
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("APP_KEY is required")
	}
	if cfg.MaxConns < 1 {
		return nil, errors.New("DB_MAX_CONNS must be at least 1")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf("0.0.0.0:%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseInt(value string, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
		return n
	}
	return def
}
