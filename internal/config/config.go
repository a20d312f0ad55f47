package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string

	JWTSecret       string
	JWTAccessExpiry time.Duration

	// BaseURL is the web client, used for links in emails.
	BaseURL string

	SMTP SMTPConfig
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// ClientConfig configures a consumer of the REST API.
type ClientConfig struct {
	BaseURL     string
	Token       string
	Timeout     time.Duration
	CacheMaxAge time.Duration
}

// Load reads the server configuration from the environment, after merging a
// .env file when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var errs []error

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: requireEnv("DATABASE_URL", &errs),
		JWTSecret:   requireEnv("JWT_SECRET", &errs),
		BaseURL:     strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
		},
	}
	cfg.JWTAccessExpiry = durationEnv("JWT_ACCESS_EXPIRY", 15*time.Minute, &errs)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadClient reads the configuration of the match client. A missing token is
// not an error here; commands that need one check it.
func LoadClient() (ClientConfig, error) {
	_ = godotenv.Load()

	var errs []error
	cfg := ClientConfig{
		BaseURL:     getEnv("FUTBOL_API_URL", "http://localhost:8080/api/v1"),
		Token:       getEnv("FUTBOL_TOKEN", ""),
		Timeout:     durationEnv("FUTBOL_TIMEOUT", 10*time.Second, &errs),
		CacheMaxAge: durationEnv("FUTBOL_CACHE_MAX_AGE", 0, &errs),
	}
	return cfg, errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// InvitationsURL is where invitation emails send the invitee.
func (c *Config) InvitationsURL() string {
	return c.BaseURL + "/invitations"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func requireEnv(key string, errs *[]error) string {
	value := os.Getenv(key)
	if value == "" {
		*errs = append(*errs, fmt.Errorf("required environment variable not set: %s", key))
	}
	return value
}

func durationEnv(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, raw))
		return fallback
	}
	return d
}
