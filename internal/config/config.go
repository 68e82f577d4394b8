// Package config loads the service configuration from the environment.
// A .env file in the working directory is applied first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"accounts/internal/database"

	_ "github.com/joho/godotenv/autoload"
)

// Config holds everything cmd/server needs to assemble the service
type Config struct {
	AppName string
	Port    string

	Database database.Config

	AllowedOrigins []string
	CookieSecure   bool

	SessionTTL           time.Duration
	SessionMaxEntries    int
	SessionSweepInterval time.Duration
	// SessionTokenBytes selects random base64url tokens of this many bytes;
	// 0 keeps UUID tokens
	SessionTokenBytes int

	StaticDir string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load reads the configuration from environment variables, falling back to
// defaults for anything unset. Malformed values are reported, not ignored.
func Load() (*Config, error) {
	var errs []error

	cfg := &Config{
		AppName: GetEnvOrDefault("APP_NAME", "accounts"),
		Port:    GetEnvOrDefault("PORT", "3000"),
		Database: database.Config{
			Host:            GetEnvOrDefault("DB_HOST", "localhost"),
			Port:            GetEnvOrDefault("DB_PORT", "5432"),
			Database:        GetEnvOrDefault("DB_DATABASE", "companydb"),
			Username:        GetEnvOrDefault("DB_USERNAME", "postgres"),
			Password:        os.Getenv("DB_PASSWORD"),
			Schema:          GetEnvOrDefault("DB_SCHEMA", "public"),
			SSLMode:         GetEnvOrDefault("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10, &errs),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5, &errs),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute, &errs),
		},
		AllowedOrigins:       splitList(GetEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		CookieSecure:         getEnvBool("COOKIE_SECURE", false, &errs),
		SessionTTL:           getEnvDuration("SESSION_TTL", 0, &errs),
		SessionMaxEntries:    getEnvInt("SESSION_MAX_ENTRIES", 0, &errs),
		SessionSweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", time.Minute, &errs),
		SessionTokenBytes:    getEnvInt("SESSION_TOKEN_BYTES", 0, &errs),
		StaticDir:            os.Getenv("STATIC_DIR"),
		ReadTimeout:          getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second, &errs),
		WriteTimeout:         getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second, &errs),
		IdleTimeout:          getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second, &errs),
	}
	if _, set := os.LookupEnv("STATIC_DIR"); !set {
		cfg.StaticDir = "./public"
	}

	// A TLS connection is a deployed database, which never runs passwordless
	if cfg.Database.SSLMode != "disable" {
		if err := ValidateEnv([]string{"DB_PASSWORD"}); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every setting that would leave the service unusable
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.Database.MaxOpenConns <= 0 {
		errs = append(errs, errors.New("DB_MAX_OPEN_CONNS must be positive"))
	}
	if c.Database.MaxIdleConns < 0 || c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, errors.New("DB_MAX_IDLE_CONNS must be between 0 and DB_MAX_OPEN_CONNS"))
	}
	if c.SessionTTL < 0 {
		errs = append(errs, errors.New("SESSION_TTL must not be negative"))
	}
	if c.SessionMaxEntries < 0 {
		errs = append(errs, errors.New("SESSION_MAX_ENTRIES must not be negative"))
	}
	if c.SessionTokenBytes != 0 && c.SessionTokenBytes < 16 {
		errs = append(errs, errors.New("SESSION_TOKEN_BYTES must be 0 or at least 16"))
	}
	if len(c.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must list at least one origin"))
	}
	for _, origin := range c.AllowedOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			errs = append(errs, fmt.Errorf("CORS_ALLOWED_ORIGINS: %q is not an http(s) origin", origin))
		}
	}

	return errors.Join(errs...)
}

// ValidateEnv validates that all required environment variables are set
func ValidateEnv(requiredVars []string) error {
	var missing []string

	for _, varName := range requiredVars {
		value := os.Getenv(varName)
		if value == "" {
			missing = append(missing, varName)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// GetEnvOrDefault retrieves an environment variable or returns a default value
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int, errs *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid integer %q", key, value))
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool, errs *[]error) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid boolean %q", key, value))
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, value))
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
