package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration values.
type Config struct {
	AppEnv             string
	HTTPPort           string
	DatabaseDSN        string
	RedisURL           string
	Secret             string
	PasswordHash       string
	Password           string
	SessionTTL         time.Duration
	LoginMaxAttempts   int
	LoginLockout       time.Duration
	SummaryCacheTTL    time.Duration
	CORSAllowedOrigins []string
	LogFormat          string
	LogLevel           string
	BillFontPath       string
	LedgerSeedPath     string
	ClosedDay          string
	ClinicTZ           string
	Location           *time.Location
}

// Now returns the current time in the clinic's zone.
func (c *Config) Now() time.Time {
	return time.Now().In(c.Location)
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		HTTPPort:           valueOrDefault(k.String("HTTP_PORT"), "8080"),
		DatabaseDSN:        valueOrDefault(k.String("DATABASE_DSN"), "file:clinic.db?_pragma=foreign_keys(1)"),
		RedisURL:           strings.TrimSpace(k.String("REDIS_URL")),
		Secret:             k.String("SECRET"),
		PasswordHash:       strings.TrimSpace(k.String("CLINIC_PASSWORD_HASH")),
		Password:           k.String("CLINIC_PASSWORD"),
		SessionTTL:         parseDuration(k.String("SESSION_TTL"), "24h"),
		LoginMaxAttempts:   parseInt(k.String("LOGIN_MAX_ATTEMPTS"), 10),
		LoginLockout:       parseDuration(k.String("LOGIN_LOCKOUT"), "30s"),
		SummaryCacheTTL:    parseDuration(k.String("SUMMARY_CACHE_TTL"), "10m"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		LogFormat:          valueOrDefault(k.String("LOG_FORMAT"), "json"),
		LogLevel:           valueOrDefault(k.String("LOG_LEVEL"), "info"),
		BillFontPath:       strings.TrimSpace(k.String("BILL_FONT_PATH")),
		LedgerSeedPath:     strings.TrimSpace(k.String("LEDGER_SEED_PATH")),
		ClosedDay:          valueOrDefault(k.String("CLINIC_CLOSED_DAY"), "tuesday"),
		ClinicTZ:           valueOrDefault(k.String("CLINIC_TZ"), "Asia/Dhaka"),
	}

	if _, err := strconv.Atoi(cfg.HTTPPort); err != nil {
		return nil, fmt.Errorf("invalid HTTP_PORT %q", cfg.HTTPPort)
	}
	if cfg.Secret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("SECRET is required")
		}
		cfg.Secret = "dev_secret"
	}
	if cfg.PasswordHash == "" && cfg.Password == "" {
		return nil, errors.New("CLINIC_PASSWORD_HASH or CLINIC_PASSWORD is required")
	}
	if cfg.LoginMaxAttempts < 1 {
		return nil, fmt.Errorf("LOGIN_MAX_ATTEMPTS must be positive, got %d", cfg.LoginMaxAttempts)
	}

	loc, err := time.LoadLocation(cfg.ClinicTZ)
	if err != nil {
		return nil, fmt.Errorf("invalid CLINIC_TZ %q: %w", cfg.ClinicTZ, err)
	}
	cfg.Location = loc

	return cfg, nil
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.AppEnv), "production")
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.HTTPPort), ":")
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

// LoadForTests applies env overrides, loads, then restores the previous environment.
func LoadForTests(overrides map[string]string) (*Config, error) {
	original := make(map[string]string, len(overrides))
	for key, value := range overrides {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, value); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
