package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Import   ImportConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// AppConfig holds application configuration
type AppConfig struct {
	Name           string
	Version        string
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	DefaultLocale  string
	AllowedOrigins []string
	// FallbackWorkDays are the ISO days of week (1=Monday ... 7=Sunday)
	// worked by employees whose schedule lists none. Empty means none.
	FallbackWorkDays []int
}

// ImportConfig holds the bulk attendance import rules
type ImportConfig struct {
	Cutoff        string
	LunchMinutes  int
	StandardHours int
	MaxUploadMB   int
	PreviewRows   int
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

func Load() (*Config, error) {
	// .env is optional; container deployments inject variables directly.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "cmlabs-hris"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:           getEnv("APP_NAME", "hris-attendance"),
		Version:        getEnv("APP_VERSION", "v1.0.0"),
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "Asia/Jakarta"),
		DefaultLocale:  getEnv("DEFAULT_LOCALE", "en"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	config.App.FallbackWorkDays, err = parseISODays(getEnv("SCHEDULE_FALLBACK_DAYS", "1,2,3,4,5"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_FALLBACK_DAYS: %w", err)
	}

	// Import configuration
	config.Import, err = loadImportConfig()
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadImportConfig() (ImportConfig, error) {
	lunch, err := strconv.Atoi(getEnv("IMPORT_LUNCH_MINUTES", "60"))
	if err != nil {
		return ImportConfig{}, fmt.Errorf("invalid IMPORT_LUNCH_MINUTES: %w", err)
	}
	standard, err := strconv.Atoi(getEnv("IMPORT_STANDARD_HOURS", "8"))
	if err != nil {
		return ImportConfig{}, fmt.Errorf("invalid IMPORT_STANDARD_HOURS: %w", err)
	}
	maxUpload, err := strconv.Atoi(getEnv("IMPORT_MAX_UPLOAD_MB", "10"))
	if err != nil {
		return ImportConfig{}, fmt.Errorf("invalid IMPORT_MAX_UPLOAD_MB: %w", err)
	}
	previewRows, err := strconv.Atoi(getEnv("IMPORT_PREVIEW_ROWS", "5"))
	if err != nil {
		return ImportConfig{}, fmt.Errorf("invalid IMPORT_PREVIEW_ROWS: %w", err)
	}
	ttl, err := time.ParseDuration(getEnv("IMPORT_SESSION_TTL", "30m"))
	if err != nil {
		return ImportConfig{}, fmt.Errorf("invalid IMPORT_SESSION_TTL: %w", err)
	}
	sweep, err := time.ParseDuration(getEnv("IMPORT_SWEEP_INTERVAL", "5m"))
	if err != nil {
		return ImportConfig{}, fmt.Errorf("invalid IMPORT_SWEEP_INTERVAL: %w", err)
	}

	return ImportConfig{
		Cutoff:        getEnv("IMPORT_CUTOFF", "09:00"),
		LunchMinutes:  lunch,
		StandardHours: standard,
		MaxUploadMB:   maxUpload,
		PreviewRows:   previewRows,
		SessionTTL:    ttl,
		SweepInterval: sweep,
	}, nil
}

// DefaultImportConfig returns the import rules used when no environment is loaded.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		Cutoff:        "09:00",
		LunchMinutes:  60,
		StandardHours: 8,
		MaxUploadMB:   10,
		PreviewRows:   5,
		SessionTTL:    30 * time.Minute,
		SweepInterval: 5 * time.Minute,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return c.Import.Validate()
}

func (c ImportConfig) Validate() error {
	if _, err := time.Parse("15:04", c.Cutoff); err != nil {
		return fmt.Errorf("IMPORT_CUTOFF must be HH:MM: %w", err)
	}
	if c.LunchMinutes < 0 {
		return fmt.Errorf("IMPORT_LUNCH_MINUTES must not be negative")
	}
	if c.StandardHours <= 0 || c.StandardHours > 24 {
		return fmt.Errorf("IMPORT_STANDARD_HOURS must be between 1 and 24")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("IMPORT_MAX_UPLOAD_MB must be positive")
	}
	if c.PreviewRows < 0 {
		return fmt.Errorf("IMPORT_PREVIEW_ROWS must not be negative")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("IMPORT_SESSION_TTL must be positive")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("IMPORT_SWEEP_INTERVAL must be positive")
	}
	return nil
}

// Location returns the time zone used to decide what "today" is.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SlogLevel maps LOG_LEVEL to a slog level.
func (c AppConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// parseISODays reads a comma-separated list of ISO days of week. "none"
// yields an empty list.
func parseISODays(value string) ([]int, error) {
	days := []int{}
	if strings.EqualFold(strings.TrimSpace(value), "none") {
		return days, nil
	}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		if d < 1 || d > 7 {
			return nil, fmt.Errorf("day %d is outside 1-7", d)
		}
		days = append(days, d)
	}
	return days, nil
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
