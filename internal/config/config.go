package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Log        LogConfig
	Report     ReportConfig
	Submission SubmissionConfig
	CORS       CORSConfig
	Google     GoogleConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration time.Duration
	AccessExpiration  time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port                int
	Env                 string
	Timezone            string
	ActivityCatalogPath string
}

func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// Location resolves Timezone.
func (a AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(a.Timezone)
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// ReportConfig tunes the coalescing writer of the counter-report document.
type ReportConfig struct {
	WriteWindow  time.Duration
	WriteTimeout time.Duration
}

type SubmissionConfig struct {
	OpenDay int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// GoogleConfig enables "Sign in with Google" for provisioned accounts.
// Leaving ClientID empty turns it off.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

func (g GoogleConfig) Enabled() bool {
	return g.ClientID != ""
}

// Load reads configuration from the environment, after loading a .env file
// when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	var p parser
	config := &Config{}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     p.int("DB_PORT", 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "mutabaah"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: p.int("DB_MAX_CONNS", 25),
		MinConns: p.int("DB_MIN_CONNS", 2),
	}

	config.App = AppConfig{
		Port:                p.int("APP_PORT", 8080),
		Env:                 getEnv("APP_ENV", "development"),
		Timezone:            getEnv("APP_TIMEZONE", "Asia/Jakarta"),
		ActivityCatalogPath: getEnv("ACTIVITY_CATALOG_PATH", ""),
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: p.duration("JWT_REFRESH_EXPIRATION_TIME", 168*time.Hour),
		AccessExpiration:  p.duration("JWT_ACCESS_EXPIRATION_TIME", time.Hour),
	}

	config.Log = LogConfig{
		Level:      getEnv("LOG_LEVEL", "info"),
		File:       getEnv("LOG_FILE", ""),
		MaxSizeMB:  p.int("LOG_MAX_SIZE_MB", 100),
		MaxBackups: p.int("LOG_MAX_BACKUPS", 5),
		MaxAgeDays: p.int("LOG_MAX_AGE_DAYS", 30),
	}

	config.Report = ReportConfig{
		WriteWindow:  p.duration("REPORT_WRITE_WINDOW", 500*time.Millisecond),
		WriteTimeout: p.duration("REPORT_WRITE_TIMEOUT", 15*time.Second),
	}

	config.Submission = SubmissionConfig{
		OpenDay: p.int("SUBMISSION_OPEN_DAY", 28),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	config.Google = GoogleConfig{
		ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		Scopes:       getEnvSlice("GOOGLE_SCOPES", []string{"openid", "email"}),
	}

	if p.err != nil {
		return nil, p.err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 || c.JWT.RefreshExpiration <= 0 {
		return fmt.Errorf("JWT expiration times must be positive")
	}
	if _, err := c.App.Location(); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if c.Submission.OpenDay < 1 || c.Submission.OpenDay > 28 {
		return fmt.Errorf("SUBMISSION_OPEN_DAY must be between 1 and 28")
	}
	if c.Report.WriteWindow <= 0 || c.Report.WriteTimeout <= 0 {
		return fmt.Errorf("REPORT_WRITE_WINDOW and REPORT_WRITE_TIMEOUT must be positive")
	}
	if c.Google.Enabled() && (c.Google.ClientSecret == "" || c.Google.RedirectURL == "") {
		return fmt.Errorf("GOOGLE_CLIENT_SECRET and GOOGLE_REDIRECT_URL are required when GOOGLE_CLIENT_ID is set")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.Database.User),
		url.QueryEscape(c.Database.Password),
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

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// parser keeps the first conversion error so Load reports one clear cause.
type parser struct {
	err error
}

func (p *parser) int(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return v
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return v
}
