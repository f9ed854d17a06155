package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	Pipeline PipelineConfig
	JWT      JWTConfig
	API      APIConfig
	App      AppConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// PipelineConfig holds the ETL run settings. Thresholds like the lateness
// grace window are policy constants in the timesheet domain, not config.
type PipelineConfig struct {
	RawDataPath      string
	RosterPattern    string
	TimesheetPattern string
	MaxRetries       int
	RetryDelay       time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// APIConfig holds the analytics API configuration
type APIConfig struct {
	Port           int
	Username       string
	PasswordHash   string
	AllowedOrigins []string
}

// AppConfig holds application configuration
type AppConfig struct {
	Env      string
	LogLevel string
}

func Load() (*Config, error) {
	// Optional in deployed environments where variables come from the host.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "etl_db"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Pipeline configuration
	maxRetries, err := strconv.Atoi(getEnv("PIPELINE_MAX_RETRIES", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid PIPELINE_MAX_RETRIES: %w", err)
	}

	retryDelay, err := time.ParseDuration(getEnv("PIPELINE_RETRY_DELAY", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PIPELINE_RETRY_DELAY: %w", err)
	}

	config.Pipeline = PipelineConfig{
		RawDataPath:      getEnv("DATA_RAW_PATH", "data/raw"),
		RosterPattern:    getEnv("ROSTER_PATTERN", "employee*.csv"),
		TimesheetPattern: getEnv("TIMESHEET_PATTERN", "timesheet*.csv"),
		MaxRetries:       maxRetries,
		RetryDelay:       retryDelay,
	}

	// API configuration
	apiPort, err := strconv.Atoi(getEnv("API_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_PORT: %w", err)
	}

	config.API = APIConfig{
		Port:           apiPort,
		Username:       getEnv("API_USERNAME", ""),
		PasswordHash:   getEnv("API_PASSWORD_HASH", ""),
		AllowedOrigins: getEnvSlice("API_ALLOWED_ORIGINS"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "30m"),
	}

	config.App = AppConfig{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration shared by the pipeline and the API.
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Pipeline.RawDataPath == "" {
		return fmt.Errorf("DATA_RAW_PATH is required")
	}
	if c.Pipeline.MaxRetries < 0 {
		return fmt.Errorf("PIPELINE_MAX_RETRIES must not be negative")
	}
	return nil
}

// ValidateAPI validates the additional settings the API server needs.
func (c *Config) ValidateAPI() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.API.Username == "" {
		return fmt.Errorf("API_USERNAME is required")
	}
	if c.API.PasswordHash == "" {
		return fmt.Errorf("API_PASSWORD_HASH is required")
	}
	return nil
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

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string = strings.Split(value, ",")
	return result
}
