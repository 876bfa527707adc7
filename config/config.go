package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Catalog    CatalogConfig
	Database   DatabaseConfig
	Classifier ClassifierConfig
	Poster     PosterConfig
	Logging    LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// CatalogConfig holds movie catalog configuration.
// Source selects where the catalog is loaded from: "csv" reads the file
// at Path, "postgres" reads the movies table. ReloadTTL bounds how long a
// loaded snapshot is served before the cache reloads it.
type CatalogConfig struct {
	Source        string
	Path          string
	ReloadTTL     time.Duration
	MoodTablePath string
}

// DatabaseConfig holds PostgreSQL database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string

	MaxOpenConns int
	MaxIdleConns int
}

// ClassifierConfig holds mood classifier service configuration.
// The classifier is an OpenAI-compatible chat completions endpoint; it is
// optional and the resolver degrades to keyword matching without it.
type ClassifierConfig struct {
	APIKey   string
	Endpoint string
	Model    string
	Timeout  time.Duration
}

// PosterConfig holds poster lookup service configuration
type PosterConfig struct {
	APIKey         string
	Endpoint       string
	ImageBaseURL   string
	PlaceholderURL string
	Timeout        time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Catalog: CatalogConfig{
			Source:        getEnv("CATALOG_SOURCE", "csv"),
			Path:          getEnv("CATALOG_PATH", "movies.csv"),
			ReloadTTL:     getDurationEnv("CATALOG_RELOAD_TTL", 30*time.Minute),
			MoodTablePath: getEnv("MOOD_TABLE_PATH", ""),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getIntEnv("DB_PORT", 5432),
			Database:     getEnv("DB_NAME", "movies"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			SSLMode:      getEnv("DB_SSLMODE", "prefer"),
			MaxOpenConns: getIntEnv("DB_MAX_CONNS", 10),
			MaxIdleConns: getIntEnv("DB_IDLE_CONNS", 2),
		},
		Classifier: ClassifierConfig{
			APIKey:   getEnv("CLASSIFIER_API_KEY", ""),
			Endpoint: getEnv("CLASSIFIER_ENDPOINT", "https://openrouter.ai/api/v1/chat/completions"),
			Model:    getEnv("CLASSIFIER_MODEL", "mistralai/mistral-7b-instruct"),
			Timeout:  getDurationEnv("CLASSIFIER_TIMEOUT", 10*time.Second),
		},
		Poster: PosterConfig{
			APIKey:         getEnv("POSTER_API_KEY", ""),
			Endpoint:       getEnv("POSTER_ENDPOINT", "https://api.themoviedb.org/3"),
			ImageBaseURL:   getEnv("POSTER_IMAGE_BASE_URL", "https://image.tmdb.org/t/p/w500"),
			PlaceholderURL: getEnv("POSTER_PLACEHOLDER_URL", "https://via.placeholder.com/500x750?text=No+Poster+Available"),
			Timeout:        getDurationEnv("POSTER_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv gets duration from environment variable with default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getIntEnv gets integer from environment variable with default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case "csv", "postgres":
	default:
		return &ConfigError{Field: "CATALOG_SOURCE", Message: "must be \"csv\" or \"postgres\""}
	}
	if c.Catalog.Source == "csv" && c.Catalog.Path == "" {
		return &ConfigError{Field: "CATALOG_PATH", Message: "catalog path is required for the csv source"}
	}
	return nil
}

// ConfigError represents configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
