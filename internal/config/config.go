// Package config loads YantraTune settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

// LocalEnvFile is read, when present, before the environment is consulted.
const LocalEnvFile = "config/local.env"

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Mongo    MongoConfig
	Storage  StorageConfig
	CORS     CORSConfig
	Logging  LoggingConfig

	// SeedDemoData loads the sample catalog into an empty database on start.
	SeedDemoData bool

	UploadRateLimit float64 // requests per second per client
	UploadRateBurst int
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
	Host string
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MongoConfig locates the preference document store.
type MongoConfig struct {
	URL      string
	Database string
}

// StorageConfig holds the object storage endpoint and its API keys.
type StorageConfig struct {
	URL            string
	AnonKey        string
	ServiceRoleKey string
	Timeout        time.Duration
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	File   string
}

// Load reads config/local.env if it exists, then the environment, and
// validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load(LocalEnvFile)

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// FromEnv builds a Config from environment variables without validating it.
func FromEnv() (*Config, error) {
	cfg := &Config{}

	if err := cfg.loadDatabase(); err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}
	if err := cfg.loadServer(); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}
	cfg.loadMongo()
	if err := cfg.loadStorage(); err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}
	cfg.loadCORS()
	cfg.loadLogging()
	if err := cfg.loadFeatures(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadDatabase() error {
	c.Database.URL = os.Getenv("DATABASE_URL")
	if c.Database.URL != "" {
		return nil
	}

	c.Database.Host = getEnvOrDefault("DB_HOST", "localhost")
	c.Database.User = os.Getenv("DB_USER")
	c.Database.Password = os.Getenv("DB_PASSWORD")
	c.Database.Name = os.Getenv("DB_NAME")
	c.Database.SSLMode = getEnvOrDefault("DB_SSLMODE", "disable")

	port, err := strconv.Atoi(getEnvOrDefault("DB_PORT", "5432"))
	if err != nil {
		return fmt.Errorf("invalid DB_PORT: %w", err)
	}
	c.Database.Port = port

	if c.Database.Host != "" && c.Database.User != "" && c.Database.Name != "" {
		c.Database.URL = fmt.Sprintf(
			"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
			c.Database.SSLMode,
		)
	}
	return nil
}

func (c *Config) loadServer() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8001"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	c.Server.Port = port
	c.Server.Host = getEnvOrDefault("HOST", "0.0.0.0")
	return nil
}

func (c *Config) loadMongo() {
	c.Mongo.URL = getEnvOrDefault("MONGO_URL", "mongodb://localhost:27017")
	c.Mongo.Database = getEnvOrDefault("MONGO_DB", "yantratune")
}

func (c *Config) loadStorage() error {
	c.Storage.URL = strings.TrimRight(os.Getenv("STORAGE_URL"), "/")
	c.Storage.AnonKey = os.Getenv("STORAGE_ANON_KEY")
	c.Storage.ServiceRoleKey = os.Getenv("STORAGE_SERVICE_ROLE_KEY")

	timeout, err := time.ParseDuration(getEnvOrDefault("STORAGE_TIMEOUT", "60s"))
	if err != nil {
		return fmt.Errorf("invalid STORAGE_TIMEOUT: %w", err)
	}
	c.Storage.Timeout = timeout
	return nil
}

func (c *Config) loadCORS() {
	raw := getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			c.CORS.AllowedOrigins = append(c.CORS.AllowedOrigins, origin)
		}
	}
}

func (c *Config) loadLogging() {
	c.Logging.Level = strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info"))
	c.Logging.Format = strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json"))
	c.Logging.File = os.Getenv("LOG_FILE")
}

func (c *Config) loadFeatures() error {
	seed, err := strconv.ParseBool(getEnvOrDefault("SEED_DEMO_DATA", "false"))
	if err != nil {
		return fmt.Errorf("invalid SEED_DEMO_DATA: %w", err)
	}
	c.SeedDemoData = seed

	limit, err := strconv.ParseFloat(getEnvOrDefault("UPLOAD_RATE_LIMIT", "2"), 64)
	if err != nil {
		return fmt.Errorf("invalid UPLOAD_RATE_LIMIT: %w", err)
	}
	c.UploadRateLimit = limit

	burst, err := strconv.Atoi(getEnvOrDefault("UPLOAD_RATE_BURST", "10"))
	if err != nil {
		return fmt.Errorf("invalid UPLOAD_RATE_BURST: %w", err)
	}
	c.UploadRateBurst = burst
	return nil
}

// Validate checks that all required configuration is present and valid. Every
// problem found is reported in the returned error.
func (c *Config) Validate() error {
	var problems []string

	if c.Database.URL == "" {
		problems = append(problems, "DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, "PORT must be between 1 and 65535")
	}
	if c.Mongo.URL == "" {
		problems = append(problems, "MONGO_URL is required")
	}

	if c.Storage.URL == "" {
		problems = append(problems, "STORAGE_URL is required")
	}
	if c.Storage.ServiceRoleKey == "" {
		problems = append(problems, "STORAGE_SERVICE_ROLE_KEY is required")
	} else if err := checkKeyRole(c.Storage.ServiceRoleKey, "service_role"); err != nil {
		problems = append(problems, "STORAGE_SERVICE_ROLE_KEY: "+err.Error())
	}
	if c.Storage.AnonKey != "" {
		if err := checkKeyRole(c.Storage.AnonKey, "anon"); err != nil {
			problems = append(problems, "STORAGE_ANON_KEY: "+err.Error())
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		problems = append(problems, "LOG_LEVEL must be one of: debug, info, warn, error")
	}
	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		problems = append(problems, "LOG_FORMAT must be one of: json, text")
	}

	if c.UploadRateLimit <= 0 {
		problems = append(problems, "UPLOAD_RATE_LIMIT must be positive")
	}
	if c.UploadRateBurst < 1 {
		problems = append(problems, "UPLOAD_RATE_BURST must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

var errWrongRole = errors.New("key has the wrong role")

// checkKeyRole decodes a storage API key without verifying its signature and
// confirms the role claim. The keys are issued by the storage provider, so
// only the claim shape is ours to check.
func checkKeyRole(key, want string) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(key, claims); err != nil {
		return fmt.Errorf("not a valid JWT: %w", err)
	}
	role, _ := claims["role"].(string)
	if role != want {
		return fmt.Errorf("%w: got %q, want %q", errWrongRole, role, want)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
