package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Cookie   CookieConfig
	Seed     SeedConfig
}

// DatabaseConfig holds document store configuration
type DatabaseConfig struct {
	URI    string
	DBName string
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// StorageConfig holds object store configuration
type StorageConfig struct {
	Region       string
	Bucket       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	SignedURLTTL time.Duration
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// SeedConfig holds bootstrap admin credentials (dev convenience)
type SeedConfig struct {
	AdminUsername string
	AdminPassword string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		JWT:      loadJWTConfig(appMode),
		Storage:  loadStorageConfig(appMode),
		Cookie:   loadCookieConfig(appMode),
		Seed: SeedConfig{
			AdminUsername: getEnv("SEED_ADMIN_USERNAME", ""),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		},
	}

	// A missing signing key must prevent the process from serving any
	// request; in prod the fallback secret is also rejected.
	if config.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if config.IsProd() && config.JWT.Secret == "default_secret" {
		return nil, fmt.Errorf("JWT_SECRET must be set explicitly in prod mode")
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads document store config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		URI:    getEnv(prefix+"MONGO_URI", "mongodb://localhost:27017"),
		DBName: getEnv(prefix+"MONGO_DB", "bizloan_dms"),
	}
}

// loadJWTConfig loads session token config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	ttlHours, _ := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if ttlHours < 1 {
		ttlHours = 24
	}

	return JWTConfig{
		Secret:   getEnv(prefix+"JWT_SECRET", "default_secret"),
		TokenTTL: time.Duration(ttlHours) * time.Hour,
	}
}

// loadStorageConfig loads object store config based on mode
func loadStorageConfig(mode string) StorageConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	urlTTLSecs, _ := strconv.Atoi(getEnv("SIGNED_URL_TTL_SECONDS", "3600"))
	if urlTTLSecs < 1 {
		urlTTLSecs = 3600
	}

	return StorageConfig{
		Region:       getEnv(prefix+"S3_REGION", "ap-south-1"),
		Bucket:       getEnv(prefix+"S3_BUCKET", "bizloan-documents"),
		Endpoint:     getEnv(prefix+"S3_ENDPOINT", ""),
		AccessKey:    getEnv(prefix+"S3_ACCESS_KEY", ""),
		SecretKey:    getEnv(prefix+"S3_SECRET_KEY", ""),
		SignedURLTTL: time.Duration(urlTTLSecs) * time.Second,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://dms.techbizloanindia.com"
	}
	return origins
}
