package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode   string
	Port      string
	Storage   StorageConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	Lifecycle LifecycleConfig
	Loan      LoanConfig
	Backup    BackupConfig
}

// StorageConfig holds blob store configuration
type StorageConfig struct {
	Driver        string // "file" or "redis"
	Dir           string // file driver: directory for blobs
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// LifecycleConfig controls request status transitions. With Strict set
// (the default) approve/reject are legal only from pending; clearing it
// allows re-deciding an already decided request.
type LifecycleConfig struct {
	Strict bool
}

// LoanConfig holds loan terms applied at submission
type LoanConfig struct {
	MonthlyInterestRate float64 // percent per month
}

// BackupConfig holds snapshot backup settings
type BackupConfig struct {
	Enabled bool
	Cron    string
}

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

	storage, err := loadStorageConfig(appMode)
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode:   appMode,
		Port:      getEnv("PORT", "3000"),
		Storage:   storage,
		JWT:       loadJWTConfig(appMode),
		Cookie:    loadCookieConfig(appMode),
		Lifecycle: loadLifecycleConfig(),
		Loan:      loadLoanConfig(),
		Backup:    loadBackupConfig(),
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadStorageConfig loads blob store config based on mode
func loadStorageConfig(mode string) (StorageConfig, error) {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	driver := strings.TrimSpace(getEnv("STORAGE_DRIVER", "file"))
	if driver != "file" && driver != "redis" {
		return StorageConfig{}, fmt.Errorf("invalid STORAGE_DRIVER: '%s' (must be 'file' or 'redis')", driver)
	}

	redisDB, _ := strconv.Atoi(getEnv(prefix+"REDIS_DB", "0"))

	return StorageConfig{
		Driver:        driver,
		Dir:           getEnv("STORAGE_DIR", "./data"),
		RedisAddr:     getEnv(prefix+"REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv(prefix+"REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
	}, nil
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "60"))

	return JWTConfig{
		Secret:          getEnv(prefix+"JWT_SECRET", "default_secret"),
		AccessTokenMins: accessMins,
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

func loadLifecycleConfig() LifecycleConfig {
	strict, err := strconv.ParseBool(getEnv("LIFECYCLE_STRICT", "true"))
	if err != nil {
		strict = true
	}
	return LifecycleConfig{Strict: strict}
}

func loadLoanConfig() LoanConfig {
	rate, err := strconv.ParseFloat(getEnv("LOAN_MONTHLY_INTEREST_RATE", "5"), 64)
	if err != nil || rate < 0 {
		rate = 5
	}
	return LoanConfig{MonthlyInterestRate: rate}
}

func loadBackupConfig() BackupConfig {
	enabled, _ := strconv.ParseBool(getEnv("BACKUP_ENABLED", "true"))
	return BackupConfig{
		Enabled: enabled,
		Cron:    getEnv("BACKUP_CRON", "0 0 2 * * *"), // 02:00 daily
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
		return "https://app.emotionalsavers.com"
	}
	return origins
}
