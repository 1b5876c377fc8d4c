package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server configuration
type ServerConfig struct {
	Port    string
	Host    string
	GinMode string
}

// Database configuration (Postgres)
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Auth configuration
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// OTP configuration
type OTPConfig struct {
	TTL        time.Duration
	Length     int
	Echo       bool
	RateLimit  int
	RateWindow time.Duration
}

// Upload configuration
type UploadConfig struct {
	Dir      string
	BaseURL  string
	MaxBytes int64
}

// Redis configuration. An empty Addr disables the user cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	UserTTL  time.Duration
}

// MongoDB configuration. An empty URI keeps the audit log in Postgres.
type MongoConfig struct {
	URI      string
	Database string
}

// Logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	OTP      OTPConfig
	Upload   UploadConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	Log      LogConfig
}

// Default configuration values
const (
	DefaultServerPort          = "5000"
	DefaultServerHost          = ""
	DefaultGinMode             = "release"
	DefaultDBHost              = "localhost"
	DefaultDBPort              = 5432
	DefaultDBUser              = "postgres"
	DefaultDBName              = "society_management"
	DefaultDBSSLMode           = "disable"
	DefaultJWTSecret           = "change-me"
	DefaultTokenTTLMinutes     = 24 * 60
	DefaultOTPTTLSeconds       = 300
	DefaultOTPLength           = 6
	DefaultOTPRateLimit        = 5
	DefaultOTPRateWindowSec    = 600
	DefaultUploadDir           = "./uploads"
	DefaultUploadBaseURL       = "/uploads"
	DefaultUploadMaxMB         = 10
	DefaultUserCacheTTLSeconds = 300
	DefaultMongoDB             = "society_audit"
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "json"
	// Pagination defaults
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Load reads a .env file when one exists and then builds the config from the environment.
func Load() *Config {
	_ = godotenv.Load()
	return New()
}

// New returns a new Config from the environment with default values
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    getEnv("SERVER_PORT", DefaultServerPort),
			Host:    getEnv("SERVER_HOST", DefaultServerHost),
			GinMode: getEnv("GIN_MODE", DefaultGinMode),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", DefaultDBHost),
			Port:     getEnvInt("DB_PORT", DefaultDBPort),
			User:     getEnv("DB_USER", DefaultDBUser),
			Password: getEnv("DB_PASS", ""),
			Name:     getEnv("DB_NAME", DefaultDBName),
			SSLMode:  getEnv("DB_SSLMODE", DefaultDBSSLMode),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", DefaultJWTSecret),
			TokenTTL:  time.Duration(getEnvInt("JWT_TTL_MINUTES", DefaultTokenTTLMinutes)) * time.Minute,
		},
		OTP: OTPConfig{
			TTL:        time.Duration(getEnvInt("OTP_TTL_SECONDS", DefaultOTPTTLSeconds)) * time.Second,
			Length:     getEnvInt("OTP_LENGTH", DefaultOTPLength),
			Echo:       getEnvBool("OTP_ECHO", false),
			RateLimit:  getEnvInt("OTP_RATE_LIMIT", DefaultOTPRateLimit),
			RateWindow: time.Duration(getEnvInt("OTP_RATE_WINDOW_SECONDS", DefaultOTPRateWindowSec)) * time.Second,
		},
		Upload: UploadConfig{
			Dir:      getEnv("UPLOAD_DIR", DefaultUploadDir),
			BaseURL:  strings.TrimRight(getEnv("UPLOAD_BASE_URL", DefaultUploadBaseURL), "/"),
			MaxBytes: int64(getEnvInt("UPLOAD_MAX_MB", DefaultUploadMaxMB)) << 20,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			UserTTL:  time.Duration(getEnvInt("USER_CACHE_TTL_SECONDS", DefaultUserCacheTTLSeconds)) * time.Second,
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DB", DefaultMongoDB),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", DefaultLogLevel),
			Format: getEnv("LOG_FORMAT", DefaultLogFormat),
		},
	}
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// DSN renders the Postgres connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(value) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return defaultValue
}
