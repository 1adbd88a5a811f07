// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Admin       AdminConfig
	AWS         AWSConfig
	Upload      UploadConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	Feeds       FeedsConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	// URL selects the driver by scheme: postgres://... or sqlite://path.
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type JWTConfig struct {
	SecretKey     string
	UserTokenTTL  int // in hours
	AdminTokenTTL int // in hours
}

// AdminConfig is the fixed admin credential pair. Admin identity is not a
// user record; admin tokens are issued from this pair alone.
type AdminConfig struct {
	ID       string
	Password string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
}

type UploadConfig struct {
	Dir              string
	MaxSizeMB        int
	MaxCSVSizeMB     int
	AllowedMimeTypes []string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type CORSConfig struct {
	AllowedOrigin string
}

type FeedsConfig struct {
	ComtradeKey  string
	GNewsKey     string
	GroqKey      string
	RapidAPIKey  string
	TradeTTLMins int
	NewsTTLMins  int
	TimeoutSecs  int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			URL:          getEnv("DATABASE_URL", "sqlite://exportbridge.db"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		JWT: JWTConfig{
			SecretKey:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			UserTokenTTL:  getEnvAsInt("JWT_USER_TTL", 168), // 7 days
			AdminTokenTTL: getEnvAsInt("JWT_ADMIN_TTL", 24),
		},
		Admin: AdminConfig{
			ID:       getEnv("ADMIN_ID", "admin"),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "ap-south-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "exportbridge-uploads"),
		},
		Upload: UploadConfig{
			Dir:          getEnv("UPLOAD_DIR", "./uploads"),
			MaxSizeMB:    getEnvAsInt("UPLOAD_MAX_SIZE_MB", 10),
			MaxCSVSizeMB: getEnvAsInt("UPLOAD_MAX_CSV_SIZE_MB", 50),
			AllowedMimeTypes: getEnvAsSlice("UPLOAD_ALLOWED_MIME_TYPES", []string{
				"image/jpeg", "image/png", "application/pdf", "text/csv",
			}),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 10),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		CORS: CORSConfig{
			AllowedOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
		},
		Feeds: FeedsConfig{
			ComtradeKey:  getEnv("COMTRADE_API_KEY", ""),
			GNewsKey:     getEnv("GNEWS_API_KEY", ""),
			GroqKey:      getEnv("GROQ_API_KEY", ""),
			RapidAPIKey:  getEnv("RAPIDAPI_KEY", ""),
			TradeTTLMins: getEnvAsInt("TRADE_CACHE_TTL_MINS", 60),
			NewsTTLMins:  getEnvAsInt("NEWS_CACHE_TTL_MINS", 30),
			TimeoutSecs:  getEnvAsInt("FEED_TIMEOUT_SECS", 30),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWT.SecretKey == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT secret key must be changed in production")
		}
		if c.Admin.Password == "" {
			return fmt.Errorf("admin password is required in production")
		}
		if strings.HasPrefix(c.Database.URL, "sqlite://") {
			return fmt.Errorf("a postgres DATABASE_URL is required in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
