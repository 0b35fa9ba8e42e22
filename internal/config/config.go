package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	SMS      SMSConfig
	Upload   UploadConfig
	Auction  AuctionConfig
	OTP      OTPConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	Env          string
	CookieSecure bool
	CORSOrigin   string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// SMTPConfig holds outbound mail settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMSConfig holds the primary and alternate SMS gateway settings
type SMSConfig struct {
	PrimaryURL     string
	PrimaryAPIKey  string
	PrimarySender  string
	AlternateURL   string
	AlternateToken string
	Timeout        time.Duration
}

// UploadConfig holds local upload storage settings
type UploadConfig struct {
	Driver        string
	Dir           string
	MaxFileBytes  int64
	CloudinaryURL string
}

// AuctionConfig holds auction engine settings
type AuctionConfig struct {
	SettlementInterval time.Duration
}

// OTPConfig holds online payment OTP settings
type OTPConfig struct {
	TTL            time.Duration
	ResendCooldown time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Env:          getEnv("SERVER_ENV", "development"),
			CookieSecure: getEnvAsBool("COOKIE_SECURE", false),
			CORSOrigin:   getEnv("CORS_ORIGIN", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvAsInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "gem_auction"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-this-in-production"),
			Expiry: getEnvAsDuration("JWT_EXPIRY", 24*time.Hour),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("MAIL_FROM", "no-reply@gem-auction.local"),
			FromName: getEnv("MAIL_FROM_NAME", "Gem Auction"),
		},
		SMS: SMSConfig{
			PrimaryURL:     getEnv("SMS_PRIMARY_URL", ""),
			PrimaryAPIKey:  getEnv("SMS_PRIMARY_API_KEY", ""),
			PrimarySender:  getEnv("SMS_PRIMARY_SENDER", "GEMAUCTION"),
			AlternateURL:   getEnv("SMS_ALTERNATE_URL", ""),
			AlternateToken: getEnv("SMS_ALTERNATE_TOKEN", ""),
			Timeout:        getEnvAsDuration("SMS_TIMEOUT", 10*time.Second),
		},
		Upload: UploadConfig{
			Driver:        getEnv("UPLOAD_DRIVER", "local"),
			Dir:           getEnv("UPLOAD_DIR", "uploads"),
			MaxFileBytes:  int64(getEnvAsInt("UPLOAD_MAX_BYTES", 5*1024*1024)),
			CloudinaryURL: getEnv("CLOUDINARY_URL", ""),
		},
		Auction: AuctionConfig{
			SettlementInterval: getEnvAsDuration("AUCTION_SETTLEMENT_INTERVAL", 30*time.Second),
		},
		OTP: OTPConfig{
			TTL:            getEnvAsDuration("OTP_TTL", 7*time.Minute),
			ResendCooldown: getEnvAsDuration("OTP_RESEND_COOLDOWN", 30*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
