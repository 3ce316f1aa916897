package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	TokenTTL  int // hours
	SaltRound int

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	EmailSender string
	Password    string // SMTP App Password
	SMTPHost    string
	SMTPPort    string

	SMSApiKey string
	SMSApiUrl string

	UploadDir string

	CacheTTLSeconds int
	CacheMaxSize    int
	RateLimitPerMin int

	SweeperIntervalMinutes int
	SweeperBatchSize       int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		TokenTTL:  getEnvInt("TOKEN_TTL_HOURS", 24),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "lams_db"),
		DBPort:     getEnv("DB_PORT", "5432"),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("EMAIL_PASSWORD", "defaultSecret"),
		SMTPHost:    getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:    getEnv("SMTP_PORT", "587"),

		SMSApiKey: getEnv("SMS_API_KEY", ""),
		SMSApiUrl: getEnv("SMS_API_URL", "https://www.fast2sms.com/dev/bulkV2"),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),

		CacheTTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 300),
		CacheMaxSize:    getEnvInt("CACHE_MAX_SIZE", 2000),
		RateLimitPerMin: getEnvInt("RATE_LIMIT_PER_MIN", 500),

		SweeperIntervalMinutes: getEnvInt("SWEEPER_INTERVAL_MINUTES", 15),
		SweeperBatchSize:       getEnvInt("SWEEPER_BATCH_SIZE", 100),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
