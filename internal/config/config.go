package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath    string // Path to the SQLite database file
	Port            string // HTTP listen port
	BaseURL         string // Backend base URL override for image links (derived from the request when empty)
	FrontendURL     string // Frontend base URL (for reset links and QR codes)
	RedisURL        string // Optional Redis cache address
	JWTSecret       string // Secret key for token signing
	SessionTTLHours int    // Session token lifetime in hours; 0 means no expiry
	UploadDir       string // Directory for uploaded animal images
	MaxUploadMB     int64  // Multipart upload cap in MiB
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	MailSender      string // From address on reset emails
	SeedDemo        bool   // Insert the demo animals at startup
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		DatabasePath:    getEnv("DB_PATH", "database.db"),
		Port:            getEnv("PORT", "8080"),
		BaseURL:         getEnv("BASE_URL", ""),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
		RedisURL:        getEnv("REDIS_URL", ""),
		JWTSecret:       getEnv("JWT_SECRET", "dev-default-secret"),
		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 0),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadMB:     int64(getEnvInt("MAX_UPLOAD_MB", 16)),
		SMTPHost:        getEnv("SMTP_HOST", ""),
		SMTPPort:        getEnvInt("SMTP_PORT", 587),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		MailSender:      getEnv("MAIL_SENDER", ""),
		SeedDemo:        getEnvBool("SEED_DEMO", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
