package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port           string
	AllowedOrigins string
	AuthRateLimit  int // requests per minute per IP on /v1/auth, 0 disables

	DBDriver   string // postgres, mysql or sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBDSN      string // full DSN, overrides the individual DB_* values

	JWTKey              string
	AccessExpireMinutes int
	SaltRound           int // bcrypt cost

	ReviewerKey string // shared secret granting the reviewer role

	StorageDriver string // ftp or memory
	FTPHost       string
	FTPPass       string
	FTPTeacher    string // login for the teacher materials bucket
	FTPArticle    string // login for the article bucket
	FTPUser       string // login for the general material bucket
	FTPPfp        string // login for the profile picture bucket
	FTPTimeout    int    // seconds

	SendGridKey     string
	EmailSender     string
	EmailSenderName string

	ReviewWebhookURL string

	KeepAliveSpec string // cron spec for the DB keep-alive ping
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
		Port:           getEnv("PORT", "3000"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		AuthRateLimit:  getEnvInt("AUTH_RATE_LIMIT", 20),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "virtualab"),
		DBDSN:      getEnv("DB_DSN", ""),

		JWTKey:              getEnv("JWT_SECRET_KEY", "defaultSecret"),
		AccessExpireMinutes: getEnvInt("JWT_ACCESS_EXPIRE_MINUTES", 60*24),
		SaltRound:           getEnvInt("SALT_ROUND", 10),

		ReviewerKey: getEnv("REVIEWER_KEY", ""),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "ftp")),
		FTPHost:       getEnv("FTP_HOST", "localhost:21"),
		FTPPass:       getEnv("FTP_PASS", ""),
		FTPTeacher:    getEnv("FTP_TEACHER", "teacher"),
		FTPArticle:    getEnv("FTP_ARTICLE", "article"),
		FTPUser:       getEnv("FTP_USER", "user"),
		FTPPfp:        getEnv("FTP_PFP", "pfp"),
		FTPTimeout:    getEnvInt("FTP_TIMEOUT_SECONDS", 10),

		SendGridKey:     getEnv("SENDGRID_API_KEY", ""),
		EmailSender:     getEnv("EMAIL_SENDER", "no-reply@virtualab.local"),
		EmailSenderName: getEnv("EMAIL_SENDER_NAME", "Admin Virtual Lab"),

		ReviewWebhookURL: getEnv("REVIEW_WEBHOOK_URL", ""),

		KeepAliveSpec: getEnv("KEEP_ALIVE_SPEC", "@every 15m"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.ReviewerKey == "" {
		log.Println("Warning: REVIEWER_KEY is empty. Reviewer routes are unreachable.")
	}
	if AppConfig.SendGridKey == "" {
		log.Println("Warning: SENDGRID_API_KEY is empty. Account emails will only be logged.")
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
