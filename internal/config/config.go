package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string

	AMQPURL         string
	NotifyExchange  string
	NotifyQueue     string
	StorageDir      string
	AWSRegion       string
	MailFromAddress string
	MailFromName    string
	AppBaseURL      string
}

func Load() *Config {
	// Missing .env is fine; real deployments use the environment directly.
	_ = godotenv.Load()

	return &Config{
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "flowfam"),
		DBPassword:    getEnv("DB_PASSWORD", "flowfam"),
		DBName:        getEnv("DB_NAME", "flowfam"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),

		AMQPURL:         getEnv("AMQP_URL", ""),
		NotifyExchange:  getEnv("NOTIFY_EXCHANGE", "flowfam.notifications"),
		NotifyQueue:     getEnv("NOTIFY_QUEUE", "notifications"),
		StorageDir:      getEnv("STORAGE_DIR", "data/files"),
		AWSRegion:       getEnv("AWS_REGION", "eu-west-1"),
		MailFromAddress: getEnv("MAIL_FROM_ADDRESS", ""),
		MailFromName:    getEnv("MAIL_FROM_NAME", "Flow Fam"),
		AppBaseURL:      getEnv("APP_BASE_URL", "http://localhost:8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
