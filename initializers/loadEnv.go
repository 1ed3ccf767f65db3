package initializers

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Kariqs/confectionary-api/utils"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DBDriver       string
	DBURL          string
	JWTSecret      string
	JWTTTL         time.Duration
	RedisAddr      string
	KafkaBrokers   []string
	ImageDir       string
	S3Bucket       string
	AllowedOrigins []string
	Mail           utils.MailConfig
}

// LoadEnv reads a .env file when one is present; the process environment wins otherwise.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded:", err)
	}
}

func LoadConfig() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBURL:          os.Getenv("DB_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		KafkaBrokers:   splitList(os.Getenv("KAFKA_BROKERS")),
		ImageDir:       getEnv("IMAGE_DIR", "./images"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		Mail: utils.MailConfig{
			From:     os.Getenv("FROM_EMAIL"),
			Password: os.Getenv("FROM_EMAIL_PASSWORD"),
			SMTPHost: os.Getenv("FROM_EMAIL_SMTP"),
			Address:  os.Getenv("SMTP_ADDRESS"),
		},
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	if cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL environment variable is not set")
	}

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
