package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env          string
	ServerPort   string
	BaseURL      string
	DatabaseDSN  string
	AccessSecret string
	TokenTTL     time.Duration
	LogLevel     string

	KafkaBroker   string
	KafkaTopic    string
	KafkaGroupID  string
	KafkaUsername string
	KafkaPassword string

	StorageDriver  string // cloudinary | s3
	CloudinaryUrl  string
	AWSRegion      string
	S3BucketPrefix string
	AWSEndpointURL string
	SignedURLTTL   time.Duration

	RedisURL       string
	LoginRateLimit int

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	MailFromName string
	AppBaseURL   string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	return Config{
		Env:          getEnv("ENV", "dev"),
		ServerPort:   getEnv("SERVER_PORT", ":3000"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:5173"),
		DatabaseDSN:  os.Getenv("DATABASE_DSN"),
		AccessSecret: os.Getenv("ACCESS_SECRET"),
		TokenTTL:     getDuration("TOKEN_TTL", 24*time.Hour),
		LogLevel:     os.Getenv("LOG_LEVEL"),

		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "temped.events"),
		KafkaGroupID:  getEnv("KAFKA_GROUP_ID", "temped-mailer"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),

		StorageDriver:  getEnv("STORAGE_DRIVER", "cloudinary"),
		CloudinaryUrl:  os.Getenv("CLOUDINARY_URL"),
		AWSRegion:      getEnv("AWS_REGION", "af-south-1"),
		S3BucketPrefix: getEnv("S3_BUCKET_PREFIX", "temped"),
		AWSEndpointURL: os.Getenv("AWS_ENDPOINT_URL"),
		SignedURLTTL:   getDuration("SIGNED_URL_TTL", time.Hour),

		RedisURL:       os.Getenv("REDIS_URL"),
		LoginRateLimit: getInt("LOGIN_RATE_LIMIT", 10),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailFromName: getEnv("MAIL_FROM_NAME", "TempEd"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:5173"),
	}
}

func (c Config) IsProduction() bool {
	return c.Env == "prod"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}
