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
	// Store
	Store         string // postgres or memory
	DatabaseURL   string
	RunMigrations bool

	// Redis, optional. Without it room locks are held in process.
	RedisURL      string
	RedisPassword string

	// Tokens are issued by the identity service and only verified here:
	// HS256 with the shared secret, RS256 against the JWKS at JWKSURL.
	AccessTokenSecret string
	JWKSURL           string

	// Kafka, optional
	KafkaBroker string
	KafkaTopic  string

	// Mailjet, optional
	MailjetAPIKey    string
	MailjetAPISecret string
	MailFrom         string
	MailFromName     string

	// Cloudinary, optional
	CloudinaryURL    string
	CloudinaryFolder string

	// Server
	ServerPort         string
	LogLevel           string
	CORSAllowedOrigins []string
}

// Load loads configuration from environment variables
func Load() *Config {
	// .env is optional outside local development
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg := &Config{
		Store:         getEnv("STORE", "postgres"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RunMigrations: getBool("RUN_MIGRATIONS", true),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		AccessTokenSecret: os.Getenv("ACCESS_TOKEN_SECRET"),
		JWKSURL:           os.Getenv("JWKS_URL"),

		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		KafkaTopic:  getEnv("KAFKA_TOPIC", "hotel.bookings"),

		MailjetAPIKey:    os.Getenv("MAILJET_API_KEY"),
		MailjetAPISecret: os.Getenv("MAILJET_API_SECRET"),
		MailFrom:         getEnv("MAIL_FROM", "reservations@example.com"),
		MailFromName:     getEnv("MAIL_FROM_NAME", "Hotel Reservations"),

		CloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
		CloudinaryFolder: getEnv("CLOUDINARY_FOLDER", "rooms"),

		ServerPort:         getEnv("SERVER_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS"),
	}

	switch cfg.Store {
	case "postgres":
		if cfg.DatabaseURL == "" {
			log.Panic("DATABASE_URL is required when STORE=postgres")
		}
	case "memory":
		log.Println("WARNING: STORE=memory, data is lost on restart")
	default:
		log.Panicf("unknown STORE %q (want postgres or memory)", cfg.Store)
	}
	if cfg.AccessTokenSecret == "" && cfg.JWKSURL == "" {
		log.Panic("ACCESS_TOKEN_SECRET or JWKS_URL is required")
	}

	return cfg
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
