package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port                    string
	MetricsPort             string
	Env                     string
	PostgresURL             string
	MongoURI                string
	MongoDatabase           string
	JWTSecret               string
	TokenTTL                time.Duration
	FirebaseCredentialsPath string
	StorageBucket           string
}

func Load() *Config {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "3000"),
		MetricsPort:             getEnv("METRICS_PORT", "9090"),
		Env:                     getEnv("ENV", "development"),
		PostgresURL:             getEnv("POSTGRES_URL", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "blogbliss"),
		JWTSecret:               getEnv("JWT_SECRET", "default_secret_key"),
		TokenTTL:                getDurationEnv("TOKEN_TTL", 72*time.Hour),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		StorageBucket:           getEnv("STORAGE_BUCKET", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid duration, using default")
	}
	return defaultValue
}
