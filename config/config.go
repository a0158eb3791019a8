package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI string
	MongoDB  string
	Port     string

	JWTSecret string

	// Scheduler knobs. Interval defaults to 6h; the batch sizes bound how
	// much content/user work one cycle does.
	SchedulerInterval     time.Duration
	SchedulerRunOnStartup bool
	TrendingBatchSize     int
	ActiveUserWindow      time.Duration
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func LoadConfig() Config {
	if err := godotenv.Overload(".env"); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return Config{
		MongoURI:              getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:               getEnv("MONGO_DB", "socialfeed"),
		Port:                  getEnv("PORT", "3000"),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		SchedulerInterval:     getEnvDuration("SCHEDULER_INTERVAL", 6*time.Hour),
		SchedulerRunOnStartup: getEnv("SCHEDULER_RUN_ON_STARTUP", "false") == "true",
		TrendingBatchSize:     getEnvInt("TRENDING_BATCH_SIZE", 100),
		ActiveUserWindow:      getEnvDuration("ACTIVE_USER_WINDOW", 30*24*time.Hour),
	}
}
