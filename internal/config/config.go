package config

import (
	"errors"
	"os"
	"time"

	"github.com/gitpulse-io/gitpulse/pkg/logger"
	"github.com/joho/godotenv"
)

type Config struct {
	DBURL           string
	ServerPort      string
	RefreshInterval time.Duration
	RabbitMQURL     string
}

// * LoadConfiguration reads the configuration from the .env file and returns a pointer to a Config
func LoadConfiguration() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		DBURL:       os.Getenv("DB_PATH"),
		ServerPort:  os.Getenv("SERVER_PORT"),
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
	}

	if cfg.DBURL == "" {
		return nil, errors.New("DB_PATH is required")
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = ":8081"
	}

	// * Optional: periodic re-fetch of the selected repository
	if raw := os.Getenv("REFRESH_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errors.New("REFRESH_INTERVAL must be a valid duration (e.g. 30m)")
		}
		cfg.RefreshInterval = interval
	}

	logger.Info("✅ env content loaded successfully 🎉")
	return cfg, nil
}
