package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// Flight pricing collaborator. An empty base URL disables live
	// pricing and every flight estimate uses the local model.
	FlightAPIBaseURL string
	FlightAPIKey     string
	FlightTimeout    time.Duration

	// RebuildInterval controls how often the rate snapshot is rebuilt
	// from the sources.
	RebuildInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.FlightAPIBaseURL = os.Getenv("FLIGHT_API_BASE_URL")
	cfg.FlightAPIKey = os.Getenv("FLIGHT_API_KEY")

	timeoutStr := getenvDefault("FLIGHT_API_TIMEOUT", "5s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FLIGHT_API_TIMEOUT: %w", err)
	}
	cfg.FlightTimeout = timeout

	// Rate tables change rarely; a daily rebuild is plenty.
	intervalStr := getenvDefault("RATE_REBUILD_INTERVAL", "24h")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_REBUILD_INTERVAL: %w", err)
	}
	cfg.RebuildInterval = interval

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
