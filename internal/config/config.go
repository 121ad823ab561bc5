package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultAPIBaseURL         = "http://127.0.0.1:8000"
	defaultHTTPTimeoutSeconds = 10
	defaultPollSeconds        = 30
	defaultPollMinSeconds     = 5
	defaultExchange           = "shfe"
	defaultYearlyBasePath     = "/yearly"
)

// Config keeps the runtime configuration for the dashboard client.
type Config struct {
	API      APIConfig
	Poll     PollConfig
	Exchange string
	LogFile  string
}

// APIConfig holds collector endpoint settings.
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
	YearlyBasePath string
}

// PollConfig holds snapshot polling cadence settings. DefaultSeconds applies
// when the collector's health descriptor cannot be fetched; MinSeconds is the
// floor applied to the collector's suggested interval.
type PollConfig struct {
	DefaultSeconds int
	MinSeconds     int
}

// Load builds Config from environment variables, reading an optional .env
// file first.
func Load() (*Config, error) {
	// Missing .env is the common case outside development.
	_ = godotenv.Load()

	timeout, err := getInt("NICKEL_HTTP_TIMEOUT_SECONDS", defaultHTTPTimeoutSeconds)
	if err != nil {
		return nil, fmt.Errorf("parse NICKEL_HTTP_TIMEOUT_SECONDS: %w", err)
	}

	pollDefault, err := getInt("NICKEL_POLL_DEFAULT_SECONDS", defaultPollSeconds)
	if err != nil {
		return nil, fmt.Errorf("parse NICKEL_POLL_DEFAULT_SECONDS: %w", err)
	}

	pollMin, err := getInt("NICKEL_POLL_MIN_SECONDS", defaultPollMinSeconds)
	if err != nil {
		return nil, fmt.Errorf("parse NICKEL_POLL_MIN_SECONDS: %w", err)
	}

	return &Config{
		API: APIConfig{
			BaseURL:        getString("NICKEL_API_BASE_URL", defaultAPIBaseURL),
			TimeoutSeconds: timeout,
			YearlyBasePath: getString("NICKEL_YEARLY_BASE_PATH", defaultYearlyBasePath),
		},
		Poll: PollConfig{
			DefaultSeconds: pollDefault,
			MinSeconds:     pollMin,
		},
		Exchange: getString("NICKEL_EXCHANGE", defaultExchange),
		LogFile:  os.Getenv("NICKEL_LOG_FILE"),
	}, nil
}

func getString(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("convert %s value %q to int: %w", key, value, err)
	}
	return parsed, nil
}
