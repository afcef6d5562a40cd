package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var validate = validator.New()

// AppConfig holds everything the application reads from the environment.
type AppConfig struct {
	// OpenWeatherAPIKey authenticates current-conditions and forecast calls.
	OpenWeatherAPIKey string `validate:"required"`

	// HTTPTimeout bounds every outbound request.
	HTTPTimeout time.Duration `validate:"gt=0"`

	// WatchlistPath is the JSON file backing the watchlist.
	WatchlistPath string `validate:"required"`

	// RefreshInterval controls the periodic watchlist refresh.
	RefreshInterval time.Duration `validate:"gt=0"`

	LogLevel string
}

// Load reads configuration from the environment (and an optional .env file)
// with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug("no .env file loaded")
	}

	cfg := &AppConfig{
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		WatchlistPath:     getenvDefault("WATCHLIST_FILE", "watchlist.json"),
		LogLevel:          getenvDefault("LOG_LEVEL", "info"),
	}

	timeout, err := getenvDuration("HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	interval, err := getenvDuration("REFRESH_INTERVAL", 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ParseLevel maps the configured log level onto logrus, defaulting to info.
func (c *AppConfig) ParseLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return time.ParseDuration(v)
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
