package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rmitchellscott/WxMinima/fetch"
	"github.com/rmitchellscott/WxMinima/minima"
)

// Config is the environment-driven configuration of the tool
type Config struct {
	Client   fetch.ClientConfig
	TAFTTL   time.Duration
	METARTTL time.Duration
	Minima   minima.Minima
	LogLevel string
}

// loadConfig reads an optional .env file and then the process environment.
// A missing .env file is not an error.
func loadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading %s: %w", envFile, err)
	}

	var cfg Config
	var err error

	cfg.Client.BaseURL = getEnv("WX_BASE_URL", fetch.DefaultBaseURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	if cfg.Client.Timeout, err = parseDuration("WX_HTTP_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.Client.MaxRetries, err = parseInt("WX_MAX_RETRIES", "2"); err != nil {
		return Config{}, err
	}
	if cfg.Client.RetryDelay, err = parseDuration("WX_RETRY_DELAY", "500ms"); err != nil {
		return Config{}, err
	}
	if cfg.Client.Multiplier, err = parseFloat("WX_RETRY_MULTIPLIER", "2"); err != nil {
		return Config{}, err
	}
	if cfg.Client.BreakerTimeout, err = parseDuration("WX_BREAKER_TIMEOUT", "30s"); err != nil {
		return Config{}, err
	}
	if cfg.TAFTTL, err = parseDuration("WX_TAF_TTL", fetch.DefaultTAFTTL.String()); err != nil {
		return Config{}, err
	}
	if cfg.METARTTL, err = parseDuration("WX_METAR_TTL", fetch.DefaultMETARTTL.String()); err != nil {
		return Config{}, err
	}
	if cfg.Minima.CeilingFeet, err = parseFloat("MINIMA_CEILING", "1000"); err != nil {
		return Config{}, err
	}
	if cfg.Minima.VisibilityMiles, err = parseFloat("MINIMA_VISIBILITY", "3"); err != nil {
		return Config{}, err
	}

	if cfg.Client.MaxRetries < 0 {
		return Config{}, fmt.Errorf("WX_MAX_RETRIES must not be negative, got %d", cfg.Client.MaxRetries)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	value := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return duration, nil
}

func parseInt(key, defaultValue string) (int, error) {
	value := getEnv(key, defaultValue)
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return intValue, nil
}

func parseFloat(key, defaultValue string) (float64, error) {
	value := getEnv(key, defaultValue)
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return floatValue, nil
}
