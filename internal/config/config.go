package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	TelegramToken  string
	OpenAIAPIKey   string
	DirectoryURL   string
	FundingAPIKey  string
	DatabasePath   string
	LexiconPath    string
	BatchSize      int
	DirectoryPoll  time.Duration
	FundingPoll    time.Duration
	MarketCacheTTL time.Duration

	// DispatchRate limits alert sends per second across all subscribers.
	DispatchRate float64
	// SuppressCriticalAlerts drops critical-risk alerts from broadcast.
	// Subscribers can still lower their own risk tolerance further.
	SuppressCriticalAlerts bool

	ServerPort string
	LogLevel   string
}

func Load() *Config {
	return &Config{
		TelegramToken:          getEnv("TELEGRAM_BOT_TOKEN", ""),
		OpenAIAPIKey:           getEnv("OPENAI_API_KEY", ""),
		DirectoryURL:           getEnv("DIRECTORY_API_URL", ""),
		FundingAPIKey:          getEnv("FUNDING_API_KEY", ""),
		DatabasePath:           getEnv("DATABASE_PATH", "web3scout.db"),
		LexiconPath:            getEnv("LEXICON_PATH", ""),
		BatchSize:              getEnvAsInt("BATCH_SIZE", 20),
		DirectoryPoll:          getEnvAsDuration("DIRECTORY_POLL_INTERVAL", 2*time.Hour),
		FundingPoll:            getEnvAsDuration("FUNDING_POLL_INTERVAL", 30*time.Minute),
		MarketCacheTTL:         getEnvAsDuration("MARKET_CACHE_TTL", 30*time.Second),
		DispatchRate:           getEnvAsFloat("DISPATCH_RATE_PER_SECOND", 5),
		SuppressCriticalAlerts: getEnvAsBool("SUPPRESS_CRITICAL_ALERTS", true),
		ServerPort:             getEnv("SERVER_PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the fields without which the process cannot run.
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be positive")
	}
	if c.DispatchRate <= 0 {
		return fmt.Errorf("DISPATCH_RATE_PER_SECOND must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
