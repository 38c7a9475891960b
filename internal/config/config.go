// Package config centralises configuration parsing for fittracker.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config captures runtime configuration values.
type Config struct {
	DataDir         string
	DBPath          string
	InboxDir        string
	HTTPAddress     string
	SyncSchedule    string
	FeedURL         string        // empty disables the sensor feed
	FeedTimeout     time.Duration
	AthleteWeightKg float64 // used for device files that carry no weight
	AthleteHeightCm float64
	LogLevel        slog.Level
}

// Load reads environment variables into Config, applying defaults for local use.
func Load() Config {
	dataDir := getEnv("DATA_DIR", "./data")

	return Config{
		DataDir:         dataDir,
		DBPath:          getEnv("DB_PATH", filepath.Join(dataDir, "fittracker.db")),
		InboxDir:        getEnv("INBOX_DIR", filepath.Join(dataDir, "inbox")),
		HTTPAddress:     getEnv("HTTP_ADDRESS", ":8888"),
		SyncSchedule:    getEnv("SYNC_SCHEDULE", "@hourly"),
		FeedURL:         getEnv("FEED_URL", ""),
		FeedTimeout:     getDurationEnv("FEED_TIMEOUT", 30*time.Second),
		AthleteWeightKg: getFloatEnv("ATHLETE_WEIGHT_KG", 75),
		AthleteHeightCm: getFloatEnv("ATHLETE_HEIGHT_CM", 180),
		LogLevel:        getLevelEnv("LOG_LEVEL", slog.LevelInfo),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getLevelEnv(key string, fallback slog.Level) slog.Level {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err == nil {
			return level
		}
	}
	return fallback
}
