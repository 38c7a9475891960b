package config

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"DATA_DIR", "DB_PATH", "INBOX_DIR", "HTTP_ADDRESS", "SYNC_SCHEDULE", "FEED_URL",
		"FEED_TIMEOUT", "ATHLETE_WEIGHT_KG", "ATHLETE_HEIGHT_CM", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, filepath.Join("data", "fittracker.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join("data", "inbox"), cfg.InboxDir)
	assert.Equal(t, ":8888", cfg.HTTPAddress)
	assert.Equal(t, "@hourly", cfg.SyncSchedule)
	assert.Empty(t, cfg.FeedURL)
	assert.Equal(t, 30*time.Second, cfg.FeedTimeout)
	assert.Equal(t, 75.0, cfg.AthleteWeightKg)
	assert.Equal(t, 180.0, cfg.AthleteHeightCm)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/var/lib/fittracker")
	t.Setenv("DB_PATH", "")
	t.Setenv("INBOX_DIR", "/srv/inbox")
	t.Setenv("FEED_URL", "http://gateway:8081")
	t.Setenv("FEED_TIMEOUT", "5s")
	t.Setenv("ATHLETE_WEIGHT_KG", "82.5")
	t.Setenv("ATHLETE_HEIGHT_CM", "not-a-number")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, "/var/lib/fittracker/fittracker.db", cfg.DBPath)
	assert.Equal(t, "/srv/inbox", cfg.InboxDir)
	assert.Equal(t, "http://gateway:8081", cfg.FeedURL)
	assert.Equal(t, 5*time.Second, cfg.FeedTimeout)
	assert.Equal(t, 82.5, cfg.AthleteWeightKg)
	assert.Equal(t, 180.0, cfg.AthleteHeightCm)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}
