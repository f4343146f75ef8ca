package config

import (
	"os"
	"strconv"
	"time"
)

const (
	DefaultPort           = "8080"
	DefaultDBPath         = "data/line.db"
	DefaultViewportHeight = 900.0
	DefaultFrameInterval  = 16 * time.Millisecond
	DefaultSessionTTL     = 30 * time.Minute
	DefaultMaxSessions    = 1000
)

// Config holds the server settings read from the environment.
type Config struct {
	Port           string
	DBPath         string
	SegmentsFile   string
	ViewportHeight float64
	FrameInterval  time.Duration
	SessionTTL     time.Duration
	MaxSessions    int
	AdminUsername  string
	AdminPassword  string
	Debug          bool
}

// Load reads PORT, LINE_DB_PATH, LINE_SEGMENTS_FILE, LINE_VIEWPORT_HEIGHT,
// LINE_FRAME_INTERVAL, LINE_SESSION_TTL, LINE_MAX_SESSIONS, ADMIN_USERNAME,
// ADMIN_PASSWORD and LINE_DEBUG. Unset or unparsable values fall back to the
// defaults.
func Load() Config {
	return Config{
		Port:           getString("PORT", DefaultPort),
		DBPath:         getString("LINE_DB_PATH", DefaultDBPath),
		SegmentsFile:   os.Getenv("LINE_SEGMENTS_FILE"),
		ViewportHeight: getFloat("LINE_VIEWPORT_HEIGHT", DefaultViewportHeight),
		FrameInterval:  getDuration("LINE_FRAME_INTERVAL", DefaultFrameInterval),
		SessionTTL:     getDuration("LINE_SESSION_TTL", DefaultSessionTTL),
		MaxSessions:    getInt("LINE_MAX_SESSIONS", DefaultMaxSessions),
		AdminUsername:  os.Getenv("ADMIN_USERNAME"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		Debug:          getBool("LINE_DEBUG", false),
	}
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
