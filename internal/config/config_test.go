package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "LINE_DB_PATH", "LINE_SEGMENTS_FILE", "LINE_VIEWPORT_HEIGHT", "LINE_FRAME_INTERVAL", "LINE_SESSION_TTL", "LINE_MAX_SESSIONS", "LINE_DEBUG"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != DefaultPort || cfg.DBPath != DefaultDBPath || cfg.SegmentsFile != "" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.ViewportHeight != DefaultViewportHeight || cfg.FrameInterval != DefaultFrameInterval || cfg.Debug {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.SessionTTL != DefaultSessionTTL || cfg.MaxSessions != DefaultMaxSessions {
		t.Errorf("unexpected session defaults %+v", cfg)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LINE_DB_PATH", "/tmp/x.db")
	t.Setenv("LINE_VIEWPORT_HEIGHT", "1080")
	t.Setenv("LINE_FRAME_INTERVAL", "33ms")
	t.Setenv("LINE_SESSION_TTL", "5m")
	t.Setenv("LINE_MAX_SESSIONS", "20")
	t.Setenv("LINE_DEBUG", "true")

	cfg := Load()
	if cfg.Port != "9000" || cfg.DBPath != "/tmp/x.db" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.ViewportHeight != 1080 || cfg.FrameInterval != 33*time.Millisecond || !cfg.Debug {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.SessionTTL != 5*time.Minute || cfg.MaxSessions != 20 {
		t.Errorf("unexpected session config %+v", cfg)
	}
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("LINE_VIEWPORT_HEIGHT", "-5")
	t.Setenv("LINE_FRAME_INTERVAL", "soon")
	t.Setenv("LINE_DEBUG", "maybe")
	t.Setenv("LINE_MAX_SESSIONS", "0")

	cfg := Load()
	if cfg.ViewportHeight != DefaultViewportHeight || cfg.FrameInterval != DefaultFrameInterval || cfg.Debug {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if cfg.MaxSessions != DefaultMaxSessions {
		t.Errorf("max sessions = %d, want default", cfg.MaxSessions)
	}
}
