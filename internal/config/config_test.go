package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "BOARD_ROWS", "BOARD_COLUMNS", "DATABASE_URL", "REDIS_URL", "ALLOWED_ORIGINS", "FRONTEND_URL"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	if cfg.Port != "8080" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.BoardRows != 6 || cfg.BoardColumns != 7 {
		t.Errorf("board = %dx%d, want 6x7", cfg.BoardRows, cfg.BoardColumns)
	}
	if cfg.DatabaseURL != "" || cfg.RedisURL != "" {
		t.Errorf("archive and events should be disabled by default")
	}
	if cfg.SessionIdleTimeout != time.Hour {
		t.Errorf("idle timeout = %s", cfg.SessionIdleTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("BOARD_ROWS", "8")
	t.Setenv("BOARD_COLUMNS", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("FRONTEND_URL", "https://play.example")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/c4")
	t.Setenv("CLEANUP_INTERVAL_MINUTES", "2")

	cfg := LoadConfig()
	if cfg.BoardRows != 8 {
		t.Errorf("rows = %d, want 8", cfg.BoardRows)
	}
	if cfg.BoardColumns != 7 {
		t.Errorf("invalid columns should fall back to default, got %d", cfg.BoardColumns)
	}
	for _, origin := range []string{"https://play.example", "https://a.example", "https://b.example"} {
		if !cfg.IsOriginAllowed(origin) {
			t.Errorf("origin %s should be allowed", origin)
		}
	}
	if cfg.IsOriginAllowed("") {
		t.Errorf("blank origin must not be allowed")
	}
	if !strings.Contains(cfg.DatabaseURL, "default_query_exec_mode=simple_protocol") {
		t.Errorf("database url = %s", cfg.DatabaseURL)
	}
	if cfg.CleanupInterval != 2*time.Minute {
		t.Errorf("cleanup interval = %s", cfg.CleanupInterval)
	}
}

func TestValidateRejectsBadBoard(t *testing.T) {
	cfg := &Config{BoardRows: 0, BoardColumns: 7, CleanupInterval: time.Minute}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for zero rows")
	}
	cfg = &Config{BoardRows: 6, BoardColumns: 7}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for zero cleanup interval")
	}
}

func TestValidateBoard(t *testing.T) {
	tests := []struct {
		rows, columns int
		wantErr       bool
	}{
		{6, 7, false},
		{3, 3, false}, // accepted, just never winnable
		{0, 7, true},
		{6, -1, true},
	}
	for _, tt := range tests {
		err := ValidateBoard(tt.rows, tt.columns)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateBoard(%d, %d) = %v, wantErr %v", tt.rows, tt.columns, err, tt.wantErr)
		}
	}
}
