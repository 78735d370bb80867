package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
)

type Config struct {
	Port                 string
	BoardRows            int
	BoardColumns         int
	AllowedOrigins       []string
	FrontendURL          string
	StaticDir            string
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	RedisURL             string
	RedisPassword        string
	SessionIdleTimeout   time.Duration
	FinishedSessionTTL   time.Duration
	CleanupInterval      time.Duration
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	boardRows := GetEnvAsInt("BOARD_ROWS", domain.DefaultRows)
	boardColumns := GetEnvAsInt("BOARD_COLUMNS", domain.DefaultColumns)

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:8080")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	allowedOrigins := []string{
		frontendURL,
		"http://localhost:5173", // Local development
	}
	if allowedOriginsStr != "" {
		for _, origin := range strings.Split(allowedOriginsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Empty DATABASE_URL disables the game archive.
	dbURL := GetEnv("DATABASE_URL", "")
	if dbURL != "" {
		if u, err := url.Parse(dbURL); err == nil {
			q := u.Query()
			if q.Get("default_query_exec_mode") == "" {
				q.Set("default_query_exec_mode", "simple_protocol")
				u.RawQuery = q.Encode()
				dbURL = u.String()
			}
		}
	}

	return &Config{
		Port:                 port,
		BoardRows:            boardRows,
		BoardColumns:         boardColumns,
		AllowedOrigins:       allowedOrigins,
		FrontendURL:          frontendURL,
		StaticDir:            GetEnv("STATIC_DIR", "./static"),
		DatabaseURL:          dbURL,
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		RedisURL:             GetEnv("REDIS_URL", ""),
		RedisPassword:        GetEnv("REDIS_PASSWORD", ""),
		SessionIdleTimeout:   GetEnvAsMinutes("SESSION_IDLE_TIMEOUT_MINUTES", 60),
		FinishedSessionTTL:   GetEnvAsMinutes("FINISHED_SESSION_TTL_MINUTES", 30),
		CleanupInterval:      GetEnvAsMinutes("CLEANUP_INTERVAL_MINUTES", 5),
	}
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if err := ValidateBoard(c.BoardRows, c.BoardColumns); err != nil {
		return err
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("cleanup interval must be positive, got %s", c.CleanupInterval)
	}
	return nil
}

// ValidateBoard rejects non-positive sizes. Boards too small for a run of
// four in either direction are allowed but logged.
func ValidateBoard(rows, columns int) error {
	if rows < 1 || columns < 1 {
		return fmt.Errorf("board must be at least 1x1, got %dx%d", rows, columns)
	}
	if rows < domain.ToWin && columns < domain.ToWin {
		log.Printf("[CONFIG] Warning: %dx%d board can never produce a winner", rows, columns)
	}
	return nil
}

func (c *Config) IsOriginAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if allowed == origin {
			return true
		}
	}
	return false
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[CONFIG] Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsMinutes(key string, defaultMinutes int) time.Duration {
	return time.Duration(GetEnvAsInt(key, defaultMinutes)) * time.Minute
}
