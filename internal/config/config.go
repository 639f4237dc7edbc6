// Package config provides runtime configuration values for the simulator.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds configuration knobs for the interactive session.
type Config struct {
	StoreName string
	PageSize  int
	LogLevel  slog.Level
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func levelenv(key string, def slog.Level) slog.Level {
	switch strings.ToLower(getenv(key, "")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return def
	}
}

// Load collects configuration from environment with defaults. A .env
// file in the working directory is read first when present.
func Load() Config {
	_ = godotenv.Load()
	pageSize := atoienv("PAGE_SIZE", 5)
	if pageSize < 1 {
		pageSize = 5
	}
	return Config{
		StoreName: getenv("STORE_NAME", "Shop Cart Simulator"),
		PageSize:  pageSize,
		LogLevel:  levelenv("LOG_LEVEL", slog.LevelInfo),
	}
}
