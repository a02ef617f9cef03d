package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	BaseURL        string
	StateDir       string
	Env            string
	RequestTimeout time.Duration
	RequestsPerSec float64
	Burst          int
}

func Load() Config {
	cfg := Config{
		BaseURL:        getEnv("MEDICARE_API_URL", "http://localhost:8080"),
		StateDir:       getEnv("MEDICARE_STATE_DIR", defaultStateDir()),
		Env:            getEnv("ENV", "development"),
		RequestTimeout: 15 * time.Second,
		RequestsPerSec: getEnvFloat("MEDICARE_RPS", 10),
		Burst:          5,
	}
	return cfg
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".medicare"
	}
	return filepath.Join(home, ".medicare")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}
