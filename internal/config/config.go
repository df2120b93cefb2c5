package config

import (
	"os"
	"time"
)

type Config struct {
	ProjectID       string
	LogLevel        string
	Port            string
	RefreshInterval time.Duration
}

func New() *Config {
	return &Config{
		ProjectID:       os.Getenv("PROJECTID"),
		LogLevel:        os.Getenv("LOGLEVEL"),
		Port:            getOr("PORT", "8080"),
		RefreshInterval: getDuration("REFRESHINTERVAL", 5*time.Second),
	}
}

func getOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
