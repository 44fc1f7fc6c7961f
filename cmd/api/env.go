package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// loadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

type config struct {
	Addr            string
	ShutdownTimeout time.Duration
	SessionTTL      time.Duration
	SweepInterval   time.Duration
}

// loadConfig reads the service configuration from the environment.
func loadConfig() (config, error) {
	cfg := config{
		Addr: envString("CALCULATOR_ADDR", ":8080"),
	}

	var err error
	if cfg.ShutdownTimeout, err = envDuration("CALCULATOR_SHUTDOWN_TIMEOUT", 5*time.Second); err != nil {
		return config{}, err
	}
	if cfg.SessionTTL, err = envDuration("CALCULATOR_SESSION_TTL", 30*time.Minute); err != nil {
		return config{}, err
	}
	if cfg.SweepInterval, err = envDuration("CALCULATOR_SWEEP_INTERVAL", time.Minute); err != nil {
		return config{}, err
	}
	if cfg.SweepInterval <= 0 {
		return config{}, fmt.Errorf("CALCULATOR_SWEEP_INTERVAL must be positive, got %s", cfg.SweepInterval)
	}

	return cfg, nil
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		// Bare numbers are taken as seconds.
		secs, convErr := strconv.Atoi(v)
		if convErr != nil {
			return 0, fmt.Errorf("parse %s: %w", key, err)
		}
		d = time.Duration(secs) * time.Second
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", key, d)
	}
	return d, nil
}
