package main

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"xpose-backend/internal/config"
)

// Config holds the worker-only settings. Connections come from the app config.
type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Concurrency   int
	BackfillLimit int
	HealthPort    string
}

func loadConfig(app *config.Config) *Config {
	cfg := &Config{
		RedisAddr:     app.Redis.Host,
		RedisPassword: app.Redis.Password,
		RedisDB:       app.Redis.DB,
		Concurrency:   envInt("WORKER_CONCURRENCY", 4),
		BackfillLimit: envInt("WORKER_BACKFILL_LIMIT", 100),
		HealthPort:    envString("WORKER_HEALTH_PORT", "9999"),
	}

	log.Info().
		Str("redis", cfg.RedisAddr).
		Int("concurrency", cfg.Concurrency).
		Int("backfill_limit", cfg.BackfillLimit).
		Msg("[Config] Worker configuration loaded")

	return cfg
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
