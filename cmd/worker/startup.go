package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"xpose-backend/pkg/container"
)

type probe struct {
	name  string
	check func(ctx context.Context) error
}

func probes(c *container.Container) []probe {
	return []probe{
		{"postgres", c.DB.HealthCheck},
		{"redis", c.Redis.HealthCheck},
	}
}

// startServices refuses to start the worker unless Postgres and Redis
// answer, then exposes /health and /ready on the worker health port.
func startServices(c *container.Container, cfg *Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, p := range probes(c) {
		if err := p.check(ctx); err != nil {
			return fmt.Errorf("%s unreachable: %w", p.name, err)
		}
		log.Info().Str("dependency", p.name).Msg("[Startup] Reachable")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HealthPort,
		Handler:           healthRouter(c),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("port", cfg.HealthPort).Msg("[Health] Listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("[Health] Server stopped")
		}
	}()
	return nil
}

func healthRouter(c *container.Container) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "UP", "service": "xpose-worker"})
	})

	r.GET("/ready", func(ctx *gin.Context) {
		status := gin.H{}
		code := http.StatusOK
		for _, p := range probes(c) {
			if err := p.check(ctx.Request.Context()); err != nil {
				status[p.name] = err.Error()
				code = http.StatusServiceUnavailable
				continue
			}
			status[p.name] = "ok"
		}
		ctx.JSON(code, status)
	})

	return r
}
