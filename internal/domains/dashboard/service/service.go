package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"xpose-backend/internal/domains/dashboard/model"
	"xpose-backend/pkg/cache"
)

const statsTTL = 30 * time.Second

// Counter is satisfied by the repositories of every counted entity.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type ServiceInterface interface {
	Stats(ctx context.Context) (*model.Stats, error)
}

type dashboardService struct {
	users   Counter
	artists Counter
	series  Counter
	assets  Counter
	cache   cache.Cache
}

func NewDashboardService(users, artists, series, assets Counter, c cache.Cache) ServiceInterface {
	return &dashboardService{
		users:   users,
		artists: artists,
		series:  series,
		assets:  assets,
		cache:   c,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*model.Stats, error) {
	var cached model.Stats
	found, err := s.cache.Get(ctx, cache.KeyDashboardStats, &cached)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read cached dashboard stats")
	}
	if found {
		return &cached, nil
	}

	var stats model.Stats
	counts := []struct {
		name    string
		counter Counter
		dest    *int64
	}{
		{"users", s.users, &stats.Users},
		{"artists", s.artists, &stats.Artists},
		{"series", s.series, &stats.Series},
		{"assets", s.assets, &stats.Assets},
	}
	for _, c := range counts {
		n, err := c.counter.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, err)
		}
		*c.dest = n
	}

	if err := s.cache.Set(ctx, cache.KeyDashboardStats, stats, statsTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to cache dashboard stats")
	}
	return &stats, nil
}
