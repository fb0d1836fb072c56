package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xpose-backend/pkg/cache"
)

type counter struct {
	n     int64
	err   error
	calls int
}

func (c *counter) Count(context.Context) (int64, error) {
	c.calls++
	return c.n, c.err
}

type memCache struct {
	data map[string][]byte
	down bool
}

func (m *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	if m.down {
		return false, errors.New("cache down")
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if m.down {
		return errors.New("cache down")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memCache) Delete(context.Context, ...string) error { return nil }
func (m *memCache) Ping(context.Context) error              { return nil }

func TestStatsOrderAndCache(t *testing.T) {
	users, artists, series, assets := &counter{n: 2}, &counter{n: 5}, &counter{n: 3}, &counter{n: 40}
	mem := &memCache{data: map[string][]byte{}}
	svc := NewDashboardService(users, artists, series, assets, mem)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 5, 3, 40}, stats.Totals())
	assert.Contains(t, mem.data, cache.KeyDashboardStats)

	assets.n = 41
	stats, err = svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(40), stats.Assets, "served from cache")
	assert.Equal(t, 1, assets.calls)
}

func TestStatsWithoutCache(t *testing.T) {
	assets := &counter{n: 1}
	mem := &memCache{data: map[string][]byte{}, down: true}
	svc := NewDashboardService(&counter{}, &counter{}, &counter{}, assets, mem)

	for i := 0; i < 2; i++ {
		stats, err := svc.Stats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []int64{0, 0, 0, 1}, stats.Totals())
	}
	assert.Equal(t, 2, assets.calls)
}

func TestStatsCountFailure(t *testing.T) {
	svc := NewDashboardService(&counter{}, &counter{err: errors.New("db gone")}, &counter{}, &counter{},
		&memCache{data: map[string][]byte{}})

	_, err := svc.Stats(context.Background())
	assert.ErrorContains(t, err, "count artists")
}
