package enrich

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Checker-Finance/rates-publisher/pkg/model"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewCache(zap.NewNop(), rdb, ttl), mr
}

func TestCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Hour)
	ctx := context.Background()

	dp := model.RateDatapoint{
		Exchanges:     []string{"KRKN", "CRCO"},
		CalcWindowSec: 5,
		PublishedAt:   time.Date(2024, 1, 2, 20, 55, 0, 0, time.UTC),
	}
	cache.Put(ctx, "BTCUSD", dp)

	got, ok := cache.Get(ctx, "BTCUSD")
	require.True(t, ok)
	assert.Equal(t, dp.Exchanges, got.Exchanges)
	assert.Equal(t, dp.CalcWindowSec, got.CalcWindowSec)
	assert.True(t, dp.PublishedAt.Equal(got.PublishedAt))
}

func TestCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t, time.Hour)

	_, ok := cache.Get(context.Background(), "ETHUSD")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	cache.Put(ctx, "BTCUSD", model.RateDatapoint{CalcWindowSec: 5})
	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, "BTCUSD")
	assert.False(t, ok)
}

func TestCacheCorruptEntryIsAMiss(t *testing.T) {
	cache, mr := newTestCache(t, time.Hour)

	require.NoError(t, mr.Set(cacheKeyPrefix+"BTCUSD", "{not json"))
	_, ok := cache.Get(context.Background(), "BTCUSD")
	assert.False(t, ok)
}

func TestCacheDownIsAMiss(t *testing.T) {
	cache, mr := newTestCache(t, time.Hour)
	mr.Close()

	_, ok := cache.Get(context.Background(), "BTCUSD")
	assert.False(t, ok)

	// Put against a dead server must not panic or error loudly.
	cache.Put(context.Background(), "BTCUSD", model.RateDatapoint{CalcWindowSec: 5})
}
