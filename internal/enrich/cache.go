package enrich

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Checker-Finance/rates-publisher/pkg/model"
)

const cacheKeyPrefix = "rates:enrich:"

// Cache stores per-ticker enrichment datapoints in Redis with a TTL, so
// closely spaced scheduled runs do not hammer the per-ticker endpoint.
// Purely an optimization: any cache failure is a miss.
type Cache struct {
	logger *zap.Logger
	rdb    *redis.Client
	ttl    time.Duration
}

// NewCache creates a Cache on the given Redis client.
func NewCache(logger *zap.Logger, rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{logger: logger, rdb: rdb, ttl: ttl}
}

// Get returns the cached datapoint for ticker, if present.
func (c *Cache) Get(ctx context.Context, ticker string) (model.RateDatapoint, bool) {
	raw, err := c.rdb.Get(ctx, cacheKeyPrefix+ticker).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("enrich.cache_get_failed", zap.String("ticker", ticker), zap.Error(err))
		}
		return model.RateDatapoint{}, false
	}

	var dp model.RateDatapoint
	if err := json.Unmarshal(raw, &dp); err != nil {
		c.logger.Debug("enrich.cache_decode_failed", zap.String("ticker", ticker), zap.Error(err))
		return model.RateDatapoint{}, false
	}
	return dp, true
}

// Put stores the datapoint for ticker with the configured TTL.
func (c *Cache) Put(ctx context.Context, ticker string, dp model.RateDatapoint) {
	raw, err := json.Marshal(dp)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKeyPrefix+ticker, raw, c.ttl).Err(); err != nil {
		c.logger.Debug("enrich.cache_put_failed", zap.String("ticker", ticker), zap.Error(err))
	}
}
