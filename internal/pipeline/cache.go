package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tair/smartskin/internal/recommend"
	"github.com/tair/smartskin/internal/suitability"
	"github.com/tair/smartskin/pkg/logger"
)

const (
	predictionKeyPrefix     = "smartskin:prediction:"
	recommendationKeyPrefix = "smartskin:recommendations:user:"
)

// Cache stores prediction results and personalised recommendation lists in
// Redis. A nil *Cache is valid and never hits. Redis errors are logged and
// treated as misses.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache returns nil when client is nil.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

// predictionKey is scoped by the predictor fingerprint so instances running
// different models never share results.
func predictionKey(model, text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	return predictionKeyPrefix + model + ":" + strconv.FormatUint(xxhash.Sum64String(normalized), 16)
}

func recommendationKey(userID uint) string {
	return fmt.Sprintf("%s%d", recommendationKeyPrefix, userID)
}

// Prediction returns a cached result for text computed by the predictor
// with the given fingerprint.
func (c *Cache) Prediction(ctx context.Context, model, text string) (suitability.Scores, bool) {
	var s suitability.Scores
	return s, c.get(ctx, predictionKey(model, text), &s)
}

// StorePrediction caches successful results only.
func (c *Cache) StorePrediction(ctx context.Context, model, text string, s suitability.Scores) {
	if !s.OK() {
		return
	}
	c.set(ctx, predictionKey(model, text), s)
}

// Recommendations returns the cached personalised list for a user.
func (c *Cache) Recommendations(ctx context.Context, userID uint) ([]recommend.Product, bool) {
	var products []recommend.Product
	return products, c.get(ctx, recommendationKey(userID), &products)
}

func (c *Cache) StoreRecommendations(ctx context.Context, userID uint, products []recommend.Product) {
	c.set(ctx, recommendationKey(userID), products)
}

// InvalidateUser drops the personalised list of a user.
func (c *Cache) InvalidateUser(ctx context.Context, userID uint) error {
	if c == nil {
		return nil
	}
	if err := c.client.Del(ctx, recommendationKey(userID)).Err(); err != nil {
		return fmt.Errorf("invalidate recommendations for user %d: %w", userID, err)
	}
	return nil
}

func (c *Cache) get(ctx context.Context, key string, dst interface{}) bool {
	if c == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn(ctx).Err(err).Str("key", key).Msg("Cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Cache entry unreadable")
		return false
	}
	return true
}

func (c *Cache) set(ctx context.Context, key string, v interface{}) {
	if c == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Cache entry not encodable")
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Cache write failed")
	}
}
