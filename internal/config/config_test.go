package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "KAFKA_BROKERS", "CACHE_TTL", "CATALOG_SOURCE", "VISION_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, CatalogCSV, cfg.CatalogSource)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.VisionEnabled)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("CATALOG_SOURCE", "Postgres")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("RATE_LIMIT_REQUESTS", "not-a-number")
	t.Setenv("VISION_ENABLED", "true")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("ENVIRONMENT", "production")

	cfg := Load()
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, CatalogPostgres, cfg.CatalogSource)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 20, cfg.RateLimitRequests)
	assert.True(t, cfg.VisionEnabled)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.Development())
}
