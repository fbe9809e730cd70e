package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tair/smartskin/internal/catalog/domain"
	"github.com/tair/smartskin/internal/pipeline"
	profile "github.com/tair/smartskin/internal/profile/domain"
	"github.com/tair/smartskin/internal/profile/repository"
	"github.com/tair/smartskin/internal/recommend"
	"github.com/tair/smartskin/internal/suitability"
	"github.com/tair/smartskin/pkg/auth"
	"github.com/tair/smartskin/pkg/middleware"
)

type staticSource []domain.Entry

func (s staticSource) Load(context.Context) ([]domain.Entry, error) { return s, nil }

type recordingPublisher struct {
	mu     sync.Mutex
	events []profile.Feedback
	err    error
}

func (p *recordingPublisher) PublishFeedbackRecorded(_ context.Context, f profile.Feedback) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, f)
	return p.err
}

func setupCache(t *testing.T) *pipeline.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return pipeline.NewCache(client, time.Minute)
}

func TestInvalidatingPublisher(t *testing.T) {
	ctx := context.Background()
	cache := setupCache(t)
	cache.StoreRecommendations(ctx, 4, []recommend.Product{{ID: 1}})

	next := &recordingPublisher{err: errors.New("broker down")}
	p := NewInvalidatingPublisher(cache, next)

	err := p.PublishFeedbackRecorded(ctx, profile.Feedback{UserID: 4, ProductID: 1})
	assert.Error(t, err, "forwarding errors are returned")
	_, ok := cache.Recommendations(ctx, 4)
	assert.False(t, ok, "cache is cleared even when forwarding fails")
	assert.Len(t, next.events, 1)

	assert.NoError(t, NewInvalidatingPublisher(nil, nil).PublishFeedbackRecorded(ctx, profile.Feedback{UserID: 4}))
}

func TestRouter_EndToEnd(t *testing.T) {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, repository.NewGormProfileRepository(db).AutoMigrate())
	sqlDB, err := db.DB()
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	cache := setupCache(t)
	engine, err := pipeline.Bootstrap(context.Background(), pipeline.Options{
		Source: staticSource{
			{ID: 0, Label: "Cleanser", Name: "Gel Wash", Rank: 4.5, Ingredients: "Water, Glycerin", Oily: true},
			{ID: 1, Label: "Moisturizer", Name: "Light Lotion", Rank: 4.1, Ingredients: "Water, Niacinamide", Oily: true},
		},
		Vectorizer: suitability.Config{MinDF: 1, MaxDF: 1, NGramMax: 1},
		Cache:      cache,
		Metrics:    pipeline.NewMetrics(reg),
	})
	require.NoError(t, err)

	events := &recordingPublisher{}
	tokens := auth.NewTokenManager("secret", time.Hour)
	handlers, err := InitializeHandlers(db, engine, tokens, nil, events, reg)
	require.NoError(t, err)

	mw := middleware.DefaultConfig()
	mw.EnableLogging = false
	router := NewRouter(handlers, sqlDB, reg, mw, nil)

	do := func(method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		var out map[string]interface{}
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
		return rec, out
	}

	rec, body := do(http.MethodPost, "/auth/register", "", map[string]string{
		"email": "lee@example.com", "password": "secret1", "name": "Lee",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	token := body["token"].(string)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec, _ = do(http.MethodPut, "/users/me/preferences", token, map[string]interface{}{"skin_type": "Oily"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = do(http.MethodGet, "/api/recommender/personalized", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["cached"])
	_, body = do(http.MethodGet, "/api/recommender/personalized", token, nil)
	assert.Equal(t, true, body["cached"])

	rec, _ = do(http.MethodPost, "/users/me/feedback", token, map[string]interface{}{"product_id": 1, "liked": true})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, events.events, 1)
	assert.Equal(t, "Light Lotion", events.events[0].ProductName)

	_, body = do(http.MethodGet, "/api/recommender/personalized", token, nil)
	assert.Equal(t, false, body["cached"], "saving feedback invalidates the cached list")

	rec, _ = do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "smartskin_profile_requests_total")
	assert.Contains(t, rec.Body.String(), "smartskin_degraded_mode")

	rec, body = do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "degraded", body["status"])

	req := httptest.NewRequest(http.MethodOptions, "/api/routine", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	pre := httptest.NewRecorder()
	router.ServeHTTP(pre, req)
	assert.NotEmpty(t, pre.Header().Get("Access-Control-Allow-Origin"))
}
