package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/smartskin/pkg/auth"
)

func ok(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	h := NewRateLimiter(client, "analyze", 2, time.Minute).Middleware(ok)

	call := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/analyzer/analyze", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1111").Code)
	second := call("10.0.0.1:2222")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:3333").Code)
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1111").Code, "other clients have their own window")
}

func TestRateLimiter_PerUser(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	h := NewRateLimiter(client, "analyze", 1, time.Minute).Middleware(ok)
	call := func(userID uint) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(auth.ContextWithUser(req.Context(), userID, "u@example.com"))
		rec := httptest.NewRecorder()
		h(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusOK, call(1))
	assert.Equal(t, http.StatusOK, call(2))
	assert.Equal(t, http.StatusTooManyRequests, call(1))
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	h := NewRateLimiter(client, "x", 1, time.Minute).Middleware(ok)
	mr.Close()

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_NilClientPassesThrough(t *testing.T) {
	rl := NewRateLimiter(nil, "x", 1, time.Minute)
	assert.Nil(t, rl)
	rec := httptest.NewRecorder()
	rl.Middleware(ok)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg, "api")

	h := m.Wrap("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things/1", nil))
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things/2", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCounter.WithLabelValues("GET", "/things/{id}", "404")))
}

func TestRecoveryAndRequestID(t *testing.T) {
	h := RecoveryMiddleware(RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec = httptest.NewRecorder()
	RequestIDMiddleware(http.HandlerFunc(ok)).ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
}
