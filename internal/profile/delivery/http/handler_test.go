package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tair/smartskin/internal/catalog/domain"
	profile "github.com/tair/smartskin/internal/profile/domain"
	"github.com/tair/smartskin/internal/profile/repository"
	"github.com/tair/smartskin/pkg/auth"
	"github.com/tair/smartskin/pkg/middleware"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []profile.Feedback
}

func (p *recordingPublisher) PublishFeedbackRecorded(_ context.Context, f profile.Feedback) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, f)
	return nil
}

type testServer struct {
	router    *mux.Router
	publisher *recordingPublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	gormRepo := repository.NewGormProfileRepository(db)
	require.NoError(t, gormRepo.AutoMigrate())

	catalog := domain.NewCatalog([]domain.Entry{
		{ID: 0, Label: "Moisturizer", Name: "Cloud Cream"},
		{ID: 1, Label: "Cleanser", Name: "Foam Wash"},
	})
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	pub := &recordingPublisher{}

	h := NewProfileHandler(
		NewHandlers(gormRepo, tokens, ProductLookup(catalog), pub),
		tokens,
		middleware.NewHTTPMetrics(prometheus.NewRegistry(), "profile"),
	)
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return &testServer{router: router, publisher: pub}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var out map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

func (s *testServer) register(t *testing.T, email string) string {
	t.Helper()
	rec, body := s.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email": email, "password": "secret1", "name": "Test",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return body["token"].(string)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ana@example.com")

	rec, _ := s.do(t, http.MethodPost, "/auth/register", "", map[string]string{"email": "ANA@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/auth/register", "", map[string]string{"email": "bob@example.com", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body := s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "ana@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.NotContains(t, user, "password")

	rec, _ = s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "ana@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec, _ = s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "nobody@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileRequiresAuth(t *testing.T) {
	s := newTestServer(t)
	rec, _ := s.do(t, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPreferences(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "ana@example.com")

	rec, _ := s.do(t, http.MethodPut, "/users/me/preferences", token, map[string]interface{}{
		"skin_type": "Scaly", "skin_concerns": []string{"Acne"}, "climate": "tropical",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := s.do(t, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	prefs := body["preferences"].(map[string]interface{})
	assert.Equal(t, "Normal", prefs["skin_type"])
	assert.Equal(t, "mild", prefs["climate"])
	assert.Equal(t, []interface{}{"Acne"}, prefs["skin_concerns"])
}

func TestFeedbackUpdatesHistoryAndPublishes(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "ana@example.com")

	rec, _ := s.do(t, http.MethodPost, "/users/me/feedback", token, map[string]interface{}{"product_id": 0, "liked": false, "rating": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec, _ = s.do(t, http.MethodPost, "/users/me/feedback", token, map[string]interface{}{"product_id": 0, "liked": true, "rating": 5})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := s.do(t, http.MethodGet, "/users/me/feedback", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feedback := body["feedback"].([]interface{})
	require.Len(t, feedback, 1)
	assert.Equal(t, true, feedback[0].(map[string]interface{})["liked"])
	assert.Equal(t, "Cloud Cream", feedback[0].(map[string]interface{})["product_name"])

	rec, body = s.do(t, http.MethodGet, "/users/me/history", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := body["product_history"].([]interface{})
	require.Len(t, history, 1)
	assert.Equal(t, "Moisturizer", history[0].(map[string]interface{})["category"])

	assert.Len(t, s.publisher.events, 2)

	rec, _ = s.do(t, http.MethodPost, "/users/me/feedback", token, map[string]interface{}{"liked": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordView(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "ana@example.com")

	rec, _ := s.do(t, http.MethodPost, "/users/me/history", token, map[string]interface{}{"product_id": 1})
	require.Equal(t, http.StatusOK, rec.Code)

	_, body := s.do(t, http.MethodGet, "/users/me/history", token, nil)
	history := body["product_history"].([]interface{})
	require.Len(t, history, 1)
	assert.Equal(t, "Cleanser", history[0].(map[string]interface{})["category"])
}

func TestRoutines(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "ana@example.com")

	rec, body := s.do(t, http.MethodPost, "/users/me/routines", token, map[string]interface{}{
		"steps": []map[string]string{{"step": "Cleanser"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, body["routine_id"])

	_, body = s.do(t, http.MethodGet, "/users/me/routines", token, nil)
	routines := body["routines"].([]interface{})
	require.Len(t, routines, 1)
	assert.Equal(t, "My Routine", routines[0].(map[string]interface{})["name"])
}

func TestPasswordReset(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ana@example.com")

	rec, body := s.do(t, http.MethodPost, "/auth/reset/request", "", map[string]string{"email": "nobody@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, body, "token")

	rec, body = s.do(t, http.MethodPost, "/auth/reset/request", "", map[string]string{"email": "ana@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	token := body["token"].(string)

	rec, body = s.do(t, http.MethodGet, "/auth/reset/verify?token="+token, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ana@example.com", body["email"])

	rec, _ = s.do(t, http.MethodPost, "/auth/reset", "", map[string]string{"token": token, "password": "newsecret"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/auth/reset", "", map[string]string{"token": token, "password": "again1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "token is single use")

	rec, _ = s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "ana@example.com", "password": "newsecret"})
	assert.Equal(t, http.StatusOK, rec.Code)
}
