package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/tair/smartskin/internal/pipeline"
	profile "github.com/tair/smartskin/internal/profile/domain"
	"github.com/tair/smartskin/internal/profile/usecase/query"
	"github.com/tair/smartskin/internal/recommend"
	"github.com/tair/smartskin/internal/routine"
	"github.com/tair/smartskin/pkg/auth"
	"github.com/tair/smartskin/pkg/logger"
	"github.com/tair/smartskin/pkg/middleware"
)

// PipelineHandler exposes the recommendation, analysis and routine
// operations over HTTP.
type PipelineHandler struct {
	engine          *pipeline.Engine
	personalization *query.GetPersonalizationHandler
	tokens          *auth.TokenManager
	limiter         *middleware.RateLimiter
	metrics         *middleware.HTTPMetrics
}

// NewPipelineHandler creates a new pipeline HTTP handler. limiter may be nil.
func NewPipelineHandler(
	engine *pipeline.Engine,
	personalization *query.GetPersonalizationHandler,
	tokens *auth.TokenManager,
	limiter *middleware.RateLimiter,
	metrics *middleware.HTTPMetrics,
) *PipelineHandler {
	return &PipelineHandler{
		engine:          engine,
		personalization: personalization,
		tokens:          tokens,
		limiter:         limiter,
		metrics:         metrics,
	}
}

// RegisterRoutes registers all pipeline routes
func (h *PipelineHandler) RegisterRoutes(router *mux.Router) {
	route := func(path, method string, fn http.HandlerFunc) {
		router.HandleFunc(path, h.metrics.Wrap(path, fn)).Methods(method)
	}

	route("/api/recommender/metadata", http.MethodGet, h.GetMetadata)
	route("/api/recommender/recommendations", http.MethodPost, h.Recommend)
	route("/api/recommender/personalized", http.MethodGet, h.tokens.Middleware(h.Personalized))
	route("/api/analyzer/ingredients", http.MethodPost, h.AnalyzeIngredients)
	route("/api/analyzer/analyze", http.MethodPost, h.limiter.Middleware(h.AnalyzeImage))
	route("/api/routine", http.MethodPost, h.ComposeRoutine)
}

// RegisterHealthCheck registers health check endpoint. db may be nil.
func (h *PipelineHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		degraded := h.engine.Degraded()
		body := map[string]interface{}{
			"status":   "healthy",
			"database": "ok",
			"degraded": degraded,
		}
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				body["status"] = "unhealthy"
				body["database"] = "unavailable"
				respondJSON(w, http.StatusServiceUnavailable, body)
				return
			}
		} else {
			body["database"] = "not configured"
		}
		if degraded.Any() {
			body["status"] = "degraded"
		}
		respondJSON(w, http.StatusOK, body)
	}).Methods(http.MethodGet)
}

// GetMetadata handles GET /api/recommender/metadata
func (h *PipelineHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.Metadata())
}

// Recommend handles POST /api/recommender/recommendations
func (h *PipelineHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommend.Request
	if !decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	products := h.engine.RecommendProducts(r.Context(), req, nil, nil)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": products,
		"count":           len(products),
		"degraded":        h.engine.Degraded().Catalog,
	})
}

// Personalized handles GET /api/recommender/personalized
func (h *PipelineHandler) Personalized(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	cache := h.engine.Cache()

	if products, ok := cache.Recommendations(r.Context(), userID); ok {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"recommendations": products,
			"count":           len(products),
			"cached":          true,
		})
		return
	}

	in, err := h.personalization.Handle(r.Context(), userID)
	if err != nil {
		respondPersonalizationError(r.Context(), w, err)
		return
	}

	products := h.engine.RecommendProducts(r.Context(), in.Preferences.Request(), in.Feedback, in.History)
	cache.StoreRecommendations(r.Context(), userID, products)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": products,
		"count":           len(products),
		"cached":          false,
	})
}

// AnalyzeIngredients handles POST /api/analyzer/ingredients
func (h *PipelineHandler) AnalyzeIngredients(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ingredients string `json:"ingredients"`
	}
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Ingredients) == "" {
		respondError(w, http.StatusBadRequest, "No ingredients provided")
		return
	}

	scores := h.engine.PredictSuitability(r.Context(), req.Ingredients)
	if !scores.OK() {
		respondJSON(w, http.StatusInternalServerError, scores)
		return
	}
	respondJSON(w, http.StatusOK, scores)
}

// AnalyzeImage handles POST /api/analyzer/analyze
func (h *PipelineHandler) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Image string `json:"image"`
	}
	if !decode(w, r, &req) {
		return
	}
	image, err := pipeline.DecodeImage(req.Image)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid image data")
		return
	}

	analysis, err := h.engine.AnalyzeImage(r.Context(), image)
	switch {
	case errors.Is(err, pipeline.ErrOCRUnavailable):
		logger.Warn(r.Context()).Err(err).Msg("Image analysis unavailable")
		respondError(w, http.StatusServiceUnavailable, "Image analysis is unavailable")
		return
	case err != nil:
		logger.Error(r.Context()).Err(err).Msg("Image analysis failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	switch {
	case analysis.Error == pipeline.NoTextExtracted:
		respondJSON(w, http.StatusUnprocessableEntity, analysis)
	case !analysis.OK():
		respondJSON(w, http.StatusInternalServerError, analysis)
	default:
		respondJSON(w, http.StatusOK, analysis)
	}
}

// ComposeRoutine handles POST /api/routine
func (h *PipelineHandler) ComposeRoutine(w http.ResponseWriter, r *http.Request) {
	var req routine.Request
	if !decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, h.engine.ComposeRoutine(r.Context(), req))
}

func respondPersonalizationError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, profile.ErrUserNotFound) {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	logger.Error(ctx).Err(err).Msg("Failed to load personalization data")
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
