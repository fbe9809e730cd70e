package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/tair/smartskin/internal/pipeline"
	pipelinehttp "github.com/tair/smartskin/internal/pipeline/delivery/http"
	profilehttp "github.com/tair/smartskin/internal/profile/delivery/http"
	profile "github.com/tair/smartskin/internal/profile/domain"
	"github.com/tair/smartskin/internal/profile/repository"
	"github.com/tair/smartskin/internal/profile/usecase/query"
	"github.com/tair/smartskin/pkg/auth"
	"github.com/tair/smartskin/pkg/middleware"
)

// Handlers are the HTTP entry points of the service.
type Handlers struct {
	Profile  *profilehttp.ProfileHandler
	Pipeline *pipelinehttp.PipelineHandler
}

// ProvideProfileRepository provides the traced gorm profile store.
func ProvideProfileRepository(db *gorm.DB) profile.Repository {
	return repository.NewTracingRepository(repository.NewGormProfileRepository(db))
}

// ProvideProductLookup resolves feedback product ids against the catalog.
func ProvideProductLookup(engine *pipeline.Engine) profile.ProductLookup {
	return profilehttp.ProductLookup(engine.Catalog())
}

// EventPublisher is the outbound event sink, nil when events are disabled.
type EventPublisher interface {
	profile.FeedbackPublisher
}

// ProvideFeedbackPublisher drops the local recommendation cache entry before
// forwarding to events.
func ProvideFeedbackPublisher(engine *pipeline.Engine, events EventPublisher) profile.FeedbackPublisher {
	return NewInvalidatingPublisher(engine.Cache(), events)
}

func ProvideProfileHandler(h *profilehttp.Handlers, tokens *auth.TokenManager, reg prometheus.Registerer) *profilehttp.ProfileHandler {
	return profilehttp.NewProfileHandler(h, tokens, middleware.NewHTTPMetrics(reg, "profile"))
}

func ProvidePipelineHandler(
	engine *pipeline.Engine,
	personalization *query.GetPersonalizationHandler,
	tokens *auth.TokenManager,
	limiter *middleware.RateLimiter,
	reg prometheus.Registerer,
) *pipelinehttp.PipelineHandler {
	return pipelinehttp.NewPipelineHandler(engine, personalization, tokens, limiter, middleware.NewHTTPMetrics(reg, "pipeline"))
}
