//go:build wireinject
// +build wireinject

package server

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/tair/smartskin/internal/pipeline"
	"github.com/tair/smartskin/internal/profile/usecase/query"
	"github.com/tair/smartskin/pkg/auth"
	"github.com/tair/smartskin/pkg/middleware"

	profilehttp "github.com/tair/smartskin/internal/profile/delivery/http"
)

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProfileRepository,
)

var HandlerSet = wire.NewSet(
	ProvideProductLookup,
	ProvideFeedbackPublisher,
	profilehttp.NewHandlers,
	ProvideProfileHandler,
	query.NewGetPersonalizationHandler,
	ProvidePipelineHandler,
	wire.Struct(new(Handlers), "*"),
)

// InitializeHandlers builds every HTTP handler with its dependencies.
// events may be nil when event publishing is disabled.
func InitializeHandlers(
	db *gorm.DB,
	engine *pipeline.Engine,
	tokens *auth.TokenManager,
	limiter *middleware.RateLimiter,
	events EventPublisher,
	reg prometheus.Registerer,
) (*Handlers, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
	)
	return nil, nil
}
