package server

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tair/smartskin/docs"
	pipelinehttp "github.com/tair/smartskin/internal/pipeline/delivery/http"
	"github.com/tair/smartskin/pkg/middleware"
)

// NewRouter mounts every route behind the shared middleware chain and wraps
// the result in CORS. db may be nil.
func NewRouter(h *Handlers, db *sql.DB, gatherer prometheus.Gatherer, mw middleware.Config, origins []string) http.Handler {
	router := mux.NewRouter()
	middleware.Register(router, mw)

	h.Profile.RegisterRoutes(router)
	h.Pipeline.RegisterRoutes(router)
	h.Pipeline.RegisterHealthCheck(router, db)

	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	pipelinehttp.RegisterSwaggerDocs(router, httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return middleware.CORS(router, origins)
}
