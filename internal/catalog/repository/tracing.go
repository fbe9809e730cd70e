package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/smartskin/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// TracingSource wraps a Source with a span per load.
type TracingSource struct {
	next domain.Source
	kind string
}

func NewTracingSource(next domain.Source, kind string) *TracingSource {
	return &TracingSource{next: next, kind: kind}
}

// Load with tracing
func (s *TracingSource) Load(ctx context.Context) ([]domain.Entry, error) {
	ctx, span := tracer.Start(ctx, "catalog.Load",
		trace.WithAttributes(attribute.String("catalog.source", s.kind)),
	)
	defer span.End()

	entries, err := s.next.Load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(entries)))
	return entries, nil
}
