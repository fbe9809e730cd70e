package repository

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/smartskin/internal/profile/domain"
)

var tracer = otel.Tracer("profile-repository")

// TracingRepository wraps a domain.Repository with one span per call.
type TracingRepository struct {
	next domain.Repository
}

func NewTracingRepository(next domain.Repository) *TracingRepository {
	return &TracingRepository{next: next}
}

func start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, "repository."+name, trace.WithAttributes(attrs...))
}

// Helper function to add database error details to span
func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *TracingRepository) Create(ctx context.Context, user *domain.User) (err error) {
	ctx, span := start(ctx, "Create", attribute.String("user.email", user.Email))
	defer func() { finish(span, err) }()

	if err = r.next.Create(ctx, user); err == nil {
		span.SetAttributes(attribute.Int("user.id", int(user.ID)))
	}
	return err
}

func (r *TracingRepository) FindByID(ctx context.Context, id uint) (user *domain.User, err error) {
	ctx, span := start(ctx, "FindByID", attribute.Int("user.id", int(id)))
	defer func() { finish(span, err) }()
	return r.next.FindByID(ctx, id)
}

func (r *TracingRepository) FindByEmail(ctx context.Context, email string) (user *domain.User, err error) {
	ctx, span := start(ctx, "FindByEmail", attribute.String("user.email", email))
	defer func() { finish(span, err) }()
	return r.next.FindByEmail(ctx, email)
}

func (r *TracingRepository) FindByResetToken(ctx context.Context, token string, now time.Time) (user *domain.User, err error) {
	ctx, span := start(ctx, "FindByResetToken")
	defer func() { finish(span, err) }()
	return r.next.FindByResetToken(ctx, token, now)
}

func (r *TracingRepository) Update(ctx context.Context, user *domain.User) (err error) {
	ctx, span := start(ctx, "Update", attribute.Int("user.id", int(user.ID)))
	defer func() { finish(span, err) }()
	return r.next.Update(ctx, user)
}

func (r *TracingRepository) UpsertFeedback(ctx context.Context, f *domain.Feedback) (err error) {
	ctx, span := start(ctx, "UpsertFeedback",
		attribute.Int("user.id", int(f.UserID)),
		attribute.Int("product.id", f.ProductID),
	)
	defer func() { finish(span, err) }()
	return r.next.UpsertFeedback(ctx, f)
}

func (r *TracingRepository) ListFeedback(ctx context.Context, userID uint) (out []domain.Feedback, err error) {
	ctx, span := start(ctx, "ListFeedback", attribute.Int("user.id", int(userID)))
	defer func() {
		span.SetAttributes(attribute.Int("result.count", len(out)))
		finish(span, err)
	}()
	return r.next.ListFeedback(ctx, userID)
}

func (r *TracingRepository) UpsertView(ctx context.Context, v *domain.ViewHistory) (err error) {
	ctx, span := start(ctx, "UpsertView",
		attribute.Int("user.id", int(v.UserID)),
		attribute.Int("product.id", v.ProductID),
	)
	defer func() { finish(span, err) }()
	return r.next.UpsertView(ctx, v)
}

func (r *TracingRepository) ListHistory(ctx context.Context, userID uint, limit int) (out []domain.ViewHistory, err error) {
	ctx, span := start(ctx, "ListHistory",
		attribute.Int("user.id", int(userID)),
		attribute.Int("query.limit", limit),
	)
	defer func() {
		span.SetAttributes(attribute.Int("result.count", len(out)))
		finish(span, err)
	}()
	return r.next.ListHistory(ctx, userID, limit)
}

func (r *TracingRepository) CreateRoutine(ctx context.Context, routine *domain.SavedRoutine) (err error) {
	ctx, span := start(ctx, "CreateRoutine", attribute.Int("user.id", int(routine.UserID)))
	defer func() { finish(span, err) }()
	return r.next.CreateRoutine(ctx, routine)
}

func (r *TracingRepository) ListRoutines(ctx context.Context, userID uint) (out []domain.SavedRoutine, err error) {
	ctx, span := start(ctx, "ListRoutines", attribute.Int("user.id", int(userID)))
	defer func() {
		span.SetAttributes(attribute.Int("result.count", len(out)))
		finish(span, err)
	}()
	return r.next.ListRoutines(ctx, userID)
}
