package server

import (
	"context"

	"github.com/tair/smartskin/internal/pipeline"
	profile "github.com/tair/smartskin/internal/profile/domain"
	"github.com/tair/smartskin/pkg/logger"
)

// InvalidatingPublisher clears the user's cached recommendations whenever
// feedback is saved, then forwards the event. It works without Kafka; with
// Kafka the consumer repeats the invalidation on every instance.
type InvalidatingPublisher struct {
	cache *pipeline.Cache
	next  profile.FeedbackPublisher
}

// NewInvalidatingPublisher accepts a nil cache and a nil next.
func NewInvalidatingPublisher(cache *pipeline.Cache, next profile.FeedbackPublisher) *InvalidatingPublisher {
	return &InvalidatingPublisher{cache: cache, next: next}
}

func (p *InvalidatingPublisher) PublishFeedbackRecorded(ctx context.Context, f profile.Feedback) error {
	if err := p.cache.InvalidateUser(ctx, f.UserID); err != nil {
		logger.Warn(ctx).Err(err).Uint("user_id", f.UserID).Msg("Failed to invalidate recommendation cache")
	}
	if p.next == nil {
		return nil
	}
	return p.next.PublishFeedbackRecorded(ctx, f)
}
