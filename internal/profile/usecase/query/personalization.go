package query

import (
	"context"

	"github.com/tair/smartskin/internal/profile/domain"
	"github.com/tair/smartskin/internal/recommend"
)

// PersonalizationInput is everything the scorer needs about one user.
type PersonalizationInput struct {
	Preferences domain.Preferences
	Feedback    []recommend.Feedback
	History     []recommend.View
}

// GetPersonalizationHandler loads a user's preferences, feedback and the
// full view history.
type GetPersonalizationHandler struct {
	repo domain.Repository
}

func NewGetPersonalizationHandler(repo domain.Repository) *GetPersonalizationHandler {
	return &GetPersonalizationHandler{repo: repo}
}

func (h *GetPersonalizationHandler) Handle(ctx context.Context, userID uint) (*PersonalizationInput, error) {
	user, err := h.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	feedback, err := h.repo.ListFeedback(ctx, userID)
	if err != nil {
		return nil, err
	}
	history, err := h.repo.ListHistory(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	in := &PersonalizationInput{
		Preferences: user.Preferences,
		Feedback:    make([]recommend.Feedback, len(feedback)),
		History:     make([]recommend.View, len(history)),
	}
	for i, f := range feedback {
		in.Feedback[i] = f.Record()
	}
	for i, v := range history {
		in.History[i] = v.Record()
	}
	return in, nil
}
