package query

import (
	"context"

	"github.com/tair/smartskin/internal/profile/domain"
)

type ListFeedbackHandler struct {
	repo domain.Repository
}

func NewListFeedbackHandler(repo domain.Repository) *ListFeedbackHandler {
	return &ListFeedbackHandler{repo: repo}
}

func (h *ListFeedbackHandler) Handle(ctx context.Context, userID uint) ([]domain.Feedback, error) {
	out, err := h.repo.ListFeedback(ctx, userID)
	if out == nil && err == nil {
		out = []domain.Feedback{}
	}
	return out, err
}

type ListHistoryQuery struct {
	UserID uint
	Limit  int
}

// ListHistoryHandler returns recent views, newest first.
type ListHistoryHandler struct {
	repo domain.Repository
}

func NewListHistoryHandler(repo domain.Repository) *ListHistoryHandler {
	return &ListHistoryHandler{repo: repo}
}

func (h *ListHistoryHandler) Handle(ctx context.Context, q ListHistoryQuery) ([]domain.ViewHistory, error) {
	if q.Limit <= 0 || q.Limit > domain.HistoryLimit {
		q.Limit = domain.HistoryLimit
	}
	out, err := h.repo.ListHistory(ctx, q.UserID, q.Limit)
	if out == nil && err == nil {
		out = []domain.ViewHistory{}
	}
	return out, err
}

type ListRoutinesHandler struct {
	repo domain.Repository
}

func NewListRoutinesHandler(repo domain.Repository) *ListRoutinesHandler {
	return &ListRoutinesHandler{repo: repo}
}

func (h *ListRoutinesHandler) Handle(ctx context.Context, userID uint) ([]domain.SavedRoutine, error) {
	out, err := h.repo.ListRoutines(ctx, userID)
	if out == nil && err == nil {
		out = []domain.SavedRoutine{}
	}
	return out, err
}
