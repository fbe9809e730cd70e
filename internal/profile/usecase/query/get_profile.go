package query

import (
	"context"
	"errors"
	"time"

	"github.com/tair/smartskin/internal/profile/domain"
)

// GetProfileHandler returns the user without sensitive fields.
type GetProfileHandler struct {
	repo domain.Repository
}

func NewGetProfileHandler(repo domain.Repository) *GetProfileHandler {
	return &GetProfileHandler{repo: repo}
}

func (h *GetProfileHandler) Handle(ctx context.Context, userID uint) (*domain.User, error) {
	if userID == 0 {
		return nil, domain.ErrUserNotFound
	}
	return h.repo.FindByID(ctx, userID)
}

// VerifyResetHandler reports which account a reset token belongs to.
type VerifyResetHandler struct {
	repo domain.Repository
	now  func() time.Time
}

func NewVerifyResetHandler(repo domain.Repository) *VerifyResetHandler {
	return &VerifyResetHandler{repo: repo, now: time.Now}
}

func (h *VerifyResetHandler) Handle(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrInvalidResetToken
	}
	user, err := h.repo.FindByResetToken(ctx, token, h.now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidResetToken
		}
		return "", err
	}
	return user.Email, nil
}
