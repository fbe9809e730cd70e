package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tair/smartskin/internal/profile/domain"
	"github.com/tair/smartskin/pkg/auth"
)

// ResetTokenTTL is how long a password reset token stays valid.
const ResetTokenTTL = time.Hour

// RequestResetResult carries the token back to the caller. Token is empty
// when the email is unknown; the caller must not reveal the difference.
type RequestResetResult struct {
	Token     string
	ExpiresAt time.Time
}

type RequestResetHandler struct {
	repo domain.Repository
	now  func() time.Time
}

func NewRequestResetHandler(repo domain.Repository) *RequestResetHandler {
	return &RequestResetHandler{repo: repo, now: time.Now}
}

func (h *RequestResetHandler) Handle(ctx context.Context, email string) (*RequestResetResult, error) {
	user, err := h.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return &RequestResetResult{}, nil
		}
		return nil, err
	}

	token, err := auth.NewResetToken()
	if err != nil {
		return nil, err
	}
	expires := h.now().UTC().Add(ResetTokenTTL)
	user.ResetToken = &token
	user.ResetTokenExpires = &expires
	if err := h.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return &RequestResetResult{Token: token, ExpiresAt: expires}, nil
}

type ResetPasswordCommand struct {
	Token       string
	NewPassword string
}

type ResetPasswordHandler struct {
	repo domain.Repository
	now  func() time.Time
}

func NewResetPasswordHandler(repo domain.Repository) *ResetPasswordHandler {
	return &ResetPasswordHandler{repo: repo, now: time.Now}
}

// Handle sets the new password and clears the token.
func (h *ResetPasswordHandler) Handle(ctx context.Context, cmd ResetPasswordCommand) error {
	if len(cmd.NewPassword) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, MinPasswordLength)
	}
	if cmd.Token == "" {
		return domain.ErrInvalidResetToken
	}

	user, err := h.repo.FindByResetToken(ctx, cmd.Token, h.now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidResetToken
		}
		return err
	}

	hashed, err := auth.HashPassword(cmd.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed
	user.ResetToken = nil
	user.ResetTokenExpires = nil
	return h.repo.Update(ctx, user)
}
