package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/smartskin/internal/profile/domain"
	"github.com/tair/smartskin/pkg/auth"
)

// UpdateProfileCommand changes the name and, optionally, the password.
type UpdateProfileCommand struct {
	UserID   uint
	Name     string
	Password string
}

type UpdateProfileHandler struct {
	repo domain.Repository
}

func NewUpdateProfileHandler(repo domain.Repository) *UpdateProfileHandler {
	return &UpdateProfileHandler{repo: repo}
}

func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*domain.User, error) {
	user, err := h.repo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(cmd.Name); name != "" {
		user.Name = name
	}
	if cmd.Password != "" {
		if len(cmd.Password) < MinPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, MinPasswordLength)
		}
		hashed, err := auth.HashPassword(cmd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hashed
	}

	if err := h.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePreferencesCommand replaces the stored preferences.
type UpdatePreferencesCommand struct {
	UserID      uint
	Preferences domain.Preferences
}

type UpdatePreferencesHandler struct {
	repo domain.Repository
}

func NewUpdatePreferencesHandler(repo domain.Repository) *UpdatePreferencesHandler {
	return &UpdatePreferencesHandler{repo: repo}
}

func (h *UpdatePreferencesHandler) Handle(ctx context.Context, cmd UpdatePreferencesCommand) (*domain.User, error) {
	user, err := h.repo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	user.Preferences = cmd.Preferences
	if err := h.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
