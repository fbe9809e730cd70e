package command

import (
	"context"
	"errors"

	"github.com/tair/smartskin/internal/profile/domain"
	"github.com/tair/smartskin/pkg/auth"
)

// LoginUserCommand represents the command to login a user
type LoginUserCommand struct {
	Email    string
	Password string
}

// LoginUserHandler handles user login command
type LoginUserHandler struct {
	repo   domain.Repository
	tokens *auth.TokenManager
}

func NewLoginUserHandler(repo domain.Repository, tokens *auth.TokenManager) *LoginUserHandler {
	return &LoginUserHandler{repo: repo, tokens: tokens}
}

// Handle verifies credentials. Unknown email and wrong password return the
// same error.
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*AuthResult, error) {
	if cmd.Email == "" || cmd.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := h.repo.FindByEmail(ctx, normalizeEmail(cmd.Email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
