package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tair/smartskin/internal/profile/domain"
	"github.com/tair/smartskin/pkg/auth"
)

var validate = validator.New()

// MinPasswordLength applies to registration and password reset.
const MinPasswordLength = 6

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Email    string
	Password string
	Name     string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo   domain.Repository
	tokens *auth.TokenManager
}

func NewRegisterUserHandler(repo domain.Repository, tokens *auth.TokenManager) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo, tokens: tokens}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*AuthResult, error) {
	email := normalizeEmail(cmd.Email)
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
	}
	if len(cmd.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, MinPasswordLength)
	}

	if _, err := h.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:    email,
		Password: hashed,
		Name:     strings.TrimSpace(cmd.Name),
	}
	if err := h.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
