package command

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tair/smartskin/internal/profile/domain"
)

// DefaultRoutineName is used when a routine is saved without a name.
const DefaultRoutineName = "My Routine"

type SaveRoutineCommand struct {
	UserID   uint
	Name     string
	Products json.RawMessage
	Steps    json.RawMessage
}

type SaveRoutineHandler struct {
	repo domain.Repository
	now  func() time.Time
}

func NewSaveRoutineHandler(repo domain.Repository) *SaveRoutineHandler {
	return &SaveRoutineHandler{repo: repo, now: time.Now}
}

func (h *SaveRoutineHandler) Handle(ctx context.Context, cmd SaveRoutineCommand) (*domain.SavedRoutine, error) {
	if len(cmd.Steps) == 0 {
		cmd.Steps = json.RawMessage("[]")
	}
	if !json.Valid(cmd.Steps) || (len(cmd.Products) > 0 && !json.Valid(cmd.Products)) {
		return nil, fmt.Errorf("%w: routine payload is not valid JSON", domain.ErrInvalidInput)
	}
	if len(cmd.Products) == 0 {
		cmd.Products = nil
	}

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		name = DefaultRoutineName
	}

	routine := &domain.SavedRoutine{
		ID:        uuid.NewString(),
		UserID:    cmd.UserID,
		Name:      name,
		Products:  cmd.Products,
		Steps:     cmd.Steps,
		CreatedAt: h.now().UTC(),
	}
	if err := h.repo.CreateRoutine(ctx, routine); err != nil {
		return nil, err
	}
	return routine, nil
}
