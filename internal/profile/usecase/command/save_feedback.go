package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/smartskin/internal/profile/domain"
	"github.com/tair/smartskin/pkg/logger"
)

type SaveFeedbackCommand struct {
	UserID      uint
	ProductID   int
	ProductName string
	Category    string
	Rating      int
	Review      string
	Liked       *bool
	Used        bool
}

// SaveFeedbackHandler upserts feedback, refreshes the view history entry for
// the product and announces the change. Publishing is best effort.
type SaveFeedbackHandler struct {
	repo      domain.Repository
	products  domain.ProductLookup
	publisher domain.FeedbackPublisher
	now       func() time.Time
}

// NewSaveFeedbackHandler accepts a nil products or publisher.
func NewSaveFeedbackHandler(repo domain.Repository, products domain.ProductLookup, publisher domain.FeedbackPublisher) *SaveFeedbackHandler {
	return &SaveFeedbackHandler{repo: repo, products: products, publisher: publisher, now: time.Now}
}

func (h *SaveFeedbackHandler) Handle(ctx context.Context, cmd SaveFeedbackCommand) (*domain.Feedback, error) {
	if cmd.ProductID < 0 {
		return nil, fmt.Errorf("%w: product_id must not be negative", domain.ErrInvalidInput)
	}
	if cmd.Rating < 0 || cmd.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5 when set", domain.ErrInvalidInput)
	}
	cmd.ProductName, cmd.Category = fillProduct(h.products, cmd.ProductID, cmd.ProductName, cmd.Category)

	now := h.now().UTC()
	f := &domain.Feedback{
		UserID:      cmd.UserID,
		ProductID:   cmd.ProductID,
		ProductName: cmd.ProductName,
		Rating:      cmd.Rating,
		Review:      cmd.Review,
		Liked:       cmd.Liked,
		Used:        cmd.Used,
		CreatedAt:   now,
	}
	if err := h.repo.UpsertFeedback(ctx, f); err != nil {
		return nil, err
	}

	view := &domain.ViewHistory{
		UserID:      cmd.UserID,
		ProductID:   cmd.ProductID,
		ProductName: cmd.ProductName,
		Category:    cmd.Category,
		LastViewed:  now,
	}
	if err := h.repo.UpsertView(ctx, view); err != nil {
		return nil, err
	}

	if h.publisher != nil {
		if err := h.publisher.PublishFeedbackRecorded(ctx, *f); err != nil {
			logger.Warn(ctx).Err(err).
				Uint("user_id", cmd.UserID).
				Int("product_id", cmd.ProductID).
				Msg("Failed to publish feedback event")
		}
	}
	return f, nil
}

type RecordViewCommand struct {
	UserID      uint
	ProductID   int
	ProductName string
	Category    string
}

type RecordViewHandler struct {
	repo     domain.Repository
	products domain.ProductLookup
	now      func() time.Time
}

func NewRecordViewHandler(repo domain.Repository, products domain.ProductLookup) *RecordViewHandler {
	return &RecordViewHandler{repo: repo, products: products, now: time.Now}
}

func (h *RecordViewHandler) Handle(ctx context.Context, cmd RecordViewCommand) (*domain.ViewHistory, error) {
	if cmd.ProductID < 0 {
		return nil, fmt.Errorf("%w: product_id must not be negative", domain.ErrInvalidInput)
	}
	name, category := fillProduct(h.products, cmd.ProductID, cmd.ProductName, cmd.Category)
	view := &domain.ViewHistory{
		UserID:      cmd.UserID,
		ProductID:   cmd.ProductID,
		ProductName: name,
		Category:    category,
		LastViewed:  h.now().UTC(),
	}
	if err := h.repo.UpsertView(ctx, view); err != nil {
		return nil, err
	}
	return view, nil
}

// fillProduct completes missing name or category from the catalog.
func fillProduct(products domain.ProductLookup, id int, name, category string) (string, string) {
	if products == nil || (name != "" && category != "") {
		return name, category
	}
	n, c, ok := products.ProductInfo(id)
	if !ok {
		return name, category
	}
	if name == "" {
		name = n
	}
	if category == "" {
		category = c
	}
	return name, category
}
