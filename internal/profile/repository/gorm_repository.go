package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/smartskin/internal/profile/domain"
)

// GormProfileRepository implements domain.Repository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GORM profile repository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormProfileRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.User{}, &domain.Feedback{}, &domain.ViewHistory{}, &domain.SavedRoutine{})
}

// Create inserts a new user into the database
func (r *GormProfileRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by ID
func (r *GormProfileRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// FindByEmail retrieves a user by email
func (r *GormProfileRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// FindByResetToken finds the user holding an unexpired reset token.
func (r *GormProfileRepository) FindByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("reset_token = ? AND reset_token_expires > ?", token, now).
		First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// Update saves every column of user, including nil reset fields.
func (r *GormProfileRepository) Update(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// UpsertFeedback replaces the user's feedback for the product, if any.
func (r *GormProfileRepository) UpsertFeedback(ctx context.Context, f *domain.Feedback) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"product_name", "rating", "review", "liked", "used", "created_at"}),
	}).Create(f).Error
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

// ListFeedback returns the user's feedback, oldest first.
func (r *GormProfileRepository) ListFeedback(ctx context.Context, userID uint) ([]domain.Feedback, error) {
	var out []domain.Feedback
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return out, nil
}

// UpsertView inserts a history entry or refreshes it. A non-empty product
// name or category replaces the stored one; empty values keep it.
func (r *GormProfileRepository) UpsertView(ctx context.Context, v *domain.ViewHistory) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Set{
			{Column: clause.Column{Name: "last_viewed"}, Value: gorm.Expr("excluded.last_viewed")},
			{Column: clause.Column{Name: "product_name"}, Value: keepUnlessEmpty("product_name")},
			{Column: clause.Column{Name: "category"}, Value: keepUnlessEmpty("category")},
		},
	}).Create(v).Error
	if err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}
	return nil
}

// ListHistory returns the most recently viewed products first.
func (r *GormProfileRepository) ListHistory(ctx context.Context, userID uint, limit int) ([]domain.ViewHistory, error) {
	var out []domain.ViewHistory
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("last_viewed DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return out, nil
}

// CreateRoutine stores a saved routine.
func (r *GormProfileRepository) CreateRoutine(ctx context.Context, routine *domain.SavedRoutine) error {
	if err := r.db.WithContext(ctx).Create(routine).Error; err != nil {
		return fmt.Errorf("failed to save routine: %w", err)
	}
	return nil
}

// ListRoutines returns saved routines, oldest first.
func (r *GormProfileRepository) ListRoutines(ctx context.Context, userID uint) ([]domain.SavedRoutine, error) {
	var out []domain.SavedRoutine
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list routines: %w", err)
	}
	return out, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrUserNotFound
	}
	return fmt.Errorf("failed to find user: %w", err)
}

func keepUnlessEmpty(column string) clause.Expr {
	return gorm.Expr(fmt.Sprintf("COALESCE(NULLIF(excluded.%[1]s, ''), product_history.%[1]s)", column))
}
