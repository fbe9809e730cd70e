package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/tair/smartskin/internal/recommend"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrInvalidInput       = errors.New("invalid input")
)

// HistoryLimit is the number of history entries returned by default.
const HistoryLimit = 20

// User is a registered account with its stored preferences.
type User struct {
	ID                uint        `json:"id" gorm:"primaryKey"`
	Email             string      `json:"email" gorm:"uniqueIndex;not null"`
	Password          string      `json:"-" gorm:"not null"` // Never expose password in JSON
	Name              string      `json:"name"`
	Preferences       Preferences `json:"preferences" gorm:"embedded;embeddedPrefix:pref_"`
	ResetToken        *string     `json:"-" gorm:"index"`
	ResetTokenExpires *time.Time  `json:"-"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Preferences are what the user saved from the profile page.
type Preferences struct {
	SkinType             string   `json:"skin_type"`
	SkinConcerns         []string `json:"skin_concerns" gorm:"type:text;serializer:json"`
	Allergies            []string `json:"allergies" gorm:"type:text;serializer:json"`
	PreferredIngredients []string `json:"preferred_ingredients" gorm:"type:text;serializer:json"`
	PreferredCategories  []string `json:"preferred_categories" gorm:"type:text;serializer:json"`
	Climate              string   `json:"climate"`
}

// Request converts stored preferences into a scorer request.
func (p Preferences) Request() recommend.Request {
	return recommend.Request{
		SkinType:             p.SkinType,
		SkinConcerns:         p.SkinConcerns,
		PreferredIngredients: p.PreferredIngredients,
		Allergies:            p.Allergies,
		PreferredCategories:  p.PreferredCategories,
	}
}

// Feedback is a user's opinion of one product. There is at most one row per
// (user, product).
type Feedback struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	UserID      uint      `json:"-" gorm:"not null;uniqueIndex:idx_feedback_user_product"`
	ProductID   int       `json:"product_id" gorm:"not null;uniqueIndex:idx_feedback_user_product"`
	ProductName string    `json:"product_name"`
	Rating      int       `json:"rating"`
	Review      string    `json:"review" gorm:"type:text"`
	Liked       *bool     `json:"liked"`
	Used        bool      `json:"used"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Feedback) TableName() string {
	return "product_feedback"
}

func (f Feedback) Record() recommend.Feedback {
	return recommend.Feedback{
		ProductID: f.ProductID,
		Liked:     f.Liked,
		Rating:    f.Rating,
		Review:    f.Review,
		Used:      f.Used,
		CreatedAt: f.CreatedAt,
	}
}

// ViewHistory records the last time a user looked at a product.
type ViewHistory struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	UserID      uint      `json:"-" gorm:"not null;uniqueIndex:idx_history_user_product"`
	ProductID   int       `json:"product_id" gorm:"not null;uniqueIndex:idx_history_user_product"`
	ProductName string    `json:"product_name"`
	Category    string    `json:"category"`
	LastViewed  time.Time `json:"last_viewed" gorm:"index"`
}

func (ViewHistory) TableName() string {
	return "product_history"
}

func (v ViewHistory) Record() recommend.View {
	return recommend.View{ProductID: v.ProductID, Category: v.Category, LastViewed: v.LastViewed}
}

// SavedRoutine is a routine the user chose to keep.
type SavedRoutine struct {
	ID        string          `json:"id" gorm:"primaryKey;size:36"`
	UserID    uint            `json:"-" gorm:"not null;index"`
	Name      string          `json:"name"`
	Products  json.RawMessage `json:"products,omitempty" gorm:"type:text;serializer:json"`
	Steps     json.RawMessage `json:"steps" gorm:"type:text;serializer:json"`
	CreatedAt time.Time       `json:"created_at"`
}

func (SavedRoutine) TableName() string {
	return "saved_routines"
}

// Repository is the user-profile store.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByResetToken(ctx context.Context, token string, now time.Time) (*User, error)
	Update(ctx context.Context, user *User) error

	UpsertFeedback(ctx context.Context, f *Feedback) error
	ListFeedback(ctx context.Context, userID uint) ([]Feedback, error)
	UpsertView(ctx context.Context, v *ViewHistory) error
	ListHistory(ctx context.Context, userID uint, limit int) ([]ViewHistory, error)

	CreateRoutine(ctx context.Context, r *SavedRoutine) error
	ListRoutines(ctx context.Context, userID uint) ([]SavedRoutine, error)
}

// FeedbackPublisher announces saved feedback to other consumers.
type FeedbackPublisher interface {
	PublishFeedbackRecorded(ctx context.Context, f Feedback) error
}

// ProductLookup resolves catalog products by id.
type ProductLookup interface {
	ProductInfo(id int) (name, category string, ok bool)
}
