package domain

import (
	"context"
	"errors"
	"strings"
)

// ErrDataUnavailable is returned when a catalog source is missing or corrupt.
var ErrDataUnavailable = errors.New("catalog data unavailable")

// Entry is one immutable catalog row. ID is the row index in the source.
type Entry struct {
	ID          int     `json:"id" gorm:"column:row_index;primaryKey;autoIncrement:false"`
	Label       string  `json:"label" gorm:"not null;index"`
	Brand       string  `json:"brand"`
	Name        string  `json:"name" gorm:"not null"`
	Rank        float64 `json:"rank"`
	Price       float64 `json:"price"`
	Ingredients string  `json:"ingredients" gorm:"type:text"`
	Combination bool    `json:"combination"`
	Dry         bool    `json:"dry"`
	Normal      bool    `json:"normal"`
	Oily        bool    `json:"oily"`
	Sensitive   bool    `json:"sensitive"`
}

// TableName specifies the table name
func (Entry) TableName() string {
	return "catalog_entries"
}

// Compatible reports the entry's flag for the given skin type.
func (e *Entry) Compatible(st SkinType) bool {
	switch st {
	case Combination:
		return e.Combination
	case Dry:
		return e.Dry
	case Normal:
		return e.Normal
	case Oily:
		return e.Oily
	case Sensitive:
		return e.Sensitive
	}
	return false
}

// SetCompatible sets the flag for the given skin type.
func (e *Entry) SetCompatible(st SkinType, v bool) {
	switch st {
	case Combination:
		e.Combination = v
	case Dry:
		e.Dry = v
	case Normal:
		e.Normal = v
	case Oily:
		e.Oily = v
	case Sensitive:
		e.Sensitive = v
	}
}

// IngredientTokens splits the ingredient text on commas and trims each token.
func (e *Entry) IngredientTokens() []string {
	parts := strings.Split(e.Ingredients, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Source loads catalog rows in row order.
type Source interface {
	Load(ctx context.Context) ([]Entry, error)
}
