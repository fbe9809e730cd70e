package recommend

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tair/smartskin/internal/catalog/domain"
)

var validate = validator.New()

// Request is the preference payload as it arrives at the transport boundary.
type Request struct {
	SkinType             string   `json:"skin_type" validate:"omitempty,max=32"`
	SkinConcerns         []string `json:"skin_concerns" validate:"max=20,dive,max=64"`
	PreferredIngredients []string `json:"preferred_ingredients" validate:"max=50,dive,max=100"`
	Allergies            []string `json:"allergies" validate:"max=50,dive,max=100"`
	PreferredCategories  []string `json:"preferred_categories" validate:"max=30,dive,max=64"`
}

// Validate checks field sizes only. Unknown skin types are not an error;
// Preferences substitutes the default for them.
func (r Request) Validate() error {
	return validate.Struct(r)
}

// Preferences is the validated, defaulted form used by the scorer.
type Preferences struct {
	SkinType             domain.SkinType `json:"skin_type"`
	SkinConcerns         []string        `json:"skin_concerns"`
	PreferredIngredients []string        `json:"preferred_ingredients"`
	Allergies            []string        `json:"allergies"`
	PreferredCategories  []string        `json:"preferred_categories"`
}

// Preferences applies defaults. The second result is false when the skin
// type was present but unrecognised and had to be replaced.
func (r Request) Preferences() (Preferences, bool) {
	p := Preferences{
		SkinType:             domain.DefaultSkinType,
		SkinConcerns:         clean(r.SkinConcerns),
		PreferredIngredients: clean(r.PreferredIngredients),
		Allergies:            clean(r.Allergies),
		PreferredCategories:  clean(r.PreferredCategories),
	}
	if strings.TrimSpace(r.SkinType) == "" {
		return p, true
	}
	st, ok := domain.ParseSkinType(r.SkinType)
	if ok {
		p.SkinType = st
	}
	return p, ok
}

// clean drops blank entries and never returns nil.
func clean(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Feedback is one like/dislike record for a product. Liked is nil when the
// user left it unset.
type Feedback struct {
	ProductID int       `json:"product_id"`
	Liked     *bool     `json:"liked"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

// View is one view-history entry.
type View struct {
	ProductID  int       `json:"product_id"`
	Category   string    `json:"category"`
	LastViewed time.Time `json:"last_viewed"`
}
