package recommend

import (
	"strings"

	"github.com/tair/smartskin/internal/catalog/domain"
)

const (
	likedIngredientBonus = 2.0
	dislikedCategoryCost = 3.0
	viewedCategoryBonus  = 1.0
)

// personalizer holds the per-request sets derived from feedback and history.
// Building it is order-independent: only set membership matters.
type personalizer struct {
	likedIngredients   map[string]struct{}
	dislikedCategories map[string]struct{}
	viewedCategories   map[string]struct{}
}

// newPersonalizer returns nil when there is nothing to fold in.
//
// Liked ingredients come from liked products present in pool, the candidates
// left after filtering. Disliked categories are looked up in the whole
// catalog so that disliking a product outside the current filter still
// counts.
func newPersonalizer(cat *domain.Catalog, pool []*domain.Entry, feedback []Feedback, history []View) *personalizer {
	if len(feedback) == 0 && len(history) == 0 {
		return nil
	}

	liked := make(map[int]struct{})
	p := &personalizer{
		likedIngredients:   make(map[string]struct{}),
		dislikedCategories: make(map[string]struct{}),
		viewedCategories:   make(map[string]struct{}),
	}
	for _, f := range feedback {
		if f.Liked == nil {
			continue
		}
		if *f.Liked {
			liked[f.ProductID] = struct{}{}
			continue
		}
		if e, ok := cat.Lookup(f.ProductID); ok {
			p.dislikedCategories[e.Label] = struct{}{}
		}
	}
	for _, e := range pool {
		if _, ok := liked[e.ID]; !ok {
			continue
		}
		for _, tok := range e.IngredientTokens() {
			p.likedIngredients[strings.ToLower(tok)] = struct{}{}
		}
	}
	for _, h := range history {
		if h.Category != "" {
			p.viewedCategories[h.Category] = struct{}{}
		}
	}
	return p
}

// score is the unweighted adjustment for one candidate.
func (p *personalizer) score(e *domain.Entry) float64 {
	if p == nil {
		return 0
	}
	var s float64

	seen := make(map[string]struct{})
	for _, tok := range e.IngredientTokens() {
		tok = strings.ToLower(tok)
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		if _, ok := p.likedIngredients[tok]; ok {
			s += likedIngredientBonus
		}
	}
	if _, ok := p.dislikedCategories[e.Label]; ok {
		s -= dislikedCategoryCost
	}
	if _, ok := p.viewedCategories[e.Label]; ok {
		s += viewedCategoryBonus
	}
	return s
}
