package routine

import (
	"sort"
	"strings"

	"github.com/tair/smartskin/internal/catalog/domain"
)

// picksPerStep is how many catalog products are attached to each step.
const picksPerStep = 3

// Pick is a catalog product attached to a routine step.
type Pick struct {
	ID     int     `json:"id"`
	Brand  string  `json:"brand"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// AttachProducts returns a copy of r with up to three catalog products on
// every step, weekly treatments included. Steps with no matching category
// are left without picks.
func AttachProducts(r Routine, cat *domain.Catalog) Routine {
	out := Routine{
		Morning: make([]Step, len(r.Morning)),
		Evening: make([]Step, len(r.Evening)),
		Weekly:  make([]Treatment, len(r.Weekly)),
	}
	copy(out.Morning, r.Morning)
	copy(out.Evening, r.Evening)
	copy(out.Weekly, r.Weekly)

	for i := range out.Morning {
		out.Morning[i].ProductRecommendations = topProducts(cat, out.Morning[i].Step, out.Morning[i].RecommendedIngredients)
	}
	for i := range out.Evening {
		out.Evening[i].ProductRecommendations = topProducts(cat, out.Evening[i].Step, out.Evening[i].RecommendedIngredients)
	}
	for i := range out.Weekly {
		out.Weekly[i].ProductRecommendations = topProducts(cat, out.Weekly[i].Step, out.Weekly[i].RecommendedIngredients)
	}
	return out
}

// topProducts matches by exact label, then by case-insensitive substring of
// the label. Among those, products matching at least one recommended
// ingredient are preferred when any exist. The result is ordered by rank,
// highest first, ties in catalog order.
func topProducts(cat *domain.Catalog, step string, ingredients []string) []Pick {
	entries := cat.Entries()
	var candidates []*domain.Entry
	for i := range entries {
		if entries[i].Label == step {
			candidates = append(candidates, &entries[i])
		}
	}
	if len(candidates) == 0 {
		needle := strings.ToLower(step)
		for i := range entries {
			if strings.Contains(strings.ToLower(entries[i].Label), needle) {
				candidates = append(candidates, &entries[i])
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	if len(ingredients) > 0 {
		var matched []*domain.Entry
		for _, e := range candidates {
			if ingredientMatches(e.Ingredients, ingredients) > 0 {
				matched = append(matched, e)
			}
		}
		if len(matched) > 0 {
			candidates = matched
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Rank > candidates[j].Rank
	})
	if len(candidates) > picksPerStep {
		candidates = candidates[:picksPerStep]
	}

	picks := make([]Pick, len(candidates))
	for i, e := range candidates {
		picks[i] = Pick{ID: e.ID, Brand: e.Brand, Name: e.Name, Rating: e.Rank}
	}
	return picks
}

func ingredientMatches(text string, ingredients []string) int {
	text = strings.ToLower(text)
	n := 0
	for _, ing := range ingredients {
		if strings.Contains(text, strings.ToLower(ing)) {
			n++
		}
	}
	return n
}
