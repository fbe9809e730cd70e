package recommend

import (
	"sort"
	"strings"

	"github.com/tair/smartskin/internal/catalog/domain"
)

// Scoring constants. Allergen and ingredient matching is plain
// case-insensitive substring containment on the ingredient text.
const (
	MaxResults                = 8
	RankWeight                = 2.0
	PreferredIngredientWeight = 1.5
	ConcernWeight             = 2.0
	PersonalizationWeight     = 0.3

	ingredientPreviewLen = 150
)

// Product is one ranked recommendation.
type Product struct {
	ID          int     `json:"id"`
	Label       string  `json:"label"`
	Brand       string  `json:"brand"`
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	Rating      float64 `json:"rating"`
	Price       float64 `json:"price"`
	Ingredients string  `json:"ingredients"`
}

// Scorer ranks catalog entries against user preferences. It only reads the
// catalog snapshot and is safe for concurrent use.
type Scorer struct {
	catalog *domain.Catalog
}

func NewScorer(c *domain.Catalog) *Scorer {
	return &Scorer{catalog: c}
}

// Recommend returns at most MaxResults products sorted by descending score,
// ties kept in catalog order. feedback and history may be nil.
func (s *Scorer) Recommend(prefs Preferences, feedback []Feedback, history []View) []Product {
	pool := s.candidates(prefs)
	if len(pool) == 0 {
		return []Product{}
	}

	pers := newPersonalizer(s.catalog, pool, feedback, history)
	preferred := lowerAll(prefs.PreferredIngredients)
	concerns := lowerAll(prefs.SkinConcerns)

	ranked := make([]Product, 0, len(pool))
	for _, e := range pool {
		text := strings.ToLower(e.Ingredients)
		score := e.Rank*RankWeight +
			float64(countContained(text, preferred))*PreferredIngredientWeight +
			float64(countContained(text, concerns))*ConcernWeight +
			pers.score(e)*PersonalizationWeight
		ranked = append(ranked, toProduct(e, score))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > MaxResults {
		ranked = ranked[:MaxResults]
	}
	return ranked
}

// candidates applies the skin-type, category and allergen filters in
// catalog order.
func (s *Scorer) candidates(prefs Preferences) []*domain.Entry {
	var categories map[string]struct{}
	if len(prefs.PreferredCategories) > 0 {
		categories = make(map[string]struct{}, len(prefs.PreferredCategories))
		for _, c := range prefs.PreferredCategories {
			categories[c] = struct{}{}
		}
	}
	allergies := lowerAll(prefs.Allergies)

	entries := s.catalog.Entries()
	var pool []*domain.Entry
	for i := range entries {
		e := &entries[i]
		if !e.Compatible(prefs.SkinType) {
			continue
		}
		if categories != nil {
			if _, ok := categories[e.Label]; !ok {
				continue
			}
		}
		if ContainsAny(e.Ingredients, allergies) {
			continue
		}
		pool = append(pool, e)
	}
	return pool
}

// ContainsAny reports whether text contains any of the lowercase needles,
// ignoring case.
func ContainsAny(text string, needles []string) bool {
	if len(needles) == 0 {
		return false
	}
	return countContained(strings.ToLower(text), needles) > 0
}

func countContained(lowerText string, needles []string) int {
	n := 0
	for _, s := range needles {
		if s != "" && strings.Contains(lowerText, s) {
			n++
		}
	}
	return n
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func toProduct(e *domain.Entry, score float64) Product {
	return Product{
		ID:          e.ID,
		Label:       e.Label,
		Brand:       e.Brand,
		Name:        e.Name,
		Score:       score,
		Rating:      e.Rank,
		Price:       e.Price,
		Ingredients: Preview(e.Ingredients),
	}
}

// Preview truncates ingredient text for listings.
func Preview(ingredients string) string {
	r := []rune(ingredients)
	if len(r) <= ingredientPreviewLen {
		return ingredients
	}
	return string(r[:ingredientPreviewLen]) + "..."
}
