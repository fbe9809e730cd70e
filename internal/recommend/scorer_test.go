package recommend

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/smartskin/internal/catalog/domain"
)

func entry(id int, label string, rank float64, ingredients string, types ...domain.SkinType) domain.Entry {
	e := domain.Entry{ID: id, Label: label, Brand: "Brand", Name: fmt.Sprintf("Product %d", id), Rank: rank, Ingredients: ingredients}
	for _, st := range types {
		e.SetCompatible(st, true)
	}
	return e
}

func boolPtr(b bool) *bool { return &b }

func TestRecommend_NoSkinTypeMatchIsEmpty(t *testing.T) {
	cat := domain.NewCatalog([]domain.Entry{entry(0, "Moisturizer", 4.5, "Water", domain.Oily)})
	got := NewScorer(cat).Recommend(Preferences{SkinType: domain.Dry}, nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecommend_AllergenIsHardExclusion(t *testing.T) {
	cat := domain.NewCatalog([]domain.Entry{
		entry(0, "Serum", 5.0, "Water, NIACINAMIDE, Zinc", domain.Oily),
		entry(1, "Serum", 1.0, "Water, Zinc", domain.Oily),
	})
	prefs := Preferences{
		SkinType:             domain.Oily,
		Allergies:            []string{"Niacinamide"},
		PreferredIngredients: []string{"niacinamide", "zinc"},
	}
	got := NewScorer(cat).Recommend(prefs, nil, nil)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestRecommend_BaseScore(t *testing.T) {
	cat := domain.NewCatalog([]domain.Entry{
		entry(0, "Serum", 4.0, "Water, Hyaluronic Acid, Salicylic Acid for acne", domain.Normal),
	})
	prefs := Preferences{
		SkinType:             domain.Normal,
		PreferredIngredients: []string{"hyaluronic acid", "retinol"},
		SkinConcerns:         []string{"Acne"},
	}
	got := NewScorer(cat).Recommend(prefs, nil, nil)
	require.Len(t, got, 1)
	assert.InDelta(t, 4.0*2+1*1.5+1*2, got[0].Score, 1e-9)
	assert.Equal(t, 4.0, got[0].Rating)
}

func TestRecommend_PreferredCategories(t *testing.T) {
	cat := domain.NewCatalog([]domain.Entry{
		entry(0, "Cleanser", 3, "Water", domain.Dry),
		entry(1, "Moisturizer", 3, "Water", domain.Dry),
		entry(2, "Toner", 3, "Water", domain.Dry),
	})
	got := NewScorer(cat).Recommend(Preferences{SkinType: domain.Dry, PreferredCategories: []string{"Toner", "Cleanser"}}, nil, nil)
	require.Len(t, got, 2)
	assert.Equal(t, []int{0, 2}, []int{got[0].ID, got[1].ID})
}

func TestRecommend_LimitOrderAndDeterminism(t *testing.T) {
	var entries []domain.Entry
	for i := 0; i < 12; i++ {
		entries = append(entries, entry(i, "Serum", float64(i%3), "Water", domain.Combination))
	}
	s := NewScorer(domain.NewCatalog(entries))
	prefs := Preferences{SkinType: domain.Combination}

	got := s.Recommend(prefs, nil, nil)
	require.Len(t, got, MaxResults)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
	// Rank 2 rows in catalog order, then rank 1 rows.
	assert.Equal(t, []int{2, 5, 8, 11, 1, 4, 7, 10}, ids(got))
	assert.Equal(t, got, s.Recommend(prefs, nil, nil))
}

func TestRecommend_LikedIngredientOverlap(t *testing.T) {
	cat := domain.NewCatalog([]domain.Entry{
		entry(0, "Serum", 3, "Water, Hyaluronic Acid", domain.Dry),
		entry(1, "Cream", 3, "Shea Butter, Hyaluronic Acid", domain.Dry),
		entry(2, "Cream", 3, "Shea Butter, Squalane", domain.Dry),
	})
	feedback := []Feedback{{ProductID: 0, Liked: boolPtr(true)}}
	got := NewScorer(cat).Recommend(Preferences{SkinType: domain.Dry}, feedback, nil)
	byID := scores(got)
	assert.InDelta(t, 2*0.3, byID[1]-byID[2], 1e-9)
}

func TestRecommend_DislikedCategoryPenaltyOnce(t *testing.T) {
	cat := domain.NewCatalog([]domain.Entry{
		entry(0, "Toner", 3, "Alcohol Denat", domain.Oily),
		entry(1, "Toner", 3, "Witch Hazel", domain.Oily),
		entry(2, "Toner", 3, "Rose Water", domain.Oily),
		entry(3, "Cleanser", 3, "Water", domain.Oily),
	})
	feedback := []Feedback{
		{ProductID: 0, Liked: boolPtr(false)},
		{ProductID: 1, Liked: boolPtr(false)},
		{ProductID: 3, Liked: nil},
	}
	got := NewScorer(cat).Recommend(Preferences{SkinType: domain.Oily}, feedback, nil)
	byID := scores(got)
	assert.InDelta(t, 3*2-3*0.3, byID[2], 1e-9)
	assert.InDelta(t, 3*2.0, byID[3], 1e-9)
	assert.Equal(t, 3, got[0].ID)
}

func TestRecommend_ViewedCategoryBonus(t *testing.T) {
	cat := domain.NewCatalog([]domain.Entry{
		entry(0, "Toner", 3, "Water", domain.Normal),
		entry(1, "Mask", 3, "Clay", domain.Normal),
	})
	history := []View{{ProductID: 9, Category: "Mask"}}
	got := NewScorer(cat).Recommend(Preferences{SkinType: domain.Normal}, nil, history)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.InDelta(t, 0.3, got[0].Score-got[1].Score, 1e-9)
}

func TestRecommend_FeedbackOrderDoesNotMatter(t *testing.T) {
	cat := domain.NewCatalog([]domain.Entry{
		entry(0, "Serum", 3, "Niacinamide, Zinc", domain.Oily),
		entry(1, "Toner", 2, "Zinc, Witch Hazel", domain.Oily),
		entry(2, "Serum", 4, "Retinol", domain.Oily),
	})
	a := []Feedback{{ProductID: 0, Liked: boolPtr(true)}, {ProductID: 2, Liked: boolPtr(false)}}
	b := []Feedback{a[1], a[0]}
	s := NewScorer(cat)
	assert.Equal(t, s.Recommend(Preferences{SkinType: domain.Oily}, a, nil), s.Recommend(Preferences{SkinType: domain.Oily}, b, nil))
}

func TestRecommend_AllergenSurvivesPersonalization(t *testing.T) {
	cat := domain.NewCatalog([]domain.Entry{
		entry(0, "Serum", 5, "Fragrance, Glycerin", domain.Sensitive),
	})
	feedback := []Feedback{{ProductID: 0, Liked: boolPtr(true)}}
	got := NewScorer(cat).Recommend(Preferences{SkinType: domain.Sensitive, Allergies: []string{"fragrance"}}, feedback, []View{{Category: "Serum"}})
	assert.Empty(t, got)
}

func TestPreview(t *testing.T) {
	short := "Water, Glycerin"
	assert.Equal(t, short, Preview(short))

	long := strings.Repeat("a", 151)
	assert.Equal(t, strings.Repeat("a", 150)+"...", Preview(long))
}

func TestRequest_Preferences(t *testing.T) {
	tests := []struct {
		name   string
		in     Request
		want   domain.SkinType
		wantOK bool
	}{
		{"empty defaults", Request{}, domain.Normal, true},
		{"case-insensitive", Request{SkinType: "oily"}, domain.Oily, true},
		{"unknown substituted", Request{SkinType: "Scaly"}, domain.Normal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := tt.in.Preferences()
			assert.Equal(t, tt.want, p.SkinType)
			assert.Equal(t, tt.wantOK, ok)
			assert.NotNil(t, p.Allergies)
		})
	}
}

func TestRequest_Validate(t *testing.T) {
	assert.NoError(t, Request{SkinType: "Dry", Allergies: []string{"Fragrance"}}.Validate())
	assert.Error(t, Request{Allergies: []string{strings.Repeat("x", 101)}}.Validate())
}

func ids(ps []Product) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func scores(ps []Product) map[int]float64 {
	out := make(map[int]float64, len(ps))
	for _, p := range ps {
		out[p.ID] = p.Score
	}
	return out
}
