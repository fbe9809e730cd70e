package routine

import "github.com/tair/smartskin/internal/catalog/domain"

// Step type labels.
const (
	Cleanser       = "Cleanser"
	Toner          = "Toner"
	Serum          = "Serum"
	TreatmentStep  = "Treatment"
	Moisturizer    = "Moisturizer"
	Sunscreen      = "Sunscreen"
	HumectantSerum = "Humectant Serum"
)

// Climates.
const (
	HotHumid = "hot_humid"
	ColdDry  = "cold_dry"
	Mild     = "mild"

	DefaultClimate = Mild
)

// Climates lists the supported climate keys.
var Climates = []string{HotHumid, ColdDry, Mild}

var (
	morningSteps = []string{Cleanser, Toner, Serum, Moisturizer, Sunscreen}
	eveningSteps = []string{Cleanser, Toner, Serum, TreatmentStep, Moisturizer}
)

type byType map[domain.SkinType][]string

var stepIngredients = map[string]byType{
	Cleanser: {
		domain.Oily:        {"Salicylic Acid", "Benzoyl Peroxide", "Niacinamide", "Tea Tree Oil"},
		domain.Dry:         {"Hyaluronic Acid", "Glycerin", "Ceramides", "Squalane"},
		domain.Combination: {"Niacinamide", "Glycerin", "Green Tea", "Aloe Vera"},
		domain.Normal:      {"Glycerin", "Aloe Vera", "Green Tea", "Panthenol"},
		domain.Sensitive:   {"Aloe Vera", "Chamomile", "Oat Extract", "Centella Asiatica"},
	},
	Toner: {
		domain.Oily:        {"Salicylic Acid", "Witch Hazel", "Niacinamide", "Green Tea"},
		domain.Dry:         {"Hyaluronic Acid", "Glycerin", "Rose Water", "Amino Acids"},
		domain.Combination: {"Niacinamide", "Hyaluronic Acid", "Green Tea", "Alpha-Hydroxy Acids"},
		domain.Normal:      {"Hyaluronic Acid", "Glycerin", "Niacinamide", "Panthenol"},
		domain.Sensitive:   {"Hyaluronic Acid", "Aloe Vera", "Chamomile", "Panthenol"},
	},
	Serum: {
		domain.Oily:        {"Niacinamide", "Zinc", "Salicylic Acid", "Alpha Hydroxy Acids"},
		domain.Dry:         {"Hyaluronic Acid", "Peptides", "Squalane", "Panthenol"},
		domain.Combination: {"Niacinamide", "Hyaluronic Acid", "Peptides", "Vitamin C"},
		domain.Normal:      {"Vitamin C", "Niacinamide", "Peptides", "Antioxidants"},
		domain.Sensitive:   {"Centella Asiatica", "Hyaluronic Acid", "Panthenol", "Peptides"},
	},
	TreatmentStep: {
		domain.Oily:        {"Retinol", "Alpha Hydroxy Acids", "Beta Hydroxy Acids", "Benzoyl Peroxide"},
		domain.Dry:         {"Retinol", "Lactic Acid", "Peptides", "Plant Oils"},
		domain.Combination: {"Retinol", "Alpha Hydroxy Acids", "Niacinamide", "Azelaic Acid"},
		domain.Normal:      {"Retinol", "Alpha Hydroxy Acids", "Peptides", "Vitamin C"},
		domain.Sensitive:   {"Bakuchiol", "Azelaic Acid", "Cica", "Niacinamide"},
	},
	Moisturizer: {
		domain.Oily:        {"Hyaluronic Acid", "Niacinamide", "Zinc", "Aloe Vera"},
		domain.Dry:         {"Hyaluronic Acid", "Ceramides", "Squalane", "Shea Butter"},
		domain.Combination: {"Hyaluronic Acid", "Niacinamide", "Ceramides", "Glycerin"},
		domain.Normal:      {"Hyaluronic Acid", "Ceramides", "Peptides", "Antioxidants"},
		domain.Sensitive:   {"Ceramides", "Oat Extract", "Aloe Vera", "Squalane"},
	},
	Sunscreen: {
		domain.Oily:        {"Zinc Oxide", "Oil-Free", "Niacinamide", "Silica"},
		domain.Dry:         {"Chemical Filters", "Glycerin", "Hyaluronic Acid", "Vitamin E"},
		domain.Combination: {"Hybrid Filters", "Niacinamide", "Vitamin E", "Silica"},
		domain.Normal:      {"Hybrid Filters", "Vitamin E", "Antioxidants", "Hyaluronic Acid"},
		domain.Sensitive:   {"Zinc Oxide", "Titanium Dioxide", "Niacinamide", "Squalane"},
	},
}

// concernStep is an extra evening step triggered by a concern.
type concernStep struct {
	step        string
	ingredients []string
}

var concernSteps = map[string]concernStep{
	"Acne":        {"Spot Treatment", []string{"Benzoyl Peroxide", "Salicylic Acid", "Tea Tree Oil", "Sulfur"}},
	"Aging":       {"Antioxidant Serum", []string{"Vitamin C", "Vitamin E", "Ferulic Acid", "CoQ10"}},
	"Dryness":     {"Facial Oil", []string{"Squalane", "Jojoba Oil", "Argan Oil", "Rosehip Oil"}},
	"Oily":        {"Oil-Control Primer", []string{"Kaolin Clay", "Silica", "Witch Hazel", "Zinc"}},
	"Sensitive":   {"Soothing Mask", []string{"Oat Extract", "Aloe Vera", "Chamomile", "Centella Asiatica"}},
	"Brightening": {"Brightening Serum", []string{"Vitamin C", "Alpha Arbutin", "Kojic Acid", "Licorice Root"}},
	"Redness":     {"Calming Serum", []string{"Centella Asiatica", "Green Tea", "Azelaic Acid", "Niacinamide"}},
}

// anySkin is the wildcard key in the texture table.
const anySkin domain.SkinType = "All"

var textures = map[string]map[string]map[domain.SkinType]string{
	HotHumid: {
		Moisturizer: {domain.Oily: "Gel", domain.Dry: "Lotion", domain.Combination: "Gel", domain.Normal: "Lotion", domain.Sensitive: "Lotion"},
		Sunscreen:   {anySkin: "Water-resistant SPF 50+"},
	},
	ColdDry: {
		Moisturizer: {domain.Oily: "Lotion", domain.Dry: "Cream", domain.Combination: "Lotion", domain.Normal: "Cream", domain.Sensitive: "Cream"},
	},
	Mild: {
		Moisturizer: {domain.Oily: "Gel", domain.Dry: "Lotion", domain.Combination: "Lotion", domain.Normal: "Lotion", domain.Sensitive: "Lotion"},
	},
}

// climateAddition is an extra step inserted after the step named in after.
type climateAddition struct {
	step        string
	after       string
	ingredients []string
}

var climateAdditions = map[string][]climateAddition{
	ColdDry: {{step: HumectantSerum, after: Serum, ingredients: []string{"Hyaluronic Acid", "Glycerin", "Panthenol", "Sodium PCA"}}},
}

// Skin-type irritants, listed ahead of the user's allergies.
var defaultAvoid = map[domain.SkinType][]string{
	domain.Sensitive: {"Alcohol Denat", "Fragrance", "Essential Oils", "Sulfates"},
	domain.Dry:       {"Alcohol Denat", "Sulfates"},
}

// weeklyRule matches when the skin type is in skinTypes or a concern is in
// concerns.
type weeklyRule struct {
	skinTypes []domain.SkinType
	concerns  []string
	treatment Treatment
}

func (r weeklyRule) matches(st domain.SkinType, concerns map[string]bool) bool {
	for _, s := range r.skinTypes {
		if s == st {
			return true
		}
	}
	for _, c := range r.concerns {
		if concerns[c] {
			return true
		}
	}
	return false
}

// Evaluated in order, first match wins.
var exfoliationRules = []weeklyRule{
	{
		skinTypes: []domain.SkinType{domain.Oily}, concerns: []string{"Acne"},
		treatment: Treatment{Step: "Chemical Exfoliant", Frequency: "2-3 times per week", RecommendedIngredients: []string{"Salicylic Acid", "Beta Hydroxy Acids"}},
	},
	{
		skinTypes: []domain.SkinType{domain.Dry},
		treatment: Treatment{Step: "Gentle Exfoliant", Frequency: "1-2 times per week", RecommendedIngredients: []string{"Lactic Acid", "PHAs"}},
	},
	{
		skinTypes: []domain.SkinType{domain.Combination, domain.Normal},
		treatment: Treatment{Step: "Chemical Exfoliant", Frequency: "1-2 times per week", RecommendedIngredients: []string{"Glycolic Acid", "Lactic Acid", "AHAs"}},
	},
	{
		skinTypes: []domain.SkinType{domain.Sensitive},
		treatment: Treatment{Step: "Ultra-Gentle Exfoliant", Frequency: "Once per week", RecommendedIngredients: []string{"PHAs", "Mandelic Acid"}},
	},
}

var maskRules = []weeklyRule{
	{
		skinTypes: []domain.SkinType{domain.Oily}, concerns: []string{"Acne"},
		treatment: Treatment{Step: "Clay Mask", Frequency: "Once per week", RecommendedIngredients: []string{"Kaolin Clay", "Bentonite Clay", "Charcoal"}},
	},
	{
		skinTypes: []domain.SkinType{domain.Dry}, concerns: []string{"Dryness"},
		treatment: Treatment{Step: "Hydrating Mask", Frequency: "1-2 times per week", RecommendedIngredients: []string{"Hyaluronic Acid", "Glycerin", "Honey", "Aloe Vera"}},
	},
	{
		concerns:  []string{"Aging"},
		treatment: Treatment{Step: "Antioxidant Mask", Frequency: "Once per week", RecommendedIngredients: []string{"Vitamin C", "Vitamin E", "CoQ10", "Green Tea"}},
	},
	{
		concerns:  []string{"Brightening"},
		treatment: Treatment{Step: "Brightening Mask", Frequency: "Once per week", RecommendedIngredients: []string{"Vitamin C", "Licorice Root", "Alpha Arbutin", "Niacinamide"}},
	},
}
