package routine

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tair/smartskin/internal/catalog/domain"
)

var validate = validator.New()

// Step is one entry of the morning or evening bucket.
type Step struct {
	Step                   string   `json:"step"`
	RecommendedIngredients []string `json:"recommended_ingredients"`
	AvoidIngredients       []string `json:"avoid_ingredients"`
	Texture                string   `json:"texture,omitempty"`
	ProductRecommendations []Pick   `json:"product_recommendations,omitempty"`
}

// Treatment is a weekly step.
type Treatment struct {
	Step                   string   `json:"step"`
	Frequency              string   `json:"frequency"`
	RecommendedIngredients []string `json:"recommended_ingredients"`
	ProductRecommendations []Pick   `json:"product_recommendations,omitempty"`
}

// Routine is the composed regimen.
type Routine struct {
	Morning []Step      `json:"morning"`
	Evening []Step      `json:"evening"`
	Weekly  []Treatment `json:"weekly"`
}

// Request is the routine payload accepted at the transport boundary.
type Request struct {
	SkinType        string   `json:"skin_type" validate:"omitempty,max=32"`
	SkinConcerns    []string `json:"skin_concerns" validate:"max=20,dive,max=64"`
	Allergies       []string `json:"allergies" validate:"max=50,dive,max=100"`
	Climate         string   `json:"climate" validate:"omitempty,max=32"`
	IncludeProducts bool     `json:"include_products"`
}

func (r Request) Validate() error {
	return validate.Struct(r)
}

// ParseClimate returns the climate key for s, or DefaultClimate and false
// when s is set but unknown. An empty s yields the default and true.
func ParseClimate(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultClimate, true
	}
	for _, c := range Climates {
		if c == s {
			return c, true
		}
	}
	return DefaultClimate, false
}

// Compose builds a routine from static tables. Unknown concerns are ignored.
// climate must be one of Climates; anything else is treated as Mild.
func Compose(st domain.SkinType, concerns, allergies []string, climate string) Routine {
	if _, ok := domain.ParseSkinType(string(st)); !ok {
		st = domain.DefaultSkinType
	}
	if _, ok := textures[climate]; !ok {
		climate = DefaultClimate
	}
	avoid := avoidList(st, allergies)

	r := Routine{
		Morning: buildBucket(morningSteps, st, climate, avoid),
		Evening: buildBucket(eveningSteps, st, climate, avoid),
	}

	active := canonicalConcerns(concerns)
	for _, c := range active.ordered {
		cs := concernSteps[c]
		r.Evening = append(r.Evening, Step{
			Step:                   cs.step,
			RecommendedIngredients: copyOf(cs.ingredients),
			AvoidIngredients:       copyOf(avoid),
		})
	}

	r.Weekly = weekly(st, active.set)
	return r
}

func buildBucket(steps []string, st domain.SkinType, climate string, avoid []string) []Step {
	additions := climateAdditions[climate]
	out := make([]Step, 0, len(steps)+len(additions))
	for _, name := range steps {
		out = append(out, Step{
			Step:                   name,
			RecommendedIngredients: copyOf(stepIngredients[name][st]),
			AvoidIngredients:       copyOf(avoid),
			Texture:                texture(climate, name, st),
		})
		for _, add := range additions {
			if add.after != name {
				continue
			}
			out = append(out, Step{
				Step:                   add.step,
				RecommendedIngredients: copyOf(add.ingredients),
				AvoidIngredients:       copyOf(avoid),
			})
		}
	}
	return out
}

func texture(climate, step string, st domain.SkinType) string {
	forStep := textures[climate][step]
	if t, ok := forStep[st]; ok {
		return t
	}
	return forStep[anySkin]
}

// avoidList is the skin type's irritants followed by allergies, without
// case-insensitive duplicates.
func avoidList(st domain.SkinType, allergies []string) []string {
	out := make([]string, 0, len(defaultAvoid[st])+len(allergies))
	seen := make(map[string]bool)
	add := func(s string) {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, s)
	}
	for _, s := range defaultAvoid[st] {
		add(s)
	}
	for _, s := range allergies {
		add(s)
	}
	return out
}

type concernSet struct {
	ordered []string
	set     map[string]bool
}

// canonicalConcerns maps concerns onto known names, first occurrence kept.
func canonicalConcerns(in []string) concernSet {
	cs := concernSet{set: make(map[string]bool)}
	for _, c := range in {
		name, ok := lookupConcern(c)
		if !ok || cs.set[name] {
			continue
		}
		cs.set[name] = true
		cs.ordered = append(cs.ordered, name)
	}
	return cs
}

func lookupConcern(c string) (string, bool) {
	c = strings.TrimSpace(c)
	if _, ok := concernSteps[c]; ok {
		return c, true
	}
	for name := range concernSteps {
		if strings.EqualFold(name, c) {
			return name, true
		}
	}
	return "", false
}

func weekly(st domain.SkinType, concerns map[string]bool) []Treatment {
	out := make([]Treatment, 0, 2)
	for _, rules := range [][]weeklyRule{exfoliationRules, maskRules} {
		for _, rule := range rules {
			if rule.matches(st, concerns) {
				t := rule.treatment
				t.RecommendedIngredients = copyOf(t.RecommendedIngredients)
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func copyOf(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
