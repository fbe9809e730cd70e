package suitability

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/tair/smartskin/internal/catalog/domain"
)

// Scores is the result of one prediction. When Error is set the other
// fields are empty; a failure for one skin type fails the whole call.
type Scores struct {
	Scores    map[domain.SkinType]float64 `json:"suitability_scores,omitempty"`
	BestFor   domain.SkinType             `json:"best_for,omitempty"`
	BestScore float64                     `json:"best_score"`
	StandIn   bool                        `json:"stand_in"`
	Error     string                      `json:"error,omitempty"`
}

// OK reports whether scoring succeeded.
func (s Scores) OK() bool { return s.Error == "" }

// Models holds one regressor per skin type.
type Models map[domain.SkinType]Regressor

// StandInModels returns placeholder regressors for every skin type.
func StandInModels() Models {
	m := make(Models, len(domain.SkinTypes))
	for _, st := range domain.SkinTypes {
		m[st] = NewStandInModel(st)
	}
	return m
}

// Predictor maps ingredient text to per-skin-type scores.
type Predictor struct {
	vectorizer  *Vectorizer
	models      Models
	standIn     bool
	fingerprint string
}

// NewPredictor requires a fitted vectorizer and a model for every skin type.
func NewPredictor(v *Vectorizer, models Models, standIn bool) (*Predictor, error) {
	if !v.Fitted() {
		return nil, ErrNotFitted
	}
	for _, st := range domain.SkinTypes {
		if models[st] == nil {
			return nil, fmt.Errorf("no model for skin type %s", st)
		}
	}
	return &Predictor{
		vectorizer:  v,
		models:      models,
		standIn:     standIn,
		fingerprint: fingerprint(v, models, standIn),
	}, nil
}

// StandIn reports whether placeholder models are in use.
func (p *Predictor) StandIn() bool { return p.standIn }

// Fingerprint identifies the vocabulary, IDF weights and model parameters.
// Two predictors with the same fingerprint return the same scores.
func (p *Predictor) Fingerprint() string { return p.fingerprint }

func fingerprint(v *Vectorizer, models Models, standIn bool) string {
	d := xxhash.New()
	for i, term := range v.terms {
		d.WriteString(term)
		d.Write([]byte{0})
		writeFloat(d, v.idf[i])
	}
	for _, st := range domain.SkinTypes {
		d.WriteString(string(st))
		switch m := models[st].(type) {
		case *LinearModel:
			writeFloat(d, m.Intercept)
			for _, w := range m.Coefficients {
				writeFloat(d, w)
			}
		default:
			d.WriteString(fmt.Sprintf("%T%v", m, m))
		}
	}
	if standIn {
		d.WriteString("standin")
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

// Predict normalises text, vectorises it and runs all five models.
func (p *Predictor) Predict(text string) Scores {
	normalized := strings.ToLower(strings.TrimSpace(text))

	x, err := p.vectorizer.Transform(normalized)
	if err != nil {
		return Scores{StandIn: p.standIn, Error: fmt.Sprintf("Error making prediction: %v", err)}
	}

	scores := make(map[domain.SkinType]float64, len(domain.SkinTypes))
	for _, st := range domain.SkinTypes {
		v, err := p.models[st].Predict(x)
		if err != nil {
			return Scores{StandIn: p.standIn, Error: fmt.Sprintf("Error making prediction for %s: %v", st, err)}
		}
		scores[st] = v
	}

	best, bestScore := BestSkinType(scores)
	return Scores{Scores: scores, BestFor: best, BestScore: bestScore, StandIn: p.standIn}
}

// BestSkinType is the arg-max over scores in canonical order; the first
// skin type wins ties.
func BestSkinType(scores map[domain.SkinType]float64) (domain.SkinType, float64) {
	var (
		best  domain.SkinType
		max   float64
		found bool
	)
	for _, st := range domain.SkinTypes {
		v, ok := scores[st]
		if !ok {
			continue
		}
		if !found || v > max {
			best, max, found = st, v, true
		}
	}
	return best, max
}
