package suitability

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/tair/smartskin/internal/catalog/domain"
)

// ErrDimensionMismatch means a model was trained on a different vocabulary.
var ErrDimensionMismatch = errors.New("feature dimension mismatch")

// Regressor scores one feature vector for one skin type.
type Regressor interface {
	Predict(x Vector) (float64, error)
}

// LinearModel is intercept + coefficients·x.
type LinearModel struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// LoadLinearModel reads a model exported as {"intercept":..,"coefficients":[..]}.
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if len(m.Coefficients) == 0 {
		return nil, fmt.Errorf("decode %s: no coefficients", path)
	}
	return &m, nil
}

func (m *LinearModel) Dimension() int { return len(m.Coefficients) }

func (m *LinearModel) Predict(x Vector) (float64, error) {
	if len(x) != len(m.Coefficients) {
		return 0, fmt.Errorf("%w: model expects %d features, got %d", ErrDimensionMismatch, len(m.Coefficients), len(x))
	}
	score := m.Intercept
	for i, w := range m.Coefficients {
		score += w * x[i]
	}
	return score, nil
}

// Stand-in scores fall inside this range.
const (
	StandInMin = 0.3
	StandInMax = 0.9
)

// StandInModel produces deterministic placeholder scores when no trained
// model is available. The score is a hash of the vector and skin type, so
// repeated calls agree; it carries no information about suitability.
type StandInModel struct {
	skinType domain.SkinType
}

func NewStandInModel(st domain.SkinType) *StandInModel {
	return &StandInModel{skinType: st}
}

func (m *StandInModel) Predict(x Vector) (float64, error) {
	d := xxhash.New()
	d.WriteString(string(m.skinType))
	for _, f := range x {
		writeFloat(d, f)
	}
	frac := float64(d.Sum64()%10000) / 10000
	return StandInMin + frac*(StandInMax-StandInMin), nil
}

func writeFloat(d *xxhash.Digest, f float64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
	d.Write(buf[:])
}
