package suitability

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/tair/smartskin/internal/catalog/domain"
	"github.com/tair/smartskin/pkg/logger"
)

// File names inside the models directory.
const VectorizerFile = "tfidf_vectorizer.json"

var modelFiles = map[domain.SkinType]string{
	domain.Combination: "model_comb.json",
	domain.Dry:         "model_dry.json",
	domain.Normal:      "model_norm.json",
	domain.Oily:        "model_oily.json",
	domain.Sensitive:   "model_sens.json",
}

// ModelFile returns the file name used for a skin type's model.
func ModelFile(st domain.SkinType) string { return modelFiles[st] }

// Bundle is the fitted predictor plus what had to be substituted.
type Bundle struct {
	Vectorizer         *Vectorizer
	Predictor          *Predictor
	VectorizerDegraded bool
	ModelsDegraded     bool
}

// Load builds a predictor from modelsDir. The vectorizer is read from
// VectorizerFile if present, otherwise fit on corpus, otherwise fit on the
// built-in corpus. Missing or mismatched models switch all five skin types
// to stand-in models. Only a fallback that itself fails returns an error.
func Load(modelsDir string, corpus []string, cfg Config) (*Bundle, error) {
	log := logger.Component("suitability")
	b := &Bundle{}

	if modelsDir != "" {
		if f, err := os.Open(filepath.Join(modelsDir, VectorizerFile)); err == nil {
			v, err := LoadVectorizer(f)
			f.Close()
			if err != nil {
				log.Warn().Err(err).Msg("Stored vectorizer unreadable, refitting on catalog")
			} else {
				b.Vectorizer = v
			}
		}
	}

	if b.Vectorizer == nil {
		v := NewVectorizer(cfg)
		if err := v.Fit(corpus); err != nil {
			log.Warn().Err(err).Int("documents", len(corpus)).
				Msg("Catalog corpus unusable, fitting vectorizer on built-in corpus")
			fb, err := FitFallback()
			if err != nil {
				return nil, err
			}
			v = fb
			b.VectorizerDegraded = true
		}
		b.Vectorizer = v
	}

	models, err := loadModels(modelsDir, b.Vectorizer.Dimension())
	if err != nil {
		log.Warn().Err(err).Str("dir", modelsDir).Msg("Suitability models unavailable, using stand-in models")
		models = StandInModels()
		b.ModelsDegraded = true
	}

	p, err := NewPredictor(b.Vectorizer, models, b.ModelsDegraded)
	if err != nil {
		return nil, err
	}
	b.Predictor = p
	return b, nil
}

func loadModels(dir string, dimension int) (Models, error) {
	if dir == "" {
		return nil, errors.New("no models directory configured")
	}
	models := make(Models, len(domain.SkinTypes))
	for _, st := range domain.SkinTypes {
		m, err := LoadLinearModel(filepath.Join(dir, modelFiles[st]))
		if err != nil {
			return nil, err
		}
		if m.Dimension() != dimension {
			return nil, ErrDimensionMismatch
		}
		models[st] = m
	}
	return models, nil
}
