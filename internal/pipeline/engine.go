package pipeline

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tair/smartskin/internal/catalog/domain"
	"github.com/tair/smartskin/internal/recommend"
	"github.com/tair/smartskin/internal/routine"
	"github.com/tair/smartskin/internal/suitability"
	"github.com/tair/smartskin/pkg/logger"
)

var tracer = otel.Tracer("pipeline")

// NoTextExtracted is the result error when OCR finds nothing.
const NoTextExtracted = "No text extracted from image"

// Degraded records which components run on stand-in data.
type Degraded struct {
	Catalog    bool `json:"catalog"`
	Vectorizer bool `json:"vectorizer"`
	Models     bool `json:"models"`
}

// Any reports whether at least one component is degraded.
func (d Degraded) Any() bool {
	return d.Catalog || d.Vectorizer || d.Models
}

func (d Degraded) components() map[string]bool {
	return map[string]bool{"catalog": d.Catalog, "vectorizer": d.Vectorizer, "models": d.Models}
}

// Options are the collaborators Bootstrap needs. Only Source may fail; the
// rest are optional.
type Options struct {
	Source     domain.Source
	ModelsDir  string
	Vectorizer suitability.Config
	OCR        OCR
	Cache      *Cache
	Metrics    *Metrics
}

// Engine is built once at startup and only read afterwards.
type Engine struct {
	catalog   *domain.Catalog
	scorer    *recommend.Scorer
	predictor *suitability.Predictor
	modelKey  string
	ocr       OCR
	cache     *Cache
	metrics   *Metrics
	degraded  Degraded
}

// Bootstrap loads the catalog and the suitability models. Missing data
// switches the affected component to degraded mode instead of failing.
func Bootstrap(ctx context.Context, opts Options) (*Engine, error) {
	log := logger.Component("pipeline")
	e := &Engine{ocr: opts.OCR, cache: opts.Cache, metrics: opts.Metrics}

	var entries []domain.Entry
	if opts.Source == nil {
		e.degraded.Catalog = true
		log.Warn().Msg("No catalog source configured, starting with an empty catalog")
	} else {
		loaded, err := opts.Source.Load(ctx)
		if err != nil {
			e.degraded.Catalog = true
			log.Warn().Err(err).Msg("Catalog unavailable, starting with an empty catalog")
		} else {
			entries = loaded
		}
	}
	if len(entries) == 0 && !e.degraded.Catalog {
		e.degraded.Catalog = true
		log.Warn().Msg("Catalog is empty")
	}
	e.catalog = domain.NewCatalog(entries)
	e.scorer = recommend.NewScorer(e.catalog)

	bundle, err := suitability.Load(opts.ModelsDir, e.catalog.Corpus(), opts.Vectorizer)
	if err != nil {
		return nil, err
	}
	e.predictor = bundle.Predictor
	e.modelKey = bundle.Predictor.Fingerprint()
	e.degraded.Vectorizer = bundle.VectorizerDegraded
	e.degraded.Models = bundle.ModelsDegraded
	e.metrics.setDegraded(e.degraded)

	log.Info().
		Int("products", e.catalog.Len()).
		Int("features", bundle.Vectorizer.Dimension()).
		Str("model_fingerprint", e.modelKey).
		Bool("catalog_degraded", e.degraded.Catalog).
		Bool("vectorizer_degraded", e.degraded.Vectorizer).
		Bool("models_degraded", e.degraded.Models).
		Msg("Pipeline ready")
	return e, nil
}

// Degraded returns the degraded-mode flags.
func (e *Engine) Degraded() Degraded { return e.degraded }

// Catalog returns the shared snapshot.
func (e *Engine) Catalog() *domain.Catalog { return e.catalog }

// Cache returns the result cache, possibly nil.
func (e *Engine) Cache() *Cache { return e.cache }

// RecommendProducts ranks catalog products for the given preferences.
func (e *Engine) RecommendProducts(ctx context.Context, req recommend.Request, feedback []recommend.Feedback, history []recommend.View) []recommend.Product {
	ctx, span := tracer.Start(ctx, "pipeline.RecommendProducts")
	defer span.End()

	prefs, ok := req.Preferences()
	if !ok {
		logger.Warn(ctx).
			Str("skin_type", req.SkinType).
			Str("default", string(domain.DefaultSkinType)).
			Msg("Unknown skin type, using default")
	}

	products := e.scorer.Recommend(prefs, feedback, history)
	e.metrics.observeRecommendations(len(products))
	span.SetAttributes(
		attribute.String("skin_type", string(prefs.SkinType)),
		attribute.Int("feedback.count", len(feedback)),
		attribute.Int("result.count", len(products)),
	)
	return products
}

// PredictSuitability scores ingredient text for every skin type. Failures
// are reported in the result, never as an error.
func (e *Engine) PredictSuitability(ctx context.Context, text string) suitability.Scores {
	ctx, span := tracer.Start(ctx, "pipeline.PredictSuitability")
	defer span.End()

	if cached, ok := e.cache.Prediction(ctx, e.modelKey, text); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		e.metrics.observePrediction(cached)
		return cached
	}

	scores := e.predictor.Predict(text)
	e.metrics.observePrediction(scores)
	if !scores.OK() {
		span.SetStatus(codes.Error, scores.Error)
		logger.Error(ctx).Str("error", scores.Error).Msg("Suitability prediction failed")
		return scores
	}
	e.cache.StorePrediction(ctx, e.modelKey, text, scores)
	span.SetAttributes(attribute.String("best_for", string(scores.BestFor)))
	return scores
}

// ComposeRoutine builds a routine, optionally with catalog picks per step.
func (e *Engine) ComposeRoutine(ctx context.Context, req routine.Request) routine.Routine {
	ctx, span := tracer.Start(ctx, "pipeline.ComposeRoutine")
	defer span.End()

	st := domain.DefaultSkinType
	if req.SkinType != "" {
		parsed, ok := domain.ParseSkinType(req.SkinType)
		if ok {
			st = parsed
		} else {
			logger.Warn(ctx).
				Str("skin_type", req.SkinType).
				Str("default", string(domain.DefaultSkinType)).
				Msg("Unknown skin type, using default")
		}
	}
	climate, ok := routine.ParseClimate(req.Climate)
	if !ok {
		logger.Warn(ctx).
			Str("climate", req.Climate).
			Str("default", climate).
			Msg("Unknown climate, using default")
	}

	r := routine.Compose(st, req.SkinConcerns, req.Allergies, climate)
	if req.IncludeProducts {
		r = routine.AttachProducts(r, e.catalog)
	}
	span.SetAttributes(
		attribute.String("skin_type", string(st)),
		attribute.String("climate", climate),
		attribute.Bool("include_products", req.IncludeProducts),
	)
	return r
}

// Analysis is the result of AnalyzeImage.
type Analysis struct {
	ExtractedText string `json:"extracted_text"`
	suitability.Scores
}

// AnalyzeImage extracts ingredient text from an image and scores it.
// Errors are returned only when the OCR backend itself cannot be used.
func (e *Engine) AnalyzeImage(ctx context.Context, image []byte) (Analysis, error) {
	ctx, span := tracer.Start(ctx, "pipeline.AnalyzeImage")
	defer span.End()

	if e.ocr == nil {
		return Analysis{}, ErrOCRUnavailable
	}
	raw, err := e.ocr.ExtractText(ctx, image)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, ErrOCRUnavailable) {
			return Analysis{}, err
		}
		return Analysis{}, errors.Join(ErrOCRUnavailable, err)
	}

	text := IngredientText(raw)
	if text == "" {
		return Analysis{Scores: suitability.Scores{Error: NoTextExtracted}}, nil
	}
	span.SetAttributes(attribute.Int("text.length", len(text)))
	return Analysis{ExtractedText: text, Scores: e.PredictSuitability(ctx, text)}, nil
}

// Metadata lists the values clients can choose from.
type Metadata struct {
	SkinTypes         []domain.SkinType `json:"skin_types"`
	Categories        []string          `json:"categories"`
	SkinConcerns      []string          `json:"skin_concerns"`
	CommonIngredients []string          `json:"common_ingredients"`
}

var (
	skinConcerns      = []string{"Acne", "Aging", "Dryness", "Oily", "Sensitive", "Brightening", "Redness"}
	commonIngredients = []string{
		"Hyaluronic Acid", "Niacinamide", "Retinol", "Vitamin C", "Salicylic Acid",
		"Peptides", "Ceramides", "Green Tea", "Aloe Vera", "Glycerin",
	}
)

func (e *Engine) Metadata() Metadata {
	categories := e.catalog.Categories()
	if categories == nil {
		categories = []string{}
	}
	return Metadata{
		SkinTypes:         append([]domain.SkinType(nil), domain.DisplaySkinTypes...),
		Categories:        categories,
		SkinConcerns:      append([]string(nil), skinConcerns...),
		CommonIngredients: append([]string(nil), commonIngredients...),
	}
}
