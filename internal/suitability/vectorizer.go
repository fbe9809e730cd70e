package suitability

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"sort"
	"strings"
)

var (
	// ErrNotFitted is returned by Transform before Fit.
	ErrNotFitted = errors.New("vectorizer is not fitted")
	// ErrEmptyVocabulary means pruning removed every term.
	ErrEmptyVocabulary = errors.New("no terms remain after pruning")
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Config controls vocabulary construction.
type Config struct {
	MaxFeatures int     // 0 keeps every term
	MinDF       int     // minimum number of documents a term must appear in
	MaxDF       float64 // maximum document proportion, (0,1]
	NGramMax    int     // longest n-gram; 1 for unigrams only
}

// DefaultConfig is used for the catalog corpus.
func DefaultConfig() Config {
	return Config{MaxFeatures: 5000, MinDF: 2, MaxDF: 0.95, NGramMax: 2}
}

// Vector is a dense, L2-normalised TF-IDF row.
type Vector []float64

// Vectorizer is a TF-IDF model. After Fit it is only read, so one instance
// can serve concurrent callers.
type Vectorizer struct {
	cfg        Config
	vocabulary map[string]int
	terms      []string
	idf        []float64
}

func NewVectorizer(cfg Config) *Vectorizer {
	if cfg.NGramMax < 1 {
		cfg.NGramMax = 1
	}
	if cfg.MaxDF <= 0 || cfg.MaxDF > 1 {
		cfg.MaxDF = 1
	}
	if cfg.MinDF < 1 {
		cfg.MinDF = 1
	}
	return &Vectorizer{cfg: cfg}
}

// Fitted reports whether Fit (or a load) has completed.
func (v *Vectorizer) Fitted() bool {
	return v != nil && len(v.terms) > 0
}

// Dimension is the length of every vector Transform returns.
func (v *Vectorizer) Dimension() int {
	return len(v.terms)
}

// Fit builds the vocabulary and IDF weights from corpus.
func (v *Vectorizer) Fit(corpus []string) error {
	n := len(corpus)
	if n == 0 {
		return ErrEmptyVocabulary
	}

	docFreq := make(map[string]int)
	totalFreq := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, f := range v.analyze(doc) {
			totalFreq[f]++
			if !seen[f] {
				seen[f] = true
				docFreq[f]++
			}
		}
	}

	maxDocs := v.cfg.MaxDF * float64(n)
	if maxDocs < float64(v.cfg.MinDF) {
		return fmt.Errorf("%w: max_df corresponds to fewer documents than min_df", ErrEmptyVocabulary)
	}

	kept := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df < v.cfg.MinDF || float64(df) > maxDocs {
			continue
		}
		kept = append(kept, term)
	}
	if len(kept) == 0 {
		return ErrEmptyVocabulary
	}

	if v.cfg.MaxFeatures > 0 && len(kept) > v.cfg.MaxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if totalFreq[kept[i]] != totalFreq[kept[j]] {
				return totalFreq[kept[i]] > totalFreq[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:v.cfg.MaxFeatures]
	}
	sort.Strings(kept)

	v.terms = kept
	v.vocabulary = make(map[string]int, len(kept))
	v.idf = make([]float64, len(kept))
	for i, term := range kept {
		v.vocabulary[term] = i
		v.idf[i] = math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
	}
	return nil
}

// Transform converts text into a feature vector.
func (v *Vectorizer) Transform(text string) (Vector, error) {
	if !v.Fitted() {
		return nil, ErrNotFitted
	}

	vec := make(Vector, len(v.terms))
	for _, f := range v.analyze(text) {
		if i, ok := v.vocabulary[f]; ok {
			vec[i]++
		}
	}

	var norm float64
	for i, tf := range vec {
		if tf == 0 {
			continue
		}
		vec[i] = tf * v.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// analyze lowercases, tokenizes, drops stop words and emits n-grams.
func (v *Vectorizer) analyze(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, t := range raw {
		if _, stop := englishStopWords[t]; !stop {
			tokens = append(tokens, t)
		}
	}

	features := make([]string, 0, len(tokens)*v.cfg.NGramMax)
	for n := 1; n <= v.cfg.NGramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			features = append(features, strings.Join(tokens[i:i+n], " "))
		}
	}
	return features
}

type vectorizerFile struct {
	Config Config    `json:"config"`
	Terms  []string  `json:"terms"`
	IDF    []float64 `json:"idf"`
}

// Save writes the fitted state as JSON.
func (v *Vectorizer) Save(w io.Writer) error {
	if !v.Fitted() {
		return ErrNotFitted
	}
	return json.NewEncoder(w).Encode(vectorizerFile{Config: v.cfg, Terms: v.terms, IDF: v.idf})
}

// LoadVectorizer restores state written by Save.
func LoadVectorizer(r io.Reader) (*Vectorizer, error) {
	var f vectorizerFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode vectorizer: %w", err)
	}
	if len(f.Terms) == 0 || len(f.Terms) != len(f.IDF) {
		return nil, fmt.Errorf("decode vectorizer: %d terms, %d idf weights", len(f.Terms), len(f.IDF))
	}
	v := NewVectorizer(f.Config)
	v.terms = f.Terms
	v.idf = f.IDF
	v.vocabulary = make(map[string]int, len(f.Terms))
	for i, term := range f.Terms {
		v.vocabulary[term] = i
	}
	return v, nil
}

// fallbackCorpus keeps the pipeline operable when no catalog is available.
var fallbackCorpus = []string{
	"Water, Glycerin, Niacinamide, Hyaluronic Acid, Panthenol",
	"Water, Salicylic Acid, Niacinamide, Zinc PCA, Witch Hazel",
	"Water, Ceramides, Squalane, Shea Butter, Glycerin",
	"Aloe Vera, Chamomile Extract, Oat Extract, Centella Asiatica",
	"Water, Retinol, Peptides, Squalane, Vitamin E",
	"Water, Ascorbic Acid, Vitamin E, Ferulic Acid, Glycerin",
	"Zinc Oxide, Titanium Dioxide, Squalane, Niacinamide",
	"Water, Alcohol Denat, Fragrance, Essential Oils, Sodium Lauryl Sulfate",
	"Kaolin Clay, Bentonite Clay, Charcoal, Glycerin",
	"Water, Lactic Acid, Glycolic Acid, Hyaluronic Acid, Aloe Vera",
}

// FallbackConfig is used with the built-in corpus.
func FallbackConfig() Config {
	return Config{MinDF: 1, MaxDF: 1, NGramMax: 2}
}

// FitFallback returns a vectorizer fit on the built-in corpus.
func FitFallback() (*Vectorizer, error) {
	v := NewVectorizer(FallbackConfig())
	if err := v.Fit(fallbackCorpus); err != nil {
		return nil, err
	}
	return v, nil
}
