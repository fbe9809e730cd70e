package suitability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCorpus = []string{
	"Water, Glycerin, Hyaluronic Acid, Niacinamide",
	"Water, Salicylic Acid, Niacinamide, Zinc",
	"Water, Glycerin, Ceramides, Squalane",
	"Aloe Vera, Glycerin, Chamomile",
}

func TestVectorizer_TransformBeforeFit(t *testing.T) {
	_, err := NewVectorizer(DefaultConfig()).Transform("water")
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestVectorizer_FitPrunesByDocumentFrequency(t *testing.T) {
	v := NewVectorizer(Config{MinDF: 2, MaxDF: 0.9, NGramMax: 2})
	require.NoError(t, v.Fit(testCorpus))

	_, hasGlycerin := v.vocabulary["glycerin"]
	_, hasZinc := v.vocabulary["zinc"]
	_, hasWater := v.vocabulary["water"]
	_, hasBigram := v.vocabulary["water glycerin"]
	assert.True(t, hasGlycerin, "3 of 4 documents is under max_df")
	assert.False(t, hasZinc, "single-document term is under min_df")
	assert.True(t, hasWater)
	assert.True(t, hasBigram)
}

func TestVectorizer_MaxFeatures(t *testing.T) {
	v := NewVectorizer(Config{MaxFeatures: 3, MinDF: 1, MaxDF: 1, NGramMax: 1})
	require.NoError(t, v.Fit(testCorpus))
	assert.Equal(t, 3, v.Dimension())
	// glycerin and water occur three times; acid and niacinamide twice,
	// acid wins the tie alphabetically.
	assert.Equal(t, []string{"acid", "glycerin", "water"}, v.terms)
}

func TestVectorizer_EmptyCorpus(t *testing.T) {
	assert.ErrorIs(t, NewVectorizer(DefaultConfig()).Fit(nil), ErrEmptyVocabulary)
}

func TestVectorizer_TransformIsNormalisedAndDeterministic(t *testing.T) {
	v := NewVectorizer(Config{MinDF: 1, MaxDF: 1, NGramMax: 2})
	require.NoError(t, v.Fit(testCorpus))

	a, err := v.Transform("water, glycerin and niacinamide")
	require.NoError(t, err)
	b, err := v.Transform("water, glycerin and niacinamide")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	var sum float64
	for _, x := range a {
		sum += x * x
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	unknown, err := v.Transform("xyzzy")
	require.NoError(t, err)
	assert.Len(t, unknown, v.Dimension())
}

func TestVectorizer_SaveLoad(t *testing.T) {
	v := NewVectorizer(Config{MinDF: 1, MaxDF: 1, NGramMax: 2})
	require.NoError(t, v.Fit(testCorpus))

	var buf bytes.Buffer
	require.NoError(t, v.Save(&buf))
	loaded, err := LoadVectorizer(&buf)
	require.NoError(t, err)

	want, _ := v.Transform("salicylic acid, zinc")
	got, err := loaded.Transform("salicylic acid, zinc")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFitFallback(t *testing.T) {
	v, err := FitFallback()
	require.NoError(t, err)
	assert.True(t, v.Fitted())
}
