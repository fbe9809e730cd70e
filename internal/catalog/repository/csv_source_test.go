package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/smartskin/internal/catalog/domain"
)

const sampleCSV = `Label,brand,name,Price,rank,ingredients,Combination,Dry,Normal,Oily,Sensitive
Moisturizer,LA MER,Crème de la Mer,175,4.1,"Algae (Seaweed) Extract, Mineral Oil, Glycerin",1,1,1,1,1
Cleanser,CLINIQUE,Rinse-Off Foaming Cleanser,,4.5,"Water, Sodium Laureth Sulfate, Niacinamide",1,0,1,1,0
`

func TestParseCSV(t *testing.T) {
	entries, err := ParseCSV(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, 0, first.ID)
	assert.Equal(t, "Moisturizer", first.Label)
	assert.Equal(t, "LA MER", first.Brand)
	assert.Equal(t, 175.0, first.Price)
	assert.Equal(t, 4.1, first.Rank)
	assert.True(t, first.Compatible(domain.Sensitive))

	second := entries[1]
	assert.Equal(t, 1, second.ID)
	assert.Zero(t, second.Price)
	assert.False(t, second.Compatible(domain.Dry))
	assert.True(t, second.Compatible(domain.Oily))
	assert.Equal(t, []string{"Water", "Sodium Laureth Sulfate", "Niacinamide"}, second.IngredientTokens())
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty file", input: ""},
		{name: "missing column", input: "Label,brand,name\nA,B,C\n"},
		{name: "bad rank", input: "Label,brand,name,rank,ingredients\nA,B,C,high,Water\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(context.Background(), strings.NewReader(tt.input))
			assert.ErrorIs(t, err, domain.ErrDataUnavailable)
		})
	}
}

func TestCSVSource_MissingFile(t *testing.T) {
	_, err := NewCSVSource(filepath.Join(t.TempDir(), "nope.csv")).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}

func TestCSVSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	src := NewTracingSource(NewCSVSource(path), "csv")
	entries, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
