package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tair/smartskin/internal/catalog/domain"
)

// Column names are matched case-insensitively.
var requiredColumns = []string{"label", "brand", "name", "rank", "ingredients"}

// CSVSource reads the catalog from a delimited file.
type CSVSource struct {
	path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Load implements domain.Source.
func (s *CSVSource) Load(ctx context.Context) ([]domain.Entry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	defer f.Close()
	return ParseCSV(ctx, f)
}

// ParseCSV decodes catalog rows. The first record is the header; the
// product id of each row is its zero-based position after the header.
func ParseCSV(ctx context.Context, r io.Reader) ([]domain.Entry, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty catalog file", domain.ErrDataUnavailable)
		}
		return nil, fmt.Errorf("%w: read header: %v", domain.ErrDataUnavailable, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", domain.ErrDataUnavailable, name)
		}
	}

	var entries []domain.Entry
	for row := 0; ; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", domain.ErrDataUnavailable, row, err)
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		rank, err := parseNumber(field("rank"))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d rank: %v", domain.ErrDataUnavailable, row, err)
		}
		price, err := parseNumber(field("price"))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d price: %v", domain.ErrDataUnavailable, row, err)
		}

		entry := domain.Entry{
			ID:          row,
			Label:       field("label"),
			Brand:       field("brand"),
			Name:        field("name"),
			Rank:        rank,
			Price:       price,
			Ingredients: field("ingredients"),
		}
		for _, st := range domain.SkinTypes {
			entry.SetCompatible(st, parseFlag(field(strings.ToLower(string(st)))))
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64)
}

// parseFlag accepts 1/0, 1.0/0.0 and true/false.
func parseFlag(s string) bool {
	if s == "" {
		return false
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f != 0
}
