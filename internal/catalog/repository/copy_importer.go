package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/tair/smartskin/internal/catalog/domain"
)

var copyColumns = []string{
	"row_index", "label", "brand", "name", "rank", "price", "ingredients",
	"combination", "dry", "normal", "oily", "sensitive",
}

// CopyImporter bulk-loads the catalog table with COPY FROM STDIN.
type CopyImporter struct {
	db *sql.DB
}

func NewCopyImporter(db *sql.DB) *CopyImporter {
	return &CopyImporter{db: db}
}

// Import truncates catalog_entries and streams entries into it.
func (i *CopyImporter) Import(ctx context.Context, entries []domain.Entry) (int, error) {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "TRUNCATE catalog_entries"); err != nil {
		return 0, fmt.Errorf("truncate: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(domain.Entry{}.TableName(), copyColumns...))
	if err != nil {
		return 0, fmt.Errorf("prepare copy: %w", err)
	}

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx,
			e.ID, e.Label, e.Brand, e.Name, e.Rank, e.Price, e.Ingredients,
			e.Combination, e.Dry, e.Normal, e.Oily, e.Sensitive,
		); err != nil {
			stmt.Close()
			return 0, fmt.Errorf("copy row %d: %w", e.ID, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, fmt.Errorf("flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return 0, fmt.Errorf("close copy: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(entries), nil
}
