package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/smartskin/internal/catalog/domain"
)

func TestCopyImporter_Import(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	entries := []domain.Entry{
		{ID: 0, Label: "Cleanser", Brand: "B", Name: "N", Rank: 4.2, Price: 12, Ingredients: "Water", Oily: true},
		{ID: 1, Label: "Toner", Brand: "B", Name: "M", Rank: 3.9, Price: 20, Ingredients: "Glycerin", Dry: true},
	}

	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE catalog_entries").WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`COPY "catalog_entries"`))
	for _, e := range entries {
		prep.ExpectExec().
			WithArgs(int64(e.ID), e.Label, e.Brand, e.Name, e.Rank, e.Price, e.Ingredients,
				e.Combination, e.Dry, e.Normal, e.Oily, e.Sensitive).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	n, err := NewCopyImporter(db).Import(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyImporter_RollsBackOnRowFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE catalog_entries").WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`COPY "catalog_entries"`))
	prep.ExpectExec().WillReturnError(errors.New("bad row"))
	mock.ExpectRollback()

	_, err = NewCopyImporter(db).Import(context.Background(), []domain.Entry{{ID: 0, Label: "X"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "copy row 0")
	assert.NoError(t, mock.ExpectationsWereMet())
}
