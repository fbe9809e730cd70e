package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/smartskin/internal/catalog/domain"
)

// GormCatalogRepository reads the catalog_entries table.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Entry{})
}

// Load implements domain.Source; rows come back in row_index order.
func (r *GormCatalogRepository) Load(ctx context.Context) ([]domain.Entry, error) {
	var entries []domain.Entry
	if err := r.db.WithContext(ctx).Order("row_index ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	return entries, nil
}

// ReplaceAll swaps the table contents inside one transaction.
func (r *GormCatalogRepository) ReplaceAll(ctx context.Context, entries []domain.Entry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.Entry{}).Error; err != nil {
			return fmt.Errorf("failed to clear catalog: %w", err)
		}
		if len(entries) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(entries, 500).Error; err != nil {
			return fmt.Errorf("failed to insert catalog: %w", err)
		}
		return nil
	})
}

func (r *GormCatalogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Entry{}).Count(&count).Error
	return count, err
}
