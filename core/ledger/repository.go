package ledger

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

const batchSize = 200

// Repository reads and writes ledger records.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the ledger table.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", Record{}.TableName(), err)
	}
	return nil
}

// Save inserts records in batches.
func (r *Repository) Save(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(records, batchSize).Error; err != nil {
		return fmt.Errorf("failed to save %d ledger records: %w", len(records), err)
	}
	return nil
}

// ListByRun returns the records of a run in insertion order.
func (r *Repository) ListByRun(ctx context.Context, runID string) ([]Record, error) {
	var records []Record
	err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list run %s: %w", runID, err)
	}
	return records, nil
}

// Index returns the latest record of every variant path.
func (r *Repository) Index(ctx context.Context) (map[string]Record, error) {
	var records []Record
	err := r.db.WithContext(ctx).
		Select("id", "run_id", "source", "variant", "kind", "source_digest").
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger index: %w", err)
	}

	index := make(map[string]Record, len(records))
	for _, rec := range records {
		index[rec.Variant] = rec
	}
	return index, nil
}

// Latest returns the most recent record of variant, or nil when none exists.
func (r *Repository) Latest(ctx context.Context, variant string) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).Where("variant = ?", variant).Order("id desc").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s: %w", variant, err)
	}
	return &rec, nil
}

// DeleteByVariants removes every record pointing at one of variants.
func (r *Repository) DeleteByVariants(ctx context.Context, variants []string) (int64, error) {
	if len(variants) == 0 {
		return 0, nil
	}

	var total int64
	for start := 0; start < len(variants); start += batchSize {
		end := min(start+batchSize, len(variants))
		res := r.db.WithContext(ctx).Where("variant IN ?", variants[start:end]).Delete(&Record{})
		if res.Error != nil {
			return total, fmt.Errorf("failed to delete ledger records: %w", res.Error)
		}
		total += res.RowsAffected
	}
	return total, nil
}
