package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"jewel-tracker/internal/models"
)

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 100

type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Record stores one snapshot per instrument of row in a single transaction.
func (r *SnapshotRepository) Record(ctx context.Context, runID string, row models.LedgerRow) error {
	snapshots := models.SnapshotsFromRow(runID, row)
	if len(snapshots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&snapshots).Error; err != nil {
			return fmt.Errorf("failed to insert snapshots for %s: %w", row.Date, err)
		}
		return nil
	})
}

// SnapshotFilter narrows List. Zero values match everything.
type SnapshotFilter struct {
	Instrument string
	Date       string
	Limit      int
}

// List returns the newest snapshots first.
func (r *SnapshotRepository) List(ctx context.Context, filter SnapshotFilter) ([]models.PriceSnapshot, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := r.db.WithContext(ctx).Model(&models.PriceSnapshot{})
	if filter.Instrument != "" {
		query = query.Where("instrument = ?", filter.Instrument)
	}
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}

	var snapshots []models.PriceSnapshot
	if err := query.Order("captured_at DESC").Order("id DESC").Limit(limit).Find(&snapshots).Error; err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}
