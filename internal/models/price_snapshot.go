package models

import "time"

// PriceSnapshot mirrors one instrument of an appended ledger row so the
// history can be queried without opening the workbook.
type PriceSnapshot struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	RunID      string `json:"run_id" gorm:"size:36;index"`
	Date       string `json:"date" gorm:"size:10;index;not null"`
	Instrument string `json:"instrument" gorm:"size:32;index;not null"`
	Rate1g     int64  `json:"rate_1g"`
	Diff1g     string `json:"diff_1g" gorm:"size:32"`
	Rate8g     int64  `json:"rate_8g"`
	Diff8g     string `json:"diff_8g" gorm:"size:32"`
	// Run start time, same value as the ledger's Captured Time
	CapturedAt time.Time `json:"captured_at" gorm:"index"`
	CreatedAt  time.Time `json:"created_at"`
}

// SnapshotsFromRow expands a ledger row into one snapshot per instrument.
func SnapshotsFromRow(runID string, row LedgerRow) []PriceSnapshot {
	snapshots := make([]PriceSnapshot, 0, len(Instruments))
	for _, inst := range Instruments {
		p, ok := row.Prices[inst.Key]
		if !ok {
			continue
		}
		snapshots = append(snapshots, PriceSnapshot{
			RunID:      runID,
			Date:       row.Date,
			Instrument: inst.Key,
			Rate1g:     p.Rate,
			Diff1g:     p.Diff,
			Rate8g:     p.Rate8,
			Diff8g:     p.Diff8,
			CapturedAt: row.CapturedAt,
		})
	}
	return snapshots
}
