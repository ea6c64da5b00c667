// Package tracker runs one fetch, parse, diff, append and format cycle.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"jewel-tracker/internal/models"
	"jewel-tracker/internal/services/delta"
	"jewel-tracker/internal/services/grt"
	"jewel-tracker/internal/services/ledger"
)

// Fetcher retrieves the rate board page.
type Fetcher interface {
	FetchHomePage(ctx context.Context, runStart time.Time) (*grt.Page, error)
}

// SnapshotRecorder mirrors appended ledger rows somewhere queryable.
type SnapshotRecorder interface {
	Record(ctx context.Context, runID string, row models.LedgerRow) error
}

type Tracker struct {
	fetcher   Fetcher
	store     *ledger.Store
	snapshots SnapshotRecorder
	now       func() time.Time
	logger    zerolog.Logger
}

type Option func(*Tracker)

// WithSnapshots mirrors every appended row to r. Mirror failures are logged
// and never fail the run.
func WithSnapshots(r SnapshotRecorder) Option {
	return func(t *Tracker) {
		t.snapshots = r
	}
}

// WithClock overrides the run start clock.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

func New(fetcher Fetcher, store *ledger.Store, logger zerolog.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		fetcher: fetcher,
		store:   store,
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Result describes what a run did.
type Result struct {
	RunID     string
	Date      string
	Appended  bool
	Row       models.LedgerRow
	Rows      int
	CacheFile string
}

// Run executes one cycle. Any fetch or parse problem aborts the run before
// the ledger is opened, so no partial row is ever written.
func (t *Tracker) Run(ctx context.Context) (*Result, error) {
	runStart := t.now().Truncate(time.Second)
	res := &Result{
		RunID: uuid.NewString(),
		Date:  runStart.Format(models.DateLayout),
	}
	logger := t.logger.With().Str("run_id", res.RunID).Str("date", res.Date).Logger()
	logger.Info().Msg("Run started")

	page, err := t.fetcher.FetchHomePage(ctx, runStart)
	if err != nil {
		return nil, err
	}
	res.CacheFile = page.CacheFile

	reading, err := grt.ParseRates(page.Text(), res.Date)
	if err != nil {
		return nil, err
	}
	if err := reading.Validate(); err != nil {
		return nil, err
	}
	for _, inst := range models.Instruments {
		raw, _ := reading.RawRate(inst.Key)
		logger.Debug().Str("instrument", inst.Key).Str("rate", raw).Msg("Rate extracted")
	}

	table, err := t.store.Load()
	if err != nil {
		return nil, err
	}

	last := table.Last()
	if !delta.ShouldAppend(last, reading) {
		res.Rows = len(table.Rows)
		logger.Info().Int("rows", res.Rows).Msgf("New values already exist for %s", res.Date)
		return res, nil
	}

	row, err := delta.BuildRow(last, reading, runStart)
	if err != nil {
		return nil, err
	}

	table.Append(row)
	if err := t.store.Save(table); err != nil {
		return nil, err
	}
	res.Appended = true
	res.Row = row
	res.Rows = len(table.Rows)
	logger.Info().Int("rows", res.Rows).Msgf("New values got concatenated for %s", res.Date)

	if err := t.store.Format(); err != nil {
		return nil, fmt.Errorf("failed to format ledger: %w", err)
	}

	if t.snapshots != nil {
		if err := t.snapshots.Record(ctx, res.RunID, row); err != nil {
			logger.Warn().Err(err).Msg("Snapshot mirror failed")
		}
	}

	return res, nil
}
