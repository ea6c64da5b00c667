package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullReading() *Reading {
	r := NewReading("2026-10-19")
	r.Add("GOLD/24k", UnitGram, "7000")
	r.Add("GOLD/22k", UnitGram, "6800")
	r.Add("GOLD/18k", UnitGram, "5600")
	r.Add("PLATINUM", UnitGram, "3200")
	r.Add("SILVER", UnitGram, "85")
	return r
}

func TestReading_Rate(t *testing.T) {
	r := fullReading()

	rate, err := r.Rate("GOLD/24k")
	require.NoError(t, err)
	assert.Equal(t, int64(7000), rate)

	_, err = r.Rate("PALLADIUM")
	assert.ErrorIs(t, err, ErrMissingInstrument)
}

func TestReading_RateIgnoresOtherUnits(t *testing.T) {
	r := NewReading("2026-10-19")
	r.Add("SILVER", "8 g", "680")

	_, ok := r.RawRate("SILVER")
	assert.False(t, ok)

	_, err := r.Rate("SILVER")
	assert.ErrorIs(t, err, ErrMissingInstrument)
}

func TestReading_Validate(t *testing.T) {
	require.NoError(t, fullReading().Validate())

	partial := NewReading("2026-10-19")
	partial.Add("GOLD/24k", UnitGram, "7000")
	err := partial.Validate()
	require.ErrorIs(t, err, ErrMissingInstrument)
	assert.Contains(t, err.Error(), "GOLD/22k, GOLD/18k, PLATINUM, SILVER")

	empty := NewReading("2026-10-19")
	assert.ErrorIs(t, empty.Validate(), ErrMissingInstrument)
}

func TestReading_ValidateRejectsBadRate(t *testing.T) {
	r := fullReading()
	r.Add("SILVER", UnitGram, "8.5")

	err := r.Validate()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingInstrument)
}

func TestInstrument_Columns(t *testing.T) {
	inst := Instruments[0]
	assert.Equal(t, "24K GOLD/1g", inst.RateColumn())
	assert.Equal(t, "24K GOLD/1g Diff", inst.DiffColumn())
	assert.Equal(t, "24K GOLD/8g", inst.Rate8Column())
	assert.Equal(t, "24K GOLD/8g Diff", inst.Diff8Column())
}

func TestSnapshotsFromRow(t *testing.T) {
	captured := time.Date(2026, 10, 19, 9, 30, 0, 0, time.Local)
	row := LedgerRow{
		Date: "2026-10-19",
		Prices: map[string]InstrumentPrice{
			"GOLD/24k": {Rate: 7050, Diff: "↑-50", Rate8: 56400, Diff8: "↑-400"},
			"SILVER":   {Rate: 85, Rate8: 680},
		},
		CapturedAt: captured,
	}

	snaps := SnapshotsFromRow("run-1", row)
	require.Len(t, snaps, 2)
	assert.Equal(t, "GOLD/24k", snaps[0].Instrument)
	assert.Equal(t, "↑-400", snaps[0].Diff8g)
	assert.Equal(t, "SILVER", snaps[1].Instrument)
	assert.Equal(t, "run-1", snaps[1].RunID)
	assert.Equal(t, captured, snaps[1].CapturedAt)
}
