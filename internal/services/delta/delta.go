// Package delta computes day-over-day movements against the last ledger row
// and decides whether a new row is written.
package delta

import (
	"fmt"
	"strconv"
	"time"

	"jewel-tracker/internal/models"
)

// Direction symbols. A fall (last > today) is shown with SymbolDown.
const (
	SymbolDown      = "↓"
	SymbolUp        = "↑"
	SymbolUnchanged = "⏸️"
)

// Delta is the movement of one instrument between the last ledger row and today.
type Delta struct {
	Symbol string
	Diff   int64 // last - today
	empty  bool
}

// Compare computes the delta for last-row value last and today's value today.
func Compare(last, today int64) Delta {
	d := Delta{Diff: last - today}
	switch {
	case last > today:
		d.Symbol = SymbolDown
	case last < today:
		d.Symbol = SymbolUp
	default:
		d.Symbol = SymbolUnchanged
	}
	return d
}

// None is the delta used when the ledger has no previous row.
func None() Delta {
	return Delta{empty: true}
}

func (d Delta) IsNone() bool {
	return d.empty
}

// Display renders the symbol followed by the diff scaled by multiplier,
// e.g. "↑-50". It is empty when there is no previous row.
func (d Delta) Display(multiplier int64) string {
	if d.empty {
		return ""
	}
	return d.Symbol + strconv.FormatInt(d.Diff*multiplier, 10)
}

// BuildRow assembles the ledger row for today's reading. last may be nil
// when the ledger is empty.
func BuildRow(last *models.LedgerRow, reading *models.Reading, capturedAt time.Time) (models.LedgerRow, error) {
	row := models.LedgerRow{
		Date:       reading.Date,
		Prices:     make(map[string]models.InstrumentPrice, len(models.Instruments)),
		CapturedAt: capturedAt,
	}

	for _, inst := range models.Instruments {
		today, err := reading.Rate(inst.Key)
		if err != nil {
			return models.LedgerRow{}, err
		}

		d := None()
		if last != nil {
			prev, ok := last.Prices[inst.Key]
			if !ok {
				return models.LedgerRow{}, fmt.Errorf("last ledger row has no %s rate", inst.Label)
			}
			d = Compare(prev.Rate, today)
		}

		row.Prices[inst.Key] = models.InstrumentPrice{
			Rate:  today,
			Diff:  d.Display(1),
			Rate8: today * models.Multiplier,
			Diff8: d.Display(models.Multiplier),
		}
	}

	return row, nil
}
