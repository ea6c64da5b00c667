package delta

import (
	"strconv"

	"jewel-tracker/internal/models"
)

// ShouldAppend reports whether today's reading differs from the last ledger
// row: a different date, or any tracked 1 g rate that changed. An empty
// ledger always gets a row.
func ShouldAppend(last *models.LedgerRow, reading *models.Reading) bool {
	if last == nil {
		return true
	}
	if last.Date != reading.Date {
		return true
	}
	for _, inst := range models.Instruments {
		raw, ok := reading.RawRate(inst.Key)
		if !ok {
			return true
		}
		prev, ok := last.Prices[inst.Key]
		if !ok || strconv.FormatInt(prev.Rate, 10) != raw {
			return true
		}
	}
	return false
}
