package models

import "time"

// InstrumentPrice is the four ledger cells recorded for one instrument.
type InstrumentPrice struct {
	Rate  int64  `json:"rate_1g"`
	Diff  string `json:"diff_1g"`
	Rate8 int64  `json:"rate_8g"`
	Diff8 string `json:"diff_8g"`
}

// LedgerRow is one persisted row of the Data sheet.
type LedgerRow struct {
	Date       string                     `json:"date"`
	Prices     map[string]InstrumentPrice `json:"prices"` // keyed by Instrument.Key
	CapturedAt time.Time                  `json:"captured_time"`
}
