package models

// Instrument is one tracked price series on the GRT rate board.
type Instrument struct {
	Key   string // extractor key, e.g. "GOLD/24k"
	Label string // ledger column prefix, e.g. "24K GOLD"
}

const (
	// UnitGram is the weight-unit label the ledger is built from.
	UnitGram = "1 g"
	// Multiplier converts a 1 g rate into the 8 g (one sovereign) columns.
	Multiplier = 8

	ColumnDate         = "Date"
	ColumnCapturedTime = "Captured Time"

	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Instruments lists the tracked series in ledger column order.
var Instruments = []Instrument{
	{Key: "GOLD/24k", Label: "24K GOLD"},
	{Key: "GOLD/22k", Label: "22K GOLD"},
	{Key: "GOLD/18k", Label: "18K GOLD"},
	{Key: "PLATINUM", Label: "PLATINUM"},
	{Key: "SILVER", Label: "SILVER"},
}

func (i Instrument) RateColumn() string  { return i.Label + "/1g" }
func (i Instrument) DiffColumn() string  { return i.Label + "/1g Diff" }
func (i Instrument) Rate8Column() string { return i.Label + "/8g" }
func (i Instrument) Diff8Column() string { return i.Label + "/8g Diff" }
