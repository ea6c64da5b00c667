package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMissingInstrument is returned when a tracked instrument has no 1 g rate.
var ErrMissingInstrument = errors.New("missing instrument")

// Reading holds the rates scraped in one run, keyed by instrument key and
// then by weight-unit label ("1 g", "8 g", ...). Rates are kept as captured.
type Reading struct {
	Date  string
	Rates map[string]map[string]string
}

func NewReading(date string) *Reading {
	return &Reading{
		Date:  date,
		Rates: make(map[string]map[string]string),
	}
}

// Add records a rate; a later value for the same key and unit replaces the earlier one.
func (r *Reading) Add(key, unit, rate string) {
	units, ok := r.Rates[key]
	if !ok {
		units = make(map[string]string)
		r.Rates[key] = units
	}
	units[unit] = rate
}

// RawRate returns the captured 1 g rate string for an instrument key.
func (r *Reading) RawRate(key string) (string, bool) {
	units, ok := r.Rates[key]
	if !ok {
		return "", false
	}
	rate, ok := units[UnitGram]
	return rate, ok
}

// Rate returns the 1 g rate of an instrument as an integer.
func (r *Reading) Rate(key string) (int64, error) {
	raw, ok := r.RawRate(key)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingInstrument, key)
	}
	rate, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid rate %q for %s: %w", raw, key, err)
	}
	return rate, nil
}

// Validate checks that every tracked instrument has a usable 1 g rate.
func (r *Reading) Validate() error {
	var missing []string
	for _, inst := range Instruments {
		if _, ok := r.RawRate(inst.Key); !ok {
			missing = append(missing, inst.Key)
			continue
		}
		if _, err := r.Rate(inst.Key); err != nil {
			return err
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingInstrument, strings.Join(missing, ", "))
	}
	return nil
}
