package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldAppend(t *testing.T) {
	today := reading("2026-10-19", "7000", "6800", "5600", "3200", "85")
	last, err := BuildRow(nil, today, capturedAt)
	require.NoError(t, err)

	tests := []struct {
		name string
		r    func() bool
		want bool
	}{
		{"empty ledger", func() bool { return ShouldAppend(nil, today) }, true},
		{"same date same rates", func() bool { return ShouldAppend(&last, today) }, false},
		{"new date same rates", func() bool {
			return ShouldAppend(&last, reading("2026-10-20", "7000", "6800", "5600", "3200", "85"))
		}, true},
		{"same date gold moved", func() bool {
			return ShouldAppend(&last, reading("2026-10-19", "7050", "6800", "5600", "3200", "85"))
		}, true},
		{"same date silver moved", func() bool {
			return ShouldAppend(&last, reading("2026-10-19", "7000", "6800", "5600", "3200", "84"))
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r())
		})
	}
}
