package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewel-tracker/internal/config"
	"jewel-tracker/internal/models"
)

func TestRootCmd_DisabledRunTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GRT_RUN_ENABLED", "false")
	t.Setenv("GRT_CACHE_PATH", filepath.Join(dir, "cache"))
	t.Setenv("GRT_OUTPUT_PATH", filepath.Join(dir, "output"))
	t.Setenv("GRT_URL", "http://127.0.0.1:1/")
	t.Setenv("LOG_LEVEL", "error")

	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.ErrorIs(t, err, config.ErrRunDisabled)
	assert.NoDirExists(t, filepath.Join(dir, "cache"))
	assert.NoDirExists(t, filepath.Join(dir, "output"))
}

func TestRootCmd_UnrecognisedEnableFlagStopsRun(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GRT_RUN_ENABLED", "off")
	t.Setenv("GRT_CACHE_PATH", filepath.Join(dir, "cache"))
	t.Setenv("GRT_OUTPUT_PATH", filepath.Join(dir, "output"))
	t.Setenv("GRT_URL", "http://127.0.0.1:1/")
	t.Setenv("LOG_LEVEL", "error")

	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.ErrorContains(t, err, "GRT_RUN_ENABLED")
	assert.NoDirExists(t, filepath.Join(dir, "cache"))
	assert.NoDirExists(t, filepath.Join(dir, "output"))
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	t.Setenv("GRT_TIMEOUT", "soon")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"show"})
	err := cmd.Execute()
	assert.ErrorContains(t, err, "invalid timeout")
}

func TestShowCmd_EmptyLedger(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GRT_OUTPUT_PATH", dir)
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"show"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Date")
	assert.NotContains(t, out.String(), "2026")
	assert.NoFileExists(t, filepath.Join(dir, config.DefaultOutputFile))
}

func TestWriteRows(t *testing.T) {
	prices := make(map[string]models.InstrumentPrice)
	for _, inst := range models.Instruments {
		prices[inst.Key] = models.InstrumentPrice{Rate: 7000, Diff: "↓10"}
	}
	rows := []models.LedgerRow{{
		Date:       "2026-10-19",
		Prices:     prices,
		CapturedAt: time.Date(2026, 10, 19, 9, 30, 0, 0, time.Local),
	}}

	var out bytes.Buffer
	writeRows(&out, rows)

	var header, data string
	for _, line := range strings.Split(out.String(), "\n") {
		switch {
		case strings.Contains(line, "Captured Time"):
			header = line
		case strings.Contains(line, "2026-10-19 09:30:00"):
			data = line
		}
	}
	require.NotEmpty(t, header)
	require.NotEmpty(t, data)
	assert.Contains(t, header, "24K GOLD/1g Diff")
	assert.Contains(t, header, "SILVER/1g")
	assert.Contains(t, data, "7000")
	assert.Contains(t, data, "↓10")
}
