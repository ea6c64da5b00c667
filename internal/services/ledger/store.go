// Package ledger reads and writes the price ledger workbook.
package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"jewel-tracker/internal/models"
)

// SheetName is the only sheet the tracker reads or writes.
const SheetName = "Data"

const dateTimeNumFmt = "yyyy-mm-dd hh:mm:ss"

// Table is the in-memory copy of the Data sheet.
type Table struct {
	Headers []string
	Rows    []models.LedgerRow
}

// Last returns the most recent row, or nil for an empty ledger.
func (t *Table) Last() *models.LedgerRow {
	if len(t.Rows) == 0 {
		return nil
	}
	return &t.Rows[len(t.Rows)-1]
}

func (t *Table) Append(row models.LedgerRow) {
	t.Rows = append(t.Rows, row)
}

type Store struct {
	path    string
	headers []string
	logger  zerolog.Logger
}

// NewStore returns a store for the workbook at path. headers is the column
// layout used when the workbook has to be created.
func NewStore(path string, headers []string, logger zerolog.Logger) *Store {
	return &Store{
		path:    path,
		headers: append([]string(nil), headers...),
		logger:  logger,
	}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the Data sheet. A missing workbook is created immediately with
// the configured header row and an empty table is returned.
func (s *Store) Load() (*Table, error) {
	table, err := s.readTable()
	if errors.Is(err, fs.ErrNotExist) {
		table = s.emptyTable()
		if err := s.Save(table); err != nil {
			return nil, err
		}
		s.logger.Info().Str("path", s.path).Msg("New Excel file created")
		return table, nil
	}
	return table, err
}

// Read is Load without side effects: a missing workbook reads as an empty
// table and nothing is written.
func (s *Store) Read() (*Table, error) {
	table, err := s.readTable()
	if errors.Is(err, fs.ErrNotExist) {
		return s.emptyTable(), nil
	}
	return table, err
}

func (s *Store) emptyTable() *Table {
	return &Table{Headers: append([]string(nil), s.headers...)}
}

func (s *Store) readTable() (*Table, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger %s: %w", s.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s of %s: %w", SheetName, s.path, err)
	}
	if len(rows) == 0 {
		return s.emptyTable(), nil
	}

	table := &Table{Headers: rows[0]}
	cols, err := columnIndex(table.Headers)
	if err != nil {
		return nil, fmt.Errorf("ledger %s: %w", s.path, err)
	}

	for i, cells := range rows[1:] {
		if isBlank(cells) {
			continue
		}
		row, err := parseRow(cells, cols)
		if err != nil {
			return nil, fmt.Errorf("ledger %s row %d: %w", s.path, i+2, err)
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// Save rewrites the whole Data sheet from the table.
func (s *Store) Save(table *Table) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	header := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := rowValues(table.Headers, row)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := applyDateTimeFormat(f, table.Headers, len(table.Rows)); err != nil {
		return err
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save ledger %s: %w", s.path, err)
	}
	return nil
}

func columnIndex(headers []string) (map[string]int, error) {
	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	required := []string{models.ColumnDate}
	for _, inst := range models.Instruments {
		required = append(required, inst.RateColumn())
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return cols, nil
}

func cellAt(cells []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(cells []string, cols map[string]int) (models.LedgerRow, error) {
	row := models.LedgerRow{
		Date:   cellAt(cells, cols, models.ColumnDate),
		Prices: make(map[string]models.InstrumentPrice, len(models.Instruments)),
	}

	for _, inst := range models.Instruments {
		rate, err := parseInt(cellAt(cells, cols, inst.RateColumn()))
		if err != nil {
			return row, fmt.Errorf("%s: %w", inst.RateColumn(), err)
		}
		var rate8 int64
		if raw := cellAt(cells, cols, inst.Rate8Column()); raw != "" {
			if rate8, err = parseInt(raw); err != nil {
				return row, fmt.Errorf("%s: %w", inst.Rate8Column(), err)
			}
		}
		row.Prices[inst.Key] = models.InstrumentPrice{
			Rate:  rate,
			Diff:  cellAt(cells, cols, inst.DiffColumn()),
			Rate8: rate8,
			Diff8: cellAt(cells, cols, inst.Diff8Column()),
		}
	}

	captured, err := parseCapturedTime(cellAt(cells, cols, models.ColumnCapturedTime))
	if err != nil {
		return row, fmt.Errorf("%s: %w", models.ColumnCapturedTime, err)
	}
	row.CapturedAt = captured

	return row, nil
}

// parseInt accepts integer cells and integral floats ("7000" or "7000.0").
func parseInt(raw string) (int64, error) {
	if raw == "" {
		return 0, errors.New("empty rate")
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid rate %q", raw)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("non-integer rate %q", raw)
	}
	return int64(f), nil
}

// parseCapturedTime reads an Excel serial date as local wall-clock time, or a
// text timestamp written by hand.
func parseCapturedTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, err
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local), nil
	}
	t, err := time.ParseInLocation(models.DateTimeLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
	}
	return t, nil
}

func rowValues(headers []string, row models.LedgerRow) []interface{} {
	byColumn := map[string]interface{}{
		models.ColumnDate: row.Date,
	}
	if !row.CapturedAt.IsZero() {
		byColumn[models.ColumnCapturedTime] = row.CapturedAt.Truncate(time.Second)
	}
	for _, inst := range models.Instruments {
		p, ok := row.Prices[inst.Key]
		if !ok {
			continue
		}
		byColumn[inst.RateColumn()] = p.Rate
		byColumn[inst.Rate8Column()] = p.Rate8
		if p.Diff != "" {
			byColumn[inst.DiffColumn()] = p.Diff
		}
		if p.Diff8 != "" {
			byColumn[inst.Diff8Column()] = p.Diff8
		}
	}

	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = byColumn[h]
	}
	return values
}

func applyDateTimeFormat(f *excelize.File, headers []string, rowCount int) error {
	if rowCount == 0 {
		return nil
	}
	for i, h := range headers {
		if h != models.ColumnCapturedTime {
			continue
		}
		numFmt := dateTimeNumFmt
		style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
		if err != nil {
			return err
		}
		top, _ := excelize.CoordinatesToCellName(i+1, 2)
		bottom, _ := excelize.CoordinatesToCellName(i+1, rowCount+1)
		return f.SetCellStyle(SheetName, top, bottom, style)
	}
	return nil
}
