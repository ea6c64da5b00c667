package ledger

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"jewel-tracker/internal/models"
)

const (
	headerFill = "F4B183" // orange
	dateFill   = "B7DEE8" // blue
	diffFill   = "C6E0B4" // green

	columnPadding = 2
)

// Format re-applies presentation to the Data sheet: header, Date and diff
// column fills, the Captured Time number format, column widths and a frozen
// header row and Date column. Cell values are left untouched.
func (s *Store) Format() error {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to open ledger %s: %w", s.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", SheetName, err)
	}
	if len(rows) == 0 {
		return nil
	}
	headers := rows[0]

	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	for col, name := range headers {
		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}

		if err := f.SetCellStyle(SheetName, colName+"1", colName+"1", styles.header); err != nil {
			return err
		}

		style := styles.forColumn(name)
		width := utf8.RuneCountInString(name)
		for r := 1; r < len(rows); r++ {
			if col >= len(rows[r]) || rows[r][col] == "" {
				continue
			}
			value := rows[r][col]
			if name == models.ColumnCapturedTime {
				value = displayTime(value)
			}
			if n := utf8.RuneCountInString(value); n > width {
				width = n
			}
			if style == 0 {
				continue
			}
			cell := fmt.Sprintf("%s%d", colName, r+1)
			if err := f.SetCellStyle(SheetName, cell, cell, style); err != nil {
				return err
			}
		}

		if err := f.SetColWidth(SheetName, colName, colName, float64(width+columnPadding)); err != nil {
			return err
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	}); err != nil {
		return err
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save ledger %s: %w", s.path, err)
	}
	s.logger.Debug().Str("path", s.path).Int("rows", len(rows)-1).Msg("Ledger formatted")
	return nil
}

type styleSet struct {
	header, date, diff, dateTime int
}

func newStyles(f *excelize.File) (*styleSet, error) {
	var (
		s   styleSet
		err error
	)
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Border: border,
	}); err != nil {
		return nil, err
	}
	if s.date, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{dateFill}},
	}); err != nil {
		return nil, err
	}
	if s.diff, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{diffFill}},
	}); err != nil {
		return nil, err
	}
	numFmt := dateTimeNumFmt
	if s.dateTime, err = f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt}); err != nil {
		return nil, err
	}
	return &s, nil
}

// forColumn returns the data-cell style for a column, 0 for none.
func (s *styleSet) forColumn(name string) int {
	switch {
	case name == models.ColumnDate:
		return s.date
	case strings.Contains(strings.ToLower(name), "diff"):
		return s.diff
	case name == models.ColumnCapturedTime:
		return s.dateTime
	default:
		return 0
	}
}

func displayTime(raw string) string {
	t, err := parseCapturedTime(raw)
	if err != nil || t.IsZero() {
		return raw
	}
	return t.Format(models.DateTimeLayout)
}
