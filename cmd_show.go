package main

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"jewel-tracker/internal/models"
)

func newShowCmd(a *app) *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the most recent ledger rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger, err := a.store().Read()
			if err != nil {
				return err
			}
			rows := ledger.Rows
			if last > 0 && len(rows) > last {
				rows = rows[len(rows)-last:]
			}
			writeRows(cmd.OutOrStdout(), rows)
			return nil
		},
	}
	cmd.Flags().IntVarP(&last, "last", "n", 5, "number of rows to print, 0 for all")
	return cmd
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	// ledger column names are shown as written in the workbook
	t.Style().Format.Header = text.FormatDefault
	t.SetOutputMirror(out)
	return t
}

func writeRows(out io.Writer, rows []models.LedgerRow) {
	t := newTable(out)

	header := table.Row{models.ColumnDate}
	for _, inst := range models.Instruments {
		header = append(header, inst.RateColumn(), inst.DiffColumn())
	}
	header = append(header, models.ColumnCapturedTime)
	t.AppendHeader(header)

	for _, row := range rows {
		r := table.Row{row.Date}
		for _, inst := range models.Instruments {
			p := row.Prices[inst.Key]
			r = append(r, p.Rate, p.Diff)
		}
		captured := ""
		if !row.CapturedAt.IsZero() {
			captured = row.CapturedAt.Format(models.DateTimeLayout)
		}
		r = append(r, captured)
		t.AppendRow(r)
	}

	t.Render()
}
