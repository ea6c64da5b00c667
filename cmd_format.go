package main

import (
	"github.com/spf13/cobra"
)

func newFormatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "format",
		Short: "Re-apply ledger styling without fetching",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.store().Format(); err != nil {
				return err
			}
			a.logger.Info().Str("path", a.cfg.LedgerPath()).Msg("Ledger formatted")
			return nil
		},
	}
}
