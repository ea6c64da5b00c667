package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"jewel-tracker/internal/api"
	"jewel-tracker/internal/database"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger read-only over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var snapshots api.SnapshotLister
			repo, db, err := a.openSnapshots()
			if err != nil {
				return err
			}
			if repo != nil {
				defer database.Close(db)
				snapshots = repo
			}

			srv := &http.Server{
				Addr:              ":" + a.cfg.Port,
				Handler:           api.NewRouter(a.store(), snapshots, a.logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-cmd.Context().Done()
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(ctx)
			}()

			a.logger.Info().Str("port", a.cfg.Port).Msg("Server starting")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}
