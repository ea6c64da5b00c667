package main

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"jewel-tracker/internal/config"
	"jewel-tracker/internal/database"
	"jewel-tracker/internal/logging"
	"jewel-tracker/internal/services/grt"
	"jewel-tracker/internal/services/ledger"
	"jewel-tracker/internal/services/tracker"
)

// app holds what every command needs once flags are parsed.
type app struct {
	configPath string
	cfg        *config.Config
	logger     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "grt-tracker",
		Short: "Track GRT Jewels gold, platinum and silver rates in an Excel ledger",
		Long: `Fetches the GRT Jewels rate board once, appends a row to the ledger
workbook when the date or any 1 g rate changed, and formats the workbook.

Run it from cron or any other scheduler.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPipeline(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a TOML config file")

	root.AddCommand(newFormatCmd(a), newShowCmd(a), newServeCmd(a))
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.New(cfg.LogLevel)
	return nil
}

func (a *app) store() *ledger.Store {
	return ledger.NewStore(a.cfg.LedgerPath(), a.cfg.Headers, a.logger)
}

// openSnapshots returns nil when no database is configured.
func (a *app) openSnapshots() (*database.SnapshotRepository, *gorm.DB, error) {
	db, err := database.Initialize(a.cfg.DatabaseURL, a.logger)
	if errors.Is(err, database.ErrNoDatabase) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return database.NewSnapshotRepository(db), db, nil
}

func (a *app) runPipeline(cmd *cobra.Command) error {
	if err := a.cfg.CheckEnabled(); err != nil {
		a.logger.Error().Msg("Run disabled, set GRT_RUN_ENABLED=true to enable")
		return err
	}

	client := grt.NewClient(a.cfg.URL, a.cfg.CachePath, a.cfg.GetTimeout(), a.logger)

	var opts []tracker.Option
	repo, db, err := a.openSnapshots()
	if err != nil {
		// the ledger is authoritative; run without the mirror
		a.logger.Warn().Err(err).Msg("Snapshot database unavailable")
	} else if repo != nil {
		defer database.Close(db)
		opts = append(opts, tracker.WithSnapshots(repo))
	}

	t := tracker.New(client, a.store(), a.logger, opts...)
	res, err := t.Run(cmd.Context())
	if err != nil {
		a.logger.Error().Err(err).Msg("Run failed")
		return err
	}

	a.logger.Info().
		Str("run_id", res.RunID).
		Bool("appended", res.Appended).
		Int("rows", res.Rows).
		Msg("Run finished")
	return nil
}
