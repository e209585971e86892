package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/salesboard/internal/config"
	"github.com/mamadbah2/salesboard/internal/ingest"
	"github.com/mamadbah2/salesboard/internal/repository"
	"github.com/mamadbah2/salesboard/pkg/logger"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		envFile    string
		csvPath    string
		sheetRange string
		batchSize  int
	)

	cmd := &cobra.Command{
		Use:   "importer",
		Short: "Replace the sales collection with the rows of a CSV file or sheet range",
		Example: `  $ importer --csv ./data/sales.csv
  $ importer --sheet-range 'Sales!A:Z' --batch-size 500`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("csv") {
				cfg.Import.CSVPath = csvPath
			}
			if cmd.Flags().Changed("sheet-range") {
				cfg.Import.SheetRange = sheetRange
				if !cmd.Flags().Changed("csv") {
					cfg.Import.CSVPath = ""
				}
			}
			if cmd.Flags().Changed("batch-size") {
				cfg.Import.BatchSize = batchSize
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading the environment")
	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file to import (overrides IMPORT_CSV_PATH)")
	cmd.Flags().StringVar(&sheetRange, "sheet-range", "", "Google Sheets range to import (overrides IMPORT_SHEET_RANGE)")
	cmd.Flags().IntVar(&batchSize, "batch-size", ingest.DefaultBatchSize, "records per insert call")

	return cmd
}

func run(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	baseLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = baseLogger.Sync() }()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	store, err := repository.Open(ctx, cfg, logger.Named(baseLogger, "repo.sales"))
	if err != nil {
		return fmt.Errorf("open sales store: %w", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close sales store", zap.Error(err))
		}
	}()

	source, err := ingest.NewSource(ctx, cfg.Import, cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
	if err != nil {
		return err
	}

	importer := ingest.NewImporter(source, store, cfg.Import.BatchSize, loc, logger.Named(baseLogger, "ingest"))
	res, err := importer.Run(ctx)
	if err != nil {
		baseLogger.Error("import failed", zap.Int("inserted", res.Inserted), zap.Error(err))
		return err
	}

	fmt.Fprintf(os.Stdout, "Imported %d records from %s (replaced %d) in %s\n", res.Inserted, res.Source, res.Deleted, res.Duration)
	return nil
}
