package ingest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/salesboard/internal/config"
	"github.com/mamadbah2/salesboard/internal/repository/sheets"
)

// ErrNoSource is returned when neither a CSV path nor a sheet range is set.
var ErrNoSource = errors.New("no import source configured")

// NewSource picks the import source from cfg. A CSV path wins over a sheet
// range when both are set.
func NewSource(ctx context.Context, cfg config.ImportConfig, sheetsCfg config.SheetsConfig, logger *zap.Logger) (Source, error) {
	switch {
	case cfg.CSVPath != "":
		return CSVSource{Path: cfg.CSVPath}, nil
	case cfg.SheetRange != "":
		repo, err := sheets.NewGoogleSheetRepository(ctx, sheetsCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("init sheets source: %w", err)
		}
		return SheetSource{Repo: repo, Range: cfg.SheetRange}, nil
	default:
		return nil, ErrNoSource
	}
}
