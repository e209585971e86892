package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/salesboard/internal/domain/models"
)

// DefaultBatchSize is the number of records per insert call.
const DefaultBatchSize = 2000

// Writer is the write capability an import needs from a store.
type Writer interface {
	DeleteAll(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, sales []models.Sale) error
}

// Result describes a finished import.
type Result struct {
	Source   string
	Deleted  int64
	Inserted int
	Duration time.Duration
}

// Importer replaces the whole sales collection with the rows of a source.
type Importer struct {
	source    Source
	writer    Writer
	batchSize int
	location  *time.Location
	logger    *zap.Logger
}

// NewImporter wires an importer. A non-positive batchSize means
// DefaultBatchSize; a nil loc means time.Local.
func NewImporter(source Source, writer Writer, batchSize int, loc *time.Location, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if loc == nil {
		loc = time.Local
	}
	return &Importer{source: source, writer: writer, batchSize: batchSize, location: loc, logger: logger}
}

// Run reads every row first, then wipes the store and inserts in batches. A
// source failure leaves the existing data untouched; an insert failure part
// way through leaves the batches written so far.
func (i *Importer) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	res := Result{Source: i.source.Name()}

	rows, err := i.source.Rows(ctx)
	if err != nil {
		return res, fmt.Errorf("read %s: %w", res.Source, err)
	}
	i.logger.Info("import rows loaded", zap.String("source", res.Source), zap.Int("rows", len(rows)))

	deleted, err := i.writer.DeleteAll(ctx)
	if err != nil {
		return res, fmt.Errorf("clear sales: %w", err)
	}
	res.Deleted = deleted
	i.logger.Info("cleared old data", zap.Int64("deleted", deleted))

	batch := make([]models.Sale, 0, i.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := i.writer.InsertMany(ctx, batch); err != nil {
			return fmt.Errorf("insert batch after %d records: %w", res.Inserted, err)
		}
		res.Inserted += len(batch)
		i.logger.Info("inserted records", zap.Int("total", res.Inserted))
		batch = batch[:0]
		return nil
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		batch = append(batch, row.Sale(i.location))
		if len(batch) >= i.batchSize {
			if err := flush(); err != nil {
				return res, err
			}
		}
	}
	if err := flush(); err != nil {
		return res, err
	}

	res.Duration = time.Since(start)
	i.logger.Info("import finished",
		zap.String("source", res.Source),
		zap.Int("inserted", res.Inserted),
		zap.Duration("duration", res.Duration))
	return res, nil
}
