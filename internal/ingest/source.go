package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/mamadbah2/salesboard/internal/repository/sheets"
)

// Source yields the rows of one import run.
type Source interface {
	Name() string
	Rows(ctx context.Context) ([]Row, error)
}

// CSVSource reads rows from a CSV file with a header line.
type CSVSource struct {
	Path string
}

// Name implements Source.
func (s CSVSource) Name() string { return "csv:" + s.Path }

// Rows implements Source.
func (s CSVSource) Rows(_ context.Context) ([]Row, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", s.Path, err)
	}
	defer f.Close()

	return decodeRows(f)
}

// SheetSource reads rows from a Google Sheets range whose first row holds the
// column names.
type SheetSource struct {
	Repo  sheets.Repository
	Range string
}

// Name implements Source.
func (s SheetSource) Name() string { return "sheet:" + s.Range }

// Rows implements Source.
func (s SheetSource) Rows(ctx context.Context) ([]Row, error) {
	values, err := s.Repo.ReadRange(ctx, s.Range)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}

	// Re-encode as CSV so sheet and file rows share one decoder.
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	width := len(values[0])
	for _, row := range values {
		record := make([]string, width)
		for i := 0; i < width && i < len(row); i++ {
			record[i] = fmt.Sprint(row[i])
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("encode sheet row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode sheet rows: %w", err)
	}

	return decodeRows(&buf)
}

func decodeRows(r io.Reader) ([]Row, error) {
	var rows []Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode csv rows: %w", err)
	}
	return rows, nil
}
