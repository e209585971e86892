package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/salesboard/internal/config"
	"github.com/mamadbah2/salesboard/internal/domain/models"
	"github.com/mamadbah2/salesboard/internal/repository/memory"
	"github.com/mamadbah2/salesboard/internal/service/query"
)

const header = "Transaction ID,Date,Customer ID,Customer Name,Phone Number,Gender,Age,Customer Region,Customer Type,Product ID,Product Name,Brand,Product Category,Tags,Quantity,Price per Unit,Discount Percentage,Total Amount,Final Amount,Payment Method,Order Status,Delivery Type,Store ID,Store Location,Salesperson ID,Employee Name\n"

const sampleCSV = header +
	`1,23-03-2023,CUST-1,Isha Rao,9123455567,Female,34,South,Returning,PROD-9,Face Serum,Glow,Beauty,"organic, skincare",2,250,10,500,450,UPI,Completed,Standard,ST-1,Chennai,SP-4,Anil` + "\n" +
	`2,24-03-2023,CUST-2,Kabir Singh,9000012345,Male,41,East,New,PROD-3,Tee,Cotto,Clothing,,1,300,0,300,300,Cash,Completed,Express,ST-2,Kolkata,SP-1,Rita` + "\n" +
	`3,bad-date,CUST-3,Rohan Das,9812300000,Male,n/a,West,New,PROD-5,Buds,Sonic,Electronics,gadgets,x,,,,,Debit Card,Pending,Standard,ST-3,Pune,SP-2,Joy` + "\n"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRowSale(t *testing.T) {
	row := Row{
		TransactionID:      "17",
		Date:               "23-03-2023",
		CustomerName:       " Isha Rao ",
		Age:                "34",
		Tags:               "organic, skincare,,",
		Quantity:           "2",
		PricePerUnit:       "250.5",
		DiscountPercentage: "10",
		TotalAmount:        "501",
		FinalAmount:        "450.9",
		PaymentMethod:      "UPI",
	}

	sale := row.Sale(time.UTC)
	assert.Equal(t, int64(17), sale.TransactionID)
	assert.Equal(t, time.Date(2023, 3, 23, 0, 0, 0, 0, time.UTC), sale.Date)
	assert.Equal(t, "Isha Rao", sale.CustomerName)
	assert.Equal(t, 34, sale.Age)
	assert.Equal(t, []string{"organic", "skincare"}, sale.Tags)
	assert.Equal(t, 2, sale.Quantity)
	assert.Equal(t, 250.5, sale.PricePerUnit)
	assert.Equal(t, 450.9, sale.FinalAmount)
	assert.Equal(t, "UPI", sale.PaymentMethod)
}

func TestRowSale_Lenient(t *testing.T) {
	sale := Row{Date: "2023/03/23", Age: "n/a", Quantity: ""}.Sale(time.UTC)

	assert.True(t, sale.Date.IsZero())
	assert.Zero(t, sale.Age)
	assert.Zero(t, sale.Quantity)
	assert.NotNil(t, sale.Tags)
	assert.Empty(t, sale.Tags)
}

func TestCSVSource(t *testing.T) {
	rows, err := CSVSource{Path: writeCSV(t, sampleCSV)}.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Isha Rao", rows[0].CustomerName)
	assert.Equal(t, "organic, skincare", rows[0].Tags)
	assert.Equal(t, "300", rows[1].PricePerUnit)
}

func TestCSVSource_Missing(t *testing.T) {
	_, err := CSVSource{Path: filepath.Join(t.TempDir(), "nope.csv")}.Rows(context.Background())
	assert.Error(t, err)
}

type fakeSheet struct {
	values [][]interface{}
	err    error
}

func (f fakeSheet) ReadRange(_ context.Context, _ string) ([][]interface{}, error) {
	return f.values, f.err
}

func TestSheetSource(t *testing.T) {
	src := SheetSource{
		Range: "Sales!A:Z",
		Repo: fakeSheet{values: [][]interface{}{
			{"Transaction ID", "Date", "Customer Name", "Tags", "Quantity"},
			{"5", "01-04-2023", "Meera, Iyer", "skincare", 3},
			{"6", "02-04-2023"},
		}},
	}

	rows, err := src.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Meera, Iyer", rows[0].CustomerName)
	assert.Equal(t, "3", rows[0].Quantity)
	assert.Equal(t, "6", rows[1].TransactionID)
	assert.Equal(t, "", rows[1].CustomerName)
	assert.Equal(t, "sheet:Sales!A:Z", src.Name())
}

func TestSheetSource_Empty(t *testing.T) {
	rows, err := SheetSource{Repo: fakeSheet{}}.Rows(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

type countingWriter struct {
	*memory.Store
	batches []int
	failOn  int
}

func (w *countingWriter) InsertMany(ctx context.Context, sales []models.Sale) error {
	if w.failOn > 0 && len(w.batches)+1 == w.failOn {
		return errors.New("disk full")
	}
	w.batches = append(w.batches, len(sales))
	return w.Store.InsertMany(ctx, sales)
}

func TestImporter_ReplacesCollectionInBatches(t *testing.T) {
	store := memory.NewStore(models.Sale{TransactionID: 999})
	writer := &countingWriter{Store: store}
	importer := NewImporter(CSVSource{Path: writeCSV(t, sampleCSV)}, writer, 2, time.UTC, zaptest.NewLogger(t))

	res, err := importer.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Deleted)
	assert.Equal(t, 3, res.Inserted)
	assert.Equal(t, []int{2, 1}, writer.batches)

	n, err := store.Count(context.Background(), query.Predicate{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	old, err := store.FindByTransactionID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, old)

	tagged, err := store.FindByTransactionID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, tagged)
	assert.Equal(t, []string{"organic", "skincare"}, tagged.Tags)
	assert.False(t, tagged.ID.IsZero())
}

func TestImporter_SourceFailureKeepsData(t *testing.T) {
	store := memory.NewStore(models.Sale{TransactionID: 1})
	importer := NewImporter(SheetSource{Repo: fakeSheet{err: errors.New("quota exceeded")}}, store, 0, time.UTC, zaptest.NewLogger(t))

	_, err := importer.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	n, _ := store.Count(context.Background(), query.Predicate{})
	assert.Equal(t, int64(1), n)
}

func TestImporter_InsertFailure(t *testing.T) {
	writer := &countingWriter{Store: memory.NewStore(), failOn: 2}
	importer := NewImporter(CSVSource{Path: writeCSV(t, sampleCSV)}, writer, 2, time.UTC, zaptest.NewLogger(t))

	res, err := importer.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 2, res.Inserted)
}

func TestImporter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	importer := NewImporter(CSVSource{Path: writeCSV(t, sampleCSV)}, memory.NewStore(), 10, time.UTC, zaptest.NewLogger(t))
	_, err := importer.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSource(t *testing.T) {
	ctx := context.Background()

	src, err := NewSource(ctx, config.ImportConfig{CSVPath: "sales.csv", SheetRange: "Sales!A:Z"}, config.SheetsConfig{}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, CSVSource{Path: "sales.csv"}, src)

	_, err = NewSource(ctx, config.ImportConfig{}, config.SheetsConfig{}, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, ErrNoSource)
}
