package mongodb

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/salesboard/internal/service/query"
)

func newMockRepository(mt *mtest.T) (*SalesRepository, string) {
	repo := NewSalesRepositoryWithClient(mt.Client, mt.DB.Name(), mt.Coll.Name(), zaptest.NewLogger(mt.T))
	return repo, mt.DB.Name() + "." + mt.Coll.Name()
}

func TestSalesRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("count", func(mt *mtest.T) {
		repo, ns := newMockRepository(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(3)}}))

		n, err := repo.Count(ctx, query.Predicate{})
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), n)
	})

	mt.Run("find decodes documents", func(mt *mtest.T) {
		repo, ns := newMockRepository(mt)
		id := primitive.NewObjectID()
		date := time.Date(2023, 3, 23, 0, 0, 0, 0, time.UTC)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "transactionId", Value: int64(17)},
				{Key: "date", Value: date},
				{Key: "customerName", Value: "Isha Rao"},
				{Key: "tags", Value: bson.A{"organic", "skincare"}},
				{Key: "quantity", Value: int32(4)},
				{Key: "finalAmount", Value: 450.5},
			}),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch),
		)

		sales, err := repo.Find(ctx, query.Predicate{}, query.Sort{Field: query.FieldDate, Descending: true}, query.Pagination{Page: 1, Limit: 10})
		require.NoError(mt, err)
		require.Len(mt, sales, 1)
		assert.Equal(mt, id, sales[0].ID)
		assert.Equal(mt, int64(17), sales[0].TransactionID)
		assert.True(mt, date.Equal(sales[0].Date))
		assert.Equal(mt, "Isha Rao", sales[0].CustomerName)
		assert.Equal(mt, []string{"organic", "skincare"}, sales[0].Tags)
		assert.Equal(mt, 4, sales[0].Quantity)
		assert.Equal(mt, 450.5, sales[0].FinalAmount)
	})

	mt.Run("find with a huge page window", func(mt *mtest.T) {
		repo, ns := newMockRepository(mt)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "transactionId", Value: int64(1)},
			}),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch),
		)

		sales, err := repo.Find(ctx, query.Predicate{}, query.Sort{Field: query.FieldDate}, query.Pagination{Page: 1, Limit: math.MaxInt})
		require.NoError(mt, err)
		assert.Len(mt, sales, 1)
	})

	mt.Run("find past the last page", func(mt *mtest.T) {
		repo, ns := newMockRepository(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		sales, err := repo.Find(ctx, query.Predicate{}, query.Sort{Field: query.FieldDate}, query.Pagination{Page: math.MaxInt, Limit: 2})
		require.NoError(mt, err)
		assert.NotNil(mt, sales)
		assert.Empty(mt, sales)
	})

	mt.Run("distinct keeps strings only", func(mt *mtest.T) {
		repo, _ := newMockRepository(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "values", Value: bson.A{"North", nil, "", "South"}}))

		values, err := repo.Distinct(ctx, query.FieldCustomerRegion)
		require.NoError(mt, err)
		assert.Equal(mt, []string{"North", "", "South"}, values)
	})

	mt.Run("lookup miss is not an error", func(mt *mtest.T) {
		repo, ns := newMockRepository(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		sale, err := repo.FindByTransactionID(ctx, 404)
		assert.NoError(mt, err)
		assert.Nil(mt, sale)
	})

	mt.Run("command errors propagate", func(mt *mtest.T) {
		repo, _ := newMockRepository(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Message: "interrupted at shutdown",
			Name:    "InterruptedAtShutdown",
		}))

		_, err := repo.Count(ctx, query.Predicate{})
		assert.Error(mt, err)
	})

	mt.Run("delete all", func(mt *mtest.T) {
		repo, _ := newMockRepository(mt)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: int32(5)}})

		n, err := repo.DeleteAll(ctx)
		require.NoError(mt, err)
		assert.Equal(mt, int64(5), n)
	})
}
