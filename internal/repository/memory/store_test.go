package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/salesboard/internal/domain/models"
	"github.com/mamadbah2/salesboard/internal/service/query"
)

func day(d int) time.Time { return time.Date(2023, 3, d, 0, 0, 0, 0, time.UTC) }

func TestFind_SortTieBreakAndWindow(t *testing.T) {
	ctx := context.Background()
	ids := []primitive.ObjectID{
		primitive.NewObjectIDFromTimestamp(day(1)),
		primitive.NewObjectIDFromTimestamp(day(2)),
		primitive.NewObjectIDFromTimestamp(day(3)),
	}
	store := NewStore(
		models.Sale{ID: ids[2], Date: day(5), Quantity: 1},
		models.Sale{ID: ids[0], Date: day(5), Quantity: 3},
		models.Sale{ID: ids[1], Date: day(9), Quantity: 3},
	)

	got, err := store.Find(ctx, query.Predicate{}, query.Sort{Field: query.FieldDate, Descending: true}, query.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []primitive.ObjectID{ids[1], ids[0], ids[2]}, []primitive.ObjectID{got[0].ID, got[1].ID, got[2].ID})

	got, err = store.Find(ctx, query.Predicate{}, query.Sort{Field: query.FieldQuantity}, query.Pagination{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ids[1], got[0].ID)

	got, err = store.Find(ctx, query.Predicate{}, query.Sort{Field: query.FieldDate}, query.Pagination{Page: 5, Limit: 2})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReturnedSalesAreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore(models.Sale{TransactionID: 1, Tags: []string{"organic"}})

	sale, err := store.FindByTransactionID(ctx, 1)
	require.NoError(t, err)
	sale.Tags[0] = "changed"
	sale.CustomerName = "changed"

	again, err := store.FindByTransactionID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"organic"}, again.Tags)
	assert.Empty(t, again.CustomerName)
}

func TestDistinctFlattensTags(t *testing.T) {
	store := NewStore(
		models.Sale{Tags: []string{"a", "b"}, CustomerRegion: "North"},
		models.Sale{Tags: []string{"b", "c"}},
	)

	tags, err := store.Distinct(context.Background(), query.FieldTags)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, tags)

	regions, err := store.Distinct(context.Background(), query.FieldCustomerRegion)
	require.NoError(t, err)
	assert.Equal(t, []string{"North"}, regions)
}

func TestInsertAndDeleteAll(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.InsertMany(ctx, []models.Sale{{TransactionID: 1}, {TransactionID: 2}}))
	n, err := store.Count(ctx, query.Predicate{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	first, err := store.FindByTransactionID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, first)
	byID, err := store.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), byID.TransactionID)

	deleted, err := store.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	missing, err := store.FindByID(ctx, first.ID)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
