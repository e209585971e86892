package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/salesboard/internal/domain/models"
	"github.com/mamadbah2/salesboard/internal/service/query"
)

// SalesRepository stores sales in a MongoDB collection.
type SalesRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewSalesRepository connects to MongoDB and binds the sales collection.
func NewSalesRepository(ctx context.Context, uri, dbName, collName string, logger *zap.Logger) (*SalesRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("mongodb connected", zap.String("database", dbName), zap.String("collection", collName))

	return NewSalesRepositoryWithClient(client, dbName, collName, logger), nil
}

// NewSalesRepositoryWithClient binds the sales collection on an already
// connected client.
func NewSalesRepositoryWithClient(client *mongo.Client, dbName, collName string, logger *zap.Logger) *SalesRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesRepository{
		client:     client,
		collection: client.Database(dbName).Collection(collName),
		logger:     logger,
	}
}

// EnsureIndexes creates the indexes used by lookups, date sorting and name or
// phone search.
func (r *SalesRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: string(query.FieldTransactionID), Value: 1}}},
		{Keys: bson.D{{Key: string(query.FieldDate), Value: -1}}},
		{Keys: bson.D{
			{Key: string(query.FieldCustomerName), Value: "text"},
			{Key: string(query.FieldPhoneNumber), Value: "text"},
		}},
	}

	names, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("create sales indexes: %w", err)
	}
	r.logger.Debug("sales indexes ensured", zap.Strings("indexes", names))
	return nil
}

// Count returns the number of sales matching predicate.
func (r *SalesRepository) Count(ctx context.Context, predicate query.Predicate) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, FilterDocument(predicate))
	if err != nil {
		return 0, fmt.Errorf("failed to count sales: %w", err)
	}
	return n, nil
}

// Find returns one sorted page of sales matching predicate.
func (r *SalesRepository) Find(ctx context.Context, predicate query.Predicate, order query.Sort, page query.Pagination) ([]models.Sale, error) {
	opts := options.Find().
		SetSort(SortDocument(order)).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	cursor, err := r.collection.Find(ctx, FilterDocument(predicate), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find sales: %w", err)
	}

	// limit is caller input, so the slice grows with the cursor instead of
	// being sized from it.
	var sales []models.Sale
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, fmt.Errorf("failed to decode sales: %w", err)
	}
	if sales == nil {
		sales = []models.Sale{}
	}
	return sales, nil
}

// Distinct returns the distinct string values of field across the whole
// collection. MongoDB flattens array fields such as tags.
func (r *SalesRepository) Distinct(ctx context.Context, field query.Field) ([]string, error) {
	raw, err := r.collection.Distinct(ctx, string(field), bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list distinct %s: %w", field, err)
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}
	return values, nil
}

// FindByID looks a sale up by its ObjectID.
func (r *SalesRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Sale, error) {
	return r.findOne(ctx, bson.D{{Key: string(query.FieldID), Value: id}})
}

// FindByTransactionID looks a sale up by its numeric transaction ID.
func (r *SalesRepository) FindByTransactionID(ctx context.Context, transactionID int64) (*models.Sale, error) {
	return r.findOne(ctx, bson.D{{Key: string(query.FieldTransactionID), Value: transactionID}})
}

// InsertMany writes a batch of sales.
func (r *SalesRepository) InsertMany(ctx context.Context, sales []models.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	docs := make([]interface{}, len(sales))
	for i := range sales {
		docs[i] = sales[i]
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert sales: %w", err)
	}
	return nil
}

// DeleteAll wipes the collection.
func (r *SalesRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete sales: %w", err)
	}
	return res.DeletedCount, nil
}

// Close closes the MongoDB connection.
func (r *SalesRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *SalesRepository) findOne(ctx context.Context, filter bson.D) (*models.Sale, error) {
	var sale models.Sale
	err := r.collection.FindOne(ctx, filter).Decode(&sale)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find sale: %w", err)
	}
	return &sale, nil
}
