package sales

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/salesboard/internal/domain/models"
	"github.com/mamadbah2/salesboard/internal/service/query"
)

// Store is the read capability the service needs from persistence.
// Lookups return (nil, nil) when nothing matches.
type Store interface {
	Count(ctx context.Context, predicate query.Predicate) (int64, error)
	Find(ctx context.Context, predicate query.Predicate, order query.Sort, page query.Pagination) ([]models.Sale, error)
	Distinct(ctx context.Context, field query.Field) ([]string, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Sale, error)
	FindByTransactionID(ctx context.Context, transactionID int64) (*models.Sale, error)
}

// Service answers sales listing, lookup and catalog requests.
type Service struct {
	store    Store
	location *time.Location
	logger   *zap.Logger
}

// NewService wires a new sales service. Date-only filter bounds are read in
// loc; a nil loc means time.Local.
func NewService(store Store, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: store, location: loc, logger: logger}
}

// List returns one page of sales matching params. The count and the fetch are
// two separate store calls; writes landing between them may make totalItems
// disagree with the page contents.
func (s *Service) List(ctx context.Context, params models.ListParams) (*models.Page, error) {
	q := query.Parse(params, s.location)
	predicate := query.Build(q.Filter)

	total, err := s.store.Count(ctx, predicate)
	if err != nil {
		return nil, fmt.Errorf("count sales: %w", err)
	}

	data, err := s.store.Find(ctx, predicate, q.Sort, q.Pagination)
	if err != nil {
		return nil, fmt.Errorf("find sales: %w", err)
	}
	if data == nil {
		data = []models.Sale{}
	}

	s.logger.Debug("sales listed",
		zap.Int("clauses", len(predicate.Clauses)),
		zap.String("sort", string(q.Sort.Field)),
		zap.Bool("desc", q.Sort.Descending),
		zap.Int("page", q.Pagination.Page),
		zap.Int("limit", q.Pagination.Limit),
		zap.Int64("total", total),
		zap.Int("returned", len(data)))

	return &models.Page{
		Page:       q.Pagination.Page,
		Limit:      q.Pagination.Limit,
		TotalItems: total,
		TotalPages: q.Pagination.TotalPages(total),
		Data:       data,
		Summary:    Summarize(data),
	}, nil
}

// Get resolves a sale by ObjectID hex, falling back to the numeric
// transaction ID. A miss is reported through found, not err.
func (s *Service) Get(ctx context.Context, id string) (sale *models.Sale, found bool, err error) {
	id = strings.TrimSpace(id)

	if oid, oidErr := primitive.ObjectIDFromHex(id); oidErr == nil {
		sale, err = s.store.FindByID(ctx, oid)
		if err != nil {
			return nil, false, fmt.Errorf("find sale %s: %w", id, err)
		}
		return sale, sale != nil, nil
	}

	txID, convErr := strconv.ParseInt(id, 10, 64)
	if convErr != nil {
		s.logger.Debug("sale id is neither an object id nor a transaction id", zap.String("id", id))
		return nil, false, nil
	}

	sale, err = s.store.FindByTransactionID(ctx, txID)
	if err != nil {
		return nil, false, fmt.Errorf("find sale by transaction %d: %w", txID, err)
	}
	return sale, sale != nil, nil
}

// Catalog lists the distinct values of every filterable field.
func (s *Service) Catalog(ctx context.Context) (*models.Catalog, error) {
	fields := []query.Field{
		query.FieldCustomerRegion,
		query.FieldGender,
		query.FieldProductCategory,
		query.FieldTags,
		query.FieldPaymentMethod,
	}

	values := make(map[query.Field][]string, len(fields))
	for _, f := range fields {
		raw, err := s.store.Distinct(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("distinct %s: %w", f, err)
		}
		values[f] = normalize(raw)
	}

	return &models.Catalog{
		Regions:        values[query.FieldCustomerRegion],
		Genders:        values[query.FieldGender],
		Categories:     values[query.FieldProductCategory],
		Tags:           values[query.FieldTags],
		PaymentMethods: values[query.FieldPaymentMethod],
	}, nil
}

// Summarize sums quantities, totals and discounts over a page of sales.
func Summarize(data []models.Sale) models.PageSummary {
	var sum models.PageSummary
	for _, sale := range data {
		sum.TotalUnits += sale.Quantity
		sum.TotalAmount += sale.TotalAmount
		sum.TotalDiscount += sale.Discount()
	}
	return sum
}

// normalize drops empty values, deduplicates and sorts ascending.
func normalize(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
