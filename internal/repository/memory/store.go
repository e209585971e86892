// Package memory keeps sales in process memory. It serves local development
// (STORE_DRIVER=memory) and tests.
package memory

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/salesboard/internal/domain/models"
	"github.com/mamadbah2/salesboard/internal/service/query"
)

// Store is a mutex-guarded in-memory sales collection.
type Store struct {
	mu    sync.RWMutex
	sales []models.Sale
}

// NewStore creates a store seeded with the given sales. Records without an
// ID are assigned one.
func NewStore(seed ...models.Sale) *Store {
	s := &Store{}
	_ = s.InsertMany(context.Background(), seed)
	return s
}

// Count returns the number of sales matching predicate.
func (s *Store) Count(_ context.Context, predicate query.Predicate) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for i := range s.sales {
		if predicate.Matches(&s.sales[i]) {
			n++
		}
	}
	return n, nil
}

// Find returns one sorted page of sales matching predicate.
func (s *Store) Find(_ context.Context, predicate query.Predicate, order query.Sort, page query.Pagination) ([]models.Sale, error) {
	s.mu.RLock()
	matched := make([]models.Sale, 0, len(s.sales))
	for i := range s.sales {
		if predicate.Matches(&s.sales[i]) {
			matched = append(matched, cloneSale(s.sales[i]))
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		c := compare(&matched[i], &matched[j], order.Field)
		if c == 0 {
			return bytes.Compare(matched[i].ID[:], matched[j].ID[:]) < 0
		}
		if order.Descending {
			return c > 0
		}
		return c < 0
	})

	skip, total := page.Skip(), int64(len(matched))
	if skip < 0 || skip >= total {
		return []models.Sale{}, nil
	}
	end := total
	if limit := int64(page.Limit); limit > 0 && limit < total-skip {
		end = skip + limit
	}
	return matched[skip:end], nil
}

// Distinct returns the distinct values of field, flattening tags.
func (s *Store) Distinct(_ context.Context, field query.Field) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for i := range s.sales {
		for _, v := range query.StringValues(&s.sales[i], field) {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out, nil
}

// FindByID looks a sale up by its ObjectID.
func (s *Store) FindByID(_ context.Context, id primitive.ObjectID) (*models.Sale, error) {
	return s.findFirst(func(sale *models.Sale) bool { return sale.ID == id }), nil
}

// FindByTransactionID looks a sale up by its numeric transaction ID.
func (s *Store) FindByTransactionID(_ context.Context, transactionID int64) (*models.Sale, error) {
	return s.findFirst(func(sale *models.Sale) bool { return sale.TransactionID == transactionID }), nil
}

// InsertMany appends sales, assigning IDs where missing.
func (s *Store) InsertMany(_ context.Context, sales []models.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sale := range sales {
		sale = cloneSale(sale)
		if sale.ID.IsZero() {
			sale.ID = primitive.NewObjectID()
		}
		s.sales = append(s.sales, sale)
	}
	return nil
}

// DeleteAll empties the store and returns how many records were removed.
func (s *Store) DeleteAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.sales))
	s.sales = nil
	return n, nil
}

// Close is a no-op.
func (s *Store) Close(_ context.Context) error { return nil }

func (s *Store) findFirst(match func(*models.Sale) bool) *models.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.sales {
		if match(&s.sales[i]) {
			sale := cloneSale(s.sales[i])
			return &sale
		}
	}
	return nil
}

// compare orders two sales by field. Missing values sort first, as they do in
// MongoDB.
func compare(a, b *models.Sale, field query.Field) int {
	switch field {
	case query.FieldQuantity:
		return cmpInt(a.Quantity, b.Quantity)
	case query.FieldCustomerName:
		return strings.Compare(a.CustomerName, b.CustomerName)
	default:
		return a.Date.Compare(b.Date)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cloneSale(s models.Sale) models.Sale {
	if s.Tags != nil {
		s.Tags = append([]string(nil), s.Tags...)
	}
	return s
}
