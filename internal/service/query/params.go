// Package query turns raw listing parameters into a typed query and an
// immutable predicate that stores can translate or evaluate.
package query

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mamadbah2/salesboard/internal/domain/models"
)

// Default pagination values.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Field names a stored sale attribute.
type Field string

const (
	FieldID              Field = "_id"
	FieldTransactionID   Field = "transactionId"
	FieldDate            Field = "date"
	FieldCustomerName    Field = "customerName"
	FieldPhoneNumber     Field = "phoneNumber"
	FieldGender          Field = "gender"
	FieldAge             Field = "age"
	FieldCustomerRegion  Field = "customerRegion"
	FieldProductCategory Field = "productCategory"
	FieldTags            Field = "tags"
	FieldQuantity        Field = "quantity"
	FieldPaymentMethod   Field = "paymentMethod"
)

// sortable maps the accepted sortBy values to stored fields.
var sortable = map[string]Field{
	"date":         FieldDate,
	"quantity":     FieldQuantity,
	"customerName": FieldCustomerName,
}

// Filter is the fully resolved set of listing constraints. Empty slices and
// nil bounds mean "not constrained".
type Filter struct {
	Search         string
	Regions        []string
	Genders        []string
	Categories     []string
	Tags           []string
	PaymentMethods []string
	AgeMin         *int
	AgeMax         *int
	From           *time.Time
	To             *time.Time
}

// Sort is the resolved ordering of a listing.
type Sort struct {
	Field      Field
	Descending bool
}

// Pagination is a 1-based page window.
type Pagination struct {
	Page  int
	Limit int
}

// Skip is the number of matching records before the page. It saturates at
// math.MaxInt64 instead of overflowing for very large pages.
func (p Pagination) Skip() int64 {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	pages, limit := int64(p.Page-1), int64(p.Limit)
	if pages > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return pages * limit
}

// TotalPages is ceil(total/limit).
func (p Pagination) TotalPages(total int64) int64 {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	limit := int64(p.Limit)
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

// Query bundles everything a store needs to serve one listing.
type Query struct {
	Filter     Filter
	Sort       Sort
	Pagination Pagination
}

// dateLayouts are tried in order; layouts without a zone are read in the
// caller's location.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Parse applies the listing parsing policy. It never fails: malformed values
// are dropped or replaced by defaults. A nil loc means time.Local.
func Parse(p models.ListParams, loc *time.Location) Query {
	if loc == nil {
		loc = time.Local
	}

	f := Filter{
		Search:         strings.TrimSpace(p.Search),
		Regions:        SplitList(p.Region),
		Genders:        SplitList(p.Gender),
		Categories:     SplitList(p.Category),
		Tags:           SplitList(p.Tags),
		PaymentMethods: SplitList(p.Payment),
		AgeMin:         parseIntPtr(p.AgeMin),
		AgeMax:         parseIntPtr(p.AgeMax),
	}
	if f.AgeMin != nil && f.AgeMax != nil && *f.AgeMin > *f.AgeMax {
		f.AgeMin, f.AgeMax = nil, nil
	}

	if from, ok := parseDate(p.StartDate, loc); ok {
		f.From = &from
	}
	if to, ok := parseDate(p.EndDate, loc); ok {
		end := endOfDay(to, loc)
		f.To = &end
	}

	return Query{
		Filter:     f,
		Sort:       parseSort(p.SortBy, p.SortOrder),
		Pagination: Pagination{Page: positiveOr(p.Page, DefaultPage), Limit: positiveOr(p.Limit, DefaultLimit)},
	}
}

// SplitList splits a comma-separated parameter, trimming whitespace and
// dropping empty tokens. It returns nil when nothing is left.
func SplitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseSort(by, order string) Sort {
	field, ok := sortable[by]
	if !ok {
		field = FieldDate
	}
	return Sort{Field: field, Descending: order != "asc"}
}

func positiveOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func parseIntPtr(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func parseDate(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// endOfDay returns the last millisecond of t's calendar day in loc.
func endOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
}
