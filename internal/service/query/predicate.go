package query

import (
	"time"
	"unicode"

	"github.com/mamadbah2/salesboard/internal/domain/models"
)

// Clause is one per-field constraint of a Predicate.
type Clause interface {
	// Matches evaluates the clause against a single record.
	Matches(sale *models.Sale) bool
}

// Predicate is the conjunction of its clauses. The zero value matches every
// record.
type Predicate struct {
	Clauses []Clause
}

// Matches reports whether sale satisfies every clause.
func (p Predicate) Matches(sale *models.Sale) bool {
	for _, c := range p.Clauses {
		if !c.Matches(sale) {
			return false
		}
	}
	return true
}

// TextSearch matches when any of Fields contains Text, ignoring case.
type TextSearch struct {
	Fields []Field
	Text   string
}

// InSet matches when the field (or, for tags, any element of it) equals one of
// Values.
type InSet struct {
	Field  Field
	Values []string
}

// IntRange bounds an integer field inclusively. A nil bound is open.
type IntRange struct {
	Field Field
	Min   *int
	Max   *int
}

// TimeRange bounds a timestamp field inclusively. A nil bound is open.
type TimeRange struct {
	Field Field
	From  *time.Time
	To    *time.Time
}

// Build converts a resolved filter into a predicate. Each non-empty filter
// field contributes exactly one clause; the result shares no memory with f.
func Build(f Filter) Predicate {
	var clauses []Clause

	if f.Search != "" {
		clauses = append(clauses, TextSearch{
			Fields: []Field{FieldCustomerName, FieldPhoneNumber},
			Text:   f.Search,
		})
	}

	sets := []struct {
		field  Field
		values []string
	}{
		{FieldCustomerRegion, f.Regions},
		{FieldGender, f.Genders},
		{FieldProductCategory, f.Categories},
		{FieldTags, f.Tags},
		{FieldPaymentMethod, f.PaymentMethods},
	}
	for _, s := range sets {
		if len(s.values) == 0 {
			continue
		}
		clauses = append(clauses, InSet{Field: s.field, Values: append([]string(nil), s.values...)})
	}

	if f.AgeMin != nil || f.AgeMax != nil {
		clauses = append(clauses, IntRange{Field: FieldAge, Min: copyInt(f.AgeMin), Max: copyInt(f.AgeMax)})
	}

	if f.From != nil || f.To != nil {
		clauses = append(clauses, TimeRange{Field: FieldDate, From: copyTime(f.From), To: copyTime(f.To)})
	}

	return Predicate{Clauses: clauses}
}

// Matches implements Clause. Runes are compared under Unicode simple case
// folding, the folding MongoDB's case-insensitive regexes apply; full
// foldings that change length, such as ß to ss, match on neither side.
func (c TextSearch) Matches(sale *models.Sale) bool {
	needle := []rune(c.Text)
	for _, f := range c.Fields {
		for _, v := range StringValues(sale, f) {
			if containsFold([]rune(v), needle) {
				return true
			}
		}
	}
	return false
}

// Matches implements Clause.
func (c InSet) Matches(sale *models.Sale) bool {
	for _, v := range StringValues(sale, c.Field) {
		for _, want := range c.Values {
			if v == want {
				return true
			}
		}
	}
	return false
}

// Matches implements Clause.
func (c IntRange) Matches(sale *models.Sale) bool {
	v, ok := IntValue(sale, c.Field)
	if !ok {
		return false
	}
	if c.Min != nil && v < *c.Min {
		return false
	}
	if c.Max != nil && v > *c.Max {
		return false
	}
	return true
}

// Matches implements Clause.
func (c TimeRange) Matches(sale *models.Sale) bool {
	if c.Field != FieldDate || sale.Date.IsZero() {
		return false
	}
	if c.From != nil && sale.Date.Before(*c.From) {
		return false
	}
	if c.To != nil && sale.Date.After(*c.To) {
		return false
	}
	return true
}

// StringValues returns the string contents of a field. Tags yield every
// element; scalar fields yield one value, or none when empty.
func StringValues(sale *models.Sale, f Field) []string {
	var v string
	switch f {
	case FieldTags:
		return sale.Tags
	case FieldCustomerName:
		v = sale.CustomerName
	case FieldPhoneNumber:
		v = sale.PhoneNumber
	case FieldGender:
		v = sale.Gender
	case FieldCustomerRegion:
		v = sale.CustomerRegion
	case FieldProductCategory:
		v = sale.ProductCategory
	case FieldPaymentMethod:
		v = sale.PaymentMethod
	}
	if v == "" {
		return nil
	}
	return []string{v}
}

// IntValue returns the value of an integer field.
func IntValue(sale *models.Sale, f Field) (int, bool) {
	switch f {
	case FieldAge:
		return sale.Age, true
	case FieldQuantity:
		return sale.Quantity, true
	case FieldTransactionID:
		return int(sale.TransactionID), true
	}
	return 0, false
}

func containsFold(haystack, needle []rune) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if hasPrefixFold(haystack[i:], needle) {
			return true
		}
	}
	return false
}

func hasPrefixFold(s, prefix []rune) bool {
	for i, r := range prefix {
		if !equalFoldRune(s[i], r) {
			return false
		}
	}
	return true
}

// equalFoldRune walks r's simple case-folding orbit looking for other.
func equalFoldRune(r, other rune) bool {
	if r == other {
		return true
	}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f == other {
			return true
		}
	}
	return false
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func copyTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	t := *v
	return &t
}
