package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/salesboard/internal/service/query"
)

// FilterDocument translates a predicate into a MongoDB filter. Clauses on
// different fields become top-level keys, which MongoDB combines with AND.
func FilterDocument(p query.Predicate) bson.D {
	filter := bson.D{}
	for _, c := range p.Clauses {
		if e, ok := clauseElement(c); ok {
			filter = append(filter, e)
		}
	}
	return filter
}

// SortDocument orders by the requested field, then by _id so that ties keep a
// stable order across pages.
func SortDocument(s query.Sort) bson.D {
	dir := 1
	if s.Descending {
		dir = -1
	}
	doc := bson.D{{Key: string(s.Field), Value: dir}}
	if s.Field != query.FieldID {
		doc = append(doc, bson.E{Key: string(query.FieldID), Value: 1})
	}
	return doc
}

func clauseElement(c query.Clause) (bson.E, bool) {
	switch c := c.(type) {
	case query.TextSearch:
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(c.Text), Options: "i"}
		alternatives := make(bson.A, 0, len(c.Fields))
		for _, f := range c.Fields {
			alternatives = append(alternatives, bson.D{{Key: string(f), Value: pattern}})
		}
		return bson.E{Key: "$or", Value: alternatives}, true

	case query.InSet:
		values := make(bson.A, 0, len(c.Values))
		for _, v := range c.Values {
			values = append(values, v)
		}
		return bson.E{Key: string(c.Field), Value: bson.D{{Key: "$in", Value: values}}}, true

	case query.IntRange:
		bounds := bson.D{}
		if c.Min != nil {
			bounds = append(bounds, bson.E{Key: "$gte", Value: *c.Min})
		}
		if c.Max != nil {
			bounds = append(bounds, bson.E{Key: "$lte", Value: *c.Max})
		}
		return bson.E{Key: string(c.Field), Value: bounds}, len(bounds) > 0

	case query.TimeRange:
		bounds := bson.D{}
		if c.From != nil {
			bounds = append(bounds, bson.E{Key: "$gte", Value: *c.From})
		}
		if c.To != nil {
			bounds = append(bounds, bson.E{Key: "$lte", Value: *c.To})
		}
		return bson.E{Key: string(c.Field), Value: bounds}, len(bounds) > 0
	}
	return bson.E{}, false
}
