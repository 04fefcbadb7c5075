package odoo

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnknownLabel is the display name used when a relation field is unset.
const UnknownLabel = "Unknown"

// Relation is a reference to another record, carrying its identifier and
// display label. The backend serializes these as a [id, name] pair, or the
// literal false when unset.
type Relation struct {
	ID   int64
	Name string
}

// Record is one row returned by the backend: an opaque mapping from field
// name to value. Unset fields commonly hold the literal false rather than
// being absent.
type Record map[string]any

func (r Record) ID() int64 {
	return asInt(r["id"])
}

// Str returns the string value of a field, or "" when unset.
func (r Record) Str(field string) string {
	s, _ := r[field].(string)
	return s
}

// Float returns the numeric value of a field, or 0 when unset.
func (r Record) Float(field string) float64 {
	return asFloat(r[field])
}

// Int returns the integer value of a field, or 0 when unset.
func (r Record) Int(field string) int64 {
	return asInt(r[field])
}

// Amount returns the monetary value of a field as a decimal.
func (r Record) Amount(field string) decimal.Decimal {
	return decimal.NewFromFloat(asFloat(r[field]))
}

// Relation decodes a relation field. The second return reports whether a
// related record is set; callers must branch on it rather than on zero values.
func (r Record) Relation(field string) (Relation, bool) {
	pair, ok := r[field].([]any)
	if !ok || len(pair) != 2 {
		return Relation{}, false
	}
	name, _ := pair[1].(string)
	return Relation{ID: asInt(pair[0]), Name: name}, true
}

// RelationOrUnknown resolves a relation field with the fallback identity
// (id 0, UnknownLabel) when the relation is unset.
func (r Record) RelationOrUnknown(field string) Relation {
	rel, ok := r.Relation(field)
	if !ok {
		return Relation{ID: 0, Name: UnknownLabel}
	}
	return rel
}

// Date parses a date or datetime field. Datetime values are truncated to
// their calendar date.
func (r Record) Date(field string) (time.Time, bool) {
	s, ok := r[field].(string)
	if !ok || len(s) < len(DateLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s[:len(DateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func asInt(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	default:
		return 0
	}
}
