package odoo

import "time"

// DateLayout is the calendar date format the backend expects everywhere.
const DateLayout = "2006-01-02"

type Operator string

const (
	OpEq    Operator = "="
	OpNeq   Operator = "!="
	OpGt    Operator = ">"
	OpLt    Operator = "<"
	OpGte   Operator = ">="
	OpLte   Operator = "<="
	OpIn    Operator = "in"
	OpNotIn Operator = "not in"
	OpLike  Operator = "like"
	OpILike Operator = "ilike"
)

// Condition is a single field/operator/value predicate.
type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

func Cond(field string, op Operator, value any) Condition {
	return Condition{Field: field, Operator: op, Value: value}
}

func (c Condition) triple() []any {
	return []any{c.Field, string(c.Operator), c.Value}
}

// Domain is the backend's predicate-list query language: an ordered expression
// list of condition triples, optionally prefixed with the boolean operators
// "&" and "|". Top-level conditions combine with an implicit AND.
type Domain []any

// NewDomain builds a domain from plain AND-combined conditions.
func NewDomain(conds ...Condition) Domain {
	d := Domain{}
	for _, c := range conds {
		d = append(d, c.triple())
	}
	return d
}

// With appends one condition to the implicit AND chain.
func (d Domain) With(c Condition) Domain {
	return append(d, c.triple())
}

// WithAll appends every given condition to the implicit AND chain.
func (d Domain) WithAll(conds ...Condition) Domain {
	for _, c := range conds {
		d = append(d, c.triple())
	}
	return d
}

// AndPair emits the explicit prefix form ["&", a, b]. It exists for checks
// where two bounds apply to two different fields of the same record (a start
// and a stop straddling a window) and must be evaluated as a single AND pair
// before any further conditions are combined.
func AndPair(a, b Condition) Domain {
	return Domain{"&", a.triple(), b.triple()}
}

// OrPair emits the explicit prefix form ["|", a, b].
func OrPair(a, b Condition) Domain {
	return Domain{"|", a.triple(), b.triple()}
}

// ParseDate validates value as a YYYY-MM-DD date. On failure it returns a
// ValidationError naming the offending field, so callers short-circuit before
// any remote call is issued.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, NewValidationError(field, value, "expected YYYY-MM-DD")
	}
	return t, nil
}

// DateRange appends inclusive bound conditions for the given record field.
// Empty bounds contribute nothing; each present bound is validated first.
// fromName/toName are the request parameter names used in error messages.
func (d Domain) DateRange(field, fromName, from, toName, to string) (Domain, error) {
	if from != "" {
		if _, err := ParseDate(fromName, from); err != nil {
			return nil, err
		}
		d = d.With(Cond(field, OpGte, from))
	}
	if to != "" {
		if _, err := ParseDate(toName, to); err != nil {
			return nil, err
		}
		d = d.With(Cond(field, OpLte, to))
	}
	return d, nil
}
