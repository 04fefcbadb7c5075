package odoo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Relation_SetAndUnset(t *testing.T) {
	r := Record{
		"partner_id": []any{float64(42), "Acme Corp"},
		"user_id":    false,
	}

	rel, ok := r.Relation("partner_id")
	require.True(t, ok)
	assert.Equal(t, int64(42), rel.ID)
	assert.Equal(t, "Acme Corp", rel.Name)

	// The unset marker is the literal false, not a missing key. A falsy
	// check would also swallow legitimate values; the decode is tag-based.
	_, ok = r.Relation("user_id")
	assert.False(t, ok)

	_, ok = r.Relation("missing")
	assert.False(t, ok)
}

func TestRecord_RelationOrUnknown(t *testing.T) {
	r := Record{"partner_id": false}

	rel := r.RelationOrUnknown("partner_id")
	assert.Equal(t, int64(0), rel.ID)
	assert.Equal(t, UnknownLabel, rel.Name)
}

func TestRecord_NumericAccessorsTolerateUnset(t *testing.T) {
	r := Record{
		"amount_total": 199.99,
		"quantity":     false,
	}

	assert.Equal(t, 199.99, r.Float("amount_total"))
	assert.Equal(t, 0.0, r.Float("quantity"))
	assert.Equal(t, 0.0, r.Float("missing"))
	assert.True(t, r.Amount("quantity").IsZero())
}

func TestRecord_ID_DecodesJSONNumbers(t *testing.T) {
	// JSON decodes numbers as float64.
	r := Record{"id": float64(1057)}
	assert.Equal(t, int64(1057), r.ID())
}

func TestRecord_Date(t *testing.T) {
	r := Record{
		"date":          "2025-03-15",
		"date_maturity": "2025-03-15 13:45:00",
		"unset":         false,
	}

	d, ok := r.Date("date")
	require.True(t, ok)
	assert.Equal(t, "2025-03-15", d.Format(DateLayout))

	// Datetimes truncate to their calendar date.
	d, ok = r.Date("date_maturity")
	require.True(t, ok)
	assert.Equal(t, "2025-03-15", d.Format(DateLayout))

	_, ok = r.Date("unset")
	assert.False(t, ok)
}
