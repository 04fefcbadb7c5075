package domain

// DefaultPageSize is the pagination window applied when a filter carries no
// explicit limit.
const DefaultPageSize = 20

// SalesOrderFilter selects sales orders for a search listing.
type SalesOrderFilter struct {
	PartnerID int64  `json:"partner_id,omitempty"`
	DateFrom  string `json:"date_from,omitempty"`
	DateTo    string `json:"date_to,omitempty"`
	State     string `json:"state,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
	Order     string `json:"order,omitempty"`
}

func (f *SalesOrderFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// SalesOrderLineCreate is one line of a sales order to create.
type SalesOrderLineCreate struct {
	ProductID int64    `json:"product_id"`
	Quantity  float64  `json:"product_uom_qty"`
	PriceUnit *float64 `json:"price_unit,omitempty"`
}

// SalesOrderCreate carries the data for creating a sales order.
type SalesOrderCreate struct {
	PartnerID  int64                  `json:"partner_id"`
	OrderLines []SalesOrderLineCreate `json:"order_lines"`
	DateOrder  string                 `json:"date_order,omitempty"`
}

// SalesPerformanceInput parameterises the period-over-period sales analysis.
// GroupBy is one of "product", "customer", "salesperson" or empty.
type SalesPerformanceInput struct {
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
	GroupBy  string `json:"group_by,omitempty"`
}
