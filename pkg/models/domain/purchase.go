package domain

// PurchaseOrderFilter selects purchase orders for a search listing.
type PurchaseOrderFilter struct {
	PartnerID int64  `json:"partner_id,omitempty"`
	DateFrom  string `json:"date_from,omitempty"`
	DateTo    string `json:"date_to,omitempty"`
	State     string `json:"state,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
	Order     string `json:"order,omitempty"`
}

func (f *PurchaseOrderFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// PurchaseOrderLineCreate is one line of a purchase order to create.
type PurchaseOrderLineCreate struct {
	ProductID int64    `json:"product_id"`
	Quantity  float64  `json:"product_qty"`
	PriceUnit *float64 `json:"price_unit,omitempty"`
}

// PurchaseOrderCreate carries the data for creating a purchase order.
type PurchaseOrderCreate struct {
	PartnerID  int64                     `json:"partner_id"`
	OrderLines []PurchaseOrderLineCreate `json:"order_lines"`
	DateOrder  string                    `json:"date_order,omitempty"`
}

// SupplierPerformanceInput parameterises the supplier delivery analysis.
type SupplierPerformanceInput struct {
	DateFrom    string  `json:"date_from"`
	DateTo      string  `json:"date_to"`
	SupplierIDs []int64 `json:"supplier_ids,omitempty"`
}
