package domain

// ProductAvailabilityInput selects the products (and optionally a single
// location) to check stock levels for.
type ProductAvailabilityInput struct {
	ProductIDs []int64 `json:"product_ids"`
	LocationID int64   `json:"location_id,omitempty"`
}

// InventoryLineAdjustment is one counted quantity for a product at a location.
type InventoryLineAdjustment struct {
	ProductID  int64   `json:"product_id"`
	LocationID int64   `json:"location_id"`
	Quantity   float64 `json:"product_qty"`
}

// InventoryAdjustmentCreate carries the data for a stock correction.
type InventoryAdjustmentCreate struct {
	Name            string                    `json:"name"`
	AdjustmentLines []InventoryLineAdjustment `json:"adjustment_lines"`
	Date            string                    `json:"date,omitempty"`
}

// InventoryTurnoverInput parameterises the turnover analysis.
type InventoryTurnoverInput struct {
	DateFrom   string  `json:"date_from"`
	DateTo     string  `json:"date_to"`
	ProductIDs []int64 `json:"product_ids,omitempty"`
	CategoryID int64   `json:"category_id,omitempty"`
}
