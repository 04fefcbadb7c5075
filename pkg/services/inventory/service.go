package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/erptools/odoo-insight/pkg/models/domain"
	"github.com/erptools/odoo-insight/pkg/store/odoo"
)

const (
	productModel   = "product.product"
	moveModel      = "stock.move"
	locationModel  = "stock.location"
	inventoryModel = "stock.inventory"
	quantModel     = "stock.quant"
)

// Service implements the inventory reporting operations.
type Service struct {
	gw odoo.Gateway
}

func NewService(gw odoo.Gateway) *Service {
	return &Service{gw: gw}
}

// CheckAvailability reports the stock position of the given products,
// optionally scoped to a single location. A failed read for one product is
// reported inline on that product instead of failing the whole report.
func (s *Service) CheckAvailability(ctx context.Context, params domain.ProductAvailabilityInput) (*domain.AvailabilityReport, error) {
	products, err := s.gw.Fetch(ctx, productModel,
		odoo.NewDomain(odoo.Cond("id", odoo.OpIn, params.ProductIDs)),
		odoo.FetchOptions{Fields: []string{"name", "default_code", "type", "uom_id"}},
	)
	if err != nil {
		return nil, err
	}
	if len(products.Records) == 0 {
		return nil, fmt.Errorf("no products found for the given ids")
	}

	names := make(map[int64]string, len(products.Records))
	for _, p := range products.Records {
		names[p.ID()] = p.Str("name")
	}

	rc := odoo.ReadContext{LocationID: params.LocationID}
	report := &domain.AvailabilityReport{
		Products: make(map[int64]domain.ProductAvailability, len(params.ProductIDs)),
	}

	qtyFields := []string{"qty_available", "virtual_available", "incoming_qty", "outgoing_qty"}
	for _, id := range params.ProductIDs {
		name, known := names[id]
		if !known {
			name = fmt.Sprintf("Product %d", id)
		}

		rows, err := s.gw.ReadInContext(ctx, productModel, []int64{id}, qtyFields, rc)
		if err != nil || len(rows) == 0 {
			entry := domain.ProductAvailability{Name: name, Error: "product not found"}
			if err != nil {
				entry.Error = err.Error()
			}
			report.Products[id] = entry
			continue
		}

		row := rows[0]
		report.Products[id] = domain.ProductAvailability{
			Name:             name,
			QtyAvailable:     row.Float("qty_available"),
			VirtualAvailable: row.Float("virtual_available"),
			IncomingQty:      row.Float("incoming_qty"),
			OutgoingQty:      row.Float("outgoing_qty"),
		}
	}

	if params.LocationID != 0 {
		report.Location = s.locationInfo(ctx, params.LocationID)
	}
	return report, nil
}

// locationInfo is best-effort; an unreadable location degrades to a
// placeholder instead of failing the availability report.
func (s *Service) locationInfo(ctx context.Context, locationID int64) *domain.LocationInfo {
	locations, err := s.gw.Fetch(ctx, locationModel,
		odoo.NewDomain(odoo.Cond("id", odoo.OpEq, locationID)),
		odoo.FetchOptions{Fields: []string{"name", "complete_name"}},
	)
	if err != nil || len(locations.Records) == 0 {
		return &domain.LocationInfo{ID: locationID, Name: "Unknown location"}
	}
	loc := locations.Records[0]
	return &domain.LocationInfo{
		ID:           loc.ID(),
		Name:         loc.Str("name"),
		CompleteName: loc.Str("complete_name"),
	}
}

// CreateAdjustment applies a stock correction. The backend exposes one of two
// flows depending on its version; the model registry is probed once and the
// outcome drives the whole request.
func (s *Service) CreateAdjustment(ctx context.Context, adjustment domain.InventoryAdjustmentCreate) (*domain.AdjustmentResult, error) {
	if adjustment.Date != "" {
		if _, err := odoo.ParseDate("date", adjustment.Date); err != nil {
			return nil, err
		}
	}

	legacyFlow, err := s.gw.ModelExists(ctx, inventoryModel)
	if err != nil {
		return nil, err
	}

	if legacyFlow {
		return s.adjustViaInventory(ctx, adjustment)
	}
	return s.adjustViaQuants(ctx, adjustment)
}

func (s *Service) adjustViaInventory(ctx context.Context, adjustment domain.InventoryAdjustmentCreate) (*domain.AdjustmentResult, error) {
	values := map[string]any{"name": adjustment.Name}
	if adjustment.Date != "" {
		values["date"] = adjustment.Date
	}

	inventoryID, err := s.gw.Create(ctx, inventoryModel, values)
	if err != nil {
		return nil, err
	}

	for _, line := range adjustment.AdjustmentLines {
		_, err := s.gw.Create(ctx, "stock.inventory.line", map[string]any{
			"inventory_id": inventoryID,
			"product_id":   line.ProductID,
			"location_id":  line.LocationID,
			"product_qty":  line.Quantity,
		})
		if err != nil {
			return nil, err
		}
	}

	if _, err := s.gw.Call(ctx, inventoryModel, "action_validate", []any{[]int64{inventoryID}}, nil); err != nil {
		return nil, err
	}
	return &domain.AdjustmentResult{InventoryID: inventoryID, Name: adjustment.Name}, nil
}

func (s *Service) adjustViaQuants(ctx context.Context, adjustment domain.InventoryAdjustmentCreate) (*domain.AdjustmentResult, error) {
	quantIDs := make([]int64, 0, len(adjustment.AdjustmentLines))

	for _, line := range adjustment.AdjustmentLines {
		existing, err := s.gw.Fetch(ctx, quantModel,
			odoo.NewDomain(
				odoo.Cond("product_id", odoo.OpEq, line.ProductID),
				odoo.Cond("location_id", odoo.OpEq, line.LocationID),
			),
			odoo.FetchOptions{Fields: []string{"id", "quantity"}},
		)
		if err != nil {
			return nil, err
		}

		if len(existing.Records) > 0 {
			quantID := existing.Records[0].ID()
			err := s.gw.Write(ctx, quantModel, []int64{quantID}, map[string]any{
				"inventory_quantity": line.Quantity,
			})
			if err != nil {
				return nil, err
			}
			quantIDs = append(quantIDs, quantID)
			continue
		}

		quantID, err := s.gw.Create(ctx, quantModel, map[string]any{
			"product_id":         line.ProductID,
			"location_id":        line.LocationID,
			"inventory_quantity": line.Quantity,
		})
		if err != nil {
			return nil, err
		}
		quantIDs = append(quantIDs, quantID)
	}

	if _, err := s.gw.Call(ctx, quantModel, "action_apply_inventory", []any{quantIDs}, nil); err != nil {
		return nil, err
	}
	return &domain.AdjustmentResult{QuantIDs: quantIDs, Name: adjustment.Name}, nil
}

// AnalyzeTurnover computes the turnover ratio and days of inventory for every
// product in scope. COGS is the cost of outgoing moves to customer locations
// within the window; average inventory value is the mean of the stock
// valuation at both window ends, falling back to quantity × standard cost
// only once the valuation read has failed.
func (s *Service) AnalyzeTurnover(ctx context.Context, params domain.InventoryTurnoverInput) (*domain.TurnoverReport, error) {
	dateFrom, err := odoo.ParseDate("date_from", params.DateFrom)
	if err != nil {
		return nil, err
	}
	dateTo, err := odoo.ParseDate("date_to", params.DateTo)
	if err != nil {
		return nil, err
	}

	productDomain := odoo.NewDomain(odoo.Cond("type", odoo.OpEq, "product"))
	if len(params.ProductIDs) > 0 {
		productDomain = productDomain.With(odoo.Cond("id", odoo.OpIn, params.ProductIDs))
	}
	if params.CategoryID != 0 {
		productDomain = productDomain.With(odoo.Cond("categ_id", odoo.OpEq, params.CategoryID))
	}

	products, err := s.gw.Fetch(ctx, productModel, productDomain, odoo.FetchOptions{
		Fields: []string{"name", "default_code", "categ_id", "standard_price"},
	})
	if err != nil {
		return nil, err
	}

	periodDays := int(dateTo.Sub(dateFrom).Hours()/24) + 1
	report := &domain.TurnoverReport{
		Period:   domain.Period{From: params.DateFrom, To: params.DateTo, Days: periodDays},
		Products: []domain.ProductTurnover{},
	}

	totalCOGS := decimal.Zero
	totalAvgValue := decimal.Zero

	// The valuation capability is decided once: the first failed valuation
	// read switches the whole request to the quantity estimate.
	valuationAvailable := true

	for _, product := range products.Records {
		productID := product.ID()
		standardPrice := product.Amount("standard_price")

		cogs, err := s.productCOGS(ctx, productID, params.DateFrom, params.DateTo, standardPrice)
		if err != nil {
			return nil, err
		}

		var avgValue decimal.Decimal
		if valuationAvailable {
			avgValue, err = s.valuationAverage(ctx, productID, dateFrom, dateTo)
			if err != nil {
				zerolog.Ctx(ctx).Debug().Err(err).Int64("product_id", productID).
					Msg("stock valuation unavailable, estimating from quantities")
				valuationAvailable = false
			}
		}
		if !valuationAvailable {
			avgValue, err = s.quantityAverage(ctx, productID, dateFrom, dateTo, standardPrice)
			if err != nil {
				return nil, err
			}
		}

		ratio, daysInventory := turnoverMetrics(cogs, avgValue, periodDays)

		category := odoo.UnknownLabel
		if rel, ok := product.Relation("categ_id"); ok {
			category = rel.Name
		}

		report.Products = append(report.Products, domain.ProductTurnover{
			ID:                productID,
			Name:              product.Str("name"),
			DefaultCode:       product.Str("default_code"),
			Category:          category,
			COGS:              cogs.InexactFloat64(),
			AvgInventoryValue: avgValue.InexactFloat64(),
			TurnoverRatio:     ratio,
			DaysInventory:     daysInventory,
		})

		totalCOGS = totalCOGS.Add(cogs)
		totalAvgValue = totalAvgValue.Add(avgValue)
	}

	sort.Slice(report.Products, func(i, j int) bool {
		return report.Products[i].TurnoverRatio > report.Products[j].TurnoverRatio
	})

	overallRatio, overallDays := turnoverMetrics(totalCOGS, totalAvgValue, periodDays)
	report.Summary = domain.TurnoverSummary{
		ProductCount:         len(products.Records),
		TotalCOGS:            totalCOGS.InexactFloat64(),
		TotalAvgValue:        totalAvgValue.InexactFloat64(),
		OverallTurnoverRatio: overallRatio,
		OverallDaysInventory: overallDays,
	}
	return report, nil
}

// productCOGS sums quantity × unit price over outgoing moves destined to a
// customer-type location; moves without a price fall back to standard cost.
func (s *Service) productCOGS(ctx context.Context, productID int64, dateFrom, dateTo string, standardPrice decimal.Decimal) (decimal.Decimal, error) {
	moves, err := s.gw.Fetch(ctx, moveModel,
		odoo.NewDomain(
			odoo.Cond("product_id", odoo.OpEq, productID),
			odoo.Cond("date", odoo.OpGte, dateFrom),
			odoo.Cond("date", odoo.OpLte, dateTo),
			odoo.Cond("location_dest_id.usage", odoo.OpEq, "customer"),
		),
		odoo.FetchOptions{Fields: []string{"product_uom_qty", "price_unit"}},
	)
	if err != nil {
		return decimal.Zero, err
	}

	cogs := decimal.Zero
	for _, move := range moves.Records {
		qty := decimal.NewFromFloat(move.Float("product_uom_qty"))
		price := move.Amount("price_unit")
		if price.IsZero() {
			price = standardPrice
		}
		cogs = cogs.Add(qty.Mul(price))
	}
	return cogs, nil
}

func (s *Service) valuationAverage(ctx context.Context, productID int64, dateFrom, dateTo time.Time) (decimal.Decimal, error) {
	start, err := s.readAsOf(ctx, productID, "stock_value", dateFrom)
	if err != nil {
		return decimal.Zero, err
	}
	end, err := s.readAsOf(ctx, productID, "stock_value", dateTo)
	if err != nil {
		return decimal.Zero, err
	}
	return start.Add(end).Div(decimal.NewFromInt(2)), nil
}

func (s *Service) quantityAverage(ctx context.Context, productID int64, dateFrom, dateTo time.Time, standardPrice decimal.Decimal) (decimal.Decimal, error) {
	start, err := s.readAsOf(ctx, productID, "qty_available", dateFrom)
	if err != nil {
		return decimal.Zero, err
	}
	end, err := s.readAsOf(ctx, productID, "qty_available", dateTo)
	if err != nil {
		return decimal.Zero, err
	}
	avgQty := start.Add(end).Div(decimal.NewFromInt(2))
	return avgQty.Mul(standardPrice), nil
}

func (s *Service) readAsOf(ctx context.Context, productID int64, field string, asOf time.Time) (decimal.Decimal, error) {
	rows, err := s.gw.ReadInContext(ctx, productModel, []int64{productID}, []string{field}, odoo.ReadContext{AsOf: asOf})
	if err != nil {
		return decimal.Zero, err
	}
	if len(rows) == 0 {
		return decimal.Zero, nil
	}
	return rows[0].Amount(field), nil
}

// turnoverMetrics keeps the zero-on-non-positive-denominator policy: both the
// ratio and days of inventory are exactly zero rather than negative or
// undefined.
func turnoverMetrics(cogs, avgValue decimal.Decimal, periodDays int) (float64, float64) {
	if avgValue.Sign() <= 0 {
		return 0, 0
	}
	ratio := cogs.Div(avgValue)
	if ratio.Sign() <= 0 {
		return 0, 0
	}
	days := decimal.NewFromInt(int64(periodDays)).Div(ratio)
	return ratio.InexactFloat64(), days.InexactFloat64()
}
