package purchase

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/erptools/odoo-insight/pkg/models/domain"
	"github.com/erptools/odoo-insight/pkg/store/odoo"
)

const orderModel = "purchase.order"

var searchFields = []string{
	"name", "partner_id", "date_order", "amount_total",
	"state", "invoice_status", "user_id", "order_line",
	"date_planned", "date_approve",
}

// Service implements the purchasing reporting operations.
type Service struct {
	gw odoo.Gateway
}

func NewService(gw odoo.Gateway) *Service {
	return &Service{gw: gw}
}

// SearchOrders lists purchase orders matching the filter, with pagination
// metadata from an extra unlimited count call.
func (s *Service) SearchOrders(ctx context.Context, filter domain.PurchaseOrderFilter) (*domain.SearchResult, error) {
	filter.Normalize()

	d := odoo.NewDomain()
	if filter.PartnerID != 0 {
		d = d.With(odoo.Cond("partner_id", odoo.OpEq, filter.PartnerID))
	}
	d, err := d.DateRange("date_order", "date_from", filter.DateFrom, "date_to", filter.DateTo)
	if err != nil {
		return nil, err
	}
	if filter.State != "" {
		d = d.With(odoo.Cond("state", odoo.OpEq, filter.State))
	}

	result, err := s.gw.Fetch(ctx, orderModel, d, odoo.FetchOptions{
		Fields:    searchFields,
		Limit:     filter.Limit,
		Offset:    filter.Offset,
		Order:     filter.Order,
		WithCount: true,
	})
	if err != nil {
		return nil, err
	}

	total := len(result.Records)
	if result.TotalCount != nil {
		total = *result.TotalCount
	}
	return &domain.SearchResult{
		Count:      len(result.Records),
		TotalCount: total,
		Records:    result.Records,
	}, nil
}

// CreateOrder creates a purchase order with its lines and returns the
// assigned reference.
func (s *Service) CreateOrder(ctx context.Context, order domain.PurchaseOrderCreate) (*domain.Created, error) {
	values := map[string]any{
		"partner_id": order.PartnerID,
	}

	if order.DateOrder != "" {
		if _, err := odoo.ParseDate("date_order", order.DateOrder); err != nil {
			return nil, err
		}
		values["date_order"] = order.DateOrder
	}

	lines := make([]any, 0, len(order.OrderLines))
	for _, line := range order.OrderLines {
		vals := map[string]any{
			"product_id":  line.ProductID,
			"product_qty": line.Quantity,
		}
		if line.PriceUnit != nil {
			vals["price_unit"] = *line.PriceUnit
		}
		lines = append(lines, []any{0, 0, vals})
	}
	values["order_line"] = lines

	id, err := s.gw.Create(ctx, orderModel, values)
	if err != nil {
		return nil, err
	}

	created, err := s.gw.ReadInContext(ctx, orderModel, []int64{id}, []string{"name"}, odoo.ReadContext{})
	if err != nil {
		return nil, err
	}

	name := ""
	if len(created) > 0 {
		name = created[0].Str("name")
	}
	return &domain.Created{ID: id, Name: name}, nil
}

// AnalyzeSupplierPerformance aggregates confirmed purchases per supplier over
// the window: order volume, spend and delivery punctuality (effective vs
// planned dates), suppliers sorted by spend.
func (s *Service) AnalyzeSupplierPerformance(ctx context.Context, params domain.SupplierPerformanceInput) (*domain.SupplierPerformance, error) {
	if _, err := odoo.ParseDate("date_from", params.DateFrom); err != nil {
		return nil, err
	}
	if _, err := odoo.ParseDate("date_to", params.DateTo); err != nil {
		return nil, err
	}

	d := odoo.NewDomain(
		odoo.Cond("date_order", odoo.OpGte, params.DateFrom),
		odoo.Cond("date_order", odoo.OpLte, params.DateTo),
		odoo.Cond("state", odoo.OpIn, []string{"purchase", "done"}),
	)
	if len(params.SupplierIDs) > 0 {
		d = d.With(odoo.Cond("partner_id", odoo.OpIn, params.SupplierIDs))
	}

	orders, err := s.gw.Fetch(ctx, orderModel, d, odoo.FetchOptions{
		Fields: []string{
			"name", "partner_id", "date_order", "amount_total",
			"date_approve", "date_planned", "effective_date",
		},
	})
	if err != nil {
		return nil, err
	}

	report := aggregateSuppliers(orders.Records)
	report.Period = domain.Period{From: params.DateFrom, To: params.DateTo}
	return report, nil
}

func aggregateSuppliers(orders []odoo.Record) *domain.SupplierPerformance {
	bySupplier := map[int64]*domain.SupplierStats{}
	amounts := map[int64]decimal.Decimal{}
	grandTotal := decimal.Zero

	for _, order := range orders {
		rel := order.RelationOrUnknown("partner_id")
		stats, ok := bySupplier[rel.ID]
		if !ok {
			stats = &domain.SupplierStats{ID: rel.ID, Name: rel.Name}
			bySupplier[rel.ID] = stats
			amounts[rel.ID] = decimal.Zero
		}

		stats.OrderCount++
		amount := order.Amount("amount_total")
		amounts[rel.ID] = amounts[rel.ID].Add(amount)
		grandTotal = grandTotal.Add(amount)

		effective, okEff := order.Date("effective_date")
		planned, okPlan := order.Date("date_planned")
		if okEff && okPlan {
			delay := int(effective.Sub(planned).Hours() / 24)
			stats.AddDelay(delay)
		}
	}

	suppliers := make([]domain.SupplierStats, 0, len(bySupplier))
	for id, stats := range bySupplier {
		stats.TotalAmount = amounts[id].InexactFloat64()
		stats.FinishDelays()
		suppliers = append(suppliers, *stats)
	}
	sort.Slice(suppliers, func(i, j int) bool {
		return suppliers[i].TotalAmount > suppliers[j].TotalAmount
	})

	return &domain.SupplierPerformance{
		Summary: domain.SupplierPerformanceSummary{
			SupplierCount: len(suppliers),
			OrderCount:    len(orders),
			TotalAmount:   grandTotal.InexactFloat64(),
		},
		Suppliers: suppliers,
	}
}
