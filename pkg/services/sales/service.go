package sales

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/erptools/odoo-insight/pkg/models/domain"
	"github.com/erptools/odoo-insight/pkg/store/odoo"
)

const (
	orderModel = "sale.order"
	lineModel  = "sale.order.line"

	// Product groupings are truncated to the strongest sellers; customer and
	// salesperson groupings return every group.
	topProducts = 10
)

var searchFields = []string{
	"name", "partner_id", "date_order", "amount_total",
	"state", "invoice_status", "user_id", "order_line",
}

// Service implements the sales reporting operations.
type Service struct {
	gw odoo.Gateway
}

func NewService(gw odoo.Gateway) *Service {
	return &Service{gw: gw}
}

// SearchOrders lists sales orders matching the filter, with pagination
// metadata from an extra unlimited count call.
func (s *Service) SearchOrders(ctx context.Context, filter domain.SalesOrderFilter) (*domain.SearchResult, error) {
	filter.Normalize()

	d, err := buildOrderDomain(filter)
	if err != nil {
		return nil, err
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

// CreateOrder creates a sales order with its lines and returns the assigned
// reference.
func (s *Service) CreateOrder(ctx context.Context, order domain.SalesOrderCreate) (*domain.Created, error) {
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
			"product_id":      line.ProductID,
			"product_uom_qty": line.Quantity,
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

// AnalyzePerformance compares the requested window against the immediately
// preceding window of identical length, optionally rolled up by product,
// customer or salesperson.
func (s *Service) AnalyzePerformance(ctx context.Context, params domain.SalesPerformanceInput) (*domain.SalesPerformance, error) {
	dateFrom, err := odoo.ParseDate("date_from", params.DateFrom)
	if err != nil {
		return nil, err
	}
	dateTo, err := odoo.ParseDate("date_to", params.DateTo)
	if err != nil {
		return nil, err
	}
	switch params.GroupBy {
	case "", "product", "customer", "salesperson":
	default:
		return nil, odoo.NewValidationError("group_by", params.GroupBy,
			"expected one of product, customer, salesperson")
	}

	currentDomain := odoo.NewDomain(
		odoo.Cond("date_order", odoo.OpGte, params.DateFrom),
		odoo.Cond("date_order", odoo.OpLte, params.DateTo),
		odoo.Cond("state", odoo.OpIn, []string{"sale", "done"}),
	)
	current, err := s.gw.Fetch(ctx, orderModel, currentDomain, odoo.FetchOptions{
		Fields: []string{"name", "partner_id", "date_order", "amount_total", "user_id"},
	})
	if err != nil {
		return nil, err
	}

	prevFrom, prevTo := previousWindow(dateFrom, dateTo)
	prevDomain := odoo.NewDomain(
		odoo.Cond("date_order", odoo.OpGte, prevFrom.Format(odoo.DateLayout)),
		odoo.Cond("date_order", odoo.OpLte, prevTo.Format(odoo.DateLayout)),
		odoo.Cond("state", odoo.OpIn, []string{"sale", "done"}),
	)
	previous, err := s.gw.Fetch(ctx, orderModel, prevDomain, odoo.FetchOptions{
		Fields: []string{"amount_total"},
	})
	if err != nil {
		return nil, err
	}

	currentTotal := sumAmounts(current.Records, "amount_total")
	previousTotal := sumAmounts(previous.Records, "amount_total")

	perf := &domain.SalesPerformance{
		Period: domain.Period{From: params.DateFrom, To: params.DateTo},
		Summary: domain.PerformanceSummary{
			OrderCount:  len(current.Records),
			TotalAmount: currentTotal.InexactFloat64(),
			PreviousPeriod: domain.PreviousPeriod{
				From:        prevFrom.Format(odoo.DateLayout),
				To:          prevTo.Format(odoo.DateLayout),
				OrderCount:  len(previous.Records),
				TotalAmount: previousTotal.InexactFloat64(),
			},
			PercentChange: percentChange(currentTotal, previousTotal),
		},
	}

	grouped, err := s.groupOrders(ctx, params.GroupBy, current.Records)
	if err != nil {
		return nil, err
	}
	perf.GroupedData = grouped

	zerolog.Ctx(ctx).Debug().
		Int("orders", len(current.Records)).
		Str("group_by", params.GroupBy).
		Msg("sales performance computed")

	return perf, nil
}

func buildOrderDomain(filter domain.SalesOrderFilter) (odoo.Domain, error) {
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
	return d, nil
}

// previousWindow computes the immediately preceding window of identical
// length: it ends the day before dateFrom and spans the same delta.
func previousWindow(dateFrom, dateTo time.Time) (time.Time, time.Time) {
	delta := dateTo.Sub(dateFrom)
	prevTo := dateFrom.AddDate(0, 0, -1)
	prevFrom := prevTo.Add(-delta)
	return prevFrom, prevTo
}

// percentChange is (current-previous)/previous*100 rounded to two decimals,
// and exactly zero when there is no previous total to compare against.
func percentChange(current, previous decimal.Decimal) float64 {
	if previous.Sign() <= 0 {
		return 0
	}
	change := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
	return change.Round(2).InexactFloat64()
}

func sumAmounts(records []odoo.Record, field string) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount(field))
	}
	return total
}

func (s *Service) groupOrders(ctx context.Context, groupBy string, orders []odoo.Record) (*domain.GroupedData, error) {
	switch groupBy {
	case "product":
		products, err := s.groupByProduct(ctx, orders)
		if err != nil {
			return nil, err
		}
		return &domain.GroupedData{Products: products}, nil
	case "customer":
		return &domain.GroupedData{Customers: groupByRelation(orders, "partner_id")}, nil
	case "salesperson":
		return &domain.GroupedData{Salespersons: groupByRelation(orders, "user_id")}, nil
	default:
		return nil, nil
	}
}

// groupByProduct resolves the matched orders' lines and accumulates quantity
// and amount per product, strongest sellers first, truncated to the top ten.
func (s *Service) groupByProduct(ctx context.Context, orders []odoo.Record) ([]domain.ProductGroup, error) {
	if len(orders) == 0 {
		return []domain.ProductGroup{}, nil
	}

	orderIDs := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID())
	}

	lines, err := s.gw.Fetch(ctx, lineModel,
		odoo.NewDomain(odoo.Cond("order_id", odoo.OpIn, orderIDs)),
		odoo.FetchOptions{Fields: []string{"product_id", "product_uom_qty", "price_subtotal"}},
	)
	if err != nil {
		return nil, err
	}

	type acc struct {
		name     string
		quantity float64
		amount   decimal.Decimal
	}
	byProduct := map[int64]*acc{}
	for _, line := range lines.Records {
		rel := line.RelationOrUnknown("product_id")
		a, ok := byProduct[rel.ID]
		if !ok {
			a = &acc{name: rel.Name, amount: decimal.Zero}
			byProduct[rel.ID] = a
		}
		a.quantity += line.Float("product_uom_qty")
		a.amount = a.amount.Add(line.Amount("price_subtotal"))
	}

	groups := make([]domain.ProductGroup, 0, len(byProduct))
	for id, a := range byProduct {
		groups = append(groups, domain.ProductGroup{
			ID:       id,
			Name:     a.name,
			Quantity: a.quantity,
			Amount:   a.amount.InexactFloat64(),
		})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Amount > groups[j].Amount })
	if len(groups) > topProducts {
		groups = groups[:topProducts]
	}
	return groups, nil
}

// groupByRelation accumulates order count and amount per referenced record
// (customer or salesperson), every group kept, highest amount first.
func groupByRelation(orders []odoo.Record, field string) []domain.PartyGroup {
	type acc struct {
		name   string
		count  int
		amount decimal.Decimal
	}
	byParty := map[int64]*acc{}
	for _, o := range orders {
		rel := o.RelationOrUnknown(field)
		a, ok := byParty[rel.ID]
		if !ok {
			a = &acc{name: rel.Name, amount: decimal.Zero}
			byParty[rel.ID] = a
		}
		a.count++
		a.amount = a.amount.Add(o.Amount("amount_total"))
	}

	groups := make([]domain.PartyGroup, 0, len(byParty))
	for id, a := range byParty {
		groups = append(groups, domain.PartyGroup{
			ID:         id,
			Name:       a.name,
			OrderCount: a.count,
			Amount:     a.amount.InexactFloat64(),
		})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Amount > groups[j].Amount })
	return groups
}
