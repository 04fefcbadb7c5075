package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/erptools/odoo-insight/pkg/models/domain"
	"github.com/erptools/odoo-insight/pkg/store/odoo"
)

type mockGateway struct{ mock.Mock }

func (m *mockGateway) Fetch(ctx context.Context, model string, d odoo.Domain, opts odoo.FetchOptions) (odoo.FetchResult, error) {
	args := m.Called(ctx, model, d, opts)
	return args.Get(0).(odoo.FetchResult), args.Error(1)
}

func (m *mockGateway) ReadInContext(ctx context.Context, model string, ids []int64, fields []string, rc odoo.ReadContext) ([]odoo.Record, error) {
	args := m.Called(ctx, model, ids, fields, rc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]odoo.Record), args.Error(1)
}

func (m *mockGateway) Create(ctx context.Context, model string, values map[string]any) (int64, error) {
	args := m.Called(ctx, model, values)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockGateway) Write(ctx context.Context, model string, ids []int64, values map[string]any) error {
	args := m.Called(ctx, model, ids, values)
	return args.Error(0)
}

func (m *mockGateway) Call(ctx context.Context, model, method string, args []any, kwargs map[string]any) (any, error) {
	call := m.Called(ctx, model, method, args, kwargs)
	return call.Get(0), call.Error(1)
}

func (m *mockGateway) ModelExists(ctx context.Context, model string) (bool, error) {
	args := m.Called(ctx, model)
	return args.Bool(0), args.Error(1)
}

func (m *mockGateway) ModelFields(ctx context.Context, model string) (map[string]odoo.FieldMeta, error) {
	args := m.Called(ctx, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]odoo.FieldMeta), args.Error(1)
}

func TestCheckAvailability_PerProductErrorsStayInline(t *testing.T) {
	gw := new(mockGateway)
	gw.On("Fetch", mock.Anything, "product.product", mock.Anything, mock.Anything).
		Return(odoo.FetchResult{Records: []odoo.Record{
			{"id": float64(1), "name": "Widget"},
			{"id": float64(2), "name": "Gadget"},
		}}, nil)
	gw.On("ReadInContext", mock.Anything, "product.product", []int64{1}, mock.Anything, odoo.ReadContext{}).
		Return([]odoo.Record{{"id": float64(1), "qty_available": 12.0, "virtual_available": 10.0, "incoming_qty": 3.0, "outgoing_qty": 5.0}}, nil)
	gw.On("ReadInContext", mock.Anything, "product.product", []int64{2}, mock.Anything, odoo.ReadContext{}).
		Return(nil, errors.New("read failed"))

	svc := NewService(gw)
	report, err := svc.CheckAvailability(context.Background(), domain.ProductAvailabilityInput{ProductIDs: []int64{1, 2}})

	require.NoError(t, err)
	require.Len(t, report.Products, 2)
	assert.Equal(t, 12.0, report.Products[1].QtyAvailable)
	assert.Empty(t, report.Products[1].Error)
	assert.Equal(t, "Gadget", report.Products[2].Name)
	assert.Equal(t, "read failed", report.Products[2].Error)
	assert.Nil(t, report.Location)
}

func TestCheckAvailability_NoProductsFound(t *testing.T) {
	gw := new(mockGateway)
	gw.On("Fetch", mock.Anything, "product.product", mock.Anything, mock.Anything).
		Return(odoo.FetchResult{Records: []odoo.Record{}}, nil)

	svc := NewService(gw)
	_, err := svc.CheckAvailability(context.Background(), domain.ProductAvailabilityInput{ProductIDs: []int64{99}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no products found")
}

func TestCheckAvailability_LocationScopesReads(t *testing.T) {
	gw := new(mockGateway)
	gw.On("Fetch", mock.Anything, "product.product", mock.Anything, mock.Anything).
		Return(odoo.FetchResult{Records: []odoo.Record{{"id": float64(1), "name": "Widget"}}}, nil).Once()
	gw.On("ReadInContext", mock.Anything, "product.product", []int64{1}, mock.Anything, odoo.ReadContext{LocationID: 8}).
		Return([]odoo.Record{{"id": float64(1), "qty_available": 4.0}}, nil)
	gw.On("Fetch", mock.Anything, "stock.location", mock.Anything, mock.Anything).
		Return(odoo.FetchResult{Records: []odoo.Record{
			{"id": float64(8), "name": "Shelf A", "complete_name": "WH/Stock/Shelf A"},
		}}, nil).Once()

	svc := NewService(gw)
	report, err := svc.CheckAvailability(context.Background(), domain.ProductAvailabilityInput{
		ProductIDs: []int64{1}, LocationID: 8,
	})

	require.NoError(t, err)
	require.NotNil(t, report.Location)
	assert.Equal(t, "Shelf A", report.Location.Name)
	assert.Equal(t, "WH/Stock/Shelf A", report.Location.CompleteName)
	gw.AssertExpectations(t)
}

func TestCreateAdjustment_LegacyInventoryFlow(t *testing.T) {
	gw := new(mockGateway)
	gw.On("ModelExists", mock.Anything, "stock.inventory").Return(true, nil).Once()
	gw.On("Create", mock.Anything, "stock.inventory", map[string]any{"name": "Count 2025-03"}).
		Return(int64(12), nil)
	gw.On("Create", mock.Anything, "stock.inventory.line", map[string]any{
		"inventory_id": int64(12),
		"product_id":   int64(1),
		"location_id":  int64(8),
		"product_qty":  40.0,
	}).Return(int64(70), nil)
	gw.On("Call", mock.Anything, "stock.inventory", "action_validate", []any{[]int64{12}}, map[string]any(nil)).
		Return(true, nil)

	svc := NewService(gw)
	result, err := svc.CreateAdjustment(context.Background(), domain.InventoryAdjustmentCreate{
		Name:            "Count 2025-03",
		AdjustmentLines: []domain.InventoryLineAdjustment{{ProductID: 1, LocationID: 8, Quantity: 40}},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(12), result.InventoryID)
	assert.Empty(t, result.QuantIDs)
	gw.AssertExpectations(t)
}

func TestCreateAdjustment_QuantFlowUpdatesExistingAndCreatesMissing(t *testing.T) {
	gw := new(mockGateway)
	gw.On("ModelExists", mock.Anything, "stock.inventory").Return(false, nil).Once()

	// First line: a quant already exists and is written to.
	gw.On("Fetch", mock.Anything, "stock.quant",
		odoo.NewDomain(
			odoo.Cond("product_id", odoo.OpEq, int64(1)),
			odoo.Cond("location_id", odoo.OpEq, int64(8)),
		), mock.Anything).
		Return(odoo.FetchResult{Records: []odoo.Record{{"id": float64(31), "quantity": 35.0}}}, nil)
	gw.On("Write", mock.Anything, "stock.quant", []int64{31}, map[string]any{"inventory_quantity": 40.0}).
		Return(nil)

	// Second line: no quant yet, one is created.
	gw.On("Fetch", mock.Anything, "stock.quant",
		odoo.NewDomain(
			odoo.Cond("product_id", odoo.OpEq, int64(2)),
			odoo.Cond("location_id", odoo.OpEq, int64(8)),
		), mock.Anything).
		Return(odoo.FetchResult{Records: []odoo.Record{}}, nil)
	gw.On("Create", mock.Anything, "stock.quant", map[string]any{
		"product_id":         int64(2),
		"location_id":        int64(8),
		"inventory_quantity": 5.0,
	}).Return(int64(32), nil)

	gw.On("Call", mock.Anything, "stock.quant", "action_apply_inventory", []any{[]int64{31, 32}}, map[string]any(nil)).
		Return(true, nil)

	svc := NewService(gw)
	result, err := svc.CreateAdjustment(context.Background(), domain.InventoryAdjustmentCreate{
		Name: "Cycle count",
		AdjustmentLines: []domain.InventoryLineAdjustment{
			{ProductID: 1, LocationID: 8, Quantity: 40},
			{ProductID: 2, LocationID: 8, Quantity: 5},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{31, 32}, result.QuantIDs)
	gw.AssertExpectations(t)
}

func TestAnalyzeTurnover_ValuationMetrics(t *testing.T) {
	gw := new(mockGateway)
	gw.On("Fetch", mock.Anything, "product.product", mock.Anything, mock.Anything).
		Return(odoo.FetchResult{Records: []odoo.Record{
			{"id": float64(1), "name": "Widget", "categ_id": []any{float64(3), "Goods"}, "standard_price": 10.0},
		}}, nil)
	// COGS: 30 units at 10 each over the window.
	gw.On("Fetch", mock.Anything, "stock.move", mock.Anything, mock.Anything).
		Return(odoo.FetchResult{Records: []odoo.Record{
			{"product_uom_qty": 30.0, "price_unit": 10.0},
		}}, nil)
	// Valuation at both window ends: 200 and 100, mean 150.
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC)
	gw.On("ReadInContext", mock.Anything, "product.product", []int64{1}, []string{"stock_value"}, odoo.ReadContext{AsOf: from}).
		Return([]odoo.Record{{"stock_value": 200.0}}, nil)
	gw.On("ReadInContext", mock.Anything, "product.product", []int64{1}, []string{"stock_value"}, odoo.ReadContext{AsOf: to}).
		Return([]odoo.Record{{"stock_value": 100.0}}, nil)

	svc := NewService(gw)
	report, err := svc.AnalyzeTurnover(context.Background(), domain.InventoryTurnoverInput{
		DateFrom: "2025-01-01", DateTo: "2025-01-30",
	})

	require.NoError(t, err)
	assert.Equal(t, 30, report.Period.Days)
	require.Len(t, report.Products, 1)

	p := report.Products[0]
	assert.Equal(t, "Goods", p.Category)
	assert.Equal(t, 300.0, p.COGS)
	assert.Equal(t, 150.0, p.AvgInventoryValue)
	assert.Equal(t, 2.0, p.TurnoverRatio)
	assert.Equal(t, 15.0, p.DaysInventory)

	assert.Equal(t, 2.0, report.Summary.OverallTurnoverRatio)
}

func TestAnalyzeTurnover_FallsBackToQuantityEstimateAfterFirstValuationFailure(t *testing.T) {
	gw := new(mockGateway)
	gw.On("Fetch", mock.Anything, "product.product", mock.Anything, mock.Anything).
		Return(odoo.FetchResult{Records: []odoo.Record{
			{"id": float64(1), "name": "Widget", "categ_id": []any{float64(3), "Goods"}, "standard_price": 10.0},
			{"id": float64(2), "name": "Gadget", "categ_id": []any{float64(3), "Goods"}, "standard_price": 20.0},
		}}, nil)
	gw.On("Fetch", mock.Anything, "stock.move", mock.Anything, mock.Anything).
		Return(odoo.FetchResult{Records: []odoo.Record{}}, nil)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC)

	// The very first valuation read fails; the whole request switches to the
	// quantity estimate and never reads stock_value again.
	gw.On("ReadInContext", mock.Anything, "product.product", []int64{1}, []string{"stock_value"}, odoo.ReadContext{AsOf: from}).
		Return(nil, errors.New("no such field")).Once()
	gw.On("ReadInContext", mock.Anything, "product.product", []int64{1}, []string{"qty_available"}, odoo.ReadContext{AsOf: from}).
		Return([]odoo.Record{{"qty_available": 6.0}}, nil)
	gw.On("ReadInContext", mock.Anything, "product.product", []int64{1}, []string{"qty_available"}, odoo.ReadContext{AsOf: to}).
		Return([]odoo.Record{{"qty_available": 4.0}}, nil)
	gw.On("ReadInContext", mock.Anything, "product.product", []int64{2}, []string{"qty_available"}, odoo.ReadContext{AsOf: from}).
		Return([]odoo.Record{{"qty_available": 2.0}}, nil)
	gw.On("ReadInContext", mock.Anything, "product.product", []int64{2}, []string{"qty_available"}, odoo.ReadContext{AsOf: to}).
		Return([]odoo.Record{{"qty_available": 2.0}}, nil)

	svc := NewService(gw)
	report, err := svc.AnalyzeTurnover(context.Background(), domain.InventoryTurnoverInput{
		DateFrom: "2025-01-01", DateTo: "2025-01-30",
	})

	require.NoError(t, err)
	require.Len(t, report.Products, 2)

	byName := map[string]domain.ProductTurnover{}
	for _, p := range report.Products {
		byName[p.Name] = p
	}
	// Widget: mean qty 5 at standard cost 10. Gadget: mean qty 2 at cost 20.
	assert.Equal(t, 50.0, byName["Widget"].AvgInventoryValue)
	assert.Equal(t, 40.0, byName["Gadget"].AvgInventoryValue)

	gw.AssertNotCalled(t, "ReadInContext", mock.Anything, "product.product", []int64{2}, []string{"stock_value"}, mock.Anything)
}

func TestAnalyzeTurnover_ZeroDenominatorsYieldZeroMetrics(t *testing.T) {
	gw := new(mockGateway)
	gw.On("Fetch", mock.Anything, "product.product", mock.Anything, mock.Anything).
		Return(odoo.FetchResult{Records: []odoo.Record{
			{"id": float64(1), "name": "Widget", "categ_id": false, "standard_price": 10.0},
		}}, nil)
	gw.On("Fetch", mock.Anything, "stock.move", mock.Anything, mock.Anything).
		Return(odoo.FetchResult{Records: []odoo.Record{
			{"product_uom_qty": 3.0, "price_unit": 10.0},
		}}, nil)
	gw.On("ReadInContext", mock.Anything, "product.product", []int64{1}, []string{"stock_value"}, mock.Anything).
		Return([]odoo.Record{{"stock_value": 0.0}}, nil)

	svc := NewService(gw)
	report, err := svc.AnalyzeTurnover(context.Background(), domain.InventoryTurnoverInput{
		DateFrom: "2025-01-01", DateTo: "2025-01-30",
	})

	require.NoError(t, err)
	require.Len(t, report.Products, 1)
	assert.Equal(t, 0.0, report.Products[0].TurnoverRatio)
	assert.Equal(t, 0.0, report.Products[0].DaysInventory)
	assert.Equal(t, odoo.UnknownLabel, report.Products[0].Category)
}

func TestAnalyzeTurnover_EmptyProductScopeIsSuccess(t *testing.T) {
	gw := new(mockGateway)
	gw.On("Fetch", mock.Anything, "product.product", mock.Anything, mock.Anything).
		Return(odoo.FetchResult{Records: []odoo.Record{}}, nil)

	svc := NewService(gw)
	report, err := svc.AnalyzeTurnover(context.Background(), domain.InventoryTurnoverInput{
		DateFrom: "2025-01-01", DateTo: "2025-01-30",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, report.Summary.ProductCount)
	assert.Equal(t, 0.0, report.Summary.TotalCOGS)
	assert.Empty(t, report.Products)
}
