package purchase

import (
	"context"
	"testing"

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

func performanceOrder(supplier []any, amount float64, planned, effective string) odoo.Record {
	r := odoo.Record{"amount_total": amount, "partner_id": supplier}
	if planned != "" {
		r["date_planned"] = planned
	} else {
		r["date_planned"] = false
	}
	if effective != "" {
		r["effective_date"] = effective
	} else {
		r["effective_date"] = false
	}
	return r
}

func TestAnalyzeSupplierPerformance_DeliveryMetrics(t *testing.T) {
	supplierA := []any{float64(1), "Supplier A"}
	supplierB := []any{float64(2), "Supplier B"}

	orders := []odoo.Record{
		// A: one delivery on time, one 4 days late.
		performanceOrder(supplierA, 1000, "2025-03-10 08:00:00", "2025-03-10 17:30:00"),
		performanceOrder(supplierA, 2000, "2025-03-15", "2025-03-19"),
		// B: no effective date yet, so no punctuality observation.
		performanceOrder(supplierB, 5000, "2025-03-20", ""),
	}

	gw := new(mockGateway)
	gw.On("Fetch", mock.Anything, "purchase.order", mock.Anything, mock.Anything).
		Return(odoo.FetchResult{Records: orders}, nil)

	svc := NewService(gw)
	perf, err := svc.AnalyzeSupplierPerformance(context.Background(), domain.SupplierPerformanceInput{
		DateFrom: "2025-03-01", DateTo: "2025-03-31",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, perf.Summary.SupplierCount)
	assert.Equal(t, 3, perf.Summary.OrderCount)
	assert.Equal(t, 8000.0, perf.Summary.TotalAmount)

	// Sorted by spend, highest first.
	require.Len(t, perf.Suppliers, 2)
	b := perf.Suppliers[0]
	a := perf.Suppliers[1]

	assert.Equal(t, "Supplier B", b.Name)
	assert.Equal(t, 5000.0, b.TotalAmount)
	assert.Equal(t, 0, b.OnTimeCount+b.LateCount)
	assert.Equal(t, 0.0, b.OnTimeRate)

	assert.Equal(t, "Supplier A", a.Name)
	assert.Equal(t, 2, a.OrderCount)
	assert.Equal(t, 1, a.OnTimeCount)
	assert.Equal(t, 1, a.LateCount)
	assert.Equal(t, 2.0, a.AvgDelayDays)
	assert.Equal(t, 50.0, a.OnTimeRate)
}

func TestAnalyzeSupplierPerformance_SupplierFilterAppendsInCondition(t *testing.T) {
	gw := new(mockGateway)
	gw.On("Fetch", mock.Anything, "purchase.order", mock.MatchedBy(func(d odoo.Domain) bool {
		for _, entry := range d {
			triple, ok := entry.([]any)
			if ok && triple[0] == "partner_id" && triple[1] == "in" {
				return assert.ObjectsAreEqual([]int64{4, 5}, triple[2])
			}
		}
		return false
	}), mock.Anything).Return(odoo.FetchResult{}, nil)

	svc := NewService(gw)
	_, err := svc.AnalyzeSupplierPerformance(context.Background(), domain.SupplierPerformanceInput{
		DateFrom: "2025-03-01", DateTo: "2025-03-31", SupplierIDs: []int64{4, 5},
	})

	require.NoError(t, err)
	gw.AssertExpectations(t)
}

func TestAnalyzeSupplierPerformance_InvalidDate_NoRemoteCall(t *testing.T) {
	gw := new(mockGateway)
	svc := NewService(gw)

	_, err := svc.AnalyzeSupplierPerformance(context.Background(), domain.SupplierPerformanceInput{
		DateFrom: "2025-03-01", DateTo: "31.03.2025",
	})

	var vErr *odoo.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "date_to", vErr.Field)
	gw.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrder_UsesPurchaseQuantityField(t *testing.T) {
	gw := new(mockGateway)
	gw.On("Create", mock.Anything, "purchase.order", map[string]any{
		"partner_id": int64(9),
		"order_line": []any{
			[]any{0, 0, map[string]any{"product_id": int64(3), "product_qty": 10.0}},
		},
	}).Return(int64(55), nil)
	gw.On("ReadInContext", mock.Anything, "purchase.order", []int64{55}, []string{"name"}, odoo.ReadContext{}).
		Return([]odoo.Record{{"id": float64(55), "name": "P00055"}}, nil)

	svc := NewService(gw)
	created, err := svc.CreateOrder(context.Background(), domain.PurchaseOrderCreate{
		PartnerID:  9,
		OrderLines: []domain.PurchaseOrderLineCreate{{ProductID: 3, Quantity: 10}},
	})

	require.NoError(t, err)
	assert.Equal(t, "P00055", created.Name)
	gw.AssertExpectations(t)
}
