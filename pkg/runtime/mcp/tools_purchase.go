package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/erptools/odoo-insight/pkg/models/domain"
)

func (s *Server) registerPurchaseTools() {
	s.mcp.AddTool(mcp.NewTool("search_purchase_orders",
		mcp.WithDescription("Search purchase orders with optional filters for supplier, date range and state."),
		mcp.WithNumber("partner_id", mcp.Description("Supplier id to filter by.")),
		mcp.WithString("date_from", mcp.Description("Earliest order date, YYYY-MM-DD.")),
		mcp.WithString("date_to", mcp.Description("Latest order date, YYYY-MM-DD.")),
		mcp.WithString("state", mcp.Description("Order state, e.g. draft, purchase, done, cancel.")),
		mcp.WithNumber("limit", mcp.Description("Page size, defaults to 20.")),
		mcp.WithNumber("offset", mcp.Description("Pagination offset.")),
	), s.searchPurchaseOrders)

	s.mcp.AddTool(mcp.NewTool("create_purchase_order",
		mcp.WithDescription("Create a purchase order for a supplier with one or more order lines."),
		mcp.WithNumber("partner_id", mcp.Required(), mcp.Description("Supplier id.")),
		mcp.WithArray("order_lines", mcp.Required(),
			mcp.Description("Order lines: objects with product_id, product_qty and optional price_unit.")),
		mcp.WithString("date_order", mcp.Description("Order date, YYYY-MM-DD.")),
	), s.createPurchaseOrder)

	s.mcp.AddTool(mcp.NewTool("analyze_supplier_performance",
		mcp.WithDescription("Analyze supplier performance over a period: order volume, on-time delivery rate and average delivery delay per supplier."),
		mcp.WithString("date_from", mcp.Required(), mcp.Description("Period start, YYYY-MM-DD.")),
		mcp.WithString("date_to", mcp.Required(), mcp.Description("Period end, YYYY-MM-DD.")),
		mcp.WithArray("supplier_ids", mcp.Description("Optional supplier ids to restrict the analysis to.")),
	), s.analyzeSupplierPerformance)
}

func (s *Server) searchPurchaseOrders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var filter domain.PurchaseOrderFilter
	return run(req, &filter, func() (any, error) {
		return s.deps.Purchase.SearchOrders(ctx, filter)
	})
}

func (s *Server) createPurchaseOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var order domain.PurchaseOrderCreate
	return run(req, &order, func() (any, error) {
		return s.deps.Purchase.CreateOrder(ctx, order)
	})
}

func (s *Server) analyzeSupplierPerformance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params domain.SupplierPerformanceInput
	return run(req, &params, func() (any, error) {
		return s.deps.Purchase.AnalyzeSupplierPerformance(ctx, params)
	})
}
