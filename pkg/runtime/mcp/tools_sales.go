package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/erptools/odoo-insight/pkg/models/domain"
)

func (s *Server) registerSalesTools() {
	s.mcp.AddTool(mcp.NewTool("search_sales_orders",
		mcp.WithDescription("Search sales orders with optional filters for customer, date range and state."),
		mcp.WithNumber("partner_id", mcp.Description("Customer id to filter by.")),
		mcp.WithString("date_from", mcp.Description("Earliest order date, YYYY-MM-DD.")),
		mcp.WithString("date_to", mcp.Description("Latest order date, YYYY-MM-DD.")),
		mcp.WithString("state", mcp.Description("Order state, e.g. draft, sale, done, cancel.")),
		mcp.WithNumber("limit", mcp.Description("Page size, defaults to 20.")),
		mcp.WithNumber("offset", mcp.Description("Pagination offset.")),
	), s.searchSalesOrders)

	s.mcp.AddTool(mcp.NewTool("create_sales_order",
		mcp.WithDescription("Create a sales order for a customer with one or more order lines."),
		mcp.WithNumber("partner_id", mcp.Required(), mcp.Description("Customer id.")),
		mcp.WithArray("order_lines", mcp.Required(),
			mcp.Description("Order lines: objects with product_id, product_uom_qty and optional price_unit.")),
		mcp.WithString("date_order", mcp.Description("Order date, YYYY-MM-DD.")),
	), s.createSalesOrder)

	s.mcp.AddTool(mcp.NewTool("analyze_sales_performance",
		mcp.WithDescription("Analyze sales performance over a period, including comparison with the preceding period of equal length. Optionally group by product, customer or salesperson."),
		mcp.WithString("date_from", mcp.Required(), mcp.Description("Period start, YYYY-MM-DD.")),
		mcp.WithString("date_to", mcp.Required(), mcp.Description("Period end, YYYY-MM-DD.")),
		mcp.WithString("group_by", mcp.Description("Grouping dimension: product, customer or salesperson.")),
	), s.analyzeSalesPerformance)
}

func (s *Server) searchSalesOrders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var filter domain.SalesOrderFilter
	return run(req, &filter, func() (any, error) {
		return s.deps.Sales.SearchOrders(ctx, filter)
	})
}

func (s *Server) createSalesOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var order domain.SalesOrderCreate
	return run(req, &order, func() (any, error) {
		return s.deps.Sales.CreateOrder(ctx, order)
	})
}

func (s *Server) analyzeSalesPerformance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params domain.SalesPerformanceInput
	return run(req, &params, func() (any, error) {
		return s.deps.Sales.AnalyzePerformance(ctx, params)
	})
}
