package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/erptools/odoo-insight/pkg/models/domain"
)

func (s *Server) registerInventoryTools() {
	s.mcp.AddTool(mcp.NewTool("check_product_availability",
		mcp.WithDescription("Check current stock levels for a set of products, optionally at a single location."),
		mcp.WithArray("product_ids", mcp.Required(), mcp.Description("Product ids to check.")),
		mcp.WithNumber("location_id", mcp.Description("Stock location id to restrict the check to.")),
	), s.checkProductAvailability)

	s.mcp.AddTool(mcp.NewTool("create_inventory_adjustment",
		mcp.WithDescription("Record counted quantities for products at locations and apply them as a stock correction."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Reference for the adjustment.")),
		mcp.WithArray("adjustment_lines", mcp.Required(),
			mcp.Description("Lines: objects with product_id, location_id and product_qty (counted quantity).")),
		mcp.WithString("date", mcp.Description("Adjustment date, YYYY-MM-DD.")),
	), s.createInventoryAdjustment)

	s.mcp.AddTool(mcp.NewTool("analyze_inventory_turnover",
		mcp.WithDescription("Analyze inventory turnover over a period: cost of goods sold, average inventory value, turnover ratio and days of inventory per product."),
		mcp.WithString("date_from", mcp.Required(), mcp.Description("Period start, YYYY-MM-DD.")),
		mcp.WithString("date_to", mcp.Required(), mcp.Description("Period end, YYYY-MM-DD.")),
		mcp.WithArray("product_ids", mcp.Description("Optional product ids to restrict the analysis to.")),
		mcp.WithNumber("category_id", mcp.Description("Optional product category id to restrict the analysis to.")),
	), s.analyzeInventoryTurnover)
}

func (s *Server) checkProductAvailability(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params domain.ProductAvailabilityInput
	return run(req, &params, func() (any, error) {
		return s.deps.Inventory.CheckAvailability(ctx, params)
	})
}

func (s *Server) createInventoryAdjustment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var adjustment domain.InventoryAdjustmentCreate
	return run(req, &adjustment, func() (any, error) {
		return s.deps.Inventory.CreateAdjustment(ctx, adjustment)
	})
}

func (s *Server) analyzeInventoryTurnover(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params domain.InventoryTurnoverInput
	return run(req, &params, func() (any, error) {
		return s.deps.Inventory.AnalyzeTurnover(ctx, params)
	})
}
