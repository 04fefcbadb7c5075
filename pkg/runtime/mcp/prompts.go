package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

type promptSpec struct {
	name        string
	description string
	text        string
}

var prompts = []promptSpec{
	{
		name:        "sales_analysis",
		description: "Analyze sales over a period and surface key insights",
		text: `Analyze sales for the last {period} (e.g. 'month', 'quarter', 'year') and provide insights on:
- Best selling products (top 5)
- Main customers (top 5)
- Sales trends (comparison with the preceding period where possible)
- Performance per salesperson (if applicable)
- Actionable recommendations for improving sales.

Use the available tools such as 'search_sales_orders' and 'analyze_sales_performance' to pull the required data from Odoo.`,
	},
	{
		name:        "purchase_analysis",
		description: "Analyze purchase orders and supplier performance",
		text: `Analyze purchases made in the last {period} (e.g. 'month', 'quarter', 'year') and provide insights on:
- Most purchased products (top 5)
- Main suppliers (top 5 by volume/value)
- Purchasing trends
- Average delivery lead time per supplier
- Recommendations for optimizing purchases or negotiating with suppliers.

Use the available tools such as 'search_purchase_orders' and 'analyze_supplier_performance' to pull the required data from Odoo.`,
	},
	{
		name:        "inventory_management",
		description: "Analyze current inventory state and recommend actions",
		text: `Analyze the current inventory state and report on:
- Products with low stock (below the configured minimum where set)
- Products with excess stock (above the maximum, or without movement)
- Current inventory valuation
- Inventory turnover for key products
- Recommendations for adjustments, replenishment or stock liquidation.

Use the available tools such as 'check_product_availability' and 'analyze_inventory_turnover' to pull the required data from Odoo.`,
	},
	{
		name:        "financial_analysis",
		description: "Run a basic financial analysis",
		text: `Run a financial analysis for the period {period} (e.g. 'last_month', 'last_quarter', 'year_to_date') and provide:
- Profit and loss summary (income, expenses, net result)
- Balance sheet summary (assets, liabilities, equity)
- Key financial ratios (e.g. liquidity, profitability)
- Comparison with the preceding period where possible
- Important observations or alerts.

Use the available tools such as 'search_journal_entries' and 'analyze_financial_ratios' to pull the required data from Odoo.`,
	},
}

func (s *Server) registerPrompts() {
	for _, spec := range prompts {
		spec := spec
		s.mcp.AddPrompt(
			mcp.NewPrompt(spec.name, mcp.WithPromptDescription(spec.description)),
			func(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
				return mcp.NewGetPromptResult(spec.description, []mcp.PromptMessage{
					mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(spec.text)),
				}), nil
			},
		)
	}
}
