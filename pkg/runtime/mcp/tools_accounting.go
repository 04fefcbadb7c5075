package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/erptools/odoo-insight/pkg/models/domain"
)

func (s *Server) registerAccountingTools() {
	s.mcp.AddTool(mcp.NewTool("search_journal_entries",
		mcp.WithDescription("Search journal entries with optional filters for date range, journal and state."),
		mcp.WithString("date_from", mcp.Description("Earliest entry date, YYYY-MM-DD.")),
		mcp.WithString("date_to", mcp.Description("Latest entry date, YYYY-MM-DD.")),
		mcp.WithNumber("journal_id", mcp.Description("Journal id to filter by.")),
		mcp.WithString("state", mcp.Description("Entry state: draft or posted.")),
		mcp.WithNumber("limit", mcp.Description("Page size, defaults to 20.")),
		mcp.WithNumber("offset", mcp.Description("Pagination offset.")),
	), s.searchJournalEntries)

	s.mcp.AddTool(mcp.NewTool("create_journal_entry",
		mcp.WithDescription("Create a draft journal entry with balanced debit and credit lines."),
		mcp.WithNumber("journal_id", mcp.Required(), mcp.Description("Journal id.")),
		mcp.WithArray("lines", mcp.Required(),
			mcp.Description("Entry lines: objects with account_id, debit, credit and optional partner_id and name.")),
		mcp.WithString("ref", mcp.Description("Entry reference.")),
		mcp.WithString("date", mcp.Description("Entry date, YYYY-MM-DD.")),
	), s.createJournalEntry)

	s.mcp.AddTool(mcp.NewTool("analyze_receivables_aging",
		mcp.WithDescription("Bucket open receivable or payable balances by days overdue as of a cutoff date."),
		mcp.WithString("report_type", mcp.Required(), mcp.Description("Either receivable or payable.")),
		mcp.WithString("date_to", mcp.Required(), mcp.Description("Cutoff date, YYYY-MM-DD.")),
		mcp.WithArray("partner_ids", mcp.Description("Optional partner ids to restrict the report to.")),
	), s.analyzeAging)

	s.mcp.AddTool(mcp.NewTool("get_financial_statement",
		mcp.WithDescription("Build a balance sheet as of a date, or a profit and loss statement over a period, from posted journal items."),
		mcp.WithString("report_type", mcp.Required(), mcp.Description("Either balance_sheet or profit_loss.")),
		mcp.WithString("date_from", mcp.Description("Period start for profit_loss, YYYY-MM-DD.")),
		mcp.WithString("date_to", mcp.Required(), mcp.Description("Statement date (balance_sheet) or period end (profit_loss), YYYY-MM-DD.")),
	), s.getFinancialStatement)

	s.mcp.AddTool(mcp.NewTool("analyze_financial_ratios",
		mcp.WithDescription("Compute liquidity, profitability and debt ratios from posted journal items over a period."),
		mcp.WithString("date_from", mcp.Required(), mcp.Description("Period start, YYYY-MM-DD.")),
		mcp.WithString("date_to", mcp.Required(), mcp.Description("Period end, YYYY-MM-DD.")),
		mcp.WithArray("ratios", mcp.Description("Ratios to compute: liquidity, profitability, debt. Defaults to all three.")),
	), s.analyzeFinancialRatios)
}

func (s *Server) searchJournalEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var filter domain.JournalEntryFilter
	return run(req, &filter, func() (any, error) {
		return s.deps.Accounting.SearchJournalEntries(ctx, filter)
	})
}

func (s *Server) createJournalEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var entry domain.JournalEntryCreate
	return run(req, &entry, func() (any, error) {
		return s.deps.Accounting.CreateJournalEntry(ctx, entry)
	})
}

func (s *Server) analyzeAging(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params domain.AgingInput
	return run(req, &params, func() (any, error) {
		return s.deps.Accounting.AnalyzeAging(ctx, params)
	})
}

func (s *Server) getFinancialStatement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params domain.StatementInput
	return run(req, &params, func() (any, error) {
		return s.deps.Accounting.GetStatement(ctx, params)
	})
}

func (s *Server) analyzeFinancialRatios(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params domain.FinancialRatioInput
	return run(req, &params, func() (any, error) {
		return s.deps.Accounting.AnalyzeRatios(ctx, params)
	})
}
