package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/erptools/odoo-insight/pkg/models/domain"
)

func (s *Server) registerHRTools() {
	s.mcp.AddTool(mcp.NewTool("search_employee",
		mcp.WithDescription("Search employees by name."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name or name fragment to search for.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of matches, defaults to 20.")),
	), s.searchEmployee)

	s.mcp.AddTool(mcp.NewTool("search_holidays",
		mcp.WithDescription("Search validated leave entries overlapping a date range, optionally for a single employee."),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("Range start, YYYY-MM-DD.")),
		mcp.WithString("end_date", mcp.Required(), mcp.Description("Range end, YYYY-MM-DD.")),
		mcp.WithNumber("employee_id", mcp.Description("Employee id to restrict the search to.")),
	), s.searchHolidays)
}

type employeeSearchArgs struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
}

func (s *Server) searchEmployee(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args employeeSearchArgs
	return run(req, &args, func() (any, error) {
		return s.deps.HR.SearchEmployees(ctx, args.Name, args.Limit)
	})
}

func (s *Server) searchHolidays(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params domain.HolidaySearchInput
	return run(req, &params, func() (any, error) {
		return s.deps.HR.SearchHolidays(ctx, params)
	})
}
