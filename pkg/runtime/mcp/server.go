package mcp

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/erptools/odoo-insight/pkg/models/api"
	"github.com/erptools/odoo-insight/pkg/services/accounting"
	"github.com/erptools/odoo-insight/pkg/services/hr"
	"github.com/erptools/odoo-insight/pkg/services/inventory"
	"github.com/erptools/odoo-insight/pkg/services/purchase"
	"github.com/erptools/odoo-insight/pkg/services/report"
	"github.com/erptools/odoo-insight/pkg/services/sales"
	"github.com/erptools/odoo-insight/pkg/store/odoo"
)

const serverName = "odoo-insight"

// Dependencies carries everything the MCP surface needs.
type Dependencies struct {
	Sales      *sales.Service
	Purchase   *purchase.Service
	Inventory  *inventory.Service
	Accounting *accounting.Service
	HR         *hr.Service
	Gateway    odoo.Gateway
	Logger     zerolog.Logger
}

// Server exposes the report services as MCP tools, resources and prompts
// over stdio.
type Server struct {
	mcp  *server.MCPServer
	deps Dependencies
}

func NewServer(version string, deps Dependencies) *Server {
	s := &Server{
		mcp: server.NewMCPServer(
			serverName,
			version,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
			server.WithPromptCapabilities(false),
			server.WithRecovery(),
		),
		deps: deps,
	}

	s.registerSalesTools()
	s.registerPurchaseTools()
	s.registerInventoryTools()
	s.registerAccountingTools()
	s.registerHRTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// Serve blocks reading MCP requests from stdin until EOF.
func (s *Server) Serve() error {
	s.deps.Logger.Info().Str("server", serverName).Msg("serving MCP over stdio")
	return server.ServeStdio(s.mcp)
}

// toolResult serialises the uniform envelope as the tool's text payload.
// Failed envelopes still come back as text so callers see the same shape
// for every outcome.
func toolResult(env api.Envelope) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(env)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// run binds the request arguments into target, then executes fn behind the
// report boundary. Binding failures surface as failed envelopes too.
func run(req mcp.CallToolRequest, target any, fn func() (any, error)) (*mcp.CallToolResult, error) {
	if err := req.BindArguments(target); err != nil {
		return toolResult(api.Failure(err.Error()))
	}
	return toolResult(report.Run(fn))
}
