package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ctxtier/ctxtier/pkg/tier"
)

// Server exposes the classifier and catalog as MCP tools over stdio.
type Server struct {
	handler *Handler
	server  *server.MCPServer
}

// NewServer creates a new stdio MCP server.
func NewServer(handler *Handler, version string) *Server {
	s := &Server{
		handler: handler,
	}

	mcpServer := server.NewMCPServer(
		"ctxtier",
		version,
		server.WithToolCapabilities(true),
	)

	s.registerTools(mcpServer)

	s.server = mcpServer
	return s
}

// registerTools registers all MCP tools with the server.
func (s *Server) registerTools(mcpServer *server.MCPServer) {
	// classify_project - Tier classification
	mcpServer.AddTool(
		mcp.NewTool("classify_project",
			mcp.WithDescription("Classify a planned application into a complexity tier and return the context modules to load before generating code."),
			mcp.WithNumber("entity_count",
				mcp.Description("Number of domain entities the application will have"),
			),
			mcp.WithNumber("integration_count",
				mcp.Description("Number of external systems to integrate"),
			),
			mcp.WithString("scale",
				mcp.Required(),
				mcp.Description("Deployment scale: SMALL, MEDIUM, or ENTERPRISE"),
			),
			mcp.WithBoolean("has_compliance",
				mcp.Description("Regulatory requirements apply"),
			),
			mcp.WithBoolean("is_multi_region",
				mcp.Description("Deployment spans more than one region"),
			),
			mcp.WithBoolean("has_real_time",
				mcp.Description("Push or streaming features required"),
			),
		),
		s.handleClassify,
	)

	// context_modules - Load plan for a tier
	mcpServer.AddTool(
		mcp.NewTool("context_modules",
			mcp.WithDescription("List the context modules loaded for a complexity tier, in load order."),
			mcp.WithString("tier",
				mcp.Required(),
				mcp.Description("Tier name: TIER_1, TIER_2, or TIER_3"),
			),
		),
		s.handleContextModules,
	)

	// tier_thresholds - Scoring rubric
	mcpServer.AddTool(
		mcp.NewTool("tier_thresholds",
			mcp.WithDescription("Show the scoring rubric and the score thresholds between tiers."),
		),
		s.handleThresholds,
	)
}

// handleClassify handles the classify_project tool.
func (s *Server) handleClassify(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scale, err := tier.ParseScale(request.GetString("scale", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	inputs, err := tier.NewInputs(
		request.GetInt("entity_count", 0),
		request.GetInt("integration_count", 0),
		scale,
		request.GetBool("has_compliance", false),
		request.GetBool("is_multi_region", false),
		request.GetBool("has_real_time", false),
	)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := tier.Classify(inputs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	modules := s.handler.catalog.ModulesFor(result.Tier)
	return mcp.NewToolResultText(formatClassification(result, modules)), nil
}

// handleContextModules handles the context_modules tool.
func (s *Server) handleContextModules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := tier.ParseTier(request.GetString("tier", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatModules(t, s.handler.catalog.Modules(t))), nil
}

// handleThresholds handles the tier_thresholds tool.
func (s *Server) handleThresholds(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatThresholds()), nil
}

// ServeStdio starts the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.server)
}
