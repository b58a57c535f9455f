// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gitpulse/gitpulse/internal/contract"
)

// NewMCPServer initializes and configures the gitpulse MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Gitpulse Activity Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: get_dashboard ---
	s.AddTool(mcp.NewTool("get_dashboard",
		mcp.WithDescription("Compute the commit-activity dashboard across all configured repositories."),
		mcp.WithString("window", mcp.Description("Date window (today, yesterday, last3days, lastweek, lastmonth, last2months, last3months, custom). Defaults to the configured window."),
			mcp.Enum("today", "yesterday", "last3days", "lastweek", "lastmonth", "last2months", "last3months", "custom")),
		mcp.WithString("start", mcp.Description("Start date (2006-01-02), required for the custom window.")),
		mcp.WithString("end", mcp.Description("End date (2006-01-02), required for the custom window.")),
	), h.handleGetDashboard)

	// --- 2. Tool: get_authors ---
	s.AddTool(mcp.NewTool("get_authors",
		mcp.WithDescription("Return per-author commit rollups for the active window."),
		mcp.WithString("window", mcp.Description("Date window, same values as get_dashboard."),
			mcp.Enum("today", "yesterday", "last3days", "lastweek", "lastmonth", "last2months", "last3months", "custom")),
		mcp.WithString("start", mcp.Description("Start date (2006-01-02), required for the custom window.")),
		mcp.WithString("end", mcp.Description("End date (2006-01-02), required for the custom window.")),
		mcp.WithString("author", mcp.Description("Filter to one author email.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of authors returned.")),
	), h.handleGetAuthors)

	// --- 3. Tool: get_team_status ---
	s.AddTool(mcp.NewTool("get_team_status",
		mcp.WithDescription("Return the last-known activity of every developer from the persistence store."),
	), h.handleGetTeamStatus)

	return s
}

// StartMCPServer starts the gitpulse MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
