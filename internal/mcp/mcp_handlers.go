package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gitpulse/gitpulse/core"
	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// applyWindowParams overlays the request's window parameters onto a cloned
// config. Date parse failures surface as tool errors before any aggregation.
func (h *toolHandler) applyWindowParams(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()

	if w := request.GetString("window", ""); w != "" {
		cfg.Filter = schema.DateFilter(strings.ToLower(w))
	}
	if s := request.GetString("start", ""); s != "" {
		start, err := time.ParseInLocation(contract.DateFormat, s, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid start date %q: expected %s", s, contract.DateFormat)
		}
		cfg.StartDate = start
	}
	if e := request.GetString("end", ""); e != "" {
		end, err := time.ParseInLocation(contract.DateFormat, e, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid end date %q: expected %s", e, contract.DateFormat)
		}
		cfg.EndDate = end
	}
	return cfg, nil
}

func (h *toolHandler) handleGetDashboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyWindowParams(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	snap, diagnostics, err := core.GetDashboardSnapshot(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dashboard failed: %v", err)), nil
	}

	payload := struct {
		schema.MetricsSnapshot
		Diagnostics []string `json:"diagnostics,omitempty"`
	}{snap, diagnostics}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetAuthors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyWindowParams(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if a := request.GetString("author", ""); a != "" {
		cfg.AuthorEmail = strings.ToLower(a)
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.AuthorLimit = l
	}

	rollups, diagnostics, err := core.GetAuthorRollups(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("author rollup failed: %v", err)), nil
	}

	payload := struct {
		Authors     []schema.AuthorRollup `json:"authors"`
		Diagnostics []string              `json:"diagnostics,omitempty"`
	}{rollups, diagnostics}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTeamStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	activities, err := core.GetTeamStatus(ctx, h.baseCfg.Clone())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("team status failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(activities, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
