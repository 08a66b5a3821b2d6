// Package mcp implements the Model Context Protocol server for legacyloop.
// A server is bound to one session for its whole lifetime, so an agent
// connected over stdio sees a private portfolio like any other visitor.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/shopspring/decimal"

	"github.com/ajitpratap0/legacyloop/internal/content"
	"github.com/ajitpratap0/legacyloop/internal/models"
	"github.com/ajitpratap0/legacyloop/internal/render"
	"github.com/ajitpratap0/legacyloop/internal/session"
	"github.com/ajitpratap0/legacyloop/internal/store"
)

// Server wraps an MCPServer with a session and the content service.
type Server struct {
	mcp     *mcpserver.MCPServer
	sess    *session.Session
	content *content.Service
	logger  *slog.Logger
}

// NewServer creates a new MCP server operating on sess.
func NewServer(sess *session.Session, svc *content.Service, logger *slog.Logger) *Server {
	s := &Server{
		sess:    sess,
		content: svc,
		logger:  logger,
	}

	mcpSrv := mcpserver.NewMCPServer(
		"legacyloop",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(buildListAssetsTool(), s.handleListAssets)
	mcpSrv.AddTool(buildAddAssetTool(), s.handleAddAsset)
	mcpSrv.AddTool(buildUpdateAssetTool(), s.handleUpdateAsset)
	mcpSrv.AddTool(buildDeleteAssetTool(), s.handleDeleteAsset)
	mcpSrv.AddTool(buildPortfolioSummaryTool(), s.handlePortfolioSummary)
	mcpSrv.AddTool(buildAskAdvisorTool(), s.handleAskAdvisor)
	mcpSrv.AddTool(buildEngagementMetricsTool(), s.handleEngagementMetrics)
	mcpSrv.AddTool(buildExplainAssetTool(), s.handleExplainAsset)

	s.mcp = mcpSrv
	return s
}

// MCPServer returns the underlying mcp-go MCPServer for use with ServeStdio.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// Session returns the session the tools operate on.
func (s *Server) Session() *session.Session {
	return s.sess
}

// Handle dispatches a tool call by name without the mcp-go transport layer.
func (s *Server) Handle(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	h, ok := map[string]mcpserver.ToolHandlerFunc{
		"list_assets":        s.handleListAssets,
		"add_asset":          s.handleAddAsset,
		"update_asset":       s.handleUpdateAsset,
		"delete_asset":       s.handleDeleteAsset,
		"portfolio_summary":  s.handlePortfolioSummary,
		"ask_advisor":        s.handleAskAdvisor,
		"engagement_metrics": s.handleEngagementMetrics,
		"explain_asset":      s.handleExplainAsset,
	}[req.Params.Name]
	if !ok {
		return mcpgo.NewToolResultErrorf("unknown tool %q", req.Params.Name), nil
	}
	return h(ctx, req)
}

// --- helpers ---

// toolResultJSON marshals v to JSON and returns it as a tool text result.
func toolResultJSON(v any) (*mcpgo.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mcp: marshaling result: %w", err)
	}
	return mcpgo.NewToolResultText(string(b)), nil
}

// toolError converts a domain error into a tool error result.
func toolError(err error) *mcpgo.CallToolResult {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrValidation):
		return mcpgo.NewToolResultError(err.Error())
	default:
		return mcpgo.NewToolResultErrorf("internal error: %s", err.Error())
	}
}

// decimalArg reads a monetary argument given as a JSON number or a string.
func decimalArg(args map[string]any, key string) (decimal.Decimal, bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return decimal.Decimal{}, false, nil
	}
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), true, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Decimal{}, true, fmt.Errorf("%s must be a number (got %q)", key, v)
		}
		return d, true, nil
	default:
		return decimal.Decimal{}, true, fmt.Errorf("%s must be a number", key)
	}
}

// stringArg returns the argument and whether it was present.
func stringArg(args map[string]any, key string) (*string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%s must be a string", key)
	}
	return &s, nil
}

type assetResult struct {
	models.Asset
	ValueFormatted string `json:"value_formatted"`
}

func newAssetResult(a models.Asset) assetResult {
	return assetResult{Asset: a, ValueFormatted: render.Currency(a.Value)}
}

// --- tool definitions ---

func assetTypeHelp() string {
	names := make([]string, len(models.ValidAssetTypes))
	for i, t := range models.ValidAssetTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func buildListAssetsTool() mcpgo.Tool {
	return mcpgo.NewTool("list_assets",
		mcpgo.WithDescription("List every holding in the family portfolio in insertion order."),
	)
}

func buildAddAssetTool() mcpgo.Tool {
	return mcpgo.NewTool("add_asset",
		mcpgo.WithDescription("Add a holding to the family portfolio. Returns the stored asset with its assigned id."),
		mcpgo.WithString("name", mcpgo.Required(), mcpgo.Description("Display name of the holding")),
		mcpgo.WithString("value", mcpgo.Required(), mcpgo.Description("Market value in USD, e.g. \"250000\"")),
		mcpgo.WithString("type", mcpgo.Required(), mcpgo.Description("Asset type: "+assetTypeHelp())),
		mcpgo.WithString("symbol", mcpgo.Description("Ticker symbol, if any")),
		mcpgo.WithString("description", mcpgo.Description("Free-text description")),
	)
}

func buildUpdateAssetTool() mcpgo.Tool {
	return mcpgo.NewTool("update_asset",
		mcpgo.WithDescription("Change fields of an existing holding. Omitted fields are left unchanged."),
		mcpgo.WithNumber("id", mcpgo.Required(), mcpgo.Description("Asset id")),
		mcpgo.WithString("name", mcpgo.Description("New display name")),
		mcpgo.WithString("value", mcpgo.Description("New market value in USD")),
		mcpgo.WithString("type", mcpgo.Description("New asset type: "+assetTypeHelp())),
		mcpgo.WithString("symbol", mcpgo.Description("New ticker symbol")),
		mcpgo.WithString("description", mcpgo.Description("New description")),
	)
}

func buildDeleteAssetTool() mcpgo.Tool {
	return mcpgo.NewTool("delete_asset",
		mcpgo.WithDescription("Remove a holding from the portfolio by id."),
		mcpgo.WithNumber("id", mcpgo.Required(), mcpgo.Description("Asset id")),
	)
}

func buildPortfolioSummaryTool() mcpgo.Tool {
	return mcpgo.NewTool("portfolio_summary",
		mcpgo.WithDescription("Total value, number of distinct asset classes, and number of holdings."),
	)
}

func buildAskAdvisorTool() mcpgo.Tool {
	return mcpgo.NewTool("ask_advisor",
		mcpgo.WithDescription("Record that the heir asked the advisor about a holding."),
		mcpgo.WithNumber("asset_id", mcpgo.Required(), mcpgo.Description("Asset id")),
	)
}

func buildEngagementMetricsTool() mcpgo.Tool {
	return mcpgo.NewTool("engagement_metrics",
		mcpgo.WithDescription("Heir engagement figures shown on the advisor dashboard."),
	)
}

func buildExplainAssetTool() mcpgo.Tool {
	return mcpgo.NewTool("explain_asset",
		mcpgo.WithDescription("Explain a holding in terms suited to the heir. Cached until the portfolio changes."),
		mcpgo.WithNumber("id", mcpgo.Required(), mcpgo.Description("Asset id")),
	)
}

// --- tool handlers ---

func (s *Server) handleListAssets(_ context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	assets := s.sess.Assets()
	out := make([]assetResult, len(assets))
	for i := range assets {
		out[i] = newAssetResult(assets[i])
	}
	return toolResultJSON(out)
}

func (s *Server) handleAddAsset(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	args := req.GetArguments()

	value, ok, err := decimalArg(args, "value")
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	if !ok {
		return mcpgo.NewToolResultError("value is required"), nil
	}
	at, err := models.ParseAssetType(req.GetString("type", ""))
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}

	a, err := s.sess.AddAsset(
		req.GetString("name", ""),
		value,
		at,
		req.GetString("symbol", ""),
		req.GetString("description", ""),
	)
	if err != nil {
		return toolError(err), nil
	}
	s.logger.Info("mcp: added asset", "id", a.ID, "type", a.Type)
	return toolResultJSON(newAssetResult(a))
}

func (s *Server) handleUpdateAsset(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	args := req.GetArguments()
	id := req.GetInt("id", 0)

	var patch models.AssetPatch
	var err error
	if patch.Name, err = stringArg(args, "name"); err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	if patch.Symbol, err = stringArg(args, "symbol"); err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	if patch.Description, err = stringArg(args, "description"); err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	value, ok, err := decimalArg(args, "value")
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	if ok {
		patch.Value = &value
	}
	typ, err := stringArg(args, "type")
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	if typ != nil {
		at, perr := models.ParseAssetType(*typ)
		if perr != nil {
			return mcpgo.NewToolResultError(perr.Error()), nil
		}
		patch.Type = &at
	}
	if patch.IsEmpty() {
		return mcpgo.NewToolResultError("no fields to update"), nil
	}

	a, err := s.sess.UpdateAsset(id, patch)
	if err != nil {
		return toolError(err), nil
	}
	return toolResultJSON(newAssetResult(a))
}

func (s *Server) handleDeleteAsset(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	a, err := s.sess.DeleteAsset(req.GetInt("id", 0))
	if err != nil {
		return toolError(err), nil
	}
	return toolResultJSON(map[string]any{"id": a.ID, "deleted": true})
}

func (s *Server) handlePortfolioSummary(_ context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	sum := s.sess.Summary()
	return toolResultJSON(map[string]any{
		"total_value":           sum.TotalValue,
		"total_value_formatted": render.Currency(sum.TotalValue),
		"asset_classes":         sum.AssetClasses,
		"holdings":              sum.Holdings,
	})
}

func (s *Server) handleAskAdvisor(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	e, err := s.sess.AskAdvisor(req.GetInt("asset_id", 0))
	if err != nil {
		return toolError(err), nil
	}
	return toolResultJSON(e)
}

func (s *Server) handleEngagementMetrics(_ context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return toolResultJSON(s.sess.Metrics())
}

func (s *Server) handleExplainAsset(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	e, err := s.sess.Explain(ctx, s.content, req.GetInt("id", 0))
	if err != nil {
		return toolError(err), nil
	}
	return mcpgo.NewToolResultText(e.Text), nil
}
