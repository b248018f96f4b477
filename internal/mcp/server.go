// Package mcp exposes the catalog as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vadimtrunov/reelview/internal/catalog"
	"github.com/vadimtrunov/reelview/internal/core"
	"github.com/vadimtrunov/reelview/internal/view"
)

// Deps holds the dependencies for MCP tool handlers.
type Deps struct {
	Catalog core.Catalog
	Images  catalog.Images
}

// Server wraps an MCP SDK server with reelview tool handlers.
type Server struct {
	server  *mcpsdk.Server
	deps    Deps
	version string
	logger  *slog.Logger
}

var _ core.Frontend = (*Server)(nil)

// NewServer creates an MCP server with all reelview tools registered.
func NewServer(deps Deps, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "reelview",
			Version: version,
		},
		&mcpsdk.ServerOptions{Logger: logger},
	)

	srv := &Server{server: s, deps: deps, version: version, logger: logger}
	srv.registerTools()
	return srv
}

// Name returns the frontend name.
func (s *Server) Name() string { return "mcp" }

// Start runs the MCP server over stdin/stdout until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	return s.server.Run(ctx, &mcpsdk.StdioTransport{})
}

// MCPServer returns the underlying MCP SDK server (for testing).
func (s *Server) MCPServer() *mcpsdk.Server {
	return s.server
}

func (s *Server) registerTools() {
	s.server.AddTool(listTitlesTool(), s.handleListTitles)
	s.server.AddTool(getTitleDetailsTool(), s.handleGetTitleDetails)
	s.server.AddTool(recommendSimilarTool(), s.handleRecommendSimilar)
}

func listTitlesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name: "list_titles",
		Description: "List movies and shows. kind is one of popular, top-rated, random or search; " +
			"search also needs a query. Returns a heading and cards with id, title, year, rating, genres and poster URL.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"kind": map[string]any{
					"type":        "string",
					"enum":        []any{"popular", "top-rated", "random", "search"},
					"description": "The listing to fetch",
				},
				"query": map[string]any{
					"type":        "string",
					"description": "Title to search for (kind=search only)",
				},
			},
			"required": []any{"kind"},
		},
	}
}

func getTitleDetailsTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "get_title_details",
		Description: "Get the full record for a movie or show by id: overview, credits, genres and, for shows, creators, episodes and seasons.",
		InputSchema: idSchema("The id of the title"),
	}
}

func recommendSimilarTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "recommend_similar",
		Description: "Get up to six titles similar to the given one, with a match score when available.",
		InputSchema: idSchema("The id of the title to get recommendations for"),
	}
}

func idSchema(desc string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{
				"type":        "integer",
				"description": desc,
			},
		},
		"required": []any{"id"},
	}
}

// Tool handlers: each parses arguments, calls the catalog and returns the view model as JSON.

func (s *Server) handleListTitles(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Kind  string `json:"kind"`
		Query string `json:"query"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	kind, ok := core.ParseKind(args.Kind)
	if !ok {
		return toolError(fmt.Sprintf("unknown kind %q: use popular, top-rated, random or search", args.Kind)), nil
	}
	query := strings.TrimSpace(args.Query)
	if kind == core.KindSearch && query == "" {
		return toolError("list_titles with kind=search requires a 'query' string argument"), nil
	}

	items, err := s.deps.Catalog.List(ctx, kind, query)
	if err != nil {
		s.logger.Error("list_titles failed", slog.String("kind", string(kind)), slog.String("error", err.Error()))
		return toolError(view.FailureMessage(err)), nil
	}
	return toolJSON(view.BuildResults(kind, query, items, s.deps.Images))
}

func (s *Server) handleGetTitleDetails(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	id, err := extractIntFromArgs(req.Params.Arguments, "id")
	if err != nil {
		return toolError(err.Error()), nil
	}

	item, err := s.deps.Catalog.Detail(ctx, id)
	if err != nil {
		s.logger.Error("get_title_details failed", slog.Int("id", id), slog.String("error", err.Error()))
		return toolError(view.DetailFailureMessage(err)), nil
	}
	return toolJSON(view.BuildDetail(item, s.deps.Images))
}

func (s *Server) handleRecommendSimilar(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	id, err := extractIntFromArgs(req.Params.Arguments, "id")
	if err != nil {
		return toolError(err.Error()), nil
	}

	items, err := s.deps.Catalog.Recommendations(ctx, id)
	if err != nil {
		s.logger.Error("recommend_similar failed", slog.Int("id", id), slog.String("error", err.Error()))
		if !catalog.IsAPIError(err) {
			return toolError(view.MsgRecsFailed), nil
		}
	}
	return toolJSON(view.RecsOutcome(items, err, s.deps.Images))
}

// Helper functions.

// toolJSON marshals v to JSON and returns it as text content.
func toolJSON(v any) (*mcpsdk.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return toolError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, nil
}

// toolError returns a tool result indicating an error.
func toolError(msg string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: msg}},
		IsError: true,
	}
}

// extractIntFromArgs extracts a positive integer argument from raw JSON arguments.
func extractIntFromArgs(raw json.RawMessage, key string) (int, error) {
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return 0, fmt.Errorf("invalid arguments: %w", err)
	}

	val, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}

	var n int
	switch v := val.(type) {
	case float64:
		n = int(v)
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%s must be a number: %w", key, err)
		}
		n = parsed
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, val)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return n, nil
}
