package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/docsplit/internal/mcp/tools/types"
)

type ChunkSearchService interface {
	SearchChunks(ctx context.Context, query string, limit int, format *string) ([]types.ChunkResult, error)
}

type SearchChunksHandler struct{ Service ChunkSearchService }

func (h *SearchChunksHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	query, _ := args["query"].(string)
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}
	limit := intArgument(args, "limit", 10)

	results, err := h.Service.SearchChunks(ctx, query, limit, stringArgument(args, "format"))
	if err != nil {
		return nil, err
	}

	response := struct {
		Query   string              `json:"query"`
		Results []types.ChunkResult `json:"results"`
		Total   int                 `json:"total_found"`
	}{Query: query, Results: results, Total: len(results)}

	return mcp.NewToolResultText(string(mustMarshal(response))), nil
}
