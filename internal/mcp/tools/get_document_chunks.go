package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/docsplit/internal/mcp/tools/types"
)

type DocumentChunksService interface {
	GetDocumentChunks(ctx context.Context, id string) (*types.DocumentChunks, error)
}

type GetDocumentChunksHandler struct{ Service DocumentChunksService }

func (h *GetDocumentChunksHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, _ := req.GetArguments()["document_id"].(string)
	if strings.TrimSpace(id) == "" {
		return mcp.NewToolResultError("document_id parameter is required"), nil
	}

	doc, err := h.Service.GetDocumentChunks(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return mcp.NewToolResultError(fmt.Sprintf("document %s not found", id)), nil
	}
	return mcp.NewToolResultText(string(mustMarshal(doc))), nil
}
