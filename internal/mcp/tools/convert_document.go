package tools

import (
	"context"
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/docsplit/internal/extract"
	"github.com/roivaz/docsplit/internal/render"
)

type DocumentExtractor interface {
	Extract(ctx context.Context, path string) (*extract.Document, error)
}

type ConvertDocumentHandler struct{ Extractor DocumentExtractor }

func (h *ConvertDocumentHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if strings.TrimSpace(path) == "" {
		return mcp.NewToolResultError("path parameter is required"), nil
	}
	format := render.FormatMarkdown
	if v := stringArgument(args, "format"); v != nil {
		f, err := render.ParseFormat(*v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		format = f
	}

	doc, err := h.Extractor.Extract(ctx, path)
	if errors.Is(err, extract.ErrUnsupportedFormat) || errors.Is(err, extract.ErrTooLarge) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		return nil, err
	}

	out, err := render.Document(doc, format)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(out)), nil
}
