package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/docsplit/internal/render"
	"github.com/roivaz/docsplit/internal/splitter"
)

type SplitTextHandler struct {
	Splitter *splitter.Splitter
	Defaults splitter.Config
}

func (h *SplitTextHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	text, ok := args["text"].(string)
	if !ok {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	params, _ := args["splitter_params"].(string)
	cfg, err := splitter.ParseParams(params, h.Defaults)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	chunks, err := h.Splitter.Split(text, cfg)
	if errors.Is(err, splitter.ErrInvalidConfiguration) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(string(mustMarshal(render.NewSplitResult(chunks, cfg.Normalize())))), nil
}

type ListStrategiesHandler struct{}

func (h *ListStrategiesHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(string(mustMarshal(splitter.Strategies()))), nil
}
