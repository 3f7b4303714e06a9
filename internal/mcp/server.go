package mcp

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/docsplit/internal/db"
	"github.com/roivaz/docsplit/internal/logging"
)

type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler
	DB      *db.Database
	log     logging.Logger
}

var toolDefinitions = map[string]mcp.Tool{
	"convert_document": mcp.NewTool("convert_document",
		mcp.WithDescription("Convert a local document (PDF, Word, spreadsheet, CSV, slides, ebook, HTML, text or source code) to markdown text with a metadata header."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the document on the server's filesystem"),
		),
		mcp.WithString("format",
			mcp.Description("Output format (default: md)"),
			mcp.Enum("md", "json", "yaml"),
		),
	),
	"split_text": mcp.NewTool("split_text",
		mcp.WithDescription("Split text into bounded-size chunks. Returns the chunks, their count and the effective splitter parameters."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to split"),
		),
		mcp.WithString("splitter_params",
			mcp.Description(`Optional JSON object, e.g. {"splitter_type":"markdown","chunk_size":500,"chunk_overlap":50}`),
		),
	),
	"list_strategies": mcp.NewTool("list_strategies",
		mcp.WithDescription("List the available splitting strategies with their parameters and default separators."),
	),
	"search_chunks": mcp.NewTool("search_chunks",
		mcp.WithDescription("Semantic search across ingested document chunks using embeddings. Returns matching chunks with similarity scores."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural language search query"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (default: 10)"),
		),
		mcp.WithString("format",
			mcp.Description("Optional: only return chunks of documents in this format (e.g. 'pdf', 'text')"),
		),
	),
	"get_document_chunks": mcp.NewTool("get_document_chunks",
		mcp.WithDescription("Return an ingested document's split parameters and all of its chunks in order."),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("Document id as returned by search_chunks"),
		),
	),
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		"docsplit",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	for name, adapter := range cfg.ToolAdapters {
		tool, ok := toolDefinitions[name]
		if !ok {
			cfg.Logger.Info("skipping unknown tool", "tool", name)
			continue
		}
		mcpServer.AddTool(tool, adapter.ToolAdapter)
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	return &Server{
		MCP:     mcpServer,
		HTTP:    httpServer,
		Handler: httpServer,
		DB:      cfg.Database,
		log:     cfg.Logger,
	}
}

func (s *Server) Close() {
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			s.log.Error(err, "error closing database")
		}
	}
}
