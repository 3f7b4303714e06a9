package tools

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roivaz/docsplit/internal/extract"
	"github.com/roivaz/docsplit/internal/logging"
	"github.com/roivaz/docsplit/internal/mcp/tools/types"
	"github.com/roivaz/docsplit/internal/render"
	"github.com/roivaz/docsplit/internal/splitter"
)

func callTool(t *testing.T, adapter interface {
	ToolAdapter(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
}, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := adapter.ToolAdapter(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func newSplitHandler() *SplitTextHandler {
	return &SplitTextHandler{Splitter: splitter.New(logging.Discard()), Defaults: splitter.DefaultConfig()}
}

func TestSplitTextReturnsChunks(t *testing.T) {
	res := callTool(t, newSplitHandler(), map[string]any{
		"text":            "# A\nalpha\n## B\nbeta",
		"splitter_params": `{"splitter_type":"markdown","chunk_size":100,"chunk_overlap":0}`,
	})
	require.False(t, res.IsError)

	var out render.SplitResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, 2, out.ChunkCount)
	assert.Equal(t, []string{"[Header 1: A]\n\nalpha", "[Header 1: A | Header 2: B]\n\nbeta"}, out.Chunks)
	assert.Equal(t, splitter.StrategyMarkdown, out.SplitterParams.Strategy)
}

func TestSplitTextRejectsInvalidConfiguration(t *testing.T) {
	h := newSplitHandler()
	for _, params := range []string{
		`{"chunk_size":10,"chunk_overlap":10}`,
		`{"chunk_size":"big"}`,
	} {
		res := callTool(t, h, map[string]any{"text": "some text", "splitter_params": params})
		assert.True(t, res.IsError, params)
	}

	res := callTool(t, h, map[string]any{})
	assert.True(t, res.IsError)
}

func TestListStrategies(t *testing.T) {
	res := callTool(t, &ListStrategiesHandler{}, nil)
	var out []splitter.StrategyInfo
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Len(t, out, len(splitter.Strategies()))
	assert.Contains(t, resultText(t, res), `"default_params":{"chunk_size":1000,"chunk_overlap":200,"keep_separator":true}`)
}

func TestConvertDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))
	h := &ConvertDocumentHandler{Extractor: extract.NewRegistry(logging.Discard(), 0)}

	res := callTool(t, h, map[string]any{"path": path})
	require.False(t, res.IsError)
	assert.Equal(t, "# TXT File\n\n**Encoding:** utf-8\n**Lines:** 1\n**Characters:** 5\n\n---\n\nhello", resultText(t, res))

	legacy := filepath.Join(t.TempDir(), "old.doc")
	require.NoError(t, os.WriteFile(legacy, []byte("x"), 0o644))
	res = callTool(t, h, map[string]any{"path": legacy})
	assert.True(t, res.IsError)

	res = callTool(t, h, map[string]any{"path": path, "format": "pdf"})
	assert.True(t, res.IsError)
}

type fakeSearch struct {
	query  string
	limit  int
	format *string
	err    error
}

func (f *fakeSearch) SearchChunks(_ context.Context, query string, limit int, format *string) ([]types.ChunkResult, error) {
	f.query, f.limit, f.format = query, limit, format
	if f.err != nil {
		return nil, f.err
	}
	return []types.ChunkResult{{DocumentName: "a.md", Snippet: "alpha", Similarity: 0.9}}, nil
}

func TestSearchChunks(t *testing.T) {
	svc := &fakeSearch{}
	h := &SearchChunksHandler{Service: svc}

	res := callTool(t, h, map[string]any{"query": "alpha", "limit": float64(3), "format": "text"})
	require.False(t, res.IsError)
	assert.Equal(t, 3, svc.limit)
	require.NotNil(t, svc.format)
	assert.Equal(t, "text", *svc.format)
	assert.Contains(t, resultText(t, res), `"total_found":1`)

	callTool(t, h, map[string]any{"query": "alpha"})
	assert.Equal(t, 10, svc.limit)
	assert.Nil(t, svc.format)

	assert.True(t, callTool(t, h, map[string]any{"query": "  "}).IsError)

	svc.err = errors.New("boom")
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"query": "alpha"}
	_, err := h.ToolAdapter(context.Background(), req)
	assert.Error(t, err)
}

type fakeDocuments map[string]*types.DocumentChunks

func (f fakeDocuments) GetDocumentChunks(_ context.Context, id string) (*types.DocumentChunks, error) {
	if id == "broken" {
		return nil, errors.New("connection reset")
	}
	return f[id], nil
}

func TestGetDocumentChunks(t *testing.T) {
	h := &GetDocumentChunksHandler{Service: fakeDocuments{
		"doc-1": {DocumentID: "doc-1", Name: "a.md", ChunkCount: 2, Chunks: []types.DocumentChunk{
			{ChunkIndex: 0, Text: "first"},
			{ChunkIndex: 1, Text: "second"},
		}},
	}}

	res := callTool(t, h, map[string]any{"document_id": "doc-1"})
	require.False(t, res.IsError)
	var out types.DocumentChunks
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, "a.md", out.Name)
	require.Len(t, out.Chunks, 2)
	assert.Equal(t, "second", out.Chunks[1].Text)

	assert.True(t, callTool(t, h, map[string]any{"document_id": "missing"}).IsError)
	assert.True(t, callTool(t, h, map[string]any{}).IsError)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"document_id": "broken"}
	_, err := h.ToolAdapter(context.Background(), req)
	assert.Error(t, err)
}
