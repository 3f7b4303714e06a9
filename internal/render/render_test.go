package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/roivaz/docsplit/internal/extract"
	"github.com/roivaz/docsplit/internal/splitter"
)

func TestMarkdownDocument(t *testing.T) {
	doc := &extract.Document{
		Heading: "TXT File",
		Text:    "hello",
		Metadata: []extract.Field{
			{Key: "Encoding", Value: "utf-8"},
			{Key: "Lines", Value: "1"},
			{Key: "Characters", Value: "5"},
		},
	}
	assert.Equal(t, "# TXT File\n\n**Encoding:** utf-8\n**Lines:** 1\n**Characters:** 5\n\n---\n\nhello", Markdown(doc))
	assert.Equal(t, "plain", Markdown(&extract.Document{Text: "plain"}))
}

func TestSplitMarkdown(t *testing.T) {
	cfg := splitter.DefaultConfig()
	res := NewSplitResult([]splitter.Chunk{{Index: 0, Text: "first"}, {Index: 1, Text: "second"}}, cfg)

	out, err := Split(res, FormatMarkdown)
	require.NoError(t, err)
	md := string(out)
	assert.True(t, strings.HasPrefix(md, "# Split Document\n\n**Chunk Count:** 2\n\n**Splitter Parameters:** {"))
	assert.Contains(t, md, "\"chunk_size\": 1000")
	assert.Contains(t, md, "## Chunk 1\n\nfirst\n\n---\n\n## Chunk 2\n\nsecond\n\n---\n\n")
}

func TestSplitStructuredFormats(t *testing.T) {
	res := NewSplitResult([]splitter.Chunk{{Text: "a"}, {Text: "b"}}, splitter.DefaultConfig())

	out, err := Split(res, FormatJSON)
	require.NoError(t, err)
	var decoded SplitResult
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, []string{"a", "b"}, decoded.Chunks)
	assert.Equal(t, 2, decoded.ChunkCount)

	out, err = Split(res, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(out), "chunk_count: 2")
	var fromYAML SplitResult
	require.NoError(t, yaml.Unmarshal(out, &fromYAML))
	assert.Equal(t, splitter.StrategyRecursive, fromYAML.SplitterParams.Strategy)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatMarkdown, "markdown": FormatMarkdown, "JSON": FormatJSON, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short", PreviewLength))
	assert.Equal(t, "héll...", Preview("héllo", 4))
	long := strings.Repeat("x", 600)
	assert.Len(t, Preview(long, PreviewLength), 503)
}
