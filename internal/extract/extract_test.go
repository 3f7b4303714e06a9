package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roivaz/docsplit/internal/logging"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestPlainTextFencesCode(t *testing.T) {
	path := writeFile(t, "hello.py", []byte("def hello():\n    return 1\n"))

	doc, err := NewRegistry(logging.Discard(), 0).Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, FormatText, doc.Format)
	assert.Equal(t, "PY File", doc.Heading)
	assert.Equal(t, "```python\ndef hello():\n    return 1\n\n```", doc.Text)
	assert.Equal(t, []Field{
		{Key: "Encoding", Value: "utf-8"},
		{Key: "Lines", Value: "2"},
		{Key: "Characters", Value: "26"},
	}, doc.Metadata)
}

func TestPlainTextMarkdownStaysUnfenced(t *testing.T) {
	path := writeFile(t, "notes.md", []byte("# Notes\n\nbody"))
	doc, err := PlainText{}.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "# Notes\n\nbody", doc.Text)
	assert.Equal(t, "MD File", doc.Heading)
}

func TestDecodeTextFallsBackToWindows1252(t *testing.T) {
	s, enc, err := DecodeText([]byte("caf\xe9 \x80"))
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", enc)
	assert.Equal(t, "café €", s)

	s, enc, err = DecodeText([]byte("\xef\xbb\xbfplain"))
	require.NoError(t, err)
	assert.Equal(t, "utf-8", enc)
	assert.Equal(t, "plain", s)
}

func TestRegistryRejectsUnknownAndLegacyFormats(t *testing.T) {
	reg := NewRegistry(logging.Discard(), 0)
	for _, name := range []string{"report.doc", "book.mobi", "archive.zip", "noext"} {
		path := writeFile(t, name, []byte("x"))
		_, err := reg.Extract(context.Background(), path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, name)
		assert.False(t, reg.Supports(path))
	}
	assert.True(t, reg.Supports("slides.PPTX"))
}

func TestRegistryEnforcesSizeLimit(t *testing.T) {
	path := writeFile(t, "big.txt", []byte(strings.Repeat("a", 64)))
	_, err := NewRegistry(logging.Discard(), 32).Extract(context.Background(), path)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestRegistryHonorsCancelledContext(t *testing.T) {
	path := writeFile(t, "a.txt", []byte("a"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRegistry(logging.Discard(), 0).Extract(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCSVRows(t *testing.T) {
	path := writeFile(t, "people.csv", []byte("name,age\nann,30\nbob,41\n"))
	doc, err := NewRegistry(logging.Discard(), 0).Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, doc.Format)
	assert.Contains(t, doc.Text, "## Row 1\n\nname: ann\nage: 30")
	assert.Contains(t, doc.Text, "## Row 2\n\nname: bob\nage: 41")
	assert.Equal(t, []Field{{Key: "Rows", Value: "2"}, {Key: "Columns", Value: "2"}}, doc.Metadata)
}

func TestHTMLToMarkdown(t *testing.T) {
	page := `<html><head><title>Greeting</title></head><body><h1>Hello</h1><p>Hello world paragraph.</p></body></html>`
	path := writeFile(t, "page.html", []byte(page))
	doc, err := NewRegistry(logging.Discard(), 0).Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, doc.Format)
	assert.Contains(t, doc.Text, "# Hello")
	assert.Contains(t, doc.Text, "Hello world paragraph.")
	assert.Contains(t, doc.Metadata, Field{Key: "Title", Value: "Greeting"})
}
