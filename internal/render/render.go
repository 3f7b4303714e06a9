// Package render formats extracted documents and split results for output.
package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"sigs.k8s.io/yaml"

	"github.com/roivaz/docsplit/internal/extract"
	"github.com/roivaz/docsplit/internal/splitter"
)

// Format is an output encoding.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// PreviewLength is the number of characters shown by Preview.
const PreviewLength = 500

// ParseFormat accepts md/markdown, json and yaml/yml.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q", name)
	}
}

// Markdown renders doc as a metadata block followed by its text:
//
//	# PY File
//
//	**Encoding:** utf-8
//	**Lines:** 2
//
//	---
//
//	<text>
func Markdown(doc *extract.Document) string {
	var b strings.Builder
	if doc.Heading != "" {
		fmt.Fprintf(&b, "# %s\n\n", doc.Heading)
	}
	if len(doc.Metadata) > 0 {
		for _, f := range doc.Metadata {
			fmt.Fprintf(&b, "**%s:** %s\n", f.Key, f.Value)
		}
		b.WriteString("\n---\n\n")
	}
	b.WriteString(doc.Text)
	return b.String()
}

// Document encodes doc in the requested format.
func Document(doc *extract.Document, format Format) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return []byte(Markdown(doc)), nil
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// SplitResult is the structured form of a split.
type SplitResult struct {
	Chunks         []string        `json:"chunks"`
	ChunkCount     int             `json:"chunk_count"`
	SplitterParams splitter.Config `json:"splitter_params"`
}

// NewSplitResult collects chunk texts alongside the configuration that made them.
func NewSplitResult(chunks []splitter.Chunk, cfg splitter.Config) SplitResult {
	texts := splitter.Texts(chunks)
	return SplitResult{Chunks: texts, ChunkCount: len(texts), SplitterParams: cfg}
}

// Split encodes a split result. The markdown form lists every chunk under a
// "## Chunk N" heading separated by rules.
func Split(res SplitResult, format Format) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return splitMarkdown(res)
	case FormatJSON:
		return json.MarshalIndent(res, "", "  ")
	case FormatYAML:
		return yaml.Marshal(res)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func splitMarkdown(res SplitResult) ([]byte, error) {
	params, err := json.MarshalIndent(res.SplitterParams, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode splitter params: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Split Document\n\n**Chunk Count:** %d\n\n**Splitter Parameters:** %s\n\n---\n\n", res.ChunkCount, params)
	for i, chunk := range res.Chunks {
		fmt.Fprintf(&b, "## Chunk %d\n\n%s\n\n---\n\n", i+1, chunk)
	}
	return []byte(b.String()), nil
}

// Preview returns the first n characters of s, with "..." appended when s
// was cut.
func Preview(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
