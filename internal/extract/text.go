package extract

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// fenceLanguages maps source extensions to the language tag of the fenced
// block their content is wrapped in. Extensions not listed stay unfenced.
var fenceLanguages = map[string]string{
	"json":       "json",
	"xml":        "xml",
	"yaml":       "yaml",
	"yml":        "yaml",
	"sql":        "sql",
	"js":         "javascript",
	"javascript": "javascript",
	"ts":         "typescript",
	"typescript": "typescript",
	"py":         "python",
	"python":     "python",
	"java":       "java",
	"cpp":        "cpp",
	"c++":        "cpp",
	"cc":         "cpp",
	"cxx":        "cpp",
	"c":          "c",
	"go":         "go",
	"rs":         "rust",
	"rust":       "rust",
	"php":        "php",
	"css":        "css",
}

// PlainText reads text and source files, guessing the encoding.
type PlainText struct{}

func (PlainText) Extract(_ context.Context, path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	content, encoding, err := DecodeText(raw)
	if err != nil {
		return nil, err
	}

	ext := Ext(path)
	if ext == "" {
		ext = "txt"
	}
	text := content
	if lang, ok := fenceLanguages[ext]; ok {
		text = "```" + lang + "\n" + content + "\n```"
	}

	doc := &Document{
		Format:  FormatText,
		Heading: strings.ToUpper(ext) + " File",
		Text:    text,
	}
	doc.addField("Encoding", encoding)
	doc.addField("Lines", strconv.Itoa(countLines(content)))
	doc.addField("Characters", strconv.Itoa(utf8.RuneCountInString(content)))
	return doc, nil
}

// DecodeText returns raw as UTF-8 together with the encoding it was read
// as: utf-8, then windows-1252, then latin-1 (which accepts any byte).
func DecodeText(raw []byte) (string, string, error) {
	if utf8.Valid(raw) {
		return strings.TrimPrefix(string(raw), "\uFEFF"), "utf-8", nil
	}
	if s, err := charmap.Windows1252.NewDecoder().Bytes(raw); err == nil && !strings.ContainsRune(string(s), utf8.RuneError) {
		return string(s), "windows-1252", nil
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", "", fmt.Errorf("decode text: %w", err)
	}
	return string(s), "latin-1", nil
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
