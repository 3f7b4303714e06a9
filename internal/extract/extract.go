// Package extract turns uploaded files into normalized markdown text for the
// splitter. Each supported format has an Extractor; the Registry picks one by
// file extension.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roivaz/docsplit/internal/logging"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrTooLarge          = errors.New("file exceeds maximum content size")
)

// Format identifies the extractor family that produced a Document.
type Format string

const (
	FormatPDF         Format = "pdf"
	FormatWord        Format = "word"
	FormatSpreadsheet Format = "spreadsheet"
	FormatCSV         Format = "csv"
	FormatSlides      Format = "slides"
	FormatEbook       Format = "ebook"
	FormatHTML        Format = "html"
	FormatText        Format = "text"
)

// Field is one metadata entry. Order is preserved for rendering.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Section names a structural unit of the source (sheet, slide, chapter).
type Section struct {
	Index int    `json:"index"`
	Title string `json:"title"`
}

// Document is the common result of every extractor.
type Document struct {
	Format Format `json:"format"`
	// Heading is the title line used when rendering the document.
	Heading  string    `json:"heading"`
	Text     string    `json:"text"`
	Sections []Section `json:"sections,omitempty"`
	Metadata []Field   `json:"metadata,omitempty"`
	Warnings []string  `json:"warnings,omitempty"`
}

func (d *Document) addField(key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		d.Metadata = append(d.Metadata, Field{Key: key, Value: value})
	}
}

// Extractor reads one file format.
type Extractor interface {
	Extract(ctx context.Context, path string) (*Document, error)
}

// legacyExtensions are recognized but deliberately not parsed.
var legacyExtensions = map[string]string{
	"doc":  "legacy Word",
	"xls":  "legacy Excel",
	"ppt":  "legacy PowerPoint",
	"mobi": "MOBI ebook",
	"azw":  "Kindle ebook",
	"azw3": "Kindle ebook",
}

var textExtensions = []string{
	"txt", "md", "markdown", "js", "javascript", "ts", "typescript", "py", "python",
	"java", "cpp", "c++", "cc", "cxx", "c", "css", "json", "xml", "yaml", "yml",
	"sql", "php", "go", "rs", "rust",
}

// Registry maps file extensions to extractors and enforces the size limit.
type Registry struct {
	log      logging.Logger
	maxBytes int64
	byExt    map[string]Extractor
}

// NewRegistry returns a registry with every built-in extractor. maxBytes <= 0
// disables the size limit.
func NewRegistry(log logging.Logger, maxBytes int64) *Registry {
	r := &Registry{
		log:      log.WithName("extract"),
		maxBytes: maxBytes,
		byExt:    map[string]Extractor{},
	}
	r.Register(PDF{}, "pdf")
	r.Register(Word{}, "docx", "odt")
	r.Register(Spreadsheet{}, "xlsx")
	r.Register(CSV{}, "csv")
	r.Register(Slides{}, "pptx")
	r.Register(Ebook{}, "epub")
	r.Register(HTML{}, "html", "htm")
	r.Register(PlainText{}, textExtensions...)
	return r
}

// Register binds extensions (without the dot, case-insensitive) to e.
func (r *Registry) Register(e Extractor, exts ...string) {
	for _, ext := range exts {
		r.byExt[strings.ToLower(ext)] = e
	}
}

// Extensions lists the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	out := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Supports reports whether path has a registered extension.
func (r *Registry) Supports(path string) bool {
	_, err := r.lookup(path)
	return err == nil
}

func (r *Registry) lookup(path string) (Extractor, error) {
	ext := Ext(path)
	if e, ok := r.byExt[ext]; ok {
		return e, nil
	}
	if kind, ok := legacyExtensions[ext]; ok {
		return nil, fmt.Errorf("%w: %s (.%s) is not supported, convert it to a modern format first", ErrUnsupportedFormat, kind, ext)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Base(path))
}

// Extract checks the size limit and runs the extractor registered for path.
func (r *Registry) Extract(ctx context.Context, path string) (*Document, error) {
	e, err := r.lookup(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if r.maxBytes > 0 && info.Size() > r.maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, filepath.Base(path), info.Size(), r.maxBytes)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := e.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filepath.Base(path), err)
	}
	if len(doc.Warnings) > 0 {
		r.log.Info("extraction finished with warnings", "file", filepath.Base(path), "warnings", len(doc.Warnings))
	}
	r.log.Debug("extracted document", "file", filepath.Base(path), "format", doc.Format, "chars", len(doc.Text))
	return doc, nil
}

// Ext returns the lower-cased extension of path without the dot.
func Ext(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
