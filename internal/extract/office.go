package extract

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/docx"
	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/odt"
	"github.com/tsawler/tabula/pptx"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/xlsx"
)

// PDF extracts the text layer of PDF files. Scanned pages without text come
// back empty.
type PDF struct{}

func (PDF) Extract(_ context.Context, path string) (*Document, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer r.Close()

	text, warnings, err := tabula.FromReader(r).Text()
	if err != nil {
		return nil, fmt.Errorf("read pdf text: %w", err)
	}

	doc := &Document{Format: FormatPDF, Heading: "Document Information", Text: text}
	if pages, err := r.PageCount(); err == nil {
		doc.addField("Pages", strconv.Itoa(pages))
	}
	doc.addField("Version", fmt.Sprint(r.Version()))
	for _, w := range warnings {
		doc.Warnings = append(doc.Warnings, fmt.Sprint(w))
	}
	return doc, nil
}

// Word handles .docx and .odt documents.
type Word struct{}

func (Word) Extract(_ context.Context, path string) (*Document, error) {
	if Ext(path) == "odt" {
		return extractODT(path)
	}

	r, err := docx.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer r.Close()

	text, err := r.Text()
	if err != nil {
		return nil, fmt.Errorf("read docx text: %w", err)
	}
	doc := &Document{Format: FormatWord, Heading: "Document Information", Text: text}
	addModelMetadata(doc, r.Metadata())
	if pages, err := r.PageCount(); err == nil && pages > 0 {
		doc.addField("Pages", strconv.Itoa(pages))
	}
	return doc, nil
}

func extractODT(path string) (*Document, error) {
	r, err := odt.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open odt: %w", err)
	}
	defer r.Close()

	md, err := r.Markdown()
	if err != nil {
		return nil, fmt.Errorf("read odt: %w", err)
	}
	doc := &Document{Format: FormatWord, Heading: "Document Information", Text: md}
	addModelMetadata(doc, r.Metadata())
	return doc, nil
}

// Spreadsheet renders every sheet of an .xlsx workbook as a markdown table.
type Spreadsheet struct{}

func (Spreadsheet) Extract(_ context.Context, path string) (*Document, error) {
	r, err := xlsx.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer r.Close()

	md, err := r.Markdown()
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	names := r.SheetNames()
	doc := &Document{Format: FormatSpreadsheet, Heading: "Excel Workbook", Text: md}
	doc.addField("Sheets", strconv.Itoa(len(names)))
	addModelMetadata(doc, r.Metadata())
	for i, name := range names {
		doc.Sections = append(doc.Sections, Section{Index: i, Title: name})
	}
	return doc, nil
}

// Slides extracts slide text and speaker notes from .pptx presentations.
type Slides struct{}

func (Slides) Extract(_ context.Context, path string) (*Document, error) {
	r, err := pptx.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pptx: %w", err)
	}
	defer r.Close()

	md, err := r.Markdown()
	if err != nil {
		return nil, fmt.Errorf("read pptx: %w", err)
	}
	count := r.SlideCount()
	doc := &Document{Format: FormatSlides, Heading: "Presentation", Text: md}
	doc.addField("Slides", strconv.Itoa(count))
	addModelMetadata(doc, r.Metadata())
	for i := 0; i < count; i++ {
		doc.Sections = append(doc.Sections, Section{Index: i, Title: fmt.Sprintf("Slide %d", i+1)})
	}
	return doc, nil
}

func addModelMetadata(doc *Document, m model.Metadata) {
	doc.addField("Title", m.Title)
	doc.addField("Author", m.Author)
	doc.addField("Subject", m.Subject)
	doc.addField("Keywords", strings.Join(m.Keywords, ", "))
	doc.addField("Creator", m.Creator)
	doc.addField("Producer", m.Producer)
	if !m.CreationDate.IsZero() {
		doc.addField("Created", m.CreationDate.Format(time.RFC3339))
	}
	if !m.ModDate.IsZero() {
		doc.addField("Modified", m.ModDate.Format(time.RFC3339))
	}

	keys := make([]string, 0, len(m.Custom))
	for k := range m.Custom {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		doc.addField(k, m.Custom[k])
	}
}
