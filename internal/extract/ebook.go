package extract

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/tabula/epubdoc"
	"github.com/tsawler/tabula/htmldoc"
)

// Ebook reads DRM-free EPUB files chapter by chapter.
type Ebook struct{}

func (Ebook) Extract(_ context.Context, path string) (*Document, error) {
	r, err := epubdoc.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open epub: %w", err)
	}
	defer r.Close()

	md, err := r.Markdown()
	if err != nil {
		return nil, fmt.Errorf("read epub: %w", err)
	}

	m := r.Metadata()
	heading := "Book Information"
	if strings.TrimSpace(m.Title) != "" {
		heading = m.Title
	}
	doc := &Document{Format: FormatEbook, Heading: heading, Text: md}
	doc.addField("Title", m.Title)
	doc.addField("Author", strings.Join(m.Creator, ", "))
	doc.addField("Language", m.Language)
	doc.addField("Publisher", m.Publisher)
	doc.addField("Date", m.Date)
	doc.addField("Identifier", m.Identifier)
	doc.addField("Subjects", strings.Join(m.Subjects, ", "))
	doc.addField("Chapters", strconv.Itoa(r.ChapterCount()))

	for i, ch := range r.Chapters() {
		title := ch.Title
		if title == "" {
			title = fmt.Sprintf("Chapter %d", i+1)
		}
		doc.Sections = append(doc.Sections, Section{Index: i, Title: title})
	}
	return doc, nil
}

// HTML converts web pages to markdown.
type HTML struct{}

func (HTML) Extract(_ context.Context, path string) (*Document, error) {
	r, err := htmldoc.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open html: %w", err)
	}
	defer r.Close()

	md, err := r.Markdown()
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}
	doc := &Document{Format: FormatHTML, Heading: "Document Information", Text: md}
	addModelMetadata(doc, r.Metadata())
	return doc, nil
}
