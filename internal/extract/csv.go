package extract

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
)

// CSV renders each data row as a block of "column: value" lines.
type CSV struct{}

func (CSV) Extract(ctx context.Context, path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	rows, err := documentloaders.NewCSV(f).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	var b strings.Builder
	columns := 0
	for i, row := range rows {
		if i == 0 {
			columns = strings.Count(row.PageContent, "\n") + 1
		}
		fmt.Fprintf(&b, "## Row %d\n\n%s\n\n", i+1, row.PageContent)
	}

	doc := &Document{Format: FormatCSV, Heading: "CSV Data", Text: strings.TrimRight(b.String(), "\n")}
	doc.addField("Rows", strconv.Itoa(len(rows)))
	if columns > 0 {
		doc.addField("Columns", strconv.Itoa(columns))
	}
	return doc, nil
}
