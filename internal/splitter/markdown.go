package splitter

import (
	"fmt"
	"sort"
	"strings"
)

// Header is one entry of a chunk's header context.
type Header struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type activeHeader struct {
	level int
	Header
}

type markdownSection struct {
	headers []Header
	body    string
}

// SplitMarkdown partitions text on ATX header lines. Each non-empty section
// becomes one chunk whose text is prefixed with its header context, e.g.
// "[Header 1: Intro | Header 2: Setup]". Text without any header comes back
// as a single chunk.
//
// A malformed header list (empty or duplicate marker or label) returns an
// error wrapping ErrStrategyFailure; SplitMarkdown does not recover from it.
// Use Splitter.Split with StrategyMarkdown to get the recursive fallback.
func SplitMarkdown(text string, headers []HeaderSpec) ([]Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if len(headers) == 0 {
		headers = DefaultHeaders()
	}
	specs, err := sortedHeaderSpecs(headers)
	if err != nil {
		return nil, err
	}

	sections := scanMarkdown(text, specs)
	if len(sections) == 0 {
		return []Chunk{{Text: strings.TrimSpace(text)}}, nil
	}

	chunks := make([]Chunk, 0, len(sections))
	for _, s := range sections {
		chunks = append(chunks, Chunk{
			Text:    renderHeaderContext(s.headers) + s.body,
			Headers: s.headers,
		})
	}
	return chunks, nil
}

func splitMarkdownStrategy(text string, cfg Config) ([]Chunk, error) {
	return SplitMarkdown(text, cfg.HeadersToSplitOn)
}

// sortedHeaderSpecs validates the header configuration and orders markers
// longest first so "##" is tried before "#".
func sortedHeaderSpecs(headers []HeaderSpec) ([]HeaderSpec, error) {
	markers := make(map[string]struct{}, len(headers))
	labels := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		if strings.TrimSpace(h.Marker) == "" || strings.TrimSpace(h.Label) == "" {
			return nil, strategyErr(StrategyMarkdown, "header spec %q/%q has an empty marker or label", h.Marker, h.Label)
		}
		if _, dup := markers[h.Marker]; dup {
			return nil, strategyErr(StrategyMarkdown, "duplicate header marker %q", h.Marker)
		}
		if _, dup := labels[h.Label]; dup {
			return nil, strategyErr(StrategyMarkdown, "duplicate header label %q", h.Label)
		}
		markers[h.Marker] = struct{}{}
		labels[h.Label] = struct{}{}
	}

	specs := append([]HeaderSpec(nil), headers...)
	sort.SliceStable(specs, func(i, j int) bool {
		return len(specs[i].Marker) > len(specs[j].Marker)
	})
	return specs, nil
}

func scanMarkdown(text string, specs []HeaderSpec) []markdownSection {
	var (
		sections []markdownSection
		stack    []activeHeader
		current  []string
		fence    string
	)

	flush := func() {
		body := strings.TrimSpace(strings.Join(current, "\n"))
		current = current[:0]
		if body == "" {
			return
		}
		ctx := make([]Header, 0, len(stack))
		for _, h := range stack {
			ctx = append(ctx, h.Header)
		}
		sections = append(sections, markdownSection{headers: ctx, body: body})
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if fence != "" {
			current = append(current, line)
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
			continue
		}
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fence = trimmed[:3]
			current = append(current, line)
			continue
		}

		spec, value, ok := matchHeader(trimmed, specs)
		if !ok {
			current = append(current, line)
			continue
		}

		flush()
		level := headerLevel(spec.Marker)
		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, activeHeader{level: level, Header: Header{Label: spec.Label, Value: value}})
	}
	flush()

	return sections
}

func matchHeader(line string, specs []HeaderSpec) (HeaderSpec, string, bool) {
	for _, spec := range specs {
		if !strings.HasPrefix(line, spec.Marker) {
			continue
		}
		rest := line[len(spec.Marker):]
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}
		return spec, strings.TrimSpace(rest), true
	}
	return HeaderSpec{}, "", false
}

// headerLevel is the number of '#' in the marker, or its length for markers
// that use another character.
func headerLevel(marker string) int {
	if n := strings.Count(marker, "#"); n > 0 {
		return n
	}
	return len(marker)
}

func renderHeaderContext(headers []Header) string {
	if len(headers) == 0 {
		return ""
	}
	parts := make([]string, 0, len(headers))
	for _, h := range headers {
		parts = append(parts, fmt.Sprintf("%s: %s", h.Label, h.Value))
	}
	return "[" + strings.Join(parts, " | ") + "]\n\n"
}
