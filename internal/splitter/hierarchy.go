package splitter

import (
	"strings"
)

// hierarchy is the separator-hierarchy splitter shared by the recursive and
// code strategies.
type hierarchy struct {
	size    int
	overlap int
	keep    bool
	length  lengthFunc
}

// SplitRecursive splits text on the first separator of the hierarchy that
// occurs in it, windows the pieces that fit and recurses into the pieces that
// do not with the finer separators. When keepSeparator is set the separator
// stays attached to the start of the piece that follows it.
func SplitRecursive(text string, separators []string, chunkSize, chunkOverlap int, keepSeparator bool) ([]string, error) {
	cfg := Config{
		Strategy:      StrategyRecursive,
		ChunkSize:     chunkSize,
		ChunkOverlap:  chunkOverlap,
		Separators:    separators,
		KeepSeparator: keepSeparator,
	}.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return newHierarchy(cfg).split(text, cfg.Separators), nil
}

func newHierarchy(cfg Config) hierarchy {
	return hierarchy{
		size:    cfg.ChunkSize,
		overlap: cfg.ChunkOverlap,
		keep:    cfg.KeepSeparator,
		length:  runeLen,
	}
}

func (h hierarchy) split(text string, separators []string) []string {
	if len(separators) == 0 {
		separators = recursiveSeparators
	}

	sep := separators[len(separators)-1]
	var finer []string
	for i, s := range separators {
		if s == "" {
			sep = s
			break
		}
		if strings.Contains(text, s) {
			sep = s
			finer = separators[i+1:]
			break
		}
	}

	joiner := sep
	if h.keep {
		joiner = ""
	}

	var out, pending []string
	for _, piece := range splitOnSeparator(text, sep, h.keep) {
		if h.length(piece) <= h.size {
			pending = append(pending, piece)
			continue
		}
		if len(pending) > 0 {
			out = append(out, mergeSegments(pending, joiner, h.size, h.overlap, h.length)...)
			pending = nil
		}
		if len(finer) == 0 {
			out = append(out, piece)
			continue
		}
		out = append(out, h.split(piece, finer)...)
	}
	if len(pending) > 0 {
		out = append(out, mergeSegments(pending, joiner, h.size, h.overlap, h.length)...)
	}
	return out
}

// splitOnSeparator cuts text on sep. The empty separator yields single
// characters. With keep the separator is prefixed to the piece after it.
// Empty pieces are dropped.
func splitOnSeparator(text, sep string, keep bool) []string {
	if sep == "" {
		pieces := make([]string, 0, len(text))
		for _, r := range text {
			pieces = append(pieces, string(r))
		}
		return pieces
	}

	parts := strings.Split(text, sep)
	pieces := make([]string, 0, len(parts))
	for i, p := range parts {
		if keep && i > 0 {
			p = sep + p
		}
		if p != "" {
			pieces = append(pieces, p)
		}
	}
	return pieces
}
