package splitter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// lengthFunc measures a segment in the strategy's unit.
type lengthFunc func(string) int

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// Window packs segments greedily into windows of at most chunkSize
// characters, joining them with joiner. Each new window starts with the
// longest run of trailing whole segments of the previous window whose
// length does not exceed chunkOverlap. When even the last segment is longer
// than that, the window starts instead with at most chunkOverlap trailing
// characters of the previous window, cut forward to a word boundary when
// there is one. A single segment longer than chunkSize becomes its own
// window.
func Window(segments []string, joiner string, chunkSize, chunkOverlap int) []string {
	return mergeSegments(segments, joiner, chunkSize, chunkOverlap, runeLen)
}

func mergeSegments(segments []string, joiner string, size, overlap int, length lengthFunc) []string {
	joinLen := length(joiner)
	// cost of the joiner placed before a segment appended to n segments
	joinCost := func(n int) int {
		if n > 0 {
			return joinLen
		}
		return 0
	}

	var (
		windows []string
		current []string
		total   int
	)
	emit := func() {
		if w := strings.TrimSpace(strings.Join(current, joiner)); w != "" {
			windows = append(windows, w)
		}
	}

	for _, seg := range segments {
		segLen := length(seg)
		if len(current) > 0 && total+segLen+joinCost(len(current)) > size {
			prev := strings.TrimSpace(strings.Join(current, joiner))
			emit()
			for total > overlap || (total > 0 && total+segLen+joinCost(len(current)) > size) {
				total -= length(current[0])
				if len(current) > 1 {
					total -= joinLen
				}
				current = current[1:]
			}
			if len(current) == 0 && overlap > 0 {
				if seed := tailSeed(prev, min(overlap, size-segLen-joinLen)); seed != "" {
					current = []string{seed}
					total = length(seed)
				}
			}
		}
		total += segLen + joinCost(len(current))
		current = append(current, seg)
	}
	if len(current) > 0 {
		emit()
	}
	return windows
}

// tailSeed returns at most budget trailing runes of window. A cut that
// lands inside a word moves forward past the next whitespace; without any
// whitespace the raw suffix is kept.
func tailSeed(window string, budget int) string {
	if budget <= 0 {
		return ""
	}
	runes := []rune(window)
	if len(runes) <= budget {
		return window
	}
	start := len(runes) - budget
	if !unicode.IsSpace(runes[start-1]) {
		for i := start; i < len(runes); i++ {
			if unicode.IsSpace(runes[i]) {
				start = i + 1
				break
			}
		}
	}
	return strings.TrimSpace(string(runes[start:]))
}
