package embeddings

import (
	"strings"
	"testing"
)

func TestBuildInput(t *testing.T) {
	got := BuildInput("guide.md", "chunk body")
	if got != "Document: guide.md\n\nchunk body" {
		t.Fatalf("unexpected input %q", got)
	}
	if got := BuildInput("", "only"); got != "only" {
		t.Fatalf("unexpected input %q", got)
	}
}

func TestBuildInputTruncatesLongChunks(t *testing.T) {
	got := BuildInput("", strings.Repeat("é", maxInputChars+50))
	if n := len([]rune(got)); n != maxInputChars {
		t.Fatalf("expected %d runes, got %d", maxInputChars, n)
	}
}
