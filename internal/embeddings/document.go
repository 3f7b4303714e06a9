package embeddings

import (
	"strings"
)

const maxInputChars = 6000

// BuildInput prefixes a chunk with the name of the document it came from so
// that short chunks still embed with some context. Long chunks are cut.
func BuildInput(documentName, chunk string) string {
	var builder strings.Builder
	if documentName != "" {
		builder.WriteString("Document: ")
		builder.WriteString(documentName)
		builder.WriteString("\n\n")
	}
	if r := []rune(chunk); len(r) > maxInputChars {
		builder.WriteString(string(r[:maxInputChars]))
	} else {
		builder.WriteString(chunk)
	}
	return builder.String()
}
