package splitter

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// Span is a half-open byte range of the source text.
type Span struct {
	Start int
	End   int
}

// Tokenizer cuts text into ordered, non-overlapping token spans.
type Tokenizer interface {
	Tokenize(text string) []Span
}

// WordTokenizer treats every whitespace-delimited word as one token.
type WordTokenizer struct{}

func (WordTokenizer) Tokenize(text string) []Span {
	var spans []Span
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, Span{Start: start, End: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, Span{Start: start, End: len(text)})
	}
	return spans
}

// TiktokenTokenizer uses a BPE encoding such as cl100k_base.
type TiktokenTokenizer struct {
	enc *tiktoken.Tiktoken
}

func (t TiktokenTokenizer) Tokenize(text string) []Span {
	ids := t.enc.Encode(text, nil, nil)
	spans := make([]Span, 0, len(ids))
	offset := 0
	for _, id := range ids {
		n := len(t.enc.Decode([]int{id}))
		end := offset + n
		if end > len(text) {
			end = len(text)
		}
		spans = append(spans, Span{Start: offset, End: end})
		offset = end
	}
	return spans
}

var (
	encodingsMu sync.Mutex
	encodings   = map[string]*tiktoken.Tiktoken{}

	getEncodingFunc = tiktoken.GetEncoding
)

// NewTokenizer returns the word tokenizer for an empty encoding name and a
// cached tiktoken tokenizer otherwise.
func NewTokenizer(encoding string) (Tokenizer, error) {
	encoding = strings.TrimSpace(encoding)
	if encoding == "" {
		return WordTokenizer{}, nil
	}

	encodingsMu.Lock()
	defer encodingsMu.Unlock()
	if enc, ok := encodings[encoding]; ok {
		return TiktokenTokenizer{enc: enc}, nil
	}
	enc, err := getEncodingFunc(encoding)
	if err != nil {
		return nil, strategyErr(StrategyToken, "load encoding %q: %w", encoding, err)
	}
	encodings[encoding] = enc
	return TiktokenTokenizer{enc: enc}, nil
}

// SplitTokens windows text over tokens: each chunk covers at most chunkSize
// tokens and consecutive chunks share exactly chunkOverlap tokens.
func SplitTokens(text string, tok Tokenizer, chunkSize, chunkOverlap int) []string {
	spans := tok.Tokenize(text)
	if len(spans) == 0 {
		return nil
	}
	step := chunkSize - chunkOverlap

	var out []string
	for start := 0; start < len(spans); start += step {
		end := start + chunkSize
		if end > len(spans) {
			end = len(spans)
		}
		piece := text[spans[start].Start:spans[end-1].End]
		if !utf8.ValidString(piece) {
			piece = strings.ToValidUTF8(piece, "")
		}
		out = append(out, piece)
		if end == len(spans) {
			break
		}
	}
	return out
}

func splitTokenStrategy(text string, cfg Config) ([]Chunk, error) {
	tok, err := NewTokenizer(cfg.TokenEncoding)
	if err != nil {
		return nil, err
	}
	return textChunks(SplitTokens(text, tok, cfg.ChunkSize, cfg.ChunkOverlap)), nil
}
