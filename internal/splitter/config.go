package splitter

import (
	"fmt"
	"strings"
)

// Strategy names a splitting algorithm.
type Strategy string

const (
	StrategyRecursive  Strategy = "recursive"
	StrategyCharacter  Strategy = "character"
	StrategyToken      Strategy = "token"
	StrategyMarkdown   Strategy = "markdown"
	StrategyPythonCode Strategy = "python-code"
	StrategyJSCode     Strategy = "js-code"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

var (
	recursiveSeparators = []string{"\n\n", "\n", " ", ""}
	characterSeparators = []string{"\n\n"}
	pythonSeparators    = []string{"\nclass ", "\ndef ", "\n\tdef ", "\n    def ", "\n\n", "\n", " ", ""}
	jsSeparators        = []string{"\nfunction ", "\nclass ", "\nconst ", "\nlet ", "\nvar ", "\n\n", "\n", " ", ""}

	strategyAliases = map[string]Strategy{
		"recursive":   StrategyRecursive,
		"character":   StrategyCharacter,
		"token":       StrategyToken,
		"markdown":    StrategyMarkdown,
		"python-code": StrategyPythonCode,
		"python":      StrategyPythonCode,
		"js-code":     StrategyJSCode,
		"javascript":  StrategyJSCode,
		"js":          StrategyJSCode,
	}
)

// DefaultSeparators returns the recursive separator hierarchy, coarsest first.
func DefaultSeparators() []string {
	return append([]string(nil), recursiveSeparators...)
}

// HeaderSpec maps a markdown header marker such as "##" to the label used in
// chunk context.
type HeaderSpec struct {
	Marker string `json:"marker"`
	Label  string `json:"label"`
}

// DefaultHeaders returns header levels 1 to 3.
func DefaultHeaders() []HeaderSpec {
	return []HeaderSpec{
		{Marker: "#", Label: "Header 1"},
		{Marker: "##", Label: "Header 2"},
		{Marker: "###", Label: "Header 3"},
	}
}

// Config is the per-request split configuration. It is treated as a value:
// the splitter never mutates the Config it receives.
type Config struct {
	Strategy         Strategy     `json:"strategy"`
	ChunkSize        int          `json:"chunk_size"`
	ChunkOverlap     int          `json:"chunk_overlap"`
	Separators       []string     `json:"separators,omitempty"`
	KeepSeparator    bool         `json:"keep_separator"`
	HeadersToSplitOn []HeaderSpec `json:"headers_to_split_on,omitempty"`
	// TokenEncoding selects a tiktoken encoding for the token strategy.
	// Empty means whitespace-delimited words.
	TokenEncoding string `json:"token_encoding,omitempty"`
}

// DefaultConfig returns the configuration used when a caller supplies nothing.
func DefaultConfig() Config {
	return Config{
		Strategy:      StrategyRecursive,
		ChunkSize:     DefaultChunkSize,
		ChunkOverlap:  DefaultChunkOverlap,
		KeepSeparator: true,
	}
}

// ParseStrategy resolves a strategy name or alias. Unknown names resolve to
// the recursive strategy and report false.
func ParseStrategy(name string) (Strategy, bool) {
	s, ok := strategyAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return StrategyRecursive, false
	}
	return s, true
}

// Normalize returns a copy with the strategy resolved and strategy-specific
// defaults filled in. Size and overlap are left untouched for Validate.
func (c Config) Normalize() Config {
	out := c
	out.Strategy, _ = ParseStrategy(string(c.Strategy))
	out.Separators = append([]string(nil), c.Separators...)
	out.HeadersToSplitOn = append([]HeaderSpec(nil), c.HeadersToSplitOn...)

	switch out.Strategy {
	case StrategyRecursive:
		if len(out.Separators) == 0 {
			out.Separators = DefaultSeparators()
		} else if out.Separators[len(out.Separators)-1] != "" {
			out.Separators = append(out.Separators, "")
		}
	case StrategyCharacter:
		if len(out.Separators) == 0 {
			out.Separators = append([]string(nil), characterSeparators...)
		}
	case StrategyMarkdown:
		if len(out.HeadersToSplitOn) == 0 {
			out.HeadersToSplitOn = DefaultHeaders()
		}
	case StrategyToken:
		out.Separators = nil
		out.KeepSeparator = false
	}
	return out
}

// Validate reports configurations the engine refuses to run.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be > 0, got %d", ErrInvalidConfiguration, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk_overlap must be >= 0, got %d", ErrInvalidConfiguration, c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: chunk_overlap (%d) must be less than chunk_size (%d)",
			ErrInvalidConfiguration, c.ChunkOverlap, c.ChunkSize)
	}
	return nil
}

// FallbackConfig is the configuration retried once after a strategy failure:
// recursive, default separators, same size and overlap.
func FallbackConfig(c Config) Config {
	return Config{
		Strategy:      StrategyRecursive,
		ChunkSize:     c.ChunkSize,
		ChunkOverlap:  c.ChunkOverlap,
		Separators:    DefaultSeparators(),
		KeepSeparator: true,
	}
}
