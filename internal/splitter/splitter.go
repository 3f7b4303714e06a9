// Package splitter turns normalized document text into ordered, bounded
// chunks. Strategies are pure functions over (text, Config); the Splitter
// dispatches between them and retries once with the recursive strategy when a
// strategy fails.
package splitter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roivaz/docsplit/internal/logging"
)

// Chunk is one unit of splitter output.
type Chunk struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	// Headers is the markdown header context, already rendered into Text.
	Headers []Header `json:"headers,omitempty"`
}

type strategyFunc func(text string, cfg Config) ([]Chunk, error)

// Splitter dispatches split requests. It holds no per-request state and is
// safe for concurrent use.
type Splitter struct {
	log        logging.Logger
	strategies map[Strategy]strategyFunc
}

// New returns a Splitter wired with every built-in strategy.
func New(log logging.Logger) *Splitter {
	return &Splitter{
		log: log.WithName("splitter"),
		strategies: map[Strategy]strategyFunc{
			StrategyRecursive:  splitRecursiveStrategy,
			StrategyCharacter:  splitCharacterStrategy,
			StrategyToken:      splitTokenStrategy,
			StrategyMarkdown:   splitMarkdownStrategy,
			StrategyPythonCode: splitCodeStrategy,
			StrategyJSCode:     splitCodeStrategy,
		},
	}
}

// Split runs the configured strategy over text. Whitespace-only text yields
// no chunks. An invalid configuration is returned as ErrInvalidConfiguration;
// a failing strategy is retried once with FallbackConfig.
func (s *Splitter) Split(text string, cfg Config) ([]Chunk, error) {
	requested := cfg.Strategy
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if _, known := ParseStrategy(string(requested)); !known && requested != "" {
		s.log.Debug("unknown strategy; using recursive", "requested", requested)
	}

	chunks, err := s.run(cfg, text)
	if err != nil {
		s.log.Error(err, "split strategy failed; retrying with recursive fallback",
			"strategy", cfg.Strategy, "chunkSize", cfg.ChunkSize, "chunkOverlap", cfg.ChunkOverlap)
		chunks, err = s.run(FallbackConfig(cfg), text)
		if err != nil {
			return nil, fmt.Errorf("fallback split: %w", err)
		}
	}

	out := finalize(chunks)
	s.log.Debug("split complete", "strategy", cfg.Strategy, "chunks", len(out), "inputLen", len(text))
	return out, nil
}

// SplitTexts is Split returning only the chunk texts.
func (s *Splitter) SplitTexts(text string, cfg Config) ([]string, error) {
	chunks, err := s.Split(text, cfg)
	if err != nil {
		return nil, err
	}
	return Texts(chunks), nil
}

func (s *Splitter) run(cfg Config, text string) (chunks []Chunk, err error) {
	fn, ok := s.strategies[cfg.Strategy]
	if !ok {
		return nil, strategyErr(cfg.Strategy, "no implementation registered")
	}
	defer func() {
		if r := recover(); r != nil {
			chunks = nil
			err = strategyErr(cfg.Strategy, "panic: %v", r)
		}
	}()
	chunks, err = fn(text, cfg)
	if err != nil {
		var se *StrategyError
		if !errors.As(err, &se) {
			err = &StrategyError{Strategy: cfg.Strategy, Err: err}
		}
		return nil, err
	}
	return chunks, nil
}

// finalize trims every chunk, drops empty ones and numbers the rest.
func finalize(chunks []Chunk) []Chunk {
	out := make([]Chunk, 0, len(chunks))
	for _, c := range chunks {
		c.Text = strings.TrimSpace(c.Text)
		if c.Text == "" {
			continue
		}
		c.Index = len(out)
		out = append(out, c)
	}
	return out
}

func textChunks(texts []string) []Chunk {
	chunks := make([]Chunk, 0, len(texts))
	for _, t := range texts {
		chunks = append(chunks, Chunk{Text: t})
	}
	return chunks
}

// Texts extracts the text of each chunk.
func Texts(chunks []Chunk) []string {
	out := make([]string, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, c.Text)
	}
	return out
}
