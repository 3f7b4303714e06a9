package splitter

import "strings"

// SplitCode splits source code, preferring declaration boundaries.
// language is "python" or "javascript" (aliases accepted); anything else is
// split with the recursive defaults.
func SplitCode(text, language string, chunkSize, chunkOverlap int) ([]string, error) {
	strategy, ok := ParseStrategy(language)
	if !ok || (strategy != StrategyPythonCode && strategy != StrategyJSCode) {
		strategy = StrategyRecursive
	}
	cfg := Config{
		Strategy:      strategy,
		ChunkSize:     chunkSize,
		ChunkOverlap:  chunkOverlap,
		KeepSeparator: true,
	}.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return newHierarchy(cfg).split(text, codeSeparators(strategy)), nil
}

func codeSeparators(s Strategy) []string {
	switch s {
	case StrategyPythonCode:
		return pythonSeparators
	case StrategyJSCode:
		return jsSeparators
	default:
		return recursiveSeparators
	}
}

func splitCodeStrategy(text string, cfg Config) ([]Chunk, error) {
	cfg.KeepSeparator = true
	return textChunks(newHierarchy(cfg).split(text, codeSeparators(cfg.Strategy))), nil
}

func splitRecursiveStrategy(text string, cfg Config) ([]Chunk, error) {
	return textChunks(newHierarchy(cfg).split(text, cfg.Separators)), nil
}

// splitCharacterStrategy splits on the first configured separator only and
// never recurses; oversized pieces stay whole.
func splitCharacterStrategy(text string, cfg Config) ([]Chunk, error) {
	sep := characterSeparators[0]
	if len(cfg.Separators) > 0 {
		sep = cfg.Separators[0]
	}
	joiner := sep
	if cfg.KeepSeparator {
		joiner = ""
	}
	pieces := splitOnSeparator(text, sep, cfg.KeepSeparator)
	return textChunks(mergeSegments(pieces, joiner, cfg.ChunkSize, cfg.ChunkOverlap, runeLen)), nil
}
