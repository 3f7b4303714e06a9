package splitter

// StrategyInfo describes a strategy for listings.
type StrategyInfo struct {
	Name              Strategy      `json:"name"`
	Description       string        `json:"description"`
	Parameters        []string      `json:"parameters"`
	DefaultSeparators []string      `json:"default_separators,omitempty"`
	Defaults          DefaultParams `json:"default_params"`
}

// DefaultParams are the values used when a request leaves them out.
type DefaultParams struct {
	ChunkSize     int  `json:"chunk_size"`
	ChunkOverlap  int  `json:"chunk_overlap"`
	KeepSeparator bool `json:"keep_separator"`
}

// Strategies lists every built-in strategy in a stable order.
func Strategies() []StrategyInfo {
	sized := []string{"chunk_size", "chunk_overlap"}
	withSeparators := []string{"chunk_size", "chunk_overlap", "separators", "keep_separator"}
	infos := []StrategyInfo{
		{
			Name:              StrategyRecursive,
			Description:       "Recursively splits text using multiple separators",
			Parameters:        withSeparators,
			DefaultSeparators: DefaultSeparators(),
		},
		{
			Name:              StrategyCharacter,
			Description:       "Splits text by a single separator",
			Parameters:        withSeparators,
			DefaultSeparators: append([]string(nil), characterSeparators...),
		},
		{
			Name:        StrategyToken,
			Description: "Splits text by token count",
			Parameters:  []string{"chunk_size", "chunk_overlap", "token_encoding"},
		},
		{
			Name:        StrategyMarkdown,
			Description: "Splits markdown by headers",
			Parameters:  []string{"headers_to_split_on"},
		},
		{
			Name:              StrategyPythonCode,
			Description:       "Splits Python code by classes and functions",
			Parameters:        sized,
			DefaultSeparators: append([]string(nil), pythonSeparators...),
		},
		{
			Name:              StrategyJSCode,
			Description:       "Splits JavaScript code by functions and declarations",
			Parameters:        sized,
			DefaultSeparators: append([]string(nil), jsSeparators...),
		},
	}
	for i := range infos {
		infos[i].Defaults = DefaultParams{
			ChunkSize:     DefaultChunkSize,
			ChunkOverlap:  DefaultChunkOverlap,
			KeepSeparator: true,
		}
	}
	return infos
}
