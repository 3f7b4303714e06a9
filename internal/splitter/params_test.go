package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParamsOverridesBase(t *testing.T) {
	cfg, err := ParseParams(`{
		"splitter_type": "markdown",
		"chunk_size": 500,
		"chunk_overlap": 50,
		"keep_separator": false,
		"headers_to_split_on": [["#", "Title"], {"marker": "##", "label": "Section"}]
	}`, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, StrategyMarkdown, cfg.Strategy)
	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, 50, cfg.ChunkOverlap)
	assert.False(t, cfg.KeepSeparator)
	assert.Equal(t, []HeaderSpec{{Marker: "#", Label: "Title"}, {Marker: "##", Label: "Section"}}, cfg.HeadersToSplitOn)
}

func TestParseParamsKeepsDefaults(t *testing.T) {
	base := DefaultConfig()
	base.Separators = []string{"\n"}

	cfg, err := ParseParams(`{"strategy": "token", "token_encoding": "cl100k_base"}`, base)
	require.NoError(t, err)
	assert.Equal(t, StrategyToken, cfg.Strategy)
	assert.Equal(t, DefaultChunkSize, cfg.ChunkSize)
	assert.Equal(t, DefaultChunkOverlap, cfg.ChunkOverlap)
	assert.Equal(t, "cl100k_base", cfg.TokenEncoding)
	assert.Equal(t, []string{"\n"}, cfg.Separators)

	cfg.Separators[0] = "changed"
	assert.Equal(t, "\n", base.Separators[0])

	empty, err := ParseParams("  ", base)
	require.NoError(t, err)
	assert.Equal(t, base.ChunkSize, empty.ChunkSize)
}

func TestParseParamsResolvesAliases(t *testing.T) {
	for raw, want := range map[string]Strategy{
		`{"splitter_type": "python"}`:     StrategyPythonCode,
		`{"splitter_type": "javascript"}`: StrategyJSCode,
		`{"splitter_type": "js"}`:         StrategyJSCode,
		`{"splitter_type": "semantic"}`:   StrategyRecursive,
	} {
		cfg, err := ParseParams(raw, DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, want, cfg.Normalize().Strategy, raw)
	}
}

func TestParseParamsSeparators(t *testing.T) {
	cfg, err := ParseParams(`{"separators": ["\n\n", ". ", ""]}`, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"\n\n", ". ", ""}, cfg.Separators)
}

func TestParseParamsRejectsMalformedInput(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":          `{"chunk_size": }`,
		"not an object":     `[1, 2]`,
		"fractional size":   `{"chunk_size": 10.5}`,
		"string overlap":    `{"chunk_overlap": "20"}`,
		"separators string": `{"separators": "\n"}`,
		"keep not bool":     `{"keep_separator": "yes"}`,
		"bad header pair":   `{"headers_to_split_on": [["#"]]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseParams(raw, DefaultConfig())
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestStrategiesCatalogue(t *testing.T) {
	infos := Strategies()
	require.Len(t, infos, 6)
	seen := map[Strategy]bool{}
	for _, info := range infos {
		_, known := ParseStrategy(string(info.Name))
		assert.True(t, known, info.Name)
		assert.NotEmpty(t, info.Description)
		assert.Equal(t, DefaultParams{ChunkSize: 1000, ChunkOverlap: 200, KeepSeparator: true}, info.Defaults)
		seen[info.Name] = true
	}
	assert.Len(t, seen, 6)
	assert.Equal(t, DefaultSeparators(), infos[0].DefaultSeparators)
}
