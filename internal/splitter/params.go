package splitter

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseParams layers a splitter_params JSON object over base. Recognized keys:
// strategy (or splitter_type), chunk_size, chunk_overlap, separators,
// keep_separator, headers_to_split_on and token_encoding. Header pairs may be
// given as [["#", "Header 1"], ...] or [{"marker": "#", "label": "Header 1"}, ...].
func ParseParams(raw string, base Config) (Config, error) {
	cfg := base
	cfg.Separators = append([]string(nil), base.Separators...)
	cfg.HeadersToSplitOn = append([]HeaderSpec(nil), base.HeadersToSplitOn...)

	if strings.TrimSpace(raw) == "" {
		return cfg, nil
	}
	if !gjson.Valid(raw) {
		return Config{}, fmt.Errorf("%w: splitter params are not valid JSON", ErrInvalidConfiguration)
	}
	params := gjson.Parse(raw)
	if !params.IsObject() {
		return Config{}, fmt.Errorf("%w: splitter params must be a JSON object", ErrInvalidConfiguration)
	}

	for _, key := range []string{"splitter_type", "strategy"} {
		if v := params.Get(key); v.Exists() {
			cfg.Strategy = Strategy(v.String())
		}
	}

	var err error
	if cfg.ChunkSize, err = intParam(params, "chunk_size", cfg.ChunkSize); err != nil {
		return Config{}, err
	}
	if cfg.ChunkOverlap, err = intParam(params, "chunk_overlap", cfg.ChunkOverlap); err != nil {
		return Config{}, err
	}

	if v := params.Get("separators"); v.Exists() && v.Type != gjson.Null {
		if !v.IsArray() {
			return Config{}, fmt.Errorf("%w: separators must be an array of strings", ErrInvalidConfiguration)
		}
		cfg.Separators = cfg.Separators[:0]
		for _, s := range v.Array() {
			cfg.Separators = append(cfg.Separators, s.String())
		}
	}

	if v := params.Get("keep_separator"); v.Exists() {
		if v.Type != gjson.True && v.Type != gjson.False {
			return Config{}, fmt.Errorf("%w: keep_separator must be a boolean", ErrInvalidConfiguration)
		}
		cfg.KeepSeparator = v.Bool()
	}

	if v := params.Get("headers_to_split_on"); v.Exists() && v.Type != gjson.Null {
		headers, err := headerParams(v)
		if err != nil {
			return Config{}, err
		}
		cfg.HeadersToSplitOn = headers
	}

	if v := params.Get("token_encoding"); v.Exists() {
		cfg.TokenEncoding = v.String()
	}
	return cfg, nil
}

func intParam(params gjson.Result, key string, fallback int) (int, error) {
	v := params.Get(key)
	if !v.Exists() || v.Type == gjson.Null {
		return fallback, nil
	}
	if v.Type != gjson.Number || v.Num != float64(v.Int()) {
		return 0, fmt.Errorf("%w: %s must be an integer, got %s", ErrInvalidConfiguration, key, v.Raw)
	}
	return int(v.Int()), nil
}

func headerParams(v gjson.Result) ([]HeaderSpec, error) {
	if !v.IsArray() {
		return nil, fmt.Errorf("%w: headers_to_split_on must be an array", ErrInvalidConfiguration)
	}
	var headers []HeaderSpec
	for i, item := range v.Array() {
		switch {
		case item.IsArray():
			pair := item.Array()
			if len(pair) != 2 {
				return nil, fmt.Errorf("%w: headers_to_split_on[%d] must be a [marker, label] pair", ErrInvalidConfiguration, i)
			}
			headers = append(headers, HeaderSpec{Marker: pair[0].String(), Label: pair[1].String()})
		case item.IsObject():
			headers = append(headers, HeaderSpec{
				Marker: item.Get("marker").String(),
				Label:  item.Get("label").String(),
			})
		default:
			return nil, fmt.Errorf("%w: headers_to_split_on[%d] has unsupported type", ErrInvalidConfiguration, i)
		}
	}
	return headers, nil
}
