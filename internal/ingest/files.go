package ingest

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// SelectFiles walks root and returns the slash-separated relative paths
// matching any include glob and no exclude glob, sorted. Excluded directories
// are not descended into. max <= 0 means no limit.
func SelectFiles(root string, include, exclude []string, max int, accept func(string) bool) ([]string, error) {
	if len(include) == 0 {
		include = []string{"**/*"}
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var out []string
	err = fs.WalkDir(os.DirFS(root), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == "." {
			return nil
		}
		if d.IsDir() {
			if matchAny(exclude, path+"/") || matchAny(exclude, path) {
				return fs.SkipDir
			}
			return nil
		}
		if !matchAny(include, path) || matchAny(exclude, path) {
			return nil
		}
		if accept != nil && !accept(path) {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(out)
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out, nil
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}
