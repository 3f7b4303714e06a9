package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roivaz/docsplit/internal/db"
	"github.com/roivaz/docsplit/internal/extract"
	"github.com/roivaz/docsplit/internal/logging"
	"github.com/roivaz/docsplit/internal/splitter"
)

type memoryStore struct {
	mu     sync.Mutex
	docs   map[string]*db.Document
	chunks map[string][]db.Chunk
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: map[string]*db.Document{}, chunks: map[string][]db.Chunk{}}
}

func (s *memoryStore) HasContent(_ context.Context, path, hash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[path]
	return ok && doc.ContentHash == hash, nil
}

func (s *memoryStore) WriteDocument(_ context.Context, doc *db.Document, chunks []db.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc.ChunkCount = len(chunks)
	s.docs[doc.Path] = doc
	s.chunks[doc.Path] = chunks
	return nil
}

type fakeEmbedder struct {
	calls  int
	failOn string
}

func (f *fakeEmbedder) EmbedTexts(_ context.Context, inputs []string) ([][]float32, error) {
	f.calls++
	out := make([][]float32, len(inputs))
	for i, in := range inputs {
		if f.failOn != "" && strings.Contains(in, f.failOn) {
			return nil, errors.New("embedding failed")
		}
		out[i] = []float32{float32(len(in)), 1}
	}
	return out, nil
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func newIngester(store Store, client EmbeddingClient) *Ingester {
	cfg := splitter.DefaultConfig()
	cfg.Strategy = splitter.StrategyMarkdown
	return &Ingester{
		Store:     store,
		Client:    client,
		Extractor: extract.NewRegistry(logging.Discard(), 0),
		Splitter:  splitter.New(logging.Discard()),
		Split:     cfg,
		BatchSize: 2,
		ModelName: "test-model",
		Log:       logging.Discard(),
	}
}

func TestSelectFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.md":              "a",
		"docs/b.txt":        "b",
		"docs/c.bin":        "c",
		"vendor/d.md":       "d",
		"docs/deep/e.md":    "e",
		"docs/deep/skip.md": "s",
	})

	files, err := SelectFiles(root, nil, []string{"vendor/**", "**/skip.md"}, 0, func(p string) bool {
		return filepath.Ext(p) != ".bin"
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "docs/b.txt", "docs/deep/e.md"}, files)

	files, err = SelectFiles(root, []string{"docs/**/*.md"}, nil, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/deep/e.md", "docs/deep/skip.md"}, files)

	files, err = SelectFiles(root, nil, nil, 2, nil)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestRunIngestsAndSkipsUnchanged(t *testing.T) {
	root := writeTree(t, map[string]string{
		"guide.md":  "# Intro\nhello\n## Setup\nrun it\n## Usage\nuse it",
		"notes.txt": "plain notes",
		"image.png": "not a document",
	})
	store := newMemoryStore()
	client := &fakeEmbedder{}
	ing := newIngester(store, client)

	var events []Event
	ing.Progress = func(ev Event) { events = append(events, ev) }

	stats, err := ing.Run(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, Stats{Files: 2, Chunks: 5}, stats)
	assert.Len(t, events, 2)

	guide := store.docs["guide.md"]
	require.NotNil(t, guide)
	assert.Equal(t, "text", guide.Format)
	assert.Equal(t, "markdown", guide.Strategy)
	assert.Equal(t, "utf-8", guide.Metadata["Encoding"])
	assert.Equal(t, 4, guide.ChunkCount)

	chunks := store.chunks["guide.md"]
	require.Len(t, chunks, 4)
	for i, c := range chunks {
		assert.Equal(t, i, c.ChunkIndex)
		assert.Equal(t, guide.ID, c.DocumentID)
		assert.Equal(t, "test-model", c.EmbeddingModel)
	}
	require.NotNil(t, chunks[2].HeaderContext)
	assert.Equal(t, "Header 1: Intro | Header 2: Setup", *chunks[2].HeaderContext)

	calls := client.calls
	stats, err = ing.Run(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, Stats{Skipped: 2}, stats)
	assert.Equal(t, calls, client.calls)

	ing.Force = true
	stats, err = ing.Run(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Files)
}

func TestRunContinuesAfterFileFailure(t *testing.T) {
	root := writeTree(t, map[string]string{
		"bad.txt":  "explode",
		"good.txt": "fine",
	})
	store := newMemoryStore()
	ing := newIngester(store, &fakeEmbedder{failOn: "Document: bad.txt"})

	stats, err := ing.Run(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.Files)
	assert.Contains(t, store.docs, "good.txt")
	assert.NotContains(t, store.docs, "bad.txt")
}

func TestRunStopsOnCancel(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": "a"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newIngester(newMemoryStore(), &fakeEmbedder{}).Run(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}
