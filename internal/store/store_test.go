package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "docsplit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFileRoundTrip(t *testing.T) {
	s := openTestStore(t)

	f, err := s.NewFile("report.pdf", "/tmp/report.pdf", 1234)
	require.NoError(t, err)
	require.NotEmpty(t, f.ID)

	got, err := s.GetFile(f.ID)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", got.Name)
	assert.Equal(t, int64(1234), got.Size)
	assert.True(t, f.UploadedAt.Equal(got.UploadedAt))

	files, err := s.ListFiles()
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestOutputsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	f, err := s.NewFile("notes.md", "notes.md", 10)
	require.NoError(t, err)

	require.NoError(t, s.PutOutput(f.ID, KindOriginal, Output{Format: "md", Content: []byte("# Notes")}))
	require.NoError(t, s.PutOutput(f.ID, KindSplit, Output{Format: "json", Content: []byte(`{"chunks":[]}`), ChunkCount: 3}))

	orig, err := s.GetOutput(f.ID, KindOriginal)
	require.NoError(t, err)
	assert.Equal(t, "# Notes", string(orig.Content))
	assert.False(t, orig.CreatedAt.IsZero())

	split, err := s.GetOutput(f.ID, KindSplit)
	require.NoError(t, err)
	assert.Equal(t, "json", split.Format)
	assert.Equal(t, 3, split.ChunkCount)
}

func TestNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetFile("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetOutput("missing", KindSplit)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.PutOutput("missing", KindOriginal, Output{}), ErrNotFound)
	assert.ErrorIs(t, s.Delete("missing"), ErrNotFound)
}

func TestDeleteRemovesOutputs(t *testing.T) {
	s := openTestStore(t)
	f, err := s.NewFile("a.txt", "a.txt", 1)
	require.NoError(t, err)
	require.NoError(t, s.PutOutput(f.ID, KindOriginal, Output{Format: "md", Content: []byte("a")}))

	require.NoError(t, s.Delete(f.ID))
	_, err = s.GetOutput(f.ID, KindOriginal)
	assert.ErrorIs(t, err, ErrNotFound)
}
