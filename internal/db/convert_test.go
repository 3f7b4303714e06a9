package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToChunkResultSimilarity(t *testing.T) {
	header := "Header 1: Intro"
	row := ChunkSearchRow{
		Chunk:        Chunk{DocumentID: "doc", ChunkIndex: 2, HeaderContext: &header},
		DocumentPath: "docs/a.md",
		DocumentName: "a.md",
		Format:       "text",
		Snippet:      "alpha",
		Distance:     0.5,
	}
	res := ToChunkResult(row)
	assert.Equal(t, "doc", res.DocumentID)
	assert.Equal(t, "docs/a.md", res.Path)
	assert.Equal(t, 2, res.ChunkIndex)
	assert.Equal(t, &header, res.HeaderContext)
	assert.InDelta(t, 0.75, res.Similarity, 1e-9)
}

func TestToDocumentChunksKeepsOrder(t *testing.T) {
	doc := &Document{ID: "doc", Name: "a.md", Path: "docs/a.md", Format: "text", Strategy: "markdown", ChunkSize: 1000, ChunkOverlap: 200}
	out := ToDocumentChunks(doc, []Chunk{
		{ChunkIndex: 0, ChunkText: "first"},
		{ChunkIndex: 1, ChunkText: "second"},
	})
	assert.Equal(t, 2, out.ChunkCount)
	assert.Equal(t, "markdown", out.Strategy)
	assert.Equal(t, "first", out.Chunks[0].Text)
	assert.Equal(t, 1, out.Chunks[1].ChunkIndex)
	assert.Nil(t, out.Chunks[1].HeaderContext)
}
