package types

import "time"

type ChunkResult struct {
	DocumentID    string  `json:"document_id"`
	DocumentName  string  `json:"document_name"`
	Path          string  `json:"path"`
	Format        string  `json:"format"`
	ChunkIndex    int     `json:"chunk_index"`
	HeaderContext *string `json:"header_context,omitempty"`
	Snippet       string  `json:"snippet"`
	Similarity    float64 `json:"similarity"`
}

type DocumentChunk struct {
	ChunkIndex    int     `json:"chunk_index"`
	HeaderContext *string `json:"header_context,omitempty"`
	Text          string  `json:"text"`
}

type DocumentChunks struct {
	DocumentID   string            `json:"document_id"`
	Name         string            `json:"name"`
	Path         string            `json:"path"`
	Format       string            `json:"format"`
	Strategy     string            `json:"strategy"`
	ChunkSize    int               `json:"chunk_size"`
	ChunkOverlap int               `json:"chunk_overlap"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	IngestedAt   time.Time         `json:"ingested_at"`
	Chunks       []DocumentChunk   `json:"chunks"`
	ChunkCount   int               `json:"chunk_count"`
}
