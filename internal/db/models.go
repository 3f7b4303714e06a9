package db

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/uptrace/bun"
)

// Document is one ingested source file.
type Document struct {
	bun.BaseModel `bun:"table:documents"`

	ID           string            `bun:"id,pk"` // sha256(path)
	Path         string            `bun:"path"`
	Name         string            `bun:"name"`
	Format       string            `bun:"format"`
	ContentHash  string            `bun:"content_hash"`
	Strategy     string            `bun:"strategy"`
	ChunkSize    int               `bun:"chunk_size"`
	ChunkOverlap int               `bun:"chunk_overlap"`
	ChunkCount   int               `bun:"chunk_count"`
	Metadata     map[string]string `bun:"metadata,type:jsonb"`
	IngestedAt   time.Time         `bun:"ingested_at,nullzero,notnull,default:now()"`
}

// Chunk is an embedded chunk of a Document.
type Chunk struct {
	bun.BaseModel `bun:"table:chunks"`

	ID             string          `bun:"id,pk"` // sha256(document|idx|text)
	DocumentID     string          `bun:"document_id"`
	ChunkIndex     int             `bun:"chunk_index"`
	ChunkText      string          `bun:"chunk_text"`
	HeaderContext  *string         `bun:"header_context,nullzero"`
	Embedding      pgvector.Vector `bun:"embedding,type:vector(768)"`
	EmbeddingModel string          `bun:"embedding_model"`
	UpdatedAt      time.Time       `bun:"updated_at,nullzero,notnull,default:now()"`
}
