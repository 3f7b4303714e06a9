package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	pgvector "github.com/pgvector/pgvector-go"
	"github.com/uptrace/bun"
)

type SearchRepository struct {
	db *bun.DB
}

type ChunkSearchRow struct {
	Chunk        `bun:",extend"`
	DocumentPath string  `bun:"document_path"`
	DocumentName string  `bun:"document_name"`
	Format       string  `bun:"format"`
	Snippet      string  `bun:"snippet"`
	Distance     float64 `bun:"distance"`
}

func NewSearchRepository(database *Database) *SearchRepository {
	return &SearchRepository{db: database.Bun()}
}

// GetDocument returns nil without error when the document does not exist.
func (r *SearchRepository) GetDocument(ctx context.Context, id string) (*Document, error) {
	doc := new(Document)
	err := r.db.NewSelect().Model(doc).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return doc, nil
}

// HasContent reports whether a document with this path and content hash is
// already stored.
func (r *SearchRepository) HasContent(ctx context.Context, path, contentHash string) (bool, error) {
	count, err := r.db.NewSelect().Model((*Document)(nil)).
		Where("path = ? AND content_hash = ?", path, contentHash).
		Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SearchRepository) CountDocuments(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*Document)(nil)).Count(ctx)
}

func (r *SearchRepository) ListChunks(ctx context.Context, documentID string) ([]Chunk, error) {
	var chunks []Chunk
	err := r.db.NewSelect().Model(&chunks).
		Where("document_id = ?", documentID).
		OrderExpr("chunk_index ASC").
		Scan(ctx)
	return chunks, err
}

// SearchChunks ranks chunks by cosine distance to embedding. format filters
// on the source document format when set.
func (r *SearchRepository) SearchChunks(ctx context.Context, embedding []float32, limit int, format *string) ([]ChunkSearchRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var results []ChunkSearchRow
	q := r.db.NewSelect().
		TableExpr("chunks AS c").
		Join("JOIN documents AS d ON d.id = c.document_id").
		ColumnExpr("c.id, c.document_id, c.chunk_index, c.chunk_text, c.header_context, c.embedding_model").
		ColumnExpr("d.path AS document_path, d.name AS document_name, d.format").
		ColumnExpr("substring(c.chunk_text for 400) AS snippet").
		ColumnExpr("c.embedding <=> ? AS distance", pgvector.NewVector(embedding)).
		OrderExpr("distance").
		Limit(limit)
	if format != nil && *format != "" {
		q = q.Where("d.format = ?", *format)
	}
	if err := q.Scan(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// DocumentBatchWriter replaces a document and its chunks in one transaction.
type DocumentBatchWriter struct {
	tx     bun.Tx
	doc    *Document
	count  int
	closed bool
}

// NewDocumentBatchWriter starts a transaction that upserts doc and drops
// its previous chunks. Call Add for each chunk, then Commit.
func (r *SearchRepository) NewDocumentBatchWriter(ctx context.Context, doc *Document) (*DocumentBatchWriter, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	w := &DocumentBatchWriter{tx: tx, doc: doc}

	_, err = tx.NewInsert().Model(doc).
		On("CONFLICT (id) DO UPDATE").
		Set("path = EXCLUDED.path").
		Set("name = EXCLUDED.name").
		Set("format = EXCLUDED.format").
		Set("content_hash = EXCLUDED.content_hash").
		Set("strategy = EXCLUDED.strategy").
		Set("chunk_size = EXCLUDED.chunk_size").
		Set("chunk_overlap = EXCLUDED.chunk_overlap").
		Set("metadata = EXCLUDED.metadata").
		Set("ingested_at = now()").
		Exec(ctx)
	if err != nil {
		w.Rollback()
		return nil, fmt.Errorf("upsert document: %w", err)
	}
	if _, err := tx.NewDelete().Model((*Chunk)(nil)).Where("document_id = ?", doc.ID).Exec(ctx); err != nil {
		w.Rollback()
		return nil, fmt.Errorf("clear chunks: %w", err)
	}
	return w, nil
}

func (w *DocumentBatchWriter) Add(ctx context.Context, chunk *Chunk) error {
	chunk.DocumentID = w.doc.ID
	if _, err := w.tx.NewInsert().Model(chunk).Exec(ctx); err != nil {
		return fmt.Errorf("insert chunk %d: %w", chunk.ChunkIndex, err)
	}
	w.count++
	return nil
}

func (w *DocumentBatchWriter) Commit(ctx context.Context) error {
	if w.closed {
		return errors.New("batch already closed")
	}
	_, err := w.tx.NewUpdate().Model((*Document)(nil)).
		Set("chunk_count = ?", w.count).
		Where("id = ?", w.doc.ID).
		Exec(ctx)
	if err != nil {
		w.Rollback()
		return fmt.Errorf("update chunk count: %w", err)
	}
	w.closed = true
	w.doc.ChunkCount = w.count
	return w.tx.Commit()
}

// Rollback is a no-op after Commit.
func (w *DocumentBatchWriter) Rollback() {
	if w.closed {
		return
	}
	w.closed = true
	_ = w.tx.Rollback()
}

// WriteDocument replaces doc and all of its chunks atomically.
func (r *SearchRepository) WriteDocument(ctx context.Context, doc *Document, chunks []Chunk) error {
	writer, err := r.NewDocumentBatchWriter(ctx, doc)
	if err != nil {
		return err
	}
	defer writer.Rollback()

	for i := range chunks {
		if err := writer.Add(ctx, &chunks[i]); err != nil {
			return err
		}
	}
	return writer.Commit(ctx)
}
