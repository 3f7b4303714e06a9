// Package ingest converts, splits and embeds a tree of documents into
// Postgres.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pgvector/pgvector-go"

	"github.com/roivaz/docsplit/internal/db"
	"github.com/roivaz/docsplit/internal/embeddings"
	"github.com/roivaz/docsplit/internal/extract"
	"github.com/roivaz/docsplit/internal/logging"
	"github.com/roivaz/docsplit/internal/render"
	"github.com/roivaz/docsplit/internal/splitter"
)

type EmbeddingClient interface {
	EmbedTexts(ctx context.Context, inputs []string) ([][]float32, error)
}

type Extractor interface {
	Extract(ctx context.Context, path string) (*extract.Document, error)
	Supports(path string) bool
}

// Store persists documents. SearchRepository is the production implementation.
type Store interface {
	HasContent(ctx context.Context, path, contentHash string) (bool, error)
	WriteDocument(ctx context.Context, doc *db.Document, chunks []db.Chunk) error
}

// Event reports the outcome for one file.
type Event struct {
	Path    string
	Index   int
	Total   int
	Chunks  int
	Skipped bool
	Err     error
}

type Stats struct {
	Files   int
	Skipped int
	Failed  int
	Chunks  int
}

type Ingester struct {
	Store     Store
	Client    EmbeddingClient
	Extractor Extractor
	Splitter  *splitter.Splitter
	Split     splitter.Config
	Include   []string
	Exclude   []string
	MaxFiles  int
	BatchSize int
	ModelName string
	// Force re-ingests files whose content is unchanged.
	Force    bool
	Log      logging.Logger
	Progress func(Event)
}

// Run ingests every selected file under root. Failures on single files are
// logged and counted; only selection errors and cancellation stop the run.
func (i *Ingester) Run(ctx context.Context, root string) (Stats, error) {
	var stats Stats
	files, err := SelectFiles(root, i.Include, i.Exclude, i.MaxFiles, i.Extractor.Supports)
	if err != nil {
		return stats, fmt.Errorf("select files: %w", err)
	}
	i.Log.Info("ingesting documents", "root", root, "files", len(files), "strategy", i.Split.Strategy)

	for idx, rel := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		ev := Event{Path: rel, Index: idx + 1, Total: len(files)}
		n, skipped, err := i.ingestFile(ctx, root, rel)
		switch {
		case err != nil:
			stats.Failed++
			ev.Err = err
			i.Log.Error(err, "failed to ingest file", "path", rel)
		case skipped:
			stats.Skipped++
			ev.Skipped = true
			i.Log.Debug("unchanged; skipping", "path", rel)
		default:
			stats.Files++
			stats.Chunks += n
			ev.Chunks = n
		}
		if i.Progress != nil {
			i.Progress(ev)
		}
	}

	i.Log.Info("ingestion finished", "files", stats.Files, "skipped", stats.Skipped, "failed", stats.Failed, "chunks", stats.Chunks)
	return stats, nil
}

func (i *Ingester) ingestFile(ctx context.Context, root, rel string) (int, bool, error) {
	abs := filepath.Join(root, filepath.FromSlash(rel))
	raw, err := os.ReadFile(abs)
	if err != nil {
		return 0, false, err
	}
	hash := sha256Hex(string(raw))
	if !i.Force {
		exists, err := i.Store.HasContent(ctx, rel, hash)
		if err != nil {
			return 0, false, fmt.Errorf("check existing: %w", err)
		}
		if exists {
			return 0, true, nil
		}
	}

	doc, err := i.Extractor.Extract(ctx, abs)
	if err != nil {
		return 0, false, err
	}
	chunks, err := i.Splitter.Split(render.Markdown(doc), i.Split)
	if err != nil {
		return 0, false, err
	}
	if len(chunks) == 0 {
		return 0, false, fmt.Errorf("no content extracted")
	}

	name := filepath.Base(rel)
	record := &db.Document{
		ID:           sha256Hex(rel),
		Path:         rel,
		Name:         name,
		Format:       string(doc.Format),
		ContentHash:  hash,
		Strategy:     string(i.Split.Normalize().Strategy),
		ChunkSize:    i.Split.ChunkSize,
		ChunkOverlap: i.Split.ChunkOverlap,
		Metadata:     metadataMap(doc.Metadata),
	}

	rows := make([]db.Chunk, 0, len(chunks))
	for start := 0; start < len(chunks); start += i.batchSize() {
		end := min(start+i.batchSize(), len(chunks))
		inputs := make([]string, 0, end-start)
		for _, c := range chunks[start:end] {
			inputs = append(inputs, embeddings.BuildInput(name, c.Text))
		}
		vecs, err := i.Client.EmbedTexts(ctx, inputs)
		if err != nil {
			return 0, false, err
		}
		if len(vecs) != len(inputs) {
			return 0, false, fmt.Errorf("embedding returned %d vectors for %d chunks", len(vecs), len(inputs))
		}
		for j, c := range chunks[start:end] {
			rows = append(rows, db.Chunk{
				ID:             sha256Hex(record.ID + ":" + strconv.Itoa(c.Index) + ":" + c.Text),
				DocumentID:     record.ID,
				ChunkIndex:     c.Index,
				ChunkText:      c.Text,
				HeaderContext:  headerContext(c.Headers),
				Embedding:      pgvector.NewVector(vecs[j]),
				EmbeddingModel: i.ModelName,
			})
		}
	}

	if err := i.Store.WriteDocument(ctx, record, rows); err != nil {
		return 0, false, err
	}
	return len(rows), false, nil
}

func (i *Ingester) batchSize() int {
	if i.BatchSize <= 0 {
		return 16
	}
	return i.BatchSize
}

func headerContext(headers []splitter.Header) *string {
	if len(headers) == 0 {
		return nil
	}
	parts := make([]string, 0, len(headers))
	for _, h := range headers {
		parts = append(parts, h.Label+": "+h.Value)
	}
	s := strings.Join(parts, " | ")
	return &s
}

func metadataMap(fields []extract.Field) map[string]string {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}

func sha256Hex(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}
