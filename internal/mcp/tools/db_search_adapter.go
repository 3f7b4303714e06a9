package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/roivaz/docsplit/internal/db"
	"github.com/roivaz/docsplit/internal/mcp/tools/types"
	"github.com/roivaz/docsplit/internal/render"
)

type queryEmbedder interface {
	EmbedTexts(ctx context.Context, inputs []string) ([][]float32, error)
}

type DBSearchService struct {
	Repository  *db.SearchRepository
	EmbedClient queryEmbedder
}

func NewDBSearchService(repo *db.SearchRepository, embed queryEmbedder) *DBSearchService {
	return &DBSearchService{Repository: repo, EmbedClient: embed}
}

func (s *DBSearchService) SearchChunks(ctx context.Context, query string, limit int, format *string) ([]types.ChunkResult, error) {
	if strings.TrimSpace(query) == "" {
		return []types.ChunkResult{}, nil
	}

	vectors, err := s.EmbedClient.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return []types.ChunkResult{}, nil
	}

	rows, err := s.Repository.SearchChunks(ctx, vectors[0], limit, format)
	if err != nil {
		return nil, fmt.Errorf("search embeddings: %w", err)
	}

	results := make([]types.ChunkResult, 0, len(rows))
	for _, row := range rows {
		result := db.ToChunkResult(row)
		result.Snippet = render.Preview(result.Snippet, render.PreviewLength)
		results = append(results, result)
	}
	return results, nil
}

// GetDocumentChunks returns nil when no document has this id.
func (s *DBSearchService) GetDocumentChunks(ctx context.Context, id string) (*types.DocumentChunks, error) {
	doc, err := s.Repository.GetDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	chunks, err := s.Repository.ListChunks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	out := db.ToDocumentChunks(doc, chunks)
	return &out, nil
}
