package db

import (
	"github.com/roivaz/docsplit/internal/mcp/tools/types"
)

func ToChunkResult(row ChunkSearchRow) types.ChunkResult {
	return types.ChunkResult{
		DocumentID:    row.DocumentID,
		DocumentName:  row.DocumentName,
		Path:          row.DocumentPath,
		Format:        row.Format,
		ChunkIndex:    row.ChunkIndex,
		HeaderContext: row.HeaderContext,
		Snippet:       row.Snippet,
		Similarity:    1 - (row.Distance / 2.0),
	}
}

func ToDocumentChunks(doc *Document, chunks []Chunk) types.DocumentChunks {
	out := types.DocumentChunks{
		DocumentID:   doc.ID,
		Name:         doc.Name,
		Path:         doc.Path,
		Format:       doc.Format,
		Strategy:     doc.Strategy,
		ChunkSize:    doc.ChunkSize,
		ChunkOverlap: doc.ChunkOverlap,
		Metadata:     doc.Metadata,
		IngestedAt:   doc.IngestedAt,
		Chunks:       make([]types.DocumentChunk, 0, len(chunks)),
	}
	for _, c := range chunks {
		out.Chunks = append(out.Chunks, types.DocumentChunk{
			ChunkIndex:    c.ChunkIndex,
			HeaderContext: c.HeaderContext,
			Text:          c.ChunkText,
		})
	}
	out.ChunkCount = len(out.Chunks)
	return out
}
