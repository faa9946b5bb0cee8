package repository

import (
	"context"
	"fmt"

	"nelson-chat/internal/domain"
)

// nelsonChunkRepository searches the nelson_chunks collection: raw
// textbook excerpts with no source label.
type nelsonChunkRepository struct {
	db DatabaseIface
}

// NewNelsonChunkRepository creates a CorpusRepository over nelson_chunks.
func NewNelsonChunkRepository(db DatabaseIface) domain.CorpusRepository {
	return &nelsonChunkRepository{db: db}
}

func (r *nelsonChunkRepository) Collection() domain.Collection {
	return domain.CollectionTextbook
}

const nelsonSearchQuery = `
	SELECT chunk_text
	FROM nelson_chunks
	WHERE to_tsvector('english', chunk_text) @@ websearch_to_tsquery('english', $1)
	ORDER BY ts_rank(to_tsvector('english', chunk_text), websearch_to_tsquery('english', $1)) DESC
	LIMIT $2
`

func (r *nelsonChunkRepository) SearchPassages(ctx context.Context, query string, limit int) ([]domain.PassageHit, error) {
	if query == "" {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, nelsonSearchQuery, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query nelson chunks: %w", err)
	}
	defer rows.Close()

	var hits []domain.PassageHit
	for rows.Next() {
		var chunkText string
		if err := rows.Scan(&chunkText); err != nil {
			return nil, fmt.Errorf("failed to scan nelson chunk: %w", err)
		}
		hits = append(hits, domain.PassageHit{
			Text:       chunkText,
			Collection: domain.CollectionTextbook,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return hits, nil
}
