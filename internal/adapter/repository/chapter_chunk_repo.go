package repository

import (
	"context"
	"fmt"

	"nelson-chat/internal/domain"
)

// chapterChunkRepository searches the chapter_chunks collection:
// passage content plus the chapter title it came from.
type chapterChunkRepository struct {
	db DatabaseIface
}

// NewChapterChunkRepository creates a CorpusRepository over chapter_chunks.
func NewChapterChunkRepository(db DatabaseIface) domain.CorpusRepository {
	return &chapterChunkRepository{db: db}
}

func (r *chapterChunkRepository) Collection() domain.Collection {
	return domain.CollectionChapter
}

// websearch_to_tsquery gives the same web-search keyword semantics the
// corpus was originally queried with, ranked by ts_rank.
const chapterSearchQuery = `
	SELECT content, chapter
	FROM chapter_chunks
	WHERE to_tsvector('english', content) @@ websearch_to_tsquery('english', $1)
	ORDER BY ts_rank(to_tsvector('english', content), websearch_to_tsquery('english', $1)) DESC
	LIMIT $2
`

func (r *chapterChunkRepository) SearchPassages(ctx context.Context, query string, limit int) ([]domain.PassageHit, error) {
	if query == "" {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, chapterSearchQuery, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chapter chunks: %w", err)
	}
	defer rows.Close()

	var hits []domain.PassageHit
	for rows.Next() {
		var content, chapter string
		if err := rows.Scan(&content, &chapter); err != nil {
			return nil, fmt.Errorf("failed to scan chapter chunk: %w", err)
		}
		hits = append(hits, domain.PassageHit{
			Text:       content,
			Source:     chapter,
			Collection: domain.CollectionChapter,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return hits, nil
}
