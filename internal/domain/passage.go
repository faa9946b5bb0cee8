package domain

import (
	"context"
	"fmt"
)

// Collection identifies one of the passage stores the retriever queries.
type Collection string

const (
	CollectionChapter  Collection = "chapter_chunks"
	CollectionTextbook Collection = "nelson_chunks"
)

// PassageHit is a single retrieved passage. Immutable once created;
// it lives for the duration of one request.
type PassageHit struct {
	Text       string
	Source     string // chapter title when the collection carries one
	Collection Collection
}

// Label renders the passage with its provenance, the form that goes
// into both the prompt context and the response context array.
func (p PassageHit) Label() string {
	if p.Source != "" {
		return fmt.Sprintf("From chapter %q: %s", p.Source, p.Text)
	}
	return p.Text
}

// CorpusRepository searches one passage collection by keyword relevance.
type CorpusRepository interface {
	// SearchPassages runs a websearch-syntax full-text query and returns
	// up to limit hits ordered by relevance. An empty query returns no
	// hits without touching the store.
	SearchPassages(ctx context.Context, query string, limit int) ([]PassageHit, error)
	Collection() Collection
}
