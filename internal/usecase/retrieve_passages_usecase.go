package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"nelson-chat/internal/domain"

	"golang.org/x/sync/errgroup"
)

// NoContextSentinel is substituted for the context block when both
// collections come back empty. It goes into the prompt only, never
// into the response context array.
const NoContextSentinel = "No specific information found in the Nelson Textbook database for this query."

// RetrievePassagesInput carries the raw question text to search for.
type RetrievePassagesInput struct {
	Message string
}

// RetrievePassagesOutput is the merged, capped retrieval result.
type RetrievePassagesOutput struct {
	// Passages holds the labeled passage texts in merge order, chapter
	// collection first. Empty when nothing matched.
	Passages []string
	// Context is the prompt-ready block: passages joined with blank
	// lines, or the sentinel when Passages is empty.
	Context string
}

// RetrievePassagesUsecase defines the interface for corpus retrieval.
type RetrievePassagesUsecase interface {
	Execute(ctx context.Context, input RetrievePassagesInput) (*RetrievePassagesOutput, error)
}

type retrievePassagesUsecase struct {
	chapterRepo  domain.CorpusRepository
	textbookRepo domain.CorpusRepository
	limit        int
	timeout      time.Duration
	logger       *slog.Logger
}

// NewRetrievePassagesUsecase creates a retriever over the two corpus
// collections with a fixed per-collection hit cap and a bounded
// search timeout.
func NewRetrievePassagesUsecase(
	chapterRepo domain.CorpusRepository,
	textbookRepo domain.CorpusRepository,
	limit int,
	timeout time.Duration,
	logger *slog.Logger,
) RetrievePassagesUsecase {
	return &retrievePassagesUsecase{
		chapterRepo:  chapterRepo,
		textbookRepo: textbookRepo,
		limit:        limit,
		timeout:      timeout,
		logger:       logger,
	}
}

func (u *retrievePassagesUsecase) Execute(ctx context.Context, input RetrievePassagesInput) (*RetrievePassagesOutput, error) {
	query := NormalizeQuery(input.Message)
	if query == "" {
		// No useful search terms; skip the store entirely.
		u.logger.Info("query_normalized_empty")
		return u.assemble(nil, nil), nil
	}

	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	// The collections are independent, so both searches run
	// concurrently. The first failure cancels the other and fails the
	// whole request; there are no partial results.
	var chapterHits, textbookHits []domain.PassageHit
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hits, err := u.chapterRepo.SearchPassages(gctx, query, u.limit)
		if err != nil {
			return &domain.RetrievalError{Collection: u.chapterRepo.Collection(), Err: err}
		}
		chapterHits = hits
		return nil
	})

	g.Go(func() error {
		hits, err := u.textbookRepo.SearchPassages(gctx, query, u.limit)
		if err != nil {
			return &domain.RetrievalError{Collection: u.textbookRepo.Collection(), Err: err}
		}
		textbookHits = hits
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	u.logger.Info("passages_retrieved",
		slog.Int("chapter_hits", len(chapterHits)),
		slog.Int("textbook_hits", len(textbookHits)),
		slog.String("query", query))

	return u.assemble(chapterHits, textbookHits), nil
}

// assemble merges the capped per-collection hits in collection order
// and builds the prompt context block.
func (u *retrievePassagesUsecase) assemble(chapterHits, textbookHits []domain.PassageHit) *RetrievePassagesOutput {
	passages := make([]string, 0, len(chapterHits)+len(textbookHits))
	for _, hit := range chapterHits {
		passages = append(passages, hit.Label())
	}
	for _, hit := range textbookHits {
		passages = append(passages, hit.Label())
	}

	contextBlock := NoContextSentinel
	if len(passages) > 0 {
		contextBlock = strings.Join(passages, "\n\n")
	}

	return &RetrievePassagesOutput{
		Passages: passages,
		Context:  contextBlock,
	}
}
