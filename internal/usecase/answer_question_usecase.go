package usecase

import (
	"context"
	"log/slog"
	"strings"

	"nelson-chat/internal/domain"

	"github.com/google/uuid"
)

// AnswerQuestionInput encapsulates one chat request. UserID is an
// opaque requester identifier used only for logging.
type AnswerQuestionInput struct {
	Message string
	UserID  string
}

// AnswerQuestionOutput is the grounded answer plus the labeled
// passages that backed it, in retrieval order.
type AnswerQuestionOutput struct {
	Answer  string
	Context []string
}

// AnswerQuestionUsecase runs the full pipeline: validate, retrieve,
// assemble, generate, compose.
type AnswerQuestionUsecase interface {
	Execute(ctx context.Context, input AnswerQuestionInput) (*AnswerQuestionOutput, error)
}

type answerQuestionUsecase struct {
	retrieve      RetrievePassagesUsecase
	promptBuilder PromptBuilder
	llmClient     domain.LLMClient
	logger        *slog.Logger
}

// NewAnswerQuestionUsecase wires together the components needed to
// answer a question from the reference corpus.
func NewAnswerQuestionUsecase(
	retrieve RetrievePassagesUsecase,
	promptBuilder PromptBuilder,
	llmClient domain.LLMClient,
	logger *slog.Logger,
) AnswerQuestionUsecase {
	return &answerQuestionUsecase{
		retrieve:      retrieve,
		promptBuilder: promptBuilder,
		llmClient:     llmClient,
		logger:        logger,
	}
}

func (u *answerQuestionUsecase) Execute(ctx context.Context, input AnswerQuestionInput) (*AnswerQuestionOutput, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, domain.ErrMessageRequired
	}

	requestID := uuid.NewString()
	log := u.logger.With(
		slog.String("request_id", requestID),
		slog.String("user_id", input.UserID),
	)
	log.Info("chat_request_received", slog.Int("message_length", len(input.Message)))

	retrieved, err := u.retrieve.Execute(ctx, RetrievePassagesInput{Message: input.Message})
	if err != nil {
		log.Error("retrieval_failed", slog.String("error", err.Error()))
		return nil, err
	}

	messages := u.promptBuilder.Build(PromptInput{
		Question: input.Message,
		Context:  retrieved.Context,
	})

	answer, err := u.llmClient.Generate(ctx, messages)
	if err != nil {
		log.Error("generation_failed",
			slog.String("model", u.llmClient.Version()),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("chat_request_answered",
		slog.Int("context_passages", len(retrieved.Passages)),
		slog.Int("answer_length", len(answer)))

	return &AnswerQuestionOutput{
		Answer:  answer,
		Context: retrieved.Passages,
	}, nil
}
