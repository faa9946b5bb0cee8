package usecase

import (
	"context"
	"sync/atomic"
	"testing"

	"nelson-chat/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRetrieveUsecase struct {
	output *RetrievePassagesOutput
	err    error
	calls  atomic.Int32
}

func (s *stubRetrieveUsecase) Execute(ctx context.Context, input RetrievePassagesInput) (*RetrievePassagesOutput, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.output, nil
}

type stubLLMClient struct {
	text     string
	err      error
	calls    atomic.Int32
	captured []domain.Message
}

func (s *stubLLMClient) Generate(ctx context.Context, messages []domain.Message) (string, error) {
	s.calls.Add(1)
	s.captured = messages
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func (s *stubLLMClient) Version() string { return "stub" }

func TestAnswerQuestion_Success(t *testing.T) {
	retrieve := &stubRetrieveUsecase{
		output: &RetrievePassagesOutput{
			Passages: []string{`From chapter "The Newborn": jaundice text`},
			Context:  `From chapter "The Newborn": jaundice text`,
		},
	}
	llm := &stubLLMClient{text: "## Overview\nPhysiologic jaundice is common."}

	u := NewAnswerQuestionUsecase(retrieve, NewGroundedPromptBuilder(), llm, testLogger())
	out, err := u.Execute(context.Background(), AnswerQuestionInput{
		Message: "What causes neonatal jaundice?",
		UserID:  "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "## Overview\nPhysiologic jaundice is common.", out.Answer)
	assert.Equal(t, retrieve.output.Passages, out.Context)
	require.Len(t, llm.captured, 2)
	assert.Equal(t, "What causes neonatal jaundice?", llm.captured[1].Content)
}

func TestAnswerQuestion_EmptyMessageShortCircuits(t *testing.T) {
	retrieve := &stubRetrieveUsecase{}
	llm := &stubLLMClient{}

	u := NewAnswerQuestionUsecase(retrieve, NewGroundedPromptBuilder(), llm, testLogger())

	for _, message := range []string{"", "   ", "\t\n"} {
		out, err := u.Execute(context.Background(), AnswerQuestionInput{Message: message})
		require.Error(t, err)
		assert.Nil(t, out)

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "Message is required", validationErr.Reason)
	}

	assert.Equal(t, int32(0), retrieve.calls.Load(), "validation failures must make zero network calls")
	assert.Equal(t, int32(0), llm.calls.Load())
}

func TestAnswerQuestion_RetrievalFailurePropagates(t *testing.T) {
	retrieve := &stubRetrieveUsecase{
		err: &domain.RetrievalError{Collection: domain.CollectionTextbook, Err: context.DeadlineExceeded},
	}
	llm := &stubLLMClient{}

	u := NewAnswerQuestionUsecase(retrieve, NewGroundedPromptBuilder(), llm, testLogger())
	_, err := u.Execute(context.Background(), AnswerQuestionInput{Message: "neonatal fever workup"})
	require.Error(t, err)

	var retrievalErr *domain.RetrievalError
	assert.ErrorAs(t, err, &retrievalErr)
	assert.Equal(t, int32(0), llm.calls.Load(), "generation must not run after a retrieval failure")
}

func TestAnswerQuestion_GenerationFailurePropagates(t *testing.T) {
	retrieve := &stubRetrieveUsecase{
		output: &RetrievePassagesOutput{Context: NoContextSentinel},
	}
	llm := &stubLLMClient{err: domain.NewGenerationTransportError(503, "overloaded", nil)}

	u := NewAnswerQuestionUsecase(retrieve, NewGroundedPromptBuilder(), llm, testLogger())
	_, err := u.Execute(context.Background(), AnswerQuestionInput{Message: "neonatal fever workup"})
	require.Error(t, err)

	var generationErr *domain.GenerationError
	require.ErrorAs(t, err, &generationErr)
	assert.Equal(t, domain.GenerationErrorTransport, generationErr.Kind)
	assert.Equal(t, 503, generationErr.StatusCode)
}
