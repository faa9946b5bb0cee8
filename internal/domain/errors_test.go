package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrievalError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("search failed: %w", &RetrievalError{Collection: CollectionChapter, Err: cause})

	var retrievalErr *RetrievalError
	require.ErrorAs(t, err, &retrievalErr)
	assert.Equal(t, CollectionChapter, retrievalErr.Collection)
	assert.ErrorIs(t, err, cause)
}

func TestGenerationError_Kinds(t *testing.T) {
	transport := NewGenerationTransportError(503, "overloaded", nil)
	assert.Equal(t, GenerationErrorTransport, transport.Kind)
	assert.Contains(t, transport.Error(), "503")

	malformed := NewMalformedResponseError(errors.New("no candidates"))
	assert.Equal(t, GenerationErrorMalformed, malformed.Kind)
	assert.Contains(t, malformed.Error(), "no candidates")

	empty := NewEmptyAnswerError()
	assert.Equal(t, GenerationErrorEmpty, empty.Kind)
}

func TestErrMessageRequired_Literal(t *testing.T) {
	assert.Equal(t, "Message is required", ErrMessageRequired.Error())
}

func TestPassageHit_Label(t *testing.T) {
	labeled := PassageHit{Text: "content", Source: "The Newborn", Collection: CollectionChapter}
	assert.Equal(t, `From chapter "The Newborn": content`, labeled.Label())

	raw := PassageHit{Text: "content", Collection: CollectionTextbook}
	assert.Equal(t, "content", raw.Label())
}
