package domain

import (
	"fmt"
	"strings"
)

// ValidationError rejects bad caller input before the pipeline runs.
// Its reason is safe to return verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ErrMessageRequired is returned when the chat message is missing or
// blank. The literal is part of the HTTP contract.
var ErrMessageRequired = &ValidationError{Reason: "Message is required"}

// ConfigurationError reports missing startup configuration. It is
// fatal for the process, never surfaced per request.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing configuration: %s", strings.Join(e.Missing, ", "))
}

// RetrievalError wraps a corpus search failure. The first failing
// collection fails the whole request; there are no partial results.
type RetrievalError struct {
	Collection Collection
	Err        error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("searching %s failed: %v", e.Collection, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// GenerationErrorKind distinguishes the ways a generation call fails.
type GenerationErrorKind string

const (
	GenerationErrorTransport GenerationErrorKind = "transport"
	GenerationErrorMalformed GenerationErrorKind = "malformed_response"
	GenerationErrorEmpty     GenerationErrorKind = "empty_answer"
)

// GenerationError wraps a generation service failure. Body and Err
// carry upstream detail for logs only; they must never reach a caller
// where they could be mistaken for medical content.
type GenerationError struct {
	Kind       GenerationErrorKind
	StatusCode int
	Body       string
	Err        error
}

func (e *GenerationError) Error() string {
	switch e.Kind {
	case GenerationErrorTransport:
		if e.StatusCode != 0 {
			return fmt.Sprintf("generation endpoint returned %d: %s", e.StatusCode, e.Body)
		}
		return fmt.Sprintf("generation request failed: %v", e.Err)
	case GenerationErrorMalformed:
		return fmt.Sprintf("malformed generation response: %v", e.Err)
	case GenerationErrorEmpty:
		return "generation returned empty answer text"
	}
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// NewGenerationTransportError covers non-success statuses, network
// failures and timeouts on the generation call.
func NewGenerationTransportError(statusCode int, body string, err error) *GenerationError {
	return &GenerationError{Kind: GenerationErrorTransport, StatusCode: statusCode, Body: body, Err: err}
}

// NewMalformedResponseError covers responses missing the candidate or
// part structure the contract requires.
func NewMalformedResponseError(err error) *GenerationError {
	return &GenerationError{Kind: GenerationErrorMalformed, Err: err}
}

// NewEmptyAnswerError covers a structurally valid response whose text
// is blank. An empty model answer is a failure, not a success.
func NewEmptyAnswerError() *GenerationError {
	return &GenerationError{Kind: GenerationErrorEmpty}
}
