package domain

import "context"

// Message is one part of a multi-message generation prompt. The
// instruction/context part and the raw question part must stay in
// separate messages; the generation service is sensitive to message
// boundaries.
type Message struct {
	Role    string
	Content string
}

// LLMClient defines the capability to send a prompt to a generative
// text service and receive the answer text. The text is never empty on
// success; a failed or empty generation comes back as a *GenerationError.
type LLMClient interface {
	Generate(ctx context.Context, messages []Message) (string, error)
	Version() string
}
