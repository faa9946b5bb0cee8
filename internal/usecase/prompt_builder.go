package usecase

import (
	"strings"

	"nelson-chat/internal/domain"
)

// PromptInput contains the pieces that feed into the prompt builder.
type PromptInput struct {
	Question string
	Context  string
}

// PromptBuilder builds the messages sent to the generation service.
type PromptBuilder interface {
	Build(input PromptInput) []domain.Message
}

// groundingInstructions is the fixed instruction block: persona,
// answer-only-from-context rule, formatting preference, the
// insufficient-context fallback, and the mandatory disclaimer.
var groundingInstructions = []string{
	"You are Nelson-GPT, a pediatric medical assistant based exclusively on the Nelson Textbook of Pediatrics.",
	"Provide accurate, evidence-based answers using only the information provided in the context below.",
	"Format your responses with markdown for readability including bullet points, bold, and headings when appropriate.",
	"If the information to answer the question is not in the context, acknowledge that you don't have enough information from the Nelson Textbook to answer the question accurately and suggest consulting a healthcare provider.",
	"Always include a disclaimer that your responses are not a substitute for professional medical advice.",
}

// GroundedPromptBuilder renders the two-message prompt: instructions
// plus retrieved context first, then the raw question on its own.
type GroundedPromptBuilder struct {
	additionalInstructions []string
}

// NewGroundedPromptBuilder creates a prompt builder with optional
// extra instructions appended after the fixed block.
func NewGroundedPromptBuilder(additionalInstructions ...string) PromptBuilder {
	return &GroundedPromptBuilder{
		additionalInstructions: additionalInstructions,
	}
}

// Build renders the messages. The question goes into its own message
// untouched; the generation service is sensitive to that boundary.
// Pure construction, no failure modes.
func (b *GroundedPromptBuilder) Build(input PromptInput) []domain.Message {
	var sb strings.Builder
	for _, inst := range groundingInstructions {
		sb.WriteString(inst)
		sb.WriteString("\n")
	}
	for _, inst := range b.additionalInstructions {
		sb.WriteString(inst)
		sb.WriteString("\n")
	}
	sb.WriteString("\nContext from Nelson Textbook:\n")
	sb.WriteString(input.Context)

	return []domain.Message{
		{Role: "user", Content: sb.String()},
		{Role: "user", Content: input.Question},
	}
}
