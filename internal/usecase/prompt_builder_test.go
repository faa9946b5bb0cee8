package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroundedPromptBuilder_TwoMessages(t *testing.T) {
	builder := NewGroundedPromptBuilder()

	messages := builder.Build(PromptInput{
		Question: "What causes neonatal jaundice?",
		Context:  "Bilirubin accumulates when hepatic conjugation is immature.",
	})

	require.Len(t, messages, 2)
	assert.Equal(t, "What causes neonatal jaundice?", messages[1].Content,
		"the question must pass through untouched in its own message")
}

func TestGroundedPromptBuilder_InstructionBlock(t *testing.T) {
	builder := NewGroundedPromptBuilder()

	messages := builder.Build(PromptInput{
		Question: "q",
		Context:  "ctx-block",
	})

	instructions := messages[0].Content
	assert.Contains(t, instructions, "Nelson-GPT")
	assert.Contains(t, instructions, "only the information provided in the context")
	assert.Contains(t, instructions, "markdown")
	assert.Contains(t, instructions, "consulting a healthcare provider")
	assert.Contains(t, instructions, "not a substitute for professional medical advice")
	assert.True(t, strings.HasSuffix(instructions, "Context from Nelson Textbook:\nctx-block"),
		"context block must be carried verbatim at the end of the instruction message")
}

func TestGroundedPromptBuilder_SentinelContext(t *testing.T) {
	builder := NewGroundedPromptBuilder()

	messages := builder.Build(PromptInput{
		Question: "q",
		Context:  NoContextSentinel,
	})

	assert.Contains(t, messages[0].Content, NoContextSentinel)
	assert.NotContains(t, messages[1].Content, NoContextSentinel)
}

func TestGroundedPromptBuilder_AdditionalInstructions(t *testing.T) {
	builder := NewGroundedPromptBuilder("Answer briefly.")

	messages := builder.Build(PromptInput{Question: "q", Context: "c"})
	assert.Contains(t, messages[0].Content, "Answer briefly.")
}
