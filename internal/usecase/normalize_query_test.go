package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuery_DropsShortTokens(t *testing.T) {
	got := NormalizeQuery("What are the causes of neonatal jaundice?")

	// "are", "the", "of" are 3 characters or fewer and get dropped;
	// punctuation stays attached to its token.
	assert.Equal(t, "What | causes | neonatal | jaundice?", got)
}

func TestNormalizeQuery_AllShortTokens(t *testing.T) {
	assert.Equal(t, "", NormalizeQuery("is it a bad flu"))
}

func TestNormalizeQuery_EmptyInput(t *testing.T) {
	assert.Equal(t, "", NormalizeQuery(""))
	assert.Equal(t, "", NormalizeQuery("   \t\n"))
}

func TestNormalizeQuery_CollapsesWhitespace(t *testing.T) {
	got := NormalizeQuery("  fever   in\tinfants\n under three  months ")
	assert.Equal(t, "fever | infants | under | three | months", got)
}

func TestNormalizeQuery_CountsRunesNotBytes(t *testing.T) {
	// 4 runes, 8 bytes; must survive the length filter.
	assert.Equal(t, "früh", NormalizeQuery("für früh"))
}
