package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitChunks_PacksParagraphs(t *testing.T) {
	text := "first paragraph\n\nsecond paragraph\n\nthird paragraph"

	chunks := splitChunks(text, 40)

	require.Len(t, chunks, 2)
	assert.Equal(t, "first paragraph\n\nsecond paragraph", chunks[0])
	assert.Equal(t, "third paragraph", chunks[1])
}

func TestSplitChunks_SkipsBlankParagraphs(t *testing.T) {
	chunks := splitChunks("one\n\n   \n\ntwo", 1000)
	require.Len(t, chunks, 1)
	assert.Equal(t, "one\n\ntwo", chunks[0])
}

func TestSplitChunks_OversizedParagraphStaysWhole(t *testing.T) {
	long := strings.Repeat("word ", 100)
	chunks := splitChunks(long, 50)
	require.Len(t, chunks, 1)
}

func TestSplitChunks_EmptyInput(t *testing.T) {
	assert.Empty(t, splitChunks("", 100))
	assert.Empty(t, splitChunks("\n\n\n\n", 100))
}

func TestChapterTitle(t *testing.T) {
	assert.Equal(t, "Neonatal Hyperbilirubinemia", chapterTitle("Neonatal_Hyperbilirubinemia.txt"))
	assert.Equal(t, "The Newborn", chapterTitle("The_Newborn.md"))
}
