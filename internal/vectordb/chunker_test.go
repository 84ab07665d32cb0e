package vectordb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunker_ShortTextSingleChunk(t *testing.T) {
	c := NewChunker(100, 20)

	chunks := c.Split("A short note.")

	assert.Equal(t, []string{"A short note."}, chunks)
}

func TestChunker_EmptyText(t *testing.T) {
	c := NewChunker(100, 20)

	assert.Nil(t, c.Split(""))
	assert.Nil(t, c.Split("   \n  "))
}

func TestChunker_RespectsChunkSize(t *testing.T) {
	c := NewChunker(50, 10)

	var sb strings.Builder
	for i := 0; i < 20; i++ {
		sb.WriteString("This is sentence number something. ")
	}

	chunks := c.Split(sb.String())

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 50+len("This is sentence number something."),
			"a chunk may exceed the target only by the sentence that closed it")
		assert.NotEmpty(t, strings.TrimSpace(chunk))
	}
}

func TestChunker_DoesNotSplitMidSentence(t *testing.T) {
	c := NewChunker(40, 0)

	text := "First sentence here. Second sentence here. Third sentence here."
	chunks := c.Split(text)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.True(t, strings.HasSuffix(chunk, "."), "chunk %q must end on a sentence boundary", chunk)
	}
}

func TestChunker_OverlapCarriesTrailingText(t *testing.T) {
	c := NewChunker(40, 15)

	text := "Alpha beta gamma delta. Epsilon zeta eta theta. Iota kappa lambda mu."
	chunks := c.Split(text)

	require.Greater(t, len(chunks), 1)

	// The second chunk starts with the tail of the first
	tail := chunks[0][len(chunks[0])-10:]
	assert.Contains(t, chunks[1], strings.TrimSpace(tail))
}

func TestChunker_NoOverlapWhenDisabled(t *testing.T) {
	c := NewChunker(40, 0)

	text := "First sentence here. Second sentence here. Third sentence here."
	chunks := c.Split(text)

	joined := strings.Join(chunks, " ")
	assert.Equal(t, text, joined)
}

func TestNewChunker_SanitizesBadValues(t *testing.T) {
	// Overlap >= size would never make progress
	c := NewChunker(100, 100)
	chunks := c.Split(strings.Repeat("Word after word keeps coming. ", 30))
	assert.NotEmpty(t, chunks)

	c = NewChunker(0, -1)
	assert.Equal(t, []string{"tiny"}, c.Split("tiny"))
}

func TestSplitSentences(t *testing.T) {
	sentences := splitSentences("One two. Three four! Five six? Seven\n eight.")

	assert.Equal(t, []string{"One two.", "Three four!", "Five six?", "Seven", "eight."}, sentences)
}

func TestSplitSentences_NoBreakInsideToken(t *testing.T) {
	// Dots not followed by whitespace (versions, URLs) do not end a sentence
	sentences := splitSentences("Upgrade to v1.2.3 today. Then reboot.")

	assert.Equal(t, []string{"Upgrade to v1.2.3 today.", "Then reboot."}, sentences)
}

func TestContentHash_Deterministic(t *testing.T) {
	a := contentHash("Title", "content body")
	b := contentHash("Title", "content body")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	// Title and content are hashed separately, not concatenated blindly
	assert.NotEqual(t, contentHash("ab", "c"), contentHash("a", "bc"))
}
