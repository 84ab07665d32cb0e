package vectordb

import "strings"

// Chunker splits page content into overlapping chunks on sentence
// boundaries so no chunk cuts a sentence in half.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

func NewChunker(chunkSize, chunkOverlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = 0
	}

	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// Split breaks text into chunks of at most chunkSize characters, carrying
// chunkOverlap trailing characters into the next chunk for context
// continuity.
func (c *Chunker) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= c.chunkSize {
		return []string{text}
	}

	var chunks []string
	current := strings.Builder{}

	for _, sentence := range splitSentences(text) {
		if current.Len() > 0 && current.Len()+len(sentence)+1 > c.chunkSize {
			chunks = append(chunks, strings.TrimSpace(current.String()))

			if c.chunkOverlap > 0 && current.Len() > c.chunkOverlap {
				tail := current.String()
				tail = tail[len(tail)-c.chunkOverlap:]
				current.Reset()
				current.WriteString(tail)
			} else {
				current.Reset()
			}
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
	}

	if strings.TrimSpace(current.String()) != "" {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	return chunks
}

func splitSentences(text string) []string {
	var sentences []string
	current := strings.Builder{}

	for i := 0; i < len(text); i++ {
		ch := text[i]
		current.WriteByte(ch)

		if ch == '.' || ch == '!' || ch == '?' || ch == '\n' {
			// Only break when followed by whitespace or end of text
			if i+1 >= len(text) || text[i+1] == ' ' || text[i+1] == '\n' {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
