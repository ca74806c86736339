// Package textproc provides the text sizing primitives used to fit
// documents into bounded LLM requests.
package textproc

import (
	"math"
	"strings"
)

const (
	// DefaultChunkSize is the target chunk length in characters.
	DefaultChunkSize = 30000

	// DefaultCharsPerToken is the character-to-token ratio used for estimates.
	DefaultCharsPerToken = 4.0

	// boundaryTolerance is how far past the target size a chunk may grow
	// to end on a whitespace boundary instead of mid-word.
	boundaryTolerance = 1.2
)

// SplitText partitions text into ordered, non-overlapping chunks of at most
// chunkSize characters, extended to the next whitespace when one exists
// within chunkSize*1.2 of the chunk start. Chunks are trimmed and empty
// chunks are dropped.
func SplitText(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	var chunks []string
	i := 0
	n := len(text)

	for i < n {
		end := i + chunkSize
		if end > n {
			end = n
		}

		if end < n {
			// Extend to the next whitespace so words are not split,
			// but never beyond the tolerance window.
			if ws := nextWhitespace(text, end); ws != -1 && float64(ws-i) <= float64(chunkSize)*boundaryTolerance {
				end = ws
			}
		}

		if chunk := strings.TrimSpace(text[i:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		// The whitespace at the boundary is consumed by the next
		// chunk's leading trim.
		i = end
	}

	return chunks
}

// nextWhitespace returns the index of the first ASCII whitespace at or after
// from, or -1 when none exists.
func nextWhitespace(text string, from int) int {
	if idx := strings.IndexAny(text[from:], " \t\n\r"); idx != -1 {
		return from + idx
	}
	return -1
}

// EstimateTokens approximates the LLM token count of text from its character
// length. It is a sizing proxy, not a tokenizer: callers must tolerate
// over- and under-estimation. The result is always at least 1.
func EstimateTokens(text string, charsPerToken float64) int {
	if charsPerToken <= 0 {
		charsPerToken = DefaultCharsPerToken
	}
	est := int(math.Ceil(float64(len(text)) / charsPerToken))
	if est < 1 {
		return 1
	}
	return est
}
