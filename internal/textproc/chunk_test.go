package textproc

import (
	"strings"
	"testing"
)

func TestSplitText_ShortInputSingleChunk(t *testing.T) {
	text := "  This agreement is made between the parties.  "
	chunks := SplitText(text, 30000)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != strings.TrimSpace(text) {
		t.Errorf("expected trimmed input, got %q", chunks[0])
	}
}

func TestSplitText_SplitsOnWhitespace(t *testing.T) {
	// 10-char words separated by spaces; chunk size lands mid-word.
	word := "abcdefghij"
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		sb.WriteString(word)
		sb.WriteString(" ")
	}
	text := strings.TrimSpace(sb.String())

	chunks := SplitText(text, 25)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, c := range chunks {
		if strings.TrimSpace(c) == "" {
			t.Errorf("chunk %d is empty after trim", i)
		}
		// Every chunk must end on a word boundary, so it never ends
		// with a partial word.
		if !strings.HasSuffix(c, word) {
			t.Errorf("chunk %d = %q does not end on a word boundary", i, c)
		}
	}
}

func TestSplitText_ToleranceBound(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("lorem ipsum dolor sit amet consectetur ")
	}
	text := sb.String()

	chunkSize := 100
	chunks := SplitText(text, chunkSize)

	limit := int(float64(chunkSize) * 1.2)
	for i, c := range chunks {
		if i == len(chunks)-1 {
			continue // last chunk is whatever remains
		}
		if len(c) > limit {
			t.Errorf("chunk %d length %d exceeds tolerance %d", i, len(c), limit)
		}
	}
}

func TestSplitText_HardSplitWithoutWhitespace(t *testing.T) {
	text := strings.Repeat("x", 250)
	chunks := SplitText(text, 100)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 100 || len(chunks[1]) != 100 || len(chunks[2]) != 50 {
		t.Errorf("unexpected chunk lengths: %d, %d, %d",
			len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
}

func TestSplitText_Reconstruction(t *testing.T) {
	text := "The lessee shall pay rent on the first day of each month. " +
		strings.Repeat("Clause 4.2 obliges the lessor to maintain the premises. ", 20)

	chunks := SplitText(text, 80)

	// Concatenation with the consumed boundary whitespace restored must
	// reproduce the original text modulo leading/trailing trim.
	joined := strings.Join(chunks, " ")
	if strings.Join(strings.Fields(joined), " ") != strings.Join(strings.Fields(text), " ") {
		t.Error("chunks do not reconstruct the input text")
	}
}

func TestSplitText_DefaultChunkSize(t *testing.T) {
	chunks := SplitText("short text", 0)
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Errorf("expected single chunk with default size, got %v", chunks)
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text          string
		charsPerToken float64
		want          int
	}{
		{"abcd", 4.0, 1},
		{"abcde", 4.0, 2},
		{"a", 4.0, 1},
		{strings.Repeat("x", 400), 4.0, 100},
		{"abcd", 0, 1}, // zero ratio falls back to default
	}

	for _, tt := range tests {
		if got := EstimateTokens(tt.text, tt.charsPerToken); got != tt.want {
			t.Errorf("EstimateTokens(%d chars, %v) = %d, want %d",
				len(tt.text), tt.charsPerToken, got, tt.want)
		}
	}
}

func TestEstimateTokens_Monotonic(t *testing.T) {
	prev := 0
	for n := 1; n <= 64; n++ {
		got := EstimateTokens(strings.Repeat("a", n), 4.0)
		if got < prev {
			t.Fatalf("estimate decreased at length %d: %d < %d", n, got, prev)
		}
		prev = got
	}
}
