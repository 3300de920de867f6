package textproc

import (
	"strings"
	"testing"
)

func TestChunkEmpty(t *testing.T) {
	if got := Chunk("", 1000, 100); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestChunkShortInput(t *testing.T) {
	got := Chunk("short", 1000, 100)
	if len(got) != 1 || got[0] != "short" {
		t.Fatalf("expected single chunk, got %v", got)
	}
}

func TestChunkCountAndReconstruction(t *testing.T) {
	const size, overlap = 100, 10
	text := strings.Repeat("abcdefghij", 57) // 570 bytes

	chunks := Chunk(text, size, overlap)

	// ceil((L - overlap) / (size - overlap))
	wantCount := (len(text) - overlap + (size - overlap) - 1) / (size - overlap)
	if len(chunks) != wantCount {
		t.Fatalf("chunk count = %d, want %d", len(chunks), wantCount)
	}

	for i, ch := range chunks {
		if len(ch) > size {
			t.Fatalf("chunk %d exceeds size: %d", i, len(ch))
		}
	}

	// Dropping each successor's overlapping prefix reconstructs the input.
	var b strings.Builder
	b.WriteString(chunks[0])
	for _, ch := range chunks[1:] {
		b.WriteString(ch[overlap:])
	}
	if b.String() != text {
		t.Fatal("reconstruction from overlapping chunks does not match input")
	}
}

func TestChunkOverlapShared(t *testing.T) {
	const size, overlap = 50, 10
	text := strings.Repeat("x y z ", 40)
	chunks := Chunk(text, size, overlap)
	for i := 1; i < len(chunks); i++ {
		prevTail := chunks[i-1][len(chunks[i-1])-overlap:]
		if !strings.HasPrefix(chunks[i], prevTail) {
			// Last chunk may be shorter than size but still shares the tail.
			t.Fatalf("chunk %d does not begin with predecessor tail", i)
		}
	}
}

func TestChunkBadParamsFallBack(t *testing.T) {
	text := strings.Repeat("a", 3000)
	chunks := Chunk(text, 0, -5)
	if len(chunks) == 0 {
		t.Fatal("expected chunks with default parameters")
	}
	for _, ch := range chunks {
		if len(ch) > DefaultChunkSize {
			t.Fatalf("chunk exceeds default size: %d", len(ch))
		}
	}
}
