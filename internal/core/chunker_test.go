// ABOUTME: Tests for ChunkEngine splitting strategies
// ABOUTME: Verifies fixed-window math, overlap, boundary packing, and determinism
package core

import (
	"strings"
	"testing"

	"github.com/harper/knowledge-standalone/internal/models"
)

func TestChunk_EmptyInput(t *testing.T) {
	ce := NewChunkEngine()

	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"whitespace only", "   "},
		{"tabs and newlines", "\t\n\r"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := ce.Chunk(tt.text, models.ChunkingConfig{SplitOn: models.SplitFixed})
			if len(chunks) != 0 {
				t.Errorf("Chunk() returned %d chunks, want 0", len(chunks))
			}
		})
	}
}

func TestChunk_ShortInputSingleChunk(t *testing.T) {
	ce := NewChunkEngine()
	text := "shorter than the limit"

	for _, mode := range []models.SplitMode{models.SplitFixed, models.SplitParagraph, models.SplitSentence} {
		t.Run(string(mode), func(t *testing.T) {
			chunks := ce.Chunk(text, models.ChunkingConfig{MaxChunkSize: 100, SplitOn: mode})
			if len(chunks) != 1 {
				t.Fatalf("Chunk() returned %d chunks, want 1", len(chunks))
			}
			if chunks[0] != text {
				t.Errorf("Chunk()[0] = %q, want %q", chunks[0], text)
			}
		})
	}
}

func TestChunk_FixedCeilCount(t *testing.T) {
	ce := NewChunkEngine()

	tests := []struct {
		length int
		max    int
		want   int
	}{
		{1000, 100, 10},
		{1050, 100, 11},
		{1, 100, 1},
		{100, 100, 1},
		{101, 100, 2},
	}

	for _, tt := range tests {
		text := strings.Repeat("x", tt.length)
		chunks := ce.Chunk(text, models.ChunkingConfig{MaxChunkSize: tt.max, Overlap: 0, SplitOn: models.SplitFixed})

		if len(chunks) != tt.want {
			t.Errorf("length %d, max %d: got %d chunks, want %d", tt.length, tt.max, len(chunks), tt.want)
		}

		// With zero overlap the chunks reassemble the input exactly
		if got := strings.Join(chunks, ""); got != text {
			t.Errorf("length %d, max %d: chunks do not reassemble input", tt.length, tt.max)
		}

		for i, c := range chunks {
			if n := len([]rune(c)); n > tt.max {
				t.Errorf("chunk %d has %d runes, want <= %d", i, n, tt.max)
			}
		}
	}
}

func TestChunk_FixedOverlap(t *testing.T) {
	ce := NewChunkEngine()
	text := "abcdefghijklmnopqrstuvwxyz"

	chunks := ce.Chunk(text, models.ChunkingConfig{MaxChunkSize: 10, Overlap: 3, SplitOn: models.SplitFixed})

	if len(chunks) < 2 {
		t.Fatalf("Chunk() returned %d chunks, want >= 2", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		tail := string(prev[len(prev)-3:])
		if !strings.HasPrefix(chunks[i], tail) {
			t.Errorf("chunk %d = %q does not start with previous tail %q", i, chunks[i], tail)
		}
	}
}

func TestChunk_FixedMultibyteRunes(t *testing.T) {
	ce := NewChunkEngine()
	text := strings.Repeat("知识库测试", 10) // 50 runes

	chunks := ce.Chunk(text, models.ChunkingConfig{MaxChunkSize: 7, Overlap: 0, SplitOn: models.SplitFixed})

	if got := strings.Join(chunks, ""); got != text {
		t.Error("multibyte chunks do not reassemble input; a rune was split")
	}
	for i, c := range chunks {
		if n := len([]rune(c)); n > 7 {
			t.Errorf("chunk %d has %d runes, want <= 7", i, n)
		}
	}
}

func TestChunk_ParagraphPacking(t *testing.T) {
	ce := NewChunkEngine()
	text := "First paragraph here.\n\nSecond paragraph here.\n\nThird paragraph here."

	// All three fit together
	chunks := ce.Chunk(text, models.ChunkingConfig{MaxChunkSize: 200, SplitOn: models.SplitParagraph})
	if len(chunks) != 1 {
		t.Errorf("large limit: got %d chunks, want 1", len(chunks))
	}

	// Each paragraph forces its own chunk
	chunks = ce.Chunk(text, models.ChunkingConfig{MaxChunkSize: 30, SplitOn: models.SplitParagraph})
	if len(chunks) != 3 {
		t.Fatalf("small limit: got %d chunks, want 3", len(chunks))
	}
	if chunks[0] != "First paragraph here." {
		t.Errorf("chunks[0] = %q", chunks[0])
	}
}

func TestChunk_ParagraphWindowsLineEndings(t *testing.T) {
	ce := NewChunkEngine()
	text := "Paragraph one.\r\n\r\nParagraph two."

	chunks := ce.Chunk(text, models.ChunkingConfig{MaxChunkSize: 20, SplitOn: models.SplitParagraph})
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[1] != "Paragraph two." {
		t.Errorf("chunks[1] = %q, want %q", chunks[1], "Paragraph two.")
	}
}

func TestChunk_OversizedParagraphFallsBackToFixed(t *testing.T) {
	ce := NewChunkEngine()
	long := strings.Repeat("a", 120)
	text := "Short one.\n\n" + long

	chunks := ce.Chunk(text, models.ChunkingConfig{MaxChunkSize: 50, SplitOn: models.SplitParagraph})

	if len(chunks) != 4 { // "Short one." + ceil(120/50)=3
		t.Fatalf("got %d chunks, want 4", len(chunks))
	}
	for i, c := range chunks {
		if n := len([]rune(c)); n > 50 {
			t.Errorf("chunk %d has %d runes, want <= 50", i, n)
		}
	}
}

func TestChunk_SentencePacking(t *testing.T) {
	ce := NewChunkEngine()
	text := "One sentence. Another sentence! A third? Final words here."

	chunks := ce.Chunk(text, models.ChunkingConfig{MaxChunkSize: 25, SplitOn: models.SplitSentence})

	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want >= 2", len(chunks))
	}
	if !strings.HasPrefix(chunks[0], "One sentence.") {
		t.Errorf("chunks[0] = %q, want sentence boundary preserved", chunks[0])
	}
	for i, c := range chunks {
		if n := len([]rune(c)); n > 25 {
			t.Errorf("chunk %d has %d runes, want <= 25", i, n)
		}
	}
}

func TestChunk_Deterministic(t *testing.T) {
	ce := NewChunkEngine()
	text := strings.Repeat("Deterministic chunking input. ", 40)
	cfg := models.ChunkingConfig{MaxChunkSize: 80, Overlap: 10, SplitOn: models.SplitSentence}

	first := ce.Chunk(text, cfg)
	second := ce.Chunk(text, cfg)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}
