// ABOUTME: ChunkEngine splits raw content into bounded chunks for embedding
// ABOUTME: Supports fixed-window, paragraph, and sentence boundary strategies
package core

import (
	"strings"

	"github.com/harper/knowledge-standalone/internal/models"
)

// ChunkEngine splits text into an ordered sequence of bounded chunks.
// Chunking is pure: the same input and config always produce the same
// sequence, so callers may re-chunk identical input deterministically.
type ChunkEngine struct{}

// NewChunkEngine creates a new ChunkEngine instance
func NewChunkEngine() *ChunkEngine {
	return &ChunkEngine{}
}

// Chunk splits text per the given config. Chunk i of the result becomes
// chunk_index i during ingestion. Empty input yields an empty slice;
// input shorter than the max size yields exactly one chunk.
func (ce *ChunkEngine) Chunk(text string, cfg models.ChunkingConfig) []string {
	cfg = cfg.Normalize()

	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	switch cfg.SplitOn {
	case models.SplitParagraph:
		return ce.packUnits(splitParagraphs(text), "\n\n", cfg)
	case models.SplitSentence:
		return ce.packUnits(splitSentences(text), " ", cfg)
	default:
		return chunkFixed(text, cfg.MaxChunkSize, cfg.Overlap)
	}
}

// chunkFixed slices text into rune windows of at most size runes,
// stepping size-overlap runes each time so multi-byte characters are
// never split mid-rune.
func chunkFixed(text string, size, overlap int) []string {
	runes := []rune(text)
	total := len(runes)

	if total <= size {
		return []string{text}
	}

	step := size - overlap
	if step <= 0 {
		step = 1
	}

	var chunks []string
	for i := 0; i < total; i += step {
		end := i + size
		if end > total {
			end = total
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == total {
			break
		}
	}

	return chunks
}

// packUnits greedily packs boundary units (paragraphs or sentences) into
// chunks of at most MaxChunkSize runes, joined by sep. A single unit
// longer than the limit falls back to fixed-window splitting. Overlap is
// applied afterward by prefixing each chunk with the tail of its
// predecessor.
func (ce *ChunkEngine) packUnits(units []string, sep string, cfg models.ChunkingConfig) []string {
	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	sepLen := len([]rune(sep))

	for _, unit := range units {
		unit = strings.TrimSpace(unit)
		if unit == "" {
			continue
		}

		unitLen := len([]rune(unit))

		if unitLen > cfg.MaxChunkSize {
			flush()
			chunks = append(chunks, chunkFixed(unit, cfg.MaxChunkSize, cfg.Overlap)...)
			continue
		}

		if currentLen > 0 && currentLen+sepLen+unitLen > cfg.MaxChunkSize {
			flush()
		}

		if currentLen > 0 {
			current.WriteString(sep)
			currentLen += sepLen
		}
		current.WriteString(unit)
		currentLen += unitLen
	}
	flush()

	return applyOverlap(chunks, cfg.Overlap)
}

// applyOverlap prefixes each chunk after the first with the trailing
// overlap runes of the previous original chunk.
func applyOverlap(chunks []string, overlap int) []string {
	if overlap <= 0 || len(chunks) < 2 {
		return chunks
	}

	out := make([]string, len(chunks))
	out[0] = chunks[0]
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		start := len(prev) - overlap
		if start < 0 {
			start = 0
		}
		out[i] = string(prev[start:]) + chunks[i]
	}
	return out
}

// splitParagraphs splits text by blank lines, handling both Unix and
// Windows line endings.
func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n\n")
}

// splitSentences splits text after sentence-ending punctuation followed
// by whitespace. The terminator stays attached to its sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])

		if isSentenceEnd(runes[i]) {
			// Consume closing quotes before the boundary check
			for i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\'') {
				i++
				current.WriteRune(runes[i])
			}
			if i+1 >= len(runes) || runes[i+1] == ' ' || runes[i+1] == '\n' || runes[i+1] == '\t' {
				sentences = append(sentences, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}

	return sentences
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
