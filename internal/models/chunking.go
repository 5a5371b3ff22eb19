// ABOUTME: ChunkingConfig controls how raw content is split before embedding
// ABOUTME: Supports fixed, paragraph, and sentence boundary strategies with overlap
package models

// SplitMode selects the boundary-detection rule for chunking
type SplitMode string

const (
	SplitFixed     SplitMode = "fixed"
	SplitParagraph SplitMode = "paragraph"
	SplitSentence  SplitMode = "sentence"
)

// Valid reports whether the split mode is one of the known values
func (m SplitMode) Valid() bool {
	switch m {
	case SplitFixed, SplitParagraph, SplitSentence:
		return true
	}
	return false
}

// Default chunking parameters, applied by Normalize
const (
	DefaultChunkSize = 500
	DefaultOverlap   = 0
)

// ChunkingConfig bounds chunk size (in runes) and controls overlap between
// consecutive chunks. Overlap repeats the trailing runes of one chunk at the
// start of the next for retrieval context continuity.
type ChunkingConfig struct {
	MaxChunkSize int       `json:"max_chunk_size"`
	Overlap      int       `json:"overlap"`
	SplitOn      SplitMode `json:"split_on"`
}

// Normalize returns a copy with defaults applied and degenerate values
// clamped so chunking always makes progress.
func (c ChunkingConfig) Normalize() ChunkingConfig {
	if c.MaxChunkSize <= 0 {
		c.MaxChunkSize = DefaultChunkSize
	}
	if c.Overlap < 0 {
		c.Overlap = DefaultOverlap
	}
	if c.Overlap >= c.MaxChunkSize {
		c.Overlap = c.MaxChunkSize / 2
	}
	if !c.SplitOn.Valid() {
		c.SplitOn = SplitParagraph
	}
	return c
}
