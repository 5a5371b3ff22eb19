// ABOUTME: Pure cosine similarity scoring and top-K ranking over vector records
// ABOUTME: No storage or tenant awareness; callers filter candidates first
package core

import (
	"math"
	"sort"

	"github.com/harper/knowledge-standalone/internal/models"
)

// ScoredRecord pairs a candidate record with its similarity score
type ScoredRecord struct {
	Record models.VectorRecord
	Score  float64
}

// CosineSimilarity calculates cosine similarity between two vectors.
// Vectors of different lengths or zero magnitude score 0 rather than
// erroring, so a malformed embedding ranks last instead of crashing
// ranking. The result is always in [-1, 1].
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores every candidate against the query and returns at most topK
// results, descending by score. Ties rank the oldest record first so
// output is deterministic. Linear in candidates and dimensionality.
func Rank(query []float64, candidates []models.VectorRecord, topK int) []ScoredRecord {
	if topK <= 0 || len(candidates) == 0 {
		return []ScoredRecord{}
	}

	scored := make([]ScoredRecord, 0, len(candidates))
	for _, rec := range candidates {
		scored = append(scored, ScoredRecord{
			Record: rec,
			Score:  CosineSimilarity(query, rec.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Record.CreatedAt.Before(scored[j].Record.CreatedAt)
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}

	return scored
}
