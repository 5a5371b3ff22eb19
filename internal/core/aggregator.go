// ABOUTME: Corpus aggregation as an explicit scan-and-reduce over records
// ABOUTME: Assumes no grouping primitives in the storage engine
package core

import (
	"sort"
	"unicode/utf8"

	"github.com/harper/knowledge-standalone/internal/models"
)

// AggregateCorpus reduces one tenant's records into summary statistics.
// An empty slice yields zero-value stats with empty sets, never an error.
// EmbeddingDimension comes from the first record scanned; uniformity
// across the corpus is the caller's responsibility.
func AggregateCorpus(records []models.VectorRecord) models.CorpusStats {
	stats := models.CorpusStats{
		SourceTypes: []string{},
		Categories:  []string{},
	}

	if len(records) == 0 {
		return stats
	}

	sourceTypes := make(map[string]struct{})
	categories := make(map[string]struct{})

	for i, rec := range records {
		stats.TotalVectors++
		stats.TotalContentLength += utf8.RuneCountInString(rec.Content)

		sourceTypes[string(rec.Source.Type)] = struct{}{}
		if rec.Source.Category != "" {
			categories[rec.Source.Category] = struct{}{}
		}

		if stats.EmbeddingDimension == 0 {
			stats.EmbeddingDimension = len(rec.Embedding)
		}

		if i == 0 {
			stats.OldestVector = rec.CreatedAt
			stats.NewestVector = rec.CreatedAt
			continue
		}
		if rec.CreatedAt.Before(stats.OldestVector) {
			stats.OldestVector = rec.CreatedAt
		}
		if rec.CreatedAt.After(stats.NewestVector) {
			stats.NewestVector = rec.CreatedAt
		}
	}

	stats.AvgContentLength = float64(stats.TotalContentLength) / float64(stats.TotalVectors)
	stats.SourceTypes = sortedKeys(sourceTypes)
	stats.Categories = sortedKeys(categories)

	return stats
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
