// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Storage/pipeline construction and output formatting helpers
package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/harper/knowledge-standalone/internal/config"
	"github.com/harper/knowledge-standalone/internal/core"
	"github.com/harper/knowledge-standalone/internal/models"
	"github.com/harper/knowledge-standalone/internal/storage/sqlite"
)

// loadConfig reads configuration from the environment
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// openStorage opens storage at the configured or default XDG path
func openStorage(cfg *config.Config) (*sqlite.Storage, error) {
	if cfg != nil && cfg.DBPath != "" {
		return sqlite.NewStorageWithPath(cfg.DBPath)
	}
	return sqlite.NewStorage()
}

// buildPipeline assembles the ingestion pipeline from configuration
func buildPipeline(store *sqlite.Storage, cfg *config.Config) *core.Pipeline {
	return core.NewPipeline(store, core.NewDeduplicator(core.DedupScope(cfg.DedupScope)))
}

// chunkingFromConfig converts config values to a chunking configuration
func chunkingFromConfig(cfg *config.Config) models.ChunkingConfig {
	return models.ChunkingConfig{
		MaxChunkSize: cfg.ChunkSize,
		Overlap:      cfg.ChunkOverlap,
		SplitOn:      models.SplitMode(cfg.SplitOn),
	}
}

// requireAPIKey returns the OpenAI API key or an actionable error
func requireAPIKey() (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY is not set; embeddings require an OpenAI API key")
	}
	return apiKey, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
