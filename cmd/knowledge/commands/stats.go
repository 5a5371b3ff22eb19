// ABOUTME: CLI command to show corpus statistics
// ABOUTME: Aggregates a tenant's corpus into counts, sets, and time range
package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	statsAgent   string
	statsCompany string
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show corpus statistics",
		Long: `Show aggregate statistics for a tenant's knowledge corpus.

Reports vector counts, content lengths, source types, categories,
embedding dimension, and the corpus time range.

Examples:
  knowledge stats
  knowledge stats --agent support --company acme
  knowledge stats --format json`,
		Args: cobra.NoArgs,
		RunE: runStats,
	}

	cmd.Flags().StringVar(&statsAgent, "agent", "default", "Agent ID")
	cmd.Flags().StringVar(&statsCompany, "company", "default", "Company ID")

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStorage(cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	stats, err := store.Stats(statsAgent, statsCompany)
	if err != nil {
		return fmt.Errorf("aggregating stats: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Vectors:\t%d\n", stats.TotalVectors)
	fmt.Fprintf(w, "Content length:\t%d chars (avg %.1f)\n", stats.TotalContentLength, stats.AvgContentLength)
	fmt.Fprintf(w, "Embedding dimension:\t%d\n", stats.EmbeddingDimension)
	fmt.Fprintf(w, "Source types:\t%s\n", joinOrDash(stats.SourceTypes))
	fmt.Fprintf(w, "Categories:\t%s\n", joinOrDash(stats.Categories))
	if !stats.OldestVector.IsZero() {
		fmt.Fprintf(w, "Oldest:\t%s\n", formatTime(stats.OldestVector))
		fmt.Fprintf(w, "Newest:\t%s\n", formatTime(stats.NewestVector))
	}
	w.Flush()

	return nil
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
