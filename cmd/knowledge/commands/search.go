// ABOUTME: CLI command to search the knowledge base
// ABOUTME: Embeds the query and ranks the tenant's corpus by cosine similarity
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/knowledge-standalone/internal/llm"
	"github.com/joho/godotenv"
)

var (
	searchAgent   string
	searchCompany string
	searchLimit   int
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the knowledge base",
		Long: `Search the knowledge base by semantic similarity.

The query is embedded with OpenAI and ranked against the tenant's
stored vectors using cosine similarity.

Examples:
  knowledge search "how to rotate API keys"
  knowledge search --limit 10 "deployment checklist"
  knowledge search --format json "rate limits"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().StringVar(&searchAgent, "agent", "default", "Agent ID to search within")
	cmd.Flags().StringVar(&searchCompany, "company", "default", "Company ID to search within")
	cmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum results to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	query := args[0]

	apiKey, err := requireAPIKey()
	if err != nil {
		return err
	}
	openaiClient, err := llm.NewOpenAIClient(apiKey)
	if err != nil {
		return fmt.Errorf("initializing OpenAI client: %w", err)
	}

	queryEmbedding, err := openaiClient.Embed(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("embedding query: %w", err)
	}

	store, err := openStorage(cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	results, err := store.Search(searchAgent, searchCompany, queryEmbedding, searchLimit)
	if err != nil {
		return fmt.Errorf("searching knowledge: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No knowledge found for query: %s\n", query)
		}
		return nil
	}

	// Format output
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	} else {
		// Table format
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "SCORE\tSOURCE\tAGE\tPREVIEW\n")
		fmt.Fprintf(w, "-----\t------\t---\t-------\n")

		for _, result := range results {
			label := result.Source.Title
			if label == "" {
				label = string(result.Source.Type)
			}

			fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\n",
				result.Score,
				truncate(label, 20),
				formatTime(result.CreatedAt),
				truncate(result.Content, 60))
		}
		w.Flush()

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
		}
	}

	return nil
}
