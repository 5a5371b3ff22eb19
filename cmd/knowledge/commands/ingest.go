// ABOUTME: CLI command to ingest content into the knowledge base
// ABOUTME: Handles text, file, and stdin input with per-chunk outcome reporting
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/knowledge-standalone/internal/core"
	"github.com/harper/knowledge-standalone/internal/llm"
	"github.com/harper/knowledge-standalone/internal/models"
	"github.com/joho/godotenv"
)

var (
	ingestAgent      string
	ingestCompany    string
	ingestFile       string
	ingestSourceType string
	ingestURL        string
	ingestTitle      string
	ingestCategory   string
	ingestChunkSize  int
	ingestOverlap    int
	ingestSplitOn    string
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [text]",
		Short: "Ingest content into the knowledge base",
		Long: `Ingest content into the knowledge base.

Content is split into chunks, each chunk is embedded and stored with
a content hash so re-ingesting the same text is a no-op.

Examples:
  knowledge ingest "Widget setup requires an API token"
  knowledge ingest --file handbook.txt --source-type document --title "Handbook"
  knowledge ingest --split-on sentence --chunk-size 300 "Long article text..."
  cat notes.md | knowledge ingest --agent support --company acme`,
		Args: cobra.MaximumNArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().StringVar(&ingestAgent, "agent", "default", "Agent ID owning the content")
	cmd.Flags().StringVar(&ingestCompany, "company", "default", "Company ID owning the content")
	cmd.Flags().StringVar(&ingestFile, "file", "", "Read content from file")
	cmd.Flags().StringVar(&ingestSourceType, "source-type", "text", "Source type (url, document, text, file)")
	cmd.Flags().StringVar(&ingestURL, "url", "", "Source URL")
	cmd.Flags().StringVar(&ingestTitle, "title", "", "Source title")
	cmd.Flags().StringVar(&ingestCategory, "category", "", "Source category")
	cmd.Flags().IntVar(&ingestChunkSize, "chunk-size", 0, "Maximum chunk size in characters (0 = configured default)")
	cmd.Flags().IntVar(&ingestOverlap, "overlap", -1, "Overlap between chunks in characters (-1 = configured default)")
	cmd.Flags().StringVar(&ingestSplitOn, "split-on", "", "Chunking strategy (fixed, paragraph, sentence)")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Get content
	var text string
	if ingestFile != "" {
		data, err := os.ReadFile(ingestFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		text = string(data)
		if ingestSourceType == "text" {
			ingestSourceType = "file"
		}
	} else if len(args) > 0 {
		text = args[0]
	} else {
		// Read from stdin
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no content provided")
	}

	sourceType := models.SourceType(ingestSourceType)
	if !sourceType.Valid() {
		return fmt.Errorf("unknown source type %q: must be url, document, text, or file", ingestSourceType)
	}

	apiKey, err := requireAPIKey()
	if err != nil {
		return err
	}
	openaiClient, err := llm.NewOpenAIClient(apiKey)
	if err != nil {
		return fmt.Errorf("initializing OpenAI client: %w", err)
	}

	store, err := openStorage(cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	chunking := chunkingFromConfig(cfg)
	if ingestChunkSize > 0 {
		chunking.MaxChunkSize = ingestChunkSize
	}
	if ingestOverlap >= 0 {
		chunking.Overlap = ingestOverlap
	}
	if ingestSplitOn != "" {
		chunking.SplitOn = models.SplitMode(ingestSplitOn)
	}

	pipeline := buildPipeline(store, cfg)
	results, err := pipeline.Ingest(cmd.Context(), core.IngestRequest{
		AgentID:   ingestAgent,
		CompanyID: ingestCompany,
		Content:   text,
		Source: models.Source{
			Type:     sourceType,
			URL:      ingestURL,
			Title:    ingestTitle,
			Category: ingestCategory,
		},
		Chunking: chunking,
		Provider: openaiClient,
	})
	if err != nil {
		return fmt.Errorf("ingesting content: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	created, skipped, failed := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case models.ChunkCreated:
			created++
		case models.ChunkSkippedDuplicate:
			skipped++
		default:
			failed++
		}
	}

	if verbose {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "CHUNK\tSTATUS\tID\tERROR\n")
		for _, r := range results {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ChunkIndex, r.Status, r.ID, truncate(r.Error, 50))
		}
		w.Flush()
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Ingested %d chunk(s): %d created, %d skipped, %d failed\n",
			len(results), created, skipped, failed)
	}
	return nil
}
