// ABOUTME: CLI command to export a tenant's corpus
// ABOUTME: Writes YAML, JSON, or Markdown plus optional embeddings file
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	exportAgent      string
	exportCompany    string
	exportOutput     string
	exportFormat     string
	exportEmbeddings string
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a tenant's corpus",
		Long: `Export a tenant's knowledge corpus to a file.

Formats: yaml (default), json, markdown. Embeddings are omitted from
the main export; pass --embeddings to write them to a separate JSON
file.

Examples:
  knowledge export --output corpus.yaml
  knowledge export --export-format markdown --output corpus.md
  knowledge export --output corpus.json --export-format json --embeddings embeddings.json`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringVar(&exportAgent, "agent", "default", "Agent ID")
	cmd.Flags().StringVar(&exportCompany, "company", "default", "Company ID")
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (required)")
	cmd.Flags().StringVar(&exportFormat, "export-format", "yaml", "Export format (yaml, json, markdown)")
	cmd.Flags().StringVar(&exportEmbeddings, "embeddings", "", "Also write embeddings to this JSON file")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStorage(cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	switch exportFormat {
	case "yaml":
		err = store.ExportToYAML(exportAgent, exportCompany, exportOutput)
	case "json":
		err = store.ExportToJSON(exportAgent, exportCompany, exportOutput)
	case "markdown":
		err = store.ExportToMarkdown(exportAgent, exportCompany, exportOutput)
	default:
		return fmt.Errorf("unknown export format %q: must be yaml, json, or markdown", exportFormat)
	}
	if err != nil {
		return fmt.Errorf("exporting corpus: %w", err)
	}

	if exportEmbeddings != "" {
		if err := store.ExportEmbeddingsToJSON(exportAgent, exportCompany, exportEmbeddings); err != nil {
			return fmt.Errorf("exporting embeddings: %w", err)
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported corpus to %s\n", exportOutput)
	}
	return nil
}
