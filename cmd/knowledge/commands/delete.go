// ABOUTME: CLI command to delete knowledge records
// ABOUTME: Tenant-scoped bulk delete with source type and ID filters
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/knowledge-standalone/internal/models"
	"github.com/harper/knowledge-standalone/internal/storage/sqlite"
)

var (
	deleteAgent      string
	deleteCompany    string
	deleteSourceType string
	deleteIDs        []string
	deleteAll        bool
)

// NewDeleteCmd creates the delete command
func NewDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete knowledge records",
		Long: `Delete records from a tenant's knowledge corpus.

Filters narrow the delete; --all confirms removing the tenant's
entire corpus when no filter is given.

Examples:
  knowledge delete --ids vec_abc123,vec_def456
  knowledge delete --source-type url
  knowledge delete --agent support --company acme --all`,
		Args: cobra.NoArgs,
		RunE: runDelete,
	}

	cmd.Flags().StringVar(&deleteAgent, "agent", "default", "Agent ID")
	cmd.Flags().StringVar(&deleteCompany, "company", "default", "Company ID")
	cmd.Flags().StringVar(&deleteSourceType, "source-type", "", "Only delete records with this source type")
	cmd.Flags().StringSliceVar(&deleteIDs, "ids", []string{}, "Only delete these record IDs (comma-separated)")
	cmd.Flags().BoolVar(&deleteAll, "all", false, "Delete the tenant's entire corpus")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	filter := &sqlite.DeleteFilter{IDs: deleteIDs}
	if deleteSourceType != "" {
		st := models.SourceType(deleteSourceType)
		if !st.Valid() {
			return fmt.Errorf("unknown source type %q: must be url, document, text, or file", deleteSourceType)
		}
		filter.SourceType = st
	}

	// Refuse a bare tenant-wide delete unless explicitly confirmed
	if filter.SourceType == "" && len(filter.IDs) == 0 && !deleteAll {
		return fmt.Errorf("no filter given; pass --all to delete the tenant's entire corpus")
	}

	store, err := openStorage(cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	deleted, err := store.DeleteTenantVectors(deleteAgent, deleteCompany, filter)
	if err != nil {
		return fmt.Errorf("deleting records: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %d record(s)\n", deleted)
	}
	return nil
}
