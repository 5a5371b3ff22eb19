// ABOUTME: Export functionality for a tenant's knowledge corpus
// ABOUTME: Supports YAML, JSON, and Markdown export formats
package sqlite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harper/knowledge-standalone/internal/models"
)

// ExportData represents the complete exportable corpus structure
type ExportData struct {
	Version    string         `yaml:"version" json:"version"`
	ExportedAt string         `yaml:"exported_at" json:"exported_at"`
	Tool       string         `yaml:"tool" json:"tool"`
	AgentID    string         `yaml:"agent_id" json:"agent_id"`
	CompanyID  string         `yaml:"company_id" json:"company_id"`
	Stats      ExportStats    `yaml:"stats" json:"stats"`
	Records    []ExportRecord `yaml:"records,omitempty" json:"records,omitempty"`
	Embeddings string         `yaml:"embeddings_file,omitempty" json:"embeddings_file,omitempty"`
}

// ExportStats summarizes the exported corpus
type ExportStats struct {
	TotalVectors       int      `yaml:"total_vectors" json:"total_vectors"`
	EmbeddingDimension int      `yaml:"embedding_dimension" json:"embedding_dimension"`
	SourceTypes        []string `yaml:"source_types" json:"source_types"`
	Categories         []string `yaml:"categories,omitempty" json:"categories,omitempty"`
}

// ExportRecord represents a vector record for export, without the raw
// embedding. Embeddings go to a separate JSON file on request.
type ExportRecord struct {
	ID          string         `yaml:"id" json:"id"`
	Content     string         `yaml:"content" json:"content"`
	SourceType  string         `yaml:"source_type" json:"source_type"`
	URL         string         `yaml:"url,omitempty" json:"url,omitempty"`
	Title       string         `yaml:"title,omitempty" json:"title,omitempty"`
	Category    string         `yaml:"category,omitempty" json:"category,omitempty"`
	ChunkIndex  int            `yaml:"chunk_index" json:"chunk_index"`
	TotalChunks int            `yaml:"total_chunks" json:"total_chunks"`
	ContentHash string         `yaml:"content_hash,omitempty" json:"content_hash,omitempty"`
	Metadata    map[string]any `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt   string         `yaml:"created_at" json:"created_at"`
}

// Export gathers a tenant's corpus into an exportable structure
func (s *Storage) Export(agentID, companyID string) (*ExportData, error) {
	records, err := s.List(agentID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	stats := models.CorpusStats{}
	if len(records) > 0 {
		stats, err = s.Stats(agentID, companyID)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate stats: %w", err)
		}
	}

	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().Format(time.RFC3339),
		Tool:       "knowledge",
		AgentID:    agentID,
		CompanyID:  companyID,
		Stats: ExportStats{
			TotalVectors:       stats.TotalVectors,
			EmbeddingDimension: stats.EmbeddingDimension,
			SourceTypes:        stats.SourceTypes,
			Categories:         stats.Categories,
		},
	}

	for _, rec := range records {
		data.Records = append(data.Records, ExportRecord{
			ID:          rec.ID,
			Content:     rec.Content,
			SourceType:  string(rec.Source.Type),
			URL:         rec.Source.URL,
			Title:       rec.Source.Title,
			Category:    rec.Source.Category,
			ChunkIndex:  rec.Source.ChunkIndex,
			TotalChunks: rec.Source.TotalChunks,
			ContentHash: rec.ContentHash,
			Metadata:    rec.Metadata,
			CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
		})
	}

	return data, nil
}

// ExportToYAML exports a tenant's corpus to a YAML file
func (s *Storage) ExportToYAML(agentID, companyID, outputPath string) error {
	data, err := s.Export(agentID, companyID)
	if err != nil {
		return err
	}

	file, err := createOutputFile(outputPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// ExportToJSON exports a tenant's corpus to a JSON file
func (s *Storage) ExportToJSON(agentID, companyID, outputPath string) error {
	data, err := s.Export(agentID, companyID)
	if err != nil {
		return err
	}

	file, err := createOutputFile(outputPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// ExportToMarkdown exports a tenant's corpus to a Markdown file
func (s *Storage) ExportToMarkdown(agentID, companyID, outputPath string) error {
	data, err := s.Export(agentID, companyID)
	if err != nil {
		return err
	}

	file, err := createOutputFile(outputPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	_, _ = fmt.Fprintf(file, "# Knowledge Export - %s\n\n", time.Now().Format("2006-01-02"))
	_, _ = fmt.Fprintf(file, "Generated: %s\n\n", data.ExportedAt)
	_, _ = fmt.Fprintf(file, "Tenant: %s / %s\n\n", data.AgentID, data.CompanyID)

	_, _ = fmt.Fprintln(file, "## Corpus")
	_, _ = fmt.Fprintln(file)
	_, _ = fmt.Fprintf(file, "- **Vectors:** %d\n", data.Stats.TotalVectors)
	_, _ = fmt.Fprintf(file, "- **Embedding dimension:** %d\n", data.Stats.EmbeddingDimension)
	if len(data.Stats.SourceTypes) > 0 {
		_, _ = fmt.Fprintln(file, "- **Source types:**")
		for _, st := range data.Stats.SourceTypes {
			_, _ = fmt.Fprintf(file, "  - %s\n", st)
		}
	}
	_, _ = fmt.Fprintln(file)

	if len(data.Records) > 0 {
		_, _ = fmt.Fprintln(file, "## Records")
		_, _ = fmt.Fprintln(file)
		for _, rec := range data.Records {
			title := rec.Title
			if title == "" {
				title = rec.ID
			}
			_, _ = fmt.Fprintf(file, "### %s (%s)\n\n", title, rec.SourceType)
			if rec.URL != "" {
				_, _ = fmt.Fprintf(file, "*Source: %s*\n\n", rec.URL)
			}
			if rec.TotalChunks > 1 {
				_, _ = fmt.Fprintf(file, "*Chunk %d of %d*\n\n", rec.ChunkIndex+1, rec.TotalChunks)
			}
			_, _ = fmt.Fprintf(file, "%s\n\n", rec.Content)
			_, _ = fmt.Fprintln(file, "---")
			_, _ = fmt.Fprintln(file)
		}
	}

	return nil
}

// ExportEmbeddingsToJSON exports a tenant's embeddings to a separate JSON file
func (s *Storage) ExportEmbeddingsToJSON(agentID, companyID, outputPath string) error {
	records, err := s.List(agentID, companyID)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	type EmbeddingExport struct {
		ID        string    `json:"id"`
		Vector    []float64 `json:"vector"`
		CreatedAt string    `json:"created_at"`
	}

	var embeddings []EmbeddingExport
	for _, rec := range records {
		embeddings = append(embeddings, EmbeddingExport{
			ID:        rec.ID,
			Vector:    rec.Embedding,
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		})
	}

	file, err := createOutputFile(outputPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(embeddings); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

func createOutputFile(outputPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, nil
}
