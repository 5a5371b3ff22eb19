// ABOUTME: Tests for corpus export functionality
// ABOUTME: Verifies YAML, JSON, and Markdown output round-trips
package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harper/knowledge-standalone/internal/models"
)

func exportFixture(t *testing.T) *Storage {
	t.Helper()

	storage, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = storage.Close() })

	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	records := []*models.VectorRecord{
		{
			AgentID:   "agent_1",
			CompanyID: "company_1",
			Content:   "How to configure the widget",
			Embedding: []float64{1, 0},
			CreatedAt: base,
			Source: models.Source{
				Type:        models.SourceURL,
				URL:         "https://example.com/widgets",
				Title:       "Widget Guide",
				Category:    "docs",
				ChunkIndex:  0,
				TotalChunks: 2,
			},
			Metadata: map[string]any{"lang": "en"},
		},
		{
			AgentID:   "agent_1",
			CompanyID: "company_1",
			Content:   "Widget troubleshooting steps",
			Embedding: []float64{0, 1},
			CreatedAt: base.Add(time.Minute),
			Source: models.Source{
				Type:        models.SourceURL,
				URL:         "https://example.com/widgets",
				Title:       "Widget Guide",
				Category:    "docs",
				ChunkIndex:  1,
				TotalChunks: 2,
			},
		},
	}
	for _, rec := range records {
		if _, _, err := storage.Put(rec); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}

	return storage
}

func TestExport(t *testing.T) {
	storage := exportFixture(t)

	data, err := storage.Export("agent_1", "company_1")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if data.Tool != "knowledge" || data.Version == "" {
		t.Errorf("export header = %s/%s, want tool and version set", data.Tool, data.Version)
	}
	if data.AgentID != "agent_1" || data.CompanyID != "company_1" {
		t.Errorf("tenant = %s/%s, want agent_1/company_1", data.AgentID, data.CompanyID)
	}
	if len(data.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(data.Records))
	}
	if data.Stats.TotalVectors != 2 || data.Stats.EmbeddingDimension != 2 {
		t.Errorf("stats = %+v, want 2 vectors of dimension 2", data.Stats)
	}
	if data.Records[0].ChunkIndex != 0 || data.Records[1].ChunkIndex != 1 {
		t.Error("records should export oldest first with chunk positions intact")
	}
	if _, err := time.Parse(time.RFC3339, data.ExportedAt); err != nil {
		t.Errorf("ExportedAt = %q, want RFC3339", data.ExportedAt)
	}
}

func TestExportEmptyTenant(t *testing.T) {
	storage := exportFixture(t)

	data, err := storage.Export("agent_other", "company_other")
	if err != nil {
		t.Fatalf("Export() for empty tenant error = %v", err)
	}
	if len(data.Records) != 0 || data.Stats.TotalVectors != 0 {
		t.Errorf("export = %+v, want empty corpus", data)
	}
}

func TestExportToYAML(t *testing.T) {
	storage := exportFixture(t)
	outputPath := filepath.Join(t.TempDir(), "corpus.yaml")

	if err := storage.ExportToYAML("agent_1", "company_1", outputPath); err != nil {
		t.Fatalf("ExportToYAML() error = %v", err)
	}

	raw, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var decoded ExportData
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if len(decoded.Records) != 2 {
		t.Errorf("decoded %d records, want 2", len(decoded.Records))
	}
	if decoded.Records[0].Content != "How to configure the widget" {
		t.Errorf("Content = %q, want original content", decoded.Records[0].Content)
	}
}

func TestExportToJSON(t *testing.T) {
	storage := exportFixture(t)
	outputPath := filepath.Join(t.TempDir(), "corpus.json")

	if err := storage.ExportToJSON("agent_1", "company_1", outputPath); err != nil {
		t.Fatalf("ExportToJSON() error = %v", err)
	}

	raw, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var decoded ExportData
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if decoded.Stats.TotalVectors != 2 {
		t.Errorf("TotalVectors = %d, want 2", decoded.Stats.TotalVectors)
	}
}

func TestExportToMarkdown(t *testing.T) {
	storage := exportFixture(t)
	outputPath := filepath.Join(t.TempDir(), "corpus.md")

	if err := storage.ExportToMarkdown("agent_1", "company_1", outputPath); err != nil {
		t.Fatalf("ExportToMarkdown() error = %v", err)
	}

	raw, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	content := string(raw)

	if !strings.Contains(content, "# Knowledge Export") {
		t.Error("markdown should contain the export header")
	}
	if !strings.Contains(content, "Widget Guide") {
		t.Error("markdown should contain record titles")
	}
	if !strings.Contains(content, "Chunk 2 of 2") {
		t.Error("markdown should render chunk positions")
	}
}

func TestExportEmbeddingsToJSON(t *testing.T) {
	storage := exportFixture(t)
	outputPath := filepath.Join(t.TempDir(), "embeddings.json")

	if err := storage.ExportEmbeddingsToJSON("agent_1", "company_1", outputPath); err != nil {
		t.Fatalf("ExportEmbeddingsToJSON() error = %v", err)
	}

	raw, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var embeddings []struct {
		ID     string    `json:"id"`
		Vector []float64 `json:"vector"`
	}
	if err := json.Unmarshal(raw, &embeddings); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if len(embeddings) != 2 {
		t.Fatalf("got %d embeddings, want 2", len(embeddings))
	}
	for _, emb := range embeddings {
		if emb.ID == "" || len(emb.Vector) != 2 {
			t.Errorf("embedding = %+v, want ID and 2-dimensional vector", emb)
		}
	}
}
