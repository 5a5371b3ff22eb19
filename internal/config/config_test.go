// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing and validation
package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify defaults
	if cfg.DBPath != "" {
		t.Errorf("DBPath = %s, want empty (XDG default decided downstream)", cfg.DBPath)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %s, want text-embedding-3-small", cfg.EmbeddingModel)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
	if cfg.DedupScope != "global" {
		t.Errorf("DedupScope = %s, want global", cfg.DedupScope)
	}
	if cfg.ChunkSize != 500 {
		t.Errorf("ChunkSize = %d, want 500", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap != 0 {
		t.Errorf("ChunkOverlap = %d, want 0", cfg.ChunkOverlap)
	}
	if cfg.SplitOn != "paragraph" {
		t.Errorf("SplitOn = %s, want paragraph", cfg.SplitOn)
	}
	if cfg.VectorDimension != 1536 {
		t.Errorf("VectorDimension = %d, want 1536", cfg.VectorDimension)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	// Set custom environment variables
	os.Clearenv()
	os.Setenv("KNOWLEDGE_DB_PATH", "/tmp/knowledge-test.db")
	os.Setenv("OPENAI_API_KEY", "test-key")
	os.Setenv("KNOWLEDGE_EMBEDDING_MODEL", "text-embedding-3-large")
	os.Setenv("OPENAI_TIMEOUT", "60s")
	os.Setenv("OPENAI_MAX_RETRIES", "5")
	os.Setenv("OPENAI_RETRY_DELAY", "3s")
	os.Setenv("KNOWLEDGE_DEDUP_SCOPE", "per_tenant")
	os.Setenv("KNOWLEDGE_CHUNK_SIZE", "1000")
	os.Setenv("KNOWLEDGE_CHUNK_OVERLAP", "50")
	os.Setenv("KNOWLEDGE_SPLIT_ON", "sentence")
	os.Setenv("VECTOR_DIMENSION", "3072")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify custom values
	if cfg.DBPath != "/tmp/knowledge-test.db" {
		t.Errorf("DBPath = %s, want /tmp/knowledge-test.db", cfg.DBPath)
	}
	if cfg.OpenAIKey != "test-key" {
		t.Errorf("OpenAIKey = %s, want test-key", cfg.OpenAIKey)
	}
	if cfg.EmbeddingModel != "text-embedding-3-large" {
		t.Errorf("EmbeddingModel = %s, want text-embedding-3-large", cfg.EmbeddingModel)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 3*time.Second {
		t.Errorf("RetryDelay = %v, want 3s", cfg.RetryDelay)
	}
	if cfg.DedupScope != "per_tenant" {
		t.Errorf("DedupScope = %s, want per_tenant", cfg.DedupScope)
	}
	if cfg.ChunkSize != 1000 {
		t.Errorf("ChunkSize = %d, want 1000", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap != 50 {
		t.Errorf("ChunkOverlap = %d, want 50", cfg.ChunkOverlap)
	}
	if cfg.SplitOn != "sentence" {
		t.Errorf("SplitOn = %s, want sentence", cfg.SplitOn)
	}
	if cfg.VectorDimension != 3072 {
		t.Errorf("VectorDimension = %d, want 3072", cfg.VectorDimension)
	}
}

func TestValidate_InvalidMaxRetries(t *testing.T) {
	cfg := &Config{
		MaxRetries: 15,
		DedupScope: "global",
		ChunkSize:  500,
		SplitOn:    "paragraph",
	}

	err := cfg.Validate()
	if err == nil {
		t.Error("Validate() should fail for MaxRetries > 10")
	}

	cfg.MaxRetries = -1
	err = cfg.Validate()
	if err == nil {
		t.Error("Validate() should fail for MaxRetries < 0")
	}
}

func TestValidate_InvalidDedupScope(t *testing.T) {
	cfg := &Config{
		MaxRetries: 3,
		DedupScope: "per_galaxy",
		ChunkSize:  500,
		SplitOn:    "paragraph",
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for unknown dedup scope")
	}
}

func TestValidate_InvalidChunking(t *testing.T) {
	cfg := &Config{
		MaxRetries: 3,
		DedupScope: "global",
		ChunkSize:  0,
		SplitOn:    "paragraph",
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for zero chunk size")
	}

	cfg.ChunkSize = 500
	cfg.ChunkOverlap = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for negative overlap")
	}

	cfg.ChunkOverlap = 0
	cfg.SplitOn = "words"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for unknown split mode")
	}
}
