// ABOUTME: Centralized configuration for the knowledge MCP server
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the knowledge system
type Config struct {
	// Storage settings
	DBPath string

	// OpenAI settings
	OpenAIKey      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Ingestion settings
	DedupScope   string
	ChunkSize    int
	ChunkOverlap int
	SplitOn      string

	// Retrieval settings
	VectorDimension int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		DBPath:          os.Getenv("KNOWLEDGE_DB_PATH"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel:  getEnv("KNOWLEDGE_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:         getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:      getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		DedupScope:      getEnv("KNOWLEDGE_DEDUP_SCOPE", "global"),
		ChunkSize:       getEnvInt("KNOWLEDGE_CHUNK_SIZE", 500),
		ChunkOverlap:    getEnvInt("KNOWLEDGE_CHUNK_OVERLAP", 0),
		SplitOn:         getEnv("KNOWLEDGE_SPLIT_ON", "paragraph"),
		VectorDimension: getEnvInt("VECTOR_DIMENSION", 1536),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.DedupScope != "global" && c.DedupScope != "per_tenant" {
		return fmt.Errorf("KNOWLEDGE_DEDUP_SCOPE must be global or per_tenant, got %q", c.DedupScope)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("KNOWLEDGE_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("KNOWLEDGE_CHUNK_OVERLAP must not be negative, got %d", c.ChunkOverlap)
	}
	switch c.SplitOn {
	case "fixed", "paragraph", "sentence":
	default:
		return fmt.Errorf("KNOWLEDGE_SPLIT_ON must be fixed, paragraph, or sentence, got %q", c.SplitOn)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
