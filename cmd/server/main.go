// ABOUTME: Main entry point for the knowledge MCP server with stdio transport
// ABOUTME: Initializes storage, pipeline, and MCP server with all tools
package main

import (
	"log"
	"os"

	"github.com/harper/knowledge-standalone/internal/config"
	"github.com/harper/knowledge-standalone/internal/core"
	"github.com/harper/knowledge-standalone/internal/llm"
	"github.com/harper/knowledge-standalone/internal/mcp"
	"github.com/harper/knowledge-standalone/internal/models"
	"github.com/harper/knowledge-standalone/internal/storage/sqlite"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Verify we have required API keys
	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - embedding and search tools will not work")
	}

	// Initialize storage with XDG-compliant paths
	var store *sqlite.Storage
	if cfg.DBPath != "" {
		store, err = sqlite.NewStorageWithPath(cfg.DBPath)
	} else {
		store, err = sqlite.NewStorage()
	}
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer func() { _ = store.Close() }()

	// Initialize OpenAI client if configured
	var openaiClient *llm.OpenAIClient
	if cfg.OpenAIKey != "" {
		openaiClient, err = llm.NewOpenAIClient(cfg.OpenAIKey)
		if err != nil {
			log.Printf("Warning: Failed to initialize OpenAI client: %v", err)
		}
	}

	// Assemble the ingestion pipeline
	pipeline := core.NewPipeline(store, core.NewDeduplicator(core.DedupScope(cfg.DedupScope)))

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Knowledge Base",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, store, pipeline, openaiClient, models.ChunkingConfig{
		MaxChunkSize: cfg.ChunkSize,
		Overlap:      cfg.ChunkOverlap,
		SplitOn:      models.SplitMode(cfg.SplitOn),
	})

	// Start server with stdio transport
	log.Println("Knowledge MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
