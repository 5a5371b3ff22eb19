// ABOUTME: MCP tool definitions and registration for the knowledge server
// ABOUTME: Defines JSON schemas for the 4 knowledge tools
package mcp

import (
	"github.com/harper/knowledge-standalone/internal/core"
	"github.com/harper/knowledge-standalone/internal/llm"
	"github.com/harper/knowledge-standalone/internal/models"
	"github.com/harper/knowledge-standalone/internal/storage/sqlite"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *sqlite.Storage, pipeline *core.Pipeline, openaiClient *llm.OpenAIClient, chunking models.ChunkingConfig) *Handlers {
	// Initialize handlers
	handlers := &Handlers{
		storage:      store,
		pipeline:     pipeline,
		openaiClient: openaiClient,
		chunking:     chunking,
	}

	// 1. ingest_knowledge - Chunk, embed, and store content for a tenant
	server.AddTool(mcp.Tool{
		Name:        "ingest_knowledge",
		Description: "Ingest content into the knowledge base. Content is chunked, embedded, deduplicated, and stored for the given tenant. Returns a per-chunk outcome report.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"agent_id": map[string]interface{}{
					"type":        "string",
					"description": "Agent identifier owning the content",
				},
				"company_id": map[string]interface{}{
					"type":        "string",
					"description": "Company identifier owning the content",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Text content to ingest",
				},
				"source_type": map[string]interface{}{
					"type":        "string",
					"description": "Origin of the content: url, document, text, or file (default: text)",
				},
				"url": map[string]interface{}{
					"type":        "string",
					"description": "Source URL, if the content came from the web",
				},
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Human-readable source title",
				},
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Category label for the source",
				},
				"metadata": map[string]interface{}{
					"type":        "object",
					"description": "Opaque metadata stored alongside each chunk",
				},
				"chunk_size": map[string]interface{}{
					"type":        "number",
					"description": "Maximum chunk size in characters (default: 500)",
				},
				"chunk_overlap": map[string]interface{}{
					"type":        "number",
					"description": "Characters of overlap between consecutive chunks (default: 0)",
				},
				"split_on": map[string]interface{}{
					"type":        "string",
					"description": "Chunking strategy: fixed, paragraph, or sentence",
				},
			},
			Required: []string{"agent_id", "company_id", "content"},
		},
	}, handlers.IngestKnowledge)

	// 2. search_knowledge - Semantic search over a tenant's corpus
	server.AddTool(mcp.Tool{
		Name:        "search_knowledge",
		Description: "Search the knowledge base by semantic similarity. The query is embedded and ranked against the tenant's stored vectors.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"agent_id": map[string]interface{}{
					"type":        "string",
					"description": "Agent identifier to search within",
				},
				"company_id": map[string]interface{}{
					"type":        "string",
					"description": "Company identifier to search within",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Natural language search query",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"agent_id", "company_id", "query"},
		},
	}, handlers.SearchKnowledge)

	// 3. corpus_stats - Aggregate statistics for a tenant's corpus
	server.AddTool(mcp.Tool{
		Name:        "corpus_stats",
		Description: "Get aggregate statistics for a tenant's knowledge corpus: vector counts, content lengths, source types, categories, and time range.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"agent_id": map[string]interface{}{
					"type":        "string",
					"description": "Agent identifier",
				},
				"company_id": map[string]interface{}{
					"type":        "string",
					"description": "Company identifier",
				},
			},
			Required: []string{"agent_id", "company_id"},
		},
	}, handlers.CorpusStats)

	// 4. delete_knowledge - Bulk delete a tenant's records
	server.AddTool(mcp.Tool{
		Name:        "delete_knowledge",
		Description: "Delete records from a tenant's knowledge corpus. Optionally narrow by source type or specific record IDs; with no filter the whole corpus is removed.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"agent_id": map[string]interface{}{
					"type":        "string",
					"description": "Agent identifier",
				},
				"company_id": map[string]interface{}{
					"type":        "string",
					"description": "Company identifier",
				},
				"source_type": map[string]interface{}{
					"type":        "string",
					"description": "Only delete records with this source type",
				},
				"ids": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Only delete these record IDs",
				},
			},
			Required: []string{"agent_id", "company_id"},
		},
	}, handlers.DeleteKnowledge)

	return handlers
}
