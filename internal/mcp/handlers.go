// ABOUTME: MCP tool handler implementations for the knowledge server
// ABOUTME: Contains handler implementations with proper error handling for all 4 tools
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/knowledge-standalone/internal/core"
	"github.com/harper/knowledge-standalone/internal/llm"
	"github.com/harper/knowledge-standalone/internal/models"
	"github.com/harper/knowledge-standalone/internal/storage/sqlite"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	storage      *sqlite.Storage
	pipeline     *core.Pipeline
	openaiClient *llm.OpenAIClient
	chunking     models.ChunkingConfig // server-wide chunking defaults
}

// IngestKnowledge handles the ingest_knowledge tool
func (h *Handlers) IngestKnowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agentID, err := request.RequireString("agent_id")
	if err != nil {
		return mcp.NewToolResultError("agent_id argument is required and must be a string"), nil
	}
	companyID, err := request.RequireString("company_id")
	if err != nil {
		return mcp.NewToolResultError("company_id argument is required and must be a string"), nil
	}
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content argument is required and must be a string"), nil
	}

	if h.openaiClient == nil {
		return mcp.NewToolResultError("embeddings unavailable: OPENAI_API_KEY is not configured"), nil
	}

	sourceType := models.SourceType(request.GetString("source_type", string(models.SourceText)))
	if !sourceType.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown source_type %q: must be url, document, text, or file", sourceType)), nil
	}

	chunking := h.chunking
	if size := request.GetInt("chunk_size", 0); size > 0 {
		chunking.MaxChunkSize = size
	}
	if overlap := request.GetInt("chunk_overlap", -1); overlap >= 0 {
		chunking.Overlap = overlap
	}
	if splitOn := request.GetString("split_on", ""); splitOn != "" {
		chunking.SplitOn = models.SplitMode(splitOn)
	}

	// Metadata arrives as a nested object; pull it off the raw arguments
	var metadata map[string]any
	if args, ok := request.Params.Arguments.(map[string]any); ok {
		if raw, exists := args["metadata"]; exists {
			if m, ok := raw.(map[string]any); ok {
				metadata = m
			}
		}
	}

	results, err := h.pipeline.Ingest(ctx, core.IngestRequest{
		AgentID:   agentID,
		CompanyID: companyID,
		Content:   content,
		Source: models.Source{
			Type:     sourceType,
			URL:      request.GetString("url", ""),
			Title:    request.GetString("title", ""),
			Category: request.GetString("category", ""),
		},
		Metadata: metadata,
		Chunking: chunking,
		Provider: h.openaiClient,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
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

	response := map[string]interface{}{
		"chunks":  results,
		"created": created,
		"skipped": skipped,
		"failed":  failed,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SearchKnowledge handles the search_knowledge tool
func (h *Handlers) SearchKnowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agentID, err := request.RequireString("agent_id")
	if err != nil {
		return mcp.NewToolResultError("agent_id argument is required and must be a string"), nil
	}
	companyID, err := request.RequireString("company_id")
	if err != nil {
		return mcp.NewToolResultError("company_id argument is required and must be a string"), nil
	}
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	topK := request.GetInt("top_k", 5)

	if h.openaiClient == nil {
		return mcp.NewToolResultError("embeddings unavailable: OPENAI_API_KEY is not configured"), nil
	}

	queryEmbedding, err := h.openaiClient.Embed(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to embed query: %v", err)), nil
	}

	results, err := h.storage.Search(agentID, companyID, queryEmbedding, topK)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"results": results,
		"count":   len(results),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// CorpusStats handles the corpus_stats tool
func (h *Handlers) CorpusStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agentID, err := request.RequireString("agent_id")
	if err != nil {
		return mcp.NewToolResultError("agent_id argument is required and must be a string"), nil
	}
	companyID, err := request.RequireString("company_id")
	if err != nil {
		return mcp.NewToolResultError("company_id argument is required and must be a string"), nil
	}

	stats, err := h.storage.Stats(agentID, companyID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to aggregate stats: %v", err)), nil
	}

	response := map[string]interface{}{
		"total_vectors":        stats.TotalVectors,
		"total_content_length": stats.TotalContentLength,
		"avg_content_length":   stats.AvgContentLength,
		"source_types":         stats.SourceTypes,
		"categories":           stats.Categories,
		"embedding_dimension":  stats.EmbeddingDimension,
	}
	if !stats.OldestVector.IsZero() {
		response["oldest_vector"] = stats.OldestVector.Format(time.RFC3339)
		response["newest_vector"] = stats.NewestVector.Format(time.RFC3339)
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// DeleteKnowledge handles the delete_knowledge tool
func (h *Handlers) DeleteKnowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agentID, err := request.RequireString("agent_id")
	if err != nil {
		return mcp.NewToolResultError("agent_id argument is required and must be a string"), nil
	}
	companyID, err := request.RequireString("company_id")
	if err != nil {
		return mcp.NewToolResultError("company_id argument is required and must be a string"), nil
	}

	filter := &sqlite.DeleteFilter{}
	if sourceType := request.GetString("source_type", ""); sourceType != "" {
		st := models.SourceType(sourceType)
		if !st.Valid() {
			return mcp.NewToolResultError(fmt.Sprintf("unknown source_type %q: must be url, document, text, or file", sourceType)), nil
		}
		filter.SourceType = st
	}

	// Type assert Arguments to map for array access
	if args, ok := request.Params.Arguments.(map[string]any); ok {
		if idsRaw, exists := args["ids"]; exists {
			if idsArray, ok := idsRaw.([]interface{}); ok {
				for _, item := range idsArray {
					if id, ok := item.(string); ok {
						filter.IDs = append(filter.IDs, id)
					}
				}
			}
		}
	}

	deleted, err := h.storage.DeleteTenantVectors(agentID, companyID, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("delete failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"deleted": deleted,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
