// ABOUTME: Ingestion pipeline orchestrating chunk -> embed -> dedup -> persist
// ABOUTME: Reports a per-chunk outcome; storage writes retry with backoff
package core

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/harper/knowledge-standalone/internal/models"
	"github.com/harper/knowledge-standalone/internal/util"
)

// EmbeddingProvider supplies embedding vectors for chunk text. It is an
// injected capability; the pipeline never computes embeddings itself.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// VectorStore is the persistence capability the pipeline needs: an
// atomic test-and-insert that reports the existing record's ID when the
// content hash already exists.
type VectorStore interface {
	Put(record *models.VectorRecord) (id string, existed bool, err error)
}

// Default retry policy for transient storage failures
const (
	DefaultPutAttempts   = 3
	DefaultPutRetryDelay = 250 * time.Millisecond
)

// Pipeline ingests raw content for one tenant: chunk, embed, fingerprint,
// persist. Safe for concurrent use across tenants and submissions.
type Pipeline struct {
	store   VectorStore
	chunker *ChunkEngine
	dedup   *Deduplicator // nil disables fingerprinting entirely

	// PutAttempts and PutRetryDelay bound retries of transient storage
	// failures for a single chunk write.
	PutAttempts   int
	PutRetryDelay time.Duration
}

// NewPipeline creates a Pipeline. Pass a nil dedup to skip content
// hashing; records then carry no fingerprint and are never deduplicated.
func NewPipeline(store VectorStore, dedup *Deduplicator) *Pipeline {
	return &Pipeline{
		store:         store,
		chunker:       NewChunkEngine(),
		dedup:         dedup,
		PutAttempts:   DefaultPutAttempts,
		PutRetryDelay: DefaultPutRetryDelay,
	}
}

// IngestRequest is one content submission for one tenant
type IngestRequest struct {
	AgentID   string
	CompanyID string
	Content   string
	Source    models.Source // Type/URL/Title/Category; chunk fields are overwritten
	Metadata  map[string]any
	Chunking  models.ChunkingConfig
	Provider  EmbeddingProvider
}

// Ingest splits the submission into chunks and persists one record per
// chunk, returning a per-chunk outcome in chunk-index order. Chunk
// indexes and the total are fixed before any write. A failed embedding
// or validation skips that chunk only; a storage failure that survives
// retries aborts the call, leaving already-committed chunks committed.
func (p *Pipeline) Ingest(ctx context.Context, req IngestRequest) ([]models.ChunkResult, error) {
	if req.AgentID == "" {
		return nil, &models.ValidationError{Field: "agent_id", Reason: "must not be empty"}
	}
	if req.CompanyID == "" {
		return nil, &models.ValidationError{Field: "company_id", Reason: "must not be empty"}
	}
	if !req.Source.Type.Valid() {
		return nil, &models.ValidationError{Field: "source.type", Reason: fmt.Sprintf("unknown source type %q", req.Source.Type)}
	}
	if req.Provider == nil {
		return nil, errors.New("embedding provider is required")
	}

	chunks := p.chunker.Chunk(req.Content, req.Chunking)
	if len(chunks) == 0 {
		return []models.ChunkResult{}, nil
	}

	total := len(chunks)
	originalLength := utf8.RuneCountInString(req.Content)
	results := make([]models.ChunkResult, 0, total)

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		vector, err := req.Provider.Embed(ctx, chunk)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			results = append(results, models.ChunkResult{
				ChunkIndex: i,
				Status:     models.ChunkFailedEmbedding,
				Error:      err.Error(),
			})
			continue
		}

		record := &models.VectorRecord{
			AgentID:   req.AgentID,
			CompanyID: req.CompanyID,
			Content:   chunk,
			Embedding: vector,
			Metadata:  req.Metadata,
			Source: models.Source{
				Type:           req.Source.Type,
				URL:            req.Source.URL,
				Title:          req.Source.Title,
				Category:       req.Source.Category,
				ChunkIndex:     i,
				TotalChunks:    total,
				OriginalLength: originalLength,
			},
		}

		if p.dedup != nil {
			record.ContentHash = p.dedup.Fingerprint(req.AgentID, req.CompanyID, chunk)
		}

		if err := record.Validate(); err != nil {
			results = append(results, models.ChunkResult{
				ChunkIndex: i,
				Status:     models.ChunkFailedValidation,
				Error:      err.Error(),
			})
			continue
		}

		id, existed, err := p.putWithRetry(ctx, record)
		if err != nil {
			return results, err
		}

		status := models.ChunkCreated
		if existed {
			status = models.ChunkSkippedDuplicate
		}
		results = append(results, models.ChunkResult{
			ID:         id,
			ChunkIndex: i,
			Status:     status,
		})
	}

	return results, nil
}

// putWithRetry retries transient StorageErrors with exponential backoff.
// Validation failures and any other error are permanent.
func (p *Pipeline) putWithRetry(ctx context.Context, record *models.VectorRecord) (string, bool, error) {
	var id string
	var existed bool

	transient := func(err error) bool {
		var serr *models.StorageError
		return errors.As(err, &serr)
	}

	err := util.Do(ctx, p.PutAttempts, p.PutRetryDelay, transient, func() error {
		var err error
		id, existed, err = p.store.Put(record)
		return err
	})

	return id, existed, err
}
