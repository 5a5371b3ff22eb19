// ABOUTME: Unified Storage layer that wraps the SQLite vector store
// ABOUTME: Adds retrieval ranking and corpus aggregation on top of persistence
package sqlite

import (
	"fmt"
	"sort"

	"github.com/harper/knowledge-standalone/internal/core"
	"github.com/harper/knowledge-standalone/internal/models"
)

// Storage manages all persistent data for the knowledge base
type Storage struct {
	db      *DB
	vectors *VectorStore
}

// NewStorage initializes storage at the default XDG path
func NewStorage() (*Storage, error) {
	return NewStorageWithPath(DefaultDBPath())
}

// NewStorageWithPath initializes storage with a custom database path
func NewStorageWithPath(dbPath string) (*Storage, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Storage{
		db:      db,
		vectors: NewVectorStore(db),
	}, nil
}

// NewStorageInMemory creates an in-memory storage (for testing)
func NewStorageInMemory() (*Storage, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	return &Storage{
		db:      db,
		vectors: NewVectorStore(db),
	}, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Storage) Path() string {
	return s.db.Path()
}

// Put stores a vector record, deduplicating on content hash.
// Satisfies the ingestion pipeline's store contract.
func (s *Storage) Put(record *models.VectorRecord) (string, bool, error) {
	return s.vectors.Put(record)
}

// Get retrieves a record by ID, or nil if absent
func (s *Storage) Get(id string) (*models.VectorRecord, error) {
	return s.vectors.GetByID(id)
}

// List returns every record a tenant owns, oldest first
func (s *Storage) List(agentID, companyID string) ([]models.VectorRecord, error) {
	records, err := s.vectors.GetByTenant(agentID, companyID)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// Search ranks a tenant's corpus against the query embedding and returns
// the topK most similar records, best first. Records whose embeddings
// cannot be compared score zero rather than failing the search.
func (s *Storage) Search(agentID, companyID string, queryEmbedding []float64, topK int) ([]models.SearchResult, error) {
	records, err := s.vectors.GetByTenant(agentID, companyID)
	if err != nil {
		return nil, err
	}

	ranked := core.Rank(queryEmbedding, records, topK)

	results := make([]models.SearchResult, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, models.SearchResult{
			ID:        r.Record.ID,
			Content:   r.Record.Content,
			Score:     r.Score,
			Metadata:  r.Record.Metadata,
			Source:    r.Record.Source,
			CreatedAt: r.Record.CreatedAt,
		})
	}
	return results, nil
}

// Stats aggregates a tenant's corpus into summary statistics.
// An empty corpus yields zero-valued stats, not an error.
func (s *Storage) Stats(agentID, companyID string) (models.CorpusStats, error) {
	records, err := s.vectors.GetByTenant(agentID, companyID)
	if err != nil {
		return models.CorpusStats{}, err
	}
	return core.AggregateCorpus(records), nil
}

// DeleteTenantVectors removes a tenant's records matching the filter
// and returns the number deleted
func (s *Storage) DeleteTenantVectors(agentID, companyID string, filter *DeleteFilter) (int64, error) {
	return s.vectors.DeleteByTenant(agentID, companyID, filter)
}

// UpdateContent edits a stored record's content and metadata
func (s *Storage) UpdateContent(id, content string, metadata map[string]any, contentHash string) error {
	return s.vectors.UpdateContent(id, content, metadata, contentHash)
}
