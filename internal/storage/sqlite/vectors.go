// ABOUTME: Vector record persistence with atomic content-hash deduplication
// ABOUTME: Embeddings stored as little-endian BLOBs, metadata as JSON text
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harper/knowledge-standalone/internal/models"
)

// VectorStore handles VectorRecord persistence
type VectorStore struct {
	db *DB
}

// NewVectorStore creates a new VectorStore
func NewVectorStore(db *DB) *VectorStore {
	return &VectorStore{db: db}
}

// DeleteFilter narrows a tenant bulk delete. Zero value deletes every
// record owned by the tenant.
type DeleteFilter struct {
	SourceType models.SourceType
	IDs        []string
}

// Put validates and inserts a record, honoring the content-hash
// uniqueness invariant. When the hash already exists the existing
// record's ID is returned with existed=true and nothing is written;
// duplicate content is an idempotent outcome, not an error. The
// test-and-insert is a single conditional statement, so concurrent
// duplicate ingestions cannot both create a record.
func (s *VectorStore) Put(record *models.VectorRecord) (string, bool, error) {
	if err := record.Validate(); err != nil {
		return "", false, err
	}

	if record.ID == "" {
		record.ID = "vec_" + uuid.New().String()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = record.CreatedAt
	}

	metadataJSON, err := marshalMetadata(record.Metadata)
	if err != nil {
		return "", false, &models.ValidationError{Field: "metadata", Reason: err.Error()}
	}

	insert := `
		INSERT INTO vectors (
			id, agent_id, company_id, content, embedding, metadata,
			source_type, source_url, source_title, source_category,
			chunk_index, total_chunks, original_length, content_hash,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if record.ContentHash != "" {
		// Conflict target must repeat the partial index predicate
		insert += `
		ON CONFLICT(content_hash) WHERE content_hash IS NOT NULL AND content_hash != '' DO NOTHING`
	}

	res, err := s.db.Exec(insert,
		record.ID, record.AgentID, record.CompanyID, record.Content,
		vectorToBlob(record.Embedding), metadataJSON,
		string(record.Source.Type), nullString(record.Source.URL),
		nullString(record.Source.Title), nullString(record.Source.Category),
		record.Source.ChunkIndex, record.Source.TotalChunks, record.Source.OriginalLength,
		nullString(record.ContentHash), record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return "", false, &models.StorageError{Op: "put", Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return "", false, &models.StorageError{Op: "put", Err: err}
	}
	if affected > 0 {
		return record.ID, false, nil
	}

	// Conflict: hand back the existing record's identifier
	var existingID string
	err = s.db.QueryRow(
		"SELECT id FROM vectors WHERE content_hash = ?", record.ContentHash,
	).Scan(&existingID)
	if err != nil {
		return "", false, &models.StorageError{Op: "put", Err: err}
	}

	return existingID, true, nil
}

// GetByID retrieves a record by its identifier, or nil if absent
func (s *VectorStore) GetByID(id string) (*models.VectorRecord, error) {
	rows, err := s.db.Query(selectColumns+" FROM vectors WHERE id = ?", id)
	if err != nil {
		return nil, &models.StorageError{Op: "get", Err: err}
	}
	defer func() { _ = rows.Close() }()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// GetByTenant retrieves all records owned by a tenant. Callers needing
// a stable order sort by CreatedAt or chunk index themselves.
func (s *VectorStore) GetByTenant(agentID, companyID string) ([]models.VectorRecord, error) {
	rows, err := s.db.Query(
		selectColumns+" FROM vectors WHERE agent_id = ? AND company_id = ?",
		agentID, companyID,
	)
	if err != nil {
		return nil, &models.StorageError{Op: "list", Err: err}
	}
	defer func() { _ = rows.Close() }()

	return scanRecords(rows)
}

// DeleteByTenant removes a tenant's records matching the filter and
// returns the number deleted. A nil filter removes everything the
// tenant owns.
func (s *VectorStore) DeleteByTenant(agentID, companyID string, filter *DeleteFilter) (int64, error) {
	query := "DELETE FROM vectors WHERE agent_id = ? AND company_id = ?"
	args := []interface{}{agentID, companyID}

	if filter != nil {
		if filter.SourceType != "" {
			query += " AND source_type = ?"
			args = append(args, string(filter.SourceType))
		}
		if len(filter.IDs) > 0 {
			query += " AND id IN (?" + strings.Repeat(", ?", len(filter.IDs)-1) + ")"
			for _, id := range filter.IDs {
				args = append(args, id)
			}
		}
	}

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, &models.StorageError{Op: "delete", Err: err}
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, &models.StorageError{Op: "delete", Err: err}
	}
	return deleted, nil
}

// UpdateContent edits a record's content and metadata, refreshing
// updated_at. A fingerprint for the new content is assigned only when
// the record carried none yet; an existing hash is never rewritten.
func (s *VectorStore) UpdateContent(id, content string, metadata map[string]any, contentHash string) error {
	if content == "" {
		return &models.ValidationError{Field: "content", Reason: "must not be empty"}
	}

	metadataJSON, err := marshalMetadata(metadata)
	if err != nil {
		return &models.ValidationError{Field: "metadata", Reason: err.Error()}
	}

	res, err := s.db.Exec(`
		UPDATE vectors SET
			content = ?,
			metadata = COALESCE(?, metadata),
			content_hash = CASE
				WHEN (content_hash IS NULL OR content_hash = '') AND ? != '' THEN ?
				ELSE content_hash
			END,
			updated_at = ?
		WHERE id = ?
	`, content, metadataJSON, contentHash, contentHash, time.Now().UTC(), id)
	if err != nil {
		return &models.StorageError{Op: "update", Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return &models.StorageError{Op: "update", Err: err}
	}
	if affected == 0 {
		return fmt.Errorf("record %s not found", id)
	}
	return nil
}

const selectColumns = `SELECT id, agent_id, company_id, content, embedding, metadata,
	source_type, source_url, source_title, source_category,
	chunk_index, total_chunks, original_length, content_hash,
	created_at, updated_at`

// scanRecords scans rows into vector records
func scanRecords(rows *sql.Rows) ([]models.VectorRecord, error) {
	var records []models.VectorRecord

	for rows.Next() {
		var (
			rec        models.VectorRecord
			blob       []byte
			metadata   sql.NullString
			sourceType string
			url        sql.NullString
			title      sql.NullString
			category   sql.NullString
			hash       sql.NullString
		)

		if err := rows.Scan(
			&rec.ID, &rec.AgentID, &rec.CompanyID, &rec.Content, &blob, &metadata,
			&sourceType, &url, &title, &category,
			&rec.Source.ChunkIndex, &rec.Source.TotalChunks, &rec.Source.OriginalLength,
			&hash, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, &models.StorageError{Op: "scan", Err: err}
		}

		rec.Embedding = blobToVector(blob)
		rec.Source.Type = models.SourceType(sourceType)
		if url.Valid {
			rec.Source.URL = url.String
		}
		if title.Valid {
			rec.Source.Title = title.String
		}
		if category.Valid {
			rec.Source.Category = category.String
		}
		if hash.Valid {
			rec.ContentHash = hash.String
		}
		if metadata.Valid && metadata.String != "" {
			if err := json.Unmarshal([]byte(metadata.String), &rec.Metadata); err != nil {
				return nil, &models.StorageError{Op: "scan", Err: err}
			}
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, &models.StorageError{Op: "scan", Err: err}
	}
	return records, nil
}

// marshalMetadata encodes the metadata bag as JSON, or NULL when empty.
// The core never inspects the contents.
func marshalMetadata(metadata map[string]any) (interface{}, error) {
	if len(metadata) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// nullString converts an empty string to NULL for storage
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// vectorToBlob converts a float64 slice to binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}
