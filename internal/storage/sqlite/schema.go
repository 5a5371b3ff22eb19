// ABOUTME: SQLite database schema for vector record storage
// ABOUTME: One vectors table with tenant indexes and a sparse unique hash index
package sqlite

// Schema contains all SQL statements for database initialization.
//
// The unique index on content_hash is partial: records written without
// deduplication carry an empty hash and never collide. Because the
// fingerprint itself encodes the dedup scope, this single index enforces
// both the global and per-tenant policies.
const Schema = `
-- Vector records table (one row per ingested chunk)
CREATE TABLE IF NOT EXISTS vectors (
    id TEXT PRIMARY KEY,
    agent_id TEXT NOT NULL,
    company_id TEXT NOT NULL,
    content TEXT NOT NULL,
    embedding BLOB NOT NULL,
    metadata TEXT,
    source_type TEXT NOT NULL,
    source_url TEXT,
    source_title TEXT,
    source_category TEXT,
    chunk_index INTEGER NOT NULL DEFAULT 0,
    total_chunks INTEGER NOT NULL DEFAULT 0,
    original_length INTEGER NOT NULL DEFAULT 0,
    content_hash TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexes for tenant-scoped querying
CREATE INDEX IF NOT EXISTS idx_vectors_tenant ON vectors(agent_id, company_id);
CREATE INDEX IF NOT EXISTS idx_vectors_agent_source ON vectors(agent_id, source_type);

-- Sparse unique index backing the dedup test-and-insert
CREATE UNIQUE INDEX IF NOT EXISTS idx_vectors_content_hash ON vectors(content_hash)
    WHERE content_hash IS NOT NULL AND content_hash != '';
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
