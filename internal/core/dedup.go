// ABOUTME: Deduplicator computes content fingerprints for idempotent ingestion
// ABOUTME: SHA-256 digest, scoped globally or per tenant via the digest input
package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// DedupScope controls whether identical content collides across tenants
type DedupScope string

const (
	// DedupGlobal deduplicates identical content across the whole store,
	// allowing cross-tenant reuse of shared public content.
	DedupGlobal DedupScope = "global"
	// DedupPerTenant mixes the tenant identifiers into the fingerprint so
	// identical content is deduplicated only within one tenant.
	DedupPerTenant DedupScope = "per_tenant"
)

// Valid reports whether the scope is one of the known values
func (s DedupScope) Valid() bool {
	return s == DedupGlobal || s == DedupPerTenant
}

// Deduplicator computes deterministic content fingerprints. The store
// enforces one unique index on the fingerprint column; scoping lives
// entirely in how the fingerprint is computed, so either policy uses the
// same atomic conditional insert.
type Deduplicator struct {
	scope DedupScope
}

// NewDeduplicator creates a Deduplicator with the given scope.
// Unknown scopes fall back to global, the observed upstream behavior.
func NewDeduplicator(scope DedupScope) *Deduplicator {
	if !scope.Valid() {
		scope = DedupGlobal
	}
	return &Deduplicator{scope: scope}
}

// Scope returns the configured dedup scope
func (d *Deduplicator) Scope() DedupScope {
	return d.scope
}

// Fingerprint returns the hex-encoded SHA-256 fingerprint for a chunk.
// For per-tenant scope the tenant identifiers are written into the digest
// with NUL separators so "a"+"bc" and "ab"+"c" cannot collide.
func (d *Deduplicator) Fingerprint(agentID, companyID, content string) string {
	h := sha256.New()
	if d.scope == DedupPerTenant {
		h.Write([]byte(agentID))
		h.Write([]byte{0})
		h.Write([]byte(companyID))
		h.Write([]byte{0})
	}
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}
