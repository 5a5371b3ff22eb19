// ABOUTME: Typed errors for the storage and ingestion paths
// ABOUTME: ValidationError is never retried; StorageError is transient and retryable
package models

import "fmt"

// ValidationError means a record violates a storage invariant.
// The record is never persisted and the error is surfaced immediately.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError means the persistence layer was unreachable or a write
// failed transiently. Callers retry with backoff before giving up.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
