package domain

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence capability for name→identifier mappings.
// Implementations must scope every operation to its own transaction: a
// write either fully commits or leaves the record unchanged.
//
// Absence is not an error at this layer. Get and Delete report a missing
// name as (zero, false, nil); the resolution layer decides whether that is
// a domain error.
type Store interface {
	// CreateOrGet looks up name inside a write transaction. If the name is
	// present and rejectIfExists is true it fails with AlreadyExistsError;
	// if present and rejectIfExists is false it returns the existing
	// identifier without mutation. If absent it mints a fresh random
	// identifier, persists it and returns it.
	CreateOrGet(ctx context.Context, name string, rejectIfExists bool) (uuid.UUID, error)

	// Get returns the identifier for name, with ok=false if unmapped.
	Get(ctx context.Context, name string) (uuid.UUID, bool, error)

	// Delete removes the mapping for name and returns the removed
	// identifier, with ok=false and no mutation if the name is unmapped.
	Delete(ctx context.Context, name string) (uuid.UUID, bool, error)

	// List materializes every entry. A value that fails to decode is a
	// CorruptEntryError, never silently skipped.
	List(ctx context.Context) ([]Entry, error)

	// Insert unconditionally writes the mapping; last write wins.
	// Used to restore a known pair rather than mint a new one.
	Insert(ctx context.Context, name string, uid uuid.UUID) error

	// Close releases any resources held by the store.
	Close() error
}
