package domain

import "context"

// Sink is the persistence boundary batches are handed to. Implementations
// must provide insert-or-skip semantics: re-inserting a row whose primary key
// already exists is silently ignored, so a re-run against a non-empty sink is
// idempotent.
type Sink interface {
	// EnsureSchema creates the four tables if they do not exist.
	EnsureSchema(ctx context.Context) error
	// BulkInsert writes rows into table. Each row matches columns positionally.
	// The write is atomic per call from the caller's perspective.
	BulkInsert(ctx context.Context, table Table, columns []string, rows [][]any) error
	// Reset removes all rows from all four tables.
	Reset(ctx context.Context) error
	// Close releases underlying resources.
	Close() error
}

// NameProvider yields a region-plausible first/last name pair for a region
// key. Implementations must fail fast on an unknown region rather than
// falling back to a default name.
type NameProvider interface {
	NameForRegion(region string) (PersonName, error)
}
