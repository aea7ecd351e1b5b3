package domain

import "fmt"

// ConfigError reports an invalid or missing configuration value. It is fatal
// and surfaced immediately; nothing is generated or written after one.
type ConfigError struct {
	Field  string
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}

// ErrUnknownRegion is returned when a region key has no entry in the
// configured region mappings.
type ErrUnknownRegion struct {
	Region string
}

func (e ErrUnknownRegion) Error() string {
	return fmt.Sprintf("unknown region %q", e.Region)
}

// ConsistencyError reports a post-generation invariant violation: a dangling
// foreign key, a gap in an id sequence, an order without items, or a total
// that does not match its items. The algorithm guarantees these cannot occur;
// the pipeline still verifies before any sink write and fails loudly rather
// than persist inconsistent batches.
type ConsistencyError struct {
	Table  Table
	Detail string
}

func (e ConsistencyError) Error() string {
	return fmt.Sprintf("consistency violation in %s: %s", e.Table, e.Detail)
}
