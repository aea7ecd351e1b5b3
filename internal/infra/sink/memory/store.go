// Package memory implements an in-memory Sink for tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"dukacore/pkg/domain"
)

// Store implements domain.Sink backed by per-table maps keyed by primary key.
// Duplicate primary keys keep the first write, matching the insert-or-skip
// contract of the SQL sinks.
type Store struct {
	mu     sync.RWMutex
	tables map[domain.Table]map[int][]any
}

var _ domain.Sink = (*Store)(nil)

// New returns an empty in-memory sink.
func New() *Store {
	return &Store{tables: make(map[domain.Table]map[int][]any)}
}

// EnsureSchema is a no-op for the memory driver.
func (s *Store) EnsureSchema(context.Context) error { return nil }

// BulkInsert stores rows keyed by their first column, skipping keys that
// already exist.
func (s *Store) BulkInsert(_ context.Context, table domain.Table, columns []string, rows [][]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.tables[table]
	if !ok {
		bucket = make(map[int][]any)
		s.tables[table] = bucket
	}
	for _, row := range rows {
		if len(row) != len(columns) {
			return fmt.Errorf("row width %d does not match %d columns for %s", len(row), len(columns), table)
		}
		pk, ok := row[0].(int)
		if !ok {
			return fmt.Errorf("first column of %s is not an int primary key", table)
		}
		if _, exists := bucket[pk]; exists {
			continue
		}
		bucket[pk] = row
	}
	return nil
}

// Reset drops all rows.
func (s *Store) Reset(context.Context) error {
	s.mu.Lock()
	s.tables = make(map[domain.Table]map[int][]any)
	s.mu.Unlock()
	return nil
}

// Close is a no-op for the memory driver.
func (s *Store) Close() error { return nil }

// Count returns the number of rows stored for table.
func (s *Store) Count(table domain.Table) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables[table])
}

// Rows returns the stored rows for table ordered by primary key.
func (s *Store) Rows(table domain.Table) [][]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bucket := s.tables[table]
	keys := make([]int, 0, len(bucket))
	for k := range bucket {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([][]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, bucket[k])
	}
	return out
}
