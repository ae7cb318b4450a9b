package rules

import "sync/atomic"

// Store publishes the current Table. Readers load a complete table; writers
// replace it as a whole.
type Store struct {
	current atomic.Pointer[Table]
}

// NewStore creates a store publishing t. A nil table publishes a table with
// only the stock default rule.
func NewStore(t *Table) *Store {
	s := &Store{}
	s.current.Store(orDefault(t))
	return s
}

// Load returns the published table
func (s *Store) Load() *Table {
	return s.current.Load()
}

// Swap publishes t and returns the table it replaced
func (s *Store) Swap(t *Table) *Table {
	return s.current.Swap(orDefault(t))
}

func orDefault(t *Table) *Table {
	if t == nil {
		return NewBuilder().Build()
	}
	return t
}
