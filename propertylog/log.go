// Package propertylog is the caller-owned record of minted properties: an
// append-only log keyed by owner account. The execution core only supplies
// the values; applications may back the Store with whatever persistence
// they already have.
package propertylog

import (
	"sync"

	"github.com/hashstay/contract-executor/wallet"
)

// Record describes one minted and transferred property.
type Record struct {
	TokenAddress  string
	SerialNumber  int64
	TransactionID string
	Metadata      []string
}

// Store is an append-only log of property records per owner account.
type Store interface {
	Append(owner wallet.AccountID, rec Record) error
	Records(owner wallet.AccountID) ([]Record, error)
}

// Key returns the storage key for an owner's log.
func Key(owner wallet.AccountID) string {
	return "properties_" + string(owner)
}

// MemoryStore is an in-process Store, useful for tests and tools.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]Record
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]Record)}
}

// Append implements Store.
func (s *MemoryStore) Append(owner wallet.AccountID, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := Key(owner)
	s.entries[key] = append(s.entries[key], rec)
	return nil
}

// Records implements Store. Records come back in append order.
func (s *MemoryStore) Records(owner wallet.AccountID) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.entries[Key(owner)]...), nil
}
