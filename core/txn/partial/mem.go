package partial

import (
	"sync"

	"go.dedis.ch/catapult/core/txn"
)

// MemStore is a store of the cosignatures in memory.
//
// - implements partial.Store
type MemStore struct {
	sync.Mutex

	cosigs map[txn.Hash][]txn.Cosignature
}

// NewMemStore returns a new empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		cosigs: make(map[txn.Hash][]txn.Cosignature),
	}
}

// Add implements partial.Store.
func (s *MemStore) Add(parent txn.Hash, cosig txn.Cosignature) (bool, error) {
	s.Lock()
	defer s.Unlock()

	for _, other := range s.cosigs[parent] {
		if other.Signer == cosig.Signer {
			return false, nil
		}
	}

	s.cosigs[parent] = append(s.cosigs[parent], cosig)

	return true, nil
}

// Get implements partial.Store.
func (s *MemStore) Get(parent txn.Hash) ([]txn.Cosignature, error) {
	s.Lock()
	defer s.Unlock()

	return append([]txn.Cosignature{}, s.cosigs[parent]...), nil
}

// Delete implements partial.Store.
func (s *MemStore) Delete(parent txn.Hash) error {
	s.Lock()
	delete(s.cosigs, parent)
	s.Unlock()

	return nil
}
