package storage

import (
	"encoding/json"
	"fmt"

	"github.com/goodnatureofminers/marabu/internal/kv"
	"github.com/goodnatureofminers/marabu/internal/utxo"
)

// UTXOStore maps block ids to the unspent outpoint ids right after that block.
// Entries are replaced wholesale, never edited.
type UTXOStore struct {
	store kv.Store
}

// NewUTXOStore builds a UTXOStore over store.
func NewUTXOStore(store kv.Store) *UTXOStore {
	return &UTXOStore{store: store}
}

// Has reports whether the set of blockID is known.
func (s *UTXOStore) Has(blockID string) (bool, error) {
	return s.store.Has(blockID)
}

// Get returns the set of blockID.
func (s *UTXOStore) Get(blockID string) (utxo.Set, error) {
	data, err := s.store.Get(blockID)
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode utxo set %s: %w", blockID, err)
	}
	return utxo.New(ids...), nil
}

// Put stores set as the state after blockID.
func (s *UTXOStore) Put(blockID string, set utxo.Set) error {
	data, err := json.Marshal(set.IDs())
	if err != nil {
		return fmt.Errorf("encode utxo set %s: %w", blockID, err)
	}
	return s.store.Put(blockID, data)
}
