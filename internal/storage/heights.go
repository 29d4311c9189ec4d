package storage

import (
	"fmt"
	"strconv"

	"github.com/goodnatureofminers/marabu/internal/kv"
)

// HeightStore maps block ids to their height.
type HeightStore struct {
	store kv.Store
}

// NewHeightStore builds a HeightStore over store.
func NewHeightStore(store kv.Store) *HeightStore {
	return &HeightStore{store: store}
}

// Get returns the height of blockID.
func (s *HeightStore) Get(blockID string) (uint64, error) {
	data, err := s.store.Get(blockID)
	if err != nil {
		return 0, err
	}
	height, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode height %s: %w", blockID, err)
	}
	return height, nil
}

// Put records the height of blockID.
func (s *HeightStore) Put(blockID string, height uint64) error {
	return s.store.Put(blockID, []byte(strconv.FormatUint(height, 10)))
}

// ForEach visits every known block in id order.
func (s *HeightStore) ForEach(fn func(blockID string, height uint64) error) error {
	return s.store.ForEach(func(key string, value []byte) error {
		height, err := strconv.ParseUint(string(value), 10, 64)
		if err != nil {
			return fmt.Errorf("decode height %s: %w", key, err)
		}
		return fn(key, height)
	})
}
