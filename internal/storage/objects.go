// Package storage keeps the node's persistent state: objects, UTXO sets, heights and the mempool.
package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/marabu/internal/kv"
	"github.com/goodnatureofminers/marabu/internal/model"
)

var (
	// ErrNotFound is returned when an entry is absent.
	ErrNotFound = kv.ErrNotFound
	// ErrWrongType is returned when an object exists but has another type than requested.
	ErrWrongType = errors.New("object has another type")
)

// ObjectStore maps object ids to canonical objects.
// Objects mid-write are served from an in-flight cache that is consulted before the durable store.
type ObjectStore struct {
	store kv.Store

	mu       sync.RWMutex
	inflight map[string][]byte
	arrivals []func(id string)
}

// NewObjectStore builds an ObjectStore over store.
func NewObjectStore(store kv.Store) *ObjectStore {
	return &ObjectStore{
		store:    store,
		inflight: make(map[string][]byte),
	}
}

// OnArrival registers fn to be called with the id of every newly stored object.
func (s *ObjectStore) OnArrival(fn func(id string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arrivals = append(s.arrivals, fn)
}

// Has reports whether the object is stored.
func (s *ObjectStore) Has(id string) (bool, error) {
	s.mu.RLock()
	_, ok := s.inflight[id]
	s.mu.RUnlock()
	if ok {
		return true, nil
	}
	return s.store.Has(id)
}

// Raw returns the canonical encoding of the object.
func (s *ObjectStore) Raw(id string) ([]byte, error) {
	s.mu.RLock()
	data, ok := s.inflight[id]
	s.mu.RUnlock()
	if ok {
		return data, nil
	}
	return s.store.Get(id)
}

// Get returns the decoded object.
func (s *ObjectStore) Get(id string) (model.Object, error) {
	data, err := s.Raw(id)
	if err != nil {
		return nil, err
	}
	obj, err := model.ParseObject(data)
	if err != nil {
		return nil, fmt.Errorf("decode stored object %s: %w", id, err)
	}
	return obj, nil
}

// Transaction returns the stored transaction id.
func (s *ObjectStore) Transaction(id string) (*model.Transaction, error) {
	obj, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	tx, ok := obj.(*model.Transaction)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a %s, not a transaction", ErrWrongType, id, obj.ObjectType())
	}
	return tx, nil
}

// Block returns the stored block id.
func (s *ObjectStore) Block(id string) (*model.Block, error) {
	obj, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	b, ok := obj.(*model.Block)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a %s, not a block", ErrWrongType, id, obj.ObjectType())
	}
	return b, nil
}

// Put persists obj under its object id and notifies arrival listeners.
func (s *ObjectStore) Put(obj model.Object) (string, error) {
	data, err := model.Canonicalize(obj)
	if err != nil {
		return "", err
	}
	id := model.HashID(data)

	s.mu.Lock()
	s.inflight[id] = data
	s.mu.Unlock()

	err = s.store.Put(id, data)

	s.mu.Lock()
	delete(s.inflight, id)
	arrivals := append([]func(string){}, s.arrivals...)
	s.mu.Unlock()

	if err != nil {
		return "", fmt.Errorf("put object %s: %w", id, err)
	}
	for _, fn := range arrivals {
		fn(id)
	}
	return id, nil
}

// IsNotFound reports whether err means the entry is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
