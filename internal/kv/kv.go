// Package kv provides the named key-value stores the node persists its state in.
package kv

import (
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("key not found")

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Store is one named keyspace.
	Store interface {
		Get(key string) ([]byte, error)
		Has(key string) (bool, error)
		Put(key string, value []byte) error
		Delete(key string) error
		// ForEach visits entries in key order until fn returns an error.
		ForEach(fn func(key string, value []byte) error) error
	}
	// Backend opens named stores over one database.
	Backend interface {
		Store(name string) (Store, error)
		Close() error
	}
	// StoreMetrics records one store operation.
	StoreMetrics interface {
		Observe(store, operation string, err error, started time.Time)
	}
)

// Clear deletes every entry of s.
func Clear(s Store) error {
	var keys []string
	if err := s.ForEach(func(key string, _ []byte) error {
		keys = append(keys, key)
		return nil
	}); err != nil {
		return err
	}
	for _, key := range keys {
		if err := s.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
