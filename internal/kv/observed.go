package kv

import (
	"errors"
	"time"
)

// ObservedStore reports every operation of the wrapped store to metrics.
type ObservedStore struct {
	name    string
	store   Store
	metrics StoreMetrics
}

// NewObservedStore wraps store under the given name.
func NewObservedStore(name string, store Store, metrics StoreMetrics) *ObservedStore {
	return &ObservedStore{name: name, store: store, metrics: metrics}
}

func (o *ObservedStore) observe(operation string, err error, started time.Time) {
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	o.metrics.Observe(o.name, operation, err, started)
}

func (o *ObservedStore) Get(key string) (value []byte, err error) {
	started := time.Now()
	defer func() {
		o.observe("get", err, started)
	}()
	return o.store.Get(key)
}

func (o *ObservedStore) Has(key string) (ok bool, err error) {
	started := time.Now()
	defer func() {
		o.observe("has", err, started)
	}()
	return o.store.Has(key)
}

func (o *ObservedStore) Put(key string, value []byte) (err error) {
	started := time.Now()
	defer func() {
		o.observe("put", err, started)
	}()
	return o.store.Put(key, value)
}

func (o *ObservedStore) Delete(key string) (err error) {
	started := time.Now()
	defer func() {
		o.observe("delete", err, started)
	}()
	return o.store.Delete(key)
}

func (o *ObservedStore) ForEach(fn func(key string, value []byte) error) (err error) {
	started := time.Now()
	defer func() {
		o.observe("for_each", err, started)
	}()
	return o.store.ForEach(fn)
}

// ObservedBackend wraps every store it opens in an ObservedStore.
type ObservedBackend struct {
	backend Backend
	metrics StoreMetrics
}

// NewObservedBackend wraps backend.
func NewObservedBackend(backend Backend, metrics StoreMetrics) *ObservedBackend {
	return &ObservedBackend{backend: backend, metrics: metrics}
}

func (o *ObservedBackend) Store(name string) (Store, error) {
	store, err := o.backend.Store(name)
	if err != nil {
		return nil, err
	}
	return NewObservedStore(name, store, o.metrics), nil
}

func (o *ObservedBackend) Close() error {
	return o.backend.Close()
}
