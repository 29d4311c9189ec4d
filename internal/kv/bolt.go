package kv

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bolt keeps each named store in its own bucket.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens or creates the database file at path.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}
	return &Bolt{db: db}, nil
}

// Store returns the bucket called name, creating it when missing.
func (b *Bolt) Store(name string) (Store, error) {
	if name == "" {
		return nil, errors.New("store name is empty")
	}
	bucket := []byte(name)
	err := b.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create bucket %s: %w", name, err)
	}
	return &boltStore{db: b.db, bucket: bucket}, nil
}

// Close closes the database file.
func (b *Bolt) Close() error {
	return b.db.Close()
}

type boltStore struct {
	db     *bolt.DB
	bucket []byte
}

func (s *boltStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(s.bucket).Get([]byte(key))
		if data == nil {
			return ErrNotFound
		}
		value = append([]byte(nil), data...)
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("bolt get %s: %w", key, err)
	}
	return value, nil
}

func (s *boltStore) Has(key string) (bool, error) {
	var exists bool
	if err := s.db.View(func(tx *bolt.Tx) error {
		exists = tx.Bucket(s.bucket).Get([]byte(key)) != nil
		return nil
	}); err != nil {
		return false, fmt.Errorf("bolt has %s: %w", key, err)
	}
	return exists, nil
}

func (s *boltStore) Put(key string, value []byte) error {
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), value)
	}); err != nil {
		return fmt.Errorf("bolt put %s: %w", key, err)
	}
	return nil
}

func (s *boltStore) Delete(key string) error {
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	}); err != nil {
		return fmt.Errorf("bolt delete %s: %w", key, err)
	}
	return nil
}

func (s *boltStore) ForEach(fn func(key string, value []byte) error) error {
	// Copy out first: fn may write to the same store and bolt forbids that inside View.
	type entry struct {
		key   string
		value []byte
	}
	var entries []entry
	if err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, v []byte) error {
			entries = append(entries, entry{key: string(k), value: append([]byte(nil), v...)})
			return nil
		})
	}); err != nil {
		return fmt.Errorf("bolt iterate %s: %w", s.bucket, err)
	}
	for _, e := range entries {
		if err := fn(e.key, e.value); err != nil {
			return err
		}
	}
	return nil
}
