package kv

import (
	"errors"
	"fmt"

	"github.com/btcsuite/goleveldb/leveldb"
	"github.com/btcsuite/goleveldb/leveldb/opt"
	"github.com/btcsuite/goleveldb/leveldb/storage"
	"github.com/btcsuite/goleveldb/leveldb/util"
)

// LevelDB keeps every named store in one database, separated by a "name/" key prefix.
type LevelDB struct {
	db *leveldb.DB
}

// OpenLevelDB opens or creates the database directory at path.
func OpenLevelDB(path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{
		Compression: opt.NoCompression,
	})
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", path, err)
	}
	return &LevelDB{db: db}, nil
}

// OpenMemLevelDB opens a database that lives only in memory.
func OpenMemLevelDB() (*LevelDB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open in-memory leveldb: %w", err)
	}
	return &LevelDB{db: db}, nil
}

// Store returns the keyspace called name.
func (l *LevelDB) Store(name string) (Store, error) {
	if name == "" {
		return nil, errors.New("store name is empty")
	}
	return &levelStore{db: l.db, prefix: []byte(name + "/")}, nil
}

// Close closes the database.
func (l *LevelDB) Close() error {
	return l.db.Close()
}

type levelStore struct {
	db     *leveldb.DB
	prefix []byte
}

func (s *levelStore) key(k string) []byte {
	out := make([]byte, 0, len(s.prefix)+len(k))
	out = append(out, s.prefix...)
	return append(out, k...)
}

func (s *levelStore) Get(key string) ([]byte, error) {
	value, err := s.db.Get(s.key(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("leveldb get %s: %w", key, err)
	}
	return value, nil
}

func (s *levelStore) Has(key string) (bool, error) {
	ok, err := s.db.Has(s.key(key), nil)
	if err != nil {
		return false, fmt.Errorf("leveldb has %s: %w", key, err)
	}
	return ok, nil
}

func (s *levelStore) Put(key string, value []byte) error {
	if err := s.db.Put(s.key(key), value, nil); err != nil {
		return fmt.Errorf("leveldb put %s: %w", key, err)
	}
	return nil
}

func (s *levelStore) Delete(key string) error {
	if err := s.db.Delete(s.key(key), nil); err != nil {
		return fmt.Errorf("leveldb delete %s: %w", key, err)
	}
	return nil
}

func (s *levelStore) ForEach(fn func(key string, value []byte) error) error {
	it := s.db.NewIterator(util.BytesPrefix(s.prefix), nil)
	defer it.Release()
	for it.Next() {
		key := string(it.Key()[len(s.prefix):])
		value := append([]byte(nil), it.Value()...)
		if err := fn(key, value); err != nil {
			return err
		}
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("leveldb iterate %s: %w", s.prefix, err)
	}
	return nil
}
