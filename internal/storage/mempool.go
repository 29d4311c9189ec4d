package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/goodnatureofminers/marabu/internal/kv"
	"github.com/goodnatureofminers/marabu/internal/model"
	"github.com/goodnatureofminers/marabu/internal/utxo"
)

// MempoolStore persists pending transactions by txid and remembers their arrival order.
type MempoolStore struct {
	store kv.Store

	mu   sync.Mutex
	next uint64
}

type mempoolRecord struct {
	Seq uint64          `json:"seq"`
	Tx  json.RawMessage `json:"tx"`
}

// NewMempoolStore builds a MempoolStore over store, continuing the sequence of persisted entries.
func NewMempoolStore(store kv.Store) (*MempoolStore, error) {
	s := &MempoolStore{store: store}
	err := store.ForEach(func(key string, value []byte) error {
		var rec mempoolRecord
		if err := json.Unmarshal(value, &rec); err != nil {
			return fmt.Errorf("decode mempool entry %s: %w", key, err)
		}
		if rec.Seq >= s.next {
			s.next = rec.Seq + 1
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Put appends tx to the pool.
func (s *MempoolStore) Put(txid string, tx *model.Transaction) error {
	data, err := model.Canonicalize(tx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	seq := s.next
	s.next++
	s.mu.Unlock()

	rec, err := json.Marshal(mempoolRecord{Seq: seq, Tx: data})
	if err != nil {
		return fmt.Errorf("encode mempool entry %s: %w", txid, err)
	}
	return s.store.Put(txid, rec)
}

// Delete removes txid.
func (s *MempoolStore) Delete(txid string) error {
	return s.store.Delete(txid)
}

// Clear removes every entry.
func (s *MempoolStore) Clear() error {
	return kv.Clear(s.store)
}

// List returns the pending transactions in arrival order.
func (s *MempoolStore) List() ([]utxo.Entry, error) {
	type item struct {
		seq   uint64
		entry utxo.Entry
	}
	var items []item
	err := s.store.ForEach(func(key string, value []byte) error {
		var rec mempoolRecord
		if err := json.Unmarshal(value, &rec); err != nil {
			return fmt.Errorf("decode mempool entry %s: %w", key, err)
		}
		obj, err := model.ParseObject(rec.Tx)
		if err != nil {
			return fmt.Errorf("decode mempool tx %s: %w", key, err)
		}
		tx, ok := obj.(*model.Transaction)
		if !ok {
			return fmt.Errorf("mempool entry %s is not a transaction", key)
		}
		items = append(items, item{seq: rec.Seq, entry: utxo.Entry{ID: key, Tx: tx}})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].seq < items[j].seq })

	entries := make([]utxo.Entry, len(items))
	for i, it := range items {
		entries[i] = it.entry
	}
	return entries, nil
}
