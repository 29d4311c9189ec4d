package chain

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/marabu/internal/utxo"
)

// Mempool holds valid unconfirmed transactions in arrival order and the UTXO view they imply
// on top of the chain tip.
type Mempool struct {
	store   MempoolStore
	utxos   UTXOStore
	metrics Metrics
	logger  *zap.Logger

	mu    sync.RWMutex
	txs   []utxo.Entry
	index map[string]struct{}
	view  utxo.Set
}

// NewMempool constructs an empty Mempool. Load or Reset seeds its view.
func NewMempool(store MempoolStore, utxos UTXOStore, metrics Metrics, logger *zap.Logger) *Mempool {
	return &Mempool{
		store:   store,
		utxos:   utxos,
		metrics: metrics,
		logger:  logger.Named("mempool"),
		index:   make(map[string]struct{}),
		view:    utxo.New(),
	}
}

// Load rebuilds the pool from the persisted entries on top of tipID.
func (m *Mempool) Load(tipID string) error {
	persisted, err := m.store.List()
	if err != nil {
		return fmt.Errorf("list mempool: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs = persisted
	return m.reset(tipID, nil)
}

// Admit adds e if it applies on top of the current view. Coinbase transactions never enter the pool.
// It reports false without side effects when e conflicts with the view.
func (m *Mempool) Admit(e utxo.Entry) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.admit(e)
}

func (m *Mempool) admit(e utxo.Entry) (bool, error) {
	if e.Tx.IsCoinbase() {
		return false, nil
	}
	if _, ok := m.index[e.ID]; ok {
		return true, nil
	}
	next, err := utxo.Apply(m.view, e)
	if errors.Is(err, utxo.ErrInconsistent) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := m.store.Put(e.ID, e.Tx); err != nil {
		return false, fmt.Errorf("persist mempool tx %s: %w", e.ID, err)
	}
	m.txs = append(m.txs, e)
	m.index[e.ID] = struct{}{}
	m.view = next
	m.metrics.SetMempoolSize(len(m.txs))
	return true, nil
}

// Remove drops the given transactions from the pool. The view is left as is until the next Reset.
func (m *Mempool) Remove(txids ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	drop := make(map[string]struct{}, len(txids))
	for _, id := range txids {
		if _, ok := m.index[id]; ok {
			drop[id] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return nil
	}

	kept := make([]utxo.Entry, 0, len(m.txs))
	for _, e := range m.txs {
		if _, ok := drop[e.ID]; !ok {
			kept = append(kept, e)
		}
	}
	for id := range drop {
		if err := m.store.Delete(id); err != nil {
			return fmt.Errorf("delete mempool tx %s: %w", id, err)
		}
	}
	for id := range drop {
		delete(m.index, id)
	}
	m.txs = kept
	m.metrics.SetMempoolSize(len(m.txs))
	return nil
}

// Reset reseeds the view from UTXO(tipID), then re-admits prepend followed by the previously pending
// transactions in their arrival order. Transactions that no longer apply are dropped.
func (m *Mempool) Reset(tipID string, prepend []utxo.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset(tipID, prepend)
}

func (m *Mempool) reset(tipID string, prepend []utxo.Entry) error {
	view, err := m.utxos.Get(tipID)
	if err != nil {
		return fmt.Errorf("utxo set of tip %s: %w", tipID, err)
	}
	previous := m.txs

	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("clear mempool: %w", err)
	}
	m.txs = nil
	m.index = make(map[string]struct{})
	m.view = view

	dropped := 0
	for _, e := range append(append([]utxo.Entry{}, prepend...), previous...) {
		ok, err := m.admit(e)
		if err != nil {
			return err
		}
		if !ok && !e.Tx.IsCoinbase() {
			dropped++
		}
	}
	m.metrics.SetMempoolSize(len(m.txs))
	m.logger.Debug("mempool reset",
		zap.String("tip", tipID),
		zap.Int("size", len(m.txs)),
		zap.Int("dropped", dropped),
	)
	return nil
}

// TxIDs returns the pending transaction ids in arrival order.
func (m *Mempool) TxIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, len(m.txs))
	for i, e := range m.txs {
		ids[i] = e.ID
	}
	return ids
}

// Has reports whether txid is pending.
func (m *Mempool) Has(txid string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.index[txid]
	return ok
}

// View returns a copy of the UTXO view of the pool.
func (m *Mempool) View() utxo.Set {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.view.Clone()
}
