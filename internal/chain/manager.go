// Package chain tracks block heights and the best chain tip and keeps the mempool in step with it.
package chain

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/marabu/internal/model"
	"github.com/goodnatureofminers/marabu/internal/utxo"
)

// Manager owns the chain tip. The tip moves only to a block of strictly greater height,
// so the first block seen at a height keeps priority.
type Manager struct {
	params  model.Params
	objects ObjectStore
	heights HeightStore
	mempool *Mempool
	metrics Metrics
	logger  *zap.Logger

	mu        sync.RWMutex
	tipID     string
	tipHeight uint64
}

// NewManager constructs a Manager whose tip is genesis until Init or AddBlock moves it.
func NewManager(params model.Params, objects ObjectStore, heights HeightStore, mempool *Mempool, metrics Metrics, logger *zap.Logger) *Manager {
	return &Manager{
		params:  params,
		objects: objects,
		heights: heights,
		mempool: mempool,
		metrics: metrics,
		logger:  logger.Named("chain"),
		tipID:   params.GenesisID,
	}
}

// Init restores the tip from the persisted heights and reloads the mempool on top of it.
// Among blocks of the greatest height the first in id order wins.
func (m *Manager) Init() error {
	tipID, tipHeight := m.params.GenesisID, uint64(0)
	err := m.heights.ForEach(func(blockID string, height uint64) error {
		if height > tipHeight {
			tipID, tipHeight = blockID, height
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan block heights: %w", err)
	}

	m.mu.Lock()
	m.tipID, m.tipHeight = tipID, tipHeight
	m.mu.Unlock()
	m.metrics.SetTip(tipHeight)

	if err := m.mempool.Load(tipID); err != nil {
		return fmt.Errorf("load mempool: %w", err)
	}
	m.logger.Info("chain restored",
		zap.String("tip", tipID),
		zap.Uint64("height", tipHeight),
		zap.Int("mempool", len(m.mempool.TxIDs())),
	)
	return nil
}

// Tip returns the current tip id and height.
func (m *Manager) Tip() (string, uint64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tipID, m.tipHeight
}

// Height returns the persisted height of blockID.
func (m *Manager) Height(blockID string) (uint64, error) {
	return m.heights.Get(blockID)
}

// Mempool returns the pool kept in step with the tip.
func (m *Manager) Mempool() *Mempool {
	return m.mempool
}

// AddBlock records the height of a validated, stored block and promotes it.
func (m *Manager) AddBlock(id string, b *model.Block) (bool, error) {
	height, err := m.RecordHeight(id, b)
	if err != nil {
		return false, err
	}
	return m.Promote(id, b, height)
}

// RecordHeight persists height(b) = height(parent) + 1 and returns it.
func (m *Manager) RecordHeight(id string, b *model.Block) (uint64, error) {
	if b.PrevID == nil {
		return 0, fmt.Errorf("block %s has no parent", id)
	}
	parentHeight, err := m.heights.Get(*b.PrevID)
	if err != nil {
		return 0, fmt.Errorf("height of parent %s: %w", *b.PrevID, err)
	}
	height := parentHeight + 1
	if err := m.heights.Put(id, height); err != nil {
		return 0, fmt.Errorf("store height of %s: %w", id, err)
	}
	return height, nil
}

// Promote makes the stored block id the tip when it is higher than the current tip, extending or
// reorganizing the mempool accordingly. It reports whether the tip moved.
func (m *Manager) Promote(id string, b *model.Block, height uint64) (bool, error) {
	oldID, oldHeight := m.Tip()
	if height <= oldHeight {
		return false, nil
	}

	if *b.PrevID == oldID {
		if err := m.extend(id, b); err != nil {
			return false, err
		}
	} else if err := m.reorganize(oldID, id); err != nil {
		return false, err
	}

	m.mu.Lock()
	m.tipID, m.tipHeight = id, height
	m.mu.Unlock()
	m.metrics.SetTip(height)
	m.logger.Info("new chain tip", zap.String("tip", id), zap.Uint64("height", height))
	return true, nil
}

func (m *Manager) extend(id string, b *model.Block) error {
	if err := m.mempool.Remove(b.TxIDs...); err != nil {
		return err
	}
	return m.mempool.Reset(id, nil)
}

func (m *Manager) reorganize(oldTip, newTip string) error {
	ancestor, abandoned, adopted, err := m.fork(oldTip, newTip)
	if err != nil {
		return fmt.Errorf("find fork of %s and %s: %w", oldTip, newTip, err)
	}

	confirmed := make(map[string]struct{})
	var confirmedIDs []string
	for _, b := range adopted {
		for _, txid := range b.TxIDs {
			confirmed[txid] = struct{}{}
			confirmedIDs = append(confirmedIDs, txid)
		}
	}

	// Oldest abandoned block first so spends follow the transactions they spend.
	var displaced []utxo.Entry
	for i := len(abandoned) - 1; i >= 0; i-- {
		for _, txid := range abandoned[i].TxIDs {
			if _, ok := confirmed[txid]; ok {
				continue
			}
			tx, err := m.objects.Transaction(txid)
			if err != nil {
				return fmt.Errorf("load displaced tx %s: %w", txid, err)
			}
			if tx.IsCoinbase() {
				continue
			}
			displaced = append(displaced, utxo.Entry{ID: txid, Tx: tx})
		}
	}

	if err := m.mempool.Remove(confirmedIDs...); err != nil {
		return err
	}
	if err := m.mempool.Reset(newTip, displaced); err != nil {
		return err
	}

	m.metrics.ObserveReorg(len(abandoned))
	m.logger.Info("chain reorganized",
		zap.String("old_tip", oldTip),
		zap.String("new_tip", newTip),
		zap.String("ancestor", ancestor),
		zap.Int("abandoned_blocks", len(abandoned)),
		zap.Int("displaced_txs", len(displaced)),
	)
	return nil
}

// fork walks both tips back to their lowest common ancestor. abandoned and adopted list the blocks
// strictly above the ancestor on the old and new branch, tip first.
func (m *Manager) fork(oldTip, newTip string) (string, []*model.Block, []*model.Block, error) {
	type cursor struct {
		id     string
		height uint64
		blocks []*model.Block
	}
	load := func(id string) (cursor, error) {
		h, err := m.heights.Get(id)
		if err != nil {
			return cursor{}, fmt.Errorf("height of %s: %w", id, err)
		}
		return cursor{id: id, height: h}, nil
	}
	step := func(c *cursor) error {
		b, err := m.objects.Block(c.id)
		if err != nil {
			return fmt.Errorf("load block %s: %w", c.id, err)
		}
		if b.PrevID == nil {
			return fmt.Errorf("walked past genesis at %s", c.id)
		}
		c.blocks = append(c.blocks, b)
		c.id = *b.PrevID
		c.height--
		return nil
	}

	a, err := load(oldTip)
	if err != nil {
		return "", nil, nil, err
	}
	b, err := load(newTip)
	if err != nil {
		return "", nil, nil, err
	}
	for a.height > b.height {
		if err := step(&a); err != nil {
			return "", nil, nil, err
		}
	}
	for b.height > a.height {
		if err := step(&b); err != nil {
			return "", nil, nil, err
		}
	}
	for a.id != b.id {
		if err := step(&a); err != nil {
			return "", nil, nil, err
		}
		if err := step(&b); err != nil {
			return "", nil, nil, err
		}
	}
	return a.id, a.blocks, b.blocks, nil
}
