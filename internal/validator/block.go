package validator

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/goodnatureofminers/marabu/internal/model"
	"github.com/goodnatureofminers/marabu/internal/storage"
	"github.com/goodnatureofminers/marabu/internal/utxo"
	"github.com/goodnatureofminers/marabu/pkg/safe"
)

// MaxLabelLength bounds the miner and note fields of a block.
const MaxLabelLength = 128

// BlockResult is the chain state a valid block implies.
type BlockResult struct {
	ParentID string
	Height   uint64
	UTXO     utxo.Set
	Txs      []utxo.Entry
}

// ValidateBlock checks a non-genesis block and derives the UTXO set right after it.
// The result is not persisted; the caller commits it.
func (v *Validator) ValidateBlock(ctx context.Context, id string, b *model.Block) (*BlockResult, error) {
	if err := v.checkHeader(id, b); err != nil {
		return nil, err
	}
	parentID := *b.PrevID

	if err := v.ensureAll(ctx, parentID, b.TxIDs); err != nil {
		return nil, err
	}

	parent, err := v.objects.Block(parentID)
	if errors.Is(err, storage.ErrWrongType) {
		return nil, invalidf("block %s: previd %v", id, err)
	}
	if err != nil {
		return nil, internalf("load parent %s: %v", parentID, err)
	}
	if b.Created <= parent.Created {
		return nil, invalidf("block %s created %d, not after parent %d", id, b.Created, parent.Created)
	}
	parentHeight, err := v.heights.Get(parentID)
	if err != nil {
		return nil, internalf("height of stored block %s: %v", parentID, err)
	}
	parentSet, err := v.utxos.Get(parentID)
	if err != nil {
		return nil, internalf("utxo set of stored block %s: %v", parentID, err)
	}

	txs, err := v.checkTransactions(ctx, id, b, parentHeight+1)
	if err != nil {
		return nil, err
	}

	next, err := utxo.Apply(parentSet, txs...)
	if err != nil {
		return nil, invalidf("block %s: %v", id, err)
	}

	return &BlockResult{
		ParentID: parentID,
		Height:   parentHeight + 1,
		UTXO:     next,
		Txs:      txs,
	}, nil
}

func (v *Validator) checkHeader(id string, b *model.Block) error {
	if b.Target != v.params.Target {
		return invalidf("block %s target %s, want %s", id, b.Target, v.params.Target)
	}
	if id >= b.Target {
		return invalidf("block %s does not meet its target", id)
	}
	if b.PrevID == nil {
		return invalidf("block %s has no previd but is not genesis", id)
	}
	if b.Created > uint64(v.clock.Now().Unix()) {
		return invalidf("block %s created %d is in the future", id, b.Created)
	}
	if b.Miner != nil && !printable(*b.Miner) {
		return invalidf("block %s miner is not printable ASCII of at most %d characters", id, MaxLabelLength)
	}
	if b.Note != nil && !printable(*b.Note) {
		return invalidf("block %s note is not printable ASCII of at most %d characters", id, MaxLabelLength)
	}
	return nil
}

// ensureAll fetches the parent and every transaction concurrently; the first failure cancels the rest.
func (v *Validator) ensureAll(ctx context.Context, parentID string, txids []string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return v.ensure(gctx, parentID)
	})
	for _, txid := range txids {
		g.Go(func() error {
			return v.ensure(gctx, txid)
		})
	}
	return g.Wait()
}

// checkTransactions walks the block's transactions in order and enforces the coinbase and fee rules.
func (v *Validator) checkTransactions(ctx context.Context, id string, b *model.Block, height uint64) ([]utxo.Entry, error) {
	var (
		entries    = make([]utxo.Entry, 0, len(b.TxIDs))
		coinbase   *model.Transaction
		coinbaseID string
		fees       uint64
	)
	for i, txid := range b.TxIDs {
		tx, err := v.transaction(ctx, txid)
		if err != nil {
			return nil, err
		}

		if tx.IsCoinbase() {
			if i != 0 {
				return nil, invalidf("block %s has a coinbase at index %d", id, i)
			}
			coinbase, coinbaseID = tx, txid
		} else {
			for _, in := range tx.Inputs {
				if coinbase != nil && in.Outpoint.TxID == coinbaseID {
					return nil, invalidf("block %s spends its own coinbase in %s", id, txid)
				}
			}
			fee, err := v.ValidateTransaction(ctx, txid, tx)
			if err != nil {
				return nil, err
			}
			if fees, err = safe.Add(fees, fee); err != nil {
				return nil, invalidf("block %s fees: %v", id, err)
			}
		}
		entries = append(entries, utxo.Entry{ID: txid, Tx: tx})
	}

	if coinbase == nil {
		return entries, nil
	}
	if len(coinbase.Outputs) != 1 {
		return nil, invalidf("coinbase %s has %d outputs, want 1", coinbaseID, len(coinbase.Outputs))
	}
	if *coinbase.Height != height {
		return nil, invalidf("coinbase %s height %d, want %d", coinbaseID, *coinbase.Height, height)
	}
	limit, err := safe.Add(fees, v.params.BlockReward)
	if err != nil {
		return nil, invalidf("block %s reward: %v", id, err)
	}
	if coinbase.Outputs[0].Value > limit {
		return nil, invalidf("coinbase %s mints %d, limit %d", coinbaseID, coinbase.Outputs[0].Value, limit)
	}
	return entries, nil
}

func printable(s string) bool {
	if len(s) > MaxLabelLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
