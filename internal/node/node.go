// Package node ties validation, storage and chain state together behind a single commit lock.
package node

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/goodnatureofminers/marabu/internal/model"
	"github.com/goodnatureofminers/marabu/internal/utxo"
	"github.com/goodnatureofminers/marabu/internal/validator"
	"github.com/goodnatureofminers/marabu/pkg/workerpool"
)

// Result is the outcome of submitting an object.
type Result int

const (
	// Rejected objects failed validation and were not stored.
	Rejected Result = iota
	// Exists means the object was already stored.
	Exists
	// Accepted objects were validated and newly stored.
	Accepted
)

func (r Result) String() string {
	switch r {
	case Rejected:
		return "rejected"
	case Exists:
		return "exists"
	case Accepted:
		return "accepted"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// DefaultFetchWorkers bounds concurrent fetches started by FetchMany.
const DefaultFetchWorkers = 8

// Stores groups the persistent stores the node writes to.
type Stores struct {
	Objects ObjectStore
	UTXOs   UTXOStore
	Heights HeightStore
}

// Node validates submitted objects and commits them.
// Validation runs concurrently and may wait on fetches; commits are serialized by commit.
type Node struct {
	params    model.Params
	stores    Stores
	validator Validator
	chain     Chain
	mempool   Mempool
	fetcher   Fetcher
	metrics   Metrics
	logger    *zap.Logger

	commit *semaphore.Weighted
}

// New constructs a Node.
func New(
	params model.Params,
	stores Stores,
	v Validator,
	chain Chain,
	mempool Mempool,
	fetcher Fetcher,
	metrics Metrics,
	logger *zap.Logger,
) *Node {
	return &Node{
		params:    params,
		stores:    stores,
		validator: v,
		chain:     chain,
		mempool:   mempool,
		fetcher:   fetcher,
		metrics:   metrics,
		logger:    logger.Named("node"),
		commit:    semaphore.NewWeighted(1),
	}
}

// Init checks the network constants, seeds genesis and restores the chain state.
func (n *Node) Init(ctx context.Context) error {
	if err := n.params.Check(); err != nil {
		return fmt.Errorf("check %s params: %w", n.params.Name, err)
	}
	if err := n.commit.Acquire(ctx, 1); err != nil {
		return err
	}
	defer n.commit.Release(1)

	genesisID := n.params.GenesisID
	ok, err := n.stores.Objects.Has(genesisID)
	if err != nil {
		return fmt.Errorf("check genesis: %w", err)
	}
	if !ok {
		id, err := n.stores.Objects.Put(n.params.GenesisBlock())
		if err != nil {
			return fmt.Errorf("store genesis: %w", err)
		}
		if id != genesisID {
			return fmt.Errorf("stored genesis as %s, want %s", id, genesisID)
		}
	}
	if ok, err = n.stores.UTXOs.Has(genesisID); err != nil {
		return fmt.Errorf("check genesis utxo set: %w", err)
	}
	if !ok {
		if err := n.stores.UTXOs.Put(genesisID, utxo.New()); err != nil {
			return fmt.Errorf("store genesis utxo set: %w", err)
		}
	}
	if err := n.stores.Heights.Put(genesisID, 0); err != nil {
		return fmt.Errorf("store genesis height: %w", err)
	}

	if err := n.chain.Init(); err != nil {
		return fmt.Errorf("init chain: %w", err)
	}
	tip, height := n.chain.Tip()
	n.logger.Info("node initialized",
		zap.String("network", n.params.Name),
		zap.String("genesis", genesisID),
		zap.String("tip", tip),
		zap.Uint64("height", height),
	)
	return nil
}

// Submit validates obj and stores it when valid and new.
// A non-nil error always comes with Rejected; it wraps validator.ErrInvalid when the sender is at fault.
func (n *Node) Submit(ctx context.Context, obj model.Object) (res Result, err error) {
	started := time.Now()
	kind := string(obj.ObjectType())
	id, err := model.ObjectID(obj)
	if err != nil {
		n.metrics.ObserveSubmit(kind, Rejected.String(), started)
		return Rejected, fmt.Errorf("%w: %v", validator.ErrInvalid, err)
	}
	defer func() {
		if r := recover(); r != nil {
			res, err = n.reject(id, fmt.Errorf("%w: panic during validation: %v", validator.ErrInternal, r))
		}
		n.metrics.ObserveSubmit(kind, res.String(), started)
	}()

	n.fetcher.Received(id)

	ok, err := n.stores.Objects.Has(id)
	if err != nil {
		return n.reject(id, fmt.Errorf("%w: check object: %v", validator.ErrInternal, err))
	}
	if ok {
		return Exists, nil
	}

	switch o := obj.(type) {
	case *model.Transaction:
		res, err = n.submitTransaction(ctx, id, o)
	case *model.Block:
		res, err = n.submitBlock(ctx, id, o)
	default:
		err = fmt.Errorf("%w: unsupported object type %q", validator.ErrInvalid, kind)
	}
	if err != nil {
		return n.reject(id, err)
	}
	return res, nil
}

// reject settles a delivery of id that was not stored. Only an invalid verdict fails the validations
// waiting for id; after a context or internal error they keep waiting for another delivery.
func (n *Node) reject(id string, err error) (Result, error) {
	if errors.Is(err, validator.ErrInvalid) {
		n.fetcher.Fail(id)
	} else {
		n.fetcher.Abandon(id)
	}
	if errors.Is(err, validator.ErrInternal) {
		n.logger.Error("object rejected on internal error", zap.String("id", id), zap.Error(err))
	} else {
		n.logger.Warn("object rejected", zap.String("id", id), zap.Error(err))
	}
	return Rejected, err
}

func (n *Node) submitTransaction(ctx context.Context, id string, tx *model.Transaction) (Result, error) {
	if _, err := n.validator.ValidateTransaction(ctx, id, tx); err != nil {
		return Rejected, err
	}

	if err := n.commit.Acquire(ctx, 1); err != nil {
		return Rejected, err
	}
	defer n.commit.Release(1)

	if ok, err := n.stores.Objects.Has(id); err != nil {
		return Rejected, fmt.Errorf("%w: check object: %v", validator.ErrInternal, err)
	} else if ok {
		return Exists, nil
	}

	// A transaction a block validation is waiting for skips the pool.
	if !tx.IsCoinbase() && !n.fetcher.Dependency(id) {
		admitted, err := n.mempool.Admit(utxo.Entry{ID: id, Tx: tx})
		if err != nil {
			return Rejected, fmt.Errorf("%w: admit to mempool: %v", validator.ErrInternal, err)
		}
		if !admitted {
			return Rejected, fmt.Errorf("%w: transaction %s conflicts with the mempool", validator.ErrInvalid, id)
		}
	}

	if _, err := n.stores.Objects.Put(tx); err != nil {
		return Rejected, fmt.Errorf("%w: store transaction: %v", validator.ErrInternal, err)
	}
	n.logger.Debug("transaction accepted", zap.String("id", id), zap.Bool("coinbase", tx.IsCoinbase()))
	return Accepted, nil
}

func (n *Node) submitBlock(ctx context.Context, id string, b *model.Block) (Result, error) {
	if b.IsGenesis() && id != n.params.GenesisID {
		return Rejected, fmt.Errorf("%w: block %s has no previd but is not genesis", validator.ErrInvalid, id)
	}
	result, err := n.validator.ValidateBlock(ctx, id, b)
	if err != nil {
		return Rejected, err
	}

	if err := n.commit.Acquire(ctx, 1); err != nil {
		return Rejected, err
	}
	defer n.commit.Release(1)

	if ok, err := n.stores.Objects.Has(id); err != nil {
		return Rejected, fmt.Errorf("%w: check object: %v", validator.ErrInternal, err)
	} else if ok {
		return Exists, nil
	}

	// UTXO set and height go first: storing the block wakes validations of its children.
	if err := n.stores.UTXOs.Put(id, result.UTXO); err != nil {
		return Rejected, fmt.Errorf("%w: store utxo set: %v", validator.ErrInternal, err)
	}
	height, err := n.chain.RecordHeight(id, b)
	if err != nil {
		return Rejected, fmt.Errorf("%w: record height: %v", validator.ErrInternal, err)
	}
	if _, err := n.stores.Objects.Put(b); err != nil {
		return Rejected, fmt.Errorf("%w: store block: %v", validator.ErrInternal, err)
	}
	moved, err := n.chain.Promote(id, b, height)
	if err != nil {
		// The block is stored and valid; only the tip bookkeeping failed.
		n.logger.Error("promote block", zap.String("id", id), zap.Error(err))
		return Accepted, nil
	}
	n.logger.Info("block accepted",
		zap.String("id", id),
		zap.Uint64("height", height),
		zap.Int("txs", len(b.TxIDs)),
		zap.Bool("tip", moved),
	)
	return Accepted, nil
}

// Object returns the canonical encoding of a stored object.
func (n *Node) Object(id string) ([]byte, error) {
	return n.stores.Objects.Raw(id)
}

// HasObject reports whether id is stored.
func (n *Node) HasObject(id string) (bool, error) {
	return n.stores.Objects.Has(id)
}

// ChainTip returns the id and height of the best chain tip.
func (n *Node) ChainTip() (string, uint64) {
	return n.chain.Tip()
}

// MempoolTxIDs returns the pending transaction ids in arrival order.
func (n *Node) MempoolTxIDs() []string {
	return n.mempool.TxIDs()
}

// Fetch requests id unless it is stored and waits for it.
func (n *Node) Fetch(ctx context.Context, id string) error {
	ok, err := n.stores.Objects.Has(id)
	if err != nil {
		return fmt.Errorf("check object %s: %w", id, err)
	}
	if ok {
		return nil
	}
	return n.fetcher.Fetch(ctx, id)
}

// FetchMany fetches every missing id concurrently. It returns the joined errors of failed fetches.
func (n *Node) FetchMany(ctx context.Context, ids []string) error {
	return workerpool.Process(ctx, DefaultFetchWorkers, ids, n.Fetch)
}
