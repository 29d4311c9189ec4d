package node

import (
	"context"
	"time"

	"github.com/goodnatureofminers/marabu/internal/model"
	"github.com/goodnatureofminers/marabu/internal/utxo"
	"github.com/goodnatureofminers/marabu/internal/validator"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ObjectStore interface {
		Has(id string) (bool, error)
		Raw(id string) ([]byte, error)
		Put(obj model.Object) (string, error)
	}
	UTXOStore interface {
		Has(blockID string) (bool, error)
		Put(blockID string, set utxo.Set) error
	}
	HeightStore interface {
		Put(blockID string, height uint64) error
	}
	Validator interface {
		ValidateTransaction(ctx context.Context, txid string, tx *model.Transaction) (uint64, error)
		ValidateBlock(ctx context.Context, id string, b *model.Block) (*validator.BlockResult, error)
	}
	Chain interface {
		Init() error
		Tip() (string, uint64)
		RecordHeight(id string, b *model.Block) (uint64, error)
		Promote(id string, b *model.Block, height uint64) (bool, error)
	}
	Mempool interface {
		Admit(e utxo.Entry) (bool, error)
		TxIDs() []string
	}
	Fetcher interface {
		Fetch(ctx context.Context, id string) error
		Dependency(id string) bool
		Received(id string)
		Notify(id string)
		Fail(id string)
		Abandon(id string)
	}
	Metrics interface {
		ObserveSubmit(kind, result string, started time.Time)
	}
)
