package chain

import (
	"github.com/goodnatureofminers/marabu/internal/model"
	"github.com/goodnatureofminers/marabu/internal/utxo"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ObjectStore interface {
		Block(id string) (*model.Block, error)
		Transaction(id string) (*model.Transaction, error)
	}
	UTXOStore interface {
		Get(blockID string) (utxo.Set, error)
	}
	HeightStore interface {
		Get(blockID string) (uint64, error)
		Put(blockID string, height uint64) error
		ForEach(fn func(blockID string, height uint64) error) error
	}
	MempoolStore interface {
		Put(txid string, tx *model.Transaction) error
		Delete(txid string) error
		Clear() error
		List() ([]utxo.Entry, error)
	}
	Metrics interface {
		SetTip(height uint64)
		ObserveReorg(depth int)
		SetMempoolSize(n int)
	}
)
