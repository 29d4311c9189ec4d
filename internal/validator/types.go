package validator

import (
	"context"
	"time"

	"github.com/goodnatureofminers/marabu/internal/model"
	"github.com/goodnatureofminers/marabu/internal/utxo"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ObjectStore interface {
		Has(id string) (bool, error)
		Transaction(id string) (*model.Transaction, error)
		Block(id string) (*model.Block, error)
	}
	UTXOStore interface {
		Get(blockID string) (utxo.Set, error)
	}
	HeightStore interface {
		Get(blockID string) (uint64, error)
	}
	Fetcher interface {
		FetchDependency(ctx context.Context, id string) error
	}
	Clock interface {
		Now() time.Time
	}
)
