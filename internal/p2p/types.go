package p2p

import (
	"context"

	"github.com/goodnatureofminers/marabu/internal/model"
	"github.com/goodnatureofminers/marabu/internal/node"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Node is the engine behind the message actions.
	Node interface {
		Submit(ctx context.Context, obj model.Object) (node.Result, error)
		Object(id string) ([]byte, error)
		HasObject(id string) (bool, error)
		ChainTip() (string, uint64)
		MempoolTxIDs() []string
		Fetch(ctx context.Context, id string) error
		FetchMany(ctx context.Context, ids []string) error
	}
	Metrics interface {
		ObserveMessage(direction, msgType string)
		SetPeers(n int)
		ObserveDisconnect(reason string)
	}
)
