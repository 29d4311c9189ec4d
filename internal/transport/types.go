package transport

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Engine is the node state served to operators.
	Engine interface {
		ChainTip() (string, uint64)
		MempoolTxIDs() []string
		Object(id string) ([]byte, error)
	}
	// PeerLister reports connected and known peer addresses.
	PeerLister interface {
		Peers() []string
		KnownPeers() []string
	}
)
