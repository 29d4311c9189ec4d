package fetcher

import "time"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Broadcaster asks connected peers for an object.
	Broadcaster interface {
		RequestObject(id string)
	}
	// Checker reports whether an object is already stored.
	Checker interface {
		Has(id string) (bool, error)
	}
	Metrics interface {
		ObserveFetch(status string, started time.Time)
		SetPending(n int)
	}
)
