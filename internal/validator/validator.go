// Package validator checks transactions and blocks against the consensus rules.
package validator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/marabu/internal/fetcher"
	"github.com/goodnatureofminers/marabu/internal/model"
	"github.com/goodnatureofminers/marabu/internal/storage"
)

var (
	// ErrInvalid marks a rejection caused by the object itself or its sender.
	ErrInvalid = errors.New("invalid object")
	// ErrInternal marks a broken local invariant, such as a stored block without UTXO set or height.
	ErrInternal = errors.New("internal validation error")
)

// Validator checks objects against the rules of params, fetching missing dependencies on the way.
type Validator struct {
	params  model.Params
	objects ObjectStore
	utxos   UTXOStore
	heights HeightStore
	fetcher Fetcher
	clock   Clock
	logger  *zap.Logger
}

// New constructs a Validator.
func New(
	params model.Params,
	objects ObjectStore,
	utxos UTXOStore,
	heights HeightStore,
	fetcher Fetcher,
	clock Clock,
	logger *zap.Logger,
) *Validator {
	return &Validator{
		params:  params,
		objects: objects,
		utxos:   utxos,
		heights: heights,
		fetcher: fetcher,
		clock:   clock,
		logger:  logger.Named("validator"),
	}
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

func internalf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInternal}, args...)...)
}

// ensure makes id locally available, fetching it when missing.
func (v *Validator) ensure(ctx context.Context, id string) error {
	ok, err := v.objects.Has(id)
	if err != nil {
		return internalf("check object %s: %v", id, err)
	}
	if ok {
		return nil
	}

	v.logger.Debug("dependency missing, fetching", zap.String("id", id))
	err = v.fetcher.FetchDependency(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fetcher.ErrTimeout), errors.Is(err, fetcher.ErrRejected):
		return invalidf("dependency %s unavailable: %v", id, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("fetch dependency %s: %w", id, err)
	default:
		return internalf("fetch dependency %s: %v", id, err)
	}
}

func (v *Validator) transaction(ctx context.Context, id string) (*model.Transaction, error) {
	if err := v.ensure(ctx, id); err != nil {
		return nil, err
	}
	tx, err := v.objects.Transaction(id)
	if storage.IsNotFound(err) {
		return nil, internalf("transaction %s vanished after fetch", id)
	}
	if errors.Is(err, storage.ErrWrongType) {
		return nil, invalidf("%v", err)
	}
	if err != nil {
		return nil, internalf("load transaction %s: %v", id, err)
	}
	return tx, nil
}
