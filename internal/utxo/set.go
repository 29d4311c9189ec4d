// Package utxo derives unspent output sets from ordered transactions.
package utxo

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goodnatureofminers/marabu/internal/model"
)

// ErrInconsistent means a transaction spends an outpoint missing from the working set.
var ErrInconsistent = errors.New("utxo set inconsistent")

// Set holds outpoint ids. Membership is by id so two equal outpoints are one element.
type Set map[string]struct{}

// Entry pairs a transaction with its object id.
type Entry struct {
	ID string
	Tx *model.Transaction
}

// New builds a set from outpoint ids.
func New(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether the outpoint is unspent.
func (s Set) Has(op model.Outpoint) bool {
	_, ok := s[op.ID()]
	return ok
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// IDs returns the outpoint ids in sorted order.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Spend removes every input of e.Tx and adds its outputs. On error s is left partially updated.
func (s Set) Spend(e Entry) error {
	for _, in := range e.Tx.Inputs {
		id := in.Outpoint.ID()
		if _, ok := s[id]; !ok {
			return fmt.Errorf("%w: tx %s spends %s:%d", ErrInconsistent, e.ID, in.Outpoint.TxID, in.Outpoint.Index)
		}
		delete(s, id)
	}
	for i := range e.Tx.Outputs {
		s[model.Outpoint{TxID: e.ID, Index: uint64(i)}.ID()] = struct{}{}
	}
	return nil
}

// Apply spends entries in order on a copy of base. base is never modified.
func Apply(base Set, entries ...Entry) (Set, error) {
	next := base.Clone()
	for _, e := range entries {
		if err := next.Spend(e); err != nil {
			return nil, err
		}
	}
	return next, nil
}
