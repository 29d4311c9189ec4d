// Package chaintest builds signed transactions and mined blocks for tests.
package chaintest

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goodnatureofminers/marabu/internal/model"
)

// EasyTarget is met by about fifteen of sixteen block ids.
const EasyTarget = "f000000000000000000000000000000000000000000000000000000000000000"

// Params are the mainnet constants with EasyTarget.
func Params() model.Params {
	p := model.Mainnet
	p.Name = "test"
	p.Target = EasyTarget
	return p
}

// Key is an ed25519 key pair.
type Key struct {
	Public  ed25519.PublicKey
	Private ed25519.PrivateKey
}

// NewKey derives a deterministic key from name.
func NewKey(name string) Key {
	seed := sha256.Sum256([]byte(name))
	priv := ed25519.NewKeyFromSeed(seed[:])
	return Key{Public: priv.Public().(ed25519.PublicKey), Private: priv}
}

// PubKey returns the hex public key as used in outputs.
func (k Key) PubKey() string {
	return hex.EncodeToString(k.Public)
}

// Coinbase mints value to key at height.
func Coinbase(height uint64, key Key, value uint64) *model.Transaction {
	return &model.Transaction{
		Height:  &height,
		Outputs: []model.Output{{PubKey: key.PubKey(), Value: value}},
	}
}

// Spend builds a transaction spending inputs and signs every input with signer.
func Spend(t testing.TB, signer Key, inputs []model.Outpoint, outputs ...model.Output) *model.Transaction {
	t.Helper()
	tx := &model.Transaction{Outputs: outputs}
	for _, op := range inputs {
		tx.Inputs = append(tx.Inputs, model.Input{Outpoint: op})
	}
	Sign(t, tx, signer)
	return tx
}

// Sign sets every input signature of tx. keys are used per input; a single key signs all inputs.
func Sign(t testing.TB, tx *model.Transaction, keys ...Key) {
	t.Helper()
	payload, err := tx.SigningPayload()
	require.NoError(t, err)
	for i := range tx.Inputs {
		key := keys[0]
		if len(keys) > 1 {
			key = keys[i]
		}
		sig := hex.EncodeToString(ed25519.Sign(key.Private, payload))
		tx.Inputs[i].Sig = &sig
	}
}

// ID returns the object id of obj.
func ID(t testing.TB, obj model.Object) string {
	t.Helper()
	id, err := model.ObjectID(obj)
	require.NoError(t, err)
	return id
}

// Block returns an unmined block on top of parentID.
func Block(parentID string, created uint64, txids ...string) *model.Block {
	if txids == nil {
		txids = []string{}
	}
	return &model.Block{
		TxIDs:   txids,
		PrevID:  &parentID,
		Created: created,
		Target:  EasyTarget,
	}
}

// Mine searches a nonce so that the id of b is below b.Target and returns that id.
func Mine(t testing.TB, b *model.Block) string {
	t.Helper()
	for n := uint64(0); n < 1<<20; n++ {
		b.Nonce = fmt.Sprintf("%064x", n)
		id := ID(t, b)
		if id < b.Target {
			return id
		}
	}
	t.Fatalf("no nonce found for target %s", b.Target)
	return ""
}

// Unmine sets a nonce whose block id does not meet the target and returns that id.
func Unmine(t testing.TB, b *model.Block) string {
	t.Helper()
	for n := uint64(0); n < 1<<20; n++ {
		b.Nonce = fmt.Sprintf("%064x", n)
		id := ID(t, b)
		if id >= b.Target {
			return id
		}
	}
	t.Fatalf("every nonce meets target %s", b.Target)
	return ""
}
