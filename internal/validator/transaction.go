package validator

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"

	"github.com/goodnatureofminers/marabu/internal/model"
	"github.com/goodnatureofminers/marabu/pkg/safe"
)

// ValidateTransaction checks a transaction on its own and returns the fee it pays.
// Coinbase transactions pass with a zero fee; their rules need block context.
// A non-coinbase transaction must spend distinct outpoints of existing transactions, carry a valid
// signature for each input over its signature-nulled form and not create more value than it spends.
func (v *Validator) ValidateTransaction(ctx context.Context, txid string, tx *model.Transaction) (uint64, error) {
	if tx.IsCoinbase() {
		return 0, nil
	}
	if len(tx.Inputs) == 0 {
		return 0, invalidf("transaction %s has no inputs", txid)
	}

	payload, err := tx.SigningPayload()
	if err != nil {
		return 0, invalidf("transaction %s signing payload: %v", txid, err)
	}
	outputSum, err := tx.OutputSum()
	if err != nil {
		return 0, invalidf("transaction %s outputs: %v", txid, err)
	}

	seen := make(map[string]struct{}, len(tx.Inputs))
	var inputSum uint64
	for i, in := range tx.Inputs {
		op := in.Outpoint
		if _, dup := seen[op.ID()]; dup {
			return 0, invalidf("transaction %s input %d spends %s:%d twice", txid, i, op.TxID, op.Index)
		}
		seen[op.ID()] = struct{}{}

		prev, err := v.transaction(ctx, op.TxID)
		if err != nil {
			return 0, err
		}
		if op.Index >= uint64(len(prev.Outputs)) {
			return 0, invalidf("transaction %s input %d: index %d out of range of %s", txid, i, op.Index, op.TxID)
		}
		spent := prev.Outputs[op.Index]

		if err := verify(spent.PubKey, in.Sig, payload); err != nil {
			return 0, invalidf("transaction %s input %d: %v", txid, i, err)
		}
		if inputSum, err = safe.Add(inputSum, spent.Value); err != nil {
			return 0, invalidf("transaction %s inputs: %v", txid, err)
		}
	}

	if inputSum < outputSum {
		return 0, invalidf("transaction %s spends %d but creates %d", txid, inputSum, outputSum)
	}
	return inputSum - outputSum, nil
}

var (
	errMissingSignature = errors.New("missing signature")
	errBadPublicKey     = errors.New("malformed public key")
	errBadSignature     = errors.New("malformed signature")
	errSignatureFailed  = errors.New("signature does not verify")
)

func verify(pubKeyHex string, sigHex *string, payload []byte) error {
	if sigHex == nil {
		return errMissingSignature
	}
	pub, err := hex.DecodeString(pubKeyHex)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return errBadPublicKey
	}
	sig, err := hex.DecodeString(*sigHex)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return errBadSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(pub), payload, sig) {
		return errSignatureFailed
	}
	return nil
}
