// Package model defines the objects exchanged, validated and stored by the node.
package model

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/gowebpki/jcs"
)

// ObjectType is the value of the "type" key of every object.
type ObjectType string

var (
	// TypeBlock marks a block object.
	TypeBlock ObjectType = "block"
	// TypeTransaction marks a coinbase or non-coinbase transaction object.
	TypeTransaction ObjectType = "transaction"
)

// MaxSafeInteger bounds every integer field so canonical encoding stays exact.
const MaxSafeInteger = 1<<53 - 1

// ErrMalformed marks a structural rejection: wrong shape, wrong literal type or unknown keys.
var ErrMalformed = errors.New("malformed object")

// Object is a block or a transaction.
type Object interface {
	ObjectType() ObjectType
}

// Canonicalize returns the key-sorted, whitespace-free JSON encoding of v.
func Canonicalize(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal object: %w", err)
	}
	out, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("canonicalize object: %w", err)
	}
	return out, nil
}

// ObjectID returns the hex SHA-256 digest of the canonical encoding of v.
func ObjectID(v any) (string, error) {
	data, err := Canonicalize(v)
	if err != nil {
		return "", err
	}
	return HashID(data), nil
}

// HashID returns the hex SHA-256 digest of already canonical bytes.
func HashID(canonical []byte) string {
	return hex.EncodeToString(chainhash.HashB(canonical))
}

// ParseObject decodes a block or a transaction, enforcing the exact shape of each.
func ParseObject(data []byte) (Object, error) {
	var head struct {
		Type ObjectType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, malformed(err)
	}

	switch head.Type {
	case TypeBlock:
		b := &Block{}
		if err := json.Unmarshal(data, b); err != nil {
			return nil, malformed(err)
		}
		return b, nil
	case TypeTransaction:
		tx := &Transaction{}
		if err := json.Unmarshal(data, tx); err != nil {
			return nil, malformed(err)
		}
		return tx, nil
	default:
		return nil, fmt.Errorf("%w: unknown object type %q", ErrMalformed, head.Type)
	}
}

func malformed(err error) error {
	if errors.Is(err, ErrMalformed) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrMalformed, err)
}

func malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformed}, args...)...)
}

// IsHex reports whether s is exactly n lowercase hex characters.
func IsHex(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
