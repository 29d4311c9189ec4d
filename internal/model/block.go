package model

import (
	"encoding/json"
	"fmt"
)

// Block orders transactions by id and links to its parent. PrevID is nil only for genesis.
type Block struct {
	TxIDs   []string
	Nonce   string
	PrevID  *string
	Created uint64
	Target  string
	Miner   *string
	Note    *string
}

// ObjectType implements Object.
func (b *Block) ObjectType() ObjectType { return TypeBlock }

// IsGenesis reports whether the block has no parent.
func (b *Block) IsGenesis() bool { return b.PrevID == nil }

type blockJSON struct {
	Type    ObjectType `json:"type"`
	TxIDs   []string   `json:"txids"`
	Nonce   string     `json:"nonce"`
	PrevID  *string    `json:"previd"`
	Created uint64     `json:"created"`
	Target  string     `json:"T"`
	Miner   *string    `json:"miner,omitempty"`
	Note    *string    `json:"note,omitempty"`
}

// MarshalJSON emits the block with its type tag; absent miner/note stay absent.
func (b Block) MarshalJSON() ([]byte, error) {
	txids := b.TxIDs
	if txids == nil {
		txids = []string{}
	}
	return json.Marshal(blockJSON{
		Type:    TypeBlock,
		TxIDs:   txids,
		Nonce:   b.Nonce,
		PrevID:  b.PrevID,
		Created: b.Created,
		Target:  b.Target,
		Miner:   b.Miner,
		Note:    b.Note,
	})
}

// UnmarshalJSON accepts the exact block shape.
func (b *Block) UnmarshalJSON(data []byte) error {
	fields, err := exactFields(data, []string{"type", "txids", "nonce", "previd", "created", "T"}, "miner", "note")
	if err != nil {
		return err
	}
	if err := checkType(fields, TypeBlock); err != nil {
		return err
	}

	decoded := Block{}
	items, err := decodeArray(fields["txids"])
	if err != nil {
		return fmt.Errorf("txids: %w", err)
	}
	decoded.TxIDs = make([]string, 0, len(items))
	for i, raw := range items {
		txid, err := decodeHex(raw, 64)
		if err != nil {
			return fmt.Errorf("txid %d: %w", i, err)
		}
		decoded.TxIDs = append(decoded.TxIDs, txid)
	}

	if decoded.Nonce, err = decodeHex(fields["nonce"], 64); err != nil {
		return fmt.Errorf("nonce: %w", err)
	}
	if decoded.Target, err = decodeHex(fields["T"], 64); err != nil {
		return fmt.Errorf("T: %w", err)
	}
	if decoded.Created, err = decodeUint(fields["created"]); err != nil {
		return fmt.Errorf("created: %w", err)
	}

	if decoded.PrevID, err = decodeNullableString(fields["previd"]); err != nil {
		return fmt.Errorf("previd: %w", err)
	}
	if decoded.PrevID != nil && !IsHex(*decoded.PrevID, 64) {
		return malformedf("previd %q is not an object id", *decoded.PrevID)
	}

	if raw, ok := fields["miner"]; ok {
		miner, err := decodeString(raw)
		if err != nil {
			return fmt.Errorf("miner: %w", err)
		}
		decoded.Miner = &miner
	}
	if raw, ok := fields["note"]; ok {
		note, err := decodeString(raw)
		if err != nil {
			return fmt.Errorf("note: %w", err)
		}
		decoded.Note = &note
	}

	*b = decoded
	return nil
}
