package model

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/goodnatureofminers/marabu/pkg/safe"
)

// Outpoint references one output of a prior transaction.
type Outpoint struct {
	TxID  string `json:"txid"`
	Index uint64 `json:"index"`
}

// ID returns the object id of the outpoint, the element key of a UTXO set.
func (o Outpoint) ID() string {
	// Same bytes Canonicalize produces: keys sorted, txid is plain hex.
	canonical := `{"index":` + strconv.FormatUint(o.Index, 10) + `,"txid":"` + o.TxID + `"}`
	return HashID([]byte(canonical))
}

// Input spends an outpoint. Sig is nil only in the signature-nulled form.
type Input struct {
	Outpoint Outpoint `json:"outpoint"`
	Sig      *string  `json:"sig"`
}

// Output assigns value to a public key.
type Output struct {
	PubKey string `json:"pubkey"`
	Value  uint64 `json:"value"`
}

// Transaction is either a coinbase ({height, outputs}) or a non-coinbase ({inputs, outputs}).
type Transaction struct {
	Height  *uint64
	Inputs  []Input
	Outputs []Output
}

// ObjectType implements Object.
func (t *Transaction) ObjectType() ObjectType { return TypeTransaction }

// IsCoinbase reports whether the transaction mints value instead of spending outpoints.
func (t *Transaction) IsCoinbase() bool { return t.Height != nil }

// SignatureNulled returns a copy with every input signature replaced by null.
func (t *Transaction) SignatureNulled() *Transaction {
	nulled := &Transaction{
		Height:  t.Height,
		Inputs:  make([]Input, len(t.Inputs)),
		Outputs: t.Outputs,
	}
	for i, in := range t.Inputs {
		nulled.Inputs[i] = Input{Outpoint: in.Outpoint}
	}
	return nulled
}

// SigningPayload returns the exact bytes every input signature covers.
func (t *Transaction) SigningPayload() ([]byte, error) {
	return Canonicalize(t.SignatureNulled())
}

// OutputSum adds up the output values.
func (t *Transaction) OutputSum() (uint64, error) {
	return safe.Sum(t.Outputs, func(o Output) uint64 { return o.Value })
}

type coinbaseJSON struct {
	Type    ObjectType `json:"type"`
	Height  uint64     `json:"height"`
	Outputs []Output   `json:"outputs"`
}

type spendJSON struct {
	Type    ObjectType `json:"type"`
	Inputs  []Input    `json:"inputs"`
	Outputs []Output   `json:"outputs"`
}

// MarshalJSON emits the shape matching the transaction kind.
func (t Transaction) MarshalJSON() ([]byte, error) {
	outputs := t.Outputs
	if outputs == nil {
		outputs = []Output{}
	}
	if t.IsCoinbase() {
		return json.Marshal(coinbaseJSON{Type: TypeTransaction, Height: *t.Height, Outputs: outputs})
	}
	inputs := t.Inputs
	if inputs == nil {
		inputs = []Input{}
	}
	return json.Marshal(spendJSON{Type: TypeTransaction, Inputs: inputs, Outputs: outputs})
}

// UnmarshalJSON accepts exactly one of the two transaction shapes.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(data, &shape); err != nil {
		return malformed(err)
	}
	_, hasHeight := shape["height"]
	_, hasInputs := shape["inputs"]

	var (
		fields map[string]json.RawMessage
		err    error
	)
	switch {
	case hasHeight && !hasInputs:
		fields, err = exactFields(data, []string{"type", "height", "outputs"})
	case hasInputs && !hasHeight:
		fields, err = exactFields(data, []string{"type", "inputs", "outputs"})
	default:
		return malformedf("transaction must carry exactly one of height or inputs")
	}
	if err != nil {
		return err
	}
	if err := checkType(fields, TypeTransaction); err != nil {
		return err
	}

	decoded := Transaction{}
	if hasHeight {
		height, err := decodeUint(fields["height"])
		if err != nil {
			return fmt.Errorf("height: %w", err)
		}
		decoded.Height = &height
	} else {
		items, err := decodeArray(fields["inputs"])
		if err != nil {
			return fmt.Errorf("inputs: %w", err)
		}
		if len(items) == 0 {
			return malformedf("non-coinbase transaction without inputs")
		}
		decoded.Inputs = make([]Input, 0, len(items))
		for i, raw := range items {
			in, err := decodeInput(raw)
			if err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			decoded.Inputs = append(decoded.Inputs, in)
		}
	}

	items, err := decodeArray(fields["outputs"])
	if err != nil {
		return fmt.Errorf("outputs: %w", err)
	}
	decoded.Outputs = make([]Output, 0, len(items))
	for i, raw := range items {
		out, err := decodeOutput(raw)
		if err != nil {
			return fmt.Errorf("output %d: %w", i, err)
		}
		decoded.Outputs = append(decoded.Outputs, out)
	}

	*t = decoded
	return nil
}

func decodeInput(raw json.RawMessage) (Input, error) {
	fields, err := exactFields(raw, []string{"outpoint", "sig"})
	if err != nil {
		return Input{}, err
	}
	outpointFields, err := exactFields(fields["outpoint"], []string{"txid", "index"})
	if err != nil {
		return Input{}, err
	}
	txid, err := decodeHex(outpointFields["txid"], 64)
	if err != nil {
		return Input{}, err
	}
	index, err := decodeUint(outpointFields["index"])
	if err != nil {
		return Input{}, err
	}
	sig, err := decodeHex(fields["sig"], 128)
	if err != nil {
		return Input{}, err
	}
	return Input{Outpoint: Outpoint{TxID: txid, Index: index}, Sig: &sig}, nil
}

func decodeOutput(raw json.RawMessage) (Output, error) {
	fields, err := exactFields(raw, []string{"pubkey", "value"})
	if err != nil {
		return Output{}, err
	}
	pubkey, err := decodeHex(fields["pubkey"], 64)
	if err != nil {
		return Output{}, err
	}
	value, err := decodeUint(fields["value"])
	if err != nil {
		return Output{}, err
	}
	return Output{PubKey: pubkey, Value: value}, nil
}
