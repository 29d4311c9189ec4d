// Package p2p speaks the newline-delimited JSON peer protocol and dispatches messages to the node.
package p2p

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/goodnatureofminers/marabu/internal/model"
)

// Message types.
const (
	TypeHello       = "hello"
	TypeError       = "error"
	TypeGetPeers    = "getpeers"
	TypePeers       = "peers"
	TypeGetObject   = "getobject"
	TypeIHaveObject = "ihaveobject"
	TypeObject      = "object"
	TypeGetChainTip = "getchaintip"
	TypeChainTip    = "chaintip"
	TypeGetMempool  = "getmempool"
	TypeMempool     = "mempool"
)

const (
	// Version is announced in hello.
	Version = "0.8.0"
	// DefaultAgent is announced in hello when none is configured.
	DefaultAgent = "marabud 0.8"
	// MaxMessageSize bounds a single line.
	MaxMessageSize = 1 << 20
)

var acceptedVersion = regexp.MustCompile(`^0\.8\.\d+$`)

// ErrInvalidMessage marks a line that is not a well-formed protocol message.
var ErrInvalidMessage = errors.New("invalid message")

// requiredKeys lists the keys besides "type" each message carries.
var requiredKeys = map[string][]string{
	TypeHello:       {"version"},
	TypeError:       {"error"},
	TypeGetPeers:    nil,
	TypePeers:       {"peers"},
	TypeGetObject:   {"objectid"},
	TypeIHaveObject: {"objectid"},
	TypeObject:      {"object"},
	TypeGetChainTip: nil,
	TypeChainTip:    {"blockid"},
	TypeGetMempool:  nil,
	TypeMempool:     {"txids"},
}

var optionalKeys = map[string][]string{
	TypeHello: {"agent"},
}

// Message is any protocol message. Only the fields of its Type are meaningful.
type Message struct {
	Type     string
	Version  string
	Agent    string
	Error    string
	Peers    []string
	ObjectID string
	Object   json.RawMessage
	BlockID  string
	TxIDs    []string
}

// Hello announces the protocol version.
func Hello(agent string) Message {
	return Message{Type: TypeHello, Version: Version, Agent: agent}
}

// Errorf builds an error message.
func Errorf(format string, args ...any) Message {
	return Message{Type: TypeError, Error: fmt.Sprintf(format, args...)}
}

// MarshalJSON emits exactly the keys of the message type.
func (m Message) MarshalJSON() ([]byte, error) {
	keys, ok := requiredKeys[m.Type]
	if !ok {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidMessage, m.Type)
	}
	out := map[string]any{"type": m.Type}
	for _, key := range keys {
		out[key] = m.field(key)
	}
	if m.Type == TypeHello && m.Agent != "" {
		out["agent"] = m.Agent
	}
	return json.Marshal(out)
}

func (m Message) field(key string) any {
	switch key {
	case "version":
		return m.Version
	case "error":
		return m.Error
	case "peers":
		return nonNil(m.Peers)
	case "objectid":
		return m.ObjectID
	case "object":
		return m.Object
	case "blockid":
		return m.BlockID
	case "txids":
		return nonNil(m.TxIDs)
	default:
		return nil
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Encode returns the canonical wire form of m including the trailing newline.
func Encode(m Message) ([]byte, error) {
	data, err := model.Canonicalize(m)
	if err != nil {
		return nil, fmt.Errorf("encode %s message: %w", m.Type, err)
	}
	return append(data, '\n'), nil
}

// ParseMessage decodes one line, rejecting unknown types and unexpected keys.
// The object of an object message is kept raw; the caller parses it with model.ParseObject.
func ParseMessage(line []byte) (Message, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(line, &fields); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if fields == nil {
		return Message{}, fmt.Errorf("%w: expected a JSON object", ErrInvalidMessage)
	}

	var m Message
	if err := json.Unmarshal(fields["type"], &m.Type); err != nil {
		return Message{}, fmt.Errorf("%w: type: %v", ErrInvalidMessage, err)
	}
	required, ok := requiredKeys[m.Type]
	if !ok {
		return Message{}, fmt.Errorf("%w: unknown type %q", ErrInvalidMessage, m.Type)
	}
	for _, key := range required {
		if _, ok := fields[key]; !ok {
			return Message{}, fmt.Errorf("%w: %s without %q", ErrInvalidMessage, m.Type, key)
		}
	}
	for key := range fields {
		if key != "type" && !slices.Contains(required, key) && !slices.Contains(optionalKeys[m.Type], key) {
			return Message{}, fmt.Errorf("%w: %s with unexpected key %q", ErrInvalidMessage, m.Type, key)
		}
	}

	targets := map[string]any{
		"version":  &m.Version,
		"agent":    &m.Agent,
		"error":    &m.Error,
		"peers":    &m.Peers,
		"objectid": &m.ObjectID,
		"blockid":  &m.BlockID,
		"txids":    &m.TxIDs,
	}
	for key, raw := range fields {
		switch key {
		case "type":
			continue
		case "object":
			m.Object = raw
			continue
		}
		if err := json.Unmarshal(raw, targets[key]); err != nil {
			return Message{}, fmt.Errorf("%w: %s: %v", ErrInvalidMessage, key, err)
		}
	}

	if err := m.check(); err != nil {
		return Message{}, err
	}
	return m, nil
}

func (m Message) check() error {
	ids := m.TxIDs
	switch m.Type {
	case TypeGetObject, TypeIHaveObject:
		ids = []string{m.ObjectID}
	case TypeChainTip:
		ids = []string{m.BlockID}
	case TypePeers:
		if m.Peers == nil {
			return fmt.Errorf("%w: peers is null", ErrInvalidMessage)
		}
	case TypeMempool:
		if m.TxIDs == nil {
			return fmt.Errorf("%w: txids is null", ErrInvalidMessage)
		}
	case TypeObject:
		if len(m.Object) == 0 || string(m.Object) == "null" {
			return fmt.Errorf("%w: object is null", ErrInvalidMessage)
		}
	}
	for _, id := range ids {
		if !model.IsHex(id, 64) {
			return fmt.Errorf("%w: %q is not an object id", ErrInvalidMessage, id)
		}
	}
	return nil
}

// AcceptsVersion reports whether a hello version is compatible with Version.
func AcceptsVersion(v string) bool {
	return acceptedVersion.MatchString(v)
}
