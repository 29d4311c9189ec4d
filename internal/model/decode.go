package model

import (
	"encoding/json"
	"fmt"
	"slices"
)

// exactFields decodes a JSON object and checks its key set: every key in required must be present,
// keys in optional may be present, nothing else is allowed.
func exactFields(raw []byte, required []string, optional ...string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, malformed(err)
	}
	if fields == nil {
		return nil, malformedf("expected a JSON object")
	}
	for _, key := range required {
		if _, ok := fields[key]; !ok {
			return nil, malformedf("missing key %q", key)
		}
	}
	for key := range fields {
		if !slices.Contains(required, key) && !slices.Contains(optional, key) {
			return nil, malformedf("unexpected key %q", key)
		}
	}
	return fields, nil
}

func checkType(fields map[string]json.RawMessage, want ObjectType) error {
	typ, err := decodeString(fields["type"])
	if err != nil {
		return fmt.Errorf("type: %w", err)
	}
	if ObjectType(typ) != want {
		return malformedf("type %q, want %q", typ, want)
	}
	return nil
}

func decodeString(raw json.RawMessage) (string, error) {
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", malformed(err)
	}
	if s == nil {
		return "", malformedf("expected a string, got null")
	}
	return *s, nil
}

func decodeNullableString(raw json.RawMessage) (*string, error) {
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, malformed(err)
	}
	return s, nil
}

func decodeUint(raw json.RawMessage) (uint64, error) {
	var n *uint64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, malformed(err)
	}
	if n == nil {
		return 0, malformedf("expected a non-negative integer, got null")
	}
	if *n > MaxSafeInteger {
		return 0, malformedf("integer %d exceeds %d", *n, uint64(MaxSafeInteger))
	}
	return *n, nil
}

func decodeArray(raw json.RawMessage) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, malformed(err)
	}
	if items == nil {
		return nil, malformedf("expected an array, got null")
	}
	return items, nil
}

func decodeHex(raw json.RawMessage, n int) (string, error) {
	s, err := decodeString(raw)
	if err != nil {
		return "", err
	}
	if !IsHex(s, n) {
		return "", malformedf("%q is not %d lowercase hex characters", s, n)
	}
	return s, nil
}
