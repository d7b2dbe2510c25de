package query

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/blkpark/postgrest/internal/setutil"
)

// ErrInvalidBody marks a mutate payload that is structurally malformed or
// violates the uniform-key-set invariant. Wrap-checked with errors.Is.
var ErrInvalidBody = errors.New("invalid body")

// PayloadJSON is a non-empty ordered sequence of JSON objects with an
// identical key set across every object. Construction is the validation
// point; a PayloadJSON value is always well-formed.
type PayloadJSON struct {
	// Keys holds the shared key set in the first object's declaration
	// order, which downstream generation uses as column order.
	Keys    []string
	Objects []map[string]json.RawMessage
}

// ParsePayload validates raw JSON into a PayloadJSON. It accepts a single
// object or a non-empty array of objects; every object must carry the same
// key set.
func ParsePayload(raw []byte) (PayloadJSON, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return PayloadJSON{}, fmt.Errorf("%w: empty payload", ErrInvalidBody)
	}

	var elements []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(raw, &elements); err != nil {
			return PayloadJSON{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		if len(elements) == 0 {
			return PayloadJSON{}, fmt.Errorf("%w: payload array is empty", ErrInvalidBody)
		}
	case '{':
		elements = []json.RawMessage{json.RawMessage(raw)}
	default:
		return PayloadJSON{}, fmt.Errorf("%w: payload must be a JSON object or array of objects", ErrInvalidBody)
	}

	payload := PayloadJSON{Objects: make([]map[string]json.RawMessage, 0, len(elements))}
	for i, element := range elements {
		keys, obj, err := decodeObject(element)
		if err != nil {
			return PayloadJSON{}, fmt.Errorf("%w: element %d: %v", ErrInvalidBody, i, err)
		}
		if i == 0 {
			payload.Keys = keys
		} else if !setutil.Equal(payload.Keys, keys) {
			return PayloadJSON{}, fmt.Errorf("%w: all object keys must match, element %d has {%s} but element 0 has {%s}",
				ErrInvalidBody, i, strings.Join(keys, ", "), strings.Join(payload.Keys, ", "))
		}
		payload.Objects = append(payload.Objects, obj)
	}

	return payload, nil
}

// Len returns the number of objects in the payload.
func (p PayloadJSON) Len() int {
	return len(p.Objects)
}

// decodeObject parses one JSON object, returning its keys in declaration
// order alongside the decoded values.
func decodeObject(raw json.RawMessage) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	var keys []string
	obj := make(map[string]json.RawMessage)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected an object key, got %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}
		if _, dup := obj[key]; !dup {
			keys = append(keys, key)
		}
		obj[key] = value
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	// The object must be the entire input; reject trailing bytes.
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("unexpected data after object: %v", tok)
	}
	return keys, obj, nil
}
