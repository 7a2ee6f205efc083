package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"
)

// DecodeJSON parses a JSON document into a Value. Object key order is
// preserved and numeric literals are kept verbatim as json.Number.
func DecodeJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("record: trailing data after JSON document")
	}
	return v, nil
}

// DecodeYAML parses a YAML document into a Value by converting it to JSON
// first. Unlike DecodeJSON, mapping key order is not guaranteed to survive
// the conversion.
func DecodeYAML(data []byte) (Value, error) {
	j, err := yaml.YAMLToJSON(data)
	if err != nil {
		return Value{}, fmt.Errorf("record: converting YAML to JSON: %w", err)
	}
	return DecodeJSON(j)
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewMapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("record: unexpected object key token %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				m.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return m, nil
		case '[':
			elems := []Value{}
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				elems = append(elems, val)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return NewSequence(elems...), nil
		default:
			return Value{}, fmt.Errorf("record: unexpected delimiter %v", t)
		}
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case nil:
		return Value{}, nil
	default:
		return Value{}, fmt.Errorf("record: unexpected token %v", tok)
	}
}

// MarshalJSON encodes v, keeping mapping entries in insertion order. Sets are
// encoded as arrays in their current element order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Null:
		return []byte("null"), nil
	case Scalar:
		return json.Marshal(v.scalar)
	case Mapping:
		return json.Marshal(v.entries)
	case Sequence, Set:
		if v.elems == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.elems)
	default:
		return nil, fmt.Errorf("record: cannot marshal %s value", v.kind)
	}
}

// UnmarshalJSON decodes data into v via DecodeJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeJSON(data)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}
