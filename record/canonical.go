package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// Canonical returns the RFC 8785 canonical JSON form of v. Mapping keys are
// sorted, number literals are normalised (so 1 and 1.0 agree), and set
// elements are ordered by their own canonical form so that two sets with the
// same members always produce the same bytes. Fails for opaque scalars that
// cannot be marshaled to JSON.
func (v Value) Canonical() ([]byte, error) {
	switch v.kind {
	case Null:
		return []byte("null"), nil
	case Scalar:
		data, err := json.Marshal(v.scalar)
		if err != nil {
			return nil, fmt.Errorf("record: marshaling scalar: %w", err)
		}
		return jsoncanonicalizer.Transform(data)
	case Mapping:
		var buf bytes.Buffer
		buf.WriteByte('{')
		first := true
		for pair := v.entries.Oldest(); pair != nil; pair = pair.Next() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			key, err := json.Marshal(pair.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			child, err := pair.Value.Canonical()
			if err != nil {
				return nil, err
			}
			buf.Write(child)
		}
		buf.WriteByte('}')
		// Transform sorts the keys of the assembled object.
		return jsoncanonicalizer.Transform(buf.Bytes())
	case Sequence, Set:
		children := make([][]byte, len(v.elems))
		for i, e := range v.elems {
			child, err := e.Canonical()
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		if v.kind == Set {
			sort.Slice(children, func(i, j int) bool {
				return bytes.Compare(children[i], children[j]) < 0
			})
		}
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, child := range children {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(child)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("record: cannot canonicalise %s value", v.kind)
	}
}

// CanonicalKey returns a string usable as a structural-equality key. Opaque
// scalars that cannot be represented as JSON fall back to a type-qualified
// formatting of the payload.
func (v Value) CanonicalKey() string {
	data, err := v.Canonical()
	if err != nil {
		return fmt.Sprintf("\x00opaque %T %#v", v.scalar, v.scalar)
	}
	return string(data)
}
