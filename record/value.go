// Package record implements the value model for bibliographic records.
//
// A record is an ordered mapping from field-tag strings to arbitrarily nested
// values. Instead of inspecting Go types at every recursion level, the model
// uses a closed set of tagged variants: Null, Scalar, Mapping, Sequence and
// Set. Mappings preserve insertion order, which downstream serialization
// relies on for tie-breaking between repeated field tags.
package record

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	Null Kind = iota
	Scalar
	Mapping
	Sequence
	Set
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Scalar:
		return "scalar"
	case Mapping:
		return "mapping"
	case Sequence:
		return "sequence"
	case Set:
		return "set"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a single node in a record tree. The zero Value is Null.
//
// Mapping values have reference semantics like Go maps: copying the Value
// copies a handle to the same underlying entries.
type Value struct {
	kind    Kind
	scalar  any
	entries *orderedmap.OrderedMap[string, Value]
	elems   []Value
}

// Pair is one mapping entry.
type Pair struct {
	Key   string
	Value Value
}

// String returns a scalar Value holding s.
func String(s string) Value {
	return Value{kind: Scalar, scalar: s}
}

// Bool returns a scalar Value holding b.
func Bool(b bool) Value {
	return Value{kind: Scalar, scalar: b}
}

// Int returns a scalar Value holding i as a JSON number.
func Int(i int64) Value {
	return Number(json.Number(strconv.FormatInt(i, 10)))
}

// Float returns a scalar Value holding f.
func Float(f float64) Value {
	return Value{kind: Scalar, scalar: f}
}

// Number returns a scalar Value holding the JSON number literal n.
func Number(n json.Number) Value {
	return Value{kind: Scalar, scalar: n}
}

// Opaque wraps a value of an unsupported type as an opaque scalar. Opaque
// scalars pass through normalisation unchanged.
func Opaque(v any) Value {
	return Value{kind: Scalar, scalar: v}
}

// NewMapping returns an empty ordered mapping.
func NewMapping() Value {
	return Value{kind: Mapping, entries: orderedmap.New[string, Value]()}
}

// MappingOf returns an ordered mapping populated with the given pairs.
func MappingOf(pairs ...Pair) Value {
	m := NewMapping()
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// NewSequence returns an ordered sequence of the given elements.
func NewSequence(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: Sequence, elems: elems}
}

// NewSet returns an unordered collection of the given elements. Sets carry no
// positional meaning; they only guarantee element membership.
func NewSet(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: Set, elems: elems}
}

// Kind returns the variant of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is the Null variant.
func (v Value) IsNull() bool {
	return v.kind == Null
}

// Scalar returns the payload of a scalar Value, or nil for any other kind.
func (v Value) Scalar() any {
	if v.kind != Scalar {
		return nil
	}
	return v.scalar
}

// Len returns the number of entries or elements of a container, and 0 for
// scalars and null.
func (v Value) Len() int {
	switch v.kind {
	case Mapping:
		return v.entries.Len()
	case Sequence, Set:
		return len(v.elems)
	default:
		return 0
	}
}

// IsEmpty reports whether v counts as empty: null, or a container with zero
// entries. Scalars are never empty, so 0, false and "" are all non-empty.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case Null:
		return true
	case Mapping, Sequence, Set:
		return v.Len() == 0
	default:
		return false
	}
}

// Set stores a mapping entry, overwriting any previous value for key.
// Panics if v is not a mapping.
func (v Value) Set(key string, val Value) {
	if v.kind != Mapping {
		panic(fmt.Sprintf("record: Set on %s value", v.kind))
	}
	v.entries.Set(key, val)
}

// Get returns the value stored under key in a mapping.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Mapping {
		return Value{}, false
	}
	return v.entries.Get(key)
}

// Keys returns the mapping keys in insertion order.
func (v Value) Keys() []string {
	if v.kind != Mapping {
		return nil
	}
	keys := make([]string, 0, v.entries.Len())
	for pair := v.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Pairs returns the mapping entries in insertion order.
func (v Value) Pairs() []Pair {
	if v.kind != Mapping {
		return nil
	}
	pairs := make([]Pair, 0, v.entries.Len())
	for pair := v.entries.Oldest(); pair != nil; pair = pair.Next() {
		pairs = append(pairs, Pair{Key: pair.Key, Value: pair.Value})
	}
	return pairs
}

// Elements returns the elements of a sequence or set. The returned slice is
// shared with v and must not be mutated.
func (v Value) Elements() []Value {
	if v.kind != Sequence && v.kind != Set {
		return nil
	}
	return v.elems
}

// Equal reports deep structural equality. Mappings compare by content
// regardless of insertion order, sets regardless of element order, and
// numbers by numeric value, so Int(1) equals Float(1).
func (v Value) Equal(o Value) bool {
	return v.CanonicalKey() == o.CanonicalKey()
}

// Interface converts v back into plain Go values: mappings become
// map[string]any (losing order), sequences and sets become []any, scalars
// return their payload and null returns nil.
func (v Value) Interface() any {
	switch v.kind {
	case Null:
		return nil
	case Scalar:
		return v.scalar
	case Mapping:
		m := make(map[string]any, v.entries.Len())
		for pair := v.entries.Oldest(); pair != nil; pair = pair.Next() {
			m[pair.Key] = pair.Value.Interface()
		}
		return m
	case Sequence, Set:
		s := make([]any, len(v.elems))
		for i, e := range v.elems {
			s[i] = e.Interface()
		}
		return s
	default:
		return nil
	}
}

// ForceSingle collapses a sequence or set to its first element: empty
// containers become Null, every other value passes through unchanged.
func ForceSingle(v Value) Value {
	if v.kind != Sequence && v.kind != Set {
		return v
	}
	if len(v.elems) == 0 {
		return Value{}
	}
	return v.elems[0]
}

// maxDepth bounds the recursion of FromGo so that cyclic Go structures fail
// fast instead of looping forever. Record trees produced by the conversion
// pipeline are far shallower than this.
const maxDepth = 512

// FromGo converts a plain Go value into a Value. Maps are entered in sorted
// key order since Go map iteration is unordered. Values of unsupported types
// become opaque scalars.
func FromGo(v any) (Value, error) {
	return fromGo(v, 0)
}

func fromGo(v any, depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, fmt.Errorf("record: structure exceeds maximum depth %d", maxDepth)
	}
	switch t := v.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case int:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			val, err := fromGo(t[k], depth+1)
			if err != nil {
				return Value{}, err
			}
			m.Set(k, val)
		}
		return m, nil
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			val, err := fromGo(e, depth+1)
			if err != nil {
				return Value{}, err
			}
			elems[i] = val
		}
		return NewSequence(elems...), nil
	case []string:
		elems := make([]Value, len(t))
		for i, s := range t {
			elems[i] = String(s)
		}
		return NewSequence(elems...), nil
	default:
		return Opaque(v), nil
	}
}
