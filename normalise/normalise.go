// Package normalise provides the structural cleaning operations applied to
// converted records before validation or legacy export: deep empty-value
// stripping and deep deduplication of sequence and set containers.
//
// Both operations are pure functions over a record.Value tree. They never
// fail, never mutate their input, and are safe to call concurrently on
// independent values.
package normalise

import (
	"github.com/jmartinm/inspire-dojson/record"
)

// StripEmptyValues rebuilds v without empty branches. A value is empty when
// it is null or a container that has zero entries after its own children have
// been cleaned. Scalars are never empty: 0, false and "" all survive.
//
// Children are cleaned before their parent is judged, so a mapping whose only
// entry holds an empty sequence disappears along with the sequence. The
// operation is idempotent.
func StripEmptyValues(v record.Value) record.Value {
	switch v.Kind() {
	case record.Mapping:
		out := record.NewMapping()
		for _, p := range v.Pairs() {
			cleaned := StripEmptyValues(p.Value)
			if cleaned.IsEmpty() {
				continue
			}
			out.Set(p.Key, cleaned)
		}
		return out
	case record.Sequence, record.Set:
		elems := make([]record.Value, 0, v.Len())
		for _, e := range v.Elements() {
			cleaned := StripEmptyValues(e)
			if cleaned.IsEmpty() {
				continue
			}
			elems = append(elems, cleaned)
		}
		if v.Kind() == record.Set {
			return record.NewSet(elems...)
		}
		return record.NewSequence(elems...)
	default:
		return v
	}
}

// DedupeAllLists rebuilds v with every sequence and set collapsed to the
// first occurrence of each structurally distinct element. Elements compare by
// deep content, so two mappings listing equivalent sub-structures in
// redundant forms collapse once their own children have been deduplicated.
// Sequences keep the order of first appearance; sets carry no order to keep.
//
// Mappings are walked but never deduplicated against each other: only
// sequence and set containers lose elements.
func DedupeAllLists(v record.Value) record.Value {
	switch v.Kind() {
	case record.Mapping:
		out := record.NewMapping()
		for _, p := range v.Pairs() {
			out.Set(p.Key, DedupeAllLists(p.Value))
		}
		return out
	case record.Sequence, record.Set:
		seen := make(map[string]struct{}, v.Len())
		elems := make([]record.Value, 0, v.Len())
		for _, e := range v.Elements() {
			deduped := DedupeAllLists(e)
			key := deduped.CanonicalKey()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			elems = append(elems, deduped)
		}
		if v.Kind() == record.Set {
			return record.NewSet(elems...)
		}
		return record.NewSequence(elems...)
	default:
		return v
	}
}
