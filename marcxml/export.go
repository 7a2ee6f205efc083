// Package marcxml serializes records into the legacy MARC-XML text format
// still consumed by downstream legacy systems.
//
// The output is byte-for-byte significant: an empty record is exactly
// "<record>\n</record>\n" and fields are indented with four spaces. The
// exporter is a best-effort formatter, not a validating serializer; field
// bodies of unexpected shape are stringified rather than rejected.
package marcxml

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/jmartinm/inspire-dojson/record"
)

const (
	fieldIndent    = "    "
	subfieldIndent = "        "
)

// Export serializes rec into legacy MARC-XML. Keys are emitted in ascending
// order, repeated occurrences of a field in their given order. Keys starting
// with "00" identify control fields with a plain scalar body; any other key
// is a data field whose fourth and fifth characters, when present, are the
// indicators ("_" stands for no indicator) and whose body maps subfield
// codes to one or more values. Fields and subfields with falsy values are
// omitted. Non-mapping input produces the bare record wrapper.
func Export(rec record.Value) string {
	var b strings.Builder
	b.WriteString("<record>\n")
	for _, p := range sortedPairs(rec) {
		writeField(&b, p.Key, p.Value)
	}
	b.WriteString("</record>\n")
	return b.String()
}

func sortedPairs(rec record.Value) []record.Pair {
	pairs := rec.Pairs()
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Key < pairs[j].Key
	})
	return pairs
}

func writeField(b *strings.Builder, key string, v record.Value) {
	if falsy(v) {
		return
	}
	if strings.HasPrefix(key, "00") && len(key) == 3 {
		writeControlField(b, key, record.ForceSingle(v))
		return
	}
	tag := key
	if len(tag) > 3 {
		tag = tag[:3]
	}
	ind1 := indicator(key, 3)
	ind2 := indicator(key, 4)

	bodies := []record.Value{v}
	if v.Kind() == record.Sequence || v.Kind() == record.Set {
		bodies = v.Elements()
	}
	for _, body := range bodies {
		if falsy(body) {
			continue
		}
		fmt.Fprintf(b, "%s<datafield tag=\"%s\" ind1=\"%s\" ind2=\"%s\">\n", fieldIndent, escape(tag), ind1, ind2)
		for _, sub := range body.Pairs() {
			writeSubfields(b, sub.Key, sub.Value)
		}
		fmt.Fprintf(b, "%s</datafield>\n", fieldIndent)
	}
}

func writeControlField(b *strings.Builder, tag string, v record.Value) {
	fmt.Fprintf(b, "%s<controlfield tag=\"%s\">%s</controlfield>\n", fieldIndent, escape(tag), escape(text(v)))
}

func writeSubfields(b *strings.Builder, code string, v record.Value) {
	values := []record.Value{v}
	if v.Kind() == record.Sequence || v.Kind() == record.Set {
		values = v.Elements()
	}
	for _, val := range values {
		if falsy(val) {
			continue
		}
		fmt.Fprintf(b, "%s<subfield code=\"%s\">%s</subfield>\n", subfieldIndent, escape(code), escape(text(val)))
	}
}

// indicator extracts the indicator character at position pos of the field
// key. The legacy convention writes "_" for a missing indicator, which is
// emitted as an empty attribute.
func indicator(key string, pos int) string {
	if len(key) <= pos {
		return ""
	}
	return strings.ReplaceAll(string(key[pos]), "_", "")
}

// falsy mirrors the truthiness test of the legacy exporter: null, empty
// containers, the empty string, zero numbers and false are all skipped.
func falsy(v record.Value) bool {
	if v.IsEmpty() {
		return true
	}
	if v.Kind() != record.Scalar {
		return false
	}
	switch s := v.Scalar().(type) {
	case string:
		return s == ""
	case bool:
		return !s
	case json.Number:
		f, err := s.Float64()
		return err == nil && f == 0
	case float64:
		return s == 0
	default:
		return false
	}
}

// text stringifies a field or subfield value best-effort. Containers that
// reach this point have an unexpected shape and are rendered as compact JSON
// rather than dropped.
func text(v record.Value) string {
	switch v.Kind() {
	case record.Null:
		return ""
	case record.Scalar:
		switch s := v.Scalar().(type) {
		case string:
			return s
		case bool:
			if s {
				return "true"
			}
			return "false"
		case json.Number:
			return s.String()
		default:
			return fmt.Sprintf("%v", s)
		}
	default:
		if data, err := json.Marshal(v); err == nil {
			return string(data)
		}
		return fmt.Sprintf("%v", v.Interface())
	}
}

func escape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}
