package normalise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmartinm/inspire-dojson/record"
)

func ints(values ...int64) []record.Value {
	elems := make([]record.Value, len(values))
	for i, v := range values {
		elems[i] = record.Int(v)
	}
	return elems
}

func rangeSeq(n int64) record.Value {
	var elems []record.Value
	for i := int64(0); i < n; i++ {
		elems = append(elems, record.Int(i))
	}
	return record.NewSequence(elems...)
}

func TestStripEmptyValues(t *testing.T) {
	obj := record.MappingOf(
		record.Pair{Key: "_foo", Value: record.NewSequence()},
		record.Pair{Key: "foo", Value: record.NewSequence(ints(1, 2, 3)...)},
		record.Pair{Key: "_bar", Value: record.NewMapping()},
		record.Pair{Key: "bar", Value: record.MappingOf(record.Pair{Key: "a", Value: record.Int(1)})},
		record.Pair{Key: "_baz", Value: record.NewSet()},
		record.Pair{Key: "baz", Value: record.NewSet(ints(1, 2, 3)...)},
		record.Pair{Key: "_qux", Value: record.Value{}},
		record.Pair{Key: "qux", Value: record.Bool(true)},
		record.Pair{Key: "quux", Value: record.Bool(false)},
		record.Pair{Key: "plugh", Value: record.Int(0)},
	)

	result := StripEmptyValues(obj)

	assert.Equal(t, []string{"foo", "bar", "baz", "qux", "quux", "plugh"}, result.Keys())
}

func TestStripEmptyValuesRemovesEmptyBranchesDeep(t *testing.T) {
	// The mapping under "a" only holds containers that clean to nothing, so
	// the whole branch disappears.
	obj := record.MappingOf(
		record.Pair{Key: "a", Value: record.MappingOf(
			record.Pair{Key: "b", Value: record.NewSequence(record.NewMapping(), record.Value{})},
			record.Pair{Key: "c", Value: record.MappingOf(record.Pair{Key: "d", Value: record.NewSet()})},
		)},
		record.Pair{Key: "keep", Value: record.String("x")},
	)

	result := StripEmptyValues(obj)

	assert.Equal(t, []string{"keep"}, result.Keys())
}

func TestStripEmptyValuesKeepsFalsyScalarsInSequences(t *testing.T) {
	obj := record.NewSequence(
		record.Int(0),
		record.Bool(false),
		record.String(""),
		record.NewSequence(),
		record.Value{},
	)

	result := StripEmptyValues(obj)

	require.Equal(t, 3, result.Len())
	assert.True(t, result.Elements()[0].Equal(record.Int(0)))
	assert.True(t, result.Elements()[1].Equal(record.Bool(false)))
	assert.True(t, result.Elements()[2].Equal(record.String("")))
}

func TestStripEmptyValuesReturnsNullOnNull(t *testing.T) {
	assert.True(t, StripEmptyValues(record.Value{}).IsNull())
}

func TestStripEmptyValuesIsIdempotent(t *testing.T) {
	obj := record.MappingOf(
		record.Pair{Key: "a", Value: record.NewSequence(record.NewMapping(), record.Int(1))},
		record.Pair{Key: "b", Value: record.NewMapping()},
	)

	once := StripEmptyValues(obj)
	twice := StripEmptyValues(once)

	assert.True(t, once.Equal(twice))
}

func TestDedupeAllLists(t *testing.T) {
	double := append(ints(0, 1, 2, 3, 4, 5, 6, 7, 8, 9), ints(0, 1, 2, 3, 4, 5, 6, 7, 8, 9)...)

	repeatedMapping := make([]record.Value, 10)
	for i := range repeatedMapping {
		repeatedMapping[i] = record.MappingOf(record.Pair{Key: "foo", Value: record.String("bar")})
	}

	// The two shapes below differ only by a redundant inner duplicate, so
	// they collapse to one element once children are deduplicated first.
	redundant := make([]record.Value, 0, 20)
	for i := 0; i < 10; i++ {
		redundant = append(redundant,
			record.MappingOf(record.Pair{Key: "foo", Value: record.NewSequence(ints(1, 2)...)}),
			record.MappingOf(record.Pair{Key: "foo", Value: record.NewSequence(ints(1, 1, 2)...)}),
		)
	}

	obj := record.MappingOf(
		record.Pair{Key: "l0", Value: record.NewSequence(double...)},
		record.Pair{Key: "o1", Value: record.NewSequence(repeatedMapping...)},
		record.Pair{Key: "o2", Value: record.NewSequence(redundant...)},
	)

	expected := record.MappingOf(
		record.Pair{Key: "l0", Value: rangeSeq(10)},
		record.Pair{Key: "o1", Value: record.NewSequence(record.MappingOf(record.Pair{Key: "foo", Value: record.String("bar")}))},
		record.Pair{Key: "o2", Value: record.NewSequence(record.MappingOf(record.Pair{Key: "foo", Value: record.NewSequence(ints(1, 2)...)}))},
	)

	assert.True(t, DedupeAllLists(obj).Equal(expected))
}

func TestDedupeAllListsPreservesFirstOccurrenceOrder(t *testing.T) {
	obj := record.NewSequence(
		record.String("a"),
		record.String("b"),
		record.String("a"),
		record.String("c"),
		record.String("b"),
	)

	result := DedupeAllLists(obj)

	require.Equal(t, 3, result.Len())
	assert.True(t, result.Elements()[0].Equal(record.String("a")))
	assert.True(t, result.Elements()[1].Equal(record.String("b")))
	assert.True(t, result.Elements()[2].Equal(record.String("c")))
}

func TestDedupeAllListsLeavesValuesWithoutListsUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		value record.Value
	}{
		{"null", record.Value{}},
		{"scalar", record.String("foo")},
		{"mapping of scalars", record.MappingOf(record.Pair{Key: "a", Value: record.Int(1)})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, DedupeAllLists(tt.value).Equal(tt.value))
		})
	}
}

func TestDedupeAllListsDedupesSets(t *testing.T) {
	result := DedupeAllLists(record.NewSet(record.Int(1), record.Int(1), record.Int(2)))
	assert.Equal(t, 2, result.Len())
}
