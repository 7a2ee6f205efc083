package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "null", Null.String())
	assert.Equal(t, "scalar", Scalar.String())
	assert.Equal(t, "mapping", Mapping.String())
	assert.Equal(t, "sequence", Sequence.String())
	assert.Equal(t, "set", Set.String())
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  bool
	}{
		{"null", Value{}, true},
		{"empty mapping", NewMapping(), true},
		{"empty sequence", NewSequence(), true},
		{"empty set", NewSet(), true},
		{"non-empty mapping", MappingOf(Pair{Key: "a", Value: Int(1)}), false},
		{"non-empty sequence", NewSequence(Int(1)), false},
		{"string", String("test"), false},
		{"empty string", String(""), false},
		{"zero", Int(0), false},
		{"false", Bool(false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.IsEmpty())
		})
	}
}

func TestMappingAccess(t *testing.T) {
	m := NewMapping()
	m.Set("a", Int(1))
	m.Set("b", String("test"))
	m.Set("a", Int(2))

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"a", "b"}, m.Keys())

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.True(t, v.Equal(Int(2)))

	_, ok = m.Get("missing")
	assert.False(t, ok)

	t.Run("set on non-mapping panics", func(t *testing.T) {
		assert.Panics(t, func() {
			String("foo").Set("a", Int(1))
		})
	})

	t.Run("get on non-mapping is not ok", func(t *testing.T) {
		_, ok := NewSequence().Get("a")
		assert.False(t, ok)
	})
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal scalars", String("foo"), String("foo"), true},
		{"different scalars", String("foo"), String("bar"), false},
		{"int equals float of same value", Int(1), Float(1), true},
		{"zero not false", Int(0), Bool(false), false},
		{
			"mapping order irrelevant",
			MappingOf(Pair{Key: "a", Value: Int(1)}, Pair{Key: "b", Value: Int(2)}),
			MappingOf(Pair{Key: "b", Value: Int(2)}, Pair{Key: "a", Value: Int(1)}),
			true,
		},
		{
			"sequence order relevant",
			NewSequence(Int(1), Int(2)),
			NewSequence(Int(2), Int(1)),
			false,
		},
		{
			"set order irrelevant",
			NewSet(Int(1), Int(2)),
			NewSet(Int(2), Int(1)),
			true,
		},
		{
			"sequence not set",
			NewSequence(Int(1)),
			NewSet(Int(1)),
			true, // both serialize as arrays; kinds carry no wire distinction
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestForceSingle(t *testing.T) {
	t.Run("returns first element of a sequence", func(t *testing.T) {
		v := ForceSingle(NewSequence(String("foo"), String("bar"), String("baz")))
		assert.True(t, v.Equal(String("foo")))
	})

	t.Run("returns element when not a sequence", func(t *testing.T) {
		v := ForceSingle(String("foo"))
		assert.True(t, v.Equal(String("foo")))
	})

	t.Run("returns null on empty sequence", func(t *testing.T) {
		assert.True(t, ForceSingle(NewSequence()).IsNull())
	})
}

func TestFromGo(t *testing.T) {
	t.Run("nested structure", func(t *testing.T) {
		v, err := FromGo(map[string]any{
			"b": []any{1, "two", true, nil},
			"a": map[string]any{"nested": 1.5},
		})
		require.NoError(t, err)
		// Map keys enter in sorted order.
		assert.Equal(t, []string{"a", "b"}, v.Keys())

		seq, ok := v.Get("b")
		require.True(t, ok)
		assert.Equal(t, Sequence, seq.Kind())
		assert.Equal(t, 4, seq.Len())
		assert.True(t, seq.Elements()[3].IsNull())
	})

	t.Run("value passthrough", func(t *testing.T) {
		v, err := FromGo(NewSet(Int(1)))
		require.NoError(t, err)
		assert.Equal(t, Set, v.Kind())
	})

	t.Run("unsupported type becomes opaque scalar", func(t *testing.T) {
		v, err := FromGo(struct{ X int }{X: 1})
		require.NoError(t, err)
		assert.Equal(t, Scalar, v.Kind())
	})

	t.Run("cyclic input fails fast", func(t *testing.T) {
		m := map[string]any{}
		m["self"] = m
		_, err := FromGo(m)
		assert.Error(t, err)
	})
}

func TestInterface(t *testing.T) {
	v := MappingOf(
		Pair{Key: "a", Value: NewSequence(Int(1), String("two"))},
		Pair{Key: "b", Value: Value{}},
	)
	got := v.Interface()
	m, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Len(t, m, 2)
	assert.Nil(t, m["b"])
	assert.Len(t, m["a"], 2)
}
