package decode

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDynamicDecode(t *testing.T) {
	obj, err := Dynamic(`{"a":1,"b":[true,null,"x"]}`)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, obj.Keys())

	a, ok := obj.Get("a")
	require.True(t, ok)
	require.Equal(t, json.Number("1"), a)

	b, ok := obj.Get("b")
	require.True(t, ok)
	require.Equal(t, []any{true, nil, "x"}, b)
}

func TestDynamicDecodeNested(t *testing.T) {
	obj, err := Dynamic(`{"outer":{"z":1,"a":2.5}}`)
	require.NoError(t, err)

	raw, ok := obj.Get("outer")
	require.True(t, ok)
	inner, ok := raw.(*Object)
	require.True(t, ok)
	require.Equal(t, []string{"z", "a"}, inner.Keys(), "document order, not sorted")

	z, _ := inner.Get("z")
	require.Equal(t, json.Number("1"), z)
	a, _ := inner.Get("a")
	require.Equal(t, 2.5, a)
}

func TestDynamicRequiresTopLevelObject(t *testing.T) {
	for _, input := range []string{`[1,2,3]`, `"x"`, `1`, `true`, `null`} {
		_, err := Dynamic(input)
		require.Error(t, err, "input %s", input)
		require.Contains(t, err.Error(), "could not be decoded to an object")
	}
}

func TestDynamicRejectsInvalidJSON(t *testing.T) {
	_, err := Dynamic(`{"a":`)
	require.Error(t, err)
}

func TestObjectSetKeepsFirstPosition(t *testing.T) {
	obj := NewObject()
	obj.Set("a", 1)
	obj.Set("b", 2)
	obj.Set("a", 3)

	require.Equal(t, []string{"a", "b"}, obj.Keys())
	require.Equal(t, 2, obj.Len())

	a, _ := obj.Get("a")
	require.Equal(t, 3, a)
}

func TestDuplicateMemberLastWins(t *testing.T) {
	obj, err := Dynamic(`{"a":1,"a":2}`)
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, obj.Keys())
	a, _ := obj.Get("a")
	require.Equal(t, json.Number("2"), a)
}
