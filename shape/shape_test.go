package shape

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/leeforge/interchange/errors"
	"github.com/leeforge/interchange/scalar"
)

type profile struct {
	Nickname string
	Website  *string
}

type account struct {
	ID      uuid.UUID
	Name    string
	Age     int
	Created time.Time
	Profile *profile
	hidden  int
}

func TestClassifyScalars(t *testing.T) {
	s, err := Of(reflect.TypeOf(int64(0)))
	require.NoError(t, err)
	require.Equal(t, Scalar, s.Kind)
	require.Equal(t, scalar.Int64, s.Scalar)

	// exact leaf types win over their underlying shapes
	s, err = Of(reflect.TypeOf(time.Time{}))
	require.NoError(t, err)
	require.Equal(t, Scalar, s.Kind)
	require.Equal(t, scalar.Timestamp, s.Scalar)

	s, err = Of(reflect.TypeOf(uuid.UUID{}))
	require.NoError(t, err)
	require.Equal(t, Scalar, s.Kind)
	require.Equal(t, scalar.Identifier, s.Scalar)
}

func TestClassifyOptionalComposes(t *testing.T) {
	// Optional<Sequence<Optional<Scalar>>>
	typ := reflect.TypeOf((*[]*int)(nil))

	s, err := Of(typ)
	require.NoError(t, err)
	require.Equal(t, Optional, s.Kind)

	inner, err := Of(s.Elem)
	require.NoError(t, err)
	require.Equal(t, Sequence, inner.Kind)
	require.False(t, inner.Fixed)

	elem, err := Of(inner.Elem)
	require.NoError(t, err)
	require.Equal(t, Optional, elem.Kind)

	leaf, err := Of(elem.Elem)
	require.NoError(t, err)
	require.Equal(t, Scalar, leaf.Kind)
}

func TestClassifySequences(t *testing.T) {
	s, err := Of(reflect.TypeOf([]string{}))
	require.NoError(t, err)
	require.Equal(t, Sequence, s.Kind)
	require.False(t, s.Fixed)

	s, err = Of(reflect.TypeOf([3]int{}))
	require.NoError(t, err)
	require.Equal(t, Sequence, s.Kind)
	require.True(t, s.Fixed)
}

func TestClassifyComposite(t *testing.T) {
	s, err := Of(reflect.TypeOf(account{}))
	require.NoError(t, err)
	require.Equal(t, Composite, s.Kind)

	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	require.Equal(t, []string{"ID", "Name", "Age", "Created", "Profile"}, names,
		"exported fields in declared order, unexported skipped")
}

func TestFieldNamedFallsBackCaseInsensitive(t *testing.T) {
	s, err := Of(reflect.TypeOf(account{}))
	require.NoError(t, err)

	pos, ok := s.FieldNamed("Name")
	require.True(t, ok)
	require.Equal(t, "Name", s.Fields[pos].Name)

	pos, ok = s.FieldNamed("name")
	require.True(t, ok)
	require.Equal(t, "Name", s.Fields[pos].Name)

	_, ok = s.FieldNamed("nickname")
	require.False(t, ok)
}

func TestUnsupportedTypesAreShapeErrors(t *testing.T) {
	for _, typ := range []reflect.Type{
		reflect.TypeOf(map[int]string{}),
		reflect.TypeOf(make(chan int)),
		reflect.TypeOf(func() {}),
		reflect.TypeOf(complex128(0)),
	} {
		_, err := Of(typ)
		require.Error(t, err, "type %s", typ)

		var shapeErr *errors.ShapeError
		require.ErrorAs(t, err, &shapeErr, "classifier failures are configuration errors")
	}
}

func TestOfMemoizes(t *testing.T) {
	a, err := Of(reflect.TypeOf(account{}))
	require.NoError(t, err)
	b, err := Of(reflect.TypeOf(account{}))
	require.NoError(t, err)
	require.Same(t, a, b)
}

func TestSelfReferentialCompositeClassifies(t *testing.T) {
	type node struct {
		Value int
		Next  *node
	}
	s, err := Of(reflect.TypeOf(node{}))
	require.NoError(t, err)
	require.Equal(t, Composite, s.Kind)
	require.Len(t, s.Fields, 2)
}
