package functions

import (
	"testing"

	"github.com/Velocidex/ordereddict"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"www.velocidex.com/golang/vtable/types"
)

var functionTests = []struct {
	name     string
	params   map[string]string
	row      *ordereddict.Dict
	expected types.Any
}{
	{"len", nil, ordereddict.NewDict().Set("a", "héllo"), int64(5)},
	{"len", nil, ordereddict.NewDict().Set("a", types.Null{}), types.Null{}},
	{"concat", map[string]string{"sep": " "},
		ordereddict.NewDict().Set("a", "x").Set("b", types.Null{}).Set("c", int64(3)),
		"x 3"},
	{"add", nil, ordereddict.NewDict().Set("a", int64(1)).Set("b", int64(2)).
		Set("c", 0.5), 3.5},
	{"sub", nil, ordereddict.NewDict().Set("a", int64(10)).Set("b", int64(4)),
		int64(6)},
	{"mul", nil, ordereddict.NewDict().Set("a", int64(2)).Set("b", types.Null{}),
		types.Null{}},
	{"div", nil, ordereddict.NewDict().Set("a", int64(3)).Set("b", int64(2)), 1.5},
	{"coalesce", nil,
		ordereddict.NewDict().Set("a", types.Null{}).Set("b", "x").Set("c", "y"),
		"x"},
	{"len", nil, ordereddict.NewDict().Set("a", []interface{}{"x", "y"}), int64(2)},
	{"nullif", nil,
		ordereddict.NewDict().Set("a", int64(-1)).Set("b", -1.0), types.Null{}},
	{"nullif", nil,
		ordereddict.NewDict().Set("a", "x").Set("b", "y"), "x"},
	{"upper", nil, ordereddict.NewDict().Set("a", "abc"), "ABC"},
	{"lower", nil, ordereddict.NewDict().Set("a", "ABC"), "abc"},
	{"format", map[string]string{"format": "%v-%v"},
		ordereddict.NewDict().Set("a", "x").Set("b", int64(2)), "x-2"},
}

func TestFunctions(t *testing.T) {
	for _, test_case := range functionTests {
		function, err := GetFunction(test_case.name, test_case.params)
		require.NoError(t, err, test_case.name)

		result, err := function(test_case.row)
		require.NoError(t, err, test_case.name)
		assert.Equal(t, test_case.expected, result, test_case.name)
	}
}

func TestFunctionErrors(t *testing.T) {
	_, err := GetFunction("no_such_function", nil)
	assert.True(t, errors.Is(err, types.UnknownFunction), err)

	_, err = GetFunction("format", nil)
	assert.Error(t, err)

	upper, err := GetFunction("upper", nil)
	require.NoError(t, err)

	_, err = upper(ordereddict.NewDict().Set("a", "x").Set("b", "y"))
	assert.Error(t, err)

	_, err = upper(ordereddict.NewDict().Set("a", int64(1)))
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	names := []string{}
	for _, info := range Describe() {
		assert.NotEmpty(t, info.Doc, info.Name)
		names = append(names, info.Name)
	}
	assert.Equal(t, []string{"add", "coalesce", "concat", "div", "format",
		"len", "lower", "mul", "nullif", "sub", "upper"}, names)
}
