package frame

import (
	"strings"
	"testing"
	"time"

	"github.com/Velocidex/ordereddict"
	"github.com/go-test/deep"
	"github.com/pkg/errors"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"www.velocidex.com/golang/vtable/types"
)

func makeFrame(t *testing.T, args ...interface{}) *Frame {
	columns := ordereddict.NewDict()
	for i := 0; i < len(args); i += 2 {
		columns.Set(args[i].(string), args[i+1])
	}

	result, err := FromColumns(columns)
	require.NoError(t, err)
	return result
}

func column(t *testing.T, frame types.Frame, name string) []types.Any {
	result, pres := frame.Column(name)
	require.True(t, pres, "column %v in %v", name, frame.Columns())
	return result
}

func TestFromColumns(t *testing.T) {
	frame := makeFrame(t,
		"id", []int{1, 2},
		"name", []string{"a", "b"})
	assert.Equal(t, 2, frame.Len())
	assert.Equal(t, []string{"id", "name"}, frame.Columns())
	assert.Equal(t, []types.Any{1, 2}, column(t, frame, "id"))

	_, err := FromColumns(ordereddict.NewDict().
		Set("id", []int{1, 2}).
		Set("name", []string{"a"}))
	assert.True(t, errors.Is(err, types.ColumnLengthMismatch), err)

	_, err = FromColumns(ordereddict.NewDict().Set("id", 1))
	assert.Error(t, err)
}

func TestFromRows(t *testing.T) {
	frame := FromRows([]*ordereddict.Dict{
		ordereddict.NewDict().Set("a", 1),
		ordereddict.NewDict().Set("b", 2).Set("a", 3),
	})

	assert.Equal(t, []string{"a", "b"}, frame.Columns())
	assert.Equal(t, []types.Any{types.Null{}, 2}, column(t, frame, "b"))
}

func TestSelectAndRename(t *testing.T) {
	frame := makeFrame(t,
		"id", []int64{1, 2},
		"name", []string{"a", "b"},
		"size", []int64{10, 20})

	selected, err := frame.Select("size", "id")
	require.NoError(t, err)
	assert.Equal(t, []string{"size", "id"}, selected.Columns())
	assert.Equal(t, 2, selected.Len())

	_, err = frame.Select("missing")
	assert.True(t, errors.Is(err, types.ColumnNotFound), err)

	renamed, err := frame.Rename("name", "label")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "label", "size"}, renamed.Columns())

	// The original is not modified.
	assert.Equal(t, []string{"id", "name", "size"}, frame.Columns())

	_, err = frame.Rename("name", "size")
	assert.True(t, errors.Is(err, types.ColumnAlreadyExists), err)
}

func TestLeftMerge(t *testing.T) {
	left := makeFrame(t,
		"id", []int64{1, 2, 3, 4},
		"ref", []types.Any{int64(20), 10.0, int64(99), types.Null{}})
	right := makeFrame(t,
		"key", []int64{10, 20},
		"name", []string{"ten", "twenty"})

	merged, err := left.LeftMerge(right, "ref", "key")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "ref", "name"}, merged.Columns())
	assert.Equal(t, 4, merged.Len())

	// Integral floats join with ints. Unmatched and NULL keys get NULL.
	assert.Equal(t, []types.Any{"twenty", "ten", types.Null{}, types.Null{}},
		column(t, merged, "name"))

	_, err = left.LeftMerge(makeFrame(t,
		"key", []int64{1},
		"id", []int64{5}), "id", "key")
	assert.True(t, errors.Is(err, types.ColumnAlreadyExists), err)
}

func TestSortBy(t *testing.T) {
	frame := makeFrame(t,
		"group", []string{"b", "a", "b", "a"},
		"value", []types.Any{int64(2), types.Null{}, int64(1), 3.5},
		"id", []int64{1, 2, 3, 4})

	sorted, err := frame.SortBy("group", "value")
	require.NoError(t, err)

	// NULLs sort last, ties keep their order.
	assert.Equal(t, []types.Any{int64(4), int64(2), int64(3), int64(1)},
		column(t, sorted, "id"))

	_, err = frame.SortBy("missing")
	assert.Error(t, err)
}

func TestGroupBy(t *testing.T) {
	frame := makeFrame(t,
		"name", []types.Any{"g2", "g1", "g2", types.Null{}, "g1"},
		"value", []types.Any{1.0, 2.0, 3.0, 4.0, types.Null{}})

	grouped, err := frame.GroupBy([]string{"name"}, []types.AggregateSpec{
		{Output: "total", Source: "value", Function: "sum"},
		{Output: "n", Source: "value", Function: "count"},
		{Output: "mean", Source: "value", Function: "mean"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "total", "n", "mean"}, grouped.Columns())
	assert.Equal(t, []types.Any{"g2", "g1"}, column(t, grouped, "name"))
	assert.Equal(t, []types.Any{4.0, 2.0}, column(t, grouped, "total"))
	assert.Equal(t, []types.Any{int64(2), int64(1)}, column(t, grouped, "n"))
	assert.Equal(t, []types.Any{2.0, 2.0}, column(t, grouped, "mean"))

	_, err = frame.GroupBy([]string{"name"}, []types.AggregateSpec{
		{Output: "x", Source: "value", Function: "median"},
	})
	assert.True(t, errors.Is(err, types.UnknownAggregateFunction), err)
}

func TestGroupByNothing(t *testing.T) {
	frame := makeFrame(t,
		"name", []types.Any{},
		"value", []types.Any{})

	grouped, err := frame.GroupBy([]string{"name"}, []types.AggregateSpec{
		{Output: "total", Source: "value", Function: "sum"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, grouped.Len())
	assert.Equal(t, []string{"name", "total"}, grouped.Columns())
}

func TestValueCounts(t *testing.T) {
	frame := makeFrame(t,
		"name", []types.Any{"a", "b", "a", types.Null{}, "a"})

	counts, err := frame.ValueCounts("name")
	require.NoError(t, err)

	diff := deep.Equal(counts, []types.ValueCount{
		{Value: "a", Count: 3},
		{Value: "b", Count: 1},
	})
	assert.Nil(t, diff)
}

const csvData = `id,name,score,active,joined
1,alice,1.5,true,2020-01-02
2,bob,,false,2021-03-04
3,,2,TRUE,
`

const yamlRows = `
- id: 1
  name: alice
  joined: 2020-01-02
- id: 2
  name: bob
  score: 2.5
`

const yamlColumns = `
id: [1, 2]
name: [alice, ~]
`

func TestLoaders(t *testing.T) {
	result := ordereddict.NewDict()

	frame, err := FromCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	result.Set("CSV", frame)

	frame, err = FromYAML(strings.NewReader(yamlRows))
	require.NoError(t, err)
	result.Set("YAML rows", frame)

	frame, err = FromYAML(strings.NewReader(yamlColumns))
	require.NoError(t, err)
	result.Set("YAML columns", frame)

	g := goldie.New(
		t,
		goldie.WithFixtureDir("fixtures"),
		goldie.WithNameSuffix(".golden"),
		goldie.WithDiffEngine(goldie.ColoredDiff),
	)
	g.AssertJson(t, "TestLoaders", result)
}

func TestCSVColumnTypes(t *testing.T) {
	frame, err := FromCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	id := column(t, frame, "id")
	assert.Equal(t, int64(1), id[0])

	score := column(t, frame, "score")
	assert.Equal(t, []types.Any{1.5, types.Null{}, 2.0}, score)

	active := column(t, frame, "active")
	assert.Equal(t, []types.Any{true, false, true}, active)

	joined := column(t, frame, "joined")
	assert.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), joined[0])
	assert.Equal(t, types.Null{}, joined[2])
}

func TestBadYAML(t *testing.T) {
	_, err := FromYAML(strings.NewReader("just a string"))
	assert.Error(t, err)

	_, err = FromYAML(strings.NewReader("- [1, 2]"))
	assert.Error(t, err)

	_, err = FromYAML(strings.NewReader("a: [1, [2]]"))
	assert.Error(t, err)
}
