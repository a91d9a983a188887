package vtable

import (
	"testing"

	"github.com/Velocidex/ordereddict"
	"github.com/stretchr/testify/require"
	"www.velocidex.com/golang/vtable/fields"
	"www.velocidex.com/golang/vtable/frame"
	"www.velocidex.com/golang/vtable/types"
)

var (
	pk       = fields.Constraints{PrimaryKey: true, Unique: true}
	no_flags = fields.Constraints{}
	nullable = fields.Constraints{Nulls: true}
)

// Build a frame from alternating column names and column values.
func makeFrame(t *testing.T, args ...interface{}) types.Frame {
	columns := ordereddict.NewDict()
	for i := 0; i < len(args); i += 2 {
		columns.Set(args[i].(string), args[i+1])
	}

	result, err := frame.FromColumns(columns)
	require.NoError(t, err)
	return result
}

func makeTable(t *testing.T, id string,
	data types.Frame, declared *Fields) *Table {
	result, err := NewTable(types.TableId(id), data, declared)
	require.NoError(t, err)
	return result
}

func column(t *testing.T, data_source *DataSource,
	id string, name string) []types.Any {
	table, pres := data_source.GetTable(types.TableId(id))
	require.True(t, pres, "table %v", id)

	result, pres := table.Frame().Column(name)
	require.True(t, pres, "column %v.%v in %v", id, name,
		table.Frame().Columns())
	return result
}

func values(items ...types.Any) []types.Any {
	return items
}

// Table a: the referenced table used by most tests.
func makeNames(t *testing.T) *Table {
	return makeTable(t, "a", makeFrame(t,
		"id", []int64{1, 2},
		"name", []string{"one", "two"}),
		NewFields().
			Add("id", fields.Must(fields.NewIntField(pk))).
			Add("name", fields.Must(fields.NewStringField(no_flags))))
}
