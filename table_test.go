package vtable

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"www.velocidex.com/golang/vtable/fields"
	"www.velocidex.com/golang/vtable/types"
)

var tableConstructionTests = []struct {
	name     string
	declared func() *Fields
	expected error
}{
	{"No primary key", func() *Fields {
		return NewFields().
			Add("id", fields.Must(fields.NewIntField(no_flags))).
			Add("name", fields.Must(fields.NewStringField(no_flags)))
	}, types.NoPrimaryKeySpecified},

	{"Two primary keys", func() *Fields {
		return NewFields().
			Add("id", fields.Must(fields.NewIntField(pk))).
			Add("name", fields.Must(fields.NewStringField(pk)))
	}, types.MoreThanOnePrimaryKeySpecified},

	{"Missing column", func() *Fields {
		return NewFields().
			Add("id", fields.Must(fields.NewIntField(pk))).
			Add("size", fields.Must(fields.NewIntField(no_flags)))
	}, types.FieldDoesNotExist},

	{"Derived field shadows column", func() *Fields {
		return NewFields().
			Add("id", fields.Must(fields.NewIntField(pk))).
			Add("name", fields.NewLookupField("a", "name"))
	}, types.DerivedFieldShadowsColumn},

	{"Type mismatch", func() *Fields {
		return NewFields().
			Add("id", fields.Must(fields.NewIntField(pk))).
			Add("name", fields.Must(fields.NewIntField(no_flags)))
	}, types.FieldTypeMismatch},

	{"Nulls not allowed", func() *Fields {
		return NewFields().
			Add("id", fields.Must(fields.NewIntField(pk))).
			Add("score", fields.Must(fields.NewFloatField(no_flags)))
	}, types.NullsNotAllowed},

	{"Non unique", func() *Fields {
		return NewFields().
			Add("id", fields.Must(fields.NewIntField(pk))).
			Add("group", fields.Must(fields.NewStringField(
				fields.Constraints{Unique: true})))
	}, types.NonUniqueValuesFound},
}

func makeTableData(t *testing.T) types.Frame {
	return makeFrame(t,
		"id", []int64{1, 2, 3},
		"name", []string{"a", "b", "c"},
		"group", []string{"x", "y", "x"},
		"score", values(1.5, types.Null{}, 2.0))
}

func TestTableConstruction(t *testing.T) {
	for _, test_case := range tableConstructionTests {
		_, err := NewTable("t", makeTableData(t), test_case.declared())
		assert.True(t, errors.Is(err, test_case.expected),
			"%v: %v", test_case.name, err)
	}
}

func TestTableAccessors(t *testing.T) {
	table := makeTable(t, "t", makeTableData(t), NewFields().
		Add("id", fields.Must(fields.NewIntField(pk))).
		Add("name", fields.Must(fields.NewStringField(no_flags))).
		Add("score", fields.Must(fields.NewFloatField(nullable))))

	assert.Equal(t, types.TableId("t"), table.Id())
	assert.Equal(t, "id", table.PrimaryKeyName())
	assert.Equal(t, 3, len(table.Fields()))

	field, pres := table.GetField("score")
	require.True(t, pres)
	assert.Equal(t, "score", field.Name())
	assert.Equal(t, "float", field.Kind())
	assert.Equal(t, table, field.Table())

	_, pres = table.GetField("group")
	assert.False(t, pres)
}

func TestFieldCanOnlyBeBoundOnce(t *testing.T) {
	shared := fields.Must(fields.NewIntField(pk))
	makeTable(t, "t1", makeTableData(t), NewFields().Add("id", shared))

	_, err := NewTable("t2", makeTableData(t), NewFields().Add("id", shared))
	assert.True(t, errors.Is(err, types.FieldAlreadyBound), err)
}

func TestFieldsDeclaredTwice(t *testing.T) {
	_, err := NewTable("t", makeTableData(t), NewFields().
		Add("id", fields.Must(fields.NewIntField(pk))).
		Add("id", fields.Must(fields.NewIntField(no_flags))))
	assert.Error(t, err)
}

// Falsy values pass the type check of any kind.
func TestFalsyValuesAreNotTypeChecked(t *testing.T) {
	_, err := NewTable("t", makeFrame(t,
		"id", []int64{1, 2},
		"label", values(int64(0), "x")),
		NewFields().
			Add("id", fields.Must(fields.NewIntField(pk))).
			Add("label", fields.Must(fields.NewStringField(no_flags))))
	assert.NoError(t, err)
}
