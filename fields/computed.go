package fields

import (
	"github.com/Velocidex/ordereddict"
	"github.com/pkg/errors"
	"www.velocidex.com/golang/vtable/types"
)

// A ComputedField applies a pure function to each row of its own
// table. The function only sees the declared source columns.
type ComputedField struct {
	BaseField
	function      types.RowFunction
	source_fields []string
}

func NewComputedField(
	function types.RowFunction, source_fields ...string) *ComputedField {
	return &ComputedField{
		function:      function,
		source_fields: source_fields,
	}
}

func (self *ComputedField) Kind() string {
	return "computed"
}

func (self *ComputedField) SourceFields() []string {
	return self.source_fields
}

func (self *ComputedField) IsDerived() bool {
	return true
}

func (self *ComputedField) IsEvaluated() bool {
	return self.hasColumn()
}

func (self *ComputedField) IsReadyToBeEvaluated() bool {
	if self.table == nil {
		return false
	}

	for _, source_field := range self.source_fields {
		if !IsColumnEvaluated(self.table, source_field) {
			return false
		}
	}
	return true
}

func (self *ComputedField) Evaluate() error {
	frame := self.table.Frame()

	columns := make([][]types.Any, 0, len(self.source_fields))
	for _, source_field := range self.source_fields {
		column, pres := frame.Column(source_field)
		if !pres {
			return errors.Wrapf(types.ColumnNotFound,
				"Field %v is computed from %v", QualifiedName(self),
				source_field)
		}
		columns = append(columns, column)
	}

	values := make([]types.Any, 0, frame.Len())
	for row_idx := 0; row_idx < frame.Len(); row_idx++ {
		row := ordereddict.NewDict()
		for idx, source_field := range self.source_fields {
			row.Set(source_field, columns[idx][row_idx])
		}

		value, err := self.function(row)
		if err != nil {
			return errors.Wrapf(types.ComputedFieldFailed,
				"Field %v row %v: %v", QualifiedName(self), row_idx, err)
		}

		if value == nil {
			value = types.Null{}
		}
		values = append(values, value)
	}

	return frame.SetColumn(self.name, values)
}
