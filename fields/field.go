// Field variants.
//
// Every field embeds BaseField which implements the parts of
// types.Field that are common to all fields and no-op defaults for
// the capabilities a variant does not need.

package fields

import (
	"fmt"

	"github.com/pkg/errors"
	"www.velocidex.com/golang/vtable/types"
)

type BaseField struct {
	name        string
	table       types.Table
	primary_key bool
}

func (self *BaseField) Name() string {
	return self.name
}

func (self *BaseField) Table() types.Table {
	return self.table
}

func (self *BaseField) Bind(name string, table types.Table) error {
	if self.table != nil {
		return errors.Wrapf(types.FieldAlreadyBound,
			"Field %v cannot be bound to %v", QualifiedName(self),
			table.Id())
	}

	self.name = name
	self.table = table
	return nil
}

func (self *BaseField) IsPrimaryKey() bool {
	return self.primary_key
}

func (self *BaseField) IsReadyToBeEvaluated() bool {
	return false
}

func (self *BaseField) Validate(values []types.Any) error {
	return nil
}

func (self *BaseField) CheckReferences() error {
	return nil
}

func (self *BaseField) Evaluate() error {
	return nil
}

func (self *BaseField) String() string {
	return QualifiedName(self)
}

// The column exists in the table's frame.
func (self *BaseField) hasColumn() bool {
	if self.table == nil || self.table.Frame() == nil {
		return false
	}
	return self.table.Frame().HasColumn(self.name)
}

func (self *BaseField) dataSource() (types.DataSource, error) {
	if self.table == nil || self.table.DataSource() == nil {
		return nil, errors.Errorf("Field %v is not attached to a data source",
			QualifiedName(self))
	}
	return self.table.DataSource(), nil
}

func (self *BaseField) getTable(id types.TableId) (types.Table, error) {
	data_source, err := self.dataSource()
	if err != nil {
		return nil, err
	}

	table, pres := data_source.GetTable(id)
	if !pres {
		return nil, errors.Wrapf(types.TableNotFound,
			"Field %v references table %v", QualifiedName(self), id)
	}
	return table, nil
}

func (self *BaseField) explainer() types.Explainer {
	data_source, err := self.dataSource()
	if err != nil {
		return nil
	}
	return data_source.GetExplainer()
}

func (self *BaseField) stats() *types.Stats {
	data_source, err := self.dataSource()
	if err != nil || data_source.GetStats() == nil {
		return &types.Stats{}
	}
	return data_source.GetStats()
}

type named interface {
	Name() string
	Table() types.Table
}

// The field name qualified by its table, e.g. "orders.customer_id".
func QualifiedName(field named) string {
	table := field.Table()
	if table == nil {
		return field.Name()
	}
	return fmt.Sprintf("%v.%v", table.Id(), field.Name())
}

// IsColumnEvaluated reports whether the column holds its final
// values. A declared field decides for itself (a foreign key column
// exists before its references are checked). Columns without a
// declared field are final as soon as they exist.
func IsColumnEvaluated(table types.Table, column string) bool {
	if table == nil || table.Frame() == nil {
		return false
	}

	field, pres := table.GetField(column)
	if pres {
		return field.IsEvaluated()
	}
	return table.Frame().HasColumn(column)
}

// Must panics if a field declaration failed. It is meant for static
// declarations where a bad declaration is a programming error.
func Must(field types.Field, err error) types.Field {
	if err != nil {
		panic(err)
	}
	return field
}

var (
	_ types.Field         = (*StoredField)(nil)
	_ types.Field         = (*ForeignKeyField)(nil)
	_ types.Field         = (*LookupField)(nil)
	_ types.Field         = (*ComputedField)(nil)
	_ types.ProducedField = (*AutoIncrementKeyField)(nil)
	_ types.ProducedField = (*GroupKeyField)(nil)
	_ types.ProducedField = (*AggregatedField)(nil)
)
