package fields

import (
	"github.com/hashicorp/go-set/v2"
	"github.com/pkg/errors"
	"www.velocidex.com/golang/vtable/protocols"
	"www.velocidex.com/golang/vtable/types"
)

// A ForeignKeyField references the primary key of another
// table. Values which do not match any primary key of the referenced
// table are replaced with the default. This happens once per data
// source.
type ForeignKeyField struct {
	BaseField
	to            types.TableId
	default_value types.Any
	nulls         bool
	checked       bool
}

func NewForeignKey(to types.TableId, default_value types.Any) *ForeignKeyField {
	return &ForeignKeyField{
		to:            to,
		default_value: default_value,
	}
}

// A foreign key which keeps NULL values instead of replacing them
// with the default.
func NewNullableForeignKey(
	to types.TableId, default_value types.Any) *ForeignKeyField {
	result := NewForeignKey(to, default_value)
	result.nulls = true
	return result
}

func (self *ForeignKeyField) Kind() string {
	return "foreign_key"
}

func (self *ForeignKeyField) ReferencedTable() types.TableId {
	return self.to
}

func (self *ForeignKeyField) IsDerived() bool {
	return false
}

// The column exists from the start but its values are only final
// once the references were checked.
func (self *ForeignKeyField) IsEvaluated() bool {
	return self.checked && self.hasColumn()
}

func (self *ForeignKeyField) IsReadyToBeEvaluated() bool {
	referenced, err := self.getTable(self.to)
	if err != nil {
		return false
	}
	return referenced.Frame().HasColumn(referenced.PrimaryKeyName())
}

// Checks the references as soon as the referenced primary key is
// available. When the referenced table is produced by evaluation the
// check is left to the evaluation loop.
func (self *ForeignKeyField) CheckReferences() error {
	if self.checked {
		return nil
	}

	referenced, err := self.getTable(self.to)
	if err != nil {
		return err
	}

	if !referenced.Frame().HasColumn(referenced.PrimaryKeyName()) {
		return nil
	}

	return self.enforce(referenced)
}

func (self *ForeignKeyField) Evaluate() error {
	return self.CheckReferences()
}

func (self *ForeignKeyField) enforce(referenced types.Table) error {
	primary_key := referenced.PrimaryKeyName()
	referenced_column, _ := referenced.Frame().Column(primary_key)

	referenced_values := set.New[string](len(referenced_column))
	for _, value := range referenced_column {
		if !types.IsNil(value) {
			referenced_values.Insert(protocols.HashKey(value))
		}
	}

	frame := self.table.Frame()
	column, pres := frame.Column(self.name)
	if !pres {
		return errors.Wrapf(types.FieldDoesNotExist,
			"Field %v not found", QualifiedName(self))
	}

	replaced := 0
	values := make([]types.Any, 0, len(column))
	for _, value := range column {
		switch {
		case types.IsNil(value) && self.nulls:
		case !types.IsNil(value) &&
			referenced_values.Contains(protocols.HashKey(value)):
		default:
			value = self.default_value
			replaced++
		}
		values = append(values, value)
	}

	err := frame.SetColumn(self.name, values)
	if err != nil {
		return err
	}

	self.checked = true
	self.stats().IncReferencesReplaced(replaced)

	explainer := self.explainer()
	if explainer != nil {
		explainer.ReferencesChecked(self, replaced)
	}
	return nil
}
