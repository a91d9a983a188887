package vtable

import (
	"github.com/Velocidex/ordereddict"
	"github.com/pkg/errors"
	"www.velocidex.com/golang/vtable/types"
)

// A Table binds an ordered set of fields to a frame. All structural
// validation happens when the table is constructed - a table which
// was successfully constructed has exactly one primary key and all
// its stored columns satisfy their contract.
type Table struct {
	id    types.TableId
	frame types.Frame

	// Field name -> types.Field in declaration order.
	fields *ordereddict.Dict

	// Set by the data source. Not owned by the table.
	data_source types.DataSource

	primary_key string
}

func NewTable(
	id types.TableId, data types.Frame, fields *Fields) (*Table, error) {
	self := &Table{
		id:    id,
		frame: data,
	}

	err := self.init(self, fields)
	if err != nil {
		return nil, err
	}
	return self, nil
}

// outer is the table the fields are bound to. This differs from self
// when the table is embedded in an AggregationTable.
func (self *Table) init(outer types.Table, fields *Fields) error {
	if fields == nil {
		fields = NewFields()
	}

	if fields.err != nil {
		return errors.Wrapf(fields.err, "Table %v", self.id)
	}

	if self.frame == nil {
		return errors.Errorf("Table %v has no data", self.id)
	}

	self.fields = fields.fields

	err := self.setFieldNamesAndTable(outer)
	if err != nil {
		return err
	}

	err = self.checkStoredFieldsExist()
	if err != nil {
		return err
	}

	err = self.checkStoredFieldsContract()
	if err != nil {
		return err
	}

	return self.checkOnlyOnePrimaryKey()
}

func (self *Table) setFieldNamesAndTable(outer types.Table) error {
	for _, name := range self.fields.Keys() {
		field := self.getField(name)
		err := field.Bind(name, outer)
		if err != nil {
			return err
		}
	}
	return nil
}

func (self *Table) checkStoredFieldsExist() error {
	for _, field := range self.Fields() {
		exists := self.frame.HasColumn(field.Name())
		if field.IsDerived() {
			if exists {
				return errors.Wrapf(types.DerivedFieldShadowsColumn,
					"Field %v.%v is derived but the data already has that column",
					self.id, field.Name())
			}
			continue
		}

		if !exists {
			return errors.Wrapf(types.FieldDoesNotExist,
				"Field %v not found in %v", field.Name(),
				self.frame.Columns())
		}
	}
	return nil
}

func (self *Table) checkStoredFieldsContract() error {
	for _, field := range self.Fields() {
		if field.IsDerived() {
			continue
		}

		column, _ := self.frame.Column(field.Name())
		err := field.Validate(column)
		if err != nil {
			return err
		}
	}
	return nil
}

func (self *Table) checkOnlyOnePrimaryKey() error {
	primary_keys := []string{}
	for _, field := range self.Fields() {
		if field.IsPrimaryKey() {
			primary_keys = append(primary_keys, field.Name())
		}
	}

	switch len(primary_keys) {
	case 0:
		return errors.Wrapf(types.NoPrimaryKeySpecified,
			"No primary key specified in %v", self.id)
	case 1:
		self.primary_key = primary_keys[0]
		return nil
	}

	return errors.Wrapf(types.MoreThanOnePrimaryKeySpecified,
		"Only one primary key is allowed for %v but %v found: %v",
		self.id, len(primary_keys), primary_keys)
}

func (self *Table) Id() types.TableId {
	return self.id
}

func (self *Table) Frame() types.Frame {
	return self.frame
}

func (self *Table) SetFrame(frame types.Frame) {
	self.frame = frame
}

func (self *Table) Fields() []types.Field {
	result := make([]types.Field, 0, self.fields.Len())
	for _, name := range self.fields.Keys() {
		result = append(result, self.getField(name))
	}
	return result
}

func (self *Table) GetField(name string) (types.Field, bool) {
	_, pres := self.fields.Get(name)
	if !pres {
		return nil, false
	}
	return self.getField(name), true
}

func (self *Table) getField(name string) types.Field {
	field_any, _ := self.fields.Get(name)
	field, _ := field_any.(types.Field)
	return field
}

func (self *Table) PrimaryKeyName() string {
	return self.primary_key
}

func (self *Table) DataSource() types.DataSource {
	return self.data_source
}

func (self *Table) SetDataSource(data_source types.DataSource) {
	self.data_source = data_source
}

func (self *Table) String() string {
	return self.id.String()
}

var _ types.Table = (*Table)(nil)
