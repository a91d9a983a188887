package model

import (
	"bytes"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"www.velocidex.com/golang/vtable"
	"www.velocidex.com/golang/vtable/fields"
	"www.velocidex.com/golang/vtable/frame"
	"www.velocidex.com/golang/vtable/functions"
	"www.velocidex.com/golang/vtable/types"
)

// Build the field described by this declaration.
func (self *FieldSpec) Build() (types.Field, error) {
	constraints := fields.Constraints{
		Nulls:      self.Nulls,
		Unique:     self.Unique,
		PrimaryKey: self.PrimaryKey,
	}

	switch self.Kind {
	case "int":
		return fields.NewIntField(constraints)
	case "string":
		return fields.NewStringField(constraints)
	case "float":
		return fields.NewFloatField(constraints)
	case "bool":
		return fields.NewBoolField(constraints)
	case "date":
		return fields.NewDateField(constraints)

	case "foreign_key":
		if self.To == "" {
			return nil, errors.Errorf("Field %v: foreign_key needs to", self.Name)
		}
		default_value := normalize(self.Default)
		if self.Nulls {
			return fields.NewNullableForeignKey(
				types.TableId(self.To), default_value), nil
		}
		return fields.NewForeignKey(types.TableId(self.To), default_value), nil

	case "lookup":
		if self.To == "" || self.SourceField == "" {
			return nil, errors.Errorf(
				"Field %v: lookup needs to and source_field", self.Name)
		}
		return fields.NewLookupField(
			types.TableId(self.To), self.SourceField).Via(self.Via), nil

	case "computed":
		function, err := functions.GetFunction(self.Function, self.Params)
		if err != nil {
			return nil, errors.Wrapf(err, "Field %v", self.Name)
		}
		return fields.NewComputedField(function, self.SourceFields...), nil

	case "auto_increment_key":
		result := fields.NewAutoIncrementKeyField()
		if self.Start != nil {
			result.StartingAt(*self.Start)
		}
		return result, nil

	case "group_key":
		return fields.NewGroupKeyField(self.Source), nil

	case "aggregated":
		return fields.NewAggregatedField(self.Source, self.AggregateFunction)
	}

	return nil, errors.Wrapf(types.UnknownFieldKind,
		"Field %v has kind %v", self.Name, self.Kind)
}

func (self *TableSpec) buildFields() (*vtable.Fields, error) {
	result := vtable.NewFields()
	for _, spec := range self.Fields {
		field, err := spec.Build()
		if err != nil {
			return nil, errors.Wrapf(err, "Table %v", self.Name)
		}
		result.Add(spec.Name, field)
	}
	return result, nil
}

func (self *Model) loadData(spec *TableSpec) (types.Frame, error) {
	switch {
	case spec.Data != "" && spec.Rows != nil:
		return nil, errors.Errorf("Table %v has both data and rows", spec.Name)

	case spec.Data != "":
		return frame.LoadFile(self.resolve(spec.Data))

	case spec.Rows != nil:
		serialized, err := yaml.Marshal(spec.Rows)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return frame.FromYAML(bytes.NewReader(serialized))
	}

	return frame.New(), nil
}

// Construct all the tables of the model in order.
func (self *Model) BuildTables() ([]types.Table, error) {
	result := make([]types.Table, 0, len(self.Tables))
	for _, spec := range self.Tables {
		declared, err := spec.buildFields()
		if err != nil {
			return nil, err
		}

		id := types.TableId(spec.Name)
		if spec.Aggregation != nil {
			if spec.Data != "" || spec.Rows != nil {
				return nil, errors.Errorf(
					"Aggregation table %v can not have data", spec.Name)
			}

			table, err := vtable.NewAggregationTable(id, vtable.Aggregation{
				Source:  types.TableId(spec.Aggregation.Source),
				SortBy:  spec.Aggregation.SortBy,
				GroupBy: spec.Aggregation.GroupBy,
			}, declared)
			if err != nil {
				return nil, err
			}
			result = append(result, table)
			continue
		}

		data, err := self.loadData(spec)
		if err != nil {
			return nil, errors.Wrapf(err, "Table %v", spec.Name)
		}

		table, err := vtable.NewTable(id, data, declared)
		if err != nil {
			return nil, err
		}
		result = append(result, table)
	}

	return result, nil
}

// Build and evaluate the model.
func (self *Model) DataSource(options ...vtable.Option) (*vtable.DataSource, error) {
	tables, err := self.BuildTables()
	if err != nil {
		return nil, err
	}
	return vtable.NewDataSource(tables, options...)
}

// YAML decodes integers into int but frames hold int64.
func normalize(value interface{}) types.Any {
	switch t := value.(type) {
	case nil:
		return types.Null{}
	case int:
		return int64(t)
	}
	return value
}
