// Declarative models loaded from YAML.
//
// A model file lists tables in order. Each table either loads its
// data from a file (CSV, YAML or JSON, relative to the model file),
// carries its rows inline, or is an aggregation of another table:
//
//	tables:
//	  - name: customers
//	    data: customers.csv
//	    fields:
//	      - {name: id, kind: int, primary_key: true, unique: true}
//	      - {name: name, kind: string}
//	  - name: orders
//	    rows:
//	      - {id: 1, customer_id: 1, qty: 2, price: 1.5}
//	    fields:
//	      - {name: id, kind: int, primary_key: true, unique: true}
//	      - {name: customer_id, kind: foreign_key, to: customers, default: -1}
//	      - {name: qty, kind: int}
//	      - {name: price, kind: float}
//	      - {name: customer_name, kind: lookup, to: customers, source_field: name}
//	      - {name: total, kind: computed, function: mul, source_fields: [qty, price]}
//	  - name: sales
//	    aggregation: {source: orders, sort_by: [id], group_by: [customer_name]}
//	    fields:
//	      - {name: id, kind: auto_increment_key}
//	      - {name: customer, kind: group_key, source: customer_name}
//	      - {name: total, kind: aggregated, source: total, aggregate_function: sum}
package model

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Model struct {
	Tables []*TableSpec `yaml:"tables"`

	// Data paths are relative to this directory.
	base_dir string
}

type TableSpec struct {
	Name        string           `yaml:"name"`
	Data        string           `yaml:"data,omitempty"`
	Rows        *yaml.Node       `yaml:"rows,omitempty"`
	Aggregation *AggregationSpec `yaml:"aggregation,omitempty"`
	Fields      []*FieldSpec     `yaml:"fields"`
}

type AggregationSpec struct {
	Source  string   `yaml:"source"`
	SortBy  []string `yaml:"sort_by,omitempty"`
	GroupBy []string `yaml:"group_by"`
}

type FieldSpec struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`

	// Stored fields
	Nulls      bool `yaml:"nulls,omitempty"`
	Unique     bool `yaml:"unique,omitempty"`
	PrimaryKey bool `yaml:"primary_key,omitempty"`

	// Foreign keys and lookups
	To          string      `yaml:"to,omitempty"`
	Default     interface{} `yaml:"default,omitempty"`
	Via         string      `yaml:"via,omitempty"`
	SourceField string      `yaml:"source_field,omitempty"`

	// Computed fields
	Function     string            `yaml:"function,omitempty"`
	Params       map[string]string `yaml:"params,omitempty"`
	SourceFields []string          `yaml:"source_fields,omitempty"`

	// Aggregation table fields
	Source            string `yaml:"source,omitempty"`
	AggregateFunction string `yaml:"aggregate_function,omitempty"`
	Start             *int64 `yaml:"start,omitempty"`
}

// Parse a model. Unknown keys are rejected.
func Parse(data []byte) (*Model, error) {
	result := &Model{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	err := decoder.Decode(result)
	if err != nil {
		return nil, errors.Wrap(err, "Parsing model")
	}

	for idx, table := range result.Tables {
		if table.Name == "" {
			return nil, errors.Errorf("Table %v has no name", idx)
		}
	}

	return result, nil
}

func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	result, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	result.base_dir = filepath.Dir(path)
	return result, nil
}

func (self *Model) SetBaseDir(base_dir string) {
	self.base_dir = base_dir
}

func (self *Model) resolve(path string) string {
	if filepath.IsAbs(path) || self.base_dir == "" {
		return path
	}
	return filepath.Join(self.base_dir, path)
}
