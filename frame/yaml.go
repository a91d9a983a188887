package frame

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Velocidex/ordereddict"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"www.velocidex.com/golang/vtable/types"
)

// Read a YAML (or JSON) document. The document is either a list of
// rows:
//
//   - id: 1
//     name: one
//
// or a mapping of columns:
//
//	id: [1, 2]
//	name: [one, two]
//
// Key order in the document determines column order.
func FromYAML(reader io.Reader) (*Frame, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "FromYAML")
	}

	document := &yaml.Node{}
	err = yaml.Unmarshal(data, document)
	if err != nil {
		return nil, errors.Wrap(err, "FromYAML")
	}

	// Empty document
	if len(document.Content) == 0 {
		return New(), nil
	}

	root := document.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		rows := make([]*ordereddict.Dict, 0, len(root.Content))
		for _, row_node := range root.Content {
			if row_node.Kind != yaml.MappingNode {
				return nil, errors.Errorf(
					"FromYAML: line %v: rows must be mappings", row_node.Line)
			}

			row := ordereddict.NewDict()
			for i := 0; i+1 < len(row_node.Content); i += 2 {
				value, err := decodeScalar(row_node.Content[i+1])
				if err != nil {
					return nil, err
				}
				row.Set(row_node.Content[i].Value, value)
			}
			rows = append(rows, row)
		}
		return FromRows(rows), nil

	case yaml.MappingNode:
		columns := ordereddict.NewDict()
		for i := 0; i+1 < len(root.Content); i += 2 {
			name := root.Content[i].Value
			column_node := root.Content[i+1]
			if column_node.Kind != yaml.SequenceNode {
				return nil, errors.Errorf(
					"FromYAML: line %v: column %v must be a list",
					column_node.Line, name)
			}

			values := make([]types.Any, 0, len(column_node.Content))
			for _, item := range column_node.Content {
				value, err := decodeScalar(item)
				if err != nil {
					return nil, err
				}
				values = append(values, value)
			}
			columns.Set(name, values)
		}
		return FromColumns(columns)
	}

	return nil, errors.Errorf("FromYAML: line %v: expected a list of rows or a mapping of columns",
		root.Line)
}

func decodeScalar(node *yaml.Node) (types.Any, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, errors.Errorf(
			"line %v: cells must be scalars", node.Line)
	}

	var err error
	switch node.ShortTag() {
	case "!!null":
		return types.Null{}, nil

	case "!!int":
		var value int64
		err = node.Decode(&value)
		if err == nil {
			return value, nil
		}

	case "!!float":
		var value float64
		err = node.Decode(&value)
		if err == nil {
			return value, nil
		}

	case "!!bool":
		var value bool
		err = node.Decode(&value)
		if err == nil {
			return value, nil
		}

	case "!!timestamp":
		var value time.Time
		err = node.Decode(&value)
		if err == nil {
			return value, nil
		}

	default:
		return node.Value, nil
	}

	return nil, errors.Wrapf(err, "line %v", node.Line)
}

// Load a data file based on its extension (.csv, .yaml, .yml or
// .json).
func LoadFile(path string) (*Frame, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer fd.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FromCSV(fd)
	case ".yaml", ".yml", ".json":
		return FromYAML(fd)
	}

	return nil, errors.Errorf("Unsupported data file %v", path)
}
