package frame

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"www.velocidex.com/golang/vtable/types"
)

var date_formats = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
}

// Read a CSV file with a header row. Column types are inferred from
// the data: a column is int64, float64, bool or time.Time if all its
// non empty cells parse as such, otherwise it is a string
// column. Empty cells are NULL.
func FromCSV(reader io.Reader) (*Frame, error) {
	csv_reader := csv.NewReader(reader)
	records, err := csv_reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "FromCSV")
	}

	if len(records) == 0 {
		return New(), nil
	}

	header := records[0]
	result := New()
	result.length = len(records) - 1
	for column_idx, name := range header {
		name = strings.TrimSpace(name)
		cells := make([]string, 0, len(records)-1)
		for _, record := range records[1:] {
			cells = append(cells, record[column_idx])
		}

		if result.HasColumn(name) {
			return nil, errors.Wrapf(types.ColumnAlreadyExists,
				"CSV header repeats column %v", name)
		}
		result.columns.Set(name, inferColumn(cells))
	}

	return result, nil
}

func inferColumn(cells []string) []types.Any {
	parsers := []func(string) (types.Any, bool){
		parseInt, parseFloat, parseBool, parseDate,
	}

	for _, parser := range parsers {
		result, ok := parseColumn(cells, parser)
		if ok {
			return result
		}
	}

	result, _ := parseColumn(cells, func(cell string) (types.Any, bool) {
		return cell, true
	})
	return result
}

func parseColumn(cells []string,
	parser func(string) (types.Any, bool)) ([]types.Any, bool) {
	result := make([]types.Any, 0, len(cells))
	for _, cell := range cells {
		if cell == "" {
			result = append(result, types.Null{})
			continue
		}

		value, ok := parser(cell)
		if !ok {
			return nil, false
		}
		result = append(result, value)
	}
	return result, true
}

func parseInt(cell string) (types.Any, bool) {
	value, err := strconv.ParseInt(cell, 10, 64)
	return value, err == nil
}

func parseFloat(cell string) (types.Any, bool) {
	value, err := strconv.ParseFloat(cell, 64)
	return value, err == nil
}

func parseBool(cell string) (types.Any, bool) {
	switch strings.ToLower(cell) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return nil, false
}

func parseDate(cell string) (types.Any, bool) {
	for _, format := range date_formats {
		value, err := time.Parse(format, cell)
		if err == nil {
			return value, true
		}
	}
	return nil, false
}
