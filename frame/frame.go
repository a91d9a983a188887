// An in memory column oriented implementation of types.Frame.

package frame

import (
	"encoding/json"
	"io"
	"reflect"

	"github.com/Velocidex/ordereddict"
	"github.com/pkg/errors"
	"www.velocidex.com/golang/vtable/aggregators"
	"www.velocidex.com/golang/vtable/grouper"
	"www.velocidex.com/golang/vtable/protocols"
	"www.velocidex.com/golang/vtable/sort"
	"www.velocidex.com/golang/vtable/types"
)

var (
	Sorter  types.Sorter  = sort.DefaultSorter{}
	Grouper types.Grouper = &grouper.DefaultGrouper{}
)

type Frame struct {
	// Column name -> []types.Any
	columns *ordereddict.Dict
	length  int
}

// An empty frame with no columns and no rows.
func New() *Frame {
	return &Frame{
		columns: ordereddict.NewDict(),
	}
}

// Build a frame from a dict of columns. Each column may be any slice
// type (e.g. []int64, []string or []types.Any), all columns must have
// the same length.
func FromColumns(columns *ordereddict.Dict) (*Frame, error) {
	result := New()
	for _, name := range columns.Keys() {
		column_any, _ := columns.Get(name)
		values, err := toAnySlice(column_any)
		if err != nil {
			return nil, errors.Wrapf(err, "Column %v", name)
		}

		err = result.SetColumn(name, values)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Build a frame from rows. The columns are the union of all row keys
// in order of first appearance. Missing cells are NULL.
func FromRows(rows []*ordereddict.Dict) *Frame {
	names := []string{}
	seen := make(map[string]bool)
	for _, row := range rows {
		for _, key := range row.Keys() {
			if !seen[key] {
				seen[key] = true
				names = append(names, key)
			}
		}
	}

	result := New()
	result.length = len(rows)
	for _, name := range names {
		values := make([]types.Any, 0, len(rows))
		for _, row := range rows {
			value, pres := row.Get(name)
			if !pres || value == nil {
				value = types.Null{}
			}
			values = append(values, value)
		}
		result.columns.Set(name, values)
	}
	return result
}

func toAnySlice(column_any interface{}) ([]types.Any, error) {
	switch t := column_any.(type) {
	case []types.Any:
		return t, nil
	}

	value := reflect.ValueOf(column_any)
	if value.Kind() != reflect.Slice && value.Kind() != reflect.Array {
		return nil, errors.Errorf("Expected a slice but got %T", column_any)
	}

	result := make([]types.Any, 0, value.Len())
	for i := 0; i < value.Len(); i++ {
		result = append(result, value.Index(i).Interface())
	}
	return result, nil
}

func (self *Frame) Len() int {
	return self.length
}

func (self *Frame) Columns() []string {
	return self.columns.Keys()
}

func (self *Frame) HasColumn(name string) bool {
	_, pres := self.columns.Get(name)
	return pres
}

func (self *Frame) Column(name string) ([]types.Any, bool) {
	column_any, pres := self.columns.Get(name)
	if !pres {
		return nil, false
	}
	column, ok := column_any.([]types.Any)
	return column, ok
}

func (self *Frame) SetColumn(name string, values []types.Any) error {
	if self.columns.Len() == 0 {
		self.length = len(values)

	} else if len(values) != self.length {
		return errors.Wrapf(types.ColumnLengthMismatch,
			"Column %v has %v values but the frame has %v rows",
			name, len(values), self.length)
	}

	self.columns.Set(name, values)
	return nil
}

func (self *Frame) Select(names ...string) (types.Frame, error) {
	result := New()
	result.length = self.length
	for _, name := range names {
		column, pres := self.Column(name)
		if !pres {
			return nil, errors.Wrapf(types.ColumnNotFound,
				"Unable to select %v from %v", name, self.Columns())
		}
		if result.HasColumn(name) {
			return nil, errors.Wrapf(types.ColumnAlreadyExists,
				"Column %v selected twice", name)
		}
		result.columns.Set(name, column)
	}
	return result, nil
}

func (self *Frame) Rename(old_name, new_name string) (types.Frame, error) {
	if !self.HasColumn(old_name) {
		return nil, errors.Wrapf(types.ColumnNotFound,
			"Unable to rename %v", old_name)
	}

	if old_name != new_name && self.HasColumn(new_name) {
		return nil, errors.Wrapf(types.ColumnAlreadyExists,
			"Unable to rename %v to %v", old_name, new_name)
	}

	result := New()
	result.length = self.length
	for _, name := range self.Columns() {
		column, _ := self.Column(name)
		if name == old_name {
			name = new_name
		}
		result.columns.Set(name, column)
	}
	return result, nil
}

func (self *Frame) LeftMerge(
	right types.Frame, left_on, right_on string) (types.Frame, error) {
	left_keys, pres := self.Column(left_on)
	if !pres {
		return nil, errors.Wrapf(types.ColumnNotFound,
			"Unable to merge on %v", left_on)
	}

	right_keys, pres := right.Column(right_on)
	if !pres {
		return nil, errors.Wrapf(types.ColumnNotFound,
			"Unable to merge on %v", right_on)
	}

	// Index the right side. The first matching row wins.
	index := make(map[string]int)
	for idx, key := range right_keys {
		if types.IsNil(key) {
			continue
		}
		hash := protocols.HashKey(key)
		_, pres := index[hash]
		if !pres {
			index[hash] = idx
		}
	}

	matches := make([]int, 0, len(left_keys))
	for _, key := range left_keys {
		idx, pres := index[protocols.HashKey(key)]
		if !pres || types.IsNil(key) {
			idx = -1
		}
		matches = append(matches, idx)
	}

	result := self.copy()
	for _, name := range right.Columns() {
		if name == right_on {
			continue
		}

		if result.HasColumn(name) {
			return nil, errors.Wrapf(types.ColumnAlreadyExists,
				"Merged column %v already exists", name)
		}

		right_column, _ := right.Column(name)
		values := make([]types.Any, 0, len(matches))
		for _, idx := range matches {
			if idx < 0 {
				values = append(values, types.Null{})
			} else {
				values = append(values, right_column[idx])
			}
		}
		result.columns.Set(name, values)
	}

	return result, nil
}

func (self *Frame) SortBy(keys ...string) (types.Frame, error) {
	order, err := Sorter.Sort(self, keys, false)
	if err != nil {
		return nil, err
	}
	return self.take(order), nil
}

func (self *Frame) GroupBy(
	keys []string, aggregates []types.AggregateSpec) (types.Frame, error) {
	actor, err := newGroupbyActor(self, keys, aggregates)
	if err != nil {
		return nil, err
	}

	rows, err := Grouper.Group(actor)
	if err != nil {
		return nil, err
	}

	result := FromRows(rows)

	// No groups at all - still emit the expected columns.
	if len(rows) == 0 {
		for _, key := range keys {
			result.columns.Set(key, []types.Any{})
		}
		for _, aggregate := range aggregates {
			result.columns.Set(aggregate.Output, []types.Any{})
		}
	}
	return result, nil
}

func (self *Frame) ValueCounts(name string) ([]types.ValueCount, error) {
	column, pres := self.Column(name)
	if !pres {
		return nil, errors.Wrapf(types.ColumnNotFound,
			"Unable to count values of %v", name)
	}

	counts := ordereddict.NewDict()
	for _, value := range column {
		if types.IsNil(value) {
			continue
		}

		key := protocols.HashKey(value)
		count_any, pres := counts.Get(key)
		if !pres {
			counts.Set(key, &types.ValueCount{Value: value, Count: 1})
			continue
		}
		count_any.(*types.ValueCount).Count++
	}

	result := make([]types.ValueCount, 0, counts.Len())
	for _, key := range counts.Keys() {
		count_any, _ := counts.Get(key)
		result = append(result, *count_any.(*types.ValueCount))
	}
	return result, nil
}

// The row at index idx as a dict.
func (self *Frame) Row(idx int) *ordereddict.Dict {
	result := ordereddict.NewDict()
	for _, name := range self.Columns() {
		column, _ := self.Column(name)
		result.Set(name, column[idx])
	}
	return result
}

func (self *Frame) Rows() []*ordereddict.Dict {
	result := make([]*ordereddict.Dict, 0, self.length)
	for i := 0; i < self.length; i++ {
		result = append(result, self.Row(i))
	}
	return result
}

// Support JSON Marshal protocol
func (self *Frame) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.Rows())
}

func (self *Frame) copy() *Frame {
	result := New()
	result.length = self.length
	for _, name := range self.Columns() {
		column, _ := self.Column(name)
		result.columns.Set(name, column)
	}
	return result
}

// A new frame with the rows in the given order.
func (self *Frame) take(order []int) *Frame {
	result := New()
	result.length = len(order)
	for _, name := range self.Columns() {
		column, _ := self.Column(name)
		values := make([]types.Any, 0, len(order))
		for _, idx := range order {
			values = append(values, column[idx])
		}
		result.columns.Set(name, values)
	}
	return result
}

// Drives the grouper over the rows of a frame.
type groupbyActor struct {
	frame      *Frame
	keys       []string
	key_cols   [][]types.Any
	aggregates []types.AggregateSpec
	functions  []types.AggregateFunction
	sources    [][]types.Any
	next       int
}

func newGroupbyActor(frame *Frame, keys []string,
	aggregates []types.AggregateSpec) (*groupbyActor, error) {
	result := &groupbyActor{
		frame:      frame,
		keys:       keys,
		aggregates: aggregates,
	}

	for _, key := range keys {
		column, pres := frame.Column(key)
		if !pres {
			return nil, errors.Wrapf(types.ColumnNotFound,
				"Unable to group by %v", key)
		}
		result.key_cols = append(result.key_cols, column)
	}

	for _, aggregate := range aggregates {
		function, err := aggregators.GetAggregate(aggregate.Function)
		if err != nil {
			return nil, err
		}

		column, pres := frame.Column(aggregate.Source)
		if !pres {
			return nil, errors.Wrapf(types.ColumnNotFound,
				"Unable to aggregate %v", aggregate.Source)
		}
		result.functions = append(result.functions, function)
		result.sources = append(result.sources, column)
	}

	return result, nil
}

func (self *groupbyActor) GetNextRow() (int, string, bool, error) {
	if self.next >= self.frame.Len() {
		return 0, "", false, io.EOF
	}

	row_idx := self.next
	self.next++

	key := make([]types.Any, 0, len(self.key_cols))
	for _, column := range self.key_cols {
		value := column[row_idx]

		// Rows with a NULL group key do not belong to any group.
		if types.IsNil(value) {
			return row_idx, "", false, nil
		}
		key = append(key, value)
	}

	return row_idx, protocols.HashKeys(key), true, nil
}

func (self *groupbyActor) Aggregate(row_idx int, ctx types.AggregatorCtx) {
	for idx, function := range self.functions {
		function.Update(ctx, self.aggregates[idx].Output,
			self.sources[idx][row_idx])
	}
}

func (self *groupbyActor) MaterializeRow(
	first_row int, ctx types.AggregatorCtx) *ordereddict.Dict {
	result := ordereddict.NewDict()
	for idx, key := range self.keys {
		result.Set(key, self.key_cols[idx][first_row])
	}

	for idx, function := range self.functions {
		output := self.aggregates[idx].Output
		result.Set(output, function.Result(ctx, output))
	}
	return result
}

var _ types.Frame = (*Frame)(nil)
