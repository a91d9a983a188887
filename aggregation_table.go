package vtable

import (
	"github.com/pkg/errors"
	"www.velocidex.com/golang/vtable/fields"
	"www.velocidex.com/golang/vtable/frame"
	"www.velocidex.com/golang/vtable/types"
	"www.velocidex.com/golang/vtable/utils"
)

// Describes how an aggregation table is produced from its source.
type Aggregation struct {
	// The table to aggregate.
	Source types.TableId

	// Source rows are sorted by these columns before grouping. This
	// determines group order and the order seen by order sensitive
	// aggregates (first, last, enumerate).
	SortBy []string

	GroupBy []string
}

// An AggregationTable has no data of its own. Its data is produced
// by grouping and aggregating its source table once the source
// columns it needs are evaluated (not merely present).
type AggregationTable struct {
	*Table

	aggregation Aggregation
	plan        *types.AggregationPlan
	produced    bool
}

func NewAggregationTable(id types.TableId,
	aggregation Aggregation, fields *Fields) (*AggregationTable, error) {
	self := &AggregationTable{
		Table: &Table{
			id:    id,
			frame: frame.New(),
		},
		aggregation: aggregation,
	}

	err := self.init(self, fields)
	if err != nil {
		return nil, err
	}

	err = self.buildPlan()
	if err != nil {
		return nil, err
	}

	return self, nil
}

func (self *AggregationTable) buildPlan() error {
	if len(self.aggregation.GroupBy) == 0 {
		return errors.Wrapf(types.GroupKeyNotGrouped,
			"Aggregation table %v must group by at least one column", self.id)
	}

	duplicate := utils.FirstDuplicate(self.aggregation.GroupBy)
	if duplicate != "" {
		return errors.Errorf("Aggregation table %v groups by %v twice",
			self.id, duplicate)
	}

	plan := &types.AggregationPlan{}
	for _, field := range self.Fields() {
		produced, ok := field.(types.ProducedField)
		if !ok {
			continue
		}

		err := produced.Contribute(plan)
		if err != nil {
			return errors.Wrapf(err, "Table %v", self.id)
		}
	}

	for _, output := range plan.Outputs {
		if output.IsGroupKey() &&
			!utils.InString(self.aggregation.GroupBy, output.Source) {
			return errors.Wrapf(types.GroupKeyNotGrouped,
				"Field %v.%v takes group key %v but the table groups by %v",
				self.id, output.Output, output.Source,
				self.aggregation.GroupBy)
		}
	}

	self.plan = plan
	return nil
}

func (self *AggregationTable) Source() types.TableId {
	return self.aggregation.Source
}

// All the columns the production reads from the source table.
func (self *AggregationTable) requiredColumns() []string {
	result := []string{}
	result = append(result, self.aggregation.SortBy...)
	result = append(result, self.aggregation.GroupBy...)
	for _, output := range self.plan.Outputs {
		if !output.IsGroupKey() {
			result = append(result, output.Source)
		}
	}
	return result
}

func (self *AggregationTable) sourceTable() (types.Table, error) {
	if self.data_source == nil {
		return nil, errors.Errorf("Table %v is not attached to a data source",
			self.id)
	}

	source, pres := self.data_source.GetTable(self.aggregation.Source)
	if !pres {
		return nil, errors.Wrapf(types.TableNotFound,
			"Aggregation table %v aggregates %v", self.id,
			self.aggregation.Source)
	}
	return source, nil
}

func (self *AggregationTable) IsReadyToProduce() bool {
	if self.produced {
		return false
	}

	source, err := self.sourceTable()
	if err != nil {
		return false
	}

	for _, column := range self.requiredColumns() {
		if !fields.IsColumnEvaluated(source, column) {
			return false
		}
	}
	return true
}

// Sort the source, group it and materialize one row per group: the
// declared group key and aggregated columns in declaration order
// followed by the auto increment key.
func (self *AggregationTable) Produce() error {
	if self.produced {
		return nil
	}

	source, err := self.sourceTable()
	if err != nil {
		return err
	}

	sorted := source.Frame()
	if len(self.aggregation.SortBy) > 0 {
		sorted, err = sorted.SortBy(self.aggregation.SortBy...)
		if err != nil {
			return errors.Wrapf(err, "Table %v", self.id)
		}
	}

	// Aggregate outputs are renamed so they can not collide with
	// the group by columns in the grouped frame.
	aggregates := []types.AggregateSpec{}
	for _, output := range self.plan.Outputs {
		if !output.IsGroupKey() {
			aggregates = append(aggregates, types.AggregateSpec{
				Output:   aggregateColumn(output.Output),
				Source:   output.Source,
				Function: output.Function,
			})
		}
	}

	grouped, err := sorted.GroupBy(self.aggregation.GroupBy, aggregates)
	if err != nil {
		return errors.Wrapf(err, "Table %v", self.id)
	}

	result := frame.New()
	for _, output := range self.plan.Outputs {
		column_name := output.Source
		if !output.IsGroupKey() {
			column_name = aggregateColumn(output.Output)
		}

		column, pres := grouped.Column(column_name)
		if !pres {
			return errors.Wrapf(types.ColumnNotFound,
				"Table %v: grouped data has no column %v",
				self.id, column_name)
		}

		err = result.SetColumn(output.Output, column)
		if err != nil {
			return err
		}
	}

	if self.plan.Key != "" {
		keys := make([]types.Any, 0, grouped.Len())
		for i := 0; i < grouped.Len(); i++ {
			keys = append(keys, self.plan.KeyStart+int64(i))
		}

		err = result.SetColumn(self.plan.Key, keys)
		if err != nil {
			return err
		}
	}

	self.SetFrame(result)
	self.produced = true

	self.data_source.GetStats().IncGroupsProduced(grouped.Len())
	self.data_source.GetExplainer().Produced(self, grouped.Len())
	return nil
}

func aggregateColumn(name string) string {
	return "\x00aggregate:" + name
}

var _ types.Producer = (*AggregationTable)(nil)
