package fields

import (
	"github.com/pkg/errors"
	"www.velocidex.com/golang/vtable/aggregators"
	"www.velocidex.com/golang/vtable/types"
)

// Fields of an aggregation table. They are never evaluated on their
// own: evaluating any of them produces the whole table, after which
// all of them are evaluated.
type producedField struct {
	BaseField
	producer types.Producer
}

func (self *producedField) Bind(name string, table types.Table) error {
	producer, ok := table.(types.Producer)
	if !ok {
		return errors.Wrapf(types.NotAnAggregationTable,
			"Field %v of %v can only be used in an aggregation table",
			name, table.Id())
	}

	err := self.BaseField.Bind(name, table)
	if err != nil {
		return err
	}

	self.producer = producer
	return nil
}

func (self *producedField) IsDerived() bool {
	return true
}

func (self *producedField) IsEvaluated() bool {
	return self.hasColumn()
}

func (self *producedField) IsReadyToBeEvaluated() bool {
	return self.producer != nil && self.producer.IsReadyToProduce()
}

func (self *producedField) Evaluate() error {
	return self.producer.Produce()
}

// A synthetic primary key numbering the groups of an aggregation
// table.
type AutoIncrementKeyField struct {
	producedField
	start int64
}

func NewAutoIncrementKeyField() *AutoIncrementKeyField {
	result := &AutoIncrementKeyField{start: 1}
	result.primary_key = true
	return result
}

// Numbering starts at start instead of 1.
func (self *AutoIncrementKeyField) StartingAt(start int64) *AutoIncrementKeyField {
	self.start = start
	return self
}

func (self *AutoIncrementKeyField) Kind() string {
	return "auto_increment_key"
}

func (self *AutoIncrementKeyField) Contribute(plan *types.AggregationPlan) error {
	if plan.Key != "" {
		return errors.Wrapf(types.MoreThanOnePrimaryKeySpecified,
			"Both %v and %v are auto increment keys", plan.Key, self.name)
	}
	plan.Key = self.name
	plan.KeyStart = self.start
	return nil
}

// Carries the value of a group by column.
type GroupKeyField struct {
	producedField
	source string
}

func NewGroupKeyField(source string) *GroupKeyField {
	return &GroupKeyField{source: source}
}

func (self *GroupKeyField) Kind() string {
	return "group_key"
}

func (self *GroupKeyField) Source() string {
	return self.source
}

func (self *GroupKeyField) Contribute(plan *types.AggregationPlan) error {
	plan.Outputs = append(plan.Outputs, types.AggregateSpec{
		Output: self.name,
		Source: self.source,
	})
	return nil
}

// Aggregates a column of the source table over each group.
type AggregatedField struct {
	producedField
	source   string
	function string
}

func NewAggregatedField(source string, aggregate_function string) (*AggregatedField, error) {
	_, err := aggregators.GetAggregate(aggregate_function)
	if err != nil {
		return nil, err
	}

	return &AggregatedField{
		source:   source,
		function: aggregate_function,
	}, nil
}

func (self *AggregatedField) Kind() string {
	return "aggregated"
}

func (self *AggregatedField) Source() string {
	return self.source
}

func (self *AggregatedField) Contribute(plan *types.AggregationPlan) error {
	plan.Outputs = append(plan.Outputs, types.AggregateSpec{
		Output:   self.name,
		Source:   self.source,
		Function: self.function,
	})
	return nil
}
