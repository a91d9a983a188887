package vtable

import (
	"fmt"
	"log"
	"strings"

	"github.com/Velocidex/ordereddict"
	"github.com/pkg/errors"
	"www.velocidex.com/golang/vtable/explain"
	"www.velocidex.com/golang/vtable/fields"
	"www.velocidex.com/golang/vtable/types"
)

// A DataSource owns a fixed set of tables. Constructing it wires the
// tables together, enforces referential integrity and evaluates every
// derived field.
type DataSource struct {
	// Table id -> types.Table in construction order.
	tables *ordereddict.Dict

	logger    *log.Logger
	explainer types.Explainer
	stats     *types.Stats
}

type Option func(self *DataSource)

func WithLogger(logger *log.Logger) Option {
	return func(self *DataSource) {
		self.logger = logger
	}
}

func WithExplainer(explainer types.Explainer) Option {
	return func(self *DataSource) {
		self.explainer = explainer
	}
}

func NewDataSource(tables []types.Table, options ...Option) (*DataSource, error) {
	self := &DataSource{
		tables:    ordereddict.NewDict(),
		explainer: explain.NULL_EXPLAINER,
		stats:     &types.Stats{},
	}

	for _, option := range options {
		option(self)
	}

	for _, table := range tables {
		_, pres := self.tables.Get(table.Id().String())
		if pres {
			return nil, errors.Wrapf(types.DuplicateTableId,
				"Table %v was given more than once", table.Id())
		}
		self.tables.Set(table.Id().String(), table)
	}

	self.setDataSourceForTables()

	err := self.checkReferences()
	if err != nil {
		return nil, err
	}

	_, err = self.Evaluate()
	if err != nil {
		return nil, err
	}

	return self, nil
}

func (self *DataSource) setDataSourceForTables() {
	for _, table := range self.Tables() {
		table.SetDataSource(self)
	}
}

func (self *DataSource) checkReferences() error {
	for _, table := range self.Tables() {
		for _, field := range table.Fields() {
			err := field.CheckReferences()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Evaluate runs the fixed point loop over all fields which are not
// evaluated yet, and returns the number of fields evaluated. Every
// pass evaluates the fields which are ready; the loop ends when no
// fields are left, and fails when a pass makes no progress.
func (self *DataSource) Evaluate() (int, error) {
	fields_to_evaluate := []types.Field{}
	for _, table := range self.Tables() {
		for _, field := range table.Fields() {
			if !field.IsEvaluated() {
				fields_to_evaluate = append(fields_to_evaluate, field)
			}
		}
	}

	if len(fields_to_evaluate) == 0 {
		return 0, nil
	}

	self.explainer.StartEvaluation(fields_to_evaluate)

	evaluated := 0
	pass := 0
	for len(fields_to_evaluate) > 0 {
		pass++
		self.stats.IncPasses()

		not_evaluated_fields := []types.Field{}
		for _, field := range fields_to_evaluate {
			// Another field may have materialized this one
			// (e.g. aggregation table fields).
			if field.IsEvaluated() {
				continue
			}

			if !field.IsReadyToBeEvaluated() {
				not_evaluated_fields = append(not_evaluated_fields, field)
				continue
			}

			err := field.Evaluate()
			if err != nil {
				return evaluated, err
			}

			evaluated++
			self.stats.IncFieldsEvaluated()
			self.explainer.FieldEvaluated(field, pass)
		}

		if len(not_evaluated_fields) == len(fields_to_evaluate) {
			self.explainer.Deadlock(not_evaluated_fields)

			names := make([]string, 0, len(not_evaluated_fields))
			for _, field := range not_evaluated_fields {
				names = append(names, fields.QualifiedName(field))
			}
			return evaluated, errors.Wrapf(types.CannotEvaluateFields,
				"%s", strings.Join(names, ", "))
		}

		fields_to_evaluate = not_evaluated_fields
	}

	self.Debug("Evaluated %v fields in %v passes", evaluated, pass)
	return evaluated, nil
}

func (self *DataSource) GetTable(id types.TableId) (types.Table, bool) {
	table_any, pres := self.tables.Get(id.String())
	if !pres {
		return nil, false
	}
	table, ok := table_any.(types.Table)
	return table, ok
}

// All tables in construction order.
func (self *DataSource) Tables() []types.Table {
	result := make([]types.Table, 0, self.tables.Len())
	for _, key := range self.tables.Keys() {
		table_any, _ := self.tables.Get(key)
		result = append(result, table_any.(types.Table))
	}
	return result
}

func (self *DataSource) GetExplainer() types.Explainer {
	return self.explainer
}

func (self *DataSource) GetStats() *types.Stats {
	return self.stats
}

func (self *DataSource) SetLogger(logger *log.Logger) {
	self.logger = logger
}

func (self *DataSource) GetLogger() *log.Logger {
	return self.logger
}

func (self *DataSource) Log(format string, a ...interface{}) {
	if self.logger != nil {
		msg := fmt.Sprintf(format, a...)
		self.logger.Print(msg)
	}
}

func (self *DataSource) Debug(format string, a ...interface{}) {
	self.Log("DEBUG:"+format, a...)
}

func (self *DataSource) Error(format string, a ...interface{}) {
	self.Log("ERROR:"+format, a...)
}

var _ types.DataSource = (*DataSource)(nil)
