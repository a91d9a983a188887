package types

// A Field describes one column of a table. Stored fields describe
// the type contract of a column which must already exist in the
// table's data. Derived fields describe how the column is
// materialized by evaluation.
type Field interface {
	// The name is assigned by the owning table when the field is
	// bound and never changes afterwards.
	Name() string
	Table() Table

	// Attach the field to its table. A field may only be bound
	// once.
	Bind(name string, table Table) error

	// A short description of the field kind (e.g. "int", "lookup").
	Kind() string

	IsPrimaryKey() bool

	// Derived fields are materialized by evaluation. Stored fields
	// must be present in the table data at construction.
	IsDerived() bool

	// True when the field's column exists with its final values.
	IsEvaluated() bool

	// True when all upstream columns the field needs exist.
	IsReadyToBeEvaluated() bool

	// Check the column values against the field contract. Only
	// called for stored fields.
	Validate(values []Any) error

	// Resolve and enforce cross table references. Called once for
	// every field before evaluation starts.
	CheckReferences() error

	// Materialize the column.
	Evaluate() error
}

// A Table is an ordered collection of fields bound to a frame.
type Table interface {
	Id() TableId
	Frame() Frame
	SetFrame(frame Frame)

	// Fields in declaration order.
	Fields() []Field
	GetField(name string) (Field, bool)
	PrimaryKeyName() string

	DataSource() DataSource
	SetDataSource(data_source DataSource)
}

// The DataSource resolves table identities into tables. Tables and
// fields only keep a non owning handle to it.
type DataSource interface {
	GetTable(id TableId) (Table, bool)
	GetExplainer() Explainer
	GetStats() *Stats
	Log(format string, a ...interface{})
}

// Tables which produce their data from other tables (i.e. aggregation
// tables) implement this.
type Producer interface {
	Table
	IsReadyToProduce() bool
	Produce() error
}

// Fields which are materialized by a producer contribute their part
// of the production plan.
type ProducedField interface {
	Field
	Contribute(plan *AggregationPlan) error
}

// Describes one output column of a group by.
type AggregateSpec struct {
	// The output column name.
	Output string

	// The source column in the grouped frame.
	Source string

	// The aggregate function name. Empty for group key columns.
	Function string
}

func (self AggregateSpec) IsGroupKey() bool {
	return self.Function == ""
}

// The plan an aggregation table assembles from its fields before
// producing its data.
type AggregationPlan struct {
	// Non key output columns in declaration order.
	Outputs []AggregateSpec

	// The synthetic key column, which is emitted last.
	Key      string
	KeyStart int64
}
