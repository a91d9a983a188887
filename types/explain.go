package types

// An Explainer receives events as the data source wires and evaluates
// its tables. It is mostly useful to see why a model deadlocks.
type Explainer interface {
	// Called before the fixed point loop with the initial worklist.
	StartEvaluation(fields []Field)

	// A foreign key was checked and replaced values were reset to
	// the default.
	ReferencesChecked(field Field, replaced int)

	// A field was evaluated in the given pass.
	FieldEvaluated(field Field, pass int)

	// A producer materialized its data.
	Produced(table Table, groups int)

	// The loop made no progress. These are the stuck fields.
	Deadlock(fields []Field)
}
