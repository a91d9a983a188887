package types

import (
	"github.com/Velocidex/ordereddict"
)

// The GroupbyActor is passed to the grouper by the caller. The
// Grouper will then use it to create the result set. It is a way of
// delegating just the functionality required by the grouper to the
// frame without exposing the internals of the frame to the grouper.
type GroupbyActor interface {
	// Receive the next row. Returns
	// 1. The index of the row
	// 2. The group by bin index
	// 3. false if the row should be skipped (e.g. NULL group key)
	// 4. An error (Usually io.EOF if the rows are exhausted).
	GetNextRow() (int, string, bool, error)

	// Update the aggregate context of the bin with the row.
	Aggregate(row_idx int, ctx AggregatorCtx)

	// Materialize the output row of the bin. first_row is the index
	// of the first row placed in the bin.
	MaterializeRow(first_row int, ctx AggregatorCtx) *ordereddict.Dict
}

// A grouper receives rows and groups them into groups. Callers must
// provide a valid actor. Results are not sorted but the order is
// stable.
type Grouper interface {
	Group(actor GroupbyActor) ([]*ordereddict.Dict, error)
}
