package types

// A Frame is a column oriented table of data. All operations which
// return a Frame return a new frame and leave the receiver
// untouched, except SetColumn which modifies the frame in place.
//
// The vtable/frame package provides the default in memory
// implementation but any columnar library with equivalent operations
// may be adapted.
type Frame interface {
	// Number of rows.
	Len() int

	// Column names in order.
	Columns() []string
	HasColumn(name string) bool

	// Returns the values of the column. The returned slice must not
	// be modified by the caller.
	Column(name string) ([]Any, bool)

	// Adds or replaces a column. The number of values must match
	// the length of the frame (unless the frame has no columns).
	SetColumn(name string, values []Any) error

	// Returns a new frame with only the named columns, in the order
	// given.
	Select(names ...string) (Frame, error)

	Rename(old_name, new_name string) (Frame, error)

	// Left join of this frame with the right frame where
	// left_on == right_on. The right key column is not repeated in
	// the output. Rows without a match get NULL cells. Right keys
	// are expected to be unique.
	LeftMerge(right Frame, left_on, right_on string) (Frame, error)

	// Stable sort on the keys in order.
	SortBy(keys ...string) (Frame, error)

	// Group by the keys and aggregate each group. The output has
	// the key columns followed by one column per aggregate, one row
	// per group in order of first appearance.
	GroupBy(keys []string, aggregates []AggregateSpec) (Frame, error)

	// Frequency of every distinct non null value of the column, in
	// order of first appearance.
	ValueCounts(name string) ([]ValueCount, error)
}

type ValueCount struct {
	Value Any
	Count int
}
