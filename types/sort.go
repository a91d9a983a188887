package types

// A Sorter is a pluggable way to sort the rows of a frame. It returns
// the row indexes in sorted order.
type Sorter interface {
	Sort(frame Frame, keys []string, desc bool) ([]int, error)
}
