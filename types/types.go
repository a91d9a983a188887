package types

// These are the public types exposed to package clients.

// A Generic object which may be stored in a table cell.
type Any interface{}

// Tables are identified by an explicit tag assigned at declaration
// time. The tag is used as the key into the DataSource and for all
// cross table references.
type TableId string

func (self TableId) String() string {
	return string(self)
}

// A row function receives exactly the declared source columns of a
// single row (in declaration order) and returns the new cell value.
type RowFunction func(row RowValues) (Any, error)

// The read only view of a row passed to row functions. It is
// satisfied by *ordereddict.Dict.
type RowValues interface {
	Get(key string) (interface{}, bool)
	Keys() []string
	Len() int
}
