package sort

import (
	"sort"

	"github.com/pkg/errors"
	"www.velocidex.com/golang/vtable/protocols"
	"www.velocidex.com/golang/vtable/types"
)

type DefaultSorter struct{}

// Sort returns the row indexes of the frame ordered by the keys. The
// sort is stable so rows with equal keys keep their original order.
func (self DefaultSorter) Sort(
	frame types.Frame, keys []string, desc bool) ([]int, error) {

	sort_ctx := &DefaultSorterCtx{
		Desc: desc,
	}

	for _, key := range keys {
		column, pres := frame.Column(key)
		if !pres {
			return nil, errors.Wrapf(types.ColumnNotFound,
				"Unable to sort by %v", key)
		}
		sort_ctx.Columns = append(sort_ctx.Columns, column)
	}

	for i := 0; i < frame.Len(); i++ {
		sort_ctx.Items = append(sort_ctx.Items, i)
	}

	sort.Stable(sort_ctx)

	return sort_ctx.Items, nil
}

// The Default Sorter implements sorting in memory.
type DefaultSorterCtx struct {
	// Row indexes being sorted.
	Items []int

	// The key columns, most significant first.
	Columns [][]types.Any
	Desc    bool
}

func (self *DefaultSorterCtx) Len() int {
	return len(self.Items)
}

func (self *DefaultSorterCtx) Less(i, j int) bool {
	for _, column := range self.Columns {
		element1 := column[self.Items[i]]
		element2 := column[self.Items[j]]

		// NULLs always sort last, regardless of direction.
		null1 := types.IsNil(element1)
		null2 := types.IsNil(element2)
		if null1 || null2 {
			if null1 && null2 {
				continue
			}
			return null2
		}

		if protocols.Lt(element1, element2) {
			return !self.Desc
		}

		if protocols.Lt(element2, element1) {
			return self.Desc
		}
	}

	return false
}

func (self *DefaultSorterCtx) Swap(i, j int) {
	element1 := self.Items[i]
	self.Items[i] = self.Items[j]
	self.Items[j] = element1
}
