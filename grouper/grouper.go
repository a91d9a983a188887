// Implements group by operation

package grouper

import (
	"io"

	"github.com/Velocidex/ordereddict"
	"github.com/pkg/errors"
	"www.velocidex.com/golang/vtable/aggregators"
	"www.velocidex.com/golang/vtable/types"
)

type DefaultGrouper struct{}

func (self *DefaultGrouper) Group(
	actor types.GroupbyActor) ([]*ordereddict.Dict, error) {

	// Aggregate functions (count, sum etc) operate by storing data
	// in a context between rows. When we group by we create a
	// different context for each bin - all the rows with the same
	// group by value are placed in the same bin and share the same
	// context.
	type AggregateContext struct {
		first_row int
		context   types.AggregatorCtx
	}

	// Collect all the rows with the same group_by member. This is a
	// map between unique group by values and an aggregate context.
	bins := ordereddict.NewDict()

	// Append this row to a bin based on a unique value of the group
	// by columns.
	for {
		row_idx, bin_idx, ok, err := actor.GetNextRow()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if !ok {
			continue
		}

		var aggregate_ctx *AggregateContext

		// Try to find the context in the map
		aggregate_ctx_any, pres := bins.Get(bin_idx)

		// No previous aggregate_row - initialize with a new context.
		if !pres {
			aggregate_ctx = &AggregateContext{
				first_row: row_idx,
				context:   aggregators.NewAggregatorCtx(),
			}
			bins.Set(bin_idx, aggregate_ctx)

		} else {
			aggregate_ctx = aggregate_ctx_any.(*AggregateContext)
		}

		actor.Aggregate(row_idx, aggregate_ctx.context)
	}

	// Emit the binned set as a new result set.
	result := make([]*ordereddict.Dict, 0, bins.Len())
	for _, key := range bins.Keys() {
		aggregate_ctx_any, _ := bins.Get(key)
		aggregate_ctx, ok := aggregate_ctx_any.(*AggregateContext)
		if ok {
			result = append(result, actor.MaterializeRow(
				aggregate_ctx.first_row, aggregate_ctx.context))
		}
	}

	return result, nil
}
