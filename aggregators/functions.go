// Aggregate functions used by group by.

// Aggregate functions store state between rows in an AggregatorCtx.
// The grouper creates a different AggregatorCtx for each bin - all
// the rows with the same group by value share the same context -
// therefore the result is computed over each group separately.
//
// Every aggregate is given a unique name within the context (usually
// the output column name) so several aggregates, even of the same
// function, can share one context without interfering.

package aggregators

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"www.velocidex.com/golang/vtable/protocols"
	"www.velocidex.com/golang/vtable/types"
	"www.velocidex.com/golang/vtable/utils"
)

var (
	mu       sync.Mutex
	registry = make(map[string]types.AggregateFunction)
)

// Register makes an aggregate function available by name. Later
// registrations replace earlier ones.
func Register(function types.AggregateFunction) {
	mu.Lock()
	defer mu.Unlock()

	registry[function.Name()] = function
}

func GetAggregate(name string) (types.AggregateFunction, error) {
	mu.Lock()
	defer mu.Unlock()

	function, pres := registry[name]
	if !pres {
		return nil, errors.Wrapf(types.UnknownAggregateFunction,
			"Aggregate function %v is not known (known: %v)", name,
			utils.Repr(names()))
	}
	return function, nil
}

func names() []string {
	result := make([]string, 0, len(registry))
	for k := range registry {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

func init() {
	for _, function := range []types.AggregateFunction{
		_SumFunction{},
		_CountFunction{},
		_MinFunction{},
		_MaxFunction{},
		_MeanFunction{},
		_FirstFunction{},
		_LastFunction{},
		_EnumerateFunction{},
	} {
		Register(function)
	}
}

// Sums the non null values. The result is an int64 while all values
// are integers and becomes a float64 as soon as a float is seen.
type _SumFunction struct{}

func (self _SumFunction) Name() string {
	return "sum"
}

func (self _SumFunction) Update(
	ctx types.AggregatorCtx, name string, value types.Any) {
	if types.IsNil(value) {
		return
	}

	ctx.Modify(name, func(previous_value_any types.Any, pres bool) types.Any {
		if !pres {
			previous_value_any = int64(0)
		}

		sum := protocols.Add(previous_value_any, value)
		if types.IsNil(sum) {
			// Not a number - keep the old sum.
			return previous_value_any
		}
		return sum
	})
}

func (self _SumFunction) Result(ctx types.AggregatorCtx, name string) types.Any {
	res, pres := Get(ctx, name)
	if !pres {
		return int64(0)
	}
	return res
}

// Counts the non null values.
type _CountFunction struct{}

func (self _CountFunction) Name() string {
	return "count"
}

func (self _CountFunction) Update(
	ctx types.AggregatorCtx, name string, value types.Any) {
	if types.IsNil(value) {
		return
	}

	ctx.Modify(name, func(previous_value_any types.Any, pres bool) types.Any {
		count := int64(0)
		if pres {
			count, _ = previous_value_any.(int64)
		}
		return count + 1
	})
}

func (self _CountFunction) Result(ctx types.AggregatorCtx, name string) types.Any {
	res, pres := Get(ctx, name)
	if !pres {
		return int64(0)
	}
	return res
}

type _MinFunction struct{}

func (self _MinFunction) Name() string {
	return "min"
}

func (self _MinFunction) Update(
	ctx types.AggregatorCtx, name string, value types.Any) {
	if types.IsNil(value) {
		return
	}

	ctx.Modify(name, func(previous_value_any types.Any, pres bool) types.Any {
		if pres && !protocols.Lt(value, previous_value_any) {
			return previous_value_any
		}
		return value
	})
}

func (self _MinFunction) Result(ctx types.AggregatorCtx, name string) types.Any {
	return getOrNull(ctx, name)
}

type _MaxFunction struct{}

func (self _MaxFunction) Name() string {
	return "max"
}

func (self _MaxFunction) Update(
	ctx types.AggregatorCtx, name string, value types.Any) {
	if types.IsNil(value) {
		return
	}

	ctx.Modify(name, func(previous_value_any types.Any, pres bool) types.Any {
		if pres && !protocols.Lt(previous_value_any, value) {
			return previous_value_any
		}
		return value
	})
}

func (self _MaxFunction) Result(ctx types.AggregatorCtx, name string) types.Any {
	return getOrNull(ctx, name)
}

type _meanState struct {
	sum   float64
	count int64
}

// Mean of the non null numeric values.
type _MeanFunction struct{}

func (self _MeanFunction) Name() string {
	return "mean"
}

func (self _MeanFunction) Update(
	ctx types.AggregatorCtx, name string, value types.Any) {
	number, ok := utils.ToFloat(value)
	if !ok || types.IsNil(value) {
		return
	}

	ctx.Modify(name, func(previous_value_any types.Any, pres bool) types.Any {
		state := _meanState{}
		if pres {
			state, _ = previous_value_any.(_meanState)
		}
		state.sum += number
		state.count++
		return state
	})
}

func (self _MeanFunction) Result(ctx types.AggregatorCtx, name string) types.Any {
	res, pres := Get(ctx, name)
	if !pres {
		return types.Null{}
	}

	state, ok := res.(_meanState)
	if !ok || state.count == 0 {
		return types.Null{}
	}
	return state.sum / float64(state.count)
}

// The first non null value of the group (in sorted order).
type _FirstFunction struct{}

func (self _FirstFunction) Name() string {
	return "first"
}

func (self _FirstFunction) Update(
	ctx types.AggregatorCtx, name string, value types.Any) {
	if types.IsNil(value) {
		return
	}

	ctx.Modify(name, func(previous_value_any types.Any, pres bool) types.Any {
		if pres {
			return previous_value_any
		}
		return value
	})
}

func (self _FirstFunction) Result(ctx types.AggregatorCtx, name string) types.Any {
	return getOrNull(ctx, name)
}

// The last non null value of the group (in sorted order).
type _LastFunction struct{}

func (self _LastFunction) Name() string {
	return "last"
}

func (self _LastFunction) Update(
	ctx types.AggregatorCtx, name string, value types.Any) {
	if types.IsNil(value) {
		return
	}

	ctx.Modify(name, func(previous_value_any types.Any, pres bool) types.Any {
		return value
	})
}

func (self _LastFunction) Result(ctx types.AggregatorCtx, name string) types.Any {
	return getOrNull(ctx, name)
}

// Collect all the items in each group by bin.
type _EnumerateFunction struct{}

func (self _EnumerateFunction) Name() string {
	return "enumerate"
}

func (self _EnumerateFunction) Update(
	ctx types.AggregatorCtx, name string, value types.Any) {
	ctx.Modify(name, func(previous_value_any types.Any, pres bool) types.Any {
		if pres {
			previous_value_array, ok := previous_value_any.([]types.Any)
			if ok {
				return append(previous_value_array, value)
			}
		}
		return []types.Any{value}
	})
}

func (self _EnumerateFunction) Result(ctx types.AggregatorCtx, name string) types.Any {
	res, pres := Get(ctx, name)
	if !pres {
		return []types.Any{}
	}
	return res
}

func getOrNull(ctx types.AggregatorCtx, name string) types.Any {
	res, pres := Get(ctx, name)
	if !pres {
		return types.Null{}
	}
	return res
}
