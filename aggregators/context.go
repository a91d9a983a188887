package aggregators

import (
	"sync"

	"www.velocidex.com/golang/vtable/types"
)

type AggregatorCtx struct {
	mu   sync.Mutex
	data map[string]types.Any
}

func (self *AggregatorCtx) Modify(name string,
	modifier func(old_value types.Any, pres bool) types.Any) types.Any {
	self.mu.Lock()
	defer self.mu.Unlock()

	old_value, pres := self.data[name]
	new_value := modifier(old_value, pres)

	// Reading an absent value must not create it.
	if !pres && new_value == nil {
		return nil
	}
	self.data[name] = new_value
	return new_value
}

// Read the current value without changing it.
func Get(ctx types.AggregatorCtx, name string) (types.Any, bool) {
	var res types.Any
	res_pres := false
	ctx.Modify(name, func(old_value types.Any, pres bool) types.Any {
		res = old_value
		res_pres = pres
		return old_value
	})
	return res, res_pres
}

func NewAggregatorCtx() *AggregatorCtx {
	return &AggregatorCtx{
		data: make(map[string]types.Any),
	}
}
