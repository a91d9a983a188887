package types

import (
	"sync/atomic"

	"github.com/Velocidex/ordereddict"
)

// A lightweight struct for accumulating general stats.
type Stats struct {
	// Number of passes of the fixed point loop.
	_Passes uint64

	// Total number of fields evaluated.
	_FieldsEvaluated uint64

	// Foreign key values replaced with the default.
	_ReferencesReplaced uint64

	// Rows produced by aggregation tables.
	_GroupsProduced uint64
}

func (self *Stats) IncPasses() {
	atomic.AddUint64(&self._Passes, uint64(1))
}

func (self *Stats) IncFieldsEvaluated() {
	atomic.AddUint64(&self._FieldsEvaluated, uint64(1))
}

func (self *Stats) IncReferencesReplaced(i int) {
	atomic.AddUint64(&self._ReferencesReplaced, uint64(i))
}

func (self *Stats) IncGroupsProduced(i int) {
	atomic.AddUint64(&self._GroupsProduced, uint64(i))
}

func (self *Stats) Passes() uint64 {
	return atomic.LoadUint64(&self._Passes)
}

func (self *Stats) FieldsEvaluated() uint64 {
	return atomic.LoadUint64(&self._FieldsEvaluated)
}

func (self *Stats) ReferencesReplaced() uint64 {
	return atomic.LoadUint64(&self._ReferencesReplaced)
}

func (self *Stats) GroupsProduced() uint64 {
	return atomic.LoadUint64(&self._GroupsProduced)
}

func (self *Stats) Snapshot() *ordereddict.Dict {
	return ordereddict.NewDict().
		Set("Passes", self.Passes()).
		Set("FieldsEvaluated", self.FieldsEvaluated()).
		Set("ReferencesReplaced", self.ReferencesReplaced()).
		Set("GroupsProduced", self.GroupsProduced())
}
