package protocols

import (
	"www.velocidex.com/golang/vtable/types"
	"www.velocidex.com/golang/vtable/utils"
)

// Less than protocol. Values of the same family (numbers, strings,
// bools, times) compare naturally. Values of different families are
// ordered by family so that Lt is a total order usable for sorting:
// numbers < strings < bools < times < everything else. NULL is never
// less than anything and nothing is less than NULL.
func Lt(a types.Any, b types.Any) bool {
	if types.IsNil(a) || types.IsNil(b) {
		return false
	}

	rank_a := rank(a)
	rank_b := rank(b)
	if rank_a != rank_b {
		return rank_a < rank_b
	}

	switch rank_a {
	case rankNumber:
		if isInteger(a) && isInteger(b) {
			lhs, _ := utils.ToInt64(a)
			rhs, _ := utils.ToInt64(b)
			return lhs < rhs
		}
		lhs, _ := utils.ToFloat(a)
		rhs, _ := utils.ToFloat(b)
		return lhs < rhs

	case rankString:
		return a.(string) < b.(string)

	case rankBool:
		return !a.(bool) && b.(bool)

	case rankTime:
		lhs, _ := toTime(a)
		rhs, _ := toTime(b)
		return lhs.Before(*rhs)
	}

	// Unknown types are ordered by their representation.
	return utils.Repr(a) < utils.Repr(b)
}

const (
	rankNumber = iota
	rankString
	rankBool
	rankTime
	rankOther
)

func rank(a types.Any) int {
	if isNumber(a) {
		return rankNumber
	}

	switch a.(type) {
	case string:
		return rankString
	case bool:
		return rankBool
	}

	_, ok := toTime(a)
	if ok {
		return rankTime
	}
	return rankOther
}
