package protocols

import (
	"reflect"
	"time"

	"www.velocidex.com/golang/vtable/types"
	"www.velocidex.com/golang/vtable/utils"
)

// Comparison table
// LHS   RHS  -> Promoted
// int   int  -> lhs == rhs
// int   float -> float(lhs) == rhs
// float int  -> lhs == float(rhs)
// float float -> lhs == rhs
//
// NULL is only equal to NULL.
func Eq(a types.Any, b types.Any) bool {
	if types.IsNil(a) {
		return types.IsNil(b)
	}

	if types.IsNil(b) {
		return false
	}

	switch t := a.(type) {
	case string:
		rhs, ok := b.(string)
		return ok && t == rhs

	case bool:
		rhs, ok := b.(bool)
		return ok && t == rhs

	case time.Time:
		rhs, ok := toTime(b)
		return ok && t.Equal(*rhs)

	case *time.Time:
		rhs, ok := toTime(b)
		return ok && t.Equal(*rhs)
	}

	if isInteger(a) && isInteger(b) {
		lhs, _ := utils.ToInt64(a)
		rhs, _ := utils.ToInt64(b)
		return lhs == rhs
	}

	if isNumber(a) && isNumber(b) {
		lhs, _ := utils.ToFloat(a)
		rhs, _ := utils.ToFloat(b)
		return lhs == rhs
	}

	return reflect.DeepEqual(a, b)
}

func isInteger(a types.Any) bool {
	switch a.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func isFloat(a types.Any) bool {
	switch a.(type) {
	case float32, float64:
		return true
	}
	return false
}

func isNumber(a types.Any) bool {
	return isInteger(a) || isFloat(a)
}

func toTime(a types.Any) (*time.Time, bool) {
	switch t := a.(type) {
	case time.Time:
		return &t, true
	case *time.Time:
		if t == nil {
			return nil, false
		}
		return t, true
	default:
		return nil, false
	}
}
