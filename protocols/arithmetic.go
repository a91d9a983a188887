package protocols

import (
	"www.velocidex.com/golang/vtable/types"
	"www.velocidex.com/golang/vtable/utils"
)

// Arithmetic on cell values.

// LHS    RHS
// int    int  -> lhs + rhs
// int    float -> float(lhs) + rhs
// float  int -> lhs + float(rhs)
// float  float -> lhs + rhs
// string string -> lhs + rhs
//
// Anything else (including NULL) produces NULL.
func Add(a types.Any, b types.Any) types.Any {
	lhs_str, ok := a.(string)
	if ok {
		rhs_str, ok := b.(string)
		if ok {
			return lhs_str + rhs_str
		}
		return types.Null{}
	}

	return numeric(a, b,
		func(lhs, rhs int64) (types.Any, bool) { return lhs + rhs, true },
		func(lhs, rhs float64) (types.Any, bool) { return lhs + rhs, true })
}

func Sub(a types.Any, b types.Any) types.Any {
	return numeric(a, b,
		func(lhs, rhs int64) (types.Any, bool) { return lhs - rhs, true },
		func(lhs, rhs float64) (types.Any, bool) { return lhs - rhs, true })
}

func Mul(a types.Any, b types.Any) types.Any {
	return numeric(a, b,
		func(lhs, rhs int64) (types.Any, bool) { return lhs * rhs, true },
		func(lhs, rhs float64) (types.Any, bool) { return lhs * rhs, true })
}

// Division always produces a float. Division by 0 produces NULL.
func Div(a types.Any, b types.Any) types.Any {
	return numeric(a, b,
		func(lhs, rhs int64) (types.Any, bool) {
			if rhs == 0 {
				return nil, false
			}
			return float64(lhs) / float64(rhs), true
		},
		func(lhs, rhs float64) (types.Any, bool) {
			if rhs == 0 {
				return nil, false
			}
			return lhs / rhs, true
		})
}

func numeric(a types.Any, b types.Any,
	int_op func(lhs, rhs int64) (types.Any, bool),
	float_op func(lhs, rhs float64) (types.Any, bool)) types.Any {
	if types.IsNil(a) || types.IsNil(b) {
		return types.Null{}
	}

	if isInteger(a) && isInteger(b) {
		lhs, _ := utils.ToInt64(a)
		rhs, _ := utils.ToInt64(b)
		res, ok := int_op(lhs, rhs)
		if ok {
			return res
		}
		return types.Null{}
	}

	if isNumber(a) && isNumber(b) {
		lhs, _ := utils.ToFloat(a)
		rhs, _ := utils.ToFloat(b)
		res, ok := float_op(lhs, rhs)
		if ok {
			return res
		}
	}

	return types.Null{}
}
