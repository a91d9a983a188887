package types

import (
	"math"
	"reflect"
	"time"
)

// A real type which encodes to JSON NULL. Using go's nil is dangerous
// because it forces constant checking for nil pointer dereference. It
// is safer to just store this value when a cell needs to be NULL.
type Null struct{}

func (self Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

func (self Null) String() string {
	return "Null"
}

func IsNil(a interface{}) bool {
	if a == nil {
		return true
	}

	switch t := a.(type) {
	case Null, *Null:
		return true

	// Columns loaded from numeric sources represent missing values
	// as NaN.
	case float64:
		return math.IsNaN(t)
	case float32:
		return math.IsNaN(float64(t))

	default:
		switch reflect.TypeOf(a).Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Slice:
			//use of IsNil method
			return reflect.ValueOf(a).IsNil()
		}
		return false
	}
}

// Falsy values are the zero values of the basic scalar types. Note
// that a zero time.Time is not falsy.
func IsFalsy(a interface{}) bool {
	switch t := a.(type) {
	case bool:
		return !t
	case string:
		return t == ""
	case int:
		return t == 0
	case int8:
		return t == 0
	case int16:
		return t == 0
	case int32:
		return t == 0
	case int64:
		return t == 0
	case uint:
		return t == 0
	case uint8:
		return t == 0
	case uint16:
		return t == 0
	case uint32:
		return t == 0
	case uint64:
		return t == 0
	case float32:
		return t == 0
	case float64:
		return t == 0
	case time.Time, *time.Time:
		return false
	}
	return IsNil(a)
}
