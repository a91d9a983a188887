package protocols

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"www.velocidex.com/golang/vtable/types"
	"www.velocidex.com/golang/vtable/utils"
)

// HashKey returns a string which is the same for all values which
// are Eq() to each other. It is used to bin values into ordered
// dicts (which are keyed by string).
func HashKey(a types.Any) string {
	if types.IsNil(a) {
		return "null"
	}

	switch t := a.(type) {
	case string:
		return "s:" + strconv.Quote(t)

	case bool:
		return "b:" + strconv.FormatBool(t)

	case time.Time:
		return "t:" + t.UTC().Format(time.RFC3339Nano)

	case *time.Time:
		return "t:" + t.UTC().Format(time.RFC3339Nano)
	}

	if isInteger(a) {
		value, _ := utils.ToInt64(a)
		return fmt.Sprintf("n:%d", value)
	}

	if isFloat(a) {
		value, _ := utils.ToFloat(a)
		// Integral floats must hash like the equivalent int.
		if value == math.Trunc(value) && math.Abs(value) < 1<<53 {
			return fmt.Sprintf("n:%d", int64(value))
		}
		return "n:" + strconv.FormatFloat(value, 'g', -1, 64)
	}

	return fmt.Sprintf("o:%T:%s", a, utils.Repr(a))
}

// A single key for a tuple of values.
func HashKeys(values []types.Any) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, HashKey(value))
	}
	return strings.Join(parts, "|")
}
