package types

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsNil(t *testing.T) {
	var nil_map map[string]int
	var nil_ptr *int

	for _, value := range []interface{}{
		nil, Null{}, &Null{}, math.NaN(), float32(math.NaN()), nil_map, nil_ptr,
	} {
		assert.True(t, IsNil(value), "%#v", value)
	}

	for _, value := range []interface{}{
		0, "", false, 1.5, time.Time{}, []int{},
	} {
		assert.False(t, IsNil(value), "%#v", value)
	}
}

func TestIsFalsy(t *testing.T) {
	for _, value := range []interface{}{
		0, int64(0), uint8(0), 0.0, "", false, Null{},
	} {
		assert.True(t, IsFalsy(value), "%#v", value)
	}

	for _, value := range []interface{}{
		1, "0", true, time.Time{}, &time.Time{}, -0.5,
	} {
		assert.False(t, IsFalsy(value), "%#v", value)
	}
}

func TestNullMarshal(t *testing.T) {
	serialized, err := json.Marshal([]Any{Null{}, int64(1)})
	assert.NoError(t, err)
	assert.Equal(t, "[null,1]", string(serialized))
}

func TestStats(t *testing.T) {
	stats := &Stats{}
	stats.IncPasses()
	stats.IncPasses()
	stats.IncReferencesReplaced(3)

	snapshot := stats.Snapshot()
	passes, _ := snapshot.Get("Passes")
	assert.Equal(t, uint64(2), passes)
	assert.Equal(t, uint64(3), stats.ReferencesReplaced())
	assert.Equal(t, uint64(0), stats.GroupsProduced())
}
