package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstDuplicate(t *testing.T) {
	assert.Equal(t, "", FirstDuplicate(nil))
	assert.Equal(t, "", FirstDuplicate([]string{"a", "b"}))
	assert.Equal(t, "b", FirstDuplicate([]string{"a", "b", "c", "b", "a"}))
}

func TestConversions(t *testing.T) {
	value, ok := ToInt64(uint16(7))
	assert.True(t, ok)
	assert.Equal(t, int64(7), value)

	float_value, ok := ToFloat(float32(0.5))
	assert.True(t, ok)
	assert.Equal(t, 0.5, float_value)

	_, ok = ToFloat("1")
	assert.False(t, ok)

	assert.True(t, InString([]string{"a", "b"}, "b"))
	assert.False(t, InString(nil, "b"))
	assert.True(t, IsArray([]int{}))
	assert.False(t, IsArray(nil))
}

func TestRepr(t *testing.T) {
	assert.Equal(t, `"a"`, Repr("a"))
	assert.Equal(t, `"a", "b"`, ReprList([]interface{}{"a", "b"}))
}
