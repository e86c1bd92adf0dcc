package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewULID(t *testing.T) {
	a, b := NewULID(), NewULID()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.True(t, IsULID(a))
	assert.False(t, IsULID("not-a-ulid"))
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 1, ClampInt(0, 1, 20))
	assert.Equal(t, 20, ClampInt(99, 1, 20))
	assert.Equal(t, 7, ClampInt(7, 1, 20))
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 10, ParseIntDefault("", 10))
	assert.Equal(t, 10, ParseIntDefault("abc", 10))
	assert.Equal(t, 12, ParseIntDefault("12abc", 10))
	assert.Equal(t, 5, ParseIntDefault(" 5 ", 10))
	assert.Equal(t, -3, ParseIntDefault("-3", 10))
	assert.Equal(t, 10, ParseIntDefault("-", 10))
}
