package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "aptilab:results:user:a@b.c", Key("results", "user", "a@b.c"))
	assert.Equal(t, "aptilab:results:user:a@b.c", Key("results", "user", "a@b.c", []string{}...))
	assert.Equal(t, "aptilab:questions:topic:Maths:10", Key("questions", "topic", "Maths", "10"))
	assert.Equal(t, "aptilab:questions:topic:Maths:10_store", Key("questions", "topic", "Maths", "10", "store"))
}

func TestNamedKeys(t *testing.T) {
	assert.Equal(t, "aptilab:results:user:ann@example.com", UserResultsKey("Ann@Example.com"))
	assert.Equal(t, "aptilab:health:ai:probe", AIHealthKey())
	assert.Equal(t, "aptilab:questions:source:mode", SourceModeKey())
}
