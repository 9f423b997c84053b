package ids

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := New()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestNewWithPrefix(t *testing.T) {
	id := NewWithPrefix("feedback")
	assert.True(t, strings.HasPrefix(id, "feedback_"))
	assert.Len(t, strings.TrimPrefix(id, "feedback_"), 27)
}
