package setutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []string
		expected bool
	}{
		{"same order", []string{"id", "name"}, []string{"id", "name"}, true},
		{"different order", []string{"name", "id"}, []string{"id", "name"}, true},
		{"duplicates ignored", []string{"id", "id"}, []string{"id"}, true},
		{"missing key", []string{"id", "name"}, []string{"id"}, false},
		{"extra key", []string{"id"}, []string{"id", "name"}, false},
		{"both empty", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Equal(tt.a, tt.b))
		})
	}
}

func TestMissing(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, Missing([]string{"c", "a", "b"}, []string{"b"}))
	assert.Nil(t, Missing([]string{"a"}, []string{"a", "b"}))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, Dedupe([]string{"b", "a", "b"}))
	assert.Empty(t, Dedupe(nil))
}
