package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		expectErr    bool
		expectedKeys []string
		expectedLen  int
	}{
		{
			name:         "single object",
			raw:          `{"id": 1, "name": "a"}`,
			expectedKeys: []string{"id", "name"},
			expectedLen:  1,
		},
		{
			name:         "array with uniform keys",
			raw:          `[{"id": 1, "name": "a"}, {"name": "b", "id": 2}]`,
			expectedKeys: []string{"id", "name"},
			expectedLen:  2,
		},
		{
			name:         "key order follows first object",
			raw:          `[{"name": "a", "id": 1}, {"id": 2, "name": "b"}]`,
			expectedKeys: []string{"name", "id"},
			expectedLen:  2,
		},
		{
			name:      "differing key sets",
			raw:       `[{"id": 1, "name": "a"}, {"id": 2}]`,
			expectErr: true,
		},
		{
			name:      "empty array",
			raw:       `[]`,
			expectErr: true,
		},
		{
			name:      "empty input",
			raw:       ``,
			expectErr: true,
		},
		{
			name:      "scalar",
			raw:       `42`,
			expectErr: true,
		},
		{
			name:      "array of scalars",
			raw:       `[1, 2]`,
			expectErr: true,
		},
		{
			name:      "malformed json",
			raw:       `{"id": `,
			expectErr: true,
		},
		{
			name:      "trailing garbage after object",
			raw:       `{"id": 1}junk`,
			expectErr: true,
		},
		{
			name:      "trailing garbage after array",
			raw:       `[{"id": 1}]junk`,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := ParsePayload([]byte(tt.raw))
			if tt.expectErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidBody)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedKeys, payload.Keys)
			assert.Equal(t, tt.expectedLen, payload.Len())
		})
	}
}

func TestParsePayloadPreservesObjectOrder(t *testing.T) {
	payload, err := ParsePayload([]byte(`[{"id": 1}, {"id": 2}, {"id": 3}]`))
	require.NoError(t, err)

	var ids []string
	for _, obj := range payload.Objects {
		ids = append(ids, string(obj["id"]))
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestParsePayloadErrorIsInvalidBody(t *testing.T) {
	_, err := ParsePayload([]byte(`[{"a": 1}, {"b": 2}]`))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidBody))
	assert.Contains(t, err.Error(), "keys must match")
}
