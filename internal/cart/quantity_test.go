package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"7", 7, false},
		{"007", 7, false},
		{"9007199254740991", MaxQuantity, false},
		{"9007199254740992", 0, true},
		{"99999999999999999999", 0, true},
		{"-1", 0, true},
		{"+1", 0, true},
		{"1.5", 0, true},
		{"1e3", 0, true},
		{" 1", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseQuantity(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsInvalidQuantity(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsNaturalNumber(t *testing.T) {
	assert.True(t, IsNaturalNumber(0))
	assert.True(t, IsNaturalNumber(MaxQuantity))
	assert.False(t, IsNaturalNumber(-1))
	assert.False(t, IsNaturalNumber(MaxQuantity+1))
}
