package ir

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestScalarSealed(t *testing.T) {
	// Compile-time check via assignment
	var _ Scalar = String("red")
	var _ Scalar = Int(31)
	var _ Scalar = NewDecimal(decimal.RequireFromString("31.5"))
}

func TestScalarCanonical(t *testing.T) {
	tests := []struct {
		name     string
		value    Scalar
		expected string
	}{
		{"string", String("red"), "red"},
		{"empty string", String(""), ""},
		{"int", Int(31), "31"},
		{"negative int", Int(-2), "-2"},
		{"large int", Int(1234567), "1234567"},
		{"decimal", NewDecimal(decimal.RequireFromString("31.5")), "31.5"},
		{"decimal trailing zero", NewDecimal(decimal.RequireFromString("2.50")), "2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.Canonical())
		})
	}
}

func TestScalarTruthy(t *testing.T) {
	assert.True(t, String("nickel").Truthy())
	assert.False(t, String("").Truthy())
	assert.True(t, Int(1).Truthy())
	assert.False(t, Int(0).Truthy())
	assert.True(t, NewDecimal(decimal.RequireFromString("0.1")).Truthy())
	assert.False(t, NewDecimal(decimal.Zero).Truthy())
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(String("a"), String("a")))
	assert.False(t, Equal(String("1"), Int(1)))
	assert.True(t, Equal(Int(3), Int(3)))
	assert.True(t, Equal(
		NewDecimal(decimal.RequireFromString("1.50")),
		NewDecimal(decimal.RequireFromString("1.5")),
	))
	assert.False(t, Equal(Int(1), NewDecimal(decimal.RequireFromString("1.5"))))
}

func TestUnmarshalScalar(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Scalar
		wantErr bool
	}{
		{"string", `"red"`, String("red"), false},
		{"int", `31`, Int(31), false},
		{"decimal", `31.5`, NewDecimal(decimal.RequireFromString("31.5")), false},
		{"exponent", `1e2`, NewDecimal(decimal.RequireFromString("100")), false},
		{"null", `null`, nil, true},
		{"bool", `true`, nil, true},
		{"array", `[1]`, nil, true},
		{"object", `{"a":1}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnmarshalScalar([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, Equal(tt.want, got), "got %#v", got)
		})
	}
}

func TestMarshalScalar(t *testing.T) {
	data, err := MarshalScalar(String(`say "hi"`))
	require.NoError(t, err)
	assert.Equal(t, `"say \"hi\""`, string(data))

	data, err = MarshalScalar(Int(7))
	require.NoError(t, err)
	assert.Equal(t, "7", string(data))

	data, err = MarshalScalar(NewDecimal(decimal.RequireFromString("7.25")))
	require.NoError(t, err)
	assert.Equal(t, "7.25", string(data))
}

func TestScalarFromNode(t *testing.T) {
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(`[red, 31, 31.5, "42", true]`), &doc))
	items := doc.Content[0].Content

	v, err := ScalarFromNode(items[0])
	require.NoError(t, err)
	assert.Equal(t, String("red"), v)

	v, err = ScalarFromNode(items[1])
	require.NoError(t, err)
	assert.Equal(t, Int(31), v)

	v, err = ScalarFromNode(items[2])
	require.NoError(t, err)
	assert.Equal(t, "31.5", v.Canonical())

	v, err = ScalarFromNode(items[3])
	require.NoError(t, err)
	assert.Equal(t, String("42"), v, "quoted numbers stay strings")

	_, err = ScalarFromNode(items[4])
	require.Error(t, err)
}

func TestScalarFromAny(t *testing.T) {
	v, err := ScalarFromAny(12)
	require.NoError(t, err)
	assert.Equal(t, Int(12), v)

	v, err = ScalarFromAny(0.5)
	require.NoError(t, err)
	assert.Equal(t, "0.5", v.Canonical())

	_, err = ScalarFromAny(nil)
	require.Error(t, err)

	_, err = ScalarFromAny([]string{"x"})
	require.Error(t, err)
}
