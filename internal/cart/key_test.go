package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/roach88/cartstate/internal/ir"
)

func TestGenerateKey(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		props Properties
		want  string
	}{
		{
			name:  "single string property",
			id:    "ipad-case",
			props: NewProperties(P("color", ir.String("red"))),
			want:  "ipad-case/_color-red",
		},
		{
			name:  "no properties",
			id:    "gift-card",
			props: nil,
			want:  "gift-card/",
		},
		{
			name: "mixed scalars in declaration order",
			id:   "the-west-end",
			props: NewProperties(
				P("color", ir.String("nickel")),
				P("size", ir.Int(31)),
				P("width", ir.NewDecimal(decimal.RequireFromString("31.5"))),
			),
			want: "the-west-end/_color-nickel_size-31_width-31.5",
		},
		{
			name:  "large integer has no grouping",
			id:    "bulk",
			props: NewProperties(P("pack", ir.Int(1000000))),
			want:  "bulk/_pack-1000000",
		},
		{
			name:  "empty string value",
			id:    "mug",
			props: NewProperties(P("engraving", ir.String(""))),
			want:  "mug/_engraving-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateKey(tt.id, tt.props))
		})
	}
}

func TestGenerateKey_Deterministic(t *testing.T) {
	props := NewProperties(P("color", ir.String("red")), P("size", ir.Int(2)))
	assert.Equal(t, GenerateKey("case", props), GenerateKey("case", props.Clone()))
}

func TestGenerateKey_ValueChangeChangesKey(t *testing.T) {
	base := NewProperties(P("color", ir.String("red")), P("size", ir.Int(2)))
	k := GenerateKey("case", base)

	assert.NotEqual(t, k, GenerateKey("case", base.With("color", ir.String("blue"))))
	assert.NotEqual(t, k, GenerateKey("case", base.With("size", ir.Int(3))))
	assert.NotEqual(t, k, GenerateKey("other", base))
}

func TestGenerateKey_OrderSignificant(t *testing.T) {
	a := NewProperties(P("color", ir.String("red")), P("size", ir.Int(2)))
	b := NewProperties(P("size", ir.Int(2)), P("color", ir.String("red")))
	assert.NotEqual(t, GenerateKey("case", a), GenerateKey("case", b))
}

func TestGenerateKey_NFC(t *testing.T) {
	decomposed := NewProperties(P("finish", ir.String("cafe\u0301")))
	composed := NewProperties(P("finish", ir.String("caf\u00e9")))
	assert.Equal(t, GenerateKey("mug", composed), GenerateKey("mug", decomposed))
}

func TestGenerateKey_IntAndStringValuesCollide(t *testing.T) {
	tests := []struct {
		name  string
		asInt ir.Scalar
		asStr ir.Scalar
		want  string
	}{
		{"positive", ir.Int(31), ir.String("31"), "x/_s-31"},
		{"zero", ir.Int(0), ir.String("0"), "x/_s-0"},
		{"negative", ir.Int(-4), ir.String("-4"), "x/_s--4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fromInt := GenerateKey("x", NewProperties(P("s", tt.asInt)))
			fromStr := GenerateKey("x", NewProperties(P("s", tt.asStr)))
			assert.Equal(t, tt.want, fromInt)
			assert.Equal(t, fromInt, fromStr)
		})
	}
}

func TestEntryKey(t *testing.T) {
	e := Entry{ID: "ipad-case", Properties: NewProperties(P("color", ir.String("red")))}
	assert.Equal(t, "ipad-case/_color-red", e.Key())
}
