package localize

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cartstate/internal/ir"
)

func TestFormat_Placeholders(t *testing.T) {
	l := Silent()

	assert.Equal(t, "Shopping cart", l.Format(ComponentCart, "shoppingCartTitle", nil))
	assert.Equal(t, "iPad case", l.Format(ComponentCart, "productName", Params{"name": "iPad case"}))
	assert.Equal(t, "$700", l.Format(ComponentCart, "totalValue", Params{"currency": "$", "total": decimal.NewFromInt(700)}))
	assert.Equal(t, "color:", l.Format(ComponentProduct, "propertyLabel", Params{"name": ir.String("color")}))
}

func TestFormat_UnknownPlaceholderKept(t *testing.T) {
	l := Silent()
	assert.Equal(t, "{currency}70", l.Format(ComponentCart, "priceValue", Params{"price": ir.Int(70)}))
}

func TestFormat_MissingIDLogsAndReturnsID(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("en", WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	require.NoError(t, err)

	assert.Equal(t, "nope", l.Format(ComponentCart, "nope", nil))
	assert.Contains(t, buf.String(), "missing localization")
	assert.Contains(t, buf.String(), "id=nope")
}

func TestFormat_Grouping(t *testing.T) {
	l := Silent()
	assert.Equal(t, "1,234", l.Format(ComponentCart, "productPropertyValue", Params{"value": ir.Int(1234)}))
	assert.Equal(t, "1,234.5", l.Number(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "-12", l.Number(decimal.NewFromInt(-12)))
}

func TestMoney(t *testing.T) {
	l := Silent()
	assert.Equal(t, "700.00", l.Money(decimal.NewFromInt(700), "USD"))
	assert.Equal(t, "1,234.57", l.Money(decimal.RequireFromString("1234.567"), "EUR"))
	assert.Equal(t, "1,235", l.Money(decimal.RequireFromString("1234.5"), "JPY"))
	assert.Equal(t, "3.10", l.Money(decimal.RequireFromString("3.1"), "XXX-not-a-code"))
}

func TestMoney_BeyondInt64(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		code   string
		want   string
	}{
		{"twenty nines", "99999999999999999999.99", "USD", "99,999,999,999,999,999,999.99"},
		{"negative", "-12345678901234567890123", "JPY", "-12,345,678,901,234,567,890,123"},
		{"int64 max plus one", "9223372036854775808", "EUR", "9,223,372,036,854,775,808.00"},
	}

	l := Silent()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Money(decimal.RequireFromString(tt.amount), tt.code))
		})
	}
}

func TestFormat_ZeroTotal(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		total any
		want  string
	}{
		{"zero amount", "totalValue", Amount{Value: decimal.Zero, Text: "0.00"}, "$0"},
		{"rounded to zero", "totalValue", decimal.Zero, "$0"},
		{"cents", "totalValue", Amount{Value: decimal.RequireFromString("0.50"), Text: "0.50"}, "$0.50"},
		{"whole", "totalValue", Amount{Value: decimal.NewFromInt(17), Text: "17.00"}, "$17.00"},
		{"ten million", "totalValue", Amount{Value: decimal.NewFromInt(10000000), Text: "10,000,000.00"}, "$10,000,000.00"},
		{"preformatted text", "totalValue", "0.00", "$0.00"},
		{"missing", "totalValue", nil, "${total}"},
	}

	l := Silent()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := Params{"currency": "$"}
			if tt.total != nil {
				params["total"] = tt.total
			}
			assert.Equal(t, tt.want, l.Format(ComponentCart, tt.id, params))
		})
	}
}

func TestAmount(t *testing.T) {
	l := Silent()

	zero := l.Amount(decimal.RequireFromString("0.001"), "USD")
	assert.Equal(t, "0.00", zero.Text)
	assert.True(t, zero.Value.IsZero())
	assert.Equal(t, "Checkout (Grand total $0)", l.Format(ComponentCheckout, "checkoutTotal", Params{"currency": "$", "total": zero}))

	total := l.Amount(decimal.RequireFromString("1234.5"), "EUR")
	assert.Equal(t, "1,234.50", total.String())
	assert.Equal(t, "Checkout (Grand total €1,234.50)", l.Format(ComponentCheckout, "checkoutTotal", Params{"currency": "€", "total": total}))
}

func TestFormat_PluralCases(t *testing.T) {
	custom := Default.Merge(Table{
		"en": {ComponentCart: {
			"itemCount": "{count, plural, =0 {no items} one {# item} other {# items}} in {name}",
			"discount":  "{value}% off",
			"broken":    "{count, plural, sideways {#}}",
		}},
	})
	l, err := New("en", WithTable(custom), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)

	tests := []struct {
		name   string
		id     string
		params Params
		want   string
	}{
		{"zero", "itemCount", Params{"count": ir.Int(0), "name": "cart"}, "no items in cart"},
		{"one", "itemCount", Params{"count": ir.Int(1), "name": "cart"}, "1 item in cart"},
		{"many grouped", "itemCount", Params{"count": 1234, "name": "cart"}, "1,234 items in cart"},
		{"literal percent", "discount", Params{"value": ir.Int(20)}, "20% off"},
		{"invalid selector renders literally", "broken", Params{"count": 3}, "{count, plural, sideways {#}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Format(ComponentCart, tt.id, tt.params))
		})
	}
}

func TestScopeAndSymbol(t *testing.T) {
	l := Silent()
	checkout := l.Scope(ComponentCheckout)

	symbol := l.Symbol(ComponentCheckout, "USD")
	assert.Equal(t, "$", symbol)
	assert.Equal(t, "SEK", l.Symbol(ComponentCheckout, "SEK"))

	label := checkout.Format("checkoutTotal", Params{"currency": symbol, "total": l.Money(decimal.NewFromInt(700), "USD")})
	assert.Equal(t, "Checkout (Grand total $700.00)", label)
}

func TestCustomTable(t *testing.T) {
	custom := Default.Merge(Table{
		"de": {ComponentCart: {"totalLabel": "Summe:"}},
	})
	l, err := New("de-AT", WithTable(custom), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)

	assert.Equal(t, "de", l.Language())
	assert.Equal(t, "Summe:", l.Format(ComponentCart, "totalLabel", nil))
	assert.Equal(t, "Total:", Silent().Format(ComponentCart, "totalLabel", nil), "Default untouched")
}

func TestNew_InvalidLanguage(t *testing.T) {
	_, err := New("not a tag!")
	assert.Error(t, err)
}

func TestValidCurrency(t *testing.T) {
	assert.True(t, ValidCurrency("USD"))
	assert.True(t, ValidCurrency("EUR"))
	assert.False(t, ValidCurrency("ZZZ"))
	assert.False(t, ValidCurrency(""))
}
