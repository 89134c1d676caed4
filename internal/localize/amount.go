package localize

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// pluralMod bounds the integer value used for plural rules.
var pluralMod = decimal.New(1, 7)

// Amount is a number with its rendered text.
type Amount struct {
	Value decimal.Decimal
	Text  string
}

func (a Amount) String() string { return a.Text }

// PluralForm implements plural.Interface. Values with a fraction or past
// the rule range match no =x selector.
func (a Amount) PluralForm(t language.Tag, scale int) (plural.Form, int) {
	d := a.Value.Abs()
	v := 0
	if exp := d.Exponent(); exp < 0 {
		v = int(-exp)
	}
	whole := d.Truncate(0)
	f := int(d.Sub(whole).Shift(int32(v)).Mod(pluralMod).IntPart())

	tf, w := f, v
	for w > 0 && tf%10 == 0 {
		tf /= 10
		w--
	}
	i := int(whole.Mod(pluralMod).IntPart())
	form := plural.Cardinal.MatchPlural(t, i, v, w, f, tf)

	if f != 0 || whole.GreaterThanOrEqual(pluralMod) {
		return form, -1
	}
	return form, i
}
