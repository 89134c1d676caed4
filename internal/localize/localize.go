package localize

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/cartstate/internal/ir"
)

// Params are the placeholder values for one message.
type Params map[string]any

// Formatter renders the message id with params.
type Formatter interface {
	Format(id string, params Params) string
}

// Localizer renders messages for one language.
type Localizer struct {
	lang    string
	table   Table
	args    map[string][]string
	printer *message.Printer
	decSep  string
	grpSep  string
	logger  *slog.Logger
}

// Option configures a Localizer.
type Option func(*Localizer)

// WithTable replaces the message table. Merge with Default to extend it.
func WithTable(t Table) Option {
	return func(l *Localizer) { l.table = t }
}

// WithLogger sets the logger used for missing messages.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Localizer) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Localizer for a BCP 47 language tag such as "en" or
// "en-GB". The table is keyed by the base language.
func New(lang string, opts ...Option) (*Localizer, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("localize: invalid language %q: %w", lang, err)
	}
	base, _ := tag.Base()

	l := &Localizer{
		lang:   base.String(),
		table:  Default,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	cat, args := buildCatalog(language.Make(l.lang), l.table[l.lang], l.logger.Warn)
	l.args = args
	l.printer = message.NewPrinter(tag, message.Catalog(cat))
	l.decSep = decimalSeparator(l.printer)
	l.grpSep = groupSeparator(l.printer)
	return l, nil
}

// Silent returns an English localizer that discards its logs.
func Silent() *Localizer {
	l, _ := New("en", WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return l
}

// Language returns the base language messages are looked up in.
func (l *Localizer) Language() string { return l.lang }

// Format renders component/id with params. A missing id returns id.
// A placeholder without a param is rendered as written.
func (l *Localizer) Format(component, id string, params Params) string {
	key := messageKey(component, id)
	names, ok := l.args[key]
	if !ok {
		l.logger.Warn("missing localization",
			"id", id,
			"component", component,
			"language", l.lang,
		)
		return id
	}
	args := make([]any, len(names))
	for i, name := range names {
		v, ok := params[name]
		if !ok {
			args[i] = "{" + name + "}"
			continue
		}
		args[i] = l.value(v)
	}
	return l.printer.Sprintf(key, args...)
}

// Scope returns a Formatter bound to one component.
func (l *Localizer) Scope(component string) Formatter {
	return scoped{l: l, component: component}
}

type scoped struct {
	l         *Localizer
	component string
}

func (s scoped) Format(id string, params Params) string {
	return s.l.Format(s.component, id, params)
}

// Symbol returns the display symbol for a currency code, looked up as a
// message id in component. Unknown codes render as the code.
func (l *Localizer) Symbol(component, code string) string {
	if symbol, ok := l.table.Lookup(l.lang, component, code); ok {
		return symbol
	}
	return code
}

// Money renders amount with the standard number of decimals for the
// currency (2 for USD, 0 for JPY). Unknown codes use 2.
func (l *Localizer) Money(amount decimal.Decimal, code string) string {
	return l.Amount(amount, code).Text
}

// Number renders amount with grouping and its own fractional digits.
func (l *Localizer) Number(amount decimal.Decimal) string {
	scale := 0
	if exp := amount.Exponent(); exp < 0 {
		scale = int(-exp)
	}
	return l.number(amount, scale)
}

// Amount pairs amount, rounded for the currency, with its Money text. Pass
// it as a param to select plural cases on the value.
func (l *Localizer) Amount(amount decimal.Decimal, code string) Amount {
	scale := currencyScale(code)
	rounded := amount.Round(int32(scale))
	return Amount{Value: rounded, Text: l.number(rounded, scale)}
}

func currencyScale(code string) int {
	if unit, err := currency.ParseISO(code); err == nil {
		scale, _ := currency.Standard.Rounding(unit)
		return scale
	}
	return 2
}

func (l *Localizer) number(d decimal.Decimal, scale int) string {
	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
		d = d.Neg()
	}
	whole := d.Truncate(0)
	b.WriteString(group(whole.String(), l.grpSep))
	if scale > 0 {
		frac := d.Sub(whole).StringFixed(int32(scale)) // "0.50"
		b.WriteString(l.decSep)
		b.WriteString(frac[strings.IndexByte(frac, '.')+1:])
	}
	return b.String()
}

// group inserts sep between each run of three digits from the right.
func group(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// value converts a param to a printer argument. Numbers become an Amount
// so plural cases can select on them.
func (l *Localizer) value(v any) any {
	switch val := v.(type) {
	case Amount:
		return val
	case string:
		return val
	case ir.String:
		return string(val)
	case ir.Int:
		return l.integer(int64(val))
	case ir.Decimal:
		return Amount{Value: val.Value(), Text: l.Number(val.Value())}
	case decimal.Decimal:
		return Amount{Value: val, Text: l.Number(val)}
	case int:
		return l.integer(int64(val))
	case int64:
		return l.integer(val)
	default:
		return l.printer.Sprint(val)
	}
}

func (l *Localizer) integer(n int64) Amount {
	d := decimal.NewFromInt(n)
	return Amount{Value: d, Text: l.number(d, 0)}
}

// decimalSeparator reads the fraction separator the printer uses.
func decimalSeparator(p *message.Printer) string {
	s := p.Sprintf("%.1f", 1.5)
	return strings.TrimSuffix(strings.TrimPrefix(s, "1"), "5")
}

// groupSeparator reads the thousands separator the printer uses.
func groupSeparator(p *message.Printer) string {
	s := strings.TrimPrefix(p.Sprintf("%d", 1000000), "1")
	if i := strings.Index(s, "000"); i >= 0 {
		return s[:i]
	}
	return ""
}

// ValidCurrency reports whether code is a recognized ISO 4217 code.
func ValidCurrency(code string) bool {
	_, err := currency.ParseISO(code)
	return err == nil
}
