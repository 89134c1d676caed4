package ir

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Prices maps a currency code to a unit price.
// Codes are kept as supplied; the cart does not validate them.
type Prices map[string]decimal.Decimal

// Price returns the unit price for currency and whether it was present.
func (p Prices) Price(currency string) (decimal.Decimal, bool) {
	d, ok := p[currency]
	return d, ok
}

// Currencies returns the currency codes in sorted order.
func (p Prices) Currencies() []string {
	codes := make([]string, 0, len(p))
	for c := range p {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// Clone returns an independent copy. A nil receiver yields nil.
func (p Prices) Clone() Prices {
	if p == nil {
		return nil
	}
	out := make(Prices, len(p))
	for c, d := range p {
		out[c] = d
	}
	return out
}

// Plus returns a copy of p with extra added to every currency already in p.
// Currencies present only in extra are ignored: an additional cost can
// only adjust a price that exists.
func (p Prices) Plus(extra Prices) Prices {
	out := p.Clone()
	for c, d := range extra {
		if base, ok := out[c]; ok {
			out[c] = base.Add(d)
		}
	}
	return out
}

// Equal reports whether both tables hold the same currencies with
// numerically equal prices.
func (p Prices) Equal(other Prices) bool {
	if len(p) != len(other) {
		return false
	}
	for c, d := range p {
		o, ok := other[c]
		if !ok || !d.Equal(o) {
			return false
		}
	}
	return true
}

// UnmarshalYAML decodes a mapping of currency to price.
// Prices may be written as numbers (70, 12.5) or strings ("12.50").
func (p *Prices) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: prices must be a mapping of currency to amount", node.Line)
	}

	out := make(Prices, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if valNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: price for %q must be a number", valNode.Line, keyNode.Value)
		}
		d, err := decimal.NewFromString(valNode.Value)
		if err != nil {
			return fmt.Errorf("line %d: invalid price %q for %q", valNode.Line, valNode.Value, keyNode.Value)
		}
		out[keyNode.Value] = d
	}
	*p = out
	return nil
}

// UnmarshalJSON decodes an object of currency to price.
// Both bare and quoted numbers are accepted.
func (p *Prices) UnmarshalJSON(data []byte) error {
	var raw map[string]decimal.Decimal
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("prices: %w", err)
	}
	*p = Prices(raw)
	return nil
}
