package cart

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Total returns the sum of quantity * unit price in the active currency.
// An entry with no price in that currency contributes zero; use
// MissingPrices to find such entries.
func Total(s *State) decimal.Decimal {
	s = orInitial(s)
	currency := s.Currency()
	total := decimal.Zero
	for _, key := range s.order {
		total = total.Add(LineTotal(s.products[key], currency))
	}
	return total
}

// LineTotal returns quantity * unit price for one entry, or zero when the
// entry has no price in currency.
func LineTotal(e Entry, currency string) decimal.Decimal {
	price, ok := e.Prices.Price(currency)
	if !ok {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(e.Quantity))
}

// IsEmpty reports whether the cart holds no products.
func IsEmpty(s *State) bool {
	return s.Len() == 0
}

// ItemCount returns the sum of all quantities.
func ItemCount(s *State) int64 {
	s = orInitial(s)
	var n int64
	for _, e := range s.products {
		n += e.Quantity
	}
	return n
}

// MissingPrices returns, in display order, the keys of entries that have
// no price in the active currency.
func MissingPrices(s *State) []string {
	s = orInitial(s)
	currency := s.Currency()
	var keys []string
	for _, key := range s.order {
		if _, ok := s.products[key].Prices.Price(currency); !ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// Summary returns a readable one-line description of the cart.
//
// Format per entry: "{name}: {quantity}" followed by " {value}" for every
// property value that is neither empty nor zero. Entries are joined by
// "; " in display order, e.g. "MacBook case: 1; The West End: 1 nickel XS".
func Summary(s *State) string {
	s = orInitial(s)
	parts := make([]string, 0, len(s.order))
	for _, key := range s.order {
		e := s.products[key]
		var b strings.Builder
		b.WriteString(e.Name)
		b.WriteString(": ")
		b.WriteString(strconv.FormatInt(e.Quantity, 10))
		for _, prop := range e.Properties {
			if prop.Value != nil && prop.Value.Truthy() {
				b.WriteByte(' ')
				b.WriteString(prop.Value.Canonical())
			}
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "; ")
}

// Products returns copies of all entries in display order.
func Products(s *State) []Item {
	return s.Items()
}

// Currency returns the active currency code.
func Currency(s *State) string {
	return s.Currency()
}
