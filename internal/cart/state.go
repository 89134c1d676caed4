package cart

import (
	"github.com/roach88/cartstate/internal/ir"
)

// DefaultCurrency is the active currency until one is established.
const DefaultCurrency = "USD"

// State is an immutable cart snapshot.
//
// A *State is never modified after it is returned from a constructor or
// transition, so it may be shared freely and compared by pointer: a
// transition that changes nothing returns its input pointer.
//
// The zero value is an empty cart in DefaultCurrency. A nil *State is
// treated the same way by every function in this package.
type State struct {
	order       []string // display order, newest add first
	products    map[string]Entry
	currency    string
	currencySet bool
}

// Item pairs a product key with its entry.
type Item struct {
	Key   string
	Entry Entry
}

// New returns an empty cart in DefaultCurrency with no established currency.
func New() *State {
	return &State{products: map[string]Entry{}}
}

// NewWithCurrency returns an empty cart whose currency is established.
// An empty code behaves like New.
func NewWithCurrency(currency string) *State {
	s := New()
	if currency != "" {
		s.currency = currency
		s.currencySet = true
	}
	return s
}

// orInitial maps nil to an empty cart.
func orInitial(s *State) *State {
	if s == nil {
		return New()
	}
	return s
}

// Len returns the number of distinct product keys.
func (s *State) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Keys returns the product keys in display order.
func (s *State) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Has reports whether key is in the cart.
func (s *State) Has(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.products[key]
	return ok
}

// Entry returns a copy of the entry stored at key.
func (s *State) Entry(key string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	e, ok := s.products[key]
	if !ok {
		return Entry{}, false
	}
	return e.Clone(), true
}

// Items returns copies of all entries in display order.
func (s *State) Items() []Item {
	if s == nil {
		return nil
	}
	items := make([]Item, len(s.order))
	for i, key := range s.order {
		items[i] = Item{Key: key, Entry: s.products[key].Clone()}
	}
	return items
}

// Currency returns the active currency code. Never empty.
func (s *State) Currency() string {
	if s == nil || s.currency == "" {
		return DefaultCurrency
	}
	return s.currency
}

// CurrencyEstablished reports whether the currency was set explicitly or
// by the first add that carried one.
func (s *State) CurrencyEstablished() bool {
	return s != nil && s.currencySet
}

// clone returns a copy whose order and map may be modified.
// Entries are shared: stored entries are never mutated in place.
func (s *State) clone() *State {
	out := &State{
		order:       make([]string, len(s.order), len(s.order)+1),
		products:    make(map[string]Entry, len(s.products)+1),
		currency:    s.currency,
		currencySet: s.currencySet,
	}
	copy(out.order, s.order)
	for k, e := range s.products {
		out.products[k] = e
	}
	return out
}

// Snapshot renders the state for canonical JSON (ir.MarshalCanonical).
// Products are a list in display order.
func (s *State) Snapshot() map[string]any {
	s = orInitial(s)
	products := make([]any, len(s.order))
	for i, key := range s.order {
		products[i] = s.products[key].snapshot(key)
	}
	return map[string]any{
		"currency":             s.Currency(),
		"currency_established": s.currencySet,
		"products":             products,
	}
}

// MarshalJSON writes the canonical snapshot.
func (s *State) MarshalJSON() ([]byte, error) {
	return ir.MarshalCanonical(s.Snapshot())
}
