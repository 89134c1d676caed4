package cart

// Transition names used in *Error.Op.
const (
	OpAdd         = "add"
	OpUpdate      = "update"
	OpRemove      = "remove"
	OpEmpty       = "empty"
	OpSetCurrency = "set_currency"
)

// Add merges e into the cart under key.
//
// e.Quantity is the additional amount, not a running total: if key is
// already present the stored quantity becomes the old quantity plus
// e.Quantity, and every other field of e replaces the stored one. The key
// moves to the front of the display order. Currency is not touched; see
// AddInCurrency.
//
// Rejected with CodeInvalidQuantity when e.Quantity < 1 or the merged
// quantity exceeds MaxQuantity, and with CodeEmptyKey when key is empty.
// On error the input state is returned.
func Add(s *State, key string, e Entry) (*State, error) {
	s = orInitial(s)
	if key == "" {
		return s, emptyKey(OpAdd)
	}
	if e.Quantity < 1 || e.Quantity > MaxQuantity {
		return s, invalidQuantity(OpAdd, key, e.Quantity)
	}

	var existing int64
	if prev, ok := s.products[key]; ok {
		existing = prev.Quantity
	}
	// Both operands are at most MaxQuantity, so the sum cannot overflow.
	sum := existing + e.Quantity
	if !IsNaturalNumber(sum) {
		return s, invalidQuantity(OpAdd, key, sum)
	}

	next := s.clone()
	stored := e.Clone()
	stored.Quantity = sum
	next.products[key] = stored
	next.order = moveToFront(next.order, key)
	return next, nil
}

// AddInCurrency is Add followed by establishing currency as the active
// currency if none has been established yet. Later adds never change an
// established currency. An empty currency is ignored.
func AddInCurrency(s *State, key string, e Entry, currency string) (*State, error) {
	next, err := Add(s, key, e)
	if err != nil {
		return next, err
	}
	if currency != "" && !next.currencySet {
		// next is a fresh copy from Add and not yet visible to callers.
		next.currency = currency
		next.currencySet = true
	}
	return next, nil
}

// Update replaces the entry at key wholesale with e. No merging.
//
// An absent key is inserted at the end of the display order; an existing
// key keeps its position. A quantity of 0 removes the key, so no
// zero-quantity entry is ever stored. Negative quantities and quantities
// above MaxQuantity are rejected with CodeInvalidQuantity.
func Update(s *State, key string, e Entry) (*State, error) {
	s = orInitial(s)
	if key == "" {
		return s, emptyKey(OpUpdate)
	}
	if !IsNaturalNumber(e.Quantity) {
		return s, invalidQuantity(OpUpdate, key, e.Quantity)
	}
	if e.Quantity == 0 {
		return Remove(s, key), nil
	}

	next := s.clone()
	if _, ok := next.products[key]; !ok {
		next.order = append(next.order, key)
	}
	next.products[key] = e.Clone()
	return next, nil
}

// Remove deletes the entry at key. An absent key is a no-op and the input
// pointer is returned.
func Remove(s *State, key string) *State {
	s = orInitial(s)
	if _, ok := s.products[key]; !ok {
		return s
	}

	next := s.clone()
	delete(next.products, key)
	next.order = without(next.order, key)
	return next
}

// Empty removes every product. The currency, and whether it was
// established, are kept. An already empty cart is returned as is.
func Empty(s *State) *State {
	s = orInitial(s)
	if len(s.products) == 0 {
		return s
	}
	return &State{
		products:    map[string]Entry{},
		currency:    s.currency,
		currencySet: s.currencySet,
	}
}

// SetCurrency makes currency the active currency unconditionally and
// marks it established. The code is not checked against entry prices;
// entries without a price in it contribute zero to Total.
// An empty code is rejected with CodeEmptyCurrency.
func SetCurrency(s *State, currency string) (*State, error) {
	s = orInitial(s)
	if currency == "" {
		return s, &Error{Code: CodeEmptyCurrency, Op: OpSetCurrency, Message: "currency code is required"}
	}
	if s.currencySet && s.currency == currency {
		return s, nil
	}

	next := s.clone()
	next.currency = currency
	next.currencySet = true
	return next, nil
}

// moveToFront returns order with key first and no other occurrence of it.
func moveToFront(order []string, key string) []string {
	out := make([]string, 0, len(order)+1)
	out = append(out, key)
	for _, k := range order {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}

func without(order []string, key string) []string {
	out := make([]string, 0, len(order))
	for _, k := range order {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}
