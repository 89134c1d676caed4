package cart

import "fmt"

// Action type strings. These are the wire names of cart actions in
// journals and scenario traces.
const (
	TypeAdd         = "cart/ADD"
	TypeUpdate      = "cart/UPDATE"
	TypeRemove      = "cart/REMOVE"
	TypeEmpty       = "cart/EMPTY"
	TypeSetCurrency = "cart/SET_CURRENCY"
)

// Action is a sealed interface describing one requested transition.
// Only the types in this file implement it.
type Action interface {
	// Type returns the action type string, e.g. "cart/ADD".
	Type() string

	// TargetKey returns the product key the action touches, or "".
	TargetKey() string

	action() // Sealed
}

// AddProduct requests Add (or AddInCurrency when Currency is set).
type AddProduct struct {
	Key      string
	Entry    Entry
	Currency string
}

// UpdateProduct requests Update.
type UpdateProduct struct {
	Key   string
	Entry Entry
}

// RemoveProduct requests Remove.
type RemoveProduct struct {
	Key string
}

// EmptyCart requests Empty.
type EmptyCart struct{}

// ChangeCurrency requests SetCurrency.
type ChangeCurrency struct {
	Currency string
}

func (AddProduct) action()     {}
func (UpdateProduct) action()  {}
func (RemoveProduct) action()  {}
func (EmptyCart) action()      {}
func (ChangeCurrency) action() {}

func (AddProduct) Type() string     { return TypeAdd }
func (UpdateProduct) Type() string  { return TypeUpdate }
func (RemoveProduct) Type() string  { return TypeRemove }
func (EmptyCart) Type() string      { return TypeEmpty }
func (ChangeCurrency) Type() string { return TypeSetCurrency }

func (a AddProduct) TargetKey() string    { return a.Key }
func (a UpdateProduct) TargetKey() string { return a.Key }
func (a RemoveProduct) TargetKey() string { return a.Key }
func (EmptyCart) TargetKey() string       { return "" }
func (ChangeCurrency) TargetKey() string  { return "" }

// Reduce applies a to s and returns the resulting state.
// On error the input state is returned unchanged.
func Reduce(s *State, a Action) (*State, error) {
	switch act := a.(type) {
	case AddProduct:
		return AddInCurrency(s, act.Key, act.Entry, act.Currency)
	case UpdateProduct:
		return Update(s, act.Key, act.Entry)
	case RemoveProduct:
		return Remove(s, act.Key), nil
	case EmptyCart:
		return Empty(s), nil
	case ChangeCurrency:
		return SetCurrency(s, act.Currency)
	default:
		return orInitial(s), &Error{
			Code:    CodeUnknownAction,
			Op:      "reduce",
			Message: fmt.Sprintf("unsupported action %T", a),
		}
	}
}
