package catalog

import (
	"fmt"

	"github.com/roach88/cartstate/internal/cart"
)

// Selection maps a property name to the chosen option index.
// Properties not named select option 0.
type Selection map[string]int

// Resolve turns a product and a selection into the key and entry to hand
// to cart.Add.
//
// Each property resolves to the scalar of the chosen option. Additional
// costs of the chosen options are added to the base prices, so the entry
// carries final unit prices. quantity must be at least 1.
func Resolve(p Product, selection Selection, quantity int64) (string, cart.Entry, error) {
	if quantity < 1 || quantity > cart.MaxQuantity {
		return "", cart.Entry{}, &cart.Error{
			Code:    cart.CodeInvalidQuantity,
			Op:      "resolve",
			Key:     p.ID,
			Message: fmt.Sprintf("quantity %d is not allowed", quantity),
		}
	}
	for name := range selection {
		if _, ok := p.Property(name); !ok {
			return "", cart.Entry{}, &ResolveError{Product: p.ID, Property: name, Message: "unknown property"}
		}
	}

	prices := p.Prices.Clone()
	props := make(cart.Properties, 0, len(p.Properties))
	var selected []func()

	for _, def := range p.Properties {
		idx := selection[def.Name]
		if idx < 0 || idx >= len(def.Options) {
			return "", cart.Entry{}, &ResolveError{
				Product:  p.ID,
				Property: def.Name,
				Message:  fmt.Sprintf("option index %d out of range [0,%d)", idx, len(def.Options)),
			}
		}

		opt := def.Options[idx]
		value := opt.Resolved()
		if cost, ok := opt.(CostOption); ok {
			prices = prices.Plus(cost.AdditionalCost)
			if cost.OnSelect != nil {
				onSelect := cost.OnSelect
				selected = append(selected, func() { onSelect(value) })
			}
		}
		props = append(props, cart.Property{Name: def.Name, Value: value})
	}

	// Callbacks run only once the whole selection is known to be valid.
	for _, fn := range selected {
		fn()
	}

	entry := cart.Entry{
		ID:         p.ID,
		Quantity:   quantity,
		Properties: props,
		Name:       p.Name,
		Prices:     prices,
		ImageSrc:   p.ImageSrc,
		Path:       p.Path,
	}
	if len(p.PropertiesToShowInCart) > 0 {
		entry.PropertiesToShowInCart = append([]string(nil), p.PropertiesToShowInCart...)
	}
	return cart.GenerateKey(p.ID, props), entry, nil
}
