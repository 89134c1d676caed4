package cart

import (
	"github.com/roach88/cartstate/internal/ir"
)

// Entry is one cart line item.
//
// Quantity is the only field the store interprets. Everything else is
// display and pricing metadata, copied on every write and never read by
// transitions. Prices are unit prices already inclusive of any option
// costs for this configuration.
type Entry struct {
	ID                     string     `json:"id" yaml:"id"`
	Quantity               int64      `json:"quantity" yaml:"quantity"`
	Properties             Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
	Name                   string     `json:"name,omitempty" yaml:"name,omitempty"`
	Prices                 ir.Prices  `json:"prices,omitempty" yaml:"prices,omitempty"`
	ImageSrc               string     `json:"image_src,omitempty" yaml:"image_src,omitempty"`
	Path                   string     `json:"path,omitempty" yaml:"path,omitempty"`
	PropertiesToShowInCart []string   `json:"properties_to_show_in_cart,omitempty" yaml:"properties_to_show_in_cart,omitempty"`
}

// Key returns the product variant key for this entry's id and properties.
func (e Entry) Key() string {
	return GenerateKey(e.ID, e.Properties)
}

// Clone returns a deep copy so callers cannot reach stored state.
func (e Entry) Clone() Entry {
	out := e
	out.Properties = e.Properties.Clone()
	out.Prices = e.Prices.Clone()
	if e.PropertiesToShowInCart != nil {
		out.PropertiesToShowInCart = append([]string(nil), e.PropertiesToShowInCart...)
	}
	return out
}

// VisibleProperties returns the properties named in PropertiesToShowInCart,
// in property order.
func (e Entry) VisibleProperties() Properties {
	if len(e.PropertiesToShowInCart) == 0 {
		return nil
	}
	show := make(map[string]bool, len(e.PropertiesToShowInCart))
	for _, name := range e.PropertiesToShowInCart {
		show[name] = true
	}
	var out Properties
	for _, prop := range e.Properties {
		if show[prop.Name] {
			out = append(out, prop)
		}
	}
	return out
}

// snapshot renders the entry for canonical JSON. Empty metadata is omitted.
func (e Entry) snapshot(key string) map[string]any {
	prices := e.Prices
	if prices == nil {
		prices = ir.Prices{}
	}
	out := map[string]any{
		"key":        key,
		"id":         e.ID,
		"name":       e.Name,
		"quantity":   e.Quantity,
		"prices":     prices,
		"properties": e.Properties.snapshot(),
	}
	if e.ImageSrc != "" {
		out["image_src"] = e.ImageSrc
	}
	if e.Path != "" {
		out["path"] = e.Path
	}
	if len(e.PropertiesToShowInCart) > 0 {
		out["properties_to_show_in_cart"] = e.PropertiesToShowInCart
	}
	return out
}
