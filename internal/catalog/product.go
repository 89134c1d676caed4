package catalog

import (
	"cuelang.org/go/cue/token"

	"github.com/roach88/cartstate/internal/ir"
)

// Product is one purchasable base product with its configurable
// properties.
type Product struct {
	ID                     string
	Name                   string
	Path                   string
	ImageSrc               string
	Prices                 ir.Prices
	Properties             []PropertyDef
	PropertiesToShowInCart []string

	// Pos is the source position of the product when loaded from CUE.
	Pos token.Pos
}

// Property returns the definition named name.
func (p Product) Property(name string) (PropertyDef, bool) {
	for _, def := range p.Properties {
		if def.Name == name {
			return def, true
		}
	}
	return PropertyDef{}, false
}

// PropertyDef is a configurable property and its options in display order.
// Option 0 is the default selection.
type PropertyDef struct {
	Name    string
	Options []Option
}

// Option is a sealed interface for one selectable property option.
// Only ScalarOption and CostOption implement it.
type Option interface {
	// Resolved returns the scalar stored in the cart for this option.
	Resolved() ir.Scalar

	option() // Sealed
}

// ScalarOption is a plain option whose value is stored as is.
type ScalarOption struct {
	Value ir.Scalar
}

// CostOption is an option that changes the unit price.
//
// AdditionalCost is added to every base price whose currency it names.
// Currencies missing from the base prices are not introduced.
// OnSelect, if set, is called with the resolved value when the option is
// chosen during Resolve.
type CostOption struct {
	Value          ir.Scalar
	AdditionalCost ir.Prices
	OnSelect       func(ir.Scalar)
}

func (ScalarOption) option() {}
func (CostOption) option()   {}

// Resolved returns the option value.
func (o ScalarOption) Resolved() ir.Scalar { return o.Value }

// Resolved returns the option value, never the cost table.
func (o CostOption) Resolved() ir.Scalar { return o.Value }

// Catalog is an ordered set of products with unique ids.
type Catalog struct {
	// Currency is the shop currency the catalog was priced for, if given.
	Currency string

	Products []Product

	index map[string]int
}

// New builds a catalog and checks every product. Product ids must be
// unique.
func New(currency string, products []Product) (*Catalog, error) {
	c := &Catalog{
		Currency: currency,
		Products: products,
		index:    make(map[string]int, len(products)),
	}
	for i, p := range products {
		if err := validateProduct(p); err != nil {
			return nil, err
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, &LoadError{
				Code:    ErrCodeInvalid,
				Message: "duplicate product id " + p.ID,
				Pos:     p.Pos,
			}
		}
		c.index[p.ID] = i
	}
	return c, nil
}

// Lookup returns the product with id.
func (c *Catalog) Lookup(id string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return Product{}, false
	}
	return c.Products[i], true
}

// IDs returns the product ids in catalog order.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, len(c.Products))
	for i, p := range c.Products {
		ids[i] = p.ID
	}
	return ids
}

// Currencies returns every currency code priced by any product, sorted.
func (c *Catalog) Currencies() []string {
	if c == nil {
		return nil
	}
	all := ir.Prices{}
	for _, p := range c.Products {
		for code, d := range p.Prices {
			all[code] = d
		}
	}
	return all.Currencies()
}

func validateProduct(p Product) error {
	if p.ID == "" {
		return &LoadError{Code: ErrCodeInvalid, Message: "product id is required", Pos: p.Pos}
	}

	seen := make(map[string]bool, len(p.Properties))
	for _, def := range p.Properties {
		if def.Name == "" {
			return &LoadError{Code: ErrCodeInvalid, Message: "product " + p.ID + ": property name is required", Pos: p.Pos}
		}
		if seen[def.Name] {
			return &LoadError{Code: ErrCodeInvalid, Message: "product " + p.ID + ": duplicate property " + def.Name, Pos: p.Pos}
		}
		seen[def.Name] = true
		if len(def.Options) == 0 {
			return &LoadError{Code: ErrCodeInvalid, Message: "product " + p.ID + ": property " + def.Name + " has no options", Pos: p.Pos}
		}
	}

	for _, name := range p.PropertiesToShowInCart {
		if !seen[name] {
			return &LoadError{Code: ErrCodeInvalid, Message: "product " + p.ID + ": properties_to_show_in_cart names unknown property " + name, Pos: p.Pos}
		}
	}
	return nil
}
