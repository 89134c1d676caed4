package localize

// Component names used by the default table.
const (
	ComponentCart     = "cart"
	ComponentCheckout = "checkoutButton"
	ComponentProduct  = "product"
)

// Table maps language -> component -> message id -> pattern.
type Table map[string]map[string]map[string]string

// Lookup returns the pattern for id.
func (t Table) Lookup(lang, component, id string) (string, bool) {
	pattern, ok := t[lang][component][id]
	return pattern, ok
}

// Merge returns a copy of t with every pattern of other added or replaced.
func (t Table) Merge(other Table) Table {
	out := Table{}
	for _, src := range []Table{t, other} {
		for lang, components := range src {
			if out[lang] == nil {
				out[lang] = map[string]map[string]string{}
			}
			for component, messages := range components {
				if out[lang][component] == nil {
					out[lang][component] = map[string]string{}
				}
				for id, pattern := range messages {
					out[lang][component][id] = pattern
				}
			}
		}
	}
	return out
}

// currencySymbols are shared by every component of the default table.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

func withSymbols(messages map[string]string) map[string]string {
	for code, symbol := range currencySymbols {
		messages[code] = symbol
	}
	return messages
}

// Default is the built-in English table.
var Default = Table{
	"en": {
		ComponentCart: withSymbols(map[string]string{
			"shoppingCartTitle":    "Shopping cart",
			"productName":          "{name}",
			"quantityLabel":        "Quantity:",
			"priceLabel":           "Price:",
			"priceValue":           "{currency}{price}",
			"totalLabel":           "Total:",
			"totalValue":           "{currency}{total, plural, =0 {0} other {#}}",
			"remove":               "Remove",
			"productPropertyLabel": "{name}:",
			"productPropertyValue": "{value}",
			"emptyCart":            "Your cart is empty",
		}),
		ComponentCheckout: withSymbols(map[string]string{
			"checkoutTotal": "Checkout (Grand total {currency}{total, plural, =0 {0} other {#}})",
		}),
		ComponentProduct: withSymbols(map[string]string{
			"price":         "Price: {currency}{price}",
			"quantityLabel": "Quantity:",
			"propertyLabel": "{name}:",
			"addToCart":     "Add to cart",
		}),
	},
}
