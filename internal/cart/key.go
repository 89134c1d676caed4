package cart

import (
	"strings"

	"github.com/roach88/cartstate/internal/ir"
)

// Product key layout: id, then "/", then "_name-value" per property.
const (
	keyIDSeparator   = "/"
	keyPropertyStart = "_"
	keyPairSeparator = "-"
)

// GenerateKey returns the product variant key for id and properties.
//
// Format: "{id}/" followed by "_{name}-{value}" for each property in
// iteration order, e.g. "ipad-case/_color-red". Values use their canonical,
// locale-free rendering. The result is NFC normalized, so canonically
// equivalent Unicode input yields the same key.
//
// The same id and properties (same order) always yield the same key, and
// a different resolved value yields a different key. Names or values that
// themselves contain "_" or "-" can produce colliding keys, as do an Int
// and a String with the same text (31 and "31").
func GenerateKey(id string, properties Properties) string {
	var b strings.Builder
	b.WriteString(id)
	b.WriteString(keyIDSeparator)
	for _, prop := range properties {
		b.WriteString(keyPropertyStart)
		b.WriteString(prop.Name)
		b.WriteString(keyPairSeparator)
		if prop.Value != nil {
			b.WriteString(prop.Value.Canonical())
		}
	}
	return ir.NormalizeString(b.String())
}
