package cart

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roach88/cartstate/internal/ir"
)

// Property is one selected property of a product variant.
// Value is always the resolved scalar, never an option descriptor.
type Property struct {
	Name  string
	Value ir.Scalar
}

// P is a shorthand for constructing a Property.
// Example: NewProperties(P("color", ir.String("red")), P("size", ir.Int(31)))
func P(name string, value ir.Scalar) Property {
	return Property{Name: name, Value: value}
}

// Properties is an ordered mapping of property name to resolved value.
// Order is significant: it is the iteration order used by GenerateKey.
type Properties []Property

// NewProperties builds Properties from pairs. A repeated name replaces the
// earlier value in place.
func NewProperties(pairs ...Property) Properties {
	var out Properties
	for _, p := range pairs {
		out = out.With(p.Name, p.Value)
	}
	return out
}

// Get returns the value for name.
func (p Properties) Get(name string) (ir.Scalar, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return nil, false
}

// Names returns the property names in order.
func (p Properties) Names() []string {
	names := make([]string, len(p))
	for i, prop := range p {
		names[i] = prop.Name
	}
	return names
}

// With returns a copy with name set to value. An existing name keeps its
// position; a new name is appended.
func (p Properties) With(name string, value ir.Scalar) Properties {
	out := p.Clone()
	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
			return out
		}
	}
	return append(out, Property{Name: name, Value: value})
}

// Clone returns an independent copy. Scalars are immutable values.
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	out := make(Properties, len(p))
	copy(out, p)
	return out
}

// Equal reports whether both hold the same names and values in the same order.
func (p Properties) Equal(other Properties) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i].Name != other[i].Name || !ir.Equal(p[i].Value, other[i].Value) {
			return false
		}
	}
	return true
}

// MarshalJSON writes an object with keys in property order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		val, err := ir.MarshalScalar(prop.Value)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", prop.Name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object, preserving document key order.
func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties must be an object")
	}

	var out Properties
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
		val, err := ir.UnmarshalScalar(raw)
		if err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
		if _, dup := out.Get(name); dup {
			return fmt.Errorf("duplicate property %q", name)
		}
		out = append(out, Property{Name: name, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*p = out
	return nil
}

// UnmarshalYAML reads a mapping, preserving document key order.
func (p *Properties) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: properties must be a mapping", node.Line)
	}

	var out Properties
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		val, err := ir.ScalarFromNode(node.Content[i+1])
		if err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
		if _, dup := out.Get(name); dup {
			return fmt.Errorf("line %d: duplicate property %q", node.Content[i].Line, name)
		}
		out = append(out, Property{Name: name, Value: val})
	}

	*p = out
	return nil
}

// snapshot renders properties as an ordered list for canonical JSON.
func (p Properties) snapshot() []any {
	items := make([]any, len(p))
	for i, prop := range p {
		items[i] = map[string]any{
			"name":  prop.Name,
			"value": prop.Value,
		}
	}
	return items
}
