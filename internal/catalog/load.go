package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/roach88/cartstate/internal/ir"
)

//go:embed schema.cue
var schemaSource string

// Load reads a catalog file. The format is chosen by extension:
// .cue for CUE, .yaml or .yml for YAML.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: "catalog not found", File: path}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: err.Error(), File: path}
	}
	return Parse(path, data)
}

// Parse decodes catalog data, using filename for the format and for
// error positions.
func Parse(filename string, data []byte) (*Catalog, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".cue":
		return ParseCUE(filename, data)
	case ".yaml", ".yml":
		return ParseYAML(filename, data)
	default:
		return nil, &LoadError{
			Code:    ErrCodeUnsupported,
			Message: fmt.Sprintf("unsupported catalog extension %q (want .cue, .yaml or .yml)", filepath.Ext(filename)),
			File:    filename,
		}
	}
}

// ParseCUE compiles CUE source, unifies it with the catalog schema, and
// decodes the result. Uses the CUE SDK's Go API directly.
func ParseCUE(filename string, data []byte) (*Catalog, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(ErrCodeSchema, err)
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, formatCUEError(ErrCodeParse, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Catalog")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(ErrCodeSchema, err)
	}

	return decodeCUECatalog(unified)
}

func decodeCUECatalog(v cue.Value) (*Catalog, error) {
	var currency string
	if cv := v.LookupPath(cue.ParsePath("currency")); cv.Exists() {
		s, err := cv.String()
		if err != nil {
			return nil, formatCUEError(ErrCodeSchema, err)
		}
		currency = s
	}

	iter, err := v.LookupPath(cue.ParsePath("products")).List()
	if err != nil {
		return nil, formatCUEError(ErrCodeSchema, err)
	}

	var products []Product
	for iter.Next() {
		p, err := decodeCUEProduct(iter.Value())
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return New(currency, products)
}

func decodeCUEProduct(v cue.Value) (Product, error) {
	p := Product{Pos: v.Pos()}

	var err error
	if p.ID, err = cueString(v, "id"); err != nil {
		return p, err
	}
	if p.Name, err = cueString(v, "name"); err != nil {
		return p, err
	}
	if p.Path, err = cueString(v, "path"); err != nil {
		return p, err
	}
	if p.ImageSrc, err = cueString(v, "image_src"); err != nil {
		return p, err
	}
	if p.Prices, err = cuePrices(v.LookupPath(cue.ParsePath("prices"))); err != nil {
		return p, err
	}

	if pv := v.LookupPath(cue.ParsePath("properties")); pv.Exists() {
		iter, err := pv.List()
		if err != nil {
			return p, formatCUEError(ErrCodeSchema, err)
		}
		for iter.Next() {
			def, err := decodeCUEProperty(iter.Value())
			if err != nil {
				return p, err
			}
			p.Properties = append(p.Properties, def)
		}
	}

	if sv := v.LookupPath(cue.ParsePath("properties_to_show_in_cart")); sv.Exists() {
		if err := sv.Decode(&p.PropertiesToShowInCart); err != nil {
			return p, formatCUEError(ErrCodeSchema, err)
		}
	}
	return p, nil
}

func decodeCUEProperty(v cue.Value) (PropertyDef, error) {
	name, err := cueString(v, "name")
	if err != nil {
		return PropertyDef{}, err
	}
	def := PropertyDef{Name: name}

	iter, err := v.LookupPath(cue.ParsePath("options")).List()
	if err != nil {
		return def, formatCUEError(ErrCodeSchema, err)
	}
	for iter.Next() {
		opt, err := decodeCUEOption(iter.Value())
		if err != nil {
			return def, err
		}
		def.Options = append(def.Options, opt)
	}
	return def, nil
}

// decodeCUEOption accepts a bare scalar or a {value, additional_cost} struct.
func decodeCUEOption(v cue.Value) (Option, error) {
	if v.Kind() != cue.StructKind {
		s, err := cueScalar(v)
		if err != nil {
			return nil, err
		}
		return ScalarOption{Value: s}, nil
	}

	s, err := cueScalar(v.LookupPath(cue.ParsePath("value")))
	if err != nil {
		return nil, err
	}
	cost, err := cuePrices(v.LookupPath(cue.ParsePath("additional_cost")))
	if err != nil {
		return nil, err
	}
	if len(cost) == 0 {
		return ScalarOption{Value: s}, nil
	}
	return CostOption{Value: s, AdditionalCost: cost}, nil
}

// cueString returns the string at field, or "" when the field is absent.
func cueString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", nil
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(ErrCodeSchema, err)
	}
	return s, nil
}

func cueScalar(v cue.Value) (ir.Scalar, error) {
	switch v.Kind() {
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(ErrCodeSchema, err)
		}
		return ir.String(s), nil
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, formatCUEError(ErrCodeSchema, err)
		}
		return ir.Int(n), nil
	case cue.FloatKind:
		d, err := cueDecimal(v)
		if err != nil {
			return nil, err
		}
		return ir.NewDecimal(d), nil
	default:
		return nil, &LoadError{
			Code:    ErrCodeSchema,
			Message: fmt.Sprintf("option value must be a string or number, got %s", v.Kind()),
			Pos:     v.Pos(),
		}
	}
}

// cueDecimal reads a CUE number through its JSON text so no binary
// rounding happens on the way to decimal.
func cueDecimal(v cue.Value) (decimal.Decimal, error) {
	raw, err := v.MarshalJSON()
	if err != nil {
		return decimal.Zero, formatCUEError(ErrCodeSchema, err)
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero, &LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("invalid amount %s", raw), Pos: v.Pos()}
	}
	return d, nil
}

func cuePrices(v cue.Value) (ir.Prices, error) {
	if !v.Exists() {
		return nil, nil
	}
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(ErrCodeSchema, err)
	}
	prices := ir.Prices{}
	for iter.Next() {
		d, err := cueDecimal(iter.Value())
		if err != nil {
			return nil, err
		}
		prices[iter.Label()] = d
	}
	return prices, nil
}

// YAML document shape; mirrors the CUE schema.
type yamlCatalog struct {
	Currency string        `yaml:"currency"`
	Products []yamlProduct `yaml:"products"`
}

type yamlProduct struct {
	ID                     string         `yaml:"id"`
	Name                   string         `yaml:"name"`
	Path                   string         `yaml:"path"`
	ImageSrc               string         `yaml:"image_src"`
	Prices                 ir.Prices      `yaml:"prices"`
	Properties             []yamlProperty `yaml:"properties"`
	PropertiesToShowInCart []string       `yaml:"properties_to_show_in_cart"`
}

type yamlProperty struct {
	Name    string       `yaml:"name"`
	Options []yamlOption `yaml:"options"`
}

type yamlOption struct {
	Option Option
}

// UnmarshalYAML accepts a bare scalar or a {value, additional_cost} mapping.
func (o *yamlOption) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s, err := ir.ScalarFromNode(node)
		if err != nil {
			return err
		}
		o.Option = ScalarOption{Value: s}
		return nil
	}

	var raw struct {
		Value          yaml.Node `yaml:"value"`
		AdditionalCost ir.Prices `yaml:"additional_cost"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw.Value.Kind == 0 {
		return fmt.Errorf("line %d: option requires a value", node.Line)
	}
	s, err := ir.ScalarFromNode(&raw.Value)
	if err != nil {
		return err
	}
	if len(raw.AdditionalCost) == 0 {
		o.Option = ScalarOption{Value: s}
		return nil
	}
	o.Option = CostOption{Value: s, AdditionalCost: raw.AdditionalCost}
	return nil
}

// ParseYAML decodes a YAML catalog. Unknown fields are rejected.
func ParseYAML(filename string, data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc yamlCatalog
	if err := dec.Decode(&doc); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: err.Error(), File: filename}
	}

	products := make([]Product, len(doc.Products))
	for i, yp := range doc.Products {
		p := Product{
			ID:                     yp.ID,
			Name:                   yp.Name,
			Path:                   yp.Path,
			ImageSrc:               yp.ImageSrc,
			Prices:                 yp.Prices,
			PropertiesToShowInCart: yp.PropertiesToShowInCart,
		}
		for _, prop := range yp.Properties {
			def := PropertyDef{Name: prop.Name}
			for _, opt := range prop.Options {
				def.Options = append(def.Options, opt.Option)
			}
			p.Properties = append(p.Properties, def)
		}
		products[i] = p
	}

	c, err := New(doc.Currency, products)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.File == "" {
			loadErr.File = filename
		}
		return nil, err
	}
	return c, nil
}
