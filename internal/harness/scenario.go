package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/cartstate/internal/cart"
)

// Scenario defines one cart test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. Also the golden file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Currency, if set, is established before the flow starts.
	Currency string `yaml:"currency,omitempty"`

	// Catalog is a CUE or YAML catalog path used by select steps.
	// Relative paths are resolved against the scenario file's directory.
	Catalog string `yaml:"catalog,omitempty"`

	// Flow contains the actions to dispatch, in order.
	Flow []FlowStep `yaml:"flow"`

	// Assertions validate the final state.
	Assertions []Assertion `yaml:"assertions"`
}

// FlowStep is one dispatched action. Exactly one action field is set.
type FlowStep struct {
	Add         *EntryStep  `yaml:"add,omitempty"`
	Select      *SelectStep `yaml:"select,omitempty"`
	Update      *EntryStep  `yaml:"update,omitempty"`
	Remove      string      `yaml:"remove,omitempty"`
	Empty       bool        `yaml:"empty,omitempty"`
	SetCurrency string      `yaml:"set_currency,omitempty"`

	// Expect specifies the expected outcome. Nil means success.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// EntryStep carries a full cart entry for add and update steps.
type EntryStep struct {
	// Key defaults to cart.GenerateKey(ID, Properties).
	Key string `yaml:"key,omitempty"`

	cart.Entry `yaml:",inline"`

	// Currency is the product currency carried by an add.
	Currency string `yaml:"currency,omitempty"`
}

// ResolvedKey returns Key or the generated key.
func (s *EntryStep) ResolvedKey() string {
	if s.Key != "" {
		return s.Key
	}
	return s.Entry.Key()
}

// SelectStep resolves a catalog product and adds it.
type SelectStep struct {
	Product string         `yaml:"product"`
	Options map[string]int `yaml:"options,omitempty"`

	// Quantity defaults to 1.
	Quantity *int64 `yaml:"quantity,omitempty"`

	// Currency defaults to the catalog currency.
	Currency string `yaml:"currency,omitempty"`
}

// ExpectClause specifies the expected outcome of a step.
type ExpectClause struct {
	// Error is the expected error code (e.g. "INVALID_QUANTITY").
	Error string `yaml:"error"`
}

// Assertion checks one property of the final state.
// Exactly one field is set.
type Assertion struct {
	Total         *string            `yaml:"total,omitempty"`
	Empty         *bool              `yaml:"empty,omitempty"`
	Quantity      *QuantityAssertion `yaml:"quantity,omitempty"`
	Absent        string             `yaml:"absent,omitempty"`
	Summary       *string            `yaml:"summary,omitempty"`
	Currency      string             `yaml:"currency,omitempty"`
	Count         *int               `yaml:"count,omitempty"`
	Order         []string           `yaml:"order,omitempty"`
	MissingPrices *[]string          `yaml:"missing_prices,omitempty"`
}

// QuantityAssertion expects the entry at Key to hold Equals.
type QuantityAssertion struct {
	Key    string `yaml:"key"`
	Equals int64  `yaml:"equals"`
}

// Assertion type names, used in failure messages.
const (
	AssertTotal         = "total"
	AssertEmpty         = "empty"
	AssertQuantity      = "quantity"
	AssertAbsent        = "absent"
	AssertSummary       = "summary"
	AssertCurrency      = "currency"
	AssertCount         = "count"
	AssertOrder         = "order"
	AssertMissingPrices = "missing_prices"
)

// Kind returns the assertion type name, or "" if none or several are set.
func (a Assertion) Kind() string {
	var kinds []string
	if a.Total != nil {
		kinds = append(kinds, AssertTotal)
	}
	if a.Empty != nil {
		kinds = append(kinds, AssertEmpty)
	}
	if a.Quantity != nil {
		kinds = append(kinds, AssertQuantity)
	}
	if a.Absent != "" {
		kinds = append(kinds, AssertAbsent)
	}
	if a.Summary != nil {
		kinds = append(kinds, AssertSummary)
	}
	if a.Currency != "" {
		kinds = append(kinds, AssertCurrency)
	}
	if a.Count != nil {
		kinds = append(kinds, AssertCount)
	}
	if a.Order != nil {
		kinds = append(kinds, AssertOrder)
	}
	if a.MissingPrices != nil {
		kinds = append(kinds, AssertMissingPrices)
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

// Kind returns the step's action name, or "" if none or several are set.
func (s FlowStep) Kind() string {
	var kinds []string
	if s.Add != nil {
		kinds = append(kinds, "add")
	}
	if s.Select != nil {
		kinds = append(kinds, "select")
	}
	if s.Update != nil {
		kinds = append(kinds, "update")
	}
	if s.Remove != "" {
		kinds = append(kinds, "remove")
	}
	if s.Empty {
		kinds = append(kinds, "empty")
	}
	if s.SetCurrency != "" {
		kinds = append(kinds, "set_currency")
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data, filepath.Dir(path))
}

// ParseScenario parses scenario YAML. A relative catalog path is joined
// to baseDir.
func ParseScenario(data []byte, baseDir string) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Catalog != "" && !filepath.IsAbs(scenario.Catalog) && baseDir != "" {
		scenario.Catalog = filepath.Join(baseDir, scenario.Catalog)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if s.Catalog != "" {
		if _, err := os.Stat(s.Catalog); os.IsNotExist(err) {
			return fmt.Errorf("catalog file not found: %s", s.Catalog)
		}
	}

	for i, step := range s.Flow {
		kind := step.Kind()
		if kind == "" {
			return fmt.Errorf("flow[%d]: exactly one of add, select, update, remove, empty, set_currency is required", i)
		}
		if kind == "select" {
			if s.Catalog == "" {
				return fmt.Errorf("flow[%d]: select requires a catalog", i)
			}
			if step.Select.Product == "" {
				return fmt.Errorf("flow[%d].select: product is required", i)
			}
		}
		if step.Expect != nil && step.Expect.Error == "" {
			return fmt.Errorf("flow[%d].expect: error is required", i)
		}
	}

	for i, a := range s.Assertions {
		if a.Kind() == "" {
			return fmt.Errorf("assertions[%d]: exactly one assertion type is required", i)
		}
		if a.Quantity != nil && a.Quantity.Key == "" {
			return fmt.Errorf("assertions[%d]: quantity requires key", i)
		}
	}
	return nil
}
