package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cartstate/internal/ir"
)

func writeScenario(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: test_scenario
description: "Test scenario for validation"
currency: EUR
flow:
  - add:
      id: ipad-case
      name: iPad case
      quantity: 2
      properties: {color: red, size: 31}
      prices: {EUR: "65.50"}
  - remove: ipad-case/_color-red_size-31
    expect:
      error: NONE
assertions:
  - total: "131"
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "EUR", scenario.Currency)
	require.Len(t, scenario.Flow, 2)
	require.Len(t, scenario.Assertions, 1)

	add := scenario.Flow[0].Add
	require.NotNil(t, add)
	assert.Equal(t, "add", scenario.Flow[0].Kind())
	assert.Equal(t, int64(2), add.Quantity)
	assert.Equal(t, []string{"color", "size"}, add.Properties.Names())
	size, _ := add.Properties.Get("size")
	assert.Equal(t, ir.Int(31), size)
	assert.Equal(t, "ipad-case/_color-red_size-31", add.ResolvedKey())
	price, ok := add.Prices.Price("EUR")
	require.True(t, ok)
	assert.Equal(t, "65.5", price.String())

	assert.Equal(t, "remove", scenario.Flow[1].Kind())
	assert.Equal(t, "NONE", scenario.Flow[1].Expect.Error)
	assert.Equal(t, AssertTotal, scenario.Assertions[0].Kind())
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_CatalogRelativeToScenario(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/catalog_select.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("testdata", "catalog", "shop.yaml"), scenario.Catalog)
	assert.Equal(t, "select", scenario.Flow[0].Kind())
	assert.Equal(t, 1, scenario.Flow[0].Select.Options["size"])
}

func TestEntryStep_ExplicitKey(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: explicit_key
description: "Key overrides the generated key"
flow:
  - add: {key: custom, id: mug, quantity: 1}
assertions:
  - count: 1
`)
	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", scenario.Flow[0].Add.ResolvedKey())
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing name",
			content: `
description: "Missing name"
flow: [{empty: true}]
assertions: [{empty: true}]
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			content: `
name: no_description
flow: [{empty: true}]
assertions: [{empty: true}]
`,
			wantErr: "description is required",
		},
		{
			name: "empty flow",
			content: `
name: no_flow
description: "Empty flow"
flow: []
assertions: [{empty: true}]
`,
			wantErr: "flow list is required",
		},
		{
			name: "no assertions",
			content: `
name: no_assertions
description: "No assertions"
flow: [{empty: true}]
`,
			wantErr: "assertions list is required",
		},
		{
			name: "two actions in one step",
			content: `
name: two_actions
description: "Ambiguous step"
flow: [{empty: true, remove: mug/}]
assertions: [{empty: true}]
`,
			wantErr: "flow[0]: exactly one of",
		},
		{
			name: "select without catalog",
			content: `
name: select_no_catalog
description: "Select needs a catalog"
flow: [{select: {product: mug}}]
assertions: [{empty: true}]
`,
			wantErr: "select requires a catalog",
		},
		{
			name: "expect without error",
			content: `
name: empty_expect
description: "Expect needs an error code"
flow: [{empty: true, expect: {}}]
assertions: [{empty: true}]
`,
			wantErr: "flow[0].expect: error is required",
		},
		{
			name: "two assertion types",
			content: `
name: two_assertions
description: "Ambiguous assertion"
flow: [{empty: true}]
assertions: [{empty: true, total: "0"}]
`,
			wantErr: "assertions[0]: exactly one assertion type",
		},
		{
			name: "quantity without key",
			content: `
name: quantity_no_key
description: "Quantity needs a key"
flow: [{empty: true}]
assertions: [{quantity: {equals: 1}}]
`,
			wantErr: "quantity requires key",
		},
		{
			name: "missing catalog file",
			content: `
name: missing_catalog
description: "Catalog path does not exist"
catalog: /nonexistent/shop.yaml
flow: [{empty: true}]
assertions: [{empty: true}]
`,
			wantErr: "catalog file not found",
		},
		{
			name: "unknown field",
			content: `
name: typo
description: "Typo in assertions"
flow: [{empty: true}]
assertion: [{empty: true}]
`,
			wantErr: "failed to parse YAML",
		},
		{
			name: "unknown entry field",
			content: `
name: entry_typo
description: "Typo in entry"
flow: [{add: {id: mug, quantity: 1, qty: 2}}]
assertions: [{empty: false}]
`,
			wantErr: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content), "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
