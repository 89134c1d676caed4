// Package harness runs cart scenarios as executable tests.
//
// A scenario is a YAML file that drives a store.Store through a flow of
// cart actions and then checks assertions against the final state.
//
// # Scenario Format
//
//	name: merge_quantities
//	description: "Adding the same variant twice merges quantities"
//	currency: USD                 # optional, establishes the currency
//	catalog: ../catalog/shop.yaml # optional, relative to the scenario
//	flow:
//	  - add:
//	      id: ipad-case
//	      name: iPad case
//	      quantity: 1
//	      properties: { color: red }
//	      prices: { USD: 70 }
//	  - select:                   # resolve against the catalog, then add
//	      product: the-west-end
//	      options: { color: 1 }
//	      quantity: 2
//	  - update:
//	      key: ipad-case/_color-red
//	      id: ipad-case
//	      quantity: -1
//	    expect:
//	      error: INVALID_QUANTITY
//	  - remove: ipad-case/_color-red
//	  - set_currency: EUR
//	  - empty: true
//	assertions:
//	  - total: "700"
//	  - empty: false
//	  - quantity: { key: ipad-case/_color-red, equals: 10 }
//	  - absent: gift-card/
//	  - summary: "iPad case: 10 red"
//	  - currency: USD
//	  - count: 1
//	  - order: [ipad-case/_color-red]
//	  - missing_prices: []
//
// A step without expect must succeed. An add or update without key uses
// the generated key for its id and properties.
//
// # Deterministic Testing
//
// Every run uses a fresh store with testutil.DeterministicClock and
// testutil.SequentialIDGenerator, so the same scenario always produces
// the same trace. RunWithGolden compares that trace with a goldie golden
// file in testdata/golden.
package harness
