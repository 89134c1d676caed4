// Package catalog holds product definitions and resolves a property
// selection into a cart entry.
//
// A catalog is loaded from CUE (validated against an embedded schema) or
// YAML. Resolution picks one option per configurable property, adds any
// per-currency additional cost of the chosen options to the base prices,
// and computes the product variant key. The cart store trusts the entry
// it is given; all pricing happens here.
package catalog
