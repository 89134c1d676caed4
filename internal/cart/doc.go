// Package cart implements the shopping cart state model.
//
// A cart is an immutable *State holding an ordered map of product variant
// key to Entry plus the active currency. State only changes through the
// pure transitions in this package (Add, Update, Remove, Empty,
// SetCurrency), each of which returns a new snapshot and never mutates
// its input. Selectors (Total, IsEmpty, Summary, ...) derive values from a
// snapshot on read.
//
// Key design constraints:
//   - Product keys come from GenerateKey and are the only mechanism for
//     merging quantities of identical configurations
//   - Stored quantities are always in [1, MaxQuantity]; invalid quantities
//     are rejected with a *Error and the input state is returned unchanged
//   - No zero-quantity tombstones: removing or zeroing an entry deletes it
//   - A price missing for the active currency contributes zero to totals
//   - Insertion order is kept for deterministic display and snapshots
package cart
