// Package store is the in-memory container around the cart state.
//
// A Store holds the current *cart.State and applies cart.Actions to it.
// It is the only place where the current snapshot changes; the
// transitions themselves are pure functions in package cart.
//
// # Guarantees
//
// Single writer:
//   - Dispatch calls are serialized by a mutex
//   - Each dispatch reads one snapshot and publishes at most one new one
//
// Logical time:
//   - Every dispatch, accepted or rejected, gets a journal Record
//   - Records are ordered by seq from a logical clock, NEVER wall time
//   - Record IDs come from an injectable generator (UUIDv7 by default)
//
// No persistence:
//   - State lives only as long as the Store value
//   - Replay rebuilds a state from journal records in memory
package store
