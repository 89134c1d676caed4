// Package ir provides the foundational value types for the cart model.
//
// This package contains value types and their encodings only. All other
// internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - NO float types anywhere - integers are int64, fractions are decimals
//   - Property values are resolved scalars (String, Int, Decimal), never
//     option descriptors
//   - Money is always shopspring/decimal, keyed by currency code
//   - Canonical JSON (sorted keys, NFC strings) is the only encoding used
//     for snapshots and golden files
package ir
