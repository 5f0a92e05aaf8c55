// Package types defines the shared vocabulary of reg-api: typed errors,
// registry value types, root anchors, limits, and the Store/Key contract
// that every backend implements.
//
// Design goals:
//   - Backends stay thin; the facade in pkg/registry owns all policy.
//   - Typed errors with stable categories (not-open/not-found/size/...).
//   - Never panic on malformed stored data.
//
// This package has no dependencies beyond the standard library.
package types
