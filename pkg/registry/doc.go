// Package registry is a facade over a hierarchical key-value store modeled
// on the Windows registry.
//
// A Registry owns at most one open key at a time. ChangeRoot moves it to a
// new key, creating the key when absent; every other operation works on
// the values of that key. Values are always stored as REG_SZ text, so
// numbers, binary objects, and process-local references are first turned
// into strings:
//
//   - ReadNumber / WriteNumber format scalars as trimmed fixed-point text
//   - Objects[T] stores fixed-layout values as base64 text
//   - StoreRef / LoadRef store a process-scoped handle as "<hex>_<pid>"
//
// Operations with a natural default (reads, existence probes) degrade to
// that default instead of failing. Only the object capsule returns errors.
//
// A Registry is not safe for concurrent use. Separate Registry values may
// share one types.Store.
package registry
