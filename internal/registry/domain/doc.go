// Package domain provides the pure domain layer for the name registry with
// no infrastructure dependencies.
//
// It defines:
//   - the resource-name validation policy,
//   - the Entry value type pairing a name with its identifier,
//   - typed domain errors that callers can distinguish by type,
//   - the Store capability interface for persistence abstraction.
//
// The domain layer has no knowledge of infrastructure concerns (databases,
// file I/O, worker pools, etc.).
package domain
