// Package store defines the connector boundary between the ontomap
// mapping core and an ontology-like persistence engine.
//
// Ontomap translates between plain Go structs and store individuals. The
// mapping core (package mapper) consumes exactly five operations from a
// backend, captured by the [Connection] interface:
//
//   - ResolveName: name + namespace to a resolved handle
//   - CreateIndividual: new individual of a class
//   - GetProperty / SetProperty: read and assign one property
//   - SearchOne: equality-constraint search for one individual
//
// # Values
//
// Property values are modeled by [Value]: scalars (string, bool, int,
// int64, float64), [Individual] handles for object properties, and
// []Value for multi-valued assignments. SetProperty always replaces the
// prior value; there is no append surface at this boundary.
//
// # Names
//
// Classes and properties are declared in a [Schema] keyed by namespace
// URI. Backends resolve bare names against the schema's default
// namespace and qualified names against an explicit one. Resolution of
// an undeclared name fails with [ErrUnknownName]; the mapping core
// propagates such failures unchanged.
//
// # Backends
//
// Two implementations ship with the module:
//
//   - memstore: mutex-guarded in-memory backend with deterministic
//     search order, suitable for tests and embedded use.
//   - dynamostore: DynamoDB-backed backend with a hash-distributed
//     property index and TTL-based soft deletion.
//
// Both treat the connection as a shared, externally owned resource and
// offer no mutual exclusion around search-then-create sequences; two
// racing encodes may each create an individual for the same identity.
package store
