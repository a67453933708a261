// Package mapper translates between plain Go structs and store
// individuals.
//
// A [Mapper] owns an ordered table of field bindings for one domain
// type. Each binding is a [Mapping], a closed set of three strategies:
//
//   - [DataPropertyMapping] - a scalar value or set of scalar values
//   - [ObjectPropertyMapping] - a nested domain object or set thereof
//   - [ListMapping] - an ordered sequence of nested domain objects,
//     emulated through pivot individuals carrying an explicit index
//
// # Encoding
//
// Mapper.Encode performs find-or-create: it builds an equality-constraint
// search from the field table, asks the store for one matching
// individual, and only creates (and populates) a new individual when the
// search misses. A found individual is returned unmodified; a later
// encode never rewrites stored data.
//
// When one field is configured as the identity key, the search uses that
// field alone. Otherwise every field contributes a conjunctive
// constraint; fields whose mapping cannot express one (ordered lists)
// are skipped with a logged warning and never abort the encode.
//
// Object-property constraints are built by encoding the referenced
// object, so the referenced object is guaranteed to exist in the store
// before the constraint is used. Searching for an outer individual can
// therefore create inner individuals.
//
// # Decoding
//
// Mapper.Decode reads every field back and constructs a fresh domain
// struct by reflection, assigning exported fields by name. A field table
// that does not match the struct's shape fails construction; that is a
// configuration-time contract, not something this package recovers from.
//
// # Nesting and cycles
//
// Nested mappers are produced on demand through a [Factory], never held
// directly, so mutually recursive domain types configure without
// recursing. Every encode or decode of a nested field constructs a fresh
// nested mapper.
package mapper
