package store

import "context"

// Name is a store-resolved handle for a class, data property, or object
// property. It is the full IRI produced by Schema resolution.
type Name string

// Individual is an opaque, comparable handle to one entity in the store.
type Individual struct {
	// ID uniquely identifies the individual within the store.
	ID string

	// Class is the resolved class the individual was created under.
	Class Name
}

// IsZero reports whether the handle refers to no individual.
func (i Individual) IsZero() bool {
	return i.ID == ""
}

// Value is a property value: a scalar (string, bool, int, int64, float64),
// an Individual handle for object properties, or a []Value for multi-valued
// assignments. A nil Value means the property is absent.
type Value any

// Constraint is one equality constraint used by SearchOne. A nil Value
// matches individuals that do not carry the property at all.
type Constraint struct {
	Property Name
	Value    Value
}

// Connection is the complete surface the mapping core consumes from a
// store backend. Connections are externally owned and shared; the mapping
// core never closes them.
type Connection interface {
	// ResolveName resolves a property or class name inside the given
	// namespace, or inside the connection's default namespace when
	// namespace is empty.
	ResolveName(ctx context.Context, name, namespace string) (Name, error)

	// CreateIndividual creates a new individual of the given class and
	// returns its handle.
	CreateIndividual(ctx context.Context, class Name) (Individual, error)

	// GetProperty reads one property of an individual. Multi-valued
	// properties come back as []Value. Absent properties come back as nil
	// with no error.
	GetProperty(ctx context.Context, ind Individual, property Name) (Value, error)

	// SetProperty assigns one property of an individual, replacing any
	// prior value. Multi-valued assignments pass a []Value.
	SetProperty(ctx context.Context, ind Individual, property Name, value Value) error

	// SearchOne returns one individual of the given class matching every
	// constraint, or ErrNotFound when no individual matches.
	SearchOne(ctx context.Context, class Name, constraints []Constraint) (Individual, error)
}
