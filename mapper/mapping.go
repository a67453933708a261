package mapper

import (
	"context"
	"errors"

	"github.com/jacentio/ontomap/store"
)

var (
	// ErrNoQuery is returned by Mapping.Query when the strategy has no
	// sensible equality constraint. The Mapper recovers by skipping the
	// field during identity-resolution search.
	ErrNoQuery = errors.New("ontomap: mapping cannot contribute a search constraint")

	// ErrNoConnection is returned when a ListMapping is used without a
	// store connection. Fatal to the call; list encoding must create
	// pivot individuals.
	ErrNoConnection = errors.New("ontomap: list mapping requires a store connection")
)

// Mapping binds one named field of a domain struct to one store
// property. Implementations form a closed set: DataPropertyMapping,
// ObjectPropertyMapping, and ListMapping.
type Mapping interface {
	// Encode writes obj's field onto the individual.
	Encode(ctx context.Context, ind store.Individual, obj any, field string) error

	// Decode reads the field's value back from the individual.
	Decode(ctx context.Context, ind store.Individual) (any, error)

	// Query returns the equality constraint this field contributes to
	// identity-resolution search, or ErrNoQuery when the strategy has
	// none.
	Query(ctx context.Context, obj any, field string) (store.Constraint, error)

	// IdentityKey reports whether this field alone locates an existing
	// individual during encode.
	IdentityKey() bool
}

// ObjectMapper is the untyped mapper surface used for nested fields.
// Mapper[S] implements it for any S.
type ObjectMapper interface {
	EncodeObject(ctx context.Context, obj any) (store.Individual, error)
	DecodeObject(ctx context.Context, ind store.Individual) (any, error)
}

// Factory produces a mapper for a nested domain type on demand. The
// indirection keeps nested-mapper construction lazy, so mutually
// recursive domain types configure without infinite recursion.
type Factory func() ObjectMapper
