package store

import "errors"

var (
	// ErrNotFound is returned by SearchOne when no individual matches, and
	// by backends when a handle refers to a missing or deleted individual.
	ErrNotFound = errors.New("ontomap: individual not found")

	// ErrUnknownName is returned when resolving a name that was never
	// declared in the schema.
	ErrUnknownName = errors.New("ontomap: name not declared in schema")

	// ErrUnknownNamespace is returned when resolving against a namespace
	// the schema has no declarations for.
	ErrUnknownNamespace = errors.New("ontomap: unknown namespace")
)
