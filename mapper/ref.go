package mapper

import (
	"context"

	"github.com/jacentio/ontomap/store"
)

// Ref names a class, property, or relation in mapping configuration.
// A Ref with an empty Namespace resolves in the connection's default
// namespace.
type Ref struct {
	Name      string
	Namespace string
}

// Local returns a Ref resolving in the default namespace.
func Local(name string) Ref {
	return Ref{Name: name}
}

// Qualified returns a Ref resolving in an explicit namespace.
func Qualified(name, namespace string) Ref {
	return Ref{Name: name, Namespace: namespace}
}

// IsZero reports whether the Ref names nothing.
func (r Ref) IsZero() bool {
	return r.Name == ""
}

// Resolve resolves a Ref to a concrete store handle through the
// connection. Resolution failures propagate from the store unchanged.
func Resolve(ctx context.Context, conn store.Connection, r Ref) (store.Name, error) {
	return conn.ResolveName(ctx, r.Name, r.Namespace)
}
