// Package memstore provides an in-memory store.Connection backend.
//
// The backend is mutex-guarded and keeps individuals in creation order,
// so SearchOne is deterministic. It is the reference backend for tests
// and small embedded uses; it offers no persistence.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jacentio/ontomap/store"
)

// Store is an in-memory implementation of store.Connection.
type Store struct {
	mu      sync.RWMutex
	schema  *store.Schema
	records map[string]*record
	order   []string
}

type record struct {
	class store.Name
	props map[store.Name]store.Value
}

// New creates an empty in-memory store resolving names against schema.
func New(schema *store.Schema) *Store {
	return &Store{
		schema:  schema,
		records: make(map[string]*record),
	}
}

// ResolveName resolves a name through the schema.
func (s *Store) ResolveName(ctx context.Context, name, namespace string) (store.Name, error) {
	return s.schema.Resolve(name, namespace)
}

// CreateIndividual creates a new individual of the given class.
func (s *Store) CreateIndividual(ctx context.Context, class store.Name) (store.Individual, error) {
	if d, ok := s.schema.Lookup(class); ok && d.Kind != store.KindClass {
		return store.Individual{}, fmt.Errorf("ontomap: %q is a %s, not a class", class, d.Kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.records[id] = &record{
		class: class,
		props: make(map[store.Name]store.Value),
	}
	s.order = append(s.order, id)

	return store.Individual{ID: id, Class: class}, nil
}

// GetProperty reads one property. Absent properties return nil.
func (s *Store) GetProperty(ctx context.Context, ind store.Individual, property store.Name) (store.Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[ind.ID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, ind.ID)
	}
	return copyValue(rec.props[property]), nil
}

// SetProperty assigns one property, replacing any prior value.
func (s *Store) SetProperty(ctx context.Context, ind store.Individual, property store.Name, value store.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[ind.ID]
	if !ok {
		return fmt.Errorf("%w: %s", store.ErrNotFound, ind.ID)
	}
	rec.props[property] = copyValue(value)
	return nil
}

// SearchOne returns the first individual (in creation order) of the given
// class matching every constraint, or store.ErrNotFound.
func (s *Store) SearchOne(ctx context.Context, class store.Name, constraints []store.Constraint) (store.Individual, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		rec := s.records[id]
		if rec.class != class {
			continue
		}
		if matchesAll(rec, constraints) {
			return store.Individual{ID: id, Class: class}, nil
		}
	}
	return store.Individual{}, store.ErrNotFound
}

// Individuals returns the handles of all individuals in creation order.
func (s *Store) Individuals() []store.Individual {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Individual, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, store.Individual{ID: id, Class: s.records[id].class})
	}
	return out
}

func matchesAll(rec *record, constraints []store.Constraint) bool {
	for _, c := range constraints {
		if !store.ValueEqual(rec.props[c.Property], c.Value) {
			return false
		}
	}
	return true
}

func copyValue(v store.Value) store.Value {
	if vs, ok := v.([]store.Value); ok {
		out := make([]store.Value, len(vs))
		copy(out, vs)
		return out
	}
	return v
}
