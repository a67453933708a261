package mapper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/jacentio/ontomap/store"
)

// Field binds one exported struct field name to its Mapping. Table order
// is kept for readability; store property names, not positions, drive
// encoding.
type Field struct {
	Name    string
	Mapping Mapping
}

// Mapper translates between one domain struct type S and store
// individuals of one target class. A Mapper is long-lived and stateless
// across calls apart from its store connection.
type Mapper[S any] struct {
	conn   store.Connection
	class  Ref
	fields []Field
	logger *slog.Logger
}

// New creates a Mapper for domain type S targeting the class named by
// class, resolved lazily at each encode. A nil logger falls back to
// slog.Default. New panics when more than one field is flagged as the
// identity key; that is a configuration bug, not a runtime condition.
func New[S any](conn store.Connection, class Ref, fields []Field, logger *slog.Logger) *Mapper[S] {
	if logger == nil {
		logger = slog.Default()
	}
	keys := 0
	for _, f := range fields {
		if f.Mapping.IdentityKey() {
			keys++
		}
	}
	if keys > 1 {
		var zero S
		panic(fmt.Sprintf("ontomap: mapper for %T declares %d identity keys, want at most one", zero, keys))
	}
	return &Mapper[S]{
		conn:   conn,
		class:  class,
		fields: fields,
		logger: logger,
	}
}

// Encode persists obj with find-or-create semantics. When the search
// locates an existing individual it is returned unmodified: stored data
// is never rewritten by a later encode with matching identity. Only on a
// miss is a new individual created and populated from every field
// mapping.
//
// There is no locking around the search-then-create sequence; two
// concurrent encodes racing on the same identity may both create an
// individual. The store is the sole arbiter of any stronger guarantee.
func (m *Mapper[S]) Encode(ctx context.Context, obj S) (store.Individual, error) {
	constraints, err := m.searchConstraints(ctx, obj)
	if err != nil {
		return store.Individual{}, err
	}

	class, err := Resolve(ctx, m.conn, m.class)
	if err != nil {
		return store.Individual{}, err
	}

	found, err := m.conn.SearchOne(ctx, class, constraints)
	switch {
	case err == nil:
		return found, nil
	case !errors.Is(err, store.ErrNotFound):
		return store.Individual{}, err
	}

	ind, err := m.conn.CreateIndividual(ctx, class)
	if err != nil {
		return store.Individual{}, err
	}
	for _, f := range m.fields {
		if err := f.Mapping.Encode(ctx, ind, obj, f.Name); err != nil {
			return store.Individual{}, fmt.Errorf("encode field %s: %w", f.Name, err)
		}
	}
	return ind, nil
}

// searchConstraints builds the identity-resolution search. With an
// identity key, that field alone constrains the search. Otherwise every
// field contributes conjunctively; fields whose mapping has no query
// capability are skipped with a warning and never abort the encode.
func (m *Mapper[S]) searchConstraints(ctx context.Context, obj S) ([]store.Constraint, error) {
	for _, f := range m.fields {
		if !f.Mapping.IdentityKey() {
			continue
		}
		c, err := f.Mapping.Query(ctx, obj, f.Name)
		if err != nil {
			return nil, fmt.Errorf("identity key %s: %w", f.Name, err)
		}
		return []store.Constraint{c}, nil
	}

	var constraints []store.Constraint
	for _, f := range m.fields {
		c, err := f.Mapping.Query(ctx, obj, f.Name)
		if errors.Is(err, ErrNoQuery) {
			m.logger.Warn("field cannot constrain identity search, skipping",
				"field", f.Name,
				"class", m.class.Name,
			)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("query field %s: %w", f.Name, err)
		}
		constraints = append(constraints, c)
	}
	return constraints, nil
}

// Decode reads every mapped field from the individual and constructs a
// fresh S from the collected values. A field table that does not match
// S's shape fails construction; the error propagates uncaught.
func (m *Mapper[S]) Decode(ctx context.Context, ind store.Individual) (S, error) {
	var zero S
	values := make(map[string]any, len(m.fields))
	for _, f := range m.fields {
		v, err := f.Mapping.Decode(ctx, ind)
		if err != nil {
			return zero, fmt.Errorf("decode field %s: %w", f.Name, err)
		}
		values[f.Name] = v
	}
	return construct[S](values)
}

// EncodeObject implements ObjectMapper. It accepts S or *S.
func (m *Mapper[S]) EncodeObject(ctx context.Context, obj any) (store.Individual, error) {
	if s, ok := obj.(S); ok {
		return m.Encode(ctx, s)
	}
	if rv := reflect.ValueOf(obj); rv.Kind() == reflect.Pointer && !rv.IsNil() {
		if s, ok := rv.Elem().Interface().(S); ok {
			return m.Encode(ctx, s)
		}
	}
	var zero S
	return store.Individual{}, fmt.Errorf("ontomap: mapper for %T received %T", zero, obj)
}

// DecodeObject implements ObjectMapper.
func (m *Mapper[S]) DecodeObject(ctx context.Context, ind store.Individual) (any, error) {
	return m.Decode(ctx, ind)
}
