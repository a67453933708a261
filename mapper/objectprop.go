package mapper

import (
	"context"
	"fmt"

	"github.com/jacentio/ontomap/store"
)

// ObjectPropertyMapping binds one struct field, holding a nested domain
// object or set of them, to a store relation pointing at other
// individuals.
type ObjectPropertyMapping struct {
	conn        store.Connection
	relation    Ref
	factory     Factory
	multiValued bool
}

// ObjectPropertyConfig configures an ObjectPropertyMapping.
type ObjectPropertyConfig struct {
	// MultiValued maps the field as a set of nested objects. Sets lose
	// intrinsic ordering; use a ListMapping when order matters.
	MultiValued bool
}

// NewObjectProperty binds a struct field to the relation named by
// relation, delegating the nested objects to mappers produced by
// factory.
func NewObjectProperty(conn store.Connection, relation Ref, factory Factory, cfg ObjectPropertyConfig) *ObjectPropertyMapping {
	return &ObjectPropertyMapping{
		conn:        conn,
		relation:    relation,
		factory:     factory,
		multiValued: cfg.MultiValued,
	}
}

// Encode recursively encodes the nested object(s) through the factory's
// mapper (find-or-create applies to them too) and assigns the resulting
// handle(s) to the relation. A nil nested object leaves the relation
// unset.
func (m *ObjectPropertyMapping) Encode(ctx context.Context, ind store.Individual, obj any, field string) error {
	rel, err := Resolve(ctx, m.conn, m.relation)
	if err != nil {
		return err
	}
	val, err := m.encodeTargets(ctx, obj, field)
	if err != nil {
		return err
	}
	return m.conn.SetProperty(ctx, ind, rel, val)
}

// Decode reads the relation's individual(s) and recursively decodes each
// through a fresh nested mapper.
func (m *ObjectPropertyMapping) Decode(ctx context.Context, ind store.Individual) (any, error) {
	rel, err := Resolve(ctx, m.conn, m.relation)
	if err != nil {
		return nil, err
	}
	v, err := m.conn.GetProperty(ctx, ind, rel)
	if err != nil {
		return nil, err
	}

	nested := m.factory()

	if !m.multiValued {
		if v == nil {
			return nil, nil
		}
		target, ok := v.(store.Individual)
		if !ok {
			return nil, fmt.Errorf("ontomap: relation %s holds %T, not an individual", rel, v)
		}
		return nested.DecodeObject(ctx, target)
	}

	var targets []store.Value
	if v != nil {
		vs, ok := v.([]store.Value)
		if !ok {
			return nil, fmt.Errorf("ontomap: relation %s holds %T, not a set", rel, v)
		}
		targets = vs
	}

	out := make([]any, 0, len(targets))
	for _, t := range targets {
		target, ok := t.(store.Individual)
		if !ok {
			return nil, fmt.Errorf("ontomap: relation %s holds %T, not an individual", rel, t)
		}
		decoded, err := nested.DecodeObject(ctx, target)
		if err != nil {
			return nil, err
		}
		out = append(out, decoded)
	}
	return out, nil
}

// Query constrains the relation on the nested object's store handle. The
// nested object is encoded first, so it is guaranteed to exist in the
// store before the constraint is built: building a search constraint can
// create individuals.
func (m *ObjectPropertyMapping) Query(ctx context.Context, obj any, field string) (store.Constraint, error) {
	rel, err := Resolve(ctx, m.conn, m.relation)
	if err != nil {
		return store.Constraint{}, err
	}
	val, err := m.encodeTargets(ctx, obj, field)
	if err != nil {
		return store.Constraint{}, err
	}
	return store.Constraint{Property: rel, Value: val}, nil
}

// IdentityKey always reports false for object properties.
func (m *ObjectPropertyMapping) IdentityKey() bool {
	return false
}

func (m *ObjectPropertyMapping) encodeTargets(ctx context.Context, obj any, field string) (store.Value, error) {
	fv, err := fieldValue(obj, field)
	if err != nil {
		return nil, err
	}

	nested := m.factory()

	if !m.multiValued {
		if isNil(fv) {
			return nil, nil
		}
		target, err := nested.EncodeObject(ctx, fv)
		if err != nil {
			return nil, err
		}
		return target, nil
	}

	els, err := elements(fv)
	if err != nil {
		return nil, err
	}
	vals := make([]store.Value, len(els))
	for i, el := range els {
		target, err := nested.EncodeObject(ctx, el)
		if err != nil {
			return nil, err
		}
		vals[i] = target
	}
	return vals, nil
}
