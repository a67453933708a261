package mapper

import (
	"context"
	"fmt"
	"sort"

	"github.com/jacentio/ontomap/store"
)

// ListMapping binds one struct field holding an ordered sequence of
// nested domain objects to a store relation. The store has no ordered
// collection property, so order is emulated through pivot individuals:
// auxiliary entities carrying a reference to one element and an integer
// index. Pivots are invisible to the domain model.
type ListMapping struct {
	conn          store.Connection
	relation      Ref
	pivotClass    Ref
	itemRelation  Ref
	indexProperty Ref
	factory       Factory
}

// ListConfig configures a ListMapping.
type ListConfig struct {
	// PivotClass is the class of the auxiliary individuals carrying
	// order.
	PivotClass Ref

	// ItemRelation is the pivot's relation pointing at one sequence
	// element.
	ItemRelation Ref

	// IndexProperty holds a pivot's zero-based position. Defaults to the
	// conventional "sequence_number" in the default namespace.
	IndexProperty Ref
}

// NewList binds a struct field to the relation named by relation,
// encoding order through pivots of cfg.PivotClass. Elements are mapped
// through mappers produced by factory.
func NewList(conn store.Connection, relation Ref, factory Factory, cfg ListConfig) *ListMapping {
	if cfg.IndexProperty.IsZero() {
		cfg.IndexProperty = Local("sequence_number")
	}
	return &ListMapping{
		conn:          conn,
		relation:      relation,
		pivotClass:    cfg.PivotClass,
		itemRelation:  cfg.ItemRelation,
		indexProperty: cfg.IndexProperty,
		factory:       factory,
	}
}

type listNames struct {
	relation      store.Name
	pivotClass    store.Name
	itemRelation  store.Name
	indexProperty store.Name
}

func (m *ListMapping) resolveNames(ctx context.Context) (listNames, error) {
	var n listNames
	var err error
	if n.relation, err = Resolve(ctx, m.conn, m.relation); err != nil {
		return n, err
	}
	if n.pivotClass, err = Resolve(ctx, m.conn, m.pivotClass); err != nil {
		return n, err
	}
	if n.itemRelation, err = Resolve(ctx, m.conn, m.itemRelation); err != nil {
		return n, err
	}
	if n.indexProperty, err = Resolve(ctx, m.conn, m.indexProperty); err != nil {
		return n, err
	}
	return n, nil
}

// Encode creates one fresh pivot per element, in iteration order: each
// pivot references the element's encoded individual and carries its
// position, and the full pivot set replaces the relation's prior value.
// Pivots from an earlier encode of the same field are not reused or
// reclaimed here; see package stream for reclamation.
func (m *ListMapping) Encode(ctx context.Context, ind store.Individual, obj any, field string) error {
	if m.conn == nil {
		return ErrNoConnection
	}
	names, err := m.resolveNames(ctx)
	if err != nil {
		return err
	}

	fv, err := fieldValue(obj, field)
	if err != nil {
		return err
	}
	els, err := elements(fv)
	if err != nil {
		return err
	}

	nested := m.factory()
	pivots := make([]store.Value, 0, len(els))
	for i, el := range els {
		pivot, err := m.conn.CreateIndividual(ctx, names.pivotClass)
		if err != nil {
			return fmt.Errorf("create pivot %d: %w", i, err)
		}
		target, err := nested.EncodeObject(ctx, el)
		if err != nil {
			return fmt.Errorf("encode element %d: %w", i, err)
		}
		if err := m.conn.SetProperty(ctx, pivot, names.itemRelation, target); err != nil {
			return err
		}
		if err := m.conn.SetProperty(ctx, pivot, names.indexProperty, i); err != nil {
			return err
		}
		pivots = append(pivots, pivot)
	}

	return m.conn.SetProperty(ctx, ind, names.relation, pivots)
}

// Decode reads all pivots under the relation, sorts them ascending by
// index property, and decodes each referenced element in that order.
// Store iteration order is never trusted.
func (m *ListMapping) Decode(ctx context.Context, ind store.Individual) (any, error) {
	if m.conn == nil {
		return nil, ErrNoConnection
	}
	names, err := m.resolveNames(ctx)
	if err != nil {
		return nil, err
	}

	v, err := m.conn.GetProperty(ctx, ind, names.relation)
	if err != nil {
		return nil, err
	}

	var pivotVals []store.Value
	if v != nil {
		vs, ok := v.([]store.Value)
		if !ok {
			return nil, fmt.Errorf("ontomap: relation %s holds %T, not a pivot set", names.relation, v)
		}
		pivotVals = vs
	}

	type entry struct {
		index  int
		target store.Individual
	}
	entries := make([]entry, 0, len(pivotVals))
	for _, pv := range pivotVals {
		pivot, ok := pv.(store.Individual)
		if !ok {
			return nil, fmt.Errorf("ontomap: relation %s holds %T, not an individual", names.relation, pv)
		}
		idxVal, err := m.conn.GetProperty(ctx, pivot, names.indexProperty)
		if err != nil {
			return nil, err
		}
		idx, ok := asInt(idxVal)
		if !ok {
			return nil, fmt.Errorf("ontomap: pivot %s has index %v (%T), want integer", pivot.ID, idxVal, idxVal)
		}
		itemVal, err := m.conn.GetProperty(ctx, pivot, names.itemRelation)
		if err != nil {
			return nil, err
		}
		target, ok := itemVal.(store.Individual)
		if !ok {
			return nil, fmt.Errorf("ontomap: pivot %s references %T, not an individual", pivot.ID, itemVal)
		}
		entries = append(entries, entry{index: idx, target: target})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].index < entries[j].index })

	nested := m.factory()
	out := make([]any, 0, len(entries))
	for _, e := range entries {
		decoded, err := nested.DecodeObject(ctx, e.target)
		if err != nil {
			return nil, err
		}
		out = append(out, decoded)
	}
	return out, nil
}

// Query always fails with ErrNoQuery: there is no sensible equality
// constraint over an ordered multi-entity relation.
func (m *ListMapping) Query(ctx context.Context, obj any, field string) (store.Constraint, error) {
	return store.Constraint{}, fmt.Errorf("%w: ordered list on relation %q", ErrNoQuery, m.relation.Name)
}

// IdentityKey always reports false for list mappings.
func (m *ListMapping) IdentityKey() bool {
	return false
}
