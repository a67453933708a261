package mapper

import (
	"context"

	"github.com/jacentio/ontomap/store"
)

// DataPropertyMapping binds one struct field to one scalar store
// property.
type DataPropertyMapping struct {
	conn        store.Connection
	target      Ref
	multiValued bool
	identity    bool
}

// DataPropertyConfig configures a DataPropertyMapping.
type DataPropertyConfig struct {
	// MultiValued maps the field as a set of values rather than a single
	// (functional) value.
	MultiValued bool

	// IdentityKey marks the field as the one that locates an existing
	// individual during encode. At most one field per Mapper may set it.
	IdentityKey bool
}

// NewDataProperty binds a struct field to the scalar property named by
// target.
func NewDataProperty(conn store.Connection, target Ref, cfg DataPropertyConfig) *DataPropertyMapping {
	return &DataPropertyMapping{
		conn:        conn,
		target:      target,
		multiValued: cfg.MultiValued,
		identity:    cfg.IdentityKey,
	}
}

// Encode writes the field's value to the target property, replacing any
// prior value. Multi-valued fields are materialized into a []store.Value.
func (m *DataPropertyMapping) Encode(ctx context.Context, ind store.Individual, obj any, field string) error {
	prop, err := Resolve(ctx, m.conn, m.target)
	if err != nil {
		return err
	}
	val, err := m.encodeValue(obj, field)
	if err != nil {
		return err
	}
	return m.conn.SetProperty(ctx, ind, prop, val)
}

// Decode reads the target property back. Functional fields return the
// raw value; multi-valued fields return the stored values with no
// ordering guarantee.
func (m *DataPropertyMapping) Decode(ctx context.Context, ind store.Individual) (any, error) {
	prop, err := Resolve(ctx, m.conn, m.target)
	if err != nil {
		return nil, err
	}
	v, err := m.conn.GetProperty(ctx, ind, prop)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Query returns an equality constraint on the target property. For
// multi-valued fields the constraint compares the full materialized
// sequence; whether that matches depends on the backend's multi-value
// representation.
func (m *DataPropertyMapping) Query(ctx context.Context, obj any, field string) (store.Constraint, error) {
	prop, err := Resolve(ctx, m.conn, m.target)
	if err != nil {
		return store.Constraint{}, err
	}
	val, err := m.encodeValue(obj, field)
	if err != nil {
		return store.Constraint{}, err
	}
	return store.Constraint{Property: prop, Value: val}, nil
}

// IdentityKey reports whether the field was configured as the identity
// key.
func (m *DataPropertyMapping) IdentityKey() bool {
	return m.identity
}

func (m *DataPropertyMapping) encodeValue(obj any, field string) (store.Value, error) {
	fv, err := fieldValue(obj, field)
	if err != nil {
		return nil, err
	}
	if !m.multiValued {
		if isNil(fv) {
			return nil, nil
		}
		return fv, nil
	}
	els, err := elements(fv)
	if err != nil {
		return nil, err
	}
	vals := make([]store.Value, len(els))
	for i, el := range els {
		vals[i] = el
	}
	return vals, nil
}
