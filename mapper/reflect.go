package mapper

import (
	"fmt"
	"reflect"
)

// fieldValue reads the named exported field of a domain struct,
// dereferencing pointers to the struct itself.
func fieldValue(obj any, field string) (any, error) {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, fmt.Errorf("ontomap: nil %s reading field %s", v.Type(), field)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("ontomap: %T is not a struct, cannot read field %s", obj, field)
	}
	f := v.FieldByName(field)
	if !f.IsValid() {
		return nil, fmt.Errorf("ontomap: %s has no field %s", v.Type(), field)
	}
	if !f.CanInterface() {
		return nil, fmt.Errorf("ontomap: field %s of %s is unexported", field, v.Type())
	}
	return f.Interface(), nil
}

// elements materializes a slice or array field into []any. A nil value
// yields an empty sequence.
func elements(v any) ([]any, error) {
	if isNil(v) {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("ontomap: %T is not a sequence", v)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// isNil reports whether v is nil, including typed nils behind an
// interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

// construct builds a domain struct from decoded field values keyed by
// field name. A value set that does not match the struct's shape fails;
// that is the configuration contract between a field table and its
// domain type.
func construct[S any](values map[string]any) (S, error) {
	var out S
	rv := reflect.ValueOf(&out).Elem()
	if rv.Kind() != reflect.Struct {
		return out, fmt.Errorf("ontomap: cannot construct %T: not a struct", out)
	}
	for name, val := range values {
		f := rv.FieldByName(name)
		if !f.IsValid() {
			return out, fmt.Errorf("ontomap: %T has no field %s", out, name)
		}
		if !f.CanSet() {
			return out, fmt.Errorf("ontomap: field %s of %T is unexported", name, out)
		}
		if err := assign(f, val); err != nil {
			return out, fmt.Errorf("ontomap: field %s of %T: %w", name, out, err)
		}
	}
	return out, nil
}

// assign places a decoded value into a struct field, adapting pointer
// wrapping, slice element types, and numeric widths.
func assign(f reflect.Value, val any) error {
	if isNil(val) {
		f.Set(reflect.Zero(f.Type()))
		return nil
	}

	v := reflect.ValueOf(val)
	if v.Type().AssignableTo(f.Type()) {
		f.Set(v)
		return nil
	}

	switch {
	case f.Kind() == reflect.Pointer:
		elem := reflect.New(f.Type().Elem())
		if err := assign(elem.Elem(), val); err != nil {
			return err
		}
		f.Set(elem)
		return nil

	case f.Kind() == reflect.Slice && v.Kind() == reflect.Slice:
		out := reflect.MakeSlice(f.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			if err := assign(out.Index(i), v.Index(i).Interface()); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		f.Set(out)
		return nil

	case isNumericKind(v.Kind()) && isNumericKind(f.Kind()):
		f.Set(v.Convert(f.Type()))
		return nil

	case v.Kind() == reflect.Pointer:
		return assign(f, v.Elem().Interface())
	}

	return fmt.Errorf("cannot assign %T to %s", val, f.Type())
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// asInt normalizes a stored index value to an int. Backends differ in
// the numeric width they hand back.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
