package store

// ValueEqual compares two property values the way SearchOne constraints
// are matched: numbers compare across widths, individuals compare by
// handle, and []Value compares element-wise in sequence order. Nil
// equals only nil, which lets a nil constraint match an absent property.
func ValueEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if as, ok := a.([]Value); ok {
		bs, ok := b.([]Value)
		if !ok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !ValueEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	}

	if ai, ok := a.(Individual); ok {
		bi, ok := b.(Individual)
		return ok && ai == bi
	}

	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}

	return a == b
}

func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
