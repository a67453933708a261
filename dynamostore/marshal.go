package dynamostore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/ontomap/store"
)

// Individual references are stored as maps carrying these marker keys,
// distinguishing them from application map values.
const (
	refAttr   = "_ref"
	classAttr = "_class"
)

// marshalValue converts a store.Value to a DynamoDB attribute value.
func marshalValue(v store.Value) (types.AttributeValue, error) {
	switch t := v.(type) {
	case nil:
		return &types.AttributeValueMemberNULL{Value: true}, nil
	case store.Individual:
		return &types.AttributeValueMemberM{
			Value: map[string]types.AttributeValue{
				refAttr:   &types.AttributeValueMemberS{Value: t.ID},
				classAttr: &types.AttributeValueMemberS{Value: string(t.Class)},
			},
		}, nil
	case []store.Value:
		items := make([]types.AttributeValue, len(t))
		for i, el := range t {
			av, err := marshalValue(el)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			items[i] = av
		}
		return &types.AttributeValueMemberL{Value: items}, nil
	default:
		return attributevalue.Marshal(v)
	}
}

// unmarshalValue converts a DynamoDB attribute value back to a
// store.Value. Numbers come back as int64 when integral, float64
// otherwise.
func unmarshalValue(av types.AttributeValue) (store.Value, error) {
	switch t := av.(type) {
	case *types.AttributeValueMemberNULL:
		return nil, nil
	case *types.AttributeValueMemberS:
		return t.Value, nil
	case *types.AttributeValueMemberBOOL:
		return t.Value, nil
	case *types.AttributeValueMemberN:
		if n, err := strconv.ParseInt(t.Value, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(t.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("ontomap: unparseable number %q: %w", t.Value, err)
		}
		return f, nil
	case *types.AttributeValueMemberM:
		ref, okRef := t.Value[refAttr].(*types.AttributeValueMemberS)
		class, okClass := t.Value[classAttr].(*types.AttributeValueMemberS)
		if !okRef || !okClass {
			return nil, fmt.Errorf("ontomap: map attribute is not an individual reference")
		}
		return store.Individual{ID: ref.Value, Class: store.Name(class.Value)}, nil
	case *types.AttributeValueMemberL:
		out := make([]store.Value, len(t.Value))
		for i, el := range t.Value {
			v, err := unmarshalValue(el)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("ontomap: unsupported attribute type %T", av)
	}
}

// canonical renders a value into the stable string form used for
// property index partition keys. Equal values must canonicalize
// identically regardless of numeric width.
func canonical(v store.Value) string {
	switch t := v.(type) {
	case nil:
		return "_"
	case string:
		return "s:" + t
	case bool:
		return "b:" + strconv.FormatBool(t)
	case store.Individual:
		return "r:" + t.ID
	case []store.Value:
		parts := make([]string, len(t))
		for i, el := range t {
			parts[i] = canonical(el)
		}
		return "l:" + strings.Join(parts, "\x1f")
	default:
		if f, ok := asCanonicalFloat(v); ok {
			return "n:" + strconv.FormatFloat(f, 'g', -1, 64)
		}
		return fmt.Sprintf("x:%v", v)
	}
}

func asCanonicalFloat(v store.Value) (float64, bool) {
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
