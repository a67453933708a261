package mapper

import (
	"testing"
)

type testStruct struct {
	Name  string
	Age   int
	Tags  []string
	Other *testStruct
}

// --- fieldValue Tests ---

func TestFieldValue(t *testing.T) {
	s := testStruct{Name: "rex", Age: 3}

	v, err := fieldValue(s, "Name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "rex" {
		t.Errorf("expected 'rex', got %v", v)
	}
}

func TestFieldValue_Pointer(t *testing.T) {
	s := &testStruct{Age: 3}

	v, err := fieldValue(s, "Age")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 3 {
		t.Errorf("expected 3, got %v", v)
	}
}

func TestFieldValue_MissingField(t *testing.T) {
	if _, err := fieldValue(testStruct{}, "Nope"); err == nil {
		t.Error("expected error for missing field")
	}
}

func TestFieldValue_NotAStruct(t *testing.T) {
	if _, err := fieldValue("hello", "Name"); err == nil {
		t.Error("expected error for non-struct")
	}
}

func TestFieldValue_NilPointer(t *testing.T) {
	var s *testStruct
	if _, err := fieldValue(s, "Name"); err == nil {
		t.Error("expected error for nil pointer")
	}
}

// --- elements Tests ---

func TestElements(t *testing.T) {
	els, err := elements([]string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(els) != 2 || els[0] != "a" || els[1] != "b" {
		t.Errorf("unexpected elements %v", els)
	}
}

func TestElements_Nil(t *testing.T) {
	els, err := elements(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(els) != 0 {
		t.Errorf("expected empty, got %v", els)
	}
}

func TestElements_NotASequence(t *testing.T) {
	if _, err := elements(42); err == nil {
		t.Error("expected error for non-sequence")
	}
}

// --- isNil Tests ---

func TestIsNil(t *testing.T) {
	var ptr *testStruct
	var slice []string

	tests := []struct {
		name     string
		val      any
		expected bool
	}{
		{"untyped nil", nil, true},
		{"typed nil pointer", ptr, true},
		{"nil slice", slice, true},
		{"non-nil pointer", &testStruct{}, false},
		{"string", "x", false},
		{"zero int", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNil(tt.val); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// --- construct Tests ---

func TestConstruct(t *testing.T) {
	s, err := construct[testStruct](map[string]any{
		"Name": "rex",
		"Age":  3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name != "rex" || s.Age != 3 {
		t.Errorf("unexpected struct %+v", s)
	}
}

func TestConstruct_NumericWidth(t *testing.T) {
	// Backends hand back int64 where the field is int.
	s, err := construct[testStruct](map[string]any{"Age": int64(7)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Age != 7 {
		t.Errorf("expected 7, got %d", s.Age)
	}
}

func TestConstruct_PointerField(t *testing.T) {
	s, err := construct[testStruct](map[string]any{
		"Other": testStruct{Name: "inner"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Other == nil || s.Other.Name != "inner" {
		t.Errorf("unexpected pointer field %+v", s.Other)
	}
}

func TestConstruct_SliceElementConversion(t *testing.T) {
	s, err := construct[testStruct](map[string]any{
		"Tags": []any{"a", "b"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Tags) != 2 || s.Tags[0] != "a" || s.Tags[1] != "b" {
		t.Errorf("unexpected tags %v", s.Tags)
	}
}

func TestConstruct_NilLeavesZero(t *testing.T) {
	s, err := construct[testStruct](map[string]any{
		"Name":  nil,
		"Other": nil,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name != "" || s.Other != nil {
		t.Errorf("expected zero fields, got %+v", s)
	}
}

func TestConstruct_UnknownField(t *testing.T) {
	if _, err := construct[testStruct](map[string]any{"Nope": 1}); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestConstruct_Incompatible(t *testing.T) {
	if _, err := construct[testStruct](map[string]any{"Age": "three"}); err == nil {
		t.Error("expected error for incompatible value")
	}
}

// --- asInt Tests ---

func TestAsInt(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want int
		ok   bool
	}{
		{"int", 5, 5, true},
		{"int32", int32(5), 5, true},
		{"int64", int64(5), 5, true},
		{"float64", float64(5), 5, true},
		{"string", "5", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := asInt(tt.val)
			if got != tt.want || ok != tt.ok {
				t.Errorf("asInt(%v) = (%d, %v), want (%d, %v)", tt.val, got, ok, tt.want, tt.ok)
			}
		})
	}
}
