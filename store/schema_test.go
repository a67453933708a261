package store_test

import (
	"errors"
	"testing"

	"github.com/jacentio/ontomap/store"
)

const (
	exampleNS = "http://example.org/"
	otherNS   = "http://other.org"
)

func newSchema() *store.Schema {
	s := store.NewSchema(exampleNS)
	s.Declare(store.Decl{Name: "Dog", Kind: store.KindClass})
	s.Declare(store.Decl{Name: "entity_name", Kind: store.KindDataProperty, Functional: true})
	s.Declare(store.Decl{Name: "color", Namespace: otherNS, Kind: store.KindDataProperty})
	return s
}

func TestSchemaResolveDefaultNamespace(t *testing.T) {
	s := newSchema()

	n, err := s.Resolve("entity_name", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if n != store.Name("http://example.org/entity_name") {
		t.Errorf("unexpected name %q", n)
	}
}

func TestSchemaResolveExplicitNamespace(t *testing.T) {
	s := newSchema()

	n, err := s.Resolve("color", otherNS)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if n != store.Name("http://other.org#color") {
		t.Errorf("unexpected name %q", n)
	}
}

func TestSchemaResolveUnknownName(t *testing.T) {
	s := newSchema()

	_, err := s.Resolve("no_such_name", "")
	if !errors.Is(err, store.ErrUnknownName) {
		t.Errorf("expected ErrUnknownName, got %v", err)
	}
}

func TestSchemaResolveUnknownNamespace(t *testing.T) {
	s := newSchema()

	_, err := s.Resolve("entity_name", "http://nowhere.org/")
	if !errors.Is(err, store.ErrUnknownNamespace) {
		t.Errorf("expected ErrUnknownNamespace, got %v", err)
	}
}

func TestSchemaLookup(t *testing.T) {
	s := newSchema()

	n, err := s.Resolve("entity_name", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	d, ok := s.Lookup(n)
	if !ok {
		t.Fatal("expected declaration")
	}
	if d.Kind != store.KindDataProperty || !d.Functional {
		t.Errorf("unexpected declaration %+v", d)
	}

	if _, ok := s.Lookup(store.Name("http://example.org/nope")); ok {
		t.Error("expected no declaration for unknown name")
	}
}

func TestIRI(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		local     string
		expected  store.Name
	}{
		{"slash suffix", "http://example.org/", "Dog", "http://example.org/Dog"},
		{"hash suffix", "http://example.org#", "Dog", "http://example.org#Dog"},
		{"bare", "http://example.org", "Dog", "http://example.org#Dog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := store.IRI(tt.namespace, tt.local); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestIndividualIsZero(t *testing.T) {
	var zero store.Individual
	if !zero.IsZero() {
		t.Error("expected zero individual to report IsZero")
	}
	if (store.Individual{ID: "x"}).IsZero() {
		t.Error("expected non-zero individual")
	}
}
