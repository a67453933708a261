package store

import (
	"fmt"
	"strings"
)

// Kind classifies a schema declaration.
type Kind int

const (
	// KindClass declares an individual class.
	KindClass Kind = iota

	// KindDataProperty declares a scalar-valued property.
	KindDataProperty

	// KindObjectProperty declares an individual-valued relation.
	KindObjectProperty
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindDataProperty:
		return "data property"
	case KindObjectProperty:
		return "object property"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Decl declares one class or property inside a namespace.
type Decl struct {
	// Name is the local name within the namespace.
	Name string

	// Namespace is the namespace URI. Empty means the schema's default
	// namespace.
	Namespace string

	// Kind classifies the declaration.
	Kind Kind

	// Functional marks a property as single-valued. Ignored for classes.
	Functional bool
}

// Schema holds the namespace declarations a Connection resolves names
// against. Declarations are registered during setup; Schema performs no
// ontology-level validation beyond name lookup.
type Schema struct {
	defaultNS string
	byNS      map[string]map[string]Decl
	byIRI     map[Name]Decl
}

// NewSchema creates a Schema with the given default namespace URI.
func NewSchema(defaultNamespace string) *Schema {
	return &Schema{
		defaultNS: defaultNamespace,
		byNS:      make(map[string]map[string]Decl),
		byIRI:     make(map[Name]Decl),
	}
}

// DefaultNamespace returns the schema's default namespace URI.
func (s *Schema) DefaultNamespace() string {
	return s.defaultNS
}

// Declare registers one declaration. An empty Decl.Namespace places it in
// the default namespace. Re-declaring a name replaces the prior entry.
func (s *Schema) Declare(d Decl) {
	if d.Namespace == "" {
		d.Namespace = s.defaultNS
	}
	ns, ok := s.byNS[d.Namespace]
	if !ok {
		ns = make(map[string]Decl)
		s.byNS[d.Namespace] = ns
	}
	ns[d.Name] = d
	s.byIRI[IRI(d.Namespace, d.Name)] = d
}

// Resolve resolves a local name inside the given namespace, or inside the
// default namespace when namespace is empty. Undeclared names fail with
// ErrUnknownName, unregistered namespaces with ErrUnknownNamespace.
func (s *Schema) Resolve(name, namespace string) (Name, error) {
	if namespace == "" {
		namespace = s.defaultNS
	}
	ns, ok := s.byNS[namespace]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownNamespace, namespace)
	}
	d, ok := ns[name]
	if !ok {
		return "", fmt.Errorf("%w: %q in %q", ErrUnknownName, name, namespace)
	}
	return IRI(d.Namespace, d.Name), nil
}

// Lookup returns the declaration behind a resolved name.
func (s *Schema) Lookup(n Name) (Decl, bool) {
	d, ok := s.byIRI[n]
	return d, ok
}

// IRI joins a namespace URI and a local name into a resolved Name.
// Namespaces already ending in "/" or "#" are concatenated directly,
// matching common ontology IRI conventions.
func IRI(namespace, name string) Name {
	if strings.HasSuffix(namespace, "/") || strings.HasSuffix(namespace, "#") {
		return Name(namespace + name)
	}
	return Name(namespace + "#" + name)
}
