// Package ast defines the data model of an authorization model: the tree a
// parsed document reduces to, and the same tree the project package lowers
// further to its canonical JSON shape.
package ast

import "github.com/iammathew/openfga-dsl/internal/source"

// Identifier is a name plus the span of source text it was parsed from.
// Span is nil only for identifiers synthesised outside parsing (currently:
// deserialised from JSON, which carries no source origin).
type Identifier struct {
	Name string
	Span *source.Span
}

// NewIdentifier builds a parsed identifier; its span is always present.
func NewIdentifier(name string, span source.Span) Identifier {
	return Identifier{Name: name, Span: &span}
}

// AccessKind tags the variant held by an Access value.
type AccessKind int

const (
	AccessDirect AccessKind = iota
	AccessSelfComputed
	AccessComputed
	AccessUnion
	AccessIntersection
	AccessDifference
)

func (k AccessKind) String() string {
	switch k {
	case AccessDirect:
		return "Direct"
	case AccessSelfComputed:
		return "SelfComputed"
	case AccessComputed:
		return "Computed"
	case AccessUnion:
		return "Union"
	case AccessIntersection:
		return "Intersection"
	case AccessDifference:
		return "Difference"
	default:
		return "Unknown"
	}
}

// Access is a tagged sum describing how a relation's membership is defined.
// Only the fields relevant to Kind are populated. The algebra is a closed,
// six-way sum; a single struct with a discriminant keeps every later pass
// (the checker, the projector, the semantic-token classifier) a single type
// switch rather than six interface implementations.
type Access struct {
	Kind Kind
	Span *source.Span

	// SelfComputed, Computed
	Relation *Identifier // the relation resolved on the reached object, or (SelfComputed) the bare name
	Object   *Identifier // Computed only: the tupleset relation named after "from", used to reach the object

	// Union, Intersection
	Children []Access

	// Difference
	Base     *Access
	Subtract *Access
}

// Kind is an alias kept for readability at call sites (ast.Kind vs
// ast.AccessKind reads the same either way; both names exist so
// "ast.Access{Kind: ast.AccessDirect}" and "var k ast.Kind" both read
// naturally).
type Kind = AccessKind

// NewDirect builds a Direct ("self") access.
func NewDirect(span source.Span) Access {
	return Access{Kind: AccessDirect, Span: &span}
}

// NewSelfComputed builds a SelfComputed access: "relation" resolved on the
// same object.
func NewSelfComputed(relation Identifier, span source.Span) Access {
	return Access{Kind: AccessSelfComputed, Relation: &relation, Span: &span}
}

// NewComputed builds a Computed access: "relation from object".
func NewComputed(object, relation Identifier, span source.Span) Access {
	return Access{Kind: AccessComputed, Object: &object, Relation: &relation, Span: &span}
}

// NewUnion flattens children into a single Union access. A single child is
// returned unwrapped (no unary Union node); the spec's n-ary-flattening
// invariant relies on callers using this constructor rather than building
// the struct literal directly.
func NewUnion(children []Access, span source.Span) Access {
	if len(children) == 1 {
		return children[0]
	}
	return Access{Kind: AccessUnion, Children: children, Span: &span}
}

// NewIntersection flattens children the same way NewUnion does.
func NewIntersection(children []Access, span source.Span) Access {
	if len(children) == 1 {
		return children[0]
	}
	return Access{Kind: AccessIntersection, Children: children, Span: &span}
}

// NewDifference builds a strictly binary "base but not subtract" access.
func NewDifference(base, subtract Access, span source.Span) Access {
	return Access{Kind: AccessDifference, Base: &base, Subtract: &subtract, Span: &span}
}

// Relation is a named membership predicate on a type, defined by an Access.
// Identifier.Span covers only the name; Span covers the whole
// "define ... as ..." clause.
type Relation struct {
	Identifier Identifier
	Access     Access
	Span       source.Span
}

// Type is a named collection of relations. Span covers the whole
// "type ... relations ..." block.
type Type struct {
	Identifier Identifier
	Relations  []Relation
	Span       source.Span
}

// RelationExists reports whether t declares a relation named name.
func (t *Type) RelationExists(name string) bool {
	for _, r := range t.Relations {
		if r.Identifier.Name == name {
			return true
		}
	}
	return false
}

// AuthorizationModel is the parsed representation of a whole document:
// an ordered list of types. Order of Types, and of Relations within each
// Type, is preserved verbatim from the source — it determines both
// diagnostic order (§4.4) and which occurrence of a duplicate is "first".
type AuthorizationModel struct {
	Types []Type
}

// TypeExists reports whether the model declares a type named name.
func (m *AuthorizationModel) TypeExists(name string) bool {
	for _, t := range m.Types {
		if t.Identifier.Name == name {
			return true
		}
	}
	return false
}

// TypeRelationExists reports whether typeName declares relationName.
func (m *AuthorizationModel) TypeRelationExists(typeName, relationName string) bool {
	for _, t := range m.Types {
		if t.Identifier.Name == typeName {
			return t.RelationExists(relationName)
		}
	}
	return false
}
