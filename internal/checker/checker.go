// Package checker validates a parsed AuthorizationModel against the
// semantic rules of the language: unique type names, unique relation
// names within a type, and self-/unknown-relation references. It never
// stops at the first violation.
package checker

import (
	"fmt"

	"github.com/iammathew/openfga-dsl/internal/ast"
	"github.com/iammathew/openfga-dsl/internal/source"
)

// Code is a stable, documented violation code.
type Code int

const (
	DuplicateTypeName     Code = 201
	DuplicateRelationName Code = 202
	UnknownRelation       Code = 203
	SelfReferencingRelation Code = 204
)

func (c Code) String() string {
	switch c {
	case DuplicateTypeName:
		return "DuplicateTypeName"
	case DuplicateRelationName:
		return "DuplicateRelationName"
	case UnknownRelation:
		return "UnknownRelation"
	case SelfReferencingRelation:
		return "SelfReferencingRelation"
	default:
		return "Unknown"
	}
}

// Violation is one semantic rule failure. Primary is the span the
// diagnostic renderer anchors its primary label to; Related carries any
// additional node spans needed to render secondary labels (the first
// definition, for duplicate rules).
type Violation struct {
	Code    Code
	Message string
	Primary source.Span
	Related []source.Span
}

func (v Violation) Error() string {
	return fmt.Sprintf("%d %s: %s", v.Code, v.Code, v.Message)
}

// Check validates model and returns every violation found, in the order
// a left-to-right, depth-first traversal discovers them. A nil/empty
// result means the model is semantically sound.
func Check(model ast.AuthorizationModel) []Violation {
	violations := make([]Violation, 0)

	seenTypes := make(map[string]ast.Type)
	for _, typ := range model.Types {
		if first, dup := seenTypes[typ.Identifier.Name]; dup {
			violations = append(violations, Violation{
				Code:    DuplicateTypeName,
				Message: fmt.Sprintf("type %q is declared more than once", typ.Identifier.Name),
				Primary: *typ.Identifier.Span,
				Related: []source.Span{*first.Identifier.Span},
			})
		} else {
			seenTypes[typ.Identifier.Name] = typ
		}

		violations = append(violations, checkType(typ)...)
	}

	return violations
}

func checkType(typ ast.Type) []Violation {
	violations := make([]Violation, 0)

	seenRelations := make(map[string]ast.Relation)
	for _, rel := range typ.Relations {
		if first, dup := seenRelations[rel.Identifier.Name]; dup {
			violations = append(violations, Violation{
				Code:    DuplicateRelationName,
				Message: fmt.Sprintf("relation %q is declared more than once on type %q", rel.Identifier.Name, typ.Identifier.Name),
				Primary: *rel.Identifier.Span,
				Related: []source.Span{*first.Identifier.Span},
			})
		} else {
			seenRelations[rel.Identifier.Name] = rel
		}

		violations = append(violations, checkAccess(rel.Access, typ, rel.Identifier.Name)...)
	}

	return violations
}

// checkAccess descends into a relation's access tree, checking each leaf
// against the enclosing type/relation context. Composite nodes (Union,
// Intersection, Difference) are never themselves violations; only their
// leaves can be.
func checkAccess(access ast.Access, typ ast.Type, enclosingRelation string) []Violation {
	switch access.Kind {
	case ast.AccessSelfComputed:
		name := access.Relation.Name
		if name == enclosingRelation {
			return []Violation{{
				Code:    SelfReferencingRelation,
				Message: fmt.Sprintf("relation %q refers to itself", enclosingRelation),
				Primary: *access.Relation.Span,
			}}
		}
		if !typ.RelationExists(name) {
			return []Violation{{
				Code:    UnknownRelation,
				Message: fmt.Sprintf("type %q has no relation %q", typ.Identifier.Name, name),
				Primary: *access.Relation.Span,
			}}
		}
		return nil

	case ast.AccessDirect, ast.AccessComputed:
		// Direct always passes. Computed's object/relation pair is not
		// validated against the model in this core.
		return nil

	case ast.AccessUnion, ast.AccessIntersection:
		violations := make([]Violation, 0)
		for _, child := range access.Children {
			violations = append(violations, checkAccess(child, typ, enclosingRelation)...)
		}
		return violations

	case ast.AccessDifference:
		violations := make([]Violation, 0)
		violations = append(violations, checkAccess(*access.Base, typ, enclosingRelation)...)
		violations = append(violations, checkAccess(*access.Subtract, typ, enclosingRelation)...)
		return violations

	default:
		return nil
	}
}
