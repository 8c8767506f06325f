package tooling

import (
	"fmt"
	"strings"

	"github.com/iammathew/openfga-dsl/internal/ast"
	"github.com/iammathew/openfga-dsl/internal/source"
)

// Hover is the markdown content and anchoring range for a hover request.
type Hover struct {
	Contents string
	Range    source.Range
}

// HoverAt returns the type's hover when offset is on a type name, the
// relation's hover when offset is anywhere inside a "define ... as ..."
// clause (keywords and operators included), and nil otherwise.
func HoverAt(model *ast.AuthorizationModel, sm *source.Map, offset int) *Hover {
	if model == nil {
		return nil
	}
	for _, typ := range model.Types {
		if !spanContainsOffset(typ.Span, offset) {
			continue
		}
		if spanContainsOffset(*typ.Identifier.Span, offset) {
			return hoverForType(typ, sm)
		}
		for _, rel := range typ.Relations {
			if !spanContainsOffset(rel.Span, offset) {
				continue
			}
			return hoverForRelation(typ, rel, sm)
		}
		return nil
	}
	return nil
}

func hoverForType(typ ast.Type, sm *source.Map) *Hover {
	var b strings.Builder
	fmt.Fprintf(&b, "```openfga\ntype %s\n```\n\n%d relation(s).", typ.Identifier.Name, len(typ.Relations))
	return &Hover{Contents: b.String(), Range: sm.SpanToRange(*typ.Identifier.Span)}
}

func hoverForRelation(typ ast.Type, rel ast.Relation, sm *source.Map) *Hover {
	var b strings.Builder
	fmt.Fprintf(&b, "```openfga\ndefine %s as %s\n```\n\non type `%s`.", rel.Identifier.Name, describeAccess(rel.Access), typ.Identifier.Name)
	return &Hover{Contents: b.String(), Range: sm.SpanToRange(rel.Span)}
}

// describeAccess renders an access tree back to DSL-like source text,
// for display inside a hover code block.
func describeAccess(a ast.Access) string {
	switch a.Kind {
	case ast.AccessDirect:
		return "self"
	case ast.AccessSelfComputed:
		return a.Relation.Name
	case ast.AccessComputed:
		return fmt.Sprintf("%s from %s", a.Relation.Name, a.Object.Name)
	case ast.AccessUnion:
		return joinChildren(a.Children, " or ")
	case ast.AccessIntersection:
		return joinChildren(a.Children, " and ")
	case ast.AccessDifference:
		return fmt.Sprintf("%s but not %s", describeAccess(*a.Base), describeAccess(*a.Subtract))
	default:
		return ""
	}
}

func joinChildren(children []ast.Access, sep string) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = describeAccess(c)
	}
	return strings.Join(parts, sep)
}

func spanContainsOffset(s source.Span, offset int) bool {
	return offset >= s.Lo && offset <= s.Hi
}
