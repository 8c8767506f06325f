package parser

import (
	"testing"

	"github.com/iammathew/openfga-dsl/internal/ast"
	"github.com/iammathew/openfga-dsl/internal/lexer"
)

func parseSource(t *testing.T, src string) (ast.AuthorizationModel, []ParseError) {
	t.Helper()
	tokens, lexErrs := lexer.New(src).ScanTokens()
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	return Parse(tokens)
}

func TestParseMinimalRelation(t *testing.T) {
	src := "type document\n  relations\n    define viewer as self"
	model, errs := parseSource(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(model.Types) != 1 {
		t.Fatalf("expected 1 type, got %d", len(model.Types))
	}
	typ := model.Types[0]
	if typ.Identifier.Name != "document" {
		t.Errorf("expected type name 'document', got %q", typ.Identifier.Name)
	}
	if len(typ.Relations) != 1 {
		t.Fatalf("expected 1 relation, got %d", len(typ.Relations))
	}
	rel := typ.Relations[0]
	if rel.Identifier.Name != "viewer" {
		t.Errorf("expected relation name 'viewer', got %q", rel.Identifier.Name)
	}
	if rel.Access.Kind != ast.AccessDirect {
		t.Errorf("expected Direct access, got %s", rel.Access.Kind)
	}
}

func TestParsePrecedence(t *testing.T) {
	src := "type t\n  relations\n    define x as a or b and c but not d"
	model, errs := parseSource(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	access := model.Types[0].Relations[0].Access

	if access.Kind != ast.AccessUnion {
		t.Fatalf("expected top-level Union, got %s", access.Kind)
	}
	if len(access.Children) != 2 {
		t.Fatalf("expected Union with 2 children, got %d", len(access.Children))
	}
	if access.Children[0].Kind != ast.AccessSelfComputed || access.Children[0].Relation.Name != "a" {
		t.Errorf("expected first Union child to be SelfComputed 'a', got %+v", access.Children[0])
	}

	inter := access.Children[1]
	if inter.Kind != ast.AccessIntersection {
		t.Fatalf("expected second Union child to be Intersection, got %s", inter.Kind)
	}
	if len(inter.Children) != 2 {
		t.Fatalf("expected Intersection with 2 children, got %d", len(inter.Children))
	}
	if inter.Children[0].Relation.Name != "b" {
		t.Errorf("expected first Intersection child 'b', got %+v", inter.Children[0])
	}

	diff := inter.Children[1]
	if diff.Kind != ast.AccessDifference {
		t.Fatalf("expected second Intersection child to be Difference, got %s", diff.Kind)
	}
	if diff.Base.Relation.Name != "c" || diff.Subtract.Relation.Name != "d" {
		t.Errorf("expected Difference(c, d), got base=%+v subtract=%+v", diff.Base, diff.Subtract)
	}
}

func TestParseDisambiguatesSelfComputedVsComputed(t *testing.T) {
	src := "type t\n  relations\n    define x as a\n    define y as a from b"
	model, errs := parseSource(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	relations := model.Types[0].Relations

	x := relations[0].Access
	if x.Kind != ast.AccessSelfComputed {
		t.Errorf("expected SelfComputed, got %s", x.Kind)
	}

	y := relations[1].Access
	if y.Kind != ast.AccessComputed {
		t.Fatalf("expected Computed, got %s", y.Kind)
	}
	if y.Relation.Name != "a" {
		t.Errorf("expected resolved relation 'a', got %q", y.Relation.Name)
	}
	if y.Object.Name != "b" {
		t.Errorf("expected tupleset relation 'b', got %q", y.Object.Name)
	}
}

func TestParseGroupedExpression(t *testing.T) {
	src := "type t\n  relations\n    define x as (a or b) and c"
	model, errs := parseSource(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	access := model.Types[0].Relations[0].Access
	if access.Kind != ast.AccessIntersection {
		t.Fatalf("expected top-level Intersection, got %s", access.Kind)
	}
	if access.Children[0].Kind != ast.AccessUnion {
		t.Errorf("expected first Intersection child to be the grouped Union, got %s", access.Children[0].Kind)
	}
}

func TestParseMultipleTypes(t *testing.T) {
	src := "type document\n  relations\n    define viewer as self\n" +
		"type folder\n  relations\n    define owner as self"
	model, errs := parseSource(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(model.Types) != 2 {
		t.Fatalf("expected 2 types, got %d", len(model.Types))
	}
	if model.Types[0].Identifier.Name != "document" || model.Types[1].Identifier.Name != "folder" {
		t.Errorf("unexpected type order: %+v", model.Types)
	}
}

func TestParseDoubleDifferenceIsRejected(t *testing.T) {
	// "but not" is strictly binary; a second "but not" in the same chain
	// is a syntax error rather than silently accepted.
	src := "type t\n  relations\n    define x as a but not b but not c"
	_, errs := parseSource(t, src)
	if len(errs) == 0 {
		t.Fatalf("expected a parse error for a second 'but not' in the same chain")
	}
}

func TestParseRecoversAfterMalformedType(t *testing.T) {
	// The second type is malformed (missing a type name); the parser must
	// report the error rather than silently dropping it, keep the
	// preceding type, and still recover in time to parse the third,
	// well-formed type.
	src := "type a\n  relations\n    define x as self\n" +
		"type\n  relations\n    define y as self\n" +
		"type c\n  relations\n    define z as self"
	model, errs := parseSource(t, src)
	if len(errs) == 0 {
		t.Fatalf("expected at least one parse error")
	}
	names := make([]string, 0, len(model.Types))
	for _, ty := range model.Types {
		names = append(names, ty.Identifier.Name)
	}
	found, foundLast := false, false
	for _, n := range names {
		if n == "a" {
			found = true
		}
		if n == "c" {
			foundLast = true
		}
	}
	if !found {
		t.Errorf("expected the well-formed preceding type 'a' to still be present, got %v", names)
	}
	if !foundLast {
		t.Errorf("expected the well-formed following type 'c' to be parsed after recovery, got %v", names)
	}
}

func TestParseEmptySourceYieldsEmptyModel(t *testing.T) {
	model, errs := parseSource(t, "")
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(model.Types) != 0 {
		t.Errorf("expected zero types for empty source, got %d", len(model.Types))
	}
}

func TestParseSpansCoverWholeRelation(t *testing.T) {
	src := "type document\n  relations\n    define viewer as self"
	model, _ := parseSource(t, src)
	rel := model.Types[0].Relations[0]
	defineAt := len("type document\n  relations\n    ")
	if rel.Span.Lo != defineAt {
		t.Errorf("expected relation span to start at %d, got %d", defineAt, rel.Span.Lo)
	}
	if rel.Span.Hi != len(src) {
		t.Errorf("expected relation span to end at %d, got %d", len(src), rel.Span.Hi)
	}
}
