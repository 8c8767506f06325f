package tooling

import (
	"strings"
	"testing"

	"github.com/iammathew/openfga-dsl/internal/lexer"
	"github.com/iammathew/openfga-dsl/internal/parser"
	"github.com/iammathew/openfga-dsl/internal/source"
)

func TestHoverAtTypeName(t *testing.T) {
	src := "type document\n  relations\n    define viewer as self"
	sm := source.NewMap(src)
	tokens, _ := lexer.New(src).ScanTokens()
	model, errs := parser.Parse(tokens)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	h := HoverAt(&model, sm, 6) // inside "document"
	if h == nil {
		t.Fatalf("expected a hover result")
	}
	if !strings.Contains(h.Contents, "type document") {
		t.Errorf("expected hover contents to mention the type, got %q", h.Contents)
	}
}

func TestHoverAtRelationShowsAccessDescription(t *testing.T) {
	src := "type document\n  relations\n    define viewer as owner or editor\n    define owner as self\n    define editor as self"
	sm := source.NewMap(src)
	tokens, _ := lexer.New(src).ScanTokens()
	model, errs := parser.Parse(tokens)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	defineAt := strings.Index(src, "define viewer")
	h := HoverAt(&model, sm, defineAt+len("define "))
	if h == nil {
		t.Fatalf("expected a hover result")
	}
	if !strings.Contains(h.Contents, "owner or editor") {
		t.Errorf("expected hover to describe the access expression, got %q", h.Contents)
	}
}

func TestHoverAtNothingReturnsNil(t *testing.T) {
	src := "type document\n  relations\n    define viewer as self"
	sm := source.NewMap(src)
	tokens, _ := lexer.New(src).ScanTokens()
	model, _ := parser.Parse(tokens)

	if h := HoverAt(&model, sm, len(src)+100); h != nil {
		t.Errorf("expected nil hover for an out-of-range offset, got %+v", h)
	}
}

func TestHoverAtNilModel(t *testing.T) {
	if h := HoverAt(nil, source.NewMap(""), 0); h != nil {
		t.Errorf("expected nil hover for a nil model, got %+v", h)
	}
}

func TestDescribeAccessAllShapes(t *testing.T) {
	src := "type document\n  relations\n" +
		"    define a as self\n" +
		"    define b as a\n" +
		"    define c as a from b\n" +
		"    define d as a and b\n" +
		"    define e as a or b\n" +
		"    define f as a but not b"
	tokens, _ := lexer.New(src).ScanTokens()
	model, errs := parser.Parse(tokens)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	want := map[string]string{
		"a": "self",
		"b": "a",
		"c": "a from b",
		"d": "a and b",
		"e": "a or b",
		"f": "a but not b",
	}
	for _, rel := range model.Types[0].Relations {
		got := describeAccess(rel.Access)
		if got != want[rel.Identifier.Name] {
			t.Errorf("describeAccess(%s) = %q, want %q", rel.Identifier.Name, got, want[rel.Identifier.Name])
		}
	}
}
