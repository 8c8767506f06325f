package tooling

import (
	"testing"

	"github.com/iammathew/openfga-dsl/internal/lexer"
)

func TestClassifySemanticTokensFiltersParensAndEOF(t *testing.T) {
	tokens, errs := lexer.New("define x as (a or b)").ScanTokens()
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	classified := ClassifySemanticTokens(tokens)
	for _, c := range classified {
		if c.Token.Type == lexer.TokenLParen || c.Token.Type == lexer.TokenRParen {
			t.Errorf("expected parentheses to be filtered out, found %v", c.Token)
		}
		if c.Token.Type == lexer.TokenEOF {
			t.Errorf("expected EOF to be filtered out")
		}
	}
}

func TestClassifySemanticTokensKinds(t *testing.T) {
	tokens, _ := lexer.New("define x as self").ScanTokens()
	classified := ClassifySemanticTokens(tokens)

	want := []SemanticTokenKind{
		SemanticTokenKeyword, // define
		SemanticTokenClass,   // x
		SemanticTokenKeyword, // as
		SemanticTokenMethod,  // self
	}
	if len(classified) != len(want) {
		t.Fatalf("expected %d classified tokens, got %d", len(want), len(classified))
	}
	for i, c := range classified {
		if c.Kind != want[i] {
			t.Errorf("token %d: expected kind %d, got %d", i, want[i], c.Kind)
		}
	}
}
