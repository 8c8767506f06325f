package lexer

import "testing"

func scanSource(src string) ([]Token, []LexError) {
	l := New(src)
	return l.ScanTokens()
}

func checkTokenTypes(t *testing.T, tokens []Token, expected []TokenType) {
	t.Helper()

	actual := tokens
	if len(actual) > 0 && actual[len(actual)-1].Type == TokenEOF {
		actual = actual[:len(actual)-1]
	}

	if len(actual) != len(expected) {
		t.Fatalf("expected %d tokens, got %d (%v)", len(expected), len(actual), actual)
	}
	for i, tok := range actual {
		if tok.Type != expected[i] {
			t.Errorf("token %d: expected %s, got %s", i, expected[i], tok.Type)
		}
	}
}

func TestScanMinimalRelation(t *testing.T) {
	src := "type document\n  relations\n    define viewer as self"
	tokens, errs := scanSource(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	checkTokenTypes(t, tokens, []TokenType{
		TokenType_, TokenIdent,
		TokenRelations,
		TokenDefine, TokenIdent, TokenAs, TokenSelf,
	})
}

func TestScanKeywordsAreWholeWords(t *testing.T) {
	// "selfie" must not be mistaken for "self" plus trailing garbage.
	tokens, errs := scanSource("selfie")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	checkTokenTypes(t, tokens, []TokenType{TokenIdent})
	if tokens[0].Lexeme != "selfie" {
		t.Errorf("expected lexeme 'selfie', got %q", tokens[0].Lexeme)
	}
}

func TestScanOperatorsAndParens(t *testing.T) {
	tokens, errs := scanSource("a or b and (c but not d)")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	checkTokenTypes(t, tokens, []TokenType{
		TokenIdent, TokenOr, TokenIdent, TokenAnd,
		TokenLParen, TokenIdent, TokenBut, TokenNot, TokenIdent, TokenRParen,
	})
}

func TestScanLineComment(t *testing.T) {
	src := "type document // a comment\n  relations"
	tokens, errs := scanSource(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	checkTokenTypes(t, tokens, []TokenType{TokenType_, TokenIdent, TokenRelations})
}

func TestScanTrailingCommentWithoutNewline(t *testing.T) {
	// Open question in the spec: a file ending in a comment with no
	// trailing newline must not error and must not hang.
	src := "type document\n  relations // trailing, no newline"
	tokens, errs := scanSource(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	checkTokenTypes(t, tokens, []TokenType{TokenType_, TokenIdent, TokenRelations})
}

func TestScanUnrecognisedCharacterRecovers(t *testing.T) {
	src := "type $ document"
	tokens, errs := scanSource(src)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one lex error, got %d: %v", len(errs), errs)
	}
	checkTokenTypes(t, tokens, []TokenType{TokenType_, TokenIdent})
}

func TestScanSpansAreByteAccurate(t *testing.T) {
	src := "type document"
	tokens, _ := scanSource(src)
	typeTok := tokens[0]
	if typeTok.Span.Lo != 0 || typeTok.Span.Hi != 4 {
		t.Errorf("unexpected span for 'type': %+v", typeTok.Span)
	}
	identTok := tokens[1]
	if identTok.Span.Lo != 5 || identTok.Span.Hi != 13 {
		t.Errorf("unexpected span for 'document': %+v", identTok.Span)
	}
}

func TestScanEmptySource(t *testing.T) {
	tokens, errs := scanSource("")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(tokens) != 1 || tokens[0].Type != TokenEOF {
		t.Fatalf("expected a single EOF token, got %v", tokens)
	}
}

func TestScanMultibyteIdentifier(t *testing.T) {
	// café is a valid identifier; the lexer must not choke on multi-byte
	// UTF-8 sequences inside identifiers.
	tokens, errs := scanSource("define café as self")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	checkTokenTypes(t, tokens, []TokenType{TokenDefine, TokenIdent, TokenAs, TokenSelf})
}
