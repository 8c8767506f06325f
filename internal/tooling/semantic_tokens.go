package tooling

import "github.com/iammathew/openfga-dsl/internal/lexer"

// SemanticTokenKind is the token classification an editor uses to colour
// source text beyond what plain syntax highlighting can do from the
// grammar alone.
type SemanticTokenKind int

const (
	SemanticTokenKeyword SemanticTokenKind = iota
	SemanticTokenOperator
	SemanticTokenClass
	SemanticTokenMethod
)

// ClassifiedToken pairs a lexed token with its semantic-token kind.
type ClassifiedToken struct {
	Token lexer.Token
	Kind  SemanticTokenKind
}

// ClassifySemanticTokens filters and classifies a token stream per the
// scheme: keyword (type, define, relations, as), operator (and, or,
// from, but, not), class (identifiers), method (self). Parentheses and
// the trailing EOF marker are dropped entirely — they carry no semantic
// colour of their own.
func ClassifySemanticTokens(tokens []lexer.Token) []ClassifiedToken {
	out := make([]ClassifiedToken, 0, len(tokens))
	for _, tok := range tokens {
		kind, ok := classify(tok.Type)
		if !ok {
			continue
		}
		out = append(out, ClassifiedToken{Token: tok, Kind: kind})
	}
	return out
}

func classify(t lexer.TokenType) (SemanticTokenKind, bool) {
	switch t {
	case lexer.TokenType_, lexer.TokenDefine, lexer.TokenRelations, lexer.TokenAs:
		return SemanticTokenKeyword, true
	case lexer.TokenAnd, lexer.TokenOr, lexer.TokenFrom, lexer.TokenBut, lexer.TokenNot:
		return SemanticTokenOperator, true
	case lexer.TokenIdent:
		return SemanticTokenClass, true
	case lexer.TokenSelf:
		return SemanticTokenMethod, true
	default:
		return 0, false
	}
}
