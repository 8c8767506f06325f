package lexer

import (
	"fmt"

	"github.com/iammathew/openfga-dsl/internal/source"
)

// TokenType enumerates the lexical categories of the authorization-model
// grammar. There are no operator-precedence tiers baked in here — that
// belongs to the parser; the lexer only distinguishes keywords from plain
// identifiers and punctuation.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent

	TokenType_ // the keyword "type" — trailing underscore avoids shadowing the TokenType type name
	TokenRelations
	TokenSelf
	TokenDefine
	TokenAnd
	TokenOr
	TokenFrom
	TokenAs
	TokenBut
	TokenNot

	TokenLParen
	TokenRParen
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIdent:
		return "IDENT"
	case TokenType_:
		return "type"
	case TokenRelations:
		return "relations"
	case TokenSelf:
		return "self"
	case TokenDefine:
		return "define"
	case TokenAnd:
		return "and"
	case TokenOr:
		return "or"
	case TokenFrom:
		return "from"
	case TokenAs:
		return "as"
	case TokenBut:
		return "but"
	case TokenNot:
		return "not"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	default:
		return "UNKNOWN"
	}
}

// Token is one lexeme plus the exact byte span it occupies in the source.
type Token struct {
	Type   TokenType
	Lexeme string
	Span   source.Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Lexeme, t.Span)
}

// Keywords maps reserved words to their token type. Matched only against a
// complete identifier run, never a prefix.
var Keywords = map[string]TokenType{
	"type":      TokenType_,
	"relations": TokenRelations,
	"self":      TokenSelf,
	"define":    TokenDefine,
	"and":       TokenAnd,
	"or":        TokenOr,
	"from":      TokenFrom,
	"as":        TokenAs,
	"but":       TokenBut,
	"not":       TokenNot,
}

// LexError is a recovered lexical error: an unrecognised character at a
// known position. The lexer never aborts on one of these — it records it
// and resumes at the next character.
type LexError struct {
	Message string
	Span    source.Span
}

func (e LexError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Span)
}
