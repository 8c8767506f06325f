package parser

import (
	"fmt"

	"github.com/iammathew/openfga-dsl/internal/lexer"
	"github.com/iammathew/openfga-dsl/internal/source"
)

// ParseError is one recovered syntax error. Reason is a short phrase
// naming what was expected ("expected 'as'", "expected ')'", "unexpected
// token; expected 'type'"); the diagnostic package uses it verbatim as
// the report message. A missing ')' is reported as "expected ')'" at the
// token found in its place; no separate span for the unclosed '(' is
// recorded.
type ParseError struct {
	Reason string
	Span   source.Span
	Found  lexer.TokenType
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s (found %s)", e.Span, e.Reason, e.Found)
}

func newParseError(reason string, tok lexer.Token) ParseError {
	return ParseError{Reason: reason, Span: tok.Span, Found: tok.Type}
}
