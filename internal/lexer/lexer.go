// Package lexer turns authorization-model source text into a token stream.
// It never aborts: an unrecognised character is recorded as an error and
// scanning resumes at the next character, so the parser always receives a
// complete, well-formed stream to work from.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/iammathew/openfga-dsl/internal/source"
)

// Lexer tokenizes source code.
//
// Thread Safety: a Lexer is not safe for concurrent use; create one per
// goroutine (the document cache does exactly that on every re-lex).
type Lexer struct {
	src     string
	start   int // byte offset of the token currently being scanned
	current int // byte offset of the next unconsumed byte
	end     int // byte offset past the last byte eligible for scanning

	tokens []Token
	errors []LexError
}

// New creates a Lexer for src. Trailing whitespace is excluded from
// scanning up front (per the grammar's "right-trimmed" input contract) so
// a file with trailing blank lines does not affect token spans.
func New(src string) *Lexer {
	end := len(src)
	for end > 0 && isTrimmableSpace(src[end-1]) {
		end--
	}
	return &Lexer{src: src, end: end, tokens: make([]Token, 0), errors: make([]LexError, 0)}
}

func isTrimmableSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// ScanTokens tokenizes the entire source and returns the token stream
// (terminated by a TokenEOF) plus any recovered lexical errors.
func (l *Lexer) ScanTokens() ([]Token, []LexError) {
	for !l.isAtEnd() {
		l.skipWhitespaceAndComments()
		if l.isAtEnd() {
			break
		}
		l.start = l.current
		l.scanToken()
	}
	l.tokens = append(l.tokens, Token{
		Type: TokenEOF,
		Span: source.NewSpan(l.end, l.end),
	})
	return l.tokens, l.errors
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= l.end
}

// advance consumes and returns the rune at current, returning 0 if at end.
func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	r, size := utf8.DecodeRuneInString(l.src[l.current:l.end])
	l.current += size
	return r
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.current:l.end])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.current >= l.end {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.src[l.current:l.end])
	next := l.current + size
	if next >= l.end {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[next:l.end])
	return r
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '/':
			if l.peekNext() == '/' {
				l.advance()
				l.advance()
				for !l.isAtEnd() && l.peek() != '\n' {
					l.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func (l *Lexer) scanToken() {
	r := l.advance()
	switch {
	case r == '(':
		l.addToken(TokenLParen)
	case r == ')':
		l.addToken(TokenRParen)
	case isIdentStart(r):
		l.identifier()
	default:
		l.errors = append(l.errors, LexError{
			Message: "unrecognised character",
			Span:    source.NewSpan(l.start, l.current),
		})
	}
}

func (l *Lexer) identifier() {
	for !l.isAtEnd() && isIdentPart(l.peek()) {
		l.advance()
	}
	text := l.src[l.start:l.current]
	if kw, ok := Keywords[text]; ok {
		l.addToken(kw)
		return
	}
	l.addToken(TokenIdent)
}

func (l *Lexer) addToken(t TokenType) {
	l.tokens = append(l.tokens, Token{
		Type:   t,
		Lexeme: l.src[l.start:l.current],
		Span:   source.NewSpan(l.start, l.current),
	})
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
