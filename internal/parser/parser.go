// Package parser builds an AuthorizationModel from a token stream. It is a
// recursive-descent parser that never aborts: every production records its
// own errors and, where possible, keeps the surrounding production moving
// so the caller sees as many problems as a single pass can surface.
package parser

import (
	"github.com/iammathew/openfga-dsl/internal/ast"
	"github.com/iammathew/openfga-dsl/internal/lexer"
	"github.com/iammathew/openfga-dsl/internal/source"
)

// Parser consumes a fixed token slice produced by the lexer.
//
// Thread Safety: a Parser is not safe for concurrent use; create one per
// parse (the document cache does exactly that on every re-parse).
type Parser struct {
	tokens  []lexer.Token
	current int
	errors  []ParseError
}

// New creates a Parser over tokens (expected to end with a TokenEOF, as
// produced by lexer.Lexer.ScanTokens).
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse tokenizes-then-parses is split across lexer and parser; this
// entry point runs only the parse phase and returns every type declared
// at the top level plus any errors recovered along the way. A non-empty
// input that yields zero types still reports its errors; it does not
// silently return an empty model.
func Parse(tokens []lexer.Token) (ast.AuthorizationModel, []ParseError) {
	p := New(tokens)
	return p.parseFile(), p.errors
}

func (p *Parser) parseFile() ast.AuthorizationModel {
	types := make([]ast.Type, 0)
	for !p.isAtEnd() {
		if !p.check(lexer.TokenType_) {
			p.error(p.peek(), "unexpected token; expected 'type'")
			p.synchronize()
			continue
		}
		types = append(types, p.parseType())
	}
	return ast.AuthorizationModel{Types: types}
}

func (p *Parser) parseType() ast.Type {
	kw := p.consume(lexer.TokenType_, "expected 'type'")
	nameTok := p.consume(lexer.TokenIdent, "expected a type name")
	name := ast.NewIdentifier(nameTok.Lexeme, nameTok.Span)

	relations, relSpan := p.parseRelations()
	span := source.Cover(kw.Span, relSpan)
	return ast.Type{Identifier: name, Relations: relations, Span: span}
}

func (p *Parser) parseRelations() ([]ast.Relation, source.Span) {
	kw := p.consume(lexer.TokenRelations, "expected 'relations'")
	relations := make([]ast.Relation, 0)
	last := kw.Span
	for p.check(lexer.TokenDefine) {
		before := len(p.errors)
		rel := p.parseRelation()
		if len(p.errors) > before {
			p.synchronizeToNextField()
			continue
		}
		relations = append(relations, rel)
		last = rel.Span
	}
	return relations, source.Cover(kw.Span, last)
}

func (p *Parser) parseRelation() ast.Relation {
	kw := p.consume(lexer.TokenDefine, "expected 'define'")
	nameTok := p.consume(lexer.TokenIdent, "expected a relation name")
	p.consume(lexer.TokenAs, "expected 'as'")
	access := p.parseOrAccess()

	name := ast.NewIdentifier(nameTok.Lexeme, nameTok.Span)
	span := source.Cover(kw.Span, *access.Span)
	return ast.Relation{Identifier: name, Access: access, Span: span}
}

// parseOrAccess := and_access ('or' and_access)*
func (p *Parser) parseOrAccess() ast.Access {
	first := p.parseAndAccess()
	children := []ast.Access{first}
	for p.match(lexer.TokenOr) {
		children = append(children, p.parseAndAccess())
	}
	span := source.Cover(*children[0].Span, *children[len(children)-1].Span)
	return ast.NewUnion(children, span)
}

// parseAndAccess := diff_access ('and' diff_access)*
func (p *Parser) parseAndAccess() ast.Access {
	first := p.parseDiffAccess()
	children := []ast.Access{first}
	for p.match(lexer.TokenAnd) {
		children = append(children, p.parseDiffAccess())
	}
	span := source.Cover(*children[0].Span, *children[len(children)-1].Span)
	return ast.NewIntersection(children, span)
}

// parseDiffAccess := simple_access ('but' 'not' simple_access)?
//
// The "at most once" rule in the grammar falls out of this shape directly:
// there is no loop here, only an optional single subtraction.
func (p *Parser) parseDiffAccess() ast.Access {
	base := p.parseSimpleAccess()
	if !p.match(lexer.TokenBut) {
		return base
	}
	p.consume(lexer.TokenNot, "expected 'not' after 'but'")
	subtract := p.parseSimpleAccess()
	span := source.Cover(*base.Span, *subtract.Span)
	return ast.NewDifference(base, subtract, span)
}

// parseSimpleAccess := 'self' | IDENT 'from' IDENT | IDENT | '(' or_access ')'
func (p *Parser) parseSimpleAccess() ast.Access {
	switch {
	case p.match(lexer.TokenSelf):
		tok := p.previous()
		return ast.NewDirect(tok.Span)

	case p.match(lexer.TokenLParen):
		open := p.previous()
		inner := p.parseOrAccess()
		closeTok := p.consume(lexer.TokenRParen, "expected ')'")
		grouped := source.Cover(open.Span, closeTok.Span)
		inner.Span = &grouped
		return inner

	case p.check(lexer.TokenIdent):
		nameTok := p.advance()
		name := ast.NewIdentifier(nameTok.Lexeme, nameTok.Span)
		if p.match(lexer.TokenFrom) {
			objTok := p.consume(lexer.TokenIdent, "expected a relation name after 'from'")
			object := ast.NewIdentifier(objTok.Lexeme, objTok.Span)
			span := source.Cover(nameTok.Span, objTok.Span)
			return ast.NewComputed(object, name, span)
		}
		return ast.NewSelfComputed(name, nameTok.Span)

	default:
		tok := p.peek()
		p.error(tok, "unexpected token; expected 'self', an identifier, or '('")
		if !p.isAtEnd() {
			p.advance()
		}
		return ast.NewDirect(tok.Span)
	}
}

// Token stream primitives.

func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return lexer.Token{Type: lexer.TokenEOF}
	}
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	if p.current == 0 {
		return lexer.Token{Type: lexer.TokenEOF}
	}
	return p.tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past the current token if it matches t, otherwise
// records an error and leaves the cursor in place so the caller's own
// recovery (or the eventual top-level synchronize) makes progress instead
// of this call looping forever.
func (p *Parser) consume(t lexer.TokenType, reason string) lexer.Token {
	if p.check(t) {
		return p.advance()
	}
	tok := p.peek()
	p.error(tok, reason)
	return tok
}

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens) || p.tokens[p.current].Type == lexer.TokenEOF
}

func (p *Parser) error(tok lexer.Token, reason string) {
	p.errors = append(p.errors, newParseError(reason, tok))
}

// synchronize discards tokens until the next 'type' keyword, so a broken
// top-level declaration does not prevent the rest of the file from being
// parsed.
func (p *Parser) synchronize() {
	if !p.isAtEnd() {
		p.advance()
	}
	for !p.isAtEnd() {
		if p.check(lexer.TokenType_) {
			return
		}
		p.advance()
	}
}

// synchronizeToNextField discards tokens until the next 'define' (another
// relation) or the next 'type' (end of this type's relations block).
func (p *Parser) synchronizeToNextField() {
	if !p.isAtEnd() {
		p.advance()
	}
	for !p.isAtEnd() {
		if p.check(lexer.TokenDefine) || p.check(lexer.TokenType_) {
			return
		}
		p.advance()
	}
}
