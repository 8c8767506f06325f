// Package tooling provides the editor-facing views over a parsed model:
// document symbols, hover text, and the static completion list. Each
// function is a pure read over an ast.AuthorizationModel plus the
// source.Map it was parsed from.
package tooling

import (
	"github.com/google/uuid"

	"github.com/iammathew/openfga-dsl/internal/ast"
	"github.com/iammathew/openfga-dsl/internal/source"
)

// SymbolKind mirrors the subset of LSP symbol kinds this language uses.
type SymbolKind int

const (
	SymbolKindClass  SymbolKind = iota // a type
	SymbolKindMethod                   // a relation
)

// Symbol is one entry in a document's outline. Range is the span of the
// whole declaration; SelectionRange is just the identifier — the LSP
// document-symbol request distinguishes the two so an editor can
// highlight the full node but place the cursor on the name when a user
// jumps to it. ID is an opaque per-request identifier, not derived from
// the symbol's name or position, so two outlines for the same source
// built a moment apart never collide if a caller caches them by ID.
type Symbol struct {
	ID             uuid.UUID
	Name           string
	Kind           SymbolKind
	Range          source.Range
	SelectionRange source.Range
	Children       []Symbol
}

// DocumentSymbols builds the outline for model: one Symbol per type,
// each containing one child Symbol per relation, in declaration order.
func DocumentSymbols(model *ast.AuthorizationModel, sm *source.Map) []Symbol {
	if model == nil {
		return nil
	}
	symbols := make([]Symbol, len(model.Types))
	for i, typ := range model.Types {
		symbols[i] = typeSymbol(typ, sm)
	}
	return symbols
}

func typeSymbol(typ ast.Type, sm *source.Map) Symbol {
	children := make([]Symbol, len(typ.Relations))
	for i, rel := range typ.Relations {
		children[i] = relationSymbol(rel, sm)
	}
	return Symbol{
		ID:             uuid.New(),
		Name:           typ.Identifier.Name,
		Kind:           SymbolKindClass,
		Range:          sm.SpanToRange(typ.Span),
		SelectionRange: sm.SpanToRange(*typ.Identifier.Span),
		Children:       children,
	}
}

func relationSymbol(rel ast.Relation, sm *source.Map) Symbol {
	return Symbol{
		ID:             uuid.New(),
		Name:           rel.Identifier.Name,
		Kind:           SymbolKindMethod,
		Range:          sm.SpanToRange(rel.Span),
		SelectionRange: sm.SpanToRange(*rel.Identifier.Span),
	}
}
