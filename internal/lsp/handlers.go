package lsp

import (
	"context"
	"encoding/json"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/iammathew/openfga-dsl/internal/source"
	"github.com/iammathew/openfga-dsl/internal/tooling"
)

func (s *Server) handleTextDocumentDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse didOpen params")
	}

	uri := string(params.TextDocument.URI)
	s.docs.Update(uri, params.TextDocument.Text, int(params.TextDocument.Version))
	s.publishDiagnostics(ctx, uri)

	return reply(ctx, nil, nil)
}

func (s *Server) handleTextDocumentDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse didChange params")
	}
	if len(params.ContentChanges) == 0 {
		return reply(ctx, nil, nil)
	}

	uri := string(params.TextDocument.URI)
	// Full-document sync: the last reported change carries the whole text.
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.docs.Update(uri, text, int(params.TextDocument.Version))
	s.publishDiagnostics(ctx, uri)

	return reply(ctx, nil, nil)
}

func (s *Server) handleTextDocumentDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse didClose params")
	}
	s.docs.Close(string(params.TextDocument.URI))
	return reply(ctx, nil, nil)
}

func (s *Server) handleTextDocumentCompletion(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.CompletionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse completion params")
	}

	items := make([]protocol.CompletionItem, 0, 2)
	for _, c := range tooling.Completions() {
		items = append(items, protocol.CompletionItem{
			Label:  c.Label,
			Kind:   protocol.CompletionItemKindKeyword,
			Detail: c.Detail,
		})
	}

	return reply(ctx, protocol.CompletionList{IsIncomplete: false, Items: items}, nil)
}

func (s *Server) handleTextDocumentHover(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.HoverParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse hover params")
	}

	doc, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok || doc.Model == nil {
		return reply(ctx, nil, nil)
	}

	offset := doc.Map.LCToOffset(source.Position{
		Line:   int(params.Position.Line),
		Column: int(params.Position.Character),
	})
	hover := tooling.HoverAt(doc.Model, doc.Map, offset)
	if hover == nil {
		return reply(ctx, nil, nil)
	}

	result := protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.Markdown, Value: hover.Contents},
		Range:    rangePtr(hover.Range),
	}
	return reply(ctx, result, nil)
}

func (s *Server) handleTextDocumentDocumentSymbol(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DocumentSymbolParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse document symbol params")
	}

	doc, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok || doc.Model == nil {
		return reply(ctx, []protocol.DocumentSymbol{}, nil)
	}

	symbols := tooling.DocumentSymbols(doc.Model, doc.Map)
	lspSymbols := make([]protocol.DocumentSymbol, len(symbols))
	for i, sym := range symbols {
		lspSymbols[i] = convertDocumentSymbol(sym)
	}
	return reply(ctx, lspSymbols, nil)
}

// convertDocumentSymbol sets Range to the symbol's outer span and
// SelectionRange to just its identifier span — tooling.Symbol carries
// the two separately, which is what lets an editor highlight the whole
// declaration while placing the cursor on the name.
func convertDocumentSymbol(sym tooling.Symbol) protocol.DocumentSymbol {
	children := make([]protocol.DocumentSymbol, len(sym.Children))
	for i, c := range sym.Children {
		children[i] = convertDocumentSymbol(c)
	}
	return protocol.DocumentSymbol{
		Name:           sym.Name,
		Kind:           convertSymbolKind(sym.Kind),
		Range:          toRange(sym.Range),
		SelectionRange: toRange(sym.SelectionRange),
		Children:       children,
	}
}

func convertSymbolKind(kind tooling.SymbolKind) protocol.SymbolKind {
	switch kind {
	case tooling.SymbolKindClass:
		return protocol.SymbolKindClass
	case tooling.SymbolKindMethod:
		return protocol.SymbolKindMethod
	default:
		return protocol.SymbolKindObject
	}
}

// semanticTokenTypeLegend maps tooling.SemanticTokenKind values to the
// LSP token-type legend by index: legend[int(kind)] is that kind's name.
var semanticTokenTypeLegend = []protocol.SemanticTokenTypes{
	protocol.SemanticTokenKeyword,
	protocol.SemanticTokenOperator,
	protocol.SemanticTokenClass,
	protocol.SemanticTokenMethod,
}

func (s *Server) handleTextDocumentSemanticTokensFull(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.SemanticTokensParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse semantic tokens params")
	}

	doc, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return reply(ctx, protocol.SemanticTokens{Data: []uint32{}}, nil)
	}

	classified := tooling.ClassifySemanticTokens(doc.Tokens)
	data := make([]uint32, 0, len(classified)*5)

	prevLine, prevStart := 0, 0
	for _, c := range classified {
		rng := doc.Map.SpanToRange(c.Token.Span)
		line := rng.Start.Line
		startChar := rng.Start.Column
		length := rng.End.Column - rng.Start.Column
		if rng.End.Line != rng.Start.Line {
			// Tokens in this grammar never span lines; guard against
			// underflow rather than emit a nonsensical negative length.
			length = 0
		}

		deltaLine := line - prevLine
		deltaStart := startChar
		if deltaLine == 0 {
			deltaStart = startChar - prevStart
		}

		data = append(data, uint32(deltaLine), uint32(deltaStart), uint32(length), uint32(c.Kind), 0)
		prevLine, prevStart = line, startChar
	}

	return reply(ctx, protocol.SemanticTokens{Data: data}, nil)
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc, ok := s.docs.Get(uri)
	if !ok {
		return
	}

	lspDiagnostics := make([]protocol.Diagnostic, 0, len(doc.Diagnostics))
	for _, r := range doc.Diagnostics {
		lspDiagnostics = append(lspDiagnostics, protocol.Diagnostic{
			Range:    toRange(doc.Map.SpanToRange(r.Primary.Span)),
			Severity: protocol.DiagnosticSeverityError,
			Code:     r.Code,
			Source:   r.Source,
			Message:  r.Message,
		})
	}

	params := protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(uri),
		Diagnostics: lspDiagnostics,
	}
	if err := s.client.PublishDiagnostics(ctx, &params); err != nil {
		s.logger.Printf("error publishing diagnostics: %v", err)
	}
}

func toRange(r source.Range) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: uint32(r.Start.Line), Character: uint32(r.Start.Column)},
		End:   protocol.Position{Line: uint32(r.End.Line), Character: uint32(r.End.Column)},
	}
}

func rangePtr(r source.Range) *protocol.Range {
	rng := toRange(r)
	return &rng
}
