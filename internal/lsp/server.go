// Package lsp implements a Language Server Protocol server over stdio:
// full-document sync, hover, completion, document symbols, and
// (optionally) semantic tokens, backed by internal/cache and
// internal/tooling.
package lsp

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"

	"github.com/iammathew/openfga-dsl/internal/cache"
)

// Server is the LSP server. docs is the only state shared across
// requests; every handler reads or writes through it rather than
// holding its own copy.
type Server struct {
	docs *cache.Cache

	conn   jsonrpc2.Conn
	client protocol.Client
	logger *log.Logger

	workspaceRoot string

	capabilities protocol.ServerCapabilities
	cancel       context.CancelFunc

	semanticTokensEnabled bool
}

// NewServer creates a Server. semanticTokensEnabled controls whether the
// SemanticTokensProvider capability is advertised at all; the caller
// resolves OPENFGA_DISABLE_SEMANTIC_TOKEN (via internal/config) before
// constructing the server.
func NewServer(semanticTokensEnabled bool) *Server {
	logger := log.New(os.Stderr, "[LSP] ", log.LstdFlags)

	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: protocol.TextDocumentSyncOptions{
			OpenClose: true,
			Change:    protocol.TextDocumentSyncKindFull,
		},
		CompletionProvider: &protocol.CompletionOptions{
			ResolveProvider: false,
		},
		HoverProvider:          true,
		DocumentSymbolProvider: true,
	}
	if semanticTokensEnabled {
		capabilities.SemanticTokensProvider = &protocol.SemanticTokensOptions{
			Legend: protocol.SemanticTokensLegend{
				TokenTypes: semanticTokenTypeLegend,
			},
			Full: true,
		}
	}

	return &Server{
		docs:                  cache.New(),
		logger:                logger,
		capabilities:          capabilities,
		semanticTokensEnabled: semanticTokensEnabled,
	}
}

// Run starts the LSP server and blocks until ctx is cancelled or the
// client sends exit.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Println("starting openfga language server")

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	stream := jsonrpc2.NewStream(stdrwc{})
	conn := jsonrpc2.NewConn(stream)
	s.conn = conn

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		s.logger.Printf("warning: failed to create zap logger: %v", err)
		zapLogger = zap.NewNop()
	}
	s.client = protocol.ClientDispatcher(conn, zapLogger)

	conn.Go(ctx, s.handler())

	<-ctx.Done()
	s.logger.Println("shutting down openfga language server")
	return conn.Close()
}

func (s *Server) handler() jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		switch req.Method() {
		case protocol.MethodInitialize:
			return s.handleInitialize(ctx, reply, req)
		case protocol.MethodInitialized:
			return reply(ctx, nil, nil)
		case protocol.MethodShutdown:
			return reply(ctx, nil, nil)
		case protocol.MethodExit:
			return s.handleExit(ctx, reply, req)
		case protocol.MethodTextDocumentDidOpen:
			return s.handleTextDocumentDidOpen(ctx, reply, req)
		case protocol.MethodTextDocumentDidChange:
			return s.handleTextDocumentDidChange(ctx, reply, req)
		case protocol.MethodTextDocumentDidClose:
			return s.handleTextDocumentDidClose(ctx, reply, req)
		case protocol.MethodTextDocumentCompletion:
			return s.handleTextDocumentCompletion(ctx, reply, req)
		case protocol.MethodTextDocumentHover:
			return s.handleTextDocumentHover(ctx, reply, req)
		case protocol.MethodTextDocumentDocumentSymbol:
			return s.handleTextDocumentDocumentSymbol(ctx, reply, req)
		case protocol.MethodSemanticTokensFull:
			if !s.semanticTokensEnabled {
				return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
			}
			return s.handleTextDocumentSemanticTokensFull(ctx, reply, req)
		default:
			return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
		}
	}
}

func (s *Server) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse initialize params")
	}

	switch {
	case len(params.WorkspaceFolders) > 0:
		s.workspaceRoot = uri.URI(params.WorkspaceFolders[0].URI).Filename()
	case params.RootURI != "":
		s.workspaceRoot = params.RootURI.Filename()
	case params.RootPath != "":
		s.workspaceRoot = params.RootPath
	}

	result := protocol.InitializeResult{
		Capabilities: s.capabilities,
		ServerInfo: &protocol.ServerInfo{
			Name:    "openfga-lsp",
			Version: "0.1.0",
		},
	}
	return reply(ctx, result, nil)
}

func (s *Server) handleExit(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	if err := reply(ctx, nil, nil); err != nil {
		s.logger.Printf("error replying to exit: %v", err)
	}
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

func (s *Server) replyWithError(ctx context.Context, reply jsonrpc2.Replier, code jsonrpc2.Code, message string) error {
	return reply(ctx, nil, &jsonrpc2.Error{Code: code, Message: message})
}

// stdrwc adapts stdin/stdout to io.ReadWriteCloser for jsonrpc2.
type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdrwc) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
