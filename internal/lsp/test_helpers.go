package lsp

// Most handler logic here is a thin wire-format adapter over
// internal/cache and internal/tooling, both already covered thoroughly
// by their own package tests. Due to unexported fields on the
// jsonrpc2.Request interface, constructing requests directly from this
// package is impractical; the pure conversion helpers (toRange,
// rangePtr, convertSymbolKind, convertDocumentSymbol) and the
// semantic-token legend are tested in isolation in handlers_test.go
// instead. The semantic-token delta encoding lives inline in its handler
// and has no test of its own.
