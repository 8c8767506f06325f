package main

import (
	"github.com/iammathew/openfga-dsl/internal/ast"
	"github.com/iammathew/openfga-dsl/internal/checker"
	"github.com/iammathew/openfga-dsl/internal/diagnostic"
	"github.com/iammathew/openfga-dsl/internal/lexer"
	"github.com/iammathew/openfga-dsl/internal/parser"
)

// compileSource runs the lex -> parse -> check pipeline shared by the
// compile command and (separately) the LSP document cache. A non-nil
// model is only ever returned alongside ok == true.
func compileSource(src string) (*ast.AuthorizationModel, []diagnostic.Report, bool) {
	var reports []diagnostic.Report

	tokens, lexErrs := lexer.New(src).ScanTokens()
	for _, e := range lexErrs {
		reports = append(reports, diagnostic.FromLexError(e))
	}

	model, parseErrs := parser.Parse(tokens)
	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			reports = append(reports, diagnostic.FromParseError(e))
		}
		return nil, reports, false
	}

	violations := checker.Check(model)
	reports = append(reports, diagnostic.FromViolations(violations)...)
	if len(lexErrs) > 0 || len(violations) > 0 {
		return nil, reports, false
	}
	return &model, reports, true
}
