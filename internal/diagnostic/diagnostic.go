// Package diagnostic renders lexer, parser, and checker failures into
// human-facing multi-label reports. Every function here is pure: given an
// error or violation value, it returns a Report and performs no I/O of
// its own.
package diagnostic

import (
	"github.com/iammathew/openfga-dsl/internal/checker"
	"github.com/iammathew/openfga-dsl/internal/lexer"
	"github.com/iammathew/openfga-dsl/internal/parser"
	"github.com/iammathew/openfga-dsl/internal/source"
)

// Severity mirrors the handful of levels the CLI and LSP both need.
type Severity int

const (
	SeverityError Severity = iota
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Label is one highlighted span within a report, with a short caption.
type Label struct {
	Span    source.Span
	Message string
}

// Report is a fully-formed diagnostic: a severity, a stable code (empty
// for lexer/parser errors, which have none), a short note, a primary
// label, and zero or more secondary labels.
type Report struct {
	Severity  Severity
	Code      string
	Source    string
	Message   string
	Primary   Label
	Secondary []Label
}

// sourceName is the diagnostic "source" field every report carries,
// matching the LSP contract in the external-interfaces section.
const sourceName = "openfga"

// FromLexError renders a single recovered lexical error.
func FromLexError(e lexer.LexError) Report {
	return Report{
		Severity: SeverityError,
		Source:   sourceName,
		Message:  e.Message,
		Primary:  Label{Span: e.Span, Message: e.Message},
	}
}

// FromParseError renders a single recovered syntax error.
func FromParseError(e parser.ParseError) Report {
	return Report{
		Severity: SeverityError,
		Source:   sourceName,
		Message:  e.Reason,
		Primary:  Label{Span: e.Span, Message: e.Reason},
	}
}

// FromViolation renders a semantic violation, attaching secondary labels
// for any related spans the checker recorded (the first definition, for
// duplicate rules).
func FromViolation(v checker.Violation) Report {
	secondary := make([]Label, 0, len(v.Related))
	for _, span := range v.Related {
		secondary = append(secondary, Label{Span: span, Message: relatedLabel(v.Code)})
	}
	return Report{
		Severity:  SeverityError,
		Code:      codeString(v.Code),
		Source:    sourceName,
		Message:   v.Message,
		Primary:   Label{Span: v.Primary, Message: v.Message},
		Secondary: secondary,
	}
}

func relatedLabel(code checker.Code) string {
	switch code {
	case checker.DuplicateTypeName:
		return "first declared here"
	case checker.DuplicateRelationName:
		return "first declared here"
	default:
		return "related"
	}
}

func codeString(c checker.Code) string {
	switch c {
	case checker.DuplicateTypeName:
		return "201"
	case checker.DuplicateRelationName:
		return "202"
	case checker.UnknownRelation:
		return "203"
	case checker.SelfReferencingRelation:
		return "204"
	default:
		return ""
	}
}

// FromViolations renders a whole checker result in the order it was
// produced.
func FromViolations(violations []checker.Violation) []Report {
	reports := make([]Report, len(violations))
	for i, v := range violations {
		reports[i] = FromViolation(v)
	}
	return reports
}
