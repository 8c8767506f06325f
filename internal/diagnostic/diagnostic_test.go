package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iammathew/openfga-dsl/internal/checker"
	"github.com/iammathew/openfga-dsl/internal/lexer"
	"github.com/iammathew/openfga-dsl/internal/parser"
	"github.com/iammathew/openfga-dsl/internal/source"
)

func TestFromLexError(t *testing.T) {
	_, errs := lexer.New("type $ document").ScanTokens()
	require.Len(t, errs, 1)

	report := FromLexError(errs[0])
	assert.Equal(t, SeverityError, report.Severity)
	assert.Equal(t, "openfga", report.Source)
	assert.Equal(t, errs[0].Span, report.Primary.Span)
}

func TestFromParseError(t *testing.T) {
	tokens, _ := lexer.New("type").ScanTokens()
	_, errs := parser.Parse(tokens)
	require.NotEmpty(t, errs)

	report := FromParseError(errs[0])
	assert.Empty(t, report.Code, "expected parse errors to carry no violation code")
}

func TestFromViolationCarriesSecondaryLabelForDuplicate(t *testing.T) {
	first := source.NewSpan(0, 5)
	second := source.NewSpan(10, 15)
	v := checker.Violation{
		Code:    checker.DuplicateTypeName,
		Message: `type "document" is declared more than once`,
		Primary: second,
		Related: []source.Span{first},
	}

	report := FromViolation(v)
	assert.Equal(t, "201", report.Code)
	require.Len(t, report.Secondary, 1)
	assert.Equal(t, first, report.Secondary[0].Span)
	assert.Equal(t, second, report.Primary.Span)
}

func TestFromViolationsPreservesOrder(t *testing.T) {
	violations := []checker.Violation{
		{Code: checker.UnknownRelation, Primary: source.NewSpan(0, 1)},
		{Code: checker.SelfReferencingRelation, Primary: source.NewSpan(2, 3)},
	}

	reports := FromViolations(violations)
	require.Len(t, reports, 2)
	assert.Equal(t, "203", reports[0].Code)
	assert.Equal(t, "204", reports[1].Code)
}
