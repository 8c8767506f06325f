package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/iammathew/openfga-dsl/internal/diagnostic"
	"github.com/iammathew/openfga-dsl/internal/source"
)

var (
	errorHeader = color.New(color.FgRed, color.Bold)
	gutter      = color.New(color.FgBlue)
	pointer     = color.New(color.FgCyan)
	underline   = color.New(color.FgRed, color.Bold)
	noteLabel   = color.New(color.FgYellow, color.Bold)
)

// printReports renders a batch of reports to stdout: a colored header
// naming the violation code (if any), a file:line:col pointer, the
// offending source line with a caret underline, and any related spans.
func printReports(reports []diagnostic.Report, filename, src string) {
	sm := source.NewMap(src)
	lines := strings.Split(src, "\n")
	for i, r := range reports {
		printReport(r, filename, sm, lines)
		if i < len(reports)-1 {
			fmt.Println()
		}
	}
}

func printReport(r diagnostic.Report, filename string, sm *source.Map, lines []string) {
	header := "error"
	if r.Code != "" {
		header = fmt.Sprintf("error[%s]", r.Code)
	}
	errorHeader.Printf("%s: ", header)
	fmt.Println(r.Message)

	rng := sm.SpanToRange(r.Primary.Span)
	pointer.Print("  --> ")
	fmt.Printf("%s:%d:%d\n", filename, rng.Start.Line+1, rng.Start.Column+1)

	printSourceLine(rng, lines)

	for _, s := range r.Secondary {
		srng := sm.SpanToRange(s.Span)
		noteLabel.Print("  note: ")
		fmt.Printf("%s (%s:%d:%d)\n", s.Message, filename, srng.Start.Line+1, srng.Start.Column+1)
	}
}

func printSourceLine(rng source.Range, lines []string) {
	if rng.Start.Line < 0 || rng.Start.Line >= len(lines) {
		return
	}
	line := lines[rng.Start.Line]

	gutter.Print("   |\n")
	gutter.Printf("%3d|", rng.Start.Line+1)
	fmt.Printf(" %s\n", line)

	length := rng.End.Column - rng.Start.Column
	if rng.End.Line != rng.Start.Line || length <= 0 {
		length = 1
	}
	gutter.Print("   | ")
	fmt.Print(strings.Repeat(" ", rng.Start.Column))
	underline.Println(strings.Repeat("^", length))
}
