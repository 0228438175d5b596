package diagnostics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stark-lang/starkc/internal/source"
)

// FromSpan builds a Diagnostic anchored at a source span, resolving
// its length from the span's byte extent (a zero-width span still
// underlines one column).
func FromSpan(file string, span source.Span, code, message, hint string) Diagnostic {
	length := span.End.Offset - span.Start.Offset
	if length < 1 {
		length = 1
	}
	return Diagnostic{
		Severity: "error",
		Code:     code,
		Message:  message,
		File:     file,
		Line:     span.Start.Line,
		Column:   span.Start.Column,
		Length:   length,
		Hint:     hint,
	}
}

// Render produces the fixed three-line diagnostic snippet: a header
// ("path:line:col: severity: message"), the offending source line
// prefixed with its line number, and a caret/tilde underline beneath
// the span. A fourth "hint: " line follows when d.Hint is set. src
// must be the Source the diagnostic's File was read from. No ANSI
// styling is applied.
func Render(src *source.Source, d Diagnostic) string {
	severity := d.Severity
	if severity == "" {
		severity = "error"
	}
	header := fmt.Sprintf("%s:%d:%d: %s: %s", d.File, d.Line, d.Column, severity, d.Message)

	lineNo := strconv.Itoa(d.Line)
	gutter := "  " + lineNo + " | "
	line := gutter + src.LineText(d.Line)

	length := d.Length
	if length < 1 {
		length = 1
	}
	// The caret gutter must occupy the same width as the source-line
	// gutter above it, with the line number blanked out, or the caret
	// drifts out of alignment for every extra digit in the line number.
	caretGutter := "  " + strings.Repeat(" ", len(lineNo)) + " | "
	pad := strings.Repeat(" ", d.Column-1)
	underline := caretGutter + pad + "^" + strings.Repeat("~", length-1)

	parts := []string{header, line, underline}
	if d.Hint != "" {
		parts = append(parts, "hint: "+d.Hint)
	}
	return strings.Join(parts, "\n")
}
