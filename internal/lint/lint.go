// Package lint normalizes raw flake8 output into diagnostics that make
// sense to a caller who never sees the scratch file the linter ran on.
package lint

import (
	"fmt"
	"strings"
)

// Diagnostic is one normalized lint finding. For lines the linter emits
// in its usual path:line:col:message shape, Line, Column and Message are
// populated and the file path is dropped. Anything else is preserved
// verbatim in Raw so no tool output is ever lost.
type Diagnostic struct {
	Line    string
	Column  string
	Message string
	Raw     string
}

// String renders the diagnostic without a file path prefix,
// e.g. "L1:2: E225 missing whitespace around operator".
func (d Diagnostic) String() string {
	if d.Raw != "" {
		return d.Raw
	}
	return fmt.Sprintf("L%s:%s: %s", d.Line, d.Column, d.Message)
}

// Format parses raw linter stdout into diagnostics, one per line.
// It is a pure function of its input.
func Format(raw string) []Diagnostic {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	lines := strings.Split(trimmed, "\n")
	diags := make([]Diagnostic, 0, len(lines))
	for _, line := range lines {
		// flake8 lines look like: /tmp/crucible-x.py:1:2: E225 message
		parts := strings.SplitN(line, ":", 4)
		if len(parts) != 4 {
			diags = append(diags, Diagnostic{Raw: line})
			continue
		}
		diags = append(diags, Diagnostic{
			Line:    parts[1],
			Column:  parts[2],
			Message: strings.TrimSpace(parts[3]),
		})
	}
	return diags
}

// Feedback joins rendered diagnostics into the newline-separated text
// form returned to clients.
func Feedback(diags []Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	rendered := make([]string, len(diags))
	for i, d := range diags {
		rendered[i] = d.String()
	}
	return strings.Join(rendered, "\n")
}
