package lint

import (
	"strings"
	"testing"
)

func TestFormatDropsFilePath(t *testing.T) {
	raw := "/tmp/crucible-abc123.py:1:2: E225 missing whitespace around operator"
	diags := Format(raw)
	if len(diags) != 1 {
		t.Fatalf("Format returned %d diagnostics, want 1", len(diags))
	}

	d := diags[0]
	if d.Line != "1" || d.Column != "2" {
		t.Errorf("position = L%s:%s, want L1:2", d.Line, d.Column)
	}
	if got := d.String(); got != "L1:2: E225 missing whitespace around operator" {
		t.Errorf("String() = %q", got)
	}
	if strings.Contains(d.String(), "/tmp/") {
		t.Errorf("rendered diagnostic still contains file path: %q", d.String())
	}
}

func TestFormatMultipleLines(t *testing.T) {
	raw := "f.py:1:1: F401 'os' imported but unused\nf.py:3:10: E501 line too long (100 > 79 characters)"
	diags := Format(raw)
	if len(diags) != 2 {
		t.Fatalf("Format returned %d diagnostics, want 2", len(diags))
	}
	if diags[1].Line != "3" || diags[1].Column != "10" {
		t.Errorf("second diagnostic position = L%s:%s, want L3:10", diags[1].Line, diags[1].Column)
	}
}

func TestFormatKeepsUnexpectedLinesVerbatim(t *testing.T) {
	raw := "something went sideways"
	diags := Format(raw)
	if len(diags) != 1 {
		t.Fatalf("Format returned %d diagnostics, want 1", len(diags))
	}
	if diags[0].Raw != raw {
		t.Errorf("Raw = %q, want %q", diags[0].Raw, raw)
	}
	if diags[0].String() != raw {
		t.Errorf("String() = %q, want unmodified line", diags[0].String())
	}
}

func TestFormatEmpty(t *testing.T) {
	if diags := Format(""); diags != nil {
		t.Errorf("Format(\"\") = %v, want nil", diags)
	}
	if diags := Format("  \n  "); diags != nil {
		t.Errorf("Format(whitespace) = %v, want nil", diags)
	}
}

func TestFormatTrimsMessage(t *testing.T) {
	diags := Format("f.py:2:5:   W291 trailing whitespace")
	if len(diags) != 1 {
		t.Fatalf("Format returned %d diagnostics, want 1", len(diags))
	}
	if diags[0].Message != "W291 trailing whitespace" {
		t.Errorf("Message = %q, want trimmed", diags[0].Message)
	}
}

func TestFeedback(t *testing.T) {
	diags := []Diagnostic{
		{Line: "1", Column: "2", Message: "E225 missing whitespace around operator"},
		{Raw: "weird line"},
	}
	want := "L1:2: E225 missing whitespace around operator\nweird line"
	if got := Feedback(diags); got != want {
		t.Errorf("Feedback = %q, want %q", got, want)
	}

	if got := Feedback(nil); got != "" {
		t.Errorf("Feedback(nil) = %q, want empty", got)
	}
}
