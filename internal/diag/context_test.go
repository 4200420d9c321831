package diag

import (
	"testing"

	"github.com/rtoal/astro-interpreter/internal/span"
)

const source = "x = 1;\nprint π + y;"

func spanAt(line, col, from, to int) span.Span {
	return span.Span{
		Start: span.Position{Offset: from, Line: line, Column: col},
		End:   span.Position{Offset: to, Line: line, Column: col + 1},
	}
}

func TestContextShow(t *testing.T) {
	tests := []struct {
		name  string
		d     Diagnostic
		color bool
		want  string
	}{
		{
			name: "plain",
			d:    Errorf("E3001", spanAt(2, 11, 18, 19), "y not defined"),
			want: "test.astro, line 2: y not defined\n" +
				"print π + y;\n" +
				"          ^",
		},
		{
			name: "multibyte culprit",
			d:    Errorf("E3003", spanAt(2, 7, 13, 15), "π not writable"),
			want: "test.astro, line 2: π not writable\n" +
				"print π + y;\n" +
				"      ^",
		},
		{
			name:  "color",
			d:     Errorf("E3001", spanAt(2, 11, 18, 19), "y not defined"),
			color: true,
			want: "test.astro, line 2: y not defined\n" +
				"print π + \033[1;4my\033[m;\n" +
				"          ^",
		},
		{
			name: "empty span at end of input",
			d:    Errorf("E2001", spanAt(2, 13, len(source), len(source)), "expected ';', got end of input"),
			want: "test.astro, line 2: expected ';', got end of input\n" +
				"print π + y;\n" +
				"            ^",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewContext("test.astro", source, tt.d).Show(tt.color)
			if got != tt.want {
				t.Errorf("expected:\n%s\ngot:\n%s", tt.want, got)
			}
		})
	}
}

func TestContextInvalidPosition(t *testing.T) {
	got := NewContext("x", "abc", Errorf("E1001", spanAt(1, 1, 10, 11), "oops")).Show(false)
	if got != "x, invalid position 10-11: oops" {
		t.Errorf("unexpected rendering %q", got)
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Errorf("E2002", spanAt(3, 4, 0, 1), "expected an expression, got 'print'")
	d.Hint = "print is a keyword"
	want := "3:4: expected an expression, got 'print'"
	if d.Error() != want {
		t.Errorf("expected %q, got %q", want, d.Error())
	}
}

func TestContextShowsHint(t *testing.T) {
	src := "x = -1;"
	d := Errorf("E2005", spanAt(1, 5, 4, 5), "unary '-' is not enabled in this dialect")
	d.Hint = "write 0 - x instead"
	want := "t.astro, line 1: unary '-' is not enabled in this dialect\n" +
		"x = -1;\n" +
		"    ^\n" +
		"hint: write 0 - x instead"
	if got := NewContext("t.astro", src, d).Show(false); got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}
