package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rtoal/astro-interpreter/internal/config"
	"github.com/rtoal/astro-interpreter/internal/session"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		argv []string
		opts options
		rest []string
	}{
		{[]string{"prog.astro"}, options{}, []string{"prog.astro"}},
		{[]string{"--json", "a.astro"}, options{json: true}, []string{"a.astro"}},
		{[]string{"a.astro", "--context", "--trace"}, options{context: true, trace: true}, []string{"a.astro"}},
		{[]string{"--config", "c.yaml", "a.astro"}, options{configPath: "c.yaml"}, []string{"a.astro"}},
		{[]string{"--config=c.yaml"}, options{configPath: "c.yaml"}, nil},
		{[]string{"--", "-x"}, options{}, []string{"--", "-x"}},
	}

	for _, tt := range tests {
		opts, rest, err := parseArgs(tt.argv)
		if err != nil {
			t.Errorf("%v: unexpected error %v", tt.argv, err)
			continue
		}
		if diff := cmp.Diff(tt.opts, opts, cmp.AllowUnexported(options{})); diff != "" {
			t.Errorf("%v: options mismatch (-want +got):\n%s", tt.argv, diff)
		}
		if diff := cmp.Diff(tt.rest, rest); diff != "" {
			t.Errorf("%v: args mismatch (-want +got):\n%s", tt.argv, diff)
		}
	}
}

func TestParseArgsErrors(t *testing.T) {
	for _, argv := range [][]string{{"--config"}, {"--verbose"}} {
		if _, _, err := parseArgs(argv); err == nil {
			t.Errorf("%v: expected error", argv)
		}
	}
}

func TestEndsStatement(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"x = 1;\n", true},
		{"x = 1\n", false},
		{"x = 1 +\n2;\n", true},
		{"print x; // done\n", true},
		{"print x // missing;\n", false},
		{"x = 1;\n// trailing comment\n", true},
		{"\n", false},
	}

	for _, tt := range tests {
		if got := endsStatement(tt.input); got != tt.want {
			t.Errorf("endsStatement(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestUseColor(t *testing.T) {
	if !useColor(config.Config{Color: config.ColorAlways}) {
		t.Error("always should enable color")
	}
	if useColor(config.Config{Color: config.ColorNever}) {
		t.Error("never should disable color")
	}
}

func TestPrintError(t *testing.T) {
	source := "x = 1;\nprint y;"
	err := session.Run(source, &bytes.Buffer{}, config.DefaultDialect())

	var buf bytes.Buffer
	printError(&buf, err, source, "t.astro", false, false)
	if buf.String() != "2:7: y not defined\n" {
		t.Errorf("unexpected plain output %q", buf.String())
	}

	buf.Reset()
	printError(&buf, err, source, "t.astro", true, false)
	want := "t.astro, line 2: y not defined\nprint y;\n      ^\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}

	buf.Reset()
	printError(&buf, errors.New("boom"), source, "t.astro", true, false)
	if buf.String() != "error: boom\n" {
		t.Errorf("unexpected fallback output %q", buf.String())
	}
}
