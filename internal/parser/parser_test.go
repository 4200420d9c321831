package parser

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rtoal/astro-interpreter/internal/ast"
	"github.com/rtoal/astro-interpreter/internal/config"
	"github.com/rtoal/astro-interpreter/internal/diag"
	"github.com/rtoal/astro-interpreter/internal/lexer"
	"github.com/rtoal/astro-interpreter/internal/token"
)

func parseWith(t *testing.T, source string, dialect config.Dialect) (*ast.File, []diag.Diagnostic) {
	t.Helper()
	l := lexer.New(source)
	tokens, lexDiags := l.Tokenize()
	if len(lexDiags) > 0 {
		t.Fatalf("lex errors: %v", lexDiags)
	}
	return New(tokens, dialect).ParseFile()
}

// helper: parse source and return AST + check for no errors
func parseOK(t *testing.T, source string) *ast.File {
	t.Helper()
	file, diags := parseWith(t, source, config.DefaultDialect())
	if len(diags) > 0 {
		t.Fatalf("parse errors: %v", diags)
	}
	return file
}

// helper: parse source expecting exactly the first diagnostic to contain msg
func parseErr(t *testing.T, source string, dialect config.Dialect, msg string) diag.Diagnostic {
	t.Helper()
	_, diags := parseWith(t, source, dialect)
	if len(diags) == 0 {
		t.Fatalf("expected parse error containing %q, got none", msg)
	}
	if !strings.Contains(diags[0].Message, msg) {
		t.Errorf("expected error containing %q, got %q", msg, diags[0].Message)
	}
	return diags[0]
}

// sexpr renders an expression in prefix form for compact structural checks.
func sexpr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.NumberLiteral:
		return n.Raw
	case *ast.IdentExpr:
		return n.Name
	case *ast.UnaryExpr:
		return "(neg " + sexpr(n.Operand) + ")"
	case *ast.BinaryExpr:
		return "(" + n.Op.String() + " " + sexpr(n.Left) + " " + sexpr(n.Right) + ")"
	case *ast.CallExpr:
		parts := []string{n.Callee.Name}
		for _, a := range n.Args {
			parts = append(parts, sexpr(a))
		}
		return "(call " + strings.Join(parts, " ") + ")"
	default:
		return "?"
	}
}

func assignValue(t *testing.T, source string) ast.Expr {
	t.Helper()
	file := parseOK(t, source)
	stmt, ok := file.Body[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("expected AssignStmt, got %T", file.Body[0])
	}
	return stmt.Value
}

func TestParseAssign(t *testing.T) {
	file := parseOK(t, `x = 42;`)
	if len(file.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(file.Body))
	}
	stmt, ok := file.Body[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("expected AssignStmt, got %T", file.Body[0])
	}
	if stmt.Target.Name != "x" {
		t.Errorf("expected target 'x', got %q", stmt.Target.Name)
	}
	lit, ok := stmt.Value.(*ast.NumberLiteral)
	if !ok || lit.Value != 42 {
		t.Errorf("expected NumberLiteral 42, got %#v", stmt.Value)
	}
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{`x = 1 + 2 * 3;`, "(+ 1 (* 2 3))"},
		{`x = (1 + 2) * 3;`, "(* (+ 1 2) 3)"},
		{`x = 1 - 2 - 3;`, "(- (- 1 2) 3)"},
		{`x = 8 / 4 / 2;`, "(/ (/ 8 4) 2)"},
		{`x = 7 % 3 * 2;`, "(* (% 7 3) 2)"},
		{`x = 2 ** 3 ** 2;`, "(** 2 (** 3 2))"},
		{`x = 2 * 3 ** 2;`, "(* 2 (** 3 2))"},
		{`x = -y * 2;`, "(* (neg y) 2)"},
		{`x = 2 ** -1;`, "(** 2 (neg 1))"},
		{`x = 1 - -2;`, "(- 1 (neg 2))"},
		{`x = hypot(3, 4) + sqrt(16);`, "(+ (call hypot 3 4) (call sqrt 16))"},
		{`x = f();`, "(call f)"},
	}

	for _, tt := range tests {
		if got := sexpr(assignValue(t, tt.source)); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.source, tt.want, got)
		}
	}
}

func TestParseNegationBindsToPrimaryOnly(t *testing.T) {
	// Factor = "-" Primary, so -2 ** 2 leaves ** unconsumed.
	parseErr(t, `x = -2 ** 2;`, config.DefaultDialect(), "expected ';', got '**'")
	parseErr(t, `x = - -2;`, config.DefaultDialect(), "expected an expression, got '-'")
}

func TestParsePrintKeyword(t *testing.T) {
	file := parseOK(t, `print x; print(1 + 2);`)
	if len(file.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(file.Body))
	}
	for i, node := range file.Body {
		if _, ok := node.(*ast.PrintStmt); !ok {
			t.Errorf("statement %d: expected PrintStmt, got %T", i, node)
		}
	}
}

func TestParsePrintProcedureDialect(t *testing.T) {
	dialect := config.DefaultDialect()
	dialect.Print = config.PrintProcedure

	file, diags := parseWith(t, `print(1);`, dialect)
	if len(diags) > 0 {
		t.Fatalf("parse errors: %v", diags)
	}
	stmt, ok := file.Body[0].(*ast.CallStmt)
	if !ok {
		t.Fatalf("expected CallStmt, got %T", file.Body[0])
	}
	if stmt.Call.Callee.Name != "print" {
		t.Errorf("expected callee 'print', got %q", stmt.Call.Callee.Name)
	}

	parseErr(t, `print 1;`, dialect, "expected '=' or '(' after 'print'")
}

func TestParseKeywordNotAValue(t *testing.T) {
	d := parseErr(t, `x = print;`, config.DefaultDialect(), "expected an expression, got 'print'")
	if d.Hint == "" {
		t.Error("expected a hint for keyword misuse")
	}
}

func TestParseCallStmt(t *testing.T) {
	file := parseOK(t, `plot(1, 2 + 3);`)
	stmt, ok := file.Body[0].(*ast.CallStmt)
	if !ok {
		t.Fatalf("expected CallStmt, got %T", file.Body[0])
	}
	if got := sexpr(stmt.Call); got != "(call plot 1 (+ 2 3))" {
		t.Errorf("unexpected call: %s", got)
	}
	// Args span covers "1, 2 + 3".
	if stmt.Call.ArgsSpan.Start.Column != 6 || stmt.Call.ArgsSpan.End.Column != 14 {
		t.Errorf("unexpected args span %s", stmt.Call.ArgsSpan)
	}
}

func TestParseEmptyArgsSpan(t *testing.T) {
	file := parseOK(t, `f();`)
	call := file.Body[0].(*ast.CallStmt).Call
	if call.ArgsSpan.Start.Column != 3 || call.ArgsSpan.Len() != 0 {
		t.Errorf("expected empty args span at column 3, got %s", call.ArgsSpan)
	}
}

func TestParseModuloDisabled(t *testing.T) {
	dialect := config.DefaultDialect()
	dialect.Modulo = false
	parseErr(t, `x = 7 % 2;`, dialect, "expected ';', got '%'")
}

func TestParseNegationDisabled(t *testing.T) {
	dialect := config.DefaultDialect()
	dialect.Negation = false
	d := parseErr(t, `x = -1;`, dialect, "unary '-' is not enabled")
	if d.Code != "E2005" {
		t.Errorf("expected code E2005, got %s", d.Code)
	}
}

func TestParseErrors(t *testing.T) {
	dialect := config.DefaultDialect()
	parseErr(t, `x = 1`, dialect, "expected ';', got end of input")
	parseErr(t, `x 1;`, dialect, "expected '=' or '(' after 'x'")
	parseErr(t, `1 + 2;`, dialect, "expected a statement, got '1'")
	parseErr(t, `x = (1 + 2;`, dialect, "expected ')', got ';'")
	parseErr(t, `x = f(1,);`, dialect, "expected an expression, got ')'")
	parseErr(t, ``, dialect, "expected at least one statement")
	parseErr(t, `// only a comment`, dialect, "expected at least one statement")
}

func TestParseErrorPosition(t *testing.T) {
	d := parseErr(t, "x = 1;\ny = 2 +;", config.DefaultDialect(), "expected an expression")
	if d.Span.Start.Line != 2 || d.Span.Start.Column != 8 {
		t.Errorf("expected error at 2:8, got %s", d.Span.Start)
	}
	if got := d.String(); got != "2:8: expected an expression, got ';'" {
		t.Errorf("unexpected rendering %q", got)
	}
}

func TestParseRecoversAtSemicolon(t *testing.T) {
	file, diags := parseWith(t, `x = ; y = 2; z 3; w = 4;`, config.DefaultDialect())
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %v", diags)
	}
	if len(file.Body) != 2 {
		t.Fatalf("expected 2 good statements, got %d", len(file.Body))
	}
	names := []string{
		file.Body[0].(*ast.AssignStmt).Target.Name,
		file.Body[1].(*ast.AssignStmt).Target.Name,
	}
	if diff := cmp.Diff([]string{"y", "w"}, names); diff != "" {
		t.Errorf("recovered statements mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBinarySpan(t *testing.T) {
	value := assignValue(t, `x = 10 * (2 + 3);`)
	bin, ok := value.(*ast.BinaryExpr)
	if !ok || bin.Op != token.STAR {
		t.Fatalf("expected '*' BinaryExpr, got %#v", value)
	}
	s := bin.GetSpan()
	if s.Start.Column != 5 || s.End.Column != 16 {
		t.Errorf("unexpected span %s", s)
	}
}

func TestParseJSON(t *testing.T) {
	file := parseOK(t, `print 1;`)
	data, err := json.Marshal(ast.NodeToMap(file))
	if err != nil {
		t.Fatalf("json error: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json error: %v", err)
	}
	body := got["body"].([]interface{})
	stmt := body[0].(map[string]interface{})
	value := stmt["value"].(map[string]interface{})

	want := map[string]interface{}{
		"kind":  "PrintStmt",
		"value": "NumberLiteral",
		"raw":   "1",
	}
	gotSummary := map[string]interface{}{
		"kind":  stmt["kind"],
		"value": value["kind"],
		"raw":   value["raw"],
	}
	if diff := cmp.Diff(want, gotSummary); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
}
