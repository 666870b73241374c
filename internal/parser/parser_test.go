package parser

import (
	"encoding/json"
	"testing"

	"github.com/Luxbin-labs/luxbin-lang/internal/ast"
	"github.com/Luxbin-labs/luxbin-lang/internal/lexer"
)

// helper: parse source and return AST + check for no errors
func parseOK(t *testing.T, source string) *ast.File {
	t.Helper()
	l := lexer.New(source, "test.lux")
	tokens, lexDiags := l.Tokenize()
	if len(lexDiags) > 0 {
		t.Fatalf("lex errors: %v", lexDiags)
	}
	p := New(tokens)
	file, parseDiags := p.ParseFile()
	if len(parseDiags) > 0 {
		t.Fatalf("parse errors: %v", parseDiags)
	}
	return file
}

func parseToJSON(t *testing.T, source string) string {
	t.Helper()
	file := parseOK(t, source)
	m := ast.NodeToMap(file)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		t.Fatalf("json error: %v", err)
	}
	return string(data)
}

func TestParseVarDecl(t *testing.T) {
	file := parseOK(t, `let x = 42`)
	decl, ok := file.Body[0].(*ast.VarDeclStmt)
	if !ok {
		t.Fatalf("expected VarDeclStmt, got %T", file.Body[0])
	}
	if decl.Name != "x" {
		t.Errorf("expected name 'x', got %q", decl.Name)
	}
	if decl.IsConst {
		t.Error("expected let, got const")
	}
}

func TestParseConstDecl(t *testing.T) {
	file := parseOK(t, `const PI = 3.14`)
	decl, ok := file.Body[0].(*ast.VarDeclStmt)
	if !ok {
		t.Fatalf("expected VarDeclStmt, got %T", file.Body[0])
	}
	if !decl.IsConst {
		t.Error("expected const")
	}
	if decl.Name != "PI" {
		t.Errorf("expected name 'PI', got %q", decl.Name)
	}
}

func TestParseTypedDecl(t *testing.T) {
	file := parseOK(t, `let x: number = 1`)
	decl := file.Body[0].(*ast.VarDeclStmt)
	if decl.Type != "number" {
		t.Errorf("expected type annotation 'number', got %q", decl.Type)
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	file := parseOK(t, `let z = 1 + 2 * 3`)
	decl := file.Body[0].(*ast.VarDeclStmt)
	binExpr, ok := decl.Init.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected BinaryExpr, got %T", decl.Init)
	}
	if binExpr.Op.String() != "+" {
		t.Errorf("expected '+', got %q", binExpr.Op.String())
	}
	rightBin, ok := binExpr.Right.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected right BinaryExpr, got %T", binExpr.Right)
	}
	if rightBin.Op.String() != "*" {
		t.Errorf("expected '*', got %q", rightBin.Op.String())
	}
}

func TestParseCaretRightAssociative(t *testing.T) {
	file := parseOK(t, `let z = 2 ^ 3 ^ 2`)
	decl := file.Body[0].(*ast.VarDeclStmt)
	top, ok := decl.Init.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected BinaryExpr, got %T", decl.Init)
	}
	// right-associative means the right subtree, not the left, holds the nested '^'
	if _, ok := top.Right.(*ast.BinaryExpr); !ok {
		t.Errorf("expected right-associative nesting, got left=%T right=%T", top.Left, top.Right)
	}
	if _, ok := top.Left.(*ast.BinaryExpr); ok {
		t.Errorf("did not expect left-nested '^', got %T", top.Left)
	}
}

func TestParseIfStmt(t *testing.T) {
	source := `if x > 0 then
  print(x)
else if x == 0 then
  print(0)
else
  print(-1)
end`
	file := parseOK(t, source)
	ifStmt, ok := file.Body[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected IfStmt, got %T", file.Body[0])
	}
	if ifStmt.Condition == nil {
		t.Fatal("condition is nil")
	}
	if len(ifStmt.ElseIfs) != 1 {
		t.Errorf("expected 1 else-if, got %d", len(ifStmt.ElseIfs))
	}
	if ifStmt.ElseBody == nil {
		t.Error("else body is nil")
	}
}

func TestParseWhileStmt(t *testing.T) {
	source := `while i < 10 do
  i = i + 1
end`
	file := parseOK(t, source)
	whileStmt, ok := file.Body[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected WhileStmt, got %T", file.Body[0])
	}
	if whileStmt.Condition == nil {
		t.Fatal("condition is nil")
	}
	if whileStmt.Body == nil {
		t.Fatal("body is nil")
	}
}

func TestParseForInStmt(t *testing.T) {
	source := `for x in [1, 2, 3] do
  print(x)
end`
	file := parseOK(t, source)
	stmt, ok := file.Body[0].(*ast.ForInStmt)
	if !ok {
		t.Fatalf("expected ForInStmt, got %T", file.Body[0])
	}
	if stmt.VarName != "x" {
		t.Errorf("expected 'x', got %q", stmt.VarName)
	}
}

func TestParseFuncDecl(t *testing.T) {
	source := `func add(a, b)
  return a + b
end`
	file := parseOK(t, source)
	fn, ok := file.Body[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected FuncDecl, got %T", file.Body[0])
	}
	if fn.Name != "add" {
		t.Errorf("expected name 'add', got %q", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Errorf("expected 2 params, got %d", len(fn.Params))
	}
}

func TestParseCallExpr(t *testing.T) {
	file := parseOK(t, `print(1, 2, 3)`)
	stmt, ok := file.Body[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", file.Body[0])
	}
	call, ok := stmt.Expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr, got %T", stmt.Expr)
	}
	if call.Callee != "print" {
		t.Errorf("expected callee 'print', got %q", call.Callee)
	}
	if len(call.Args) != 3 {
		t.Errorf("expected 3 args, got %d", len(call.Args))
	}
}

func TestParseAssignment(t *testing.T) {
	file := parseOK(t, `x = 42`)
	assign, ok := file.Body[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("expected AssignStmt, got %T", file.Body[0])
	}
	if assign.Target != "x" {
		t.Errorf("expected 'x', got %q", assign.Target)
	}
}

func TestParseIndexAssignment(t *testing.T) {
	file := parseOK(t, `a[0] = 42`)
	assign, ok := file.Body[0].(*ast.IndexAssignStmt)
	if !ok {
		t.Fatalf("expected IndexAssignStmt, got %T", file.Body[0])
	}
	if assign.Target != "a" {
		t.Errorf("expected target 'a', got %q", assign.Target)
	}
}

func TestParseIndexExpressionNotAssignment(t *testing.T) {
	// "a[0]" alone (no trailing '=') must parse as a plain expression statement,
	// not be mistaken for an index assignment by the speculative lookahead.
	file := parseOK(t, `a[0]`)
	stmt, ok := file.Body[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", file.Body[0])
	}
	if _, ok := stmt.Expr.(*ast.IndexExpr); !ok {
		t.Fatalf("expected IndexExpr, got %T", stmt.Expr)
	}
}

func TestParseTryCatch(t *testing.T) {
	source := `try
  let x = 1 / 0
catch err
  print(err)
end`
	file := parseOK(t, source)
	tryStmt, ok := file.Body[0].(*ast.TryStmt)
	if !ok {
		t.Fatalf("expected TryStmt, got %T", file.Body[0])
	}
	if tryStmt.CatchParam != "err" {
		t.Errorf("expected catch param 'err', got %q", tryStmt.CatchParam)
	}
}

func TestParseImportStmt(t *testing.T) {
	file := parseOK(t, `import "util"`)
	imp, ok := file.Body[0].(*ast.ImportStmt)
	if !ok {
		t.Fatalf("expected ImportStmt, got %T", file.Body[0])
	}
	if imp.Path != "util" {
		t.Errorf("expected path 'util', got %q", imp.Path)
	}
}

func TestParseJSONOutput(t *testing.T) {
	jsonStr := parseToJSON(t, `let x = 1`)
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if m["kind"] != "File" {
		t.Errorf("expected kind 'File', got %v", m["kind"])
	}
}

func TestParseErrorRecovery(t *testing.T) {
	source := `let x = add(1, 2
let y = 3`
	l := lexer.New(source, "test.lux")
	tokens, _ := l.Tokenize()
	p := New(tokens)
	file, diags := p.ParseFile()

	if len(diags) == 0 {
		t.Error("expected parse errors")
	}
	if file == nil {
		t.Fatal("file is nil")
	}
}

func TestParseCallTrailingCommaIsDiagnosed(t *testing.T) {
	l := lexer.New(`println(1,)`, "test.lux")
	tokens, lexDiags := l.Tokenize()
	if len(lexDiags) > 0 {
		t.Fatalf("lex errors: %v", lexDiags)
	}
	p := New(tokens)
	file, diags := p.ParseFile()

	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for the trailing comma")
	}
	if file == nil {
		t.Fatal("file is nil")
	}

	stmt, ok := file.Body[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", file.Body[0])
	}
	call, ok := stmt.Expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr, got %T", stmt.Expr)
	}
	if len(call.Args) != 1 {
		t.Fatalf("expected 1 argument (no nil entry for the trailing comma), got %d", len(call.Args))
	}
	if _, ok := call.Args[0].(*ast.NumberLiteral); !ok {
		t.Fatalf("expected the first argument to still parse as a NumberLiteral, got %T", call.Args[0])
	}
}
