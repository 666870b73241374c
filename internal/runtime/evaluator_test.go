package runtime_test

import (
	"strings"
	"testing"

	"github.com/Luxbin-labs/luxbin-lang/internal/lexer"
	"github.com/Luxbin-labs/luxbin-lang/internal/parser"
	. "github.com/Luxbin-labs/luxbin-lang/internal/runtime"
	"github.com/Luxbin-labs/luxbin-lang/internal/stdlib"
)

// runSource lexes, parses, and executes source code, returning accumulated
// output lines joined by "\n" and any runtime error. It fails the test
// immediately on lex or parse diagnostics, since a test source that fails
// to parse has nothing meaningful left to assert on.
func runSource(t *testing.T, source string) (string, error) {
	t.Helper()
	l := lexer.New(source, "test.lux")
	tokens, lexDiags := l.Tokenize()
	if len(lexDiags) > 0 {
		t.Fatalf("unexpected lex diagnostics: %v", lexDiags)
	}
	p := parser.New(tokens)
	file, parseDiags := p.ParseFile()
	if len(parseDiags) > 0 {
		t.Fatalf("unexpected parse diagnostics: %v", parseDiags)
	}

	output := NewOutputBuffer()
	global := NewEnvironment(nil)
	InstallBuiltins(global, stdlib.New(output))

	eval := NewEvaluator(output, WithGlobalEnv(global))
	err := eval.Run("test.lux", file)
	return output.String(), err
}

func expectOutput(t *testing.T, source, expected string) {
	t.Helper()
	out, err := runSource(t, source)
	if err != nil {
		t.Fatalf("runtime error: %v", err)
	}
	if strings.TrimRight(out, "\n") != strings.TrimRight(expected, "\n") {
		t.Errorf("output mismatch:\nexpected: %q\ngot:      %q", expected, out)
	}
}

func expectError(t *testing.T, source, contains string) {
	t.Helper()
	_, err := runSource(t, source)
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", contains)
	}
	if !strings.Contains(err.Error(), contains) {
		t.Errorf("expected error containing %q, got: %v", contains, err)
	}
}

// ---- Tests ----

func TestPrintlnLiteral(t *testing.T) {
	expectOutput(t, `println("hello")`, "hello")
}

func TestLetAndToString(t *testing.T) {
	expectOutput(t, "let x = 42\nprintln(to_string(x))", "42")
}

func TestConstReassignError(t *testing.T) {
	expectError(t, "const PI = 3.14\nPI = 2", "Cannot reassign constant")
}

func TestArithmeticPrecedence(t *testing.T) {
	expectOutput(t, `println(to_string(2 + 3 * 4))`, "14")
}

func TestExponentRightAssociative(t *testing.T) {
	expectOutput(t, `println(to_string(2 ^ 3 ^ 2))`, "512")
}

func TestLogicalPrecedence(t *testing.T) {
	expectOutput(t, `println(to_string(true and false or true))`, "true")
}

func TestDivisionByZero(t *testing.T) {
	expectError(t, `println(to_string(1 / 0))`, "division by zero")
}

func TestModuloByZero(t *testing.T) {
	expectError(t, `println(to_string(1 % 0))`, "division by zero")
}

func TestUndefinedVariable(t *testing.T) {
	expectError(t, `println(y)`, "undefined variable 'y'")
}

func TestIfElseIfElse(t *testing.T) {
	source := `
let x = 3
if x > 5 then
  println("big")
else if x > 1 then
  println("medium")
else
  println("small")
end
`
	expectOutput(t, source, "medium")
}

func TestWhileLoop(t *testing.T) {
	source := `
let i = 0
let sum = 0
while i < 5 do
  sum = sum + i
  i = i + 1
end
println(to_string(sum))
`
	expectOutput(t, source, "10")
}

func TestBreakStatement(t *testing.T) {
	source := `
let i = 0
while i < 100 do
  if i == 3 then
    break
  end
  i = i + 1
end
println(to_string(i))
`
	expectOutput(t, source, "3")
}

func TestContinueSkipsPrint(t *testing.T) {
	source := `
for i in range(5) do
  if i == 2 then continue end
  println(to_string(i))
end
`
	expectOutput(t, source, "0\n1\n3\n4")
}

func TestFunctionCallAndRecursion(t *testing.T) {
	source := `
func fac(n)
  if n <= 1 then
    return 1
  end
  return n * fac(n - 1)
end
println(to_string(fac(5)))
`
	expectOutput(t, source, "120")
}

func TestClosureCapturesByReference(t *testing.T) {
	source := `
func make()
  let c = 0
  func inc()
    c = c + 1
    return c
  end
  return inc
end
let f = make()
println(to_string(f()))
println(to_string(f()))
`
	expectOutput(t, source, "1\n2")
}

func TestFunctionNameIsConstant(t *testing.T) {
	source := `
func f()
  return 1
end
f = 2
`
	expectError(t, source, "Cannot reassign constant")
}

func TestTryCatchBindsMessage(t *testing.T) {
	source := `
try
  let x = 1 / 0
catch err
  println("caught: " + err)
end
`
	out, err := runSource(t, source)
	if err != nil {
		t.Fatalf("unexpected top-level error: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "caught:") {
		t.Errorf("expected output starting with 'caught:', got %q", out)
	}
}

func TestTryDoesNotCatchReturn(t *testing.T) {
	source := `
func f()
  try
    return 1
  catch err
    return 2
  end
  return 3
end
println(to_string(f()))
`
	expectOutput(t, source, "1")
}

func TestTryDoesNotCatchBreak(t *testing.T) {
	source := `
let i = 0
while i < 3 do
  try
    break
  catch err
    println("should not run")
  end
  i = i + 1
end
println(to_string(i))
`
	expectOutput(t, source, "0")
}

func TestArrayAliasing(t *testing.T) {
	source := `
let a = [1, 2, 3]
let b = a
b[0] = 99
println(to_string(a[0]))
`
	expectOutput(t, source, "99")
}

func TestArrayIndexOutOfBounds(t *testing.T) {
	source := `
let a = [1, 2]
println(to_string(a[5]))
`
	expectError(t, source, "out of range")
}

func TestTruthiness(t *testing.T) {
	expectOutput(t, `if nil then println("t") else println("f") end`, "f")
	expectOutput(t, `if false then println("t") else println("f") end`, "f")
	expectOutput(t, `if 0 then println("t") else println("f") end`, "f")
	expectOutput(t, `if "" then println("t") else println("f") end`, "f")
	expectOutput(t, `if [] then println("t") else println("f") end`, "t")
	expectOutput(t, `if "0" then println("t") else println("f") end`, "t")
}

func TestStringConcatenationCoercion(t *testing.T) {
	expectOutput(t, `println("n=" + to_string(5))`, "n=5")
}

func TestStringIndexing(t *testing.T) {
	source := `
let s = "hello"
println(s[0])
println(s[4])
`
	expectOutput(t, source, "h\no")
}

func TestStepBudgetExceeded(t *testing.T) {
	l := lexer.New(`
while true do
end
`, "test.lux")
	tokens, lexDiags := l.Tokenize()
	if len(lexDiags) > 0 {
		t.Fatalf("unexpected lex diagnostics: %v", lexDiags)
	}
	p := parser.New(tokens)
	file, parseDiags := p.ParseFile()
	if len(parseDiags) > 0 {
		t.Fatalf("unexpected parse diagnostics: %v", parseDiags)
	}

	output := NewOutputBuffer()
	global := NewEnvironment(nil)
	InstallBuiltins(global, stdlib.New(output))
	eval := NewEvaluator(output, WithGlobalEnv(global), WithStepBudget(1000))

	err := eval.Run("test.lux", file)
	if err == nil {
		t.Fatal("expected step budget error")
	}
	if !strings.Contains(err.Error(), "execution limit exceeded") {
		t.Errorf("expected execution limit error, got: %v", err)
	}
}

func TestShortCircuitOr(t *testing.T) {
	source := `
let calls = 0
func sideEffect()
  calls = calls + 1
  return true
end
let r = true or sideEffect()
println(to_string(calls))
`
	expectOutput(t, source, "0")
}

func TestShortCircuitAnd(t *testing.T) {
	source := `
let calls = 0
func sideEffect()
  calls = calls + 1
  return true
end
let r = false and sideEffect()
println(to_string(calls))
`
	expectOutput(t, source, "0")
}
