package runtime

import (
	"fmt"
	"math"
	"strings"

	"github.com/Luxbin-labs/luxbin-lang/internal/ast"
	"github.com/Luxbin-labs/luxbin-lang/internal/span"
	"github.com/Luxbin-labs/luxbin-lang/internal/token"
)

// ============================================================
// Control flow signals
// ============================================================

// ExecSignal represents a control flow signal from statement execution.
type ExecSignal int

const (
	SigNone     ExecSignal = iota
	SigReturn              // return from function
	SigBreak               // break from loop
	SigContinue            // continue in loop
)

// ExecResult carries a control flow signal and an optional value (for return).
type ExecResult struct {
	Signal ExecSignal
	Value  Value
}

var resultNone = ExecResult{Signal: SigNone}

// DefaultStepBudget is the number of evaluator steps (statement entries,
// expression entries, loop iterations) a single evaluation may perform
// before it is aborted with an execution-limit error.
const DefaultStepBudget = 10_000_000

// ============================================================
// Runtime error
// ============================================================

// CallFrame records one user-function invocation for error attribution:
// the function's declared name and the call site's file/line/column.
type CallFrame struct {
	Name string
	File string
	Span span.Span
}

// RuntimeError is every error the evaluator itself raises (as opposed to
// lexer/parser diagnostics, which use internal/diag). It formats to
// `KIND: message at FILE:LINE:COLUMN` followed by one `  at NAME
// (FILE:LINE:COLUMN)` line per call frame active when it was raised.
type RuntimeError struct {
	Kind    string
	Message string
	File    string
	Span    span.Span
	Frames  []CallFrame
}

func (e *RuntimeError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s at %s:%d:%d", e.Kind, e.Message, e.File, e.Span.Start.Line, e.Span.Start.Column)
	for i := len(e.Frames) - 1; i >= 0; i-- {
		f := e.Frames[i]
		fmt.Fprintf(&sb, "\n  at %s (%s:%d:%d)", f.Name, f.File, f.Span.Start.Line, f.Span.Start.Column)
	}
	return sb.String()
}

func (i *Evaluator) runtimeErr(s span.Span, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{
		Kind:    "RuntimeError",
		Message: fmt.Sprintf(format, args...),
		File:    i.file,
		Span:    s,
		Frames:  append([]CallFrame(nil), i.frames...),
	}
}

// ============================================================
// Evaluator
// ============================================================

// Evaluator walks the AST and executes it against an environment chain.
type Evaluator struct {
	global *Environment
	env    *Environment
	output *OutputBuffer

	file   string
	frames []CallFrame

	steps      int
	stepBudget int

	importFn func(path, fromFile string) error
}

// Option configures an Evaluator at construction time.
type Option func(*Evaluator)

// WithGlobalEnv preconfigures the evaluator's global environment, e.g. one
// already populated with built-ins via InstallBuiltins.
func WithGlobalEnv(env *Environment) Option {
	return func(e *Evaluator) {
		e.global = env
		e.env = env
	}
}

// WithStepBudget overrides the default step budget.
func WithStepBudget(budget int) Option {
	return func(e *Evaluator) { e.stepBudget = budget }
}

// WithImportFn installs the callback invoked for `import "path"`
// statements. Without one, import statements fail with a runtime error.
func WithImportFn(fn func(path, fromFile string) error) Option {
	return func(e *Evaluator) { e.importFn = fn }
}

// NewEvaluator creates an evaluator writing to output, configured by opts.
func NewEvaluator(output *OutputBuffer, opts ...Option) *Evaluator {
	global := NewEnvironment(nil)
	e := &Evaluator{
		global:     global,
		env:        global,
		output:     output,
		stepBudget: DefaultStepBudget,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Global returns the evaluator's top-level environment.
func (i *Evaluator) Global() *Environment { return i.global }

// Env returns the current environment (useful for REPL incremental eval).
func (i *Evaluator) Env() *Environment { return i.env }

// Steps returns the number of steps consumed so far.
func (i *Evaluator) Steps() int { return i.steps }

// Run executes an entire parsed file under the given file label.
func (i *Evaluator) Run(fileName string, file *ast.File) error {
	i.file = fileName
	for _, node := range file.Body {
		result, err := i.execStmt(node)
		if err != nil {
			return err
		}
		switch result.Signal {
		case SigReturn:
			return i.runtimeErr(node.GetSpan(), "return outside of function")
		case SigBreak:
			return i.runtimeErr(node.GetSpan(), "break outside of loop")
		case SigContinue:
			return i.runtimeErr(node.GetSpan(), "continue outside of loop")
		}
	}
	return nil
}

func (i *Evaluator) step(s span.Span) error {
	i.steps++
	if i.steps > i.stepBudget {
		return i.runtimeErr(s, "execution limit exceeded (%d steps)", i.stepBudget)
	}
	return nil
}

// ============================================================
// Statement execution
// ============================================================

func (i *Evaluator) execStmt(node ast.Node) (ExecResult, error) {
	if err := i.step(node.GetSpan()); err != nil {
		return resultNone, err
	}

	switch s := node.(type) {
	case *ast.ExprStmt:
		_, err := i.evalExpr(s.Expr)
		return resultNone, err

	case *ast.VarDeclStmt:
		return i.execVarDecl(s)

	case *ast.AssignStmt:
		return i.execAssign(s)

	case *ast.IndexAssignStmt:
		return i.execIndexAssign(s)

	case *ast.ReturnStmt:
		var val Value = NilVal{}
		if s.Value != nil {
			v, err := i.evalExpr(s.Value)
			if err != nil {
				return resultNone, err
			}
			val = v
		}
		return ExecResult{Signal: SigReturn, Value: val}, nil

	case *ast.BreakStmt:
		return ExecResult{Signal: SigBreak}, nil

	case *ast.ContinueStmt:
		return ExecResult{Signal: SigContinue}, nil

	case *ast.IfStmt:
		return i.execIf(s)

	case *ast.WhileStmt:
		return i.execWhile(s)

	case *ast.ForInStmt:
		return i.execForIn(s)

	case *ast.FuncDecl:
		return i.execFuncDecl(s)

	case *ast.ImportStmt:
		return i.execImport(s)

	case *ast.TryStmt:
		return i.execTry(s)

	case *ast.BlockStmt:
		return i.execBlock(s, NewEnvironment(i.env))

	default:
		return resultNone, i.runtimeErr(node.GetSpan(), "unhandled statement type: %T", node)
	}
}

func (i *Evaluator) execVarDecl(s *ast.VarDeclStmt) (ExecResult, error) {
	var val Value = NilVal{}
	if s.Init != nil {
		v, err := i.evalExpr(s.Init)
		if err != nil {
			return resultNone, err
		}
		val = v
	}
	i.env.Define(s.Name, val, s.IsConst)
	return resultNone, nil
}

func (i *Evaluator) execAssign(s *ast.AssignStmt) (ExecResult, error) {
	val, err := i.evalExpr(s.Value)
	if err != nil {
		return resultNone, err
	}
	if err := i.env.Set(s.Target, val); err != nil {
		return resultNone, i.runtimeErr(s.GetSpan(), "%s", err)
	}
	return resultNone, nil
}

func (i *Evaluator) execIndexAssign(s *ast.IndexAssignStmt) (ExecResult, error) {
	target, ok := i.env.Get(s.Target)
	if !ok {
		return resultNone, i.runtimeErr(s.GetSpan(), "undefined variable '%s'", s.Target)
	}
	arr, ok := target.(*ArrayVal)
	if !ok {
		return resultNone, i.runtimeErr(s.GetSpan(), "cannot index-assign value of type '%s'", target.TypeName())
	}
	idxVal, err := i.evalExpr(s.Index)
	if err != nil {
		return resultNone, err
	}
	idxF, ok := ToFloat64(idxVal)
	if !ok {
		return resultNone, i.runtimeErr(s.GetSpan(), "array index must be a number")
	}
	idx := int(math.Trunc(idxF))
	if idx < 0 || idx >= len(arr.Elements) {
		return resultNone, i.runtimeErr(s.GetSpan(), "array index %d out of range (length %d)", idx, len(arr.Elements))
	}
	val, err := i.evalExpr(s.Value)
	if err != nil {
		return resultNone, err
	}
	arr.Elements[idx] = val
	return resultNone, nil
}

func (i *Evaluator) execIf(s *ast.IfStmt) (ExecResult, error) {
	cond, err := i.evalExpr(s.Condition)
	if err != nil {
		return resultNone, err
	}
	if IsTruthy(cond) {
		return i.execBlock(s.Body, NewEnvironment(i.env))
	}
	for _, elseIf := range s.ElseIfs {
		cond, err := i.evalExpr(elseIf.Condition)
		if err != nil {
			return resultNone, err
		}
		if IsTruthy(cond) {
			return i.execBlock(elseIf.Body, NewEnvironment(i.env))
		}
	}
	if s.ElseBody != nil {
		return i.execBlock(s.ElseBody, NewEnvironment(i.env))
	}
	return resultNone, nil
}

func (i *Evaluator) execWhile(s *ast.WhileStmt) (ExecResult, error) {
	for {
		if err := i.step(s.GetSpan()); err != nil {
			return resultNone, err
		}
		cond, err := i.evalExpr(s.Condition)
		if err != nil {
			return resultNone, err
		}
		if !IsTruthy(cond) {
			break
		}
		result, err := i.execBlock(s.Body, NewEnvironment(i.env))
		if err != nil {
			return resultNone, err
		}
		if result.Signal == SigBreak {
			break
		}
		if result.Signal == SigReturn {
			return result, nil
		}
	}
	return resultNone, nil
}

func (i *Evaluator) execForIn(s *ast.ForInStmt) (ExecResult, error) {
	iterable, err := i.evalExpr(s.Iterable)
	if err != nil {
		return resultNone, err
	}
	arr, ok := iterable.(*ArrayVal)
	if !ok {
		return resultNone, i.runtimeErr(s.GetSpan(), "for-in requires an array, got '%s'", iterable.TypeName())
	}

	for _, elem := range arr.Elements {
		if err := i.step(s.GetSpan()); err != nil {
			return resultNone, err
		}
		loopEnv := NewEnvironment(i.env)
		loopEnv.Define(s.VarName, elem, false)

		result, err := i.execBlock(s.Body, loopEnv)
		if err != nil {
			return resultNone, err
		}
		if result.Signal == SigBreak {
			break
		}
		if result.Signal == SigReturn {
			return result, nil
		}
	}
	return resultNone, nil
}

func (i *Evaluator) execBlock(block *ast.BlockStmt, blockEnv *Environment) (ExecResult, error) {
	prevEnv := i.env
	i.env = blockEnv
	defer func() { i.env = prevEnv }()

	for _, node := range block.Stmts {
		result, err := i.execStmt(node)
		if err != nil {
			return resultNone, err
		}
		if result.Signal != SigNone {
			return result, nil
		}
	}
	return resultNone, nil
}

func (i *Evaluator) execFuncDecl(s *ast.FuncDecl) (ExecResult, error) {
	params := make([]string, len(s.Params))
	for idx, p := range s.Params {
		params[idx] = p.Name
	}
	fn := &FunctionVal{
		Name:    s.Name,
		Params:  params,
		Body:    s.Body,
		Closure: i.env,
	}
	i.env.Define(s.Name, fn, true)
	return resultNone, nil
}

func (i *Evaluator) execImport(s *ast.ImportStmt) (ExecResult, error) {
	if i.importFn == nil {
		return resultNone, i.runtimeErr(s.GetSpan(), "import is not supported in this context")
	}
	if err := i.importFn(s.Path, i.file); err != nil {
		return resultNone, i.runtimeErr(s.GetSpan(), "%s", err)
	}
	return resultNone, nil
}

func (i *Evaluator) execTry(s *ast.TryStmt) (ExecResult, error) {
	result, err := i.execBlock(s.Body, NewEnvironment(i.env))
	if err == nil {
		return result, nil
	}

	// Control-flow signals never reach this point as errors; only actual
	// evaluation errors do. Bind the plain message text and run the catch
	// body, matching try/catch's "message string, no frame decoration"
	// contract for the value visible to user code.
	if s.CatchBody == nil {
		return resultNone, err
	}
	catchEnv := NewEnvironment(i.env)
	catchEnv.Define(s.CatchParam, StringVal(err.Error()), false)
	if rerr, ok := err.(*RuntimeError); ok {
		catchEnv.Define(s.CatchParam, StringVal(rerr.Message), false)
	}
	return i.execBlock(s.CatchBody, catchEnv)
}

// ============================================================
// Expression evaluation
// ============================================================

func (i *Evaluator) evalExpr(expr ast.Expr) (Value, error) {
	if err := i.step(expr.GetSpan()); err != nil {
		return nil, err
	}

	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return NumberVal(e.Value), nil
	case *ast.StringLiteral:
		return StringVal(e.Value), nil
	case *ast.BoolLiteral:
		return BoolVal(e.Value), nil
	case *ast.NilLiteral:
		return NilVal{}, nil
	case *ast.IdentExpr:
		return i.evalIdent(e)
	case *ast.UnaryExpr:
		return i.evalUnary(e)
	case *ast.BinaryExpr:
		return i.evalBinary(e)
	case *ast.CallExpr:
		return i.evalCall(e)
	case *ast.IndexExpr:
		return i.evalIndex(e)
	case *ast.ArrayLiteral:
		return i.evalArrayLiteral(e)
	default:
		return nil, i.runtimeErr(expr.GetSpan(), "unhandled expression type: %T", expr)
	}
}

func (i *Evaluator) evalIdent(e *ast.IdentExpr) (Value, error) {
	val, ok := i.env.Get(e.Name)
	if !ok {
		return nil, i.runtimeErr(e.GetSpan(), "undefined variable '%s'", e.Name)
	}
	return val, nil
}

func (i *Evaluator) evalUnary(e *ast.UnaryExpr) (Value, error) {
	operand, err := i.evalExpr(e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case token.KW_NOT:
		return BoolVal(!IsTruthy(operand)), nil
	case token.MINUS:
		n, ok := operand.(NumberVal)
		if !ok {
			return nil, i.runtimeErr(e.GetSpan(), "cannot negate value of type '%s'", operand.TypeName())
		}
		return -n, nil
	default:
		return nil, i.runtimeErr(e.GetSpan(), "unknown unary operator: %s", e.Op)
	}
}

func (i *Evaluator) evalBinary(e *ast.BinaryExpr) (Value, error) {
	if e.Op == token.KW_AND || e.Op == token.KW_OR {
		return i.evalLogical(e)
	}

	left, err := i.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}

	if e.Op == token.PLUS {
		_, leftIsStr := left.(StringVal)
		_, rightIsStr := right.(StringVal)
		if leftIsStr || rightIsStr {
			return StringVal(left.String() + right.String()), nil
		}
	}

	if e.Op == token.EQ {
		return BoolVal(valuesEqual(left, right)), nil
	}
	if e.Op == token.NEQ {
		return BoolVal(!valuesEqual(left, right)), nil
	}

	if e.Op == token.LT || e.Op == token.LTE || e.Op == token.GT || e.Op == token.GTE {
		leftStr, leftIsStr := left.(StringVal)
		rightStr, rightIsStr := right.(StringVal)
		if leftIsStr && rightIsStr {
			return compareStrings(e.Op, string(leftStr), string(rightStr)), nil
		}
	}

	leftF, leftOk := left.(NumberVal)
	rightF, rightOk := right.(NumberVal)
	if !leftOk || !rightOk {
		return nil, i.runtimeErr(e.GetSpan(), "cannot apply '%s' to '%s' and '%s'", e.Op, left.TypeName(), right.TypeName())
	}
	a, b := float64(leftF), float64(rightF)

	switch e.Op {
	case token.PLUS:
		return NumberVal(a + b), nil
	case token.MINUS:
		return NumberVal(a - b), nil
	case token.STAR:
		return NumberVal(a * b), nil
	case token.SLASH:
		if b == 0 {
			return nil, i.runtimeErr(e.GetSpan(), "division by zero")
		}
		return NumberVal(a / b), nil
	case token.PERCENT:
		if b == 0 {
			return nil, i.runtimeErr(e.GetSpan(), "division by zero")
		}
		return NumberVal(math.Mod(a, b)), nil
	case token.CARET:
		return NumberVal(math.Pow(a, b)), nil
	case token.LT:
		return BoolVal(a < b), nil
	case token.LTE:
		return BoolVal(a <= b), nil
	case token.GT:
		return BoolVal(a > b), nil
	case token.GTE:
		return BoolVal(a >= b), nil
	default:
		return nil, i.runtimeErr(e.GetSpan(), "unknown binary operator: %s", e.Op)
	}
}

func compareStrings(op token.Kind, a, b string) BoolVal {
	switch op {
	case token.LT:
		return BoolVal(a < b)
	case token.LTE:
		return BoolVal(a <= b)
	case token.GT:
		return BoolVal(a > b)
	default: // token.GTE
		return BoolVal(a >= b)
	}
}

func (i *Evaluator) evalLogical(e *ast.BinaryExpr) (Value, error) {
	left, err := i.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op == token.KW_OR {
		if IsTruthy(left) {
			return left, nil
		}
		return i.evalExpr(e.Right)
	}
	// KW_AND
	if !IsTruthy(left) {
		return left, nil
	}
	return i.evalExpr(e.Right)
}

func (i *Evaluator) evalArrayLiteral(e *ast.ArrayLiteral) (Value, error) {
	elements := make([]Value, len(e.Elements))
	for idx, elemExpr := range e.Elements {
		val, err := i.evalExpr(elemExpr)
		if err != nil {
			return nil, err
		}
		elements[idx] = val
	}
	return &ArrayVal{Elements: elements}, nil
}

func (i *Evaluator) evalIndex(e *ast.IndexExpr) (Value, error) {
	obj, err := i.evalExpr(e.Object)
	if err != nil {
		return nil, err
	}
	idx, err := i.evalExpr(e.Index)
	if err != nil {
		return nil, err
	}
	idxF, ok := ToFloat64(idx)
	if !ok {
		return nil, i.runtimeErr(e.GetSpan(), "index must be a number")
	}
	n := int(math.Trunc(idxF))

	switch o := obj.(type) {
	case StringVal:
		s := string(o)
		if n < 0 || n >= len(s) {
			return nil, i.runtimeErr(e.GetSpan(), "string index %d out of range (length %d)", n, len(s))
		}
		return StringVal(string(s[n])), nil
	case *ArrayVal:
		if n < 0 || n >= len(o.Elements) {
			return nil, i.runtimeErr(e.GetSpan(), "array index %d out of range (length %d)", n, len(o.Elements))
		}
		return o.Elements[n], nil
	default:
		return nil, i.runtimeErr(e.GetSpan(), "cannot index value of type '%s'", obj.TypeName())
	}
}

// ============================================================
// Calls
// ============================================================

func (i *Evaluator) evalCall(e *ast.CallExpr) (Value, error) {
	callee, ok := i.env.Get(e.Callee)
	if !ok {
		return nil, i.runtimeErr(e.GetSpan(), "undefined function '%s'", e.Callee)
	}

	args := make([]Value, len(e.Args))
	for idx, argExpr := range e.Args {
		val, err := i.evalExpr(argExpr)
		if err != nil {
			return nil, err
		}
		args[idx] = val
	}

	switch fn := callee.(type) {
	case *BuiltinVal:
		val, err := fn.Fn(args, i.env)
		if err != nil {
			return nil, i.runtimeErr(e.GetSpan(), "%s", err)
		}
		return val, nil
	case *FunctionVal:
		return i.callFunc(fn, args, e.GetSpan())
	default:
		return nil, i.runtimeErr(e.GetSpan(), "cannot call value of type '%s'", callee.TypeName())
	}
}

func (i *Evaluator) callFunc(fn *FunctionVal, args []Value, s span.Span) (Value, error) {
	funcEnv := NewEnvironment(fn.Closure)
	for idx, param := range fn.Params {
		var val Value = NilVal{}
		if idx < len(args) {
			val = args[idx]
		}
		funcEnv.Define(param, val, false)
	}

	i.frames = append(i.frames, CallFrame{Name: fn.Name, File: i.file, Span: s})
	result, err := i.execBlock(fn.Body, funcEnv)
	i.frames = i.frames[:len(i.frames)-1]
	if err != nil {
		return nil, err
	}
	if result.Signal == SigReturn {
		return result.Value, nil
	}
	return NilVal{}, nil
}
