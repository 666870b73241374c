// Package ast defines the abstract syntax tree for lux source.
package ast

import (
	"github.com/Luxbin-labs/luxbin-lang/internal/span"
	"github.com/Luxbin-labs/luxbin-lang/internal/token"
)

// ============================================================
// Node interfaces
// ============================================================

// Node is the interface implemented by all AST nodes.
type Node interface {
	nodeNode()
	GetSpan() span.Span
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// ============================================================
// Base types (embedded to provide common fields)
// ============================================================

// NodeBase provides the common Span field for all AST nodes.
type NodeBase struct {
	Span span.Span
}

func (n NodeBase) nodeNode()          {}
func (n NodeBase) GetSpan() span.Span { return n.Span }

// ExprBase is embedded by all expression nodes.
type ExprBase struct{ NodeBase }

func (ExprBase) exprNode() {}

// StmtBase is embedded by all statement nodes.
type StmtBase struct{ NodeBase }

func (StmtBase) stmtNode() {}

// ============================================================
// File (top-level AST root)
// ============================================================

// File represents the entire source file.
type File struct {
	NodeBase
	Body []Node // top-level statements and declarations
}

// ============================================================
// Expressions
// ============================================================

// IdentExpr represents an identifier reference.
type IdentExpr struct {
	ExprBase
	Name string
}

// NumberLiteral represents a numeric literal. IsFloat records whether the
// source token contained a decimal point; the runtime number domain itself
// is a single float64, so this only influences surface round-tripping.
type NumberLiteral struct {
	ExprBase
	Value   float64
	IsFloat bool
}

// StringLiteral represents a string literal.
type StringLiteral struct {
	ExprBase
	Value string
}

// BoolLiteral represents true or false.
type BoolLiteral struct {
	ExprBase
	Value bool
}

// NilLiteral represents nil.
type NilLiteral struct {
	ExprBase
}

// UnaryExpr represents a unary operation: -x, not x.
type UnaryExpr struct {
	ExprBase
	Op      token.Kind
	Operand Expr
}

// BinaryExpr represents a binary operation: a + b, x == y, a and b.
type BinaryExpr struct {
	ExprBase
	Op    token.Kind
	Left  Expr
	Right Expr
}

// CallExpr represents a function call: f(a, b). Calls are only ever made
// against a bare name — the callee is never a general expression.
type CallExpr struct {
	ExprBase
	Callee string
	Args   []Expr
}

// IndexExpr represents indexing: a[i].
type IndexExpr struct {
	ExprBase
	Object Expr
	Index  Expr
}

// ArrayLiteral represents an array literal: [a, b, c].
type ArrayLiteral struct {
	ExprBase
	Elements []Expr
}

// ============================================================
// Statements
// ============================================================

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	StmtBase
	Expr Expr
}

// AssignStmt represents a plain assignment: target = value.
type AssignStmt struct {
	StmtBase
	Target string
	Value  Expr
}

// IndexAssignStmt represents an indexed assignment: target[index] = value.
type IndexAssignStmt struct {
	StmtBase
	Target string
	Index  Expr
	Value  Expr
}

// VarDeclStmt represents a variable declaration: let x = expr / const x = expr.
// Type is the optional (ignored) type annotation's name, empty if absent.
type VarDeclStmt struct {
	StmtBase
	Name    string
	Type    string
	IsConst bool
	Init    Expr // may be nil if no initializer (only valid for let)
}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	StmtBase
	Value Expr // may be nil
}

// BreakStmt represents a break statement.
type BreakStmt struct {
	StmtBase
}

// ContinueStmt represents a continue statement.
type ContinueStmt struct {
	StmtBase
}

// BlockStmt represents a sequence of statements delimited by then/do/end.
type BlockStmt struct {
	StmtBase
	Stmts []Node
}

// IfStmt represents an if/else-if/else chain.
type IfStmt struct {
	StmtBase
	Condition Expr
	Body      *BlockStmt
	ElseIfs   []ElseIfClause
	ElseBody  *BlockStmt // may be nil
}

// ElseIfClause represents a single "else if" branch.
type ElseIfClause struct {
	Span      span.Span
	Condition Expr
	Body      *BlockStmt
}

// WhileStmt represents a while loop.
type WhileStmt struct {
	StmtBase
	Condition Expr
	Body      *BlockStmt
}

// ForInStmt represents a for-in loop over an array: for x in expr do ... end.
type ForInStmt struct {
	StmtBase
	VarName  string
	Iterable Expr
	Body     *BlockStmt
}

// Param is a single function parameter with an optional (ignored) type
// annotation.
type Param struct {
	Name string
	Type string
}

// FuncDecl represents a function declaration: func name(params) ... end.
// ReturnType is the optional (ignored) annotation's name, empty if absent.
type FuncDecl struct {
	StmtBase
	Name       string
	Params     []Param
	ReturnType string
	Body       *BlockStmt
}

// ImportStmt represents a module import: import "path".
type ImportStmt struct {
	StmtBase
	Path string
}

// TryStmt represents a try/catch block.
type TryStmt struct {
	StmtBase
	Body       *BlockStmt
	CatchParam string
	CatchBody  *BlockStmt
}
