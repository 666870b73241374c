// Package parser implements the syntax analysis for lux source.
// It uses Pratt parsing for expressions and recursive descent for statements.
package parser

import (
	"fmt"
	"strconv"

	"github.com/Luxbin-labs/luxbin-lang/internal/ast"
	"github.com/Luxbin-labs/luxbin-lang/internal/diag"
	"github.com/Luxbin-labs/luxbin-lang/internal/span"
	"github.com/Luxbin-labs/luxbin-lang/internal/token"
)

// ============================================================
// Binding power (precedence) levels
// ============================================================

const (
	bpNone     = 0
	bpOr       = 10 // or
	bpAnd      = 20 // and
	bpEquality = 30 // == !=
	bpCompare  = 40 // < <= > >=
	bpAdditive = 50 // + -
	bpMultiply = 60 // * / %
	bpPower    = 70 // ^ (right-associative)
	bpUnary    = 80 // - not
	bpPostfix  = 90 // []
)

// infixBP returns the left binding power for an infix/postfix operator.
func infixBP(kind token.Kind) int {
	switch kind {
	case token.KW_OR:
		return bpOr
	case token.KW_AND:
		return bpAnd
	case token.EQ, token.NEQ:
		return bpEquality
	case token.LT, token.LTE, token.GT, token.GTE:
		return bpCompare
	case token.PLUS, token.MINUS:
		return bpAdditive
	case token.STAR, token.SLASH, token.PERCENT:
		return bpMultiply
	case token.CARET:
		return bpPower
	case token.LBRACKET:
		return bpPostfix
	default:
		return bpNone
	}
}

// ============================================================
// Parser
// ============================================================

// Parser performs syntax analysis on a stream of tokens.
type Parser struct {
	tokens []token.Token
	pos    int
	diags  []diag.Diagnostic
}

// New creates a new parser from a token slice.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, pos: 0}
}

// ParseFile parses the entire file and returns the AST root and diagnostics.
func (p *Parser) ParseFile() (*ast.File, []diag.Diagnostic) {
	file := &ast.File{}
	startPos := p.peek().Span.Start

	p.skipSep()
	for !p.isAtEnd() {
		node := p.parseStmt()
		if node != nil {
			file.Body = append(file.Body, node)
		}
		p.skipSep()
	}

	endPos := p.peek().Span.End
	file.Span = span.Span{Start: startPos, End: endPos}
	return file, p.diags
}

// ---- navigation helpers ----

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[idx]
}

func (p *Parser) peekKind() token.Kind {
	return p.peek().Kind
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peekKind() == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			return true
		}
	}
	return false
}

func (p *Parser) expect(kind token.Kind) (token.Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	tok := p.peek()
	p.error("E2001", tok.Span, fmt.Sprintf("expected '%s', got '%s'", kind, tok.Kind))
	return tok, false
}

func (p *Parser) isAtEnd() bool {
	return p.peekKind() == token.EOF
}

// skipSep skips NEWLINE tokens (the sole soft statement separator).
func (p *Parser) skipSep() {
	for p.check(token.NEWLINE) {
		p.advance()
	}
}

// skipNewlines skips NEWLINE tokens only; kept distinct from skipSep for
// call sites that read better naming a continuation rather than a separator.
func (p *Parser) skipNewlines() {
	for p.check(token.NEWLINE) {
		p.advance()
	}
}

func (p *Parser) error(code string, s span.Span, msg string) {
	p.diags = append(p.diags, diag.Errorf(code, s, "%s", msg))
}

// ============================================================
// Error recovery
// ============================================================

// synchronize skips tokens until a likely statement boundary.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.check(token.NEWLINE) {
			p.advance()
			return
		}
		if p.match(token.KW_END, token.KW_ELSE, token.KW_CATCH) {
			return
		}
		if p.match(token.KW_IF, token.KW_WHILE, token.KW_FOR, token.KW_FUNC,
			token.KW_LET, token.KW_CONST, token.KW_RETURN, token.KW_BREAK,
			token.KW_CONTINUE, token.KW_IMPORT, token.KW_TRY) {
			return
		}
		p.advance()
	}
}

// ============================================================
// Statement parsing
// ============================================================

func (p *Parser) parseStmt() ast.Stmt {
	switch p.peekKind() {
	case token.KW_IF:
		return p.parseIfStmt()
	case token.KW_WHILE:
		return p.parseWhileStmt()
	case token.KW_FOR:
		return p.parseForInStmt()
	case token.KW_FUNC:
		return p.parseFuncDecl()
	case token.KW_RETURN:
		return p.parseReturnStmt()
	case token.KW_BREAK:
		return p.parseBreakStmt()
	case token.KW_CONTINUE:
		return p.parseContinueStmt()
	case token.KW_LET, token.KW_CONST:
		return p.parseVarDecl()
	case token.KW_IMPORT:
		return p.parseImportStmt()
	case token.KW_TRY:
		return p.parseTryStmt()
	default:
		return p.parseSimpleStmt()
	}
}

// parseBlockUntil reads statements until the next token is one of stops
// (not consumed) or input ends.
func (p *Parser) parseBlockUntil(stops ...token.Kind) *ast.BlockStmt {
	start := p.peek()
	block := &ast.BlockStmt{}

	p.skipSep()
	for !p.match(stops...) && !p.isAtEnd() {
		node := p.parseStmt()
		if node != nil {
			block.Stmts = append(block.Stmts, node)
		}
		p.skipSep()
	}

	block.Span = p.makeSpan(start.Span.Start)
	return block
}

// parseIfStmt parses: if expr then block (else if expr then block)* (else block)? end
func (p *Parser) parseIfStmt() *ast.IfStmt {
	start := p.advance() // consume 'if'
	stmt := &ast.IfStmt{}

	stmt.Condition = p.parseExpr(bpNone)
	p.expect(token.KW_THEN)
	stmt.Body = p.parseBlockUntil(token.KW_ELSE, token.KW_END)

	for p.check(token.KW_ELSE) {
		p.advance() // consume 'else'
		if p.check(token.KW_IF) {
			elseIfStart := p.advance() // consume 'if'
			clause := ast.ElseIfClause{}
			clause.Condition = p.parseExpr(bpNone)
			p.expect(token.KW_THEN)
			clause.Body = p.parseBlockUntil(token.KW_ELSE, token.KW_END)
			clause.Span = p.makeSpan(elseIfStart.Span.Start)
			stmt.ElseIfs = append(stmt.ElseIfs, clause)
		} else {
			stmt.ElseBody = p.parseBlockUntil(token.KW_END)
			break
		}
	}

	p.expect(token.KW_END)
	stmt.Span = p.makeSpan(start.Span.Start)
	return stmt
}

// parseWhileStmt parses: while expr do block end
func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	start := p.advance() // consume 'while'
	stmt := &ast.WhileStmt{}

	stmt.Condition = p.parseExpr(bpNone)
	p.expect(token.KW_DO)
	stmt.Body = p.parseBlockUntil(token.KW_END)
	p.expect(token.KW_END)

	stmt.Span = p.makeSpan(start.Span.Start)
	return stmt
}

// parseForInStmt parses: for ident in expr do block end
func (p *Parser) parseForInStmt() *ast.ForInStmt {
	start := p.advance() // consume 'for'
	stmt := &ast.ForInStmt{}

	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		p.synchronize()
		stmt.Span = p.makeSpan(start.Span.Start)
		return stmt
	}
	stmt.VarName = nameTok.Lexeme

	p.expect(token.KW_IN)
	stmt.Iterable = p.parseExpr(bpNone)
	p.expect(token.KW_DO)
	stmt.Body = p.parseBlockUntil(token.KW_END)
	p.expect(token.KW_END)

	stmt.Span = p.makeSpan(start.Span.Start)
	return stmt
}

// parseReturnStmt parses: return [expr]
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.advance() // consume 'return'
	stmt := &ast.ReturnStmt{}

	if !p.match(token.NEWLINE, token.KW_END, token.KW_ELSE, token.KW_CATCH, token.EOF) {
		stmt.Value = p.parseExpr(bpNone)
	}

	stmt.Span = p.makeSpan(start.Span.Start)
	return stmt
}

func (p *Parser) parseBreakStmt() *ast.BreakStmt {
	start := p.advance()
	return &ast.BreakStmt{StmtBase: makeStmtBase(start.Span.Start, p.prevEnd())}
}

func (p *Parser) parseContinueStmt() *ast.ContinueStmt {
	start := p.advance()
	return &ast.ContinueStmt{StmtBase: makeStmtBase(start.Span.Start, p.prevEnd())}
}

// parseVarDecl parses: (let | const) IDENT [: TYPE] [ = expr ]
func (p *Parser) parseVarDecl() *ast.VarDeclStmt {
	start := p.advance() // consume 'let' or 'const'
	isConst := start.Kind == token.KW_CONST
	stmt := &ast.VarDeclStmt{IsConst: isConst}

	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		p.synchronize()
		stmt.Span = p.makeSpan(start.Span.Start)
		return stmt
	}
	stmt.Name = nameTok.Lexeme

	if p.check(token.COLON) {
		p.advance()
		if typeTok, ok := p.expect(token.IDENT); ok {
			stmt.Type = typeTok.Lexeme
		}
	}

	if p.check(token.ASSIGN) {
		p.advance()
		stmt.Init = p.parseExpr(bpNone)
	} else if isConst {
		p.error("E2004", p.peek().Span, "const declaration requires an initializer")
	}

	stmt.Span = p.makeSpan(start.Span.Start)
	return stmt
}

// parseImportStmt parses: import "path"
func (p *Parser) parseImportStmt() *ast.ImportStmt {
	start := p.advance() // consume 'import'
	stmt := &ast.ImportStmt{}

	if pathTok, ok := p.expect(token.STRING); ok {
		stmt.Path = pathTok.Lexeme
	} else {
		p.synchronize()
	}

	stmt.Span = p.makeSpan(start.Span.Start)
	return stmt
}

// parseTryStmt parses: try block catch ident block end
func (p *Parser) parseTryStmt() *ast.TryStmt {
	start := p.advance() // consume 'try'
	stmt := &ast.TryStmt{}

	stmt.Body = p.parseBlockUntil(token.KW_CATCH)
	p.expect(token.KW_CATCH)
	if nameTok, ok := p.expect(token.IDENT); ok {
		stmt.CatchParam = nameTok.Lexeme
	}
	stmt.CatchBody = p.parseBlockUntil(token.KW_END)
	p.expect(token.KW_END)

	stmt.Span = p.makeSpan(start.Span.Start)
	return stmt
}

// parseSimpleStmt parses an expression statement, a plain assignment, or an
// indexed assignment. Index assignment is disambiguated from a plain indexed
// expression by speculatively parsing "ident [ expr ]" and committing only
// if '=' follows; otherwise the parser rewinds and reparses as an expression.
func (p *Parser) parseSimpleStmt() ast.Stmt {
	if p.check(token.IDENT) {
		identTok := p.peek()

		if p.peekAt(1).Kind == token.ASSIGN {
			p.advance() // ident
			p.advance() // '='
			value := p.parseExpr(bpNone)
			return &ast.AssignStmt{
				StmtBase: makeStmtBase(identTok.Span.Start, p.prevEnd()),
				Target:   identTok.Lexeme,
				Value:    value,
			}
		}

		if p.peekAt(1).Kind == token.LBRACKET {
			saved := p.pos
			p.advance() // ident
			p.advance() // '['
			index := p.parseExpr(bpNone)
			if p.check(token.RBRACKET) {
				p.advance() // ']'
				if p.check(token.ASSIGN) {
					p.advance()
					value := p.parseExpr(bpNone)
					return &ast.IndexAssignStmt{
						StmtBase: makeStmtBase(identTok.Span.Start, p.prevEnd()),
						Target:   identTok.Lexeme,
						Index:    index,
						Value:    value,
					}
				}
			}
			p.pos = saved // not an index-assignment; rewind and reparse as an expression
		}
	}

	expr := p.parseExpr(bpNone)
	if expr == nil {
		tok := p.peek()
		p.error("E2002", tok.Span, fmt.Sprintf("unexpected token: '%s'", tok.Lexeme))
		p.synchronize()
		return &ast.ExprStmt{StmtBase: makeStmtBase(tok.Span.Start, tok.Span.End)}
	}

	return &ast.ExprStmt{
		StmtBase: makeStmtBase(expr.GetSpan().Start, expr.GetSpan().End),
		Expr:     expr,
	}
}

// ============================================================
// Function declaration parsing
// ============================================================

// parseFuncDecl parses: func IDENT ( params ) [: TYPE] block end
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	start := p.advance() // consume 'func'
	decl := &ast.FuncDecl{}

	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		p.synchronize()
		decl.Span = p.makeSpan(start.Span.Start)
		return decl
	}
	decl.Name = nameTok.Lexeme

	decl.Params = p.parseParamList()

	if p.check(token.COLON) {
		p.advance()
		if typeTok, ok := p.expect(token.IDENT); ok {
			decl.ReturnType = typeTok.Lexeme
		}
	}

	decl.Body = p.parseBlockUntil(token.KW_END)
	p.expect(token.KW_END)
	decl.Span = p.makeSpan(start.Span.Start)
	return decl
}

// parseParamList parses: ( [ ident [: type] (, ident [: type])* ] )
func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param

	if _, ok := p.expect(token.LPAREN); !ok {
		return params
	}

	if !p.check(token.RPAREN) {
		params = append(params, p.parseParam())
		for p.check(token.COMMA) {
			p.advance() // consume ','
			p.skipNewlines()
			params = append(params, p.parseParam())
		}
	}

	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseParam() ast.Param {
	nameTok, ok := p.expect(token.IDENT)
	param := ast.Param{}
	if ok {
		param.Name = nameTok.Lexeme
	}
	if p.check(token.COLON) {
		p.advance()
		if typeTok, ok := p.expect(token.IDENT); ok {
			param.Type = typeTok.Lexeme
		}
	}
	return param
}

// ============================================================
// Expression parsing (Pratt / precedence climbing)
// ============================================================

// parseExpr parses an expression with the given minimum binding power.
func (p *Parser) parseExpr(minBP int) ast.Expr {
	left := p.nud()
	if left == nil {
		return nil
	}

	for {
		kind := p.peekKind()
		bp := infixBP(kind)
		if bp <= minBP {
			break
		}
		left = p.led(left)
	}

	return left
}

// nud handles prefix (null denotation) parsing.
func (p *Parser) nud() ast.Expr {
	tok := p.peek()

	switch tok.Kind {
	case token.NUMBER:
		p.advance()
		val, _ := strconv.ParseFloat(tok.Lexeme, 64)
		return &ast.NumberLiteral{
			ExprBase: makeExprBase(tok.Span.Start, tok.Span.End),
			Value:    val,
			IsFloat:  tok.IsFloat,
		}

	case token.STRING:
		p.advance()
		return &ast.StringLiteral{
			ExprBase: makeExprBase(tok.Span.Start, tok.Span.End),
			Value:    tok.Lexeme,
		}

	case token.KW_TRUE:
		p.advance()
		return &ast.BoolLiteral{ExprBase: makeExprBase(tok.Span.Start, tok.Span.End), Value: true}

	case token.KW_FALSE:
		p.advance()
		return &ast.BoolLiteral{ExprBase: makeExprBase(tok.Span.Start, tok.Span.End), Value: false}

	case token.KW_NIL:
		p.advance()
		return &ast.NilLiteral{ExprBase: makeExprBase(tok.Span.Start, tok.Span.End)}

	case token.IDENT:
		p.advance()
		if p.check(token.LPAREN) {
			return p.parseCallExpr(tok)
		}
		return &ast.IdentExpr{
			ExprBase: makeExprBase(tok.Span.Start, tok.Span.End),
			Name:     tok.Lexeme,
		}

	case token.LPAREN:
		p.advance() // consume '('
		p.skipNewlines()
		expr := p.parseExpr(bpNone)
		p.skipNewlines()
		p.expect(token.RPAREN)
		return expr

	case token.MINUS:
		p.advance()
		p.skipNewlines()
		operand := p.parseExpr(bpUnary)
		return &ast.UnaryExpr{
			ExprBase: makeExprBase(tok.Span.Start, operand.GetSpan().End),
			Op:       token.MINUS,
			Operand:  operand,
		}

	case token.KW_NOT:
		p.advance()
		p.skipNewlines()
		operand := p.parseExpr(bpUnary)
		return &ast.UnaryExpr{
			ExprBase: makeExprBase(tok.Span.Start, operand.GetSpan().End),
			Op:       token.KW_NOT,
			Operand:  operand,
		}

	case token.LBRACKET:
		return p.parseArrayLiteral()

	default:
		return nil
	}
}

// led handles infix/postfix (left denotation) parsing.
func (p *Parser) led(left ast.Expr) ast.Expr {
	tok := p.peek()

	switch tok.Kind {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.EQ, token.NEQ, token.LT, token.LTE, token.GT, token.GTE,
		token.KW_AND, token.KW_OR:
		bp := infixBP(tok.Kind)
		p.advance()
		p.skipNewlines() // allow continuation on the next line after the operator
		right := p.parseExpr(bp)
		return &ast.BinaryExpr{
			ExprBase: makeExprBase(left.GetSpan().Start, right.GetSpan().End),
			Op:       tok.Kind,
			Left:     left,
			Right:    right,
		}

	case token.CARET:
		// Right-associative: recurse at bp-1 so a chain of '^' nests to the right.
		p.advance()
		p.skipNewlines()
		right := p.parseExpr(bpPower - 1)
		return &ast.BinaryExpr{
			ExprBase: makeExprBase(left.GetSpan().Start, right.GetSpan().End),
			Op:       token.CARET,
			Left:     left,
			Right:    right,
		}

	case token.LBRACKET:
		p.advance() // consume '['
		p.skipNewlines()
		index := p.parseExpr(bpNone)
		p.skipNewlines()
		end, _ := p.expect(token.RBRACKET)
		return &ast.IndexExpr{
			ExprBase: makeExprBase(left.GetSpan().Start, end.Span.End),
			Object:   left,
			Index:    index,
		}

	default:
		return left
	}
}

// parseCallExpr parses: IDENT ( args )
func (p *Parser) parseCallExpr(callee token.Token) *ast.CallExpr {
	p.advance() // consume '('
	var args []ast.Expr

	p.skipNewlines()
	if !p.check(token.RPAREN) {
		args = append(args, p.parseExpr(bpNone))
		for p.check(token.COMMA) {
			p.advance() // consume ','
			p.skipNewlines()
			if p.check(token.RPAREN) {
				p.error("E2005", p.peek().Span, "trailing comma is not supported in call arguments")
				break
			}
			args = append(args, p.parseExpr(bpNone))
		}
	}
	p.skipNewlines()
	end, _ := p.expect(token.RPAREN)

	return &ast.CallExpr{
		ExprBase: makeExprBase(callee.Span.Start, end.Span.End),
		Callee:   callee.Lexeme,
		Args:     args,
	}
}

// parseArrayLiteral parses: [ expr, expr, ... ]
func (p *Parser) parseArrayLiteral() *ast.ArrayLiteral {
	start := p.advance() // consume '['
	var elements []ast.Expr

	p.skipNewlines()
	if !p.check(token.RBRACKET) {
		elements = append(elements, p.parseExpr(bpNone))
		for p.check(token.COMMA) {
			p.advance() // consume ','
			p.skipNewlines()
			if p.check(token.RBRACKET) {
				break // trailing comma
			}
			elements = append(elements, p.parseExpr(bpNone))
		}
	}
	p.skipNewlines()
	end, _ := p.expect(token.RBRACKET)

	return &ast.ArrayLiteral{
		ExprBase: makeExprBase(start.Span.Start, end.Span.End),
		Elements: elements,
	}
}

// ============================================================
// Span helpers
// ============================================================

func (p *Parser) prevEnd() span.Position {
	if p.pos > 0 && p.pos-1 < len(p.tokens) {
		return p.tokens[p.pos-1].Span.End
	}
	return p.peek().Span.Start
}

func (p *Parser) makeSpan(start span.Position) span.Span {
	return span.Span{Start: start, End: p.prevEnd()}
}

func makeExprBase(start, end span.Position) ast.ExprBase {
	return ast.ExprBase{NodeBase: ast.NodeBase{Span: span.Span{Start: start, End: end}}}
}

func makeStmtBase(start, end span.Position) ast.StmtBase {
	return ast.StmtBase{NodeBase: ast.NodeBase{Span: span.Span{Start: start, End: end}}}
}
