package lexer

import (
	"testing"

	"github.com/Luxbin-labs/luxbin-lang/internal/token"
)

func TestTokenizeSimple(t *testing.T) {
	source := `let x = 1 + 2`
	l := New(source, "test.lux")
	tokens, diags := l.Tokenize()

	if len(diags) > 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}

	expected := []token.Kind{
		token.KW_LET, token.IDENT, token.ASSIGN,
		token.NUMBER, token.PLUS, token.NUMBER, token.EOF,
	}

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}

	for i, exp := range expected {
		if tokens[i].Kind != exp {
			t.Errorf("token[%d]: expected %s, got %s (%q)", i, exp, tokens[i].Kind, tokens[i].Lexeme)
		}
	}
}

func TestTokenizeKeywords(t *testing.T) {
	source := `if then else end while do for in func return break continue import try catch and or not true false nil`
	l := New(source, "test.lux")
	tokens, diags := l.Tokenize()

	if len(diags) > 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}

	expected := []token.Kind{
		token.KW_IF, token.KW_THEN, token.KW_ELSE, token.KW_END,
		token.KW_WHILE, token.KW_DO, token.KW_FOR, token.KW_IN,
		token.KW_FUNC, token.KW_RETURN, token.KW_BREAK, token.KW_CONTINUE,
		token.KW_IMPORT, token.KW_TRY, token.KW_CATCH,
		token.KW_AND, token.KW_OR, token.KW_NOT,
		token.KW_TRUE, token.KW_FALSE, token.KW_NIL,
		token.EOF,
	}

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}

	for i, exp := range expected {
		if tokens[i].Kind != exp {
			t.Errorf("token[%d]: expected %s, got %s", i, exp, tokens[i].Kind)
		}
	}
}

func TestTokenizeOperators(t *testing.T) {
	source := `= == != < <= > >= + - * / % ^`
	l := New(source, "test.lux")
	tokens, diags := l.Tokenize()

	if len(diags) > 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}

	expected := []token.Kind{
		token.ASSIGN, token.EQ, token.NEQ,
		token.LT, token.LTE, token.GT, token.GTE,
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.CARET,
		token.EOF,
	}

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}

	for i, exp := range expected {
		if tokens[i].Kind != exp {
			t.Errorf("token[%d]: expected %s, got %s", i, exp, tokens[i].Kind)
		}
	}
}

func TestTokenizeDelimiters(t *testing.T) {
	source := `( ) [ ] , :`
	l := New(source, "test.lux")
	tokens, diags := l.Tokenize()

	if len(diags) > 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}

	expected := []token.Kind{
		token.LPAREN, token.RPAREN,
		token.LBRACKET, token.RBRACKET, token.COMMA, token.COLON,
		token.EOF,
	}

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}

	for i, exp := range expected {
		if tokens[i].Kind != exp {
			t.Errorf("token[%d]: expected %s, got %s", i, exp, tokens[i].Kind)
		}
	}
}

func TestTokenizeString(t *testing.T) {
	source := `"hello" "line1\nline2"`
	l := New(source, "test.lux")
	tokens, diags := l.Tokenize()

	if len(diags) > 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}

	if tokens[0].Kind != token.STRING || tokens[0].Lexeme != "hello" {
		t.Errorf("expected STRING 'hello', got %s %q", tokens[0].Kind, tokens[0].Lexeme)
	}

	if tokens[1].Kind != token.STRING || tokens[1].Lexeme != "line1\nline2" {
		t.Errorf("expected STRING with newline, got %s %q", tokens[1].Kind, tokens[1].Lexeme)
	}
}

func TestTokenizeNumbers(t *testing.T) {
	source := `123 3.14 0 42`
	l := New(source, "test.lux")
	tokens, diags := l.Tokenize()

	if len(diags) > 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}

	if tokens[0].Kind != token.NUMBER || tokens[0].Lexeme != "123" || tokens[0].IsFloat {
		t.Errorf("token[0]: expected int NUMBER '123', got %s %q isFloat=%v", tokens[0].Kind, tokens[0].Lexeme, tokens[0].IsFloat)
	}
	if tokens[1].Kind != token.NUMBER || tokens[1].Lexeme != "3.14" || !tokens[1].IsFloat {
		t.Errorf("token[1]: expected float NUMBER '3.14', got %s %q isFloat=%v", tokens[1].Kind, tokens[1].Lexeme, tokens[1].IsFloat)
	}
}

func TestTokenizeNewlines(t *testing.T) {
	source := "a\nb\n"
	l := New(source, "test.lux")
	tokens, _ := l.Tokenize()

	expected := []token.Kind{
		token.IDENT, token.NEWLINE, token.IDENT, token.NEWLINE, token.EOF,
	}

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, exp := range expected {
		if tokens[i].Kind != exp {
			t.Errorf("token[%d]: expected %s, got %s", i, exp, tokens[i].Kind)
		}
	}
}

func TestTokenizeComment(t *testing.T) {
	source := "x # this is a comment\ny"
	l := New(source, "test.lux")
	tokens, _ := l.Tokenize()

	expected := []token.Kind{
		token.IDENT, token.NEWLINE, token.IDENT, token.EOF,
	}

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, exp := range expected {
		if tokens[i].Kind != exp {
			t.Errorf("token[%d]: expected %s, got %s", i, exp, tokens[i].Kind)
		}
	}
}

func TestTokenizePositions(t *testing.T) {
	source := "let x = 1"
	l := New(source, "test.lux")
	tokens, _ := l.Tokenize()

	// "let" starts at line 1, col 1
	if tokens[0].Span.Start.Line != 1 || tokens[0].Span.Start.Column != 1 {
		t.Errorf("'let' position: expected 1:1, got %d:%d", tokens[0].Span.Start.Line, tokens[0].Span.Start.Column)
	}
	// "x" starts at line 1, col 5
	if tokens[1].Span.Start.Line != 1 || tokens[1].Span.Start.Column != 5 {
		t.Errorf("'x' position: expected 1:5, got %d:%d", tokens[1].Span.Start.Line, tokens[1].Span.Start.Column)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	source := "\"unterminated"
	l := New(source, "test.lux")
	_, diags := l.Tokenize()
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for unterminated string")
	}
}

func TestTokenizeIllegalCharacter(t *testing.T) {
	source := "@"
	l := New(source, "test.lux")
	tokens, diags := l.Tokenize()
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for illegal character")
	}
	if tokens[0].Kind != token.ILLEGAL {
		t.Errorf("expected ILLEGAL token, got %s", tokens[0].Kind)
	}
}
