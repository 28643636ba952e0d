package lexer

import (
	"testing"

	"anic/token"
)

func TestNewLexer(t *testing.T) {
	input := "Some text"
	got := New(input)

	if got.ch != 'S' {
		t.Errorf("1: %s\n", string(got.ch))
	}
	if len(got.src) != len(input) {
		t.Errorf("2: %d\n", len(got.src))
	}
	if got.pointer != 0 {
		t.Errorf("3: %d\n", got.pointer)
	}
	if got.state != stateStart {
		t.Errorf("4: %d\n", got.state)
	}
	if empty := New(""); empty.Next().Type != token.EOF {
		t.Errorf("5: empty input does not end at once")
	}
}

func TestCanBeAnIdentifierName(t *testing.T) {
	_1 := canBeAnIdentifierName('@')
	_2 := canBeAnIdentifierName('_')
	_3 := canBeAnIdentifierName('3')
	_4 := canBeAnIdentifierName('A')
	_5 := canBeAnIdentifierName('b')
	_6 := canBeAnIdentifierName('\\')
	if !(!_1 && _2 && !_3 && _4 && _5 && !_6) {
		t.Error(_1, _2, _3, _4, _5, _6)
	}
}

func TestLexerAdvance(t *testing.T) {
	input := "Some text"
	l := New(input)
	l.advance()
	if l.ch != 'o' {
		t.Errorf("1: %s\n", string(l.ch))
	}
	for i := 0; i < 7; i++ {
		l.advance()
	}
	if l.ch != 't' {
		t.Errorf("2: %s\n", string(l.ch))
	}
	if p := l.peek(); p != eof {
		t.Errorf("3: %s\n", string(p))
	}
	l.advance()
	l.advance()
	if l.ch != eof {
		t.Errorf("4: advanced past eof: %s\n", string(l.ch))
	}
}

func TestPos(t *testing.T) {
	input := "Some test\nHey"
	l := New(input)
	if l.col != 1 || l.line != 1 {
		t.Errorf("1: %d:%d\n", l.line, l.col)
	}
	l.advance()
	l.advance()
	if l.col != 3 || l.line != 1 {
		t.Errorf("2: %d:%d\n", l.line, l.col)
	}
	for i := 0; i < 8; i++ {
		l.advance()
	}
	if l.col != 1 || l.line != 2 {
		t.Errorf("3: %d:%d\n", l.line, l.col)
	}
}

func TestLexWs(t *testing.T) {
	input := "\n   "
	l := New(input)
	tok := l.Next()
	if tok.Type != token.WHITESPACE {
		t.Errorf("1: %s\n", tok.Type)
	}
	if tok.Literal != input {
		t.Errorf("2: %q\n", tok.Literal)
	}
	if tok := l.Next(); tok.Type != token.EOF {
		t.Errorf("3: %s\n", tok.Type)
	}
}

func types(toks []token.Token) []token.Type {
	var out []token.Type
	for _, tok := range toks {
		if tok.Type != token.WHITESPACE {
			out = append(out, tok.Type)
		}
	}
	return out
}

func TestTokens(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Type
	}{
		{`int\`, []token.Type{token.IDENT, token.LATCH, token.EOF}},
		{`char\\`, []token.Type{token.IDENT, token.STREAM, token.EOF}},
		{`float[.][.]`, []token.Type{token.IDENT, token.DIM, token.DIM, token.EOF}},
		{`bool\[.]`, []token.Type{token.IDENT, token.LATCH, token.DIM, token.EOF}},
		{`string[]`, []token.Type{token.IDENT, token.LIST, token.EOF}},
		{`[int\, float --> bool\]\`, []token.Type{
			token.OPENING_SQUARE_BRACKET, token.IDENT, token.LATCH, token.COMMA, token.IDENT,
			token.ARROW, token.IDENT, token.LATCH, token.CLOSING_SQUARE_BRACKET, token.LATCH, token.EOF,
		}},
		{`{=[int\], x=int\}`, []token.Type{
			token.OPENING_CURLY, token.EQUAL, token.OPENING_SQUARE_BRACKET, token.IDENT, token.LATCH,
			token.CLOSING_SQUARE_BRACKET, token.COMMA, token.IDENT, token.EQUAL, token.IDENT, token.LATCH,
			token.CLOSING_CURLY, token.EOF,
		}},
		{`<ERROR>, (null)`, []token.Type{
			token.ERROR, token.COMMA, token.OPENING_PAREN, token.IDENT, token.CLOSING_PAREN, token.EOF,
		}},
		{`-- - << <= <`, []token.Type{
			token.OPERATOR, token.OPERATOR, token.OPERATOR, token.OPERATOR, token.OPERATOR, token.EOF,
		}},
	}
	for _, tt := range tests {
		l := New(tt.input)
		got := types(l.Tokens())
		if len(got) != len(tt.want) {
			t.Errorf("%q: got %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: token %d is %s, want %s", tt.input, i, got[i], tt.want[i])
			}
		}
		if len(l.Errs) > 0 {
			t.Errorf("%q: lexer errors: %+v", tt.input, l.Errs)
		}
	}
}

func TestLexOperatorLiterals(t *testing.T) {
	l := New("a-->b --c")
	toks := l.Tokens()
	want := []string{"a", "-->", "b", " ", "--", "c"}
	for i, w := range want {
		if toks[i].Literal != w {
			t.Errorf("%d: %q, want %q", i, toks[i].Literal, w)
		}
	}
	if toks[4].Col != 7 {
		t.Errorf("column of --: %d", toks[4].Col)
	}
}

func TestLexIllegal(t *testing.T) {
	l := New("int @ #")
	toks := l.Tokens()
	if got := types(toks); len(got) != 4 || got[1] != token.ILLEGAL || got[2] != token.ILLEGAL {
		t.Errorf("1: %v\n", got)
	}
	if len(l.Errs) != 2 {
		t.Fatalf("2: %+v\n", l.Errs)
	}
	if e := l.Errs[0]; e.Line != 1 || e.Column != 5 || e.ErrCode != ErrIllegalCharacter {
		t.Errorf("3: %+v\n", e)
	}
	t.Logf("lexer errors: %+v", l.Errs)
}
