package lexer

import (
	"fmt"
	"unicode"

	"anic/token"
)

const eof = rune(-1)

type (
	state   int
	ErrCode int
	// for little syntax errors to pass to the parser
	Err struct {
		ErrCode      ErrCode
		Msg          string
		Column, Line uint
	}
)

const (
	stateStart state = iota

	stateLexWs
	stateLexIdent
	stateLexPunct
)

const (
	ErrIllegalCharacter ErrCode = iota
)

type lexFn func(*Lexer) token.Token

// Lexer splits a type expression such as `[int\, float --> bool\]` into
// tokens. Lines and columns start at 1.
type Lexer struct {
	src       []rune // source text
	pointer   int    // index of the current character
	line, col uint
	ch        rune // current character, eof past the end
	state     state
	lexFns    map[state]lexFn // which function to call when in state
	Errs      []Err
}

func New(input string) *Lexer {
	var lexFns = map[state]lexFn{
		stateLexWs:    lexWs,
		stateLexIdent: lexIdent,
		stateLexPunct: lexPunct,
	}
	l := &Lexer{
		src:    []rune(input),
		line:   1,
		col:    1,
		state:  stateStart,
		lexFns: lexFns,
	}
	l.ch = l.at(0)
	return l
}

func (l *Lexer) errorf(errCode ErrCode, line, col uint, formatMsg string, elems ...interface{}) {
	l.Errs = append(l.Errs, Err{
		ErrCode: errCode,
		Msg:     fmt.Sprintf(formatMsg, elems...),
		Column:  col,
		Line:    line,
	})
}

func (l *Lexer) at(i int) rune {
	if i >= len(l.src) {
		return eof
	}
	return l.src[i]
}

func (l *Lexer) peek() rune {
	return l.at(l.pointer + 1)
}

func (l *Lexer) advance() {
	if l.ch == eof {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pointer++
	l.ch = l.at(l.pointer)
}

func canBeAnIdentifierName(ch rune) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isWhitespace(ch rune) bool {
	return ch != eof && unicode.IsSpace(ch)
}

func lexWs(l *Lexer) token.Token {
	start, line, col := l.pointer, l.line, l.col
	for isWhitespace(l.ch) {
		l.advance()
	}
	// set state to stateStart, to determine the next lexFn in *Lexer.Next.
	l.state = stateStart
	return token.New(token.WHITESPACE, string(l.src[start:l.pointer]), line, col)
}

func lexIdent(l *Lexer) token.Token {
	start, line, col := l.pointer, l.line, l.col
	for canBeAnIdentifierName(l.ch) || isDigit(l.ch) {
		l.advance()
	}
	l.state = stateStart
	return token.New(token.IDENT, string(l.src[start:l.pointer]), line, col)
}

// the longest spelling in token.Punctuation that starts here
func lexPunct(l *Lexer) token.Token {
	line, col := l.line, l.col
	l.state = stateStart
	for _, p := range token.Punctuation {
		if !l.hasPrefix(p.Lit) {
			continue
		}
		for range []rune(p.Lit) {
			l.advance()
		}
		return token.New(p.Type, p.Lit, line, col)
	}
	ch := l.ch
	l.advance()
	l.errorf(ErrIllegalCharacter, line, col, "illegal character '%c'", ch)
	return token.New(token.ILLEGAL, string(ch), line, col)
}

func (l *Lexer) hasPrefix(lit string) bool {
	i := l.pointer
	for _, r := range lit {
		if l.at(i) != r {
			return false
		}
		i++
	}
	return true
}

func (l *Lexer) Next() token.Token {
	if l.state == stateStart {
		if l.ch == eof {
			return token.New(token.EOF, "<<<EOF>>>", l.line, l.col)
		}
		if isWhitespace(l.ch) {
			l.state = stateLexWs
		} else if canBeAnIdentifierName(l.ch) {
			l.state = stateLexIdent
		} else {
			l.state = stateLexPunct
		}
	}
	return l.lexFns[l.state](l)
}

// Tokens lexes the whole input. The last token is always EOF.
func (l *Lexer) Tokens() []token.Token {
	var toks []token.Token
	for {
		t := l.Next()
		toks = append(toks, t)
		if t.Type == token.EOF {
			return toks
		}
	}
}
