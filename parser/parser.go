package parser

import (
	"fmt"

	"anic/lexer"
	"anic/token"
	"anic/types"
)

type ErrCode int

type Err struct {
	ErrCode      ErrCode
	Msg          string
	Column, Line uint
}

const (
	ErrLexical ErrCode = iota // passed up from the lexer
	ErrUnexpectedToken
	ErrUnknownName
	ErrInvalidSuffix // a suffix on something that takes none
	ErrDuplicateMember
)

// Scope resolves the names written in a type expression. A name bound to an
// object yields a fresh copy of that object; any other binding is copied.
type Scope interface {
	Lookup(name string) (types.Type, bool)
}

// Parser reads the textual form produced by types.Render back into type
// values. Nested lists are written in parentheses, since the rendered form
// flattens them.
//
//	list   = [ elem { "," elem } ]
//	elem   = IDENT suffix | OPERATOR suffix | "<ERROR>" | "(" list ")"
//	       | "[" list "-->" list "]" suffix
//	       | "{" [ entry { "," entry } ] "}" suffix
//	entry  = "=" "[" list "]" | IDENT "=" elem
//	suffix = "\" | "\\" | "[]" | "[.]"... | "\" "[.]"...
type Parser struct {
	tokens []token.Token
	ptr    uint
	tok    token.Token // current token pointed to, by ptr
	g      *types.Graph
	scope  Scope
	Errs   []Err
}

// New lexes the whole input. Whitespace is dropped here; lexer errors are
// carried over into Errs.
func New(l *lexer.Lexer, g *types.Graph, scope Scope) *Parser {
	toks := []token.Token{}
	for _, t := range l.Tokens() {
		if t.Type != token.WHITESPACE {
			toks = append(toks, t)
		}
	}
	p := &Parser{tokens: toks, g: g, scope: scope}
	for _, e := range l.Errs {
		p.errorf(ErrLexical, e.Line, e.Column, "%s", e.Msg)
	}
	p.tok = p.tokens[p.ptr]
	return p
}

func (p *Parser) errorf(errCode ErrCode, line, col uint, formatMsg string, elems ...interface{}) {
	p.Errs = append(p.Errs, Err{
		ErrCode: errCode,
		Msg:     fmt.Sprintf(formatMsg, elems...),
		Column:  col,
		Line:    line,
	})
}

// set p.tok to the next token
func (p *Parser) move() {
	outOfBounds := len(p.tokens)-1 == int(p.ptr)
	if outOfBounds {
		return
	}
	p.ptr++
	p.tok = p.tokens[p.ptr]
}

func (p *Parser) peek() token.Token {
	hasNextToken := len(p.tokens)-2 >= int(p.ptr)
	if hasNextToken {
		return p.tokens[p.ptr+1]
	}
	return p.tok
}

// if the current token's type is t, move past it.
// otherwise report it and stay.
func (p *Parser) expect(t token.Type) bool {
	if p.tok.Type != t {
		p.unexpected(t.String())
		return false
	}
	p.move()
	return true
}

func (p *Parser) unexpected(want string) {
	p.errorf(ErrUnexpectedToken, p.tok.Line, p.tok.Col, "unexpected token '%s': expected %s", p.tok.Literal, want)
}

// ParseType reads one type. Several comma-separated types make a list; an
// empty input is the empty list.
func (p *Parser) ParseType() types.Type {
	list := p.parseList(token.EOF)
	p.end()
	if len(list) == 1 {
		return list[0]
	}
	return types.NewSeq(list...)
}

// ParseSeq reads a list of types, as written in a constructor signature.
func (p *Parser) ParseSeq() *types.Seq {
	list := p.parseList(token.EOF)
	p.end()
	return types.NewSeq(list...)
}

func (p *Parser) end() {
	if p.tok.Type != token.EOF {
		p.unexpected("end of type")
	}
}

func (p *Parser) parseList(end token.Type) []types.Type {
	var list []types.Type
	if p.tok.Type == end {
		return list
	}
	for {
		list = append(list, p.parseElem())
		if p.tok.Type != token.COMMA {
			return list
		}
		p.move()
	}
}

func (p *Parser) parseElem() types.Type {
	switch p.tok.Type {
	case token.IDENT:
		return p.parseName()
	case token.OPERATOR:
		k := operatorOf(p)
		p.move()
		q, _ := p.parseSuffix()
		return types.NewStd(k, q)
	case token.ERROR:
		p.move()
		p.noSuffix("<ERROR>")
		return types.ErrType
	case token.OPENING_PAREN:
		p.move()
		list := p.parseList(token.CLOSING_PAREN)
		p.expect(token.CLOSING_PAREN)
		p.noSuffix("a list")
		return types.NewSeq(list...)
	case token.OPENING_SQUARE_BRACKET:
		return p.parseFilter()
	case token.OPENING_CURLY:
		return p.parseObject()
	}
	p.unexpected("a type")
	p.move()
	return types.ErrType
}

func (p *Parser) parseName() types.Type {
	nameTok := p.tok
	p.move()
	q, qualified := p.parseSuffix()
	if k, ok := types.KindNamed(nameTok.Literal); ok {
		if k == types.Null && !qualified {
			return types.NullType
		}
		return types.NewStd(k, q)
	}
	var (
		t     types.Type
		found bool
	)
	if p.scope != nil {
		t, found = p.scope.Lookup(nameTok.Literal)
	}
	if !found {
		p.errorf(ErrUnknownName, nameTok.Line, nameTok.Col, "unknown type '%s'", nameTok.Literal)
		return types.ErrType
	}
	if _, ok := t.(*types.Object); ok || qualified {
		if !requalifiable(t) {
			p.errorf(ErrInvalidSuffix, nameTok.Line, nameTok.Col, "'%s' stands for %s, which takes no suffix", nameTok.Literal, t)
			return types.ErrType
		}
		return p.g.CopyAs(t, q)
	}
	return p.g.Copy(t)
}

func (p *Parser) parseFilter() types.Type {
	p.move()
	from := p.parseList(token.ARROW)
	p.expect(token.ARROW)
	to := p.parseList(token.CLOSING_SQUARE_BRACKET)
	p.expect(token.CLOSING_SQUARE_BRACKET)
	q, _ := p.parseSuffix()
	return types.NewFilter(types.NewSeq(from...), types.NewSeq(to...), q)
}

func (p *Parser) parseObject() types.Type {
	p.move()
	var (
		ctors   []*types.Seq
		members []types.Member
	)
	for p.tok.Type != token.CLOSING_CURLY && p.tok.Type != token.EOF {
		switch {
		case p.tok.Type == token.EQUAL:
			p.move()
			if p.tok.Type == token.LIST { // =[] lexes as one token
				p.move()
				ctors = append(ctors, types.NewSeq())
				break
			}
			p.expect(token.OPENING_SQUARE_BRACKET)
			ctors = append(ctors, types.NewSeq(p.parseList(token.CLOSING_SQUARE_BRACKET)...))
			p.expect(token.CLOSING_SQUARE_BRACKET)
		case p.tok.Type == token.IDENT && p.peek().Type == token.EQUAL:
			nameTok := p.tok
			p.move()
			p.move()
			m := types.Member{
				Name:    nameTok.Literal,
				Type:    p.parseElem(),
				DefSite: types.DefSite{Line: nameTok.Line, Col: nameTok.Col},
			}
			for _, prev := range members {
				if prev.Name == m.Name {
					p.errorf(ErrDuplicateMember, nameTok.Line, nameTok.Col, "member '%s' declared twice", m.Name)
				}
			}
			members = append(members, m)
		default:
			p.unexpected("a constructor or a member")
			p.move()
			continue
		}
		if p.tok.Type != token.COMMA {
			break
		}
		p.move()
	}
	p.expect(token.CLOSING_CURLY)
	q, _ := p.parseSuffix()
	o := p.g.NewObject(ctors, q)
	for _, m := range members {
		p.g.AddMember(o, m.Name, m.Type, m.DefSite)
	}
	p.g.Finalize(o)
	return o
}

// parseSuffix reads an optional qualifier. The second result is false when
// none was written, in which case the qualifier is CONSTANT.
func (p *Parser) parseSuffix() (types.Qualifier, bool) {
	switch p.tok.Type {
	case token.LATCH:
		p.move()
		if d := p.dims(); d > 0 {
			return types.QDepth(types.Pool, d), true
		}
		return types.Q(types.Latch), true
	case token.STREAM:
		p.move()
		return types.Q(types.Stream), true
	case token.LIST:
		p.move()
		return types.Q(types.List), true
	case token.DIM:
		return types.QDepth(types.Array, p.dims()), true
	}
	return types.Q(types.Constant), false
}

func (p *Parser) dims() int {
	n := 0
	for p.tok.Type == token.DIM {
		n++
		p.move()
	}
	return n
}

func (p *Parser) noSuffix(what string) {
	if token.IsSuffix(p.tok.Type) {
		p.errorf(ErrInvalidSuffix, p.tok.Line, p.tok.Col, "%s takes no suffix", what)
		p.parseSuffix()
	}
}
