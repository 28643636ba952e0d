package parser

import (
	"anic/types"
)

// little utility functions to convert tokens to type values

// operator kind of p.tok.
// the lexer only emits OPERATOR for known punctuation, so a miss is a bug in
// the token table.
func operatorOf(p *Parser) types.Kind {
	k, ok := types.OperatorNamed(p.tok.Literal)
	if !ok {
		p.errorf(ErrUnexpectedToken, p.tok.Line, p.tok.Col, "unknown operator '%s'", p.tok.Literal)
	}
	return k
}

// sentinels and lists keep the qualifier they were made with
func requalifiable(t types.Type) bool {
	if types.IsSentinel(t) {
		return false
	}
	_, isSeq := t.(*types.Seq)
	return !isSeq
}
