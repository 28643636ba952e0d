package token

type Type int

const (
	EOF Type = iota
	ILLEGAL
	WHITESPACE
	IDENT
	OPERATOR // operator punctuation standing for an operator type: + == <<
	ERROR    // <ERROR>
	LATCH    // \
	STREAM   // \\
	LIST     // []
	DIM      // [.]
	ARROW    // -->
	EQUAL
	COMMA
	OPENING_PAREN
	CLOSING_PAREN
	OPENING_CURLY
	CLOSING_CURLY
	OPENING_SQUARE_BRACKET
	CLOSING_SQUARE_BRACKET
)

func (t Type) String() string {
	tt := map[Type]string{
		EOF: "EOF", ILLEGAL: "ILLEGAL", WHITESPACE: "WHITESPACE",
		IDENT: "IDENTIFIER", OPERATOR: "OPERATOR", ERROR: "ERROR",
		LATCH: "LATCH", STREAM: "STREAM", LIST: "LIST", DIM: "DIM", ARROW: "ARROW",
		EQUAL: "EQUAL", COMMA: ",",
		OPENING_PAREN: "OPENING_PAREN", CLOSING_PAREN: "CLOSING_PAREN",
		OPENING_CURLY: "OPENING_CURLY", CLOSING_CURLY: "CLOSING_CURLY",
		OPENING_SQUARE_BRACKET: "OPENING_SQUARE_BRACKET", CLOSING_SQUARE_BRACKET: "CLOSING_SQUARE_BRACKET",
	}
	return tt[t]
}

type Token struct {
	Type      Type
	Literal   string
	Line, Col uint
}

// return new token
func New(typ Type, lit string, line, col uint) Token {
	return Token{
		Type:    typ,
		Literal: lit,
		Line:    line,
		Col:     col,
	}
}

// IsSuffix reports whether t can follow a type to qualify it.
func IsSuffix(t Type) bool {
	switch t {
	case LATCH, STREAM, LIST, DIM:
		return true
	}
	return false
}

// Punctuation lists every fixed spelling the lexer knows, longest first so
// that a prefix never shadows a longer spelling.
var Punctuation = []struct {
	Lit  string
	Type Type
}{
	{"<ERROR>", ERROR},
	{"-->", ARROW},
	{`\\`, STREAM},
	{"[.]", DIM},
	{"[]", LIST},
	{"==", OPERATOR}, {"!=", OPERATOR}, {"<=", OPERATOR}, {">=", OPERATOR},
	{"<<", OPERATOR}, {">>", OPERATOR}, {"||", OPERATOR}, {"&&", OPERATOR},
	{"++", OPERATOR}, {"--", OPERATOR},
	{`\`, LATCH},
	{"=", EQUAL},
	{",", COMMA},
	{"(", OPENING_PAREN},
	{")", CLOSING_PAREN},
	{"{", OPENING_CURLY},
	{"}", CLOSING_CURLY},
	{"[", OPENING_SQUARE_BRACKET},
	{"]", CLOSING_SQUARE_BRACKET},
	{"!", OPERATOR}, {"~", OPERATOR}, {"|", OPERATOR}, {"^", OPERATOR}, {"&", OPERATOR},
	{"<", OPERATOR}, {">", OPERATOR}, {"*", OPERATOR}, {"/", OPERATOR}, {"%", OPERATOR},
	{"+", OPERATOR}, {"-", OPERATOR},
}
