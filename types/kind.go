package types

// Kind identifies what a Std type stands for: either a primitive value type
// or the operator about to be applied to some operands.
type Kind int

const (
	Null Kind = iota
	StdKind

	// comparable primitives, ordered by promotion rank
	Int
	Float
	Bool
	Char
	String

	// prefix operators
	Not
	Complement
	DPlus
	DMinus

	// infix operators
	DOr
	DAnd
	Or
	Xor
	And
	DEquals
	NEquals
	LT
	GT
	LE
	GE
	LS
	RS
	Times
	Divide
	Mod

	// operators with both a prefix and an infix form
	Plus
	Minus
)

const (
	minComparable = Int
	maxComparable = String
)

var kindStrings = [...]string{
	Null:       "null",
	StdKind:    "std",
	Int:        "int",
	Float:      "float",
	Bool:       "bool",
	Char:       "char",
	String:     "string",
	Not:        "!",
	Complement: "~",
	DPlus:      "++",
	DMinus:     "--",
	DOr:        "||",
	DAnd:       "&&",
	Or:         "|",
	Xor:        "^",
	And:        "&",
	DEquals:    "==",
	NEquals:    "!=",
	LT:         "<",
	GT:         ">",
	LE:         "<=",
	GE:         ">=",
	LS:         "<<",
	RS:         ">>",
	Times:      "*",
	Divide:     "/",
	Mod:        "%",
	Plus:       "+",
	Minus:      "-",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindStrings) {
		return ""
	}
	return kindStrings[k]
}

// Comparable reports whether values of kind k take part in promotion.
func (k Kind) Comparable() bool {
	return k >= minComparable && k <= maxComparable
}

// IsOperator reports whether k is an operator token rather than a value type.
func (k Kind) IsOperator() bool {
	return k >= Not && k <= Minus
}

// KindNamed returns the primitive kind spelled name, as used in type
// expressions. Operators are not nameable.
func KindNamed(name string) (Kind, bool) {
	for k := Null; k <= String; k++ {
		if kindStrings[k] == name {
			return k, true
		}
	}
	return Null, false
}

// OperatorNamed returns the operator kind whose punctuation is sym.
func OperatorNamed(sym string) (Kind, bool) {
	for k := Not; k <= Minus; k++ {
		if kindStrings[k] == sym {
			return k, true
		}
	}
	return Null, false
}

// kindCompare is the promotion lattice: the kind a value of kind a may be
// viewed as when compared against (or delivered to) kind b, or Null when the
// two do not meet.
func kindCompare(a, b Kind) Kind {
	switch {
	case !(a.Comparable() && b.Comparable()):
		return Null
	case a == b:
		return a
	case a == Int && b == Float:
		return Float
	case a == Int && b == Char:
		return Char
	case b == String:
		return String
	}
	return Null
}

// KindCompare applies the promotion lattice with b as the comparison target.
func KindCompare(a, b *Std) Kind {
	return kindCompare(a.Kind, b.Kind)
}
