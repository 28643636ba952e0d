package types

import "strings"

// Suffix is the storage/concurrency class of a type.
type Suffix int

const (
	Constant Suffix = iota
	Latch
	List
	Stream
	Array
	Pool
)

var suffixNames = [...]string{
	Constant: "CONSTANT",
	Latch:    "LATCH",
	List:     "LIST",
	Stream:   "STREAM",
	Array:    "ARRAY",
	Pool:     "POOL",
}

func (s Suffix) String() string {
	if s < 0 || int(s) >= len(suffixNames) {
		return "INVALID"
	}
	return suffixNames[s]
}

// SuffixNamed returns the suffix called name, ignoring case.
func SuffixNamed(name string) (Suffix, bool) {
	for s, n := range suffixNames {
		if strings.EqualFold(n, name) {
			return Suffix(s), true
		}
	}
	return Constant, false
}

// Qualifier is the suffix of a type plus its nesting depth. Depth is only
// meaningful for Array and Pool.
type Qualifier struct {
	Suffix Suffix
	Depth  int
}

// Q is shorthand for an undimensioned qualifier.
func Q(s Suffix) Qualifier { return Qualifier{Suffix: s} }

// QDepth builds an Array or Pool qualifier of the given depth.
func QDepth(s Suffix, depth int) Qualifier { return Qualifier{Suffix: s, Depth: depth} }

// Op names a qualifier transition.
type Op int

const (
	Constantize Op = iota
	ConstantizeReference
	Delatch
	CopyDelatch
	ConstantDelatch
	Destream
	CopyDestream
	ConstantDestream

	numOps
)

var opNames = [...]string{
	Constantize:          "constantize",
	ConstantizeReference: "constantizeReference",
	Delatch:              "delatch",
	CopyDelatch:          "copyDelatch",
	ConstantDelatch:      "constantDelatch",
	Destream:             "destream",
	CopyDestream:         "copyDestream",
	ConstantDestream:     "constantDestream",
}

func (op Op) String() string { return opNames[op] }

// OpNamed returns the transition called name.
func OpNamed(name string) (Op, bool) {
	for op, n := range opNames {
		if n == name {
			return Op(op), true
		}
	}
	return numOps, false
}

// outcome of one cell of the transition table. A zero outcome is a refusal.
// When oneDeep is set the transition is only legal at depth 1 and consumes
// that level. When addDim is set a scalar gains its first dimension.
type outcome struct {
	ok      bool
	to      Suffix
	oneDeep bool
	addDim  bool
}

var fail = outcome{}

func to(s Suffix) outcome   { return outcome{ok: true, to: s} }
func peel(s Suffix) outcome { return outcome{ok: true, to: s, oneDeep: true} }
func dim(s Suffix) outcome  { return outcome{ok: true, to: s, addDim: true} }

// transitions is indexed [op][suffix].
var transitions = [numOps][len(suffixNames)]outcome{
	Constantize: {
		Constant: to(Constant), Latch: to(Constant), List: to(List),
		Stream: dim(Array), Array: to(Array), Pool: to(Array),
	},
	ConstantizeReference: {
		Constant: to(Constant), Latch: to(Constant), List: fail,
		Stream: fail, Array: to(Array), Pool: to(Array),
	},
	Delatch: {
		Constant: fail, Latch: to(Latch), List: fail,
		Stream: to(Latch), Array: fail, Pool: to(Pool),
	},
	CopyDelatch: {
		Constant: to(Latch), Latch: to(Latch), List: to(Latch),
		Stream: to(Latch), Array: to(Pool), Pool: to(Pool),
	},
	ConstantDelatch: {
		Constant: fail, Latch: fail, List: to(Constant),
		Stream: to(Constant), Array: fail, Pool: fail,
	},
	Destream: {
		Constant: fail, Latch: fail, List: fail,
		Stream: to(Latch), Array: peel(Latch), Pool: peel(Latch),
	},
	CopyDestream: {
		Constant: fail, Latch: fail, List: to(Latch),
		Stream: to(Latch), Array: peel(Latch), Pool: peel(Latch),
	},
	ConstantDestream: {
		Constant: fail, Latch: fail, List: to(Constant),
		Stream: to(Constant), Array: peel(Constant), Pool: peel(Constant),
	},
}

// Apply performs op in place and reports whether it was legal. A refused
// transition leaves q untouched.
func (q *Qualifier) Apply(op Op) bool {
	o := transitions[op][q.Suffix]
	if !o.ok {
		return false
	}
	if o.oneDeep {
		if q.Depth != 1 {
			return false
		}
		q.Depth = 0
	}
	if o.addDim {
		q.Depth = 1
	}
	q.Suffix = o.to
	return true
}

// Constantize never fails.
func (q *Qualifier) Constantize()               { q.Apply(Constantize) }
func (q *Qualifier) ConstantizeReference() bool { return q.Apply(ConstantizeReference) }
func (q *Qualifier) Delatch() bool              { return q.Apply(Delatch) }
func (q *Qualifier) CopyDelatch() bool          { return q.Apply(CopyDelatch) }
func (q *Qualifier) ConstantDelatch() bool      { return q.Apply(ConstantDelatch) }
func (q *Qualifier) Destream() bool             { return q.Apply(Destream) }
func (q *Qualifier) CopyDestream() bool         { return q.Apply(CopyDestream) }
func (q *Qualifier) ConstantDestream() bool     { return q.Apply(ConstantDestream) }

// BaseEquals compares suffix and depth.
func (q Qualifier) BaseEquals(other Qualifier) bool {
	return q == other
}

// BaseSendable reports whether storage qualified by q may be delivered into
// storage qualified by other.
func (q Qualifier) BaseSendable(other Qualifier) bool {
	switch q.Suffix {
	case Constant:
		return other.Suffix == Constant
	case Latch:
		return other.Suffix == Constant || other.Suffix == Latch || other.Suffix == Stream
	case Array:
		return other.Suffix == Array && q.Depth == other.Depth
	case Pool:
		return (other.Suffix == Pool || other.Suffix == Array) && q.Depth == other.Depth
	}
	return false
}

// String renders the suffix as written after a type.
func (q Qualifier) String() string {
	switch q.Suffix {
	case Latch:
		return `\`
	case List:
		return "[]"
	case Stream:
		return `\\`
	case Array:
		return dims(q.Depth)
	case Pool:
		return `\` + dims(q.Depth)
	}
	return ""
}

func dims(depth int) string {
	return strings.Repeat("[.]", depth)
}
