// Package types holds the type values of the checker and the relations
// between them: structural equality, sendability, and operator-result
// derivation. Object definitions, which may refer to themselves, live in a
// Graph that tracks their copies.
package types

import (
	"github.com/pkg/errors"
)

type Category int

const (
	CategoryStd Category = iota
	CategorySeq
	CategoryError
	CategoryFilter
	CategoryObject
)

var categoryNames = [...]string{
	CategoryStd:    "std",
	CategorySeq:    "list",
	CategoryError:  "error",
	CategoryFilter: "filter",
	CategoryObject: "object",
}

func (c Category) String() string { return categoryNames[c] }

// Type is one of *Std, *Seq, *Error, *Filter or *Object. The set is closed:
// every relation switches over exactly these five.
type Type interface {
	Category() Category
	Qual() Qualifier
	// Operable is false while an object definition is still being built.
	Operable() bool
	String() string
	node() *base
}

type base struct {
	qual     Qualifier
	operable bool
	erased   bool
}

func newBase(q Qualifier) base {
	checkQualifier(q)
	return base{qual: q, operable: true}
}

func (b *base) node() *base     { return b }
func (b *base) Qual() Qualifier { return b.qual }
func (b *base) Operable() bool  { return b.operable }

func (b *base) setQual(q Qualifier) {
	checkQualifier(q)
	b.qual = q
}

// Std is a primitive value type, or an operator token standing for the
// operation about to be applied.
type Std struct {
	base
	Kind Kind
}

// Seq is an ordered list of types: parameter lists, multi-value returns.
// A Seq of length one is interchangeable with its element.
type Seq struct {
	base
	List []Type
}

// Error marks a failed derivation. Two errors are only equal when they are
// the same value.
type Error struct {
	base
}

// Filter is a function type from one list of types to another.
type Filter struct {
	base
	From, To *Seq
}

func (*Std) Category() Category    { return CategoryStd }
func (*Seq) Category() Category    { return CategorySeq }
func (*Error) Category() Category  { return CategoryError }
func (*Filter) Category() Category { return CategoryFilter }

func (s *Std) String() string    { return Render(s, 0) }
func (s *Seq) String() string    { return Render(s, 0) }
func (e *Error) String() string  { return Render(e, 0) }
func (f *Filter) String() string { return Render(f, 0) }

// The two sentinels are shared by reference everywhere and never erased.
var (
	// NullType is the unit type, and the result of a successful Send.
	NullType = &Std{base: base{operable: true}, Kind: Null}
	// ErrType is the result of every failed relation.
	ErrType = &Error{base: base{operable: true}}
)

// constant prototypes used as targets during derivation
var (
	stdBool   = NewStd(Bool, Q(Constant))
	stdInt    = NewStd(Int, Q(Constant))
	stdFloat  = NewStd(Float, Q(Constant))
	stdString = NewStd(String, Q(Constant))
)

// IsSentinel reports whether t is NullType or ErrType.
func IsSentinel(t Type) bool {
	return t == Type(NullType) || t == Type(ErrType)
}

// OK is the truth value of a relation result: everything but an Error.
func OK(t Type) bool {
	if t == nil {
		return false
	}
	_, isErr := t.(*Error)
	return !isErr
}

func NewStd(k Kind, q Qualifier) *Std {
	return &Std{base: newBase(q), Kind: k}
}

// NewSeq takes ownership of list.
func NewSeq(list ...Type) *Seq {
	for i, t := range list {
		if t == nil {
			panic(errors.Errorf("types.NewSeq: nil element at %d", i))
		}
	}
	return &Seq{base: newBase(Q(Constant)), List: list}
}

// NewError returns a fresh error marker, unequal to every other.
func NewError() *Error {
	return &Error{base: newBase(Q(Constant))}
}

// NewFilter takes ownership of from and to. A type that is not a Seq is
// wrapped in a Seq of length one.
func NewFilter(from, to Type, q Qualifier) *Filter {
	if from == nil || to == nil {
		panic(errors.New("types.NewFilter: nil from or to"))
	}
	return &Filter{base: newBase(q), From: asSeq(from), To: asSeq(to)}
}

func asSeq(t Type) *Seq {
	if s, ok := t.(*Seq); ok {
		return s
	}
	return NewSeq(t)
}

// IsKind reports whether t is a Std of kind k, directly or as the single
// element of a Seq.
func IsKind(t Type, k Kind) bool {
	switch t := t.(type) {
	case *Std:
		return t.Kind == k
	case *Seq:
		if len(t.List) != 1 {
			return false
		}
		s, ok := t.List[0].(*Std)
		return ok && s.Kind == k
	}
	return false
}

// Comparable reports whether a and b meet in the promotion lattice in
// either direction.
func Comparable(a, b Type) bool {
	a, b = unwrap(a), unwrap(b)
	as, ok1 := a.(*Std)
	bs, ok2 := b.(*Std)
	if !(ok1 && ok2) {
		return false
	}
	return KindCompare(as, bs) != Null || KindCompare(bs, as) != Null
}

// Transition applies op to the qualifier of t. Sentinels and lists carry
// fixed qualifiers and may not be transitioned.
func Transition(t Type, op Op) bool {
	if IsSentinel(t) {
		panic(errors.Errorf("types.Transition: %s on sentinel %s", op, t))
	}
	if _, ok := t.(*Seq); ok {
		panic(errors.Errorf("types.Transition: %s on list %s", op, t))
	}
	return t.node().qual.Apply(op)
}

// Erased reports whether t has been through Graph.Erase.
func Erased(t Type) bool {
	return t.node().erased
}

// unwrap strips Seqs of length one.
func unwrap(t Type) Type {
	for {
		s, ok := t.(*Seq)
		if !ok || len(s.List) != 1 {
			return t
		}
		t = s.List[0]
	}
}

func checkQualifier(q Qualifier) {
	if q.Suffix < Constant || q.Suffix > Pool {
		panic(errors.Errorf("types: invalid suffix %d", q.Suffix))
	}
	dimensioned := q.Suffix == Array || q.Suffix == Pool
	if q.Depth < 0 || (q.Depth > 0) != dimensioned {
		panic(errors.Errorf("types: depth %d on %s", q.Depth, q.Suffix))
	}
}

func unknownVariant(t Type) error {
	return errors.Errorf("types: unknown variant %T", t)
}
