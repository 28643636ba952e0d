package types

import (
	"github.com/hashicorp/go-set/v3"
)

type pair struct {
	a, b Type
}

// relation carries the pairs under comparison during one top-level Equal or
// Sends, so that recursive object types do not recurse forever.
type relation struct {
	comparing    *set.Set[pair]
	constructing *set.Set[pair]
}

func newRelation() *relation {
	return &relation{
		comparing:    set.New[pair](0),
		constructing: set.New[pair](0),
	}
}

// Equal is structural equality. A Seq of length one equals its element.
func Equal(a, b Type) bool {
	return newRelation().equal(a, b)
}

func (r *relation) equal(a, b Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Category() != b.Category() {
		if s, ok := a.(*Seq); ok && len(s.List) == 1 {
			return r.equal(s.List[0], b)
		}
		if s, ok := b.(*Seq); ok && len(s.List) == 1 {
			return r.equal(a, s.List[0])
		}
		return false
	}
	switch a := a.(type) {
	case *Std:
		b := b.(*Std)
		return a.Kind == b.Kind && a.qual.BaseEquals(b.qual)
	case *Seq:
		b := b.(*Seq)
		if len(a.List) != len(b.List) {
			return r.equalUnwrapped(a, b)
		}
		for i := range a.List {
			if !r.equal(a.List[i], b.List[i]) {
				return false
			}
		}
		return true
	case *Error:
		return false
	case *Filter:
		b := b.(*Filter)
		return r.equal(a.From, b.From) && r.equal(a.To, b.To) && a.qual.BaseEquals(b.qual)
	case *Object:
		return r.equalObjects(a, b.(*Object))
	}
	panic(unknownVariant(a))
}

// lists of different lengths can still be equal when one of them is a list
// of length one wrapping a list of the other's length
func (r *relation) equalUnwrapped(a, b *Seq) bool {
	if len(a.List) == 1 {
		return r.equal(a.List[0], b)
	}
	if len(b.List) == 1 {
		return r.equal(a, b.List[0])
	}
	return false
}

// Objects compare by shape only; the qualifier on the reference is ignored.
// A pair already being compared further up is assumed equal.
func (r *relation) equalObjects(a, b *Object) bool {
	p := pair{a, b}
	if r.comparing.Contains(p) {
		return true
	}
	if len(a.Constructors) != len(b.Constructors) || len(a.Members) != len(b.Members) {
		return false
	}
	r.comparing.Insert(p)
	defer r.comparing.Remove(p)
	for i := range a.Constructors {
		if !r.equal(a.Constructors[i], b.Constructors[i]) {
			return false
		}
	}
	for i := range a.Members {
		if a.Members[i].Name != b.Members[i].Name {
			return false
		}
	}
	for i := range a.Members {
		if !r.equal(a.Members[i].Type, b.Members[i].Type) {
			return false
		}
	}
	return true
}

// Sends reports whether a value of type a may be delivered where b is
// expected.
func Sends(a, b Type) bool {
	return newRelation().sends(a, b)
}

// Send is Sends in result form: NullType on success, ErrType on failure.
func Send(a, b Type) Type {
	if Sends(a, b) {
		return NullType
	}
	return ErrType
}

// Errors are checked before identity: an error satisfies nothing, itself
// included.
func (r *relation) sends(a, b Type) bool {
	if !OK(a) || !OK(b) {
		return false
	}
	if a == b {
		return true
	}
	if as, ok := a.(*Seq); ok {
		if bs, ok := b.(*Seq); ok {
			if len(as.List) != len(bs.List) {
				switch {
				case len(as.List) == 1:
					return r.sends(as.List[0], b)
				case len(bs.List) == 1:
					return r.sends(a, bs.List[0])
				}
				return false
			}
			for i := range as.List {
				if !r.sends(as.List[i], bs.List[i]) {
					return false
				}
			}
			return true
		}
		if len(as.List) == 1 {
			return r.sends(as.List[0], b)
		}
		if bo, ok := b.(*Object); ok && bo.qual.Suffix == Latch {
			return r.constructs(a, bo)
		}
		return false
	}
	switch b := b.(type) {
	case *Seq:
		return len(b.List) == 1 && r.sends(a, b.List[0])
	case *Std:
		as, ok := a.(*Std)
		return ok && as.qual.BaseSendable(b.qual) && kindCompare(as.Kind, b.Kind) != Null
	case *Filter:
		af, ok := a.(*Filter)
		return ok && af.qual.BaseSendable(b.qual) && r.equal(af, b)
	case *Object:
		if ao, ok := a.(*Object); ok && ao.qual.BaseSendable(b.qual) && r.equal(ao, b) {
			return true
		}
		if b.qual.Suffix != Latch {
			return false
		}
		if r.constructs(a, b) {
			return true
		}
		// any comparable value converts to a stringer
		as, ok := a.(*Std)
		return ok && as.Kind.Comparable() && r.equal(b, Stringer)
	}
	panic(unknownVariant(b))
}

// constructs reports whether a satisfies one of the constructor signatures
// of o. A pair already being tried further up fails.
func (r *relation) constructs(a Type, o *Object) bool {
	p := pair{a, o}
	if !r.constructing.Insert(p) {
		return false
	}
	defer r.constructing.Remove(p)
	for _, c := range o.Constructors {
		if r.sends(a, c) {
			return true
		}
	}
	return false
}
