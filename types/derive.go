package types

// NextTerm looks past the current operator at the term that follows it. It
// returns the type of that term when the term may take part in the same
// expression, and false otherwise.
type NextTerm func() (Type, bool)

func latch(k Kind) *Std { return NewStd(k, Q(Latch)) }

// Result applies the comma operator: operands followed by an operator, or
// arguments followed by the filter they are passed to. Failure yields
// ErrType.
func Result(a, b Type) Type {
	switch b := b.(type) {
	case *Std:
		if as, ok := a.(*Seq); ok {
			return ResultOf(as, b.Kind)
		}
		return ErrType
	case *Seq:
		if len(b.List) != 1 {
			return ErrType
		}
		return Result(a, b.List[0])
	case *Filter:
		if Sends(a, b.From) {
			return b.To
		}
		return ErrType
	case *Error, *Object:
		return ErrType
	}
	panic(unknownVariant(b))
}

// ResultOf derives the type of applying op to operands.
func ResultOf(operands *Seq, op Kind) Type {
	switch len(operands.List) {
	case 1:
		if x, ok := scalarOperand(operands.List[0]); ok {
			return unary(x, op)
		}
	case 2:
		x, ok1 := scalarOperand(operands.List[0])
		y, ok2 := scalarOperand(operands.List[1])
		if ok1 && ok2 {
			return binary(x, y, op)
		}
	}
	return ErrType
}

// operators apply to constant or latched scalars only
func scalarOperand(t Type) (*Std, bool) {
	s, ok := t.(*Std)
	if !ok || (s.qual.Suffix != Constant && s.qual.Suffix != Latch) {
		return nil, false
	}
	return s, true
}

func unary(x *Std, op Kind) Type {
	switch op {
	case Not:
		if Sends(x, stdBool) {
			return latch(Bool)
		}
	case Complement, DPlus, DMinus:
		if Sends(x, stdInt) {
			return latch(Int)
		}
	case Plus, Minus:
		if Sends(x, stdInt) {
			return latch(Int)
		}
		if Sends(x, stdFloat) {
			return latch(Float)
		}
	}
	return ErrType
}

func binary(x, y *Std, op Kind) Type {
	switch op {
	case DOr, DAnd:
		if Sends(x, stdBool) && Sends(y, stdBool) {
			return latch(Bool)
		}
	case Or, Xor, And:
		if Sends(x, stdInt) && Sends(y, stdInt) {
			return latch(Int)
		}
	case DEquals, NEquals, LT, GT, LE, GE:
		if Comparable(x, y) {
			return latch(max(x.Kind, y.Kind))
		}
	case Times, Divide, Mod, Plus, Minus:
		return arithmetic(x, y, op == Plus)
	}
	return ErrType
}

// arithmetic is the int-then-float rule shared by the binary operators and
// flow derivation. With concat set a string on either side joins with any
// scalar on the other.
func arithmetic(x, y Type, concat bool) Type {
	if Sends(x, stdInt) && Sends(y, stdInt) {
		return latch(Int)
	}
	if Sends(x, stdFloat) && Sends(y, stdFloat) {
		return latch(Float)
	}
	if concat {
		_, xScalar := scalarOperand(x)
		_, yScalar := scalarOperand(y)
		if (Sends(x, stdString) && yScalar) || (Sends(y, stdString) && xScalar) {
			return latch(String)
		}
	}
	return ErrType
}

// DeriveFlow decides whether op, written after a term of type prev, is the
// binary operator joining prev to the next term or a postfix operator on
// prev alone. The binary reading is tried first; when it succeeds the second
// result reports that the next term was consumed.
//
// Only + - ++ -- fall back to a unary reading. * / % have none, so without a
// usable next term they fail.
func DeriveFlow(prev Type, op Kind, next NextTerm) (Type, bool) {
	switch op {
	case Times, Divide, Mod, Plus, Minus, DPlus, DMinus:
	default:
		return ErrType, false
	}
	if next != nil {
		if nt, ok := next(); ok && OK(nt) {
			if t := arithmetic(prev, nt, op == Plus); OK(t) {
				return t, true
			}
		}
	}
	switch op {
	case Plus, Minus:
		if Sends(prev, stdInt) {
			return latch(Int), false
		}
		if Sends(prev, stdFloat) {
			return latch(Float), false
		}
	case DPlus, DMinus:
		if Sends(prev, stdInt) {
			return latch(Int), false
		}
	}
	return ErrType, false
}
