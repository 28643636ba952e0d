package types

import (
	"testing"
)

func TestQualifierTransitions(t *testing.T) {
	type state = Qualifier
	c, l, li, s := Q(Constant), Q(Latch), Q(List), Q(Stream)
	a1, a2 := QDepth(Array, 1), QDepth(Array, 2)
	p1, p2 := QDepth(Pool, 1), QDepth(Pool, 2)
	from := []state{c, l, li, s, a1, a2, p1, p2}

	// per op, the state each entry of `from` ends up in; a zero Qualifier
	// paired with ok=false means refused
	type res struct {
		ok   bool
		want state
	}
	no := res{}
	yes := func(q state) res { return res{true, q} }

	tests := []struct {
		op   Op
		want []res
	}{
		{Constantize, []res{yes(c), yes(c), yes(li), yes(a1), yes(a1), yes(a2), yes(a1), yes(a2)}},
		{ConstantizeReference, []res{yes(c), yes(c), no, no, yes(a1), yes(a2), yes(a1), yes(a2)}},
		{Delatch, []res{no, yes(l), no, yes(l), no, no, yes(p1), yes(p2)}},
		{CopyDelatch, []res{yes(l), yes(l), yes(l), yes(l), yes(p1), yes(p2), yes(p1), yes(p2)}},
		{ConstantDelatch, []res{no, no, yes(c), yes(c), no, no, no, no}},
		{Destream, []res{no, no, no, yes(l), yes(l), no, yes(l), no}},
		{CopyDestream, []res{no, no, yes(l), yes(l), yes(l), no, yes(l), no}},
		{ConstantDestream, []res{no, no, yes(c), yes(c), yes(c), no, yes(c), no}},
	}
	for _, tt := range tests {
		for i, q := range from {
			got := q
			ok := got.Apply(tt.op)
			want := tt.want[i]
			if ok != want.ok {
				t.Errorf("%s on %v: ok=%v, want %v", tt.op, q, ok, want.ok)
				continue
			}
			if !ok {
				want.want = q
			}
			if got != want.want {
				t.Errorf("%s on %v: got %v, want %v", tt.op, q, got, want.want)
			}
		}
	}
}

func TestNamedTransitionsMatchApply(t *testing.T) {
	named := map[Op]func(*Qualifier) bool{
		ConstantizeReference: (*Qualifier).ConstantizeReference,
		Delatch:              (*Qualifier).Delatch,
		CopyDelatch:          (*Qualifier).CopyDelatch,
		ConstantDelatch:      (*Qualifier).ConstantDelatch,
		Destream:             (*Qualifier).Destream,
		CopyDestream:         (*Qualifier).CopyDestream,
		ConstantDestream:     (*Qualifier).ConstantDestream,
	}
	for op, fn := range named {
		for s := Constant; s <= Pool; s++ {
			q1, q2 := Q(s), Q(s)
			if s == Array || s == Pool {
				q1, q2 = QDepth(s, 1), QDepth(s, 1)
			}
			if fn(&q1) != q2.Apply(op) || q1 != q2 {
				t.Errorf("%s on %s: named and table disagree: %v vs %v", op, s, q1, q2)
			}
		}
	}
	q := Q(Latch)
	q.Constantize()
	if q != Q(Constant) {
		t.Errorf("constantize latch: %v", q)
	}
}

func TestConstantizedStreamIsOneDeep(t *testing.T) {
	q := Q(Stream)
	q.Constantize()
	if q.Depth != 1 || !q.BaseEquals(QDepth(Array, 1)) {
		t.Errorf("constantize stream: %v", q)
	}
	if q.String() != "[.]" {
		t.Errorf("constantized stream renders as %q", q.String())
	}
	checkQualifier(q)
}

func TestBaseSendable(t *testing.T) {
	tests := []struct {
		from, to Qualifier
		want     bool
	}{
		{Q(Constant), Q(Constant), true},
		{Q(Constant), Q(Latch), false},
		{Q(Latch), Q(Constant), true},
		{Q(Latch), Q(Latch), true},
		{Q(Latch), Q(Stream), true},
		{Q(Latch), Q(List), false},
		{Q(Stream), Q(Stream), false},
		{Q(List), Q(List), false},
		{QDepth(Array, 1), QDepth(Array, 1), true},
		{QDepth(Array, 1), QDepth(Array, 2), false},
		{QDepth(Array, 1), QDepth(Pool, 1), false},
		{QDepth(Pool, 2), QDepth(Pool, 2), true},
		{QDepth(Pool, 2), QDepth(Array, 2), true},
		{QDepth(Pool, 2), QDepth(Array, 1), false},
	}
	for _, tt := range tests {
		if got := tt.from.BaseSendable(tt.to); got != tt.want {
			t.Errorf("%v >> %v: got %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestSuffixString(t *testing.T) {
	tests := []struct {
		q    Qualifier
		want string
	}{
		{Q(Constant), ""},
		{Q(Latch), `\`},
		{Q(List), "[]"},
		{Q(Stream), `\\`},
		{QDepth(Array, 1), "[.]"},
		{QDepth(Array, 3), "[.][.][.]"},
		{QDepth(Pool, 2), `\[.][.]`},
	}
	for _, tt := range tests {
		if got := tt.q.String(); got != tt.want {
			t.Errorf("%s/%d: got %q, want %q", tt.q.Suffix, tt.q.Depth, got, tt.want)
		}
	}
}
