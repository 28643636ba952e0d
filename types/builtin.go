package types

var builtins = NewGraph()

// Stringer is the built-in object of anything that can render itself:
// {toString=[null --> string]}. Every comparable scalar may be delivered
// to a latched object of this shape.
var Stringer = builtins.NewStringer()

// NewStringer defines an object of the Stringer shape in g, for callers that
// need it under a name of their own.
func (g *Graph) NewStringer() *Object {
	o := g.NewObject(nil, Q(Latch))
	toString := NewFilter(NullType, NewStd(String, Q(Constant)), Q(Constant))
	g.AddMember(o, "toString", toString, DefSite{})
	g.Finalize(o)
	return o
}
