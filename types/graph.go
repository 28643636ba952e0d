package types

import (
	"slices"

	"github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"
)

// ObjectID names an object within its Graph.
type ObjectID int

// DefSite is where a member was declared, kept for diagnostics.
type DefSite struct {
	Line, Col uint
}

type Member struct {
	Name    string
	Type    Type
	DefSite DefSite
}

// Object is a record type: the ways it can be constructed and its members.
//
// An object definition is allocated once, by NewObject, and owns its lists.
// Every other reference to it, including references from its own members,
// is a copy obtained through Graph.Copy. Copies share the origin's member
// types and are brought up to date by Graph.Propagate once the origin's body
// is known.
type Object struct {
	base
	Constructors []*Seq
	Members      []Member

	g      *Graph
	id     ObjectID
	root   ObjectID // the definition this object descends from
	isCopy bool
}

func (*Object) Category() Category { return CategoryObject }
func (o *Object) String() string   { return Render(o, 0) }
func (o *Object) ID() ObjectID     { return o.id }
func (o *Object) IsCopy() bool     { return o.isCopy }

// Member returns the member called name.
func (o *Object) Member(name string) (Member, bool) {
	for _, m := range o.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// Graph is the arena of object types. It assigns ids and keeps, for every
// object, the ids of the copies taken of it.
type Graph struct {
	objects map[ObjectID]*Object
	copies  map[ObjectID][]ObjectID
	origins map[ObjectID]ObjectID // copy -> the object it was copied from
	next    ObjectID
}

func NewGraph() *Graph {
	return &Graph{
		objects: make(map[ObjectID]*Object),
		copies:  make(map[ObjectID][]ObjectID),
		origins: make(map[ObjectID]ObjectID),
	}
}

func (g *Graph) register(o *Object) {
	o.g = g
	o.id = g.next
	g.next++
	g.objects[o.id] = o
}

// NewObject allocates an object definition. It is not operable until
// Finalize is called on it.
func (g *Graph) NewObject(ctors []*Seq, q Qualifier) *Object {
	for i, c := range ctors {
		if c == nil {
			panic(errors.Errorf("types.NewObject: nil constructor at %d", i))
		}
	}
	o := &Object{base: newBase(q), Constructors: ctors}
	o.operable = false
	g.register(o)
	o.root = o.id
	return o
}

func (g *Graph) owns(o *Object) {
	if o.g != g {
		panic(errors.Errorf("types: object %d belongs to another graph", o.id))
	}
}

// AddConstructor appends a constructor signature to a definition.
func (g *Graph) AddConstructor(o *Object, sig *Seq) {
	g.owns(o)
	if sig == nil {
		panic(errors.New("types.AddConstructor: nil signature"))
	}
	o.Constructors = append(o.Constructors, sig)
}

// AddMember appends a member to a definition whose body is being read.
func (g *Graph) AddMember(o *Object, name string, t Type, site DefSite) {
	g.owns(o)
	if t == nil {
		panic(errors.Errorf("types.AddMember: nil type for %q", name))
	}
	o.Members = append(o.Members, Member{Name: name, Type: t, DefSite: site})
}

// Finalize marks a definition complete and pushes its lists to all copies.
func (g *Graph) Finalize(o *Object) {
	g.owns(o)
	o.operable = true
	g.Propagate(o)
}

// Copy returns a type that may be stored and erased independently of t.
// Sentinels come back as themselves. Lists and filters are copied deeply.
// An object copy shares the member types of t and is registered as a copy
// of t.
func (g *Graph) Copy(t Type) Type {
	if IsSentinel(t) {
		return t
	}
	switch t := t.(type) {
	case *Std:
		return NewStd(t.Kind, t.qual)
	case *Seq:
		list := make([]Type, len(t.List))
		for i, e := range t.List {
			list[i] = g.Copy(e)
		}
		return NewSeq(list...)
	case *Error:
		return NewError()
	case *Filter:
		return &Filter{base: newBase(t.qual), From: g.Copy(t.From).(*Seq), To: g.Copy(t.To).(*Seq)}
	case *Object:
		return g.copyObject(t, t.qual)
	}
	panic(unknownVariant(t))
}

// CopyAs is Copy with the top-level qualifier replaced by q.
func (g *Graph) CopyAs(t Type, q Qualifier) Type {
	if IsSentinel(t) {
		panic(errors.Errorf("types.CopyAs: requalifying sentinel %s", t))
	}
	if _, ok := t.(*Seq); ok {
		panic(errors.Errorf("types.CopyAs: requalifying list %s", t))
	}
	if o, ok := t.(*Object); ok {
		return g.copyObject(o, q)
	}
	c := g.Copy(t)
	c.node().setQual(q)
	return c
}

func (g *Graph) copyObject(o *Object, q Qualifier) *Object {
	g.owns(o)
	c := &Object{
		base:         newBase(q),
		Constructors: slices.Clone(o.Constructors),
		Members:      slices.Clone(o.Members),
		root:         o.root,
		isCopy:       true,
	}
	g.register(c)
	g.copies[o.id] = append(g.copies[o.id], c.id)
	g.origins[c.id] = o.id
	return c
}

// Propagate overwrites the lists of every copy of o, and of every copy of
// those copies, with the lists of o. Each object is visited once, so copy
// graphs made cyclic by recursive definitions terminate.
func (g *Graph) Propagate(o *Object) {
	g.owns(o)
	g.propagate(o, set.New[ObjectID](len(g.objects)))
}

func (g *Graph) propagate(o *Object, visited *set.Set[ObjectID]) {
	if !visited.Insert(o.id) {
		return
	}
	for _, id := range g.copies[o.id] {
		c := g.objects[id]
		c.Constructors = slices.Clone(o.Constructors)
		c.Members = slices.Clone(o.Members)
		g.propagate(c, visited)
	}
}

// CopiesOf returns the live copies taken directly of o.
func (g *Graph) CopiesOf(o *Object) []*Object {
	ids := g.copies[o.id]
	out := make([]*Object, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.objects[id])
	}
	return out
}

// OriginOf returns the object c was copied from, if it is still live.
func (g *Graph) OriginOf(c *Object) (*Object, bool) {
	id, ok := g.origins[c.id]
	if !ok {
		return nil, false
	}
	o, ok := g.objects[id]
	return o, ok
}

func (g *Graph) Lookup(id ObjectID) (*Object, bool) {
	o, ok := g.objects[id]
	return o, ok
}

// Len is the number of live objects.
func (g *Graph) Len() int { return len(g.objects) }

// Erase destroys t and everything it owns. Sentinels are never destroyed.
// An object copy owns nothing: erasing it only drops it from the graph, and
// its own copies are handed to its origin.
func (g *Graph) Erase(t Type) {
	if t == nil || IsSentinel(t) {
		return
	}
	n := t.node()
	if n.erased {
		return
	}
	n.erased = true
	switch t := t.(type) {
	case *Std, *Error:
	case *Seq:
		for _, e := range t.List {
			g.Erase(e)
		}
	case *Filter:
		g.Erase(t.From)
		g.Erase(t.To)
	case *Object:
		if !t.isCopy {
			for _, c := range t.Constructors {
				g.Erase(c)
			}
			for _, m := range t.Members {
				g.Erase(m.Type)
			}
		}
		g.release(t)
	default:
		panic(unknownVariant(t))
	}
}

// release drops o from the graph. The copies taken of a copy move up to its
// origin so that propagation still reaches them; the copies of an erased
// definition are orphaned.
func (g *Graph) release(o *Object) {
	g.owns(o)
	origin, isCopy := g.origins[o.id]
	if isCopy {
		g.copies[origin] = slices.DeleteFunc(g.copies[origin], func(id ObjectID) bool { return id == o.id })
		delete(g.origins, o.id)
	}
	for _, id := range g.copies[o.id] {
		if isCopy {
			g.origins[id] = origin
			g.copies[origin] = append(g.copies[origin], id)
		} else {
			delete(g.origins, id)
		}
	}
	delete(g.copies, o.id)
	delete(g.objects, o.id)
	o.Constructors = nil
	o.Members = nil
}
