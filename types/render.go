package types

import (
	"strings"

	"github.com/hashicorp/go-set/v3"
)

type objectKey struct {
	g    *Graph
	root ObjectID
}

type renderer struct {
	b       strings.Builder
	drawing *set.Set[objectKey] // definitions currently being drawn
}

// Render writes t in its canonical textual form for diagnostics. Object
// entries go on their own lines, indented one tab deeper than depth. An
// object met again while it is being drawn is shown as {...}.
func Render(t Type, depth int) string {
	r := &renderer{drawing: set.New[objectKey](0)}
	r.render(t, depth)
	return r.b.String()
}

func (r *renderer) indent(depth int) {
	r.b.WriteByte('\n')
	r.b.WriteString(strings.Repeat("\t", depth))
}

func (r *renderer) render(t Type, depth int) {
	switch t := t.(type) {
	case *Std:
		r.b.WriteString(t.Kind.String())
		r.b.WriteString(t.qual.String())
	case *Seq:
		for i, e := range t.List {
			if i > 0 {
				r.b.WriteString(", ")
			}
			r.render(e, depth)
		}
	case *Error:
		r.b.WriteString("<ERROR>")
	case *Filter:
		r.b.WriteByte('[')
		r.render(t.From, depth+1)
		r.b.WriteString(" --> ")
		r.render(t.To, depth+1)
		r.b.WriteByte(']')
		r.b.WriteString(t.qual.String())
	case *Object:
		r.object(t, depth)
	default:
		panic(unknownVariant(t))
	}
}

func (r *renderer) object(o *Object, depth int) {
	key := objectKey{o.g, o.root}
	if !r.drawing.Insert(key) {
		r.b.WriteString("{...}")
		r.b.WriteString(o.qual.String())
		return
	}
	defer r.drawing.Remove(key)

	r.b.WriteByte('{')
	for i, c := range o.Constructors {
		if i > 0 {
			r.b.WriteString(", ")
		}
		r.indent(depth + 1)
		r.b.WriteString("=[")
		r.render(c, depth+1)
		r.b.WriteByte(']')
	}
	if len(o.Constructors) > 0 && len(o.Members) > 0 {
		r.b.WriteString(", ")
	}
	for i, m := range o.Members {
		if i > 0 {
			r.b.WriteString(", ")
		}
		r.indent(depth + 1)
		r.b.WriteString(m.Name)
		r.b.WriteByte('=')
		r.render(m.Type, depth+1)
	}
	if len(o.Constructors)+len(o.Members) > 0 {
		r.indent(depth)
	}
	r.b.WriteByte('}')
	r.b.WriteString(o.qual.String())
}
