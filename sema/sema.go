// Package sema resolves definition files into object types. Names in type
// expressions are looked up in a stack of scopes: built-ins at the bottom,
// the definition file above them, and interactive bindings on top.
package sema

import (
	"fmt"
	"strings"

	"anic/lexer"
	"anic/parser"
	"anic/types"
)

type Err struct {
	Line, Column int
	Msg          string
}

func (e Err) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// ErrList is the error returned by Type and Define.
type ErrList []Err

func (l ErrList) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

type Resolver struct {
	g             *types.Graph
	stackOfScopes *scopeStack
	defs          []*objectSym // declaration order
	fixed         int          // scopes that Drop never removes
	Errs          []Err
}

func NewResolver(g *types.Graph) *Resolver {
	r := &Resolver{g: g, stackOfScopes: newScopeStack()}
	r.stackOfScopes.addSymbol(&aliasSym{name: "Stringer", t: g.NewStringer()})
	r.stackOfScopes.enterScope()
	r.fixed = len(r.stackOfScopes.stack)
	return r
}

func (r *Resolver) errorf(pos Pos, msgf string, args ...interface{}) {
	r.Errs = append(r.Errs, Err{Line: pos.Line, Column: pos.Col, Msg: fmt.Sprintf(msgf, args...)})
}

func (r *Resolver) Graph() *types.Graph { return r.g }

// Lookup makes the resolver a parser.Scope.
func (r *Resolver) Lookup(name string) (types.Type, bool) {
	sym := r.stackOfScopes.findSymbol(name)
	if sym == nil {
		return nil, false
	}
	return sym.typ(), true
}

// Object returns the definition called name.
func (r *Resolver) Object(name string) (*types.Object, bool) {
	t, ok := r.Lookup(name)
	if !ok {
		return nil, false
	}
	o, ok := t.(*types.Object)
	return o, ok
}

// Objects returns the definitions resolved so far, in file order.
func (r *Resolver) Objects() []*types.Object {
	out := make([]*types.Object, len(r.defs))
	for i, d := range r.defs {
		out[i] = d.obj
	}
	return out
}

// Resolve declares every object of defs, then reads their constructors and
// members, then finalizes them. Declaring first lets definitions refer to
// themselves and to each other in any order. Problems are collected in Errs;
// a member or constructor that fails to parse is left out.
func (r *Resolver) Resolve(defs *Defs) {
	declared := make([]*objectSym, 0, len(defs.Objects))
	for i := range defs.Objects {
		if sym := r.declare(&defs.Objects[i]); sym != nil {
			declared = append(declared, sym)
		}
	}
	for _, sym := range declared {
		r.define(sym)
	}
	for _, sym := range declared {
		r.g.Finalize(sym.obj)
	}
	r.defs = append(r.defs, declared...)
}

func (r *Resolver) declare(def *ObjectDef) *objectSym {
	if def.Name == "" {
		r.errorf(def.Pos, "object without a name")
		return nil
	}
	if _, ok := types.KindNamed(def.Name); ok {
		r.errorf(def.Pos, "'%s' is a primitive type and cannot be redefined", def.Name)
		return nil
	}
	q := types.Q(types.Latch)
	if def.Qualifier != "" {
		s, ok := types.SuffixNamed(def.Qualifier)
		if !ok {
			r.errorf(def.Pos, "object %s: unknown qualifier '%s'", def.Name, def.Qualifier)
			return nil
		}
		q = types.Q(s)
		if s == types.Array || s == types.Pool {
			q = types.QDepth(s, 1)
		}
	}
	sym := &objectSym{def: def, obj: r.g.NewObject(nil, q)}
	if !r.stackOfScopes.addSymbol(sym) {
		r.errorf(def.Pos, "object '%s' is already defined", def.Name)
		r.g.Erase(sym.obj)
		return nil
	}
	return sym
}

func (r *Resolver) define(sym *objectSym) {
	def := sym.def
	for i, src := range def.Constructors {
		p := parser.New(lexer.New(src), r.g, r)
		sig := p.ParseSeq()
		if len(p.Errs) > 0 {
			r.parseErrs(def.Pos, fmt.Sprintf("object %s, constructor %d", def.Name, i+1), p.Errs)
			r.g.Erase(sig)
			continue
		}
		r.g.AddConstructor(sym.obj, sig)
	}
	seen := make(map[string]bool)
	for _, m := range def.Members {
		if m.Name == "" {
			r.errorf(m.Pos, "object %s: member without a name", def.Name)
			continue
		}
		if seen[m.Name] {
			r.errorf(m.Pos, "object %s: member '%s' declared twice", def.Name, m.Name)
			continue
		}
		seen[m.Name] = true
		p := parser.New(lexer.New(m.Type), r.g, r)
		t := p.ParseType()
		if len(p.Errs) > 0 {
			r.parseErrs(m.Pos, fmt.Sprintf("object %s, member %s", def.Name, m.Name), p.Errs)
			r.g.Erase(t)
			continue
		}
		r.g.AddMember(sym.obj, m.Name, t, types.DefSite{Line: uint(m.Line), Col: uint(m.Col)})
	}
}

// parser positions are relative to the expression; on its first line they
// are shifted to the entry that holds it
func (r *Resolver) parseErrs(at Pos, context string, errs []parser.Err) {
	for _, e := range errs {
		pos := Pos{Line: at.Line + int(e.Line) - 1, Col: int(e.Column)}
		if e.Line == 1 {
			pos.Col += at.Col - 1
		}
		r.errorf(pos, "%s: %s", context, e.Msg)
	}
}

// Type parses a standalone type expression against the resolved
// definitions. Positions in the returned ErrList are within expr.
func (r *Resolver) Type(expr string) (types.Type, error) {
	p := parser.New(lexer.New(expr), r.g, r)
	t := p.ParseType()
	if len(p.Errs) > 0 {
		r.g.Erase(t)
		errs := make(ErrList, len(p.Errs))
		for i, e := range p.Errs {
			errs[i] = Err{Line: int(e.Line), Column: int(e.Column), Msg: e.Msg}
		}
		return nil, errs
	}
	return t, nil
}

// Define binds name to the type expr in a new scope, so that it shadows
// earlier bindings of the same name until Drop is called.
func (r *Resolver) Define(name, expr string) (types.Type, error) {
	if _, ok := types.KindNamed(name); ok || name == "" {
		return nil, ErrList{{Line: 1, Column: 1, Msg: fmt.Sprintf("cannot bind '%s'", name)}}
	}
	t, err := r.Type(expr)
	if err != nil {
		return nil, err
	}
	r.stackOfScopes.enterScope()
	r.stackOfScopes.addSymbol(&aliasSym{name: name, t: t})
	return t, nil
}

// Drop removes the latest binding made by Define and reports whether there
// was one.
func (r *Resolver) Drop() bool {
	if len(r.stackOfScopes.stack) <= r.fixed {
		return false
	}
	top := r.stackOfScopes.stack[len(r.stackOfScopes.stack)-1]
	for _, sym := range top.st.table {
		r.g.Erase(sym.typ())
	}
	r.stackOfScopes.exitScope()
	return true
}
