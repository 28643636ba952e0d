package sema

import (
	"anic/types"
)

type symbol interface {
	ident() string
	typ() types.Type
}

// a named object definition
type objectSym struct {
	def *ObjectDef
	obj *types.Object
}

func (s *objectSym) ident() string    { return s.def.Name }
func (s *objectSym) typ() types.Type { return s.obj }

// a name bound to any type: the built-ins, and REPL definitions
type aliasSym struct {
	name string
	t    types.Type
}

func (s *aliasSym) ident() string    { return s.name }
func (s *aliasSym) typ() types.Type { return s.t }

type symbolTable struct {
	table map[string]symbol
}

func newSymbolTable() *symbolTable {
	return &symbolTable{table: make(map[string]symbol)}
}

type scope struct {
	st *symbolTable
}

func (s *scope) get(ident string) symbol {
	if s, found := s.st.table[ident]; found {
		return s
	}
	return nil
}

func (s *scope) push(sym symbol) bool {
	if s.get(sym.ident()) != nil {
		return false
	}
	s.st.table[sym.ident()] = sym
	return true
}

func newScope(st *symbolTable) *scope {
	return &scope{st: st}
}

type scopeStack struct {
	stack []*scope
}

func newScopeStack() *scopeStack {
	return &scopeStack{stack: []*scope{newScope(newSymbolTable())}}
}

func (s *scopeStack) push(scope *scope) {
	s.stack = append(s.stack, scope)
}

// initialize a new scope on the top of the stack
func (s *scopeStack) enterScope() {
	s.push(newScope(newSymbolTable()))
}

// terminates the current scope. the bottom scope is never removed.
func (s *scopeStack) exitScope() {
	stackLen := len(s.stack)
	if stackLen <= 1 {
		return
	}
	s.stack = s.stack[:stackLen-1]
}

// searches ident from the top scope down, and returns the first found
func (s *scopeStack) findSymbol(ident string) symbol {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if sym := s.stack[i].get(ident); sym != nil {
			return sym
		}
	}
	return nil
}

// adds the new symbol sym to the current top-scope.
// returns false if the top scope already has a symbol of that name.
func (s *scopeStack) addSymbol(sym symbol) bool {
	return s.stack[len(s.stack)-1].push(sym)
}
