// Package symtable holds the scoped variable table and the function table
// used during semantic analysis.
package symtable

import (
	"github.com/vyPal/ifjc/lib/diag"
	"github.com/vyPal/ifjc/lib/parser"
)

// Scope is one layer of the variable stack. IDs are unique for the lifetime
// of a Stack; the global scope has ID 0.
type Scope struct {
	ID   int
	vars map[string]*Variable
}

type Variable struct {
	Name      string
	Type      parser.DataType
	Immutable bool
	Ref       parser.Ref

	// initializedIn is the scope whose code last made the variable
	// definitely initialized, or nil.
	initializedIn *Scope
}

func (v *Variable) Initialized() bool {
	return v.initializedIn != nil
}

// Stack is a stack of scopes. Lookups go from the innermost scope outwards.
type Stack struct {
	scopes []*Scope
	nextID int
}

// NewStack returns a stack holding only the global scope.
func NewStack() *Stack {
	s := &Stack{}
	s.Push()
	return s
}

func (s *Stack) Push() *Scope {
	scope := &Scope{ID: s.nextID, vars: make(map[string]*Variable)}
	s.nextID++
	s.scopes = append(s.scopes, scope)
	return scope
}

// Pop removes the innermost scope. Any variable in the remaining scopes whose
// initialization happened in the popped scope becomes uninitialized again.
func (s *Stack) Pop() {
	if len(s.scopes) <= 1 {
		panic("symtable: cannot pop the global scope")
	}
	popped := s.scopes[len(s.scopes)-1]
	s.scopes = s.scopes[:len(s.scopes)-1]
	for _, scope := range s.scopes {
		for _, v := range scope.vars {
			if v.initializedIn == popped {
				v.initializedIn = nil
			}
		}
	}
}

func (s *Stack) Top() *Scope {
	return s.scopes[len(s.scopes)-1]
}

func (s *Stack) Depth() int {
	return len(s.scopes)
}

// Define adds a variable to the innermost scope. Defining a name twice in the
// same scope is a redefinition; shadowing an outer scope is allowed.
func (s *Stack) Define(name string, dt parser.DataType, immutable bool) (*Variable, error) {
	top := s.Top()
	if _, ok := top.vars[name]; ok {
		return nil, diag.Errorf(diag.KindRedefinition, "variable %s is already defined in this scope", name)
	}
	v := &Variable{
		Name:      name,
		Type:      dt,
		Immutable: immutable,
		Ref:       parser.Ref{Scope: top.ID, Name: name},
	}
	top.vars[name] = v
	return v, nil
}

func (s *Stack) Lookup(name string) (*Variable, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if v, ok := s.scopes[i].vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// MarkInitialized records that v is definitely initialized from here until
// the innermost scope is popped. A variable already initialized further out
// keeps its outer scope.
func (s *Stack) MarkInitialized(v *Variable) {
	if v.initializedIn == nil {
		v.initializedIn = s.Top()
	}
}
