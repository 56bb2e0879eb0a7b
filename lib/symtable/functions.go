package symtable

import (
	"github.com/vyPal/ifjc/lib/diag"
	"github.com/vyPal/ifjc/lib/parser"
)

// Function is a function table slot. Return is nil for procedures.
type Function struct {
	Name    string
	Params  []parser.Parameter
	Return  *parser.DataType
	Builtin bool
	// Variadic functions accept any number of untyped arguments.
	Variadic bool
}

type FuncTable struct {
	funcs map[string]*Function
}

func NewFuncTable() *FuncTable {
	return &FuncTable{funcs: make(map[string]*Function)}
}

func (t *FuncTable) Register(fn *Function) error {
	if _, ok := t.funcs[fn.Name]; ok {
		return diag.Errorf(diag.KindRedefinition, "function %s is already defined", fn.Name)
	}
	t.funcs[fn.Name] = fn
	return nil
}

func (t *FuncTable) Lookup(name string) (*Function, bool) {
	fn, ok := t.funcs[name]
	return fn, ok
}
