// Package analyzer type checks an IFJ23 program and annotates the tree with
// resolved types and storage refs for the code generator.
package analyzer

import (
	"github.com/vyPal/ifjc/lib/diag"
	"github.com/vyPal/ifjc/lib/parser"
	"github.com/vyPal/ifjc/lib/symtable"
)

// Result is a program that passed analysis. The generator only accepts
// programs wrapped in a Result.
type Result struct {
	Program   *parser.Program
	Functions *symtable.FuncTable
}

// Analyze registers every function signature, then checks the program item
// by item. The first error found stops analysis.
func Analyze(prog *parser.Program) (*Result, error) {
	ctx := NewContext()
	if err := ScanSymbols(prog, ctx.Functions); err != nil {
		return nil, err
	}

	for _, item := range prog.Items {
		var err error
		switch it := item.(type) {
		case *parser.FunctionDefinition:
			err = ctx.AnalyzeFunction(it)
		case parser.Statement:
			err = ctx.AnalyzeStatement(it)
		default:
			err = diag.Errorf(diag.KindInternal, "unknown program item %T", item)
		}
		if err != nil {
			return nil, err
		}
	}
	return &Result{Program: prog, Functions: ctx.Functions}, nil
}

// ScanSymbols registers the signature of every function defined in prog.
func ScanSymbols(prog *parser.Program, funcs *symtable.FuncTable) error {
	for _, fn := range prog.Functions() {
		for _, p := range fn.Params {
			if p.Labeled() && p.Outside == p.Inside {
				return diag.Errorf(diag.KindOther, "parameter %s of %s has the same outside and inside name", p.Inside, fn.Name)
			}
		}
		err := funcs.Register(&symtable.Function{
			Name:   fn.Name,
			Params: fn.Params,
			Return: fn.ReturnType,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) AnalyzeFunction(def *parser.FunctionDefinition) error {
	fn, ok := c.LookupFunction(def.Name)
	if !ok {
		return diag.Errorf(diag.KindInternal, "function %s was not registered", def.Name)
	}
	c.Function = fn
	defer func() { c.Function = nil }()

	err := c.inScope(func() error {
		for i := range def.Params {
			param := &def.Params[i]
			if param.Inside == "_" {
				continue
			}
			v, err := c.Variables.Define(param.Inside, param.Type, true)
			if err != nil {
				return err
			}
			c.Variables.MarkInitialized(v)
			param.Ref = v.Ref
		}
		return c.AnalyzeBlock(def.Body)
	})
	if err != nil {
		return err
	}

	if def.ReturnType != nil && !ReturnsOnAllPaths(def.Body) {
		return diag.Errorf(diag.KindWrongReturn, "function %s does not return a value on every path", def.Name)
	}
	return nil
}

// ReturnsOnAllPaths reports whether every path through block ends in a
// return. Only a direct return or an if/else with both branches returning
// counts; loops never do.
func ReturnsOnAllPaths(block parser.Block) bool {
	for _, stmt := range block {
		switch s := stmt.(type) {
		case *parser.Return:
			return true
		case *parser.Conditional:
			if s.Else != nil && ReturnsOnAllPaths(s.Body) && ReturnsOnAllPaths(s.Else) {
				return true
			}
		}
	}
	return false
}
