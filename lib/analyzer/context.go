package analyzer

import (
	"github.com/vyPal/ifjc/lib/parser"
	"github.com/vyPal/ifjc/lib/symtable"
)

// Context carries the analysis state through the traversal.
type Context struct {
	Variables *symtable.Stack
	Functions *symtable.FuncTable

	// Function is the function whose body is being analyzed, or nil at
	// module level.
	Function *symtable.Function
}

func NewContext() *Context {
	ctx := &Context{
		Variables: symtable.NewStack(),
		Functions: symtable.NewFuncTable(),
	}
	registerBuiltins(ctx.Functions)
	return ctx
}

// inScope runs fn inside a fresh scope layer.
func (c *Context) inScope(fn func() error) error {
	c.Variables.Push()
	defer c.Variables.Pop()
	return fn()
}

func (c *Context) LookupVariable(name string) (*symtable.Variable, bool) {
	return c.Variables.Lookup(name)
}

func (c *Context) LookupFunction(name string) (*symtable.Function, bool) {
	return c.Functions.Lookup(name)
}

func (c *Context) AnalyzeBlock(block parser.Block) error {
	return c.inScope(func() error {
		for _, stmt := range block {
			if err := c.AnalyzeStatement(stmt); err != nil {
				return err
			}
		}
		return nil
	})
}
