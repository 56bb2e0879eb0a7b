package compiler

import "github.com/vyPal/ifjc/lib/parser"

// compileFunctionDefinition emits the function inline, guarded by a jump so
// that straight-line execution of the main body skips it.
func (ctx *Context) compileFunctionDefinition(fn *parser.FunctionDefinition) {
	end := ctx.newLabel("endfunc")
	ctx.emit("JUMP", end)
	ctx.comment("function %s", fn.Name)
	ctx.emit("LABEL", fn.Name)
	ctx.emit("CREATEFRAME")
	ctx.emit("PUSHFRAME")

	body := NewContext(ctx.Compiler)
	body.parent = ctx
	body.function = fn

	// Arguments are pushed right to left, so the first one is on top.
	for _, p := range fn.Params {
		if p.Inside == "_" {
			body.emit("CREATEFRAME")
			body.emit("DEFVAR", "TF@discard")
			body.emit("POPS", "TF@discard")
			continue
		}
		body.emit("DEFVAR", variable(p.Ref))
		body.emit("POPS", variable(p.Ref))
	}
	body.compileBlock(fn.Body)

	body.emit("POPFRAME")
	body.emit("RETURN")
	ctx.emit("LABEL", end)
}
