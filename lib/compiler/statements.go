package compiler

import (
	"fmt"

	"github.com/vyPal/ifjc/lib/parser"
)

func (ctx *Context) compileStatement(s parser.Statement) {
	switch s := s.(type) {
	case *parser.VariableDefinition:
		ctx.compileVariableDefinition(s)
	case *parser.Assignment:
		ctx.compileExpression(s.Value)
		ctx.emit("POPS", variable(s.Ref))
	case *parser.FunctionCall:
		ctx.compileCall(s.Call)
		ctx.emit("POPS", variable(s.Ref))
	case *parser.ProcedureCall:
		if fn := ctx.compileCall(s.Call); fn.Return != nil {
			ctx.emit("CLEARS")
		}
	case *parser.Conditional:
		ctx.compileIf(s)
	case *parser.Iteration:
		ctx.compileWhile(s)
	case *parser.Return:
		ctx.compileReturn(s)
	default:
		panic(fmt.Sprintf("unknown statement %T", s))
	}
}

func (ctx *Context) compileBlock(b parser.Block) {
	inner := ctx.NewContext()
	for _, s := range b {
		inner.compileStatement(s)
	}
}

// declare emits the DEFVAR for a local slot unless it was already declared
// ahead of the current loop or at program start.
func (ctx *Context) declare(ref parser.Ref) {
	if ctx.hoisted || ref.Global() {
		return
	}
	ctx.emit("DEFVAR", variable(ref))
}

func (ctx *Context) compileVariableDefinition(def *parser.VariableDefinition) {
	dest := variable(def.Ref)
	ctx.declare(def.Ref)
	switch {
	case def.Call != nil:
		ctx.compileCall(def.Call)
		ctx.emit("POPS", dest)
	case def.Value != nil:
		ctx.compileExpression(def.Value)
		ctx.emit("POPS", dest)
	case def.Resolved.Nullable:
		ctx.emit("MOVE", dest, "nil@nil")
	}
}

func (ctx *Context) compileIf(s *parser.Conditional) {
	elseLabel := ctx.newLabel("else")

	if b := s.Condition.Binding; b != nil {
		ctx.emit("PUSHS", variable(b.Outer))
		ctx.emit("PUSHS", "nil@nil")
		ctx.emit("EQS")
		ctx.emit("NOTS")
	} else {
		ctx.compileExpression(s.Condition.Expr)
	}
	ctx.emit("PUSHS", literalBool(true))
	ctx.emit("JUMPIFNEQS", elseLabel)

	body := ctx.NewContext()
	if b := s.Condition.Binding; b != nil {
		body.declare(b.Shadow)
		body.emit("MOVE", variable(b.Shadow), variable(b.Outer))
	}
	body.compileBlock(s.Body)

	if s.Else == nil {
		ctx.emit("LABEL", elseLabel)
		return
	}
	endLabel := ctx.newLabel("endif")
	ctx.emit("JUMP", endLabel)
	ctx.emit("LABEL", elseLabel)
	ctx.compileBlock(s.Else)
	ctx.emit("LABEL", endLabel)
}

// compileWhile lowers a loop. DEFVAR may run only once per frame, so the
// first loop entered declares every slot its body (nested loops included)
// will use, and the body is emitted with declarations suppressed.
func (ctx *Context) compileWhile(s *parser.Iteration) {
	if !ctx.hoisted {
		for _, ref := range hoistedRefs(s.Body) {
			ctx.emit("DEFVAR", variable(ref))
		}
	}

	bodyLabel := ctx.newLabel("while")
	condLabel := ctx.newLabel("cond")
	ctx.emit("JUMP", condLabel)
	ctx.emit("LABEL", bodyLabel)

	body := ctx.NewContext()
	body.hoisted = true
	body.compileBlock(s.Body)

	ctx.emit("LABEL", condLabel)
	ctx.compileExpression(s.Condition)
	ctx.emit("PUSHS", literalBool(true))
	ctx.emit("JUMPIFEQS", bodyLabel)
}

func (ctx *Context) compileReturn(s *parser.Return) {
	if ctx.function == nil {
		panic("return outside of a function")
	}
	if s.Value != nil {
		ctx.compileExpression(s.Value)
	}
	ctx.emit("POPFRAME")
	ctx.emit("RETURN")
}
