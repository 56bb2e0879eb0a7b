package compiler

import (
	"fmt"

	"github.com/vyPal/ifjc/lib/parser"
	"github.com/vyPal/ifjc/lib/symtable"
)

// compileExpression leaves the value of e on the data stack.
func (ctx *Context) compileExpression(e parser.Expression) {
	switch e := e.(type) {
	case *parser.Term:
		ctx.emit("PUSHS", operand(e))
	case *parser.UnwrapExpression:
		ctx.compileUnwrap(e)
	case *parser.BinaryExpression:
		ctx.compileBinaryExpression(e)
	default:
		panic(fmt.Sprintf("unknown expression %T", e))
	}
}

// compileUnwrap stops the program with exit status 56 when the value turns
// out to be nil.
func (ctx *Context) compileUnwrap(e *parser.UnwrapExpression) {
	ctx.compileExpression(e.Inner)

	const val = "TF@val"
	ok := ctx.newLabel("unwrap")
	ctx.emit("CREATEFRAME")
	ctx.emit("DEFVAR", val)
	ctx.emit("POPS", val)
	ctx.emit("PUSHS", val)
	ctx.emit("JUMPIFNEQ", ok, val, "nil@nil")
	ctx.emit("EXIT", "int@56")
	ctx.emit("LABEL", ok)
}

// promote converts the Int operand in slot to a float. A nullable operand
// may hold nil, which is compared as is.
func (ctx *Context) promote(slot string, dt parser.DataType) {
	if !dt.Nullable {
		ctx.emit("INT2FLOAT", slot, slot)
		return
	}
	skip := ctx.newLabel("promote")
	ctx.emit("JUMPIFEQ", skip, slot, "nil@nil")
	ctx.emit("INT2FLOAT", slot, slot)
	ctx.emit("LABEL", skip)
}

func (ctx *Context) compileBinaryExpression(e *parser.BinaryExpression) {
	ctx.compileExpression(e.Lhs)
	ctx.compileExpression(e.Rhs)

	const lhs, rhs, res = "TF@lhs", "TF@rhs", "TF@res"
	ctx.emit("CREATEFRAME")
	ctx.emit("DEFVAR", lhs)
	ctx.emit("DEFVAR", rhs)
	ctx.emit("DEFVAR", res)
	ctx.emit("POPS", rhs)
	ctx.emit("POPS", lhs)

	lt, rt := e.Lhs.Type(), e.Rhs.Type()
	switch {
	case lt.Kind == parser.Int && rt.Kind == parser.Double:
		ctx.promote(lhs, lt)
	case lt.Kind == parser.Double && rt.Kind == parser.Int:
		ctx.promote(rhs, rt)
	}

	switch e.Op {
	case parser.OpAdd:
		if lt.Kind == parser.String {
			ctx.emit("CONCAT", res, lhs, rhs)
		} else {
			ctx.emit("ADD", res, lhs, rhs)
		}
	case parser.OpSub:
		ctx.emit("SUB", res, lhs, rhs)
	case parser.OpMul:
		ctx.emit("MUL", res, lhs, rhs)
	case parser.OpDiv:
		if e.Type().Kind == parser.Int {
			ctx.emit("IDIV", res, lhs, rhs)
		} else {
			ctx.emit("DIV", res, lhs, rhs)
		}
	case parser.OpEq:
		ctx.emit("EQ", res, lhs, rhs)
	case parser.OpNotEq:
		ctx.emit("EQ", res, lhs, rhs)
		ctx.emit("NOT", res, res)
	case parser.OpLess:
		ctx.emit("LT", res, lhs, rhs)
	case parser.OpGreater:
		ctx.emit("GT", res, lhs, rhs)
	case parser.OpLessEq:
		ctx.emit("GT", res, lhs, rhs)
		ctx.emit("NOT", res, res)
	case parser.OpGreaterEq:
		ctx.emit("LT", res, lhs, rhs)
		ctx.emit("NOT", res, res)
	case parser.OpCoalesce:
		done := ctx.newLabel("coalesce")
		ctx.emit("MOVE", res, lhs)
		ctx.emit("JUMPIFNEQ", done, res, "nil@nil")
		ctx.emit("MOVE", res, rhs)
		ctx.emit("LABEL", done)
	default:
		panic(fmt.Sprintf("unknown operator %s", e.Op))
	}
	ctx.emit("PUSHS", res)
}

// compileCall pushes the arguments right to left and transfers control,
// leaving the result, if any, on the data stack.
func (ctx *Context) compileCall(call *parser.Call) *symtable.Function {
	fn, ok := ctx.Functions.Lookup(call.Name)
	if !ok {
		panic(fmt.Sprintf("call to unknown function %s", call.Name))
	}
	for i := len(call.Args) - 1; i >= 0; i-- {
		ctx.emit("PUSHS", operand(call.Args[i].Value))
	}
	if fn.Builtin {
		ctx.compileBuiltin(fn, len(call.Args))
	} else {
		ctx.emit("CALL", fn.Name)
	}
	return fn
}
