package compiler

import (
	"fmt"

	"github.com/vyPal/ifjc/lib/symtable"
)

// compileBuiltin emits the inline sequence for a built-in function whose argc
// arguments are already on the stack, first argument on top.
func (ctx *Context) compileBuiltin(fn *symtable.Function, argc int) {
	switch fn.Name {
	case "write":
		ctx.emit("CREATEFRAME")
		ctx.emit("DEFVAR", "TF@out")
		for i := 0; i < argc; i++ {
			ctx.emit("POPS", "TF@out")
			ctx.emit("WRITE", "TF@out")
		}
	case "readString":
		ctx.read("string")
	case "readInt":
		ctx.read("int")
	case "readDouble":
		ctx.read("float")
	case "Int2Double":
		ctx.emit("INT2FLOATS")
	case "Double2Int":
		ctx.emit("FLOAT2INTS")
	case "chr":
		ctx.emit("INT2CHARS")
	case "length":
		ctx.emit("CREATEFRAME")
		ctx.emit("DEFVAR", "TF@s")
		ctx.emit("DEFVAR", "TF@len")
		ctx.emit("POPS", "TF@s")
		ctx.emit("STRLEN", "TF@len", "TF@s")
		ctx.emit("PUSHS", "TF@len")
	case "ord":
		ctx.ord()
	case "substring":
		ctx.substring()
	default:
		panic(fmt.Sprintf("no lowering for built-in %s", fn.Name))
	}
}

func (ctx *Context) read(typ string) {
	ctx.emit("CREATEFRAME")
	ctx.emit("DEFVAR", "TF@in")
	ctx.emit("READ", "TF@in", typ)
	ctx.emit("PUSHS", "TF@in")
}

// ord yields the code of the first character, or 0 for an empty string.
func (ctx *Context) ord() {
	empty := ctx.newLabel("ordempty")
	end := ctx.newLabel("ordend")
	ctx.emit("CREATEFRAME")
	ctx.emit("DEFVAR", "TF@s")
	ctx.emit("DEFVAR", "TF@len")
	ctx.emit("DEFVAR", "TF@res")
	ctx.emit("POPS", "TF@s")
	ctx.emit("STRLEN", "TF@len", "TF@s")
	ctx.emit("JUMPIFEQ", empty, "TF@len", "int@0")
	ctx.emit("STRI2INT", "TF@res", "TF@s", "int@0")
	ctx.emit("PUSHS", "TF@res")
	ctx.emit("JUMP", end)
	ctx.emit("LABEL", empty)
	ctx.emit("PUSHS", "int@0")
	ctx.emit("LABEL", end)
}

// substring copies characters [i, j) of s. Any out of range index yields nil.
func (ctx *Context) substring() {
	null := ctx.newLabel("subnil")
	loop := ctx.newLabel("subloop")
	done := ctx.newLabel("subdone")
	end := ctx.newLabel("subend")

	ctx.emit("CREATEFRAME")
	for _, v := range []string{"s", "i", "j", "len", "res", "ch", "bad"} {
		ctx.emit("DEFVAR", "TF@"+v)
	}
	ctx.emit("POPS", "TF@s")
	ctx.emit("POPS", "TF@i")
	ctx.emit("POPS", "TF@j")
	ctx.emit("STRLEN", "TF@len", "TF@s")

	checks := []struct{ op, a, b, bad string }{
		{"LT", "TF@i", "int@0", "bool@true"},
		{"LT", "TF@j", "int@0", "bool@true"},
		{"GT", "TF@i", "TF@j", "bool@true"},
		{"LT", "TF@i", "TF@len", "bool@false"},
		{"GT", "TF@j", "TF@len", "bool@true"},
	}
	for _, c := range checks {
		ctx.emit(c.op, "TF@bad", c.a, c.b)
		ctx.emit("JUMPIFEQ", null, "TF@bad", c.bad)
	}

	ctx.emit("MOVE", "TF@res", "string@")
	ctx.emit("LABEL", loop)
	ctx.emit("JUMPIFEQ", done, "TF@i", "TF@j")
	ctx.emit("GETCHAR", "TF@ch", "TF@s", "TF@i")
	ctx.emit("CONCAT", "TF@res", "TF@res", "TF@ch")
	ctx.emit("ADD", "TF@i", "TF@i", "int@1")
	ctx.emit("JUMP", loop)
	ctx.emit("LABEL", done)
	ctx.emit("PUSHS", "TF@res")
	ctx.emit("JUMP", end)
	ctx.emit("LABEL", null)
	ctx.emit("PUSHS", "nil@nil")
	ctx.emit("LABEL", end)
}
