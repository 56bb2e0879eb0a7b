package compiler

import (
	"fmt"
	"io"
	"strings"

	"github.com/vyPal/ifjc/lib/analyzer"
	"github.com/vyPal/ifjc/lib/parser"
	"github.com/vyPal/ifjc/lib/symtable"
)

type Options struct {
	// Comments annotates the output with # lines naming functions.
	Comments bool
	// Header is written as a comment right after the .IFJcode23 line.
	Header string
}

type Compiler struct {
	Options
	Functions *symtable.FuncTable
	Context   *Context
	out       strings.Builder
	labels    int
}

// Context carries the state of one nested emission region.
type Context struct {
	*Compiler
	parent *Context
	// hoisted is set inside loop bodies, whose variables were declared
	// before the loop was entered.
	hoisted  bool
	function *parser.FunctionDefinition
}

func NewContext(comp *Compiler) *Context {
	return &Context{Compiler: comp}
}

func (c *Context) NewContext() *Context {
	ctx := NewContext(c.Compiler)
	ctx.parent = c
	ctx.hoisted = c.hoisted
	ctx.function = c.function
	return ctx
}

func NewCompiler(opts Options) *Compiler {
	return &Compiler{Options: opts}
}

// Compile generates IFJcode23 for an analyzed program. The generator trusts
// the annotations the analyzer left on the tree and panics when they are
// inconsistent.
func (c *Compiler) Compile(res *analyzer.Result) {
	c.Functions = res.Functions
	c.line(".IFJcode23")
	if c.Header != "" {
		for _, l := range strings.Split(c.Header, "\n") {
			c.line("# " + l)
		}
	}
	c.emit("CREATEFRAME")
	c.emit("PUSHFRAME")

	// Every global name is unique, so all of them can be declared up front.
	// Functions may then read globals no matter where they are called from.
	for _, item := range res.Program.Items {
		if def, ok := item.(*parser.VariableDefinition); ok {
			c.emit("DEFVAR", variable(def.Ref))
		}
	}

	c.Context = NewContext(c)
	for _, item := range res.Program.Items {
		switch it := item.(type) {
		case *parser.FunctionDefinition:
			c.Context.compileFunctionDefinition(it)
		case parser.Statement:
			c.Context.compileStatement(it)
		default:
			panic(fmt.Sprintf("unknown item %T", item))
		}
	}
}

func (c *Compiler) String() string {
	return c.out.String()
}

func (c *Compiler) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, c.out.String())
	return int64(n), err
}

func (c *Compiler) line(s string) {
	c.out.WriteString(s)
	c.out.WriteByte('\n')
}

func (c *Compiler) emit(op string, args ...string) {
	if len(args) == 0 {
		c.line(op)
		return
	}
	c.line(op + " " + strings.Join(args, " "))
}

func (c *Compiler) comment(format string, args ...any) {
	if c.Comments {
		c.line("# " + fmt.Sprintf(format, args...))
	}
}

// newLabel returns a fresh label. Generated labels start with $, which no
// identifier can contain, so they never clash with function labels.
func (c *Compiler) newLabel(hint string) string {
	c.labels++
	return fmt.Sprintf("$%s%d", hint, c.labels)
}
