package compiler

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/vyPal/ifjc/lib/analyzer"
	"github.com/vyPal/ifjc/lib/parser"
)

func compile(t *testing.T, src string, opts Options) string {
	t.Helper()
	prog, err := parser.ParseString("test.swift", src)
	be.Err(t, err, nil)
	res, err := analyzer.Analyze(prog)
	be.Err(t, err, nil)
	c := NewCompiler(opts)
	c.Compile(res)
	return c.String()
}

// indexOf returns the first line at or after from equal to want, or -1.
func indexOf(lines []string, from int, want string) int {
	for i := from; i < len(lines); i++ {
		if lines[i] == want {
			return i
		}
	}
	return -1
}

// assertOrder checks that every want line occurs, in the given order.
func assertOrder(t *testing.T, out string, want ...string) {
	t.Helper()
	lines := strings.Split(out, "\n")
	pos := 0
	for _, w := range want {
		i := indexOf(lines, pos, w)
		if i < 0 {
			t.Fatalf("missing %q (in order) in:\n%s", w, out)
		}
		pos = i + 1
	}
}

func count(out, line string) int {
	n := 0
	for _, l := range strings.Split(out, "\n") {
		if l == line {
			n++
		}
	}
	return n
}

func TestHeader(t *testing.T) {
	out := compile(t, "", Options{Header: "built by ifjc"})
	assertOrder(t, out, ".IFJcode23", "# built by ifjc", "CREATEFRAME", "PUSHFRAME")
	be.True(t, strings.HasPrefix(out, ".IFJcode23\n"))
}

func TestGlobals(t *testing.T) {
	out := compile(t, "let x = 1\nvar y: Int?\nfunc f() -> Int { return x }", Options{})
	assertOrder(t, out,
		"DEFVAR GF@x",
		"DEFVAR GF@y",
		"PUSHS int@1",
		"POPS GF@x",
		"MOVE GF@y nil@nil",
		"LABEL f",
		"PUSHS GF@x",
	)
	be.Equal(t, count(out, "DEFVAR GF@x"), 1)
}

func TestShadowingSlots(t *testing.T) {
	out := compile(t, "var x = 1\nif x == 1 {\nvar x = \"s\"\n}", Options{})
	assertOrder(t, out, "DEFVAR GF@x", "DEFVAR LF@x$1", "PUSHS string@s", "POPS LF@x$1")
}

func TestLoopHoisting(t *testing.T) {
	src := `var i = 0
while i < 3 {
	var y = 0
	y = y + i
	i = i + 1
}`
	out := compile(t, src, Options{})
	lines := strings.Split(out, "\n")

	be.Equal(t, count(out, "DEFVAR LF@y$1"), 1)
	decl := indexOf(lines, 0, "DEFVAR LF@y$1")
	loop := -1
	for i, l := range lines {
		if strings.HasPrefix(l, "LABEL $while") {
			loop = i
			break
		}
	}
	be.True(t, loop > decl)
	be.True(t, indexOf(lines, loop, "POPS LF@y$1") > loop)
}

func TestNestedLoopHoisting(t *testing.T) {
	src := `var i = 0
while i < 3 {
	var j = 0
	while j < i {
		let k = j
		j = j + 1
	}
	let r = readInt()
	if let r {
	}
	i = i + 1
}`
	out := compile(t, src, Options{})

	be.Equal(t, count(out, "DEFVAR LF@j$1"), 1)
	be.Equal(t, count(out, "DEFVAR LF@k$2"), 1)
	be.Equal(t, count(out, "DEFVAR LF@r$1"), 1)
	be.Equal(t, count(out, "DEFVAR LF@r$3"), 1)
	assertOrder(t, out, "DEFVAR LF@j$1", "DEFVAR LF@k$2", "DEFVAR LF@r$1", "DEFVAR LF@r$3", "JUMP $cond2")
}

func TestFunctions(t *testing.T) {
	src := `func add(_ a: Int, to b: Int) -> Int {
	return a + b
}
let r = add(1, to: 2)`
	out := compile(t, src, Options{Comments: true})
	assertOrder(t, out,
		"JUMP $endfunc1",
		"# function add",
		"LABEL add",
		"CREATEFRAME",
		"PUSHFRAME",
		"DEFVAR LF@a$1",
		"POPS LF@a$1",
		"DEFVAR LF@b$1",
		"POPS LF@b$1",
		"PUSHS LF@a$1",
		"PUSHS LF@b$1",
		"ADD TF@res TF@lhs TF@rhs",
		"POPFRAME",
		"RETURN",
		"LABEL $endfunc1",
		"PUSHS int@2",
		"PUSHS int@1",
		"CALL add",
		"POPS GF@r",
	)
}

func TestDiscardedParameter(t *testing.T) {
	out := compile(t, "func f(_ _: Int) { }\nf(1)", Options{})
	assertOrder(t, out, "LABEL f", "CREATEFRAME", "PUSHFRAME", "CREATEFRAME", "DEFVAR TF@discard", "POPS TF@discard")
}

func TestProcedureCallClearsResult(t *testing.T) {
	out := compile(t, "readInt()\nwrite(1)", Options{})
	assertOrder(t, out, "READ TF@in int", "PUSHS TF@in", "CLEARS", "WRITE TF@out")
	be.Equal(t, count(out, "CLEARS"), 1)
}

func TestBinaryOperators(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"int division", "let a = 7 / 2", []string{"IDIV TF@res TF@lhs TF@rhs"}},
		{"double division", "let a = 7.0 / 2.0", []string{"DIV TF@res TF@lhs TF@rhs"}},
		{"concat", `let a = "x" + "y"`, []string{"CONCAT TF@res TF@lhs TF@rhs"}},
		{"promote rhs", "let d = 2.5\nlet e = d * 2", []string{"INT2FLOAT TF@rhs TF@rhs", "MUL TF@res TF@lhs TF@rhs"}},
		{"promote lhs", "let d = 2.5\nlet e = 2 - d", []string{"INT2FLOAT TF@lhs TF@lhs", "SUB TF@res TF@lhs TF@rhs"}},
		{"less or equal", "let b = 1 <= 2", []string{"GT TF@res TF@lhs TF@rhs", "NOT TF@res TF@res"}},
		{"greater or equal", "let b = 1 >= 2", []string{"LT TF@res TF@lhs TF@rhs", "NOT TF@res TF@res"}},
		{"coalesce", "let a = readInt()\nlet b = a ?? 0", []string{
			"MOVE TF@res TF@lhs",
			"JUMPIFNEQ $coalesce1 TF@res nil@nil",
			"MOVE TF@res TF@rhs",
			"LABEL $coalesce1",
			"PUSHS TF@res",
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out := compile(t, test.src, Options{})
			assertOrder(t, out, test.want...)
		})
	}
}

func TestNotEqual(t *testing.T) {
	out := compile(t, "let a = readInt()\nif a != nil { }", Options{})
	assertOrder(t, out,
		"PUSHS GF@a",
		"PUSHS nil@nil",
		"EQ TF@res TF@lhs TF@rhs",
		"NOT TF@res TF@res",
		"PUSHS bool@true",
		"JUMPIFNEQS $else1",
		"LABEL $else1",
	)
}

func TestConditionals(t *testing.T) {
	src := `let a = readInt()
if let a {
	write(a)
} else {
	write(0)
}`
	out := compile(t, src, Options{})
	assertOrder(t, out,
		"PUSHS GF@a",
		"PUSHS nil@nil",
		"EQS",
		"NOTS",
		"PUSHS bool@true",
		"JUMPIFNEQS $else1",
		"DEFVAR LF@a$1",
		"MOVE LF@a$1 GF@a",
		"PUSHS LF@a$1",
		"JUMP $endif2",
		"LABEL $else1",
		"PUSHS int@0",
		"LABEL $endif2",
	)
}

func TestWhileLayout(t *testing.T) {
	out := compile(t, "var i = 0\nwhile i < 3 { i = i + 1 }", Options{})
	assertOrder(t, out,
		"JUMP $cond2",
		"LABEL $while1",
		"POPS GF@i",
		"LABEL $cond2",
		"LT TF@res TF@lhs TF@rhs",
		"PUSHS bool@true",
		"JUMPIFEQS $while1",
	)
}

func TestBuiltins(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"write order", `write("a", 1)`, []string{"PUSHS int@1", "PUSHS string@a", "POPS TF@out", "WRITE TF@out", "POPS TF@out", "WRITE TF@out"}},
		{"readString", "let s = readString()", []string{"READ TF@in string"}},
		{"readDouble", "let s = readDouble()", []string{"READ TF@in float"}},
		{"Int2Double", "let d = Int2Double(1)", []string{"PUSHS int@1", "INT2FLOATS", "POPS GF@d"}},
		{"Double2Int", "let i = Double2Int(1.5)", []string{"FLOAT2INTS"}},
		{"chr", "let c = chr(65)", []string{"INT2CHARS"}},
		{"length", `let n = length("abc")`, []string{"STRLEN TF@len TF@s", "PUSHS TF@len"}},
		{"ord", `let n = ord("a")`, []string{"JUMPIFEQ $ordempty1 TF@len int@0", "STRI2INT TF@res TF@s int@0", "LABEL $ordempty1", "PUSHS int@0"}},
		{"substring", `let s = substring(of: "abc", startingAt: 0, endingBefore: 2)`, []string{
			"PUSHS int@2", "PUSHS int@0", "PUSHS string@abc",
			"POPS TF@s", "POPS TF@i", "POPS TF@j",
			"GETCHAR TF@ch TF@s TF@i",
			"LABEL $subnil1",
			"PUSHS nil@nil",
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out := compile(t, test.src, Options{})
			assertOrder(t, out, test.want...)
			be.True(t, !strings.Contains(out, "CALL"))
		})
	}
}

func TestWidenedLiteral(t *testing.T) {
	out := compile(t, "let d: Double = 1", Options{})
	assertOrder(t, out, "PUSHS float@0x1p+00", "POPS GF@d")
}

func TestOperands(t *testing.T) {
	tests := []struct {
		name string
		term *parser.Term
		want string
	}{
		{"int", &parser.Term{Kind: parser.TermInt, Int: 42}, "int@42"},
		{"float", &parser.Term{Kind: parser.TermDecimal, Decimal: 1.5}, "float@0x1.8p+00"},
		{"nil", &parser.Term{Kind: parser.TermNil}, "nil@nil"},
		{"string", &parser.Term{Kind: parser.TermString, Str: "a b#\\\n"}, `string@a\032b\035\092\010`},
		{"empty string", &parser.Term{Kind: parser.TermString}, "string@"},
		{"unicode", &parser.Term{Kind: parser.TermString, Str: "ž"}, "string@ž"},
		{"global", &parser.Term{Kind: parser.TermIdentifier, Ref: parser.Ref{Name: "x"}}, "GF@x"},
		{"local", &parser.Term{Kind: parser.TermIdentifier, Ref: parser.Ref{Scope: 3, Name: "x"}}, "LF@x$3"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			be.Equal(t, operand(test.term), test.want)
		})
	}
}

func TestUnwrapTrapsNil(t *testing.T) {
	out := compile(t, "let a = readInt()\nlet b: Int = a!", Options{})
	assertOrder(t, out,
		"PUSHS GF@a",
		"CREATEFRAME",
		"DEFVAR TF@val",
		"POPS TF@val",
		"PUSHS TF@val",
		"JUMPIFNEQ $unwrap1 TF@val nil@nil",
		"EXIT int@56",
		"LABEL $unwrap1",
		"POPS GF@b",
	)
}

func TestMixedEquality(t *testing.T) {
	out := compile(t, "let i = 1\nlet d = 2.5\nlet b = i == d", Options{})
	assertOrder(t, out,
		"POPS TF@lhs",
		"INT2FLOAT TF@lhs TF@lhs",
		"EQ TF@res TF@lhs TF@rhs",
	)

	// A nullable Int keeps nil unconverted.
	out = compile(t, "let i = readInt()\nlet d = 2.5\nlet b = d == i", Options{})
	assertOrder(t, out,
		"POPS TF@lhs",
		"JUMPIFEQ $promote1 TF@rhs nil@nil",
		"INT2FLOAT TF@rhs TF@rhs",
		"LABEL $promote1",
		"EQ TF@res TF@lhs TF@rhs",
	)
}
