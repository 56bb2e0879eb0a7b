package analyzer

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/vyPal/ifjc/lib/diag"
	"github.com/vyPal/ifjc/lib/parser"
)

func analyze(t *testing.T, src string) (*Result, error) {
	t.Helper()
	prog, err := parser.ParseString("test.swift", src)
	be.Err(t, err, nil)
	return Analyze(prog)
}

func TestAccepts(t *testing.T) {
	tests := map[string]string{
		"nil into nullable":      "let a: Int? = nil",
		"literal into nullable":  "let c: Int? = 5",
		"int literal widening":   "let d: Double = 1",
		"deduced string":         `let s = "a" + "b"`,
		"nullable implicit nil":  "var x: Int?\nlet y = x ?? 0",
		"shadowing":              "var x = 1\nif x == 1 { var x = \"s\" }",
		"literal promotion":      "let d = 2.5\nlet e = d * 2",
		"literal on left":        "let d = 2.5\nlet e = 2 + d",
		"coalesce":               "let a = readInt()\nlet b: Int = a ?? 0",
		"unwrap":                 "let a = readInt()\nlet b: Int = a!",
		"optional binding":       "let a = readString()\nif let a { let n = length(a) }",
		"nil comparison in cond": "var a = readInt()\nif a != nil { a = readInt() }",
		"mixed equality":         "let i = 1\nlet d = 2.5\nif i == d { }",
		"nullable mixed eq":      "let i = readInt()\nlet d = 2.5\nif d != i { }",
		"nullable equality":      "let a = readInt()\nif a == 5 { }",
		"string ordering":        `let s = "a"` + "\n" + `if s < "b" { }`,
		"deferred let init":      "let x: Int\nx = 1\nlet y = x",
		"labeled builtin":        `let s = substring(of: "abc", startingAt: 0, endingBefore: 1)`,
		"write anything":         `write("a", 1, 2.5, nil)`,
		"procedure discards":     "readInt()",
		"global read in func":    "let g = 1\nfunc f() -> Int { return g }",
		"call defined later":     "let x = f()\nfunc f() -> Int { return 1 }",
		"int literal return":     "func f() -> Double { return 1 }",
		"void return":            "func f() {\nreturn\n}",
		"discarded parameter":    "func f(_ _: Int) { }\nf(1)",
		"recursion":              "func fact(_ n: Int) -> Int {\nif n < 2 { return 1 } else { let k = n - 1\nlet m = fact(k)\nreturn n * m }\n}",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := analyze(t, src)
			be.Err(t, err, nil)
		})
	}
}

func TestRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind diag.Kind
	}{
		{"nil into non-nullable", "let b: Int = nil", diag.KindWrongBinaryTypes},
		{"nullable into non-nullable", "let a = readInt()\nlet b: Int = a", diag.KindWrongBinaryTypes},
		{"cross kind", `let a: Int = "s"`, diag.KindWrongBinaryTypes},
		{"deduce from nil", "let a = nil", diag.KindTypeDeduction},
		{"no type no init", "var a", diag.KindTypeDeduction},
		{"redefinition", "var x = 1\nvar x = 2", diag.KindRedefinition},
		{"function redefinition", "func f() { }\nfunc f() { }", diag.KindRedefinition},
		{"builtin redefinition", "func length(_ s: String) -> Int { return 0 }", diag.KindRedefinition},
		{"undefined variable", "let a = b", diag.KindUndefinedVariable},
		{"uninitialized read", "var x: Int\nlet y = x", diag.KindUndefinedVariable},
		{"deinit after if", "var x: Int\nif 1 == 1 { x = 1 }\nlet y = x", diag.KindUndefinedVariable},
		{"deinit after while", "var x: Int\nwhile 1 == 1 { x = 1 }\nlet y = x", diag.KindUndefinedVariable},
		{"shadow gone after if", "let a = readInt()\nif let a { }\nlet b: Int = a", diag.KindWrongBinaryTypes},
		{"undefined function", "foo()", diag.KindUndefinedFunction},
		{"assign to constant", "let x = 1\nx = 2", diag.KindOther},
		{"unwrap non-nullable", "let x = 1\nlet y = x!", diag.KindOther},
		{"binding non-nullable", "let x = 1\nif let x { }", diag.KindOther},
		{"same outside and inside", "func f(a a: Int) { }", diag.KindOther},
		{"variable promotion", "let i = 1\nlet d = 2.5\nlet e = i + d", diag.KindWrongBinaryTypes},
		{"nullable arithmetic", "let a = readInt()\nlet b = a + 1", diag.KindWrongBinaryTypes},
		{"string minus", `let a = "a" - "b"`, diag.KindWrongBinaryTypes},
		{"coalesce non-nullable", "let a = 1\nlet b = a ?? 2", diag.KindWrongBinaryTypes},
		{"coalesce kinds", "let a = readInt()\nlet b = a ?? \"s\"", diag.KindWrongBinaryTypes},
		{"if on int", "if 1 { }", diag.KindWrongBinaryTypes},
		{"while on nullable bool", "let a = readInt()\nwhile a == 1 { }", diag.KindWrongBinaryTypes},
		{"while on nil comparison", "var a = readInt()\nwhile a != nil { a = readInt() }", diag.KindWrongBinaryTypes},
		{"ordering with literal mix", "let d = 2.5\nif d < 1 { }", diag.KindWrongBinaryTypes},
		{"ordering int and double", "let i = 1\nlet d = 2.5\nif i >= d { }", diag.KindWrongBinaryTypes},
		{"ordering nullable", "let a = readInt()\nif a < 1 { }", diag.KindWrongBinaryTypes},
		{"equality string and int", "let s = \"a\"\nif s == 1 { }", diag.KindWrongBinaryTypes},
		{"missing label", `let n = substring("abc", startingAt: 0, endingBefore: 1)`, diag.KindWrongFunctionType},
		{"wrong label", `let n = substring(off: "abc", startingAt: 0, endingBefore: 1)`, diag.KindWrongFunctionType},
		{"unexpected label", `let n = length(s: "abc")`, diag.KindWrongFunctionType},
		{"arity", `let n = length("a", "b")`, diag.KindWrongFunctionType},
		{"argument type", "let n = length(1)", diag.KindWrongFunctionType},
		{"void initializer", "func f() { }\nlet x = f()", diag.KindWrongFunctionType},
		{"call result type", "var s: String = \"\"\ns = readInt()", diag.KindWrongFunctionType},
		{"write as value", "let x = write(1)", diag.KindWrongFunctionType},
		{"missing return value", "func f() -> Int {\nreturn\n}", diag.KindWrongReturn},
		{"value in void return", "func f() { return 1 }", diag.KindWrongReturn},
		{"wrong return type", `func f() -> Int { return "s" }`, diag.KindWrongFunctionType},
		{"return in one branch", "func f(_ a: Int) -> Int {\nif a == 1 { return 1 }\n}", diag.KindWrongReturn},
		{"return in loop", "func f() -> Int {\nwhile 1 == 1 { return 1 }\n}", diag.KindWrongReturn},
		{"duplicate parameter", "func f(_ a: Int, _ a: Int) { }", diag.KindRedefinition},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := analyze(t, test.src)
			be.Equal(t, diag.KindOf(err), test.kind)
		})
	}
}

func TestReturnPathFixedByElse(t *testing.T) {
	_, err := analyze(t, "func f(_ a: Int) -> Int {\nif a == 1 { return 1 } else { return 2 }\n}")
	be.Err(t, err, nil)
}

func TestReturnsOnAllPaths(t *testing.T) {
	ret := &parser.Return{}
	tests := []struct {
		name  string
		block parser.Block
		want  bool
	}{
		{"empty", parser.Block{}, false},
		{"direct", parser.Block{ret}, true},
		{"if only", parser.Block{&parser.Conditional{Body: parser.Block{ret}}}, false},
		{"if else", parser.Block{&parser.Conditional{Body: parser.Block{ret}, Else: parser.Block{ret}}}, true},
		{"else misses", parser.Block{&parser.Conditional{Body: parser.Block{ret}, Else: parser.Block{}}}, false},
		{"loop", parser.Block{&parser.Iteration{Body: parser.Block{ret}}}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			be.Equal(t, ReturnsOnAllPaths(test.block), test.want)
		})
	}
}

func TestConvertible(t *testing.T) {
	i := parser.DataType{Kind: parser.Int}
	oi := parser.DataType{Kind: parser.Int, Nullable: true}
	d := parser.DataType{Kind: parser.Double}

	be.True(t, Convertible(nilType, oi, false))
	be.True(t, !Convertible(nilType, i, false))
	be.True(t, Convertible(i, oi, false))
	be.True(t, !Convertible(oi, i, false))
	be.True(t, !Convertible(i, d, false))
	be.True(t, Convertible(i, d, true))
	be.True(t, !Convertible(d, i, false))
}

func TestAnnotations(t *testing.T) {
	src := `var x = 1
if x == 1 {
	var x = 2.5
	x = x * 2
}
func f(_ a: Int) -> Int {
	return a
}`
	res, err := analyze(t, src)
	be.Err(t, err, nil)
	items := res.Program.Items

	global := items[0].(*parser.VariableDefinition)
	be.Equal(t, global.Ref, parser.Ref{Scope: 0, Name: "x"})
	be.Equal(t, global.Resolved, intType)

	cond := items[1].(*parser.Conditional)
	inner := cond.Body[0].(*parser.VariableDefinition)
	be.True(t, inner.Ref.Scope != 0)
	be.Equal(t, inner.Resolved, doubleType)

	assign := cond.Body[1].(*parser.Assignment)
	be.Equal(t, assign.Ref, inner.Ref)
	mul := assign.Value.(*parser.BinaryExpression)
	be.Equal(t, mul.Type(), doubleType)
	be.Equal(t, mul.Lhs.(*parser.Term).Ref, inner.Ref)

	condExpr := cond.Condition.Expr.(*parser.BinaryExpression)
	be.Equal(t, condExpr.Lhs.(*parser.Term).Ref, global.Ref)

	fn := items[2].(*parser.FunctionDefinition)
	ret := fn.Body[0].(*parser.Return)
	be.Equal(t, ret.Value.(*parser.Term).Ref, fn.Params[0].Ref)
	be.True(t, fn.Params[0].Ref.Scope != 0)
}

func TestOptionalBindingRefs(t *testing.T) {
	res, err := analyze(t, "let a = readInt()\nif let a { let b = a + 1 }")
	be.Err(t, err, nil)

	cond := res.Program.Items[1].(*parser.Conditional)
	b := cond.Condition.Binding
	be.Equal(t, b.Outer, parser.Ref{Scope: 0, Name: "a"})
	be.True(t, b.Shadow.Scope != 0)

	def := cond.Body[0].(*parser.VariableDefinition)
	sum := def.Value.(*parser.BinaryExpression)
	be.Equal(t, sum.Lhs.(*parser.Term).Ref, b.Shadow)
	be.Equal(t, def.Resolved, intType)
}

func TestLiteralWidening(t *testing.T) {
	res, err := analyze(t, "let d: Double = 1\nvar e = 2.5\ne = 3")
	be.Err(t, err, nil)

	def := res.Program.Items[0].(*parser.VariableDefinition)
	term := def.Value.(*parser.Term)
	be.Equal(t, term.Kind, parser.TermDecimal)
	be.Equal(t, term.Decimal, 1.0)
	be.Equal(t, term.Type(), doubleType)

	assign := res.Program.Items[2].(*parser.Assignment)
	be.Equal(t, assign.Value.(*parser.Term).Decimal, 3.0)
}

func TestComparisonTypes(t *testing.T) {
	res, err := analyze(t, "let a = readInt()\nlet d = 2.5\nlet i = 1\nlet p = a != nil\nlet q = i == d\nlet r = a == d")
	be.Err(t, err, nil)

	types := map[string]parser.DataType{}
	for _, item := range res.Program.Items {
		def := item.(*parser.VariableDefinition)
		types[def.Name] = def.Resolved
	}
	be.Equal(t, types["p"], parser.DataType{Kind: parser.Bool, Nullable: true})
	be.Equal(t, types["q"], boolType)
	be.Equal(t, types["r"], parser.DataType{Kind: parser.Bool, Nullable: true})
}
