package analyzer

import (
	"github.com/vyPal/ifjc/lib/parser"
	"github.com/vyPal/ifjc/lib/symtable"
)

var (
	intType       = parser.DataType{Kind: parser.Int}
	doubleType    = parser.DataType{Kind: parser.Double}
	stringType    = parser.DataType{Kind: parser.String}
	boolType      = parser.DataType{Kind: parser.Bool}
	nilType       = parser.DataType{Kind: parser.Nil, Nullable: true}
	optIntType    = parser.DataType{Kind: parser.Int, Nullable: true}
	optDoubleType = parser.DataType{Kind: parser.Double, Nullable: true}
	optStringType = parser.DataType{Kind: parser.String, Nullable: true}
)

func unlabeled(name string, dt parser.DataType) parser.Parameter {
	return parser.Parameter{Inside: name, Type: dt}
}

func labeled(label, name string, dt parser.DataType) parser.Parameter {
	return parser.Parameter{Outside: label, Inside: name, Type: dt}
}

func ret(dt parser.DataType) *parser.DataType { return &dt }

// Builtins lists the signatures of the functions every program can call.
var Builtins = []*symtable.Function{
	{Name: "readString", Return: ret(optStringType)},
	{Name: "readInt", Return: ret(optIntType)},
	{Name: "readDouble", Return: ret(optDoubleType)},
	{Name: "write", Variadic: true},
	{Name: "Int2Double", Params: []parser.Parameter{unlabeled("term", intType)}, Return: ret(doubleType)},
	{Name: "Double2Int", Params: []parser.Parameter{unlabeled("term", doubleType)}, Return: ret(intType)},
	{Name: "length", Params: []parser.Parameter{unlabeled("s", stringType)}, Return: ret(intType)},
	{Name: "substring", Params: []parser.Parameter{
		labeled("of", "s", stringType),
		labeled("startingAt", "i", intType),
		labeled("endingBefore", "j", intType),
	}, Return: ret(optStringType)},
	{Name: "ord", Params: []parser.Parameter{unlabeled("c", stringType)}, Return: ret(intType)},
	{Name: "chr", Params: []parser.Parameter{unlabeled("i", intType)}, Return: ret(stringType)},
}

func registerBuiltins(funcs *symtable.FuncTable) {
	for _, b := range Builtins {
		fn := *b
		fn.Builtin = true
		if err := funcs.Register(&fn); err != nil {
			panic(err)
		}
	}
}
