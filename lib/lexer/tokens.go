package ifjlex

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota

	// Literals
	Identifier
	IntLiteral
	DecimalLiteral
	StringLiteral

	// Keywords
	KeywordDouble
	KeywordElse
	KeywordFunc
	KeywordIf
	KeywordInt
	KeywordLet
	KeywordNil
	KeywordReturn
	KeywordString
	KeywordVar
	KeywordWhile

	// Punctuation
	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	Colon      // :
	Comma      // ,
	Arrow      // ->
	Assign     // =
	Question   // ?
	Underscore // _

	// Operators
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Eq        // ==
	NotEq     // !=
	Less      // <
	Greater   // >
	LessEq    // <=
	GreaterEq // >=
	Coalesce  // ??
	Bang      // !
)

var tokenNames = [...]string{
	EOF:            "EOF",
	Identifier:     "IDENTIFIER",
	IntLiteral:     "INT",
	DecimalLiteral: "DECIMAL",
	StringLiteral:  "STRING",
	KeywordDouble:  "Double",
	KeywordElse:    "else",
	KeywordFunc:    "func",
	KeywordIf:      "if",
	KeywordInt:     "Int",
	KeywordLet:     "let",
	KeywordNil:     "nil",
	KeywordReturn:  "return",
	KeywordString:  "String",
	KeywordVar:     "var",
	KeywordWhile:   "while",
	LParen:         "(",
	RParen:         ")",
	LBrace:         "{",
	RBrace:         "}",
	Colon:          ":",
	Comma:          ",",
	Arrow:          "->",
	Assign:         "=",
	Question:       "?",
	Underscore:     "_",
	Plus:           "+",
	Minus:          "-",
	Star:           "*",
	Slash:          "/",
	Eq:             "==",
	NotEq:          "!=",
	Less:           "<",
	Greater:        ">",
	LessEq:         "<=",
	GreaterEq:      ">=",
	Coalesce:       "??",
	Bang:           "!",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

var keywords = map[string]TokenType{
	"Double": KeywordDouble,
	"else":   KeywordElse,
	"func":   KeywordFunc,
	"if":     KeywordIf,
	"Int":    KeywordInt,
	"let":    KeywordLet,
	"nil":    KeywordNil,
	"return": KeywordReturn,
	"String": KeywordString,
	"var":    KeywordVar,
	"while":  KeywordWhile,
	"_":      Underscore,
}

var punctuation = map[string]TokenType{
	"(":  LParen,
	")":  RParen,
	"{":  LBrace,
	"}":  RBrace,
	":":  Colon,
	",":  Comma,
	"->": Arrow,
	"=":  Assign,
	"?":  Question,
	"+":  Plus,
	"-":  Minus,
	"*":  Star,
	"/":  Slash,
	"==": Eq,
	"!=": NotEq,
	"<":  Less,
	">":  Greater,
	"<=": LessEq,
	">=": GreaterEq,
	"??": Coalesce,
	"!":  Bang,
}

// Token is a single classified lexical unit. Text holds the identifier name,
// the literal spelling of numbers, or the processed contents of a string.
type Token struct {
	Type TokenType
	Text string
	Pos  lexer.Position
}

func (t Token) String() string {
	switch t.Type {
	case Identifier, IntLiteral, DecimalLiteral:
		return fmt.Sprintf("%-10s %-14s line %d", t.Type, t.Text, t.Pos.Line)
	case StringLiteral:
		return fmt.Sprintf("%-10s %-14q line %d", t.Type, t.Text, t.Pos.Line)
	}
	return fmt.Sprintf("%-10s %-14s line %d", t.Type, "", t.Pos.Line)
}

// IsBinaryOperator reports whether the token can join two operands in an
// expression.
func (tt TokenType) IsBinaryOperator() bool {
	return tt >= Plus && tt <= Coalesce
}
