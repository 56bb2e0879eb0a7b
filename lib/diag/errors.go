// Package diag classifies compiler failures and maps them to the process exit
// statuses the ifjc command reports.
package diag

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// Kind is the failure category of a compilation error.
type Kind int

const (
	KindNone Kind = iota
	KindLexical
	KindSyntax
	KindUndefinedFunction
	KindRedefinition
	KindWrongFunctionType
	KindUndefinedVariable
	KindWrongReturn
	KindWrongBinaryTypes
	KindTypeDeduction
	KindOther
	KindInternal
)

var kindNames = [...]string{
	KindNone:              "ok",
	KindLexical:           "lexical error",
	KindSyntax:            "syntax error",
	KindUndefinedFunction: "undefined function",
	KindRedefinition:      "redefinition",
	KindWrongFunctionType: "wrong function type",
	KindUndefinedVariable: "undefined variable",
	KindWrongReturn:       "wrong return",
	KindWrongBinaryTypes:  "type mismatch",
	KindTypeDeduction:     "type deduction failure",
	KindOther:             "semantic error",
	KindInternal:          "internal error",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ExitCode returns the process exit status for the kind.
func (k Kind) ExitCode() int {
	switch k {
	case KindNone:
		return 0
	case KindLexical:
		return 1
	case KindSyntax:
		return 2
	case KindUndefinedFunction, KindRedefinition:
		return 3
	case KindWrongFunctionType:
		return 4
	case KindUndefinedVariable:
		return 5
	case KindWrongReturn:
		return 6
	case KindWrongBinaryTypes:
		return 7
	case KindTypeDeduction:
		return 8
	case KindOther:
		return 9
	default:
		return 99
	}
}

// ParseKind maps a kind name (as printed by String) back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return KindNone, false
}

// Error is a classified compilation failure. Pos is only set for lexical and
// syntax errors.
type Error struct {
	Kind Kind
	Msg  string
	Pos  lexer.Position
}

func (e *Error) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Pos.Line, e.Pos.Column, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Errorf builds an unpositioned error of the given kind.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// PosErrorf builds an error that carries a source position.
func PosErrorf(kind Kind, pos lexer.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// KindOf returns the kind of err, looking through any wrapping. Errors that
// carry no kind are internal.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Report writes a colored one-line diagnostic for err to w.
func Report(w io.Writer, err error) {
	fmt.Fprintln(w, color.RedString("error: %s", err))
}
