package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vyPal/ifjc/lib/parser"
)

// variable returns the operand addressing the slot ref resolves to. Globals
// live in GF keyed by name; anything nested lives in the current LF with the
// declaring scope id appended, so shadowing scopes sharing one frame never
// collide.
func variable(ref parser.Ref) string {
	if ref.Global() {
		return "GF@" + ref.Name
	}
	return fmt.Sprintf("LF@%s$%d", ref.Name, ref.Scope)
}

func operand(t *parser.Term) string {
	switch t.Kind {
	case parser.TermIdentifier:
		return variable(t.Ref)
	case parser.TermInt:
		return "int@" + strconv.FormatInt(t.Int, 10)
	case parser.TermDecimal:
		return "float@" + formatFloat(t.Decimal)
	case parser.TermString:
		return "string@" + escapeString(t.Str)
	default:
		return "nil@nil"
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'x', -1, 64)
}

// escapeString writes s in the string@ literal syntax: whitespace, control
// characters, # and \ become three digit decimal escapes.
func escapeString(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b <= 32 || b == '#' || b == '\\' || b == 127 {
			fmt.Fprintf(&sb, "\\%03d", b)
			continue
		}
		sb.WriteByte(b)
	}
	return sb.String()
}

func literalBool(b bool) string {
	if b {
		return "bool@true"
	}
	return "bool@false"
}
