package analyzer

import (
	"github.com/vyPal/ifjc/lib/diag"
	"github.com/vyPal/ifjc/lib/parser"
)

// Convertible reports whether a value of type src may be stored where dst
// is expected. intLiteral marks a source that is an integer literal, the one
// case widened from Int to Double.
func Convertible(src, dst parser.DataType, intLiteral bool) bool {
	if src.Kind == parser.Nil {
		return dst.Nullable
	}
	if src.Nullable && !dst.Nullable {
		return false
	}
	if src.Kind == dst.Kind {
		return true
	}
	return intLiteral && src.Kind == parser.Int && dst.Kind == parser.Double
}

func isIntLiteral(e parser.Expression) bool {
	term, ok := e.(*parser.Term)
	return ok && term.IntLiteral()
}

// numericMix checks an Int/Double arithmetic operand pair. Only an integer
// literal may be widened, so a mix is accepted when the Int side is one.
func numericMix(lhs, rhs parser.Expression, lt, rt parser.DataType) bool {
	switch {
	case lt.Kind == parser.Int && rt.Kind == parser.Double:
		return isIntLiteral(lhs)
	case lt.Kind == parser.Double && rt.Kind == parser.Int:
		return isIntLiteral(rhs)
	}
	return false
}

// BinaryType computes the result type of op applied to lhs and rhs whose
// types are lt and rt.
func BinaryType(op parser.Operator, lhs, rhs parser.Expression, lt, rt parser.DataType) (parser.DataType, error) {
	mismatch := func() (parser.DataType, error) {
		return parser.DataType{}, diag.Errorf(diag.KindWrongBinaryTypes, "invalid operands for %s: %s and %s", op, lt, rt)
	}

	switch {
	case op == parser.OpCoalesce:
		if !lt.Nullable || lt.Kind != rt.Kind {
			return mismatch()
		}
		return parser.DataType{Kind: lt.Kind, Nullable: rt.Nullable}, nil

	case op.Arithmetic():
		if lt.Nullable || rt.Nullable {
			return mismatch()
		}
		if op == parser.OpAdd && lt.Kind == parser.String && rt.Kind == parser.String {
			return stringType, nil
		}
		if !lt.Kind.Numeric() || !rt.Kind.Numeric() {
			return mismatch()
		}
		if lt.Kind == rt.Kind {
			return lt, nil
		}
		if numericMix(lhs, rhs, lt, rt) {
			return doubleType, nil
		}
		return mismatch()

	case op.Ordering():
		if lt.Nullable || rt.Nullable || lt.Kind != rt.Kind {
			return mismatch()
		}
		if !lt.Kind.Numeric() && lt.Kind != parser.String {
			return mismatch()
		}
		return boolType, nil

	case op.Equality():
		ok := lt.Kind == rt.Kind ||
			(lt.Kind == parser.Nil && rt.Nullable) ||
			(rt.Kind == parser.Nil && lt.Nullable) ||
			(lt.Kind.Numeric() && rt.Kind.Numeric())
		if !ok {
			return mismatch()
		}
		return parser.DataType{Kind: parser.Bool, Nullable: lt.Nullable || rt.Nullable}, nil
	}
	return parser.DataType{}, diag.Errorf(diag.KindInternal, "unknown operator %s", op)
}

// widenLiteral turns an integer literal stored where a Double is expected
// into a decimal literal, so later phases see the converted value.
func widenLiteral(e parser.Expression, dst parser.DataType) {
	term, ok := e.(*parser.Term)
	if !ok || !term.IntLiteral() || dst.Kind != parser.Double {
		return
	}
	term.Kind = parser.TermDecimal
	term.Decimal = float64(term.Int)
	term.Int = 0
	term.Resolved = doubleType
}
