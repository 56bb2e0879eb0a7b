package analyzer

import (
	"github.com/vyPal/ifjc/lib/diag"
	"github.com/vyPal/ifjc/lib/parser"
	"github.com/vyPal/ifjc/lib/symtable"
)

// AnalyzeExpression types expr and its subexpressions, storing the result on
// each node.
func (c *Context) AnalyzeExpression(expr parser.Expression) (parser.DataType, error) {
	switch e := expr.(type) {
	case *parser.Term:
		dt, err := c.analyzeTerm(e)
		if err != nil {
			return dt, err
		}
		e.Resolved = dt
		return dt, nil

	case *parser.UnwrapExpression:
		inner, err := c.AnalyzeExpression(e.Inner)
		if err != nil {
			return inner, err
		}
		if !inner.Nullable || inner.Kind == parser.Nil {
			return inner, diag.Errorf(diag.KindOther, "cannot unwrap %s of type %s", e.Inner, inner)
		}
		e.Resolved = inner.NonNull()
		return e.Resolved, nil

	case *parser.BinaryExpression:
		lt, err := c.AnalyzeExpression(e.Lhs)
		if err != nil {
			return lt, err
		}
		rt, err := c.AnalyzeExpression(e.Rhs)
		if err != nil {
			return rt, err
		}
		dt, err := BinaryType(e.Op, e.Lhs, e.Rhs, lt, rt)
		if err != nil {
			return dt, err
		}
		e.Resolved = dt
		return dt, nil
	}
	return parser.DataType{}, diag.Errorf(diag.KindInternal, "unknown expression %T", expr)
}

func (c *Context) analyzeTerm(t *parser.Term) (parser.DataType, error) {
	switch t.Kind {
	case parser.TermInt:
		return intType, nil
	case parser.TermDecimal:
		return doubleType, nil
	case parser.TermString:
		return stringType, nil
	case parser.TermNil:
		return nilType, nil
	}

	v, err := c.readVariable(t.Name)
	if err != nil {
		return parser.DataType{}, err
	}
	t.Ref = v.Ref
	return v.Type, nil
}

// readVariable looks up a variable that is about to be read. It must exist
// and be definitely initialized.
func (c *Context) readVariable(name string) (*symtable.Variable, error) {
	v, ok := c.LookupVariable(name)
	if !ok {
		return nil, diag.Errorf(diag.KindUndefinedVariable, "variable %s is not defined", name)
	}
	if !v.Initialized() {
		return nil, diag.Errorf(diag.KindUndefinedVariable, "variable %s is used before being initialized", name)
	}
	return v, nil
}

// AnalyzeCall checks a call against the callee's signature and returns the
// callee.
func (c *Context) AnalyzeCall(call *parser.Call) (*symtable.Function, error) {
	fn, ok := c.LookupFunction(call.Name)
	if !ok {
		return nil, diag.Errorf(diag.KindUndefinedFunction, "function %s is not defined", call.Name)
	}

	if fn.Variadic {
		for _, arg := range call.Args {
			if _, err := c.AnalyzeExpression(arg.Value); err != nil {
				return nil, err
			}
		}
		return fn, nil
	}

	if len(call.Args) != len(fn.Params) {
		return nil, diag.Errorf(diag.KindWrongFunctionType, "%s takes %d arguments, got %d", fn.Name, len(fn.Params), len(call.Args))
	}
	for i, arg := range call.Args {
		param := fn.Params[i]
		switch {
		case param.Labeled() && arg.Label != param.Outside:
			return nil, diag.Errorf(diag.KindWrongFunctionType, "argument %d of %s must be labeled %s", i+1, fn.Name, param.Outside)
		case !param.Labeled() && arg.Label != "":
			return nil, diag.Errorf(diag.KindWrongFunctionType, "argument %d of %s must not be labeled", i+1, fn.Name)
		}

		at, err := c.AnalyzeExpression(arg.Value)
		if err != nil {
			return nil, err
		}
		if !Convertible(at, param.Type, arg.Value.IntLiteral()) {
			return nil, diag.Errorf(diag.KindWrongFunctionType, "argument %d of %s: cannot use %s as %s", i+1, fn.Name, at, param.Type)
		}
		widenLiteral(arg.Value, param.Type)
	}
	return fn, nil
}
