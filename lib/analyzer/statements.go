package analyzer

import (
	"github.com/vyPal/ifjc/lib/diag"
	"github.com/vyPal/ifjc/lib/parser"
	"github.com/vyPal/ifjc/lib/symtable"
)

func (c *Context) AnalyzeStatement(stmt parser.Statement) error {
	switch s := stmt.(type) {
	case *parser.VariableDefinition:
		return c.analyzeVariableDefinition(s)
	case *parser.Assignment:
		return c.analyzeAssignment(s)
	case *parser.FunctionCall:
		return c.analyzeFunctionCall(s)
	case *parser.ProcedureCall:
		_, err := c.AnalyzeCall(s.Call)
		return err
	case *parser.Conditional:
		return c.analyzeConditional(s)
	case *parser.Iteration:
		return c.analyzeIteration(s)
	case *parser.Return:
		return c.analyzeReturn(s)
	}
	return diag.Errorf(diag.KindInternal, "unknown statement %T", stmt)
}

func (c *Context) analyzeVariableDefinition(def *parser.VariableDefinition) error {
	var src parser.DataType
	switch {
	case def.Call != nil:
		fn, err := c.AnalyzeCall(def.Call)
		if err != nil {
			return err
		}
		if fn.Return == nil {
			return diag.Errorf(diag.KindWrongFunctionType, "%s does not return a value", fn.Name)
		}
		src = *fn.Return
		if def.Type != nil && !Convertible(src, *def.Type, false) {
			return diag.Errorf(diag.KindWrongFunctionType, "cannot initialize %s of type %s with the %s result of %s", def.Name, def.Type, src, fn.Name)
		}

	case def.Value != nil:
		var err error
		if src, err = c.AnalyzeExpression(def.Value); err != nil {
			return err
		}
		if def.Type != nil && !Convertible(src, *def.Type, isIntLiteral(def.Value)) {
			return diag.Errorf(diag.KindWrongBinaryTypes, "cannot initialize %s of type %s with %s", def.Name, def.Type, src)
		}
		if def.Type != nil {
			widenLiteral(def.Value, *def.Type)
		}
	}

	declared := src
	if def.Type != nil {
		declared = *def.Type
	} else if !def.Initialized() {
		return diag.Errorf(diag.KindTypeDeduction, "variable %s needs a type or an initializer", def.Name)
	} else if src.Kind == parser.Nil {
		return diag.Errorf(diag.KindTypeDeduction, "cannot deduce the type of %s from nil", def.Name)
	}

	v, err := c.Variables.Define(def.Name, declared, def.Immutable)
	if err != nil {
		return err
	}
	def.Ref = v.Ref
	def.Resolved = declared
	if def.Initialized() || declared.Nullable {
		c.Variables.MarkInitialized(v)
	}
	return nil
}

// assignable looks up the target of an assignment.
func (c *Context) assignable(name string) (*symtable.Variable, error) {
	v, ok := c.LookupVariable(name)
	if !ok {
		return nil, diag.Errorf(diag.KindUndefinedVariable, "variable %s is not defined", name)
	}
	if v.Immutable && v.Initialized() {
		return nil, diag.Errorf(diag.KindOther, "cannot assign to constant %s", name)
	}
	return v, nil
}

func (c *Context) analyzeAssignment(a *parser.Assignment) error {
	v, err := c.assignable(a.Name)
	if err != nil {
		return err
	}
	src, err := c.AnalyzeExpression(a.Value)
	if err != nil {
		return err
	}
	if !Convertible(src, v.Type, isIntLiteral(a.Value)) {
		return diag.Errorf(diag.KindWrongBinaryTypes, "cannot assign %s to %s of type %s", src, a.Name, v.Type)
	}
	widenLiteral(a.Value, v.Type)
	a.Ref = v.Ref
	c.Variables.MarkInitialized(v)
	return nil
}

func (c *Context) analyzeFunctionCall(fc *parser.FunctionCall) error {
	v, err := c.assignable(fc.Dest)
	if err != nil {
		return err
	}
	fn, err := c.AnalyzeCall(fc.Call)
	if err != nil {
		return err
	}
	if fn.Return == nil {
		return diag.Errorf(diag.KindWrongFunctionType, "%s does not return a value", fn.Name)
	}
	if !Convertible(*fn.Return, v.Type, false) {
		return diag.Errorf(diag.KindWrongFunctionType, "cannot assign the %s result of %s to %s of type %s", fn.Return, fn.Name, fc.Dest, v.Type)
	}
	fc.Ref = v.Ref
	c.Variables.MarkInitialized(v)
	return nil
}

func (c *Context) analyzeConditional(cond *parser.Conditional) error {
	if b := cond.Condition.Binding; b != nil {
		outer, err := c.readVariable(b.Name)
		if err != nil {
			return err
		}
		if !outer.Type.Nullable {
			return diag.Errorf(diag.KindOther, "if let needs a nullable variable, %s is %s", b.Name, outer.Type)
		}
		b.Outer = outer.Ref

		err = c.inScope(func() error {
			shadow, err := c.Variables.Define(b.Name, outer.Type.NonNull(), true)
			if err != nil {
				return err
			}
			c.Variables.MarkInitialized(shadow)
			b.Shadow = shadow.Ref
			return c.AnalyzeBlock(cond.Body)
		})
		if err != nil {
			return err
		}
	} else {
		dt, err := c.AnalyzeExpression(cond.Condition.Expr)
		if err != nil {
			return err
		}
		if dt.Kind != parser.Bool {
			return diag.Errorf(diag.KindWrongBinaryTypes, "if condition must be Bool, not %s", dt)
		}
		if err := c.AnalyzeBlock(cond.Body); err != nil {
			return err
		}
	}

	if cond.Else != nil {
		return c.AnalyzeBlock(cond.Else)
	}
	return nil
}

func (c *Context) analyzeIteration(it *parser.Iteration) error {
	dt, err := c.AnalyzeExpression(it.Condition)
	if err != nil {
		return err
	}
	if dt != boolType {
		return diag.Errorf(diag.KindWrongBinaryTypes, "while condition must be Bool, not %s", dt)
	}
	return c.AnalyzeBlock(it.Body)
}

func (c *Context) analyzeReturn(r *parser.Return) error {
	if c.Function == nil {
		return diag.Errorf(diag.KindSyntax, "return outside of a function")
	}
	want := c.Function.Return
	switch {
	case want == nil && r.Value != nil:
		return diag.Errorf(diag.KindWrongReturn, "%s does not return a value", c.Function.Name)
	case want == nil:
		return nil
	case r.Value == nil:
		return diag.Errorf(diag.KindWrongReturn, "%s must return a %s", c.Function.Name, want)
	}

	dt, err := c.AnalyzeExpression(r.Value)
	if err != nil {
		return err
	}
	if !Convertible(dt, *want, isIntLiteral(r.Value)) {
		return diag.Errorf(diag.KindWrongFunctionType, "%s returns %s, not %s", c.Function.Name, want, dt)
	}
	widenLiteral(r.Value, *want)
	return nil
}
