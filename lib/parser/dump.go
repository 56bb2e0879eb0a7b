package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// WriteJSON encodes the tree as indented JSON. Every node object carries a
// "Node" field naming its type.
func WriteJSON(w io.Writer, prog *Program) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(prog)
}

// WriteSexpr writes the s-expression form of the tree, one top-level item
// per line.
func WriteSexpr(w io.Writer, prog *Program) error {
	for _, item := range prog.Items {
		if _, err := fmt.Fprintln(w, item.String()); err != nil {
			return err
		}
	}
	return nil
}

// tagged encodes v and prepends a "Node" field to the resulting object.
func tagged(node string, v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := []byte(`{"Node":` + strconv.Quote(node))
	if len(raw) > 2 {
		out = append(out, ',')
	}
	return append(out, raw[1:]...), nil
}

func (d DataType) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (o Operator) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

var termKindNames = [...]string{
	TermIdentifier: "identifier",
	TermInt:        "int",
	TermDecimal:    "decimal",
	TermString:     "string",
	TermNil:        "nil",
}

func (k TermKind) MarshalText() ([]byte, error) { return []byte(termKindNames[k]), nil }

func (t *Term) MarshalJSON() ([]byte, error) {
	type plain Term
	return tagged("Term", (*plain)(t))
}

func (b *BinaryExpression) MarshalJSON() ([]byte, error) {
	type plain BinaryExpression
	return tagged("BinaryExpression", (*plain)(b))
}

func (u *UnwrapExpression) MarshalJSON() ([]byte, error) {
	type plain UnwrapExpression
	return tagged("UnwrapExpression", (*plain)(u))
}

func (d *VariableDefinition) MarshalJSON() ([]byte, error) {
	type plain VariableDefinition
	return tagged("VariableDefinition", (*plain)(d))
}

func (a *Assignment) MarshalJSON() ([]byte, error) {
	type plain Assignment
	return tagged("Assignment", (*plain)(a))
}

func (c *Conditional) MarshalJSON() ([]byte, error) {
	type plain Conditional
	return tagged("Conditional", (*plain)(c))
}

func (i *Iteration) MarshalJSON() ([]byte, error) {
	type plain Iteration
	return tagged("Iteration", (*plain)(i))
}

func (f *FunctionCall) MarshalJSON() ([]byte, error) {
	type plain FunctionCall
	return tagged("FunctionCall", (*plain)(f))
}

func (p *ProcedureCall) MarshalJSON() ([]byte, error) {
	type plain ProcedureCall
	return tagged("ProcedureCall", (*plain)(p))
}

func (r *Return) MarshalJSON() ([]byte, error) {
	type plain Return
	return tagged("Return", (*plain)(r))
}

func (f *FunctionDefinition) MarshalJSON() ([]byte, error) {
	type plain FunctionDefinition
	return tagged("FunctionDefinition", (*plain)(f))
}
