package parser

import (
	"fmt"
	"strconv"
	"strings"
)

type BasicType int

const (
	Int BasicType = iota
	Double
	String
	Bool
	Nil
)

var basicTypeNames = [...]string{
	Int:    "Int",
	Double: "Double",
	String: "String",
	Bool:   "Bool",
	Nil:    "Nil",
}

func (b BasicType) String() string {
	if int(b) >= 0 && int(b) < len(basicTypeNames) {
		return basicTypeNames[b]
	}
	return fmt.Sprintf("BasicType(%d)", int(b))
}

func (b BasicType) Numeric() bool {
	return b == Int || b == Double
}

// DataType is a basic kind plus nullability. Nil only ever appears as the
// type of a nil literal or of an expression computed from one.
type DataType struct {
	Kind     BasicType
	Nullable bool
}

func (d DataType) String() string {
	if d.Nullable && d.Kind != Nil {
		return d.Kind.String() + "?"
	}
	return d.Kind.String()
}

// NonNull returns d with nullability stripped.
func (d DataType) NonNull() DataType {
	return DataType{Kind: d.Kind}
}

// Ref is the storage key the analyzer resolves a binding site to. Scope 0 is
// the global scope.
type Ref struct {
	Scope int
	Name  string
}

func (r Ref) Global() bool { return r.Scope == 0 }

func (r Ref) String() string {
	return fmt.Sprintf("%s#%d", r.Name, r.Scope)
}

type Operator int

const (
	OpMul Operator = iota
	OpDiv
	OpAdd
	OpSub
	OpEq
	OpNotEq
	OpLess
	OpGreater
	OpLessEq
	OpGreaterEq
	OpCoalesce
)

var operatorSymbols = [...]string{
	OpMul:       "*",
	OpDiv:       "/",
	OpAdd:       "+",
	OpSub:       "-",
	OpEq:        "==",
	OpNotEq:     "!=",
	OpLess:      "<",
	OpGreater:   ">",
	OpLessEq:    "<=",
	OpGreaterEq: ">=",
	OpCoalesce:  "??",
}

func (o Operator) String() string {
	return operatorSymbols[o]
}

// Precedence ranks operators for folding; higher binds tighter.
func (o Operator) Precedence() int {
	switch o {
	case OpMul, OpDiv:
		return 4
	case OpAdd, OpSub:
		return 3
	case OpCoalesce:
		return 1
	default:
		return 2
	}
}

func (o Operator) Arithmetic() bool { return o <= OpSub }

func (o Operator) Ordering() bool { return o >= OpLess && o <= OpGreaterEq }

func (o Operator) Equality() bool { return o == OpEq || o == OpNotEq }

// Expression is a Term, a BinaryExpression or an UnwrapExpression. Type
// reports the type the analyzer resolved for the node.
type Expression interface {
	fmt.Stringer
	Type() DataType
	exprNode()
}

type typed struct {
	Resolved DataType `json:"-"`
}

func (t *typed) Type() DataType { return t.Resolved }

type TermKind int

const (
	TermIdentifier TermKind = iota
	TermInt
	TermDecimal
	TermString
	TermNil
)

type Term struct {
	typed
	Kind    TermKind
	Name    string  `json:",omitempty"`
	Int     int64   `json:",omitempty"`
	Decimal float64 `json:",omitempty"`
	Str     string  `json:",omitempty"`
	Ref     Ref     `json:"-"`
}

func (*Term) exprNode() {}

// IntLiteral reports whether the term is an integer literal, the only operand
// the language widens to Double implicitly.
func (t *Term) IntLiteral() bool { return t.Kind == TermInt }

func (t *Term) String() string {
	switch t.Kind {
	case TermIdentifier:
		return t.Name
	case TermInt:
		return strconv.FormatInt(t.Int, 10)
	case TermDecimal:
		return strconv.FormatFloat(t.Decimal, 'g', -1, 64)
	case TermString:
		return strconv.Quote(t.Str)
	default:
		return "nil"
	}
}

type BinaryExpression struct {
	typed
	Op  Operator
	Lhs Expression
	Rhs Expression
}

func (*BinaryExpression) exprNode() {}

func (b *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Op, b.Lhs, b.Rhs)
}

type UnwrapExpression struct {
	typed
	Inner Expression
}

func (*UnwrapExpression) exprNode() {}

func (u *UnwrapExpression) String() string {
	return fmt.Sprintf("(! %s)", u.Inner)
}

// Item is a top-level program element: a Statement or a FunctionDefinition.
type Item interface {
	fmt.Stringer
	itemNode()
}

type Statement interface {
	Item
	stmtNode()
}

// Block is a sequence of statements and the unit of lexical scope.
type Block []Statement

func (b Block) String() string {
	var sb strings.Builder
	sb.WriteString("(block")
	for _, stmt := range b {
		sb.WriteByte(' ')
		sb.WriteString(stmt.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

type Argument struct {
	Label string `json:",omitempty"`
	Value *Term
}

func (a Argument) String() string {
	if a.Label != "" {
		return fmt.Sprintf("(%s: %s)", a.Label, a.Value)
	}
	return a.Value.String()
}

type Call struct {
	Name string
	Args []Argument
}

func (c *Call) String() string {
	var sb strings.Builder
	sb.WriteString("(call ")
	sb.WriteString(c.Name)
	for _, arg := range c.Args {
		sb.WriteByte(' ')
		sb.WriteString(arg.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// VariableDefinition declares a variable. At most one of Value and Call is
// set; Call is used when the initializer is a function call.
type VariableDefinition struct {
	Name      string
	Type      *DataType `json:",omitempty"`
	Value     Expression
	Call      *Call `json:",omitempty"`
	Immutable bool
	Ref       Ref      `json:"-"`
	Resolved  DataType `json:"-"`
}

func (d *VariableDefinition) Initialized() bool {
	return d.Value != nil || d.Call != nil
}

func (d *VariableDefinition) String() string {
	var sb strings.Builder
	if d.Immutable {
		sb.WriteString("(let ")
	} else {
		sb.WriteString("(var ")
	}
	sb.WriteString(d.Name)
	if d.Type != nil {
		sb.WriteByte(' ')
		sb.WriteString(d.Type.String())
	}
	switch {
	case d.Call != nil:
		sb.WriteByte(' ')
		sb.WriteString(d.Call.String())
	case d.Value != nil:
		sb.WriteByte(' ')
		sb.WriteString(d.Value.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

type Assignment struct {
	Name  string
	Value Expression
	Ref   Ref `json:"-"`
}

func (a *Assignment) String() string {
	return fmt.Sprintf("(= %s %s)", a.Name, a.Value)
}

// OptionalBinding is the `if let name` condition. Outer is the nullable
// variable being tested, Shadow the non-nullable rebinding visible in the
// if body.
type OptionalBinding struct {
	Name   string
	Outer  Ref `json:"-"`
	Shadow Ref `json:"-"`
}

// Condition holds either a boolean expression or an optional binding.
type Condition struct {
	Expr    Expression       `json:",omitempty"`
	Binding *OptionalBinding `json:",omitempty"`
}

func (c Condition) String() string {
	if c.Binding != nil {
		return "(let " + c.Binding.Name + ")"
	}
	return c.Expr.String()
}

// Conditional is an if statement. Else is nil when there is no else branch.
type Conditional struct {
	Condition Condition
	Body      Block
	Else      Block `json:",omitempty"`
}

func (c *Conditional) String() string {
	if c.Else != nil {
		return fmt.Sprintf("(if %s %s %s)", c.Condition, c.Body, c.Else)
	}
	return fmt.Sprintf("(if %s %s)", c.Condition, c.Body)
}

type Iteration struct {
	Condition Expression
	Body      Block
}

func (i *Iteration) String() string {
	return fmt.Sprintf("(while %s %s)", i.Condition, i.Body)
}

// FunctionCall calls a function and stores its result in Dest.
type FunctionCall struct {
	Dest string
	Ref  Ref `json:"-"`
	Call *Call
}

func (f *FunctionCall) String() string {
	return fmt.Sprintf("(= %s %s)", f.Dest, f.Call)
}

// ProcedureCall calls a function and discards any result.
type ProcedureCall struct {
	Call *Call
}

func (p *ProcedureCall) String() string {
	return p.Call.String()
}

type Return struct {
	Value Expression `json:",omitempty"`
}

func (r *Return) String() string {
	if r.Value == nil {
		return "(return)"
	}
	return fmt.Sprintf("(return %s)", r.Value)
}

func (*VariableDefinition) itemNode() {}
func (*Assignment) itemNode()         {}
func (*Conditional) itemNode()        {}
func (*Iteration) itemNode()          {}
func (*FunctionCall) itemNode()       {}
func (*ProcedureCall) itemNode()      {}
func (*Return) itemNode()             {}

func (*VariableDefinition) stmtNode() {}
func (*Assignment) stmtNode()         {}
func (*Conditional) stmtNode()        {}
func (*Iteration) stmtNode()          {}
func (*FunctionCall) stmtNode()       {}
func (*ProcedureCall) stmtNode()      {}
func (*Return) stmtNode()             {}

// Parameter is one formal parameter. An empty Outside name means callers pass
// the argument unlabeled; an Inside name of "_" discards the argument.
type Parameter struct {
	Outside string `json:",omitempty"`
	Inside  string
	Type    DataType
	Ref     Ref `json:"-"`
}

func (p Parameter) Labeled() bool { return p.Outside != "" }

func (p Parameter) String() string {
	outside := p.Outside
	if outside == "" {
		outside = "_"
	}
	return fmt.Sprintf("(%s %s %s)", outside, p.Inside, p.Type)
}

type FunctionDefinition struct {
	Name       string
	Params     []Parameter
	ReturnType *DataType `json:",omitempty"`
	Body       Block
}

func (*FunctionDefinition) itemNode() {}

func (f *FunctionDefinition) String() string {
	var sb strings.Builder
	sb.WriteString("(func ")
	sb.WriteString(f.Name)
	sb.WriteString(" (")
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.String())
	}
	sb.WriteByte(')')
	if f.ReturnType != nil {
		sb.WriteString(" -> ")
		sb.WriteString(f.ReturnType.String())
	}
	sb.WriteByte(' ')
	sb.WriteString(f.Body.String())
	sb.WriteByte(')')
	return sb.String()
}

type Program struct {
	Items []Item
}

func (p *Program) String() string {
	var sb strings.Builder
	sb.WriteString("(program")
	for _, item := range p.Items {
		sb.WriteByte(' ')
		sb.WriteString(item.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Functions returns the program's function definitions in source order.
func (p *Program) Functions() []*FunctionDefinition {
	var fns []*FunctionDefinition
	for _, item := range p.Items {
		if fn, ok := item.(*FunctionDefinition); ok {
			fns = append(fns, fn)
		}
	}
	return fns
}
