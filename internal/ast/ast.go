package ast

import (
	"fmt"
	"strings"
)

// QualifiedName identifies a relation. Dotted components are kept joined
// ("a.b.c"), so values are comparable and usable as map keys.
type QualifiedName string

func (q QualifiedName) String() string { return string(q) }

// Node is implemented by every term-level AST node: literals and arguments.
// Equality is deep and structural; Clone produces an independent copy that
// shares nothing with the original.
type Node interface {
	String() string
	Equal(other Node) bool
	Clone() Node
}

// Argument is a term appearing in an argument position of an atom, a
// constraint side, or a functor operand.
type Argument interface {
	Node
	isArgument()
}

// Literal is a single conjunct of a clause body.
type Literal interface {
	Node
	isLiteral()
}

// Variable is a named logic variable.
type Variable struct {
	Name string
}

func (*Variable) isArgument() {}

func (v *Variable) String() string { return v.Name }

func (v *Variable) Equal(other Node) bool {
	o, ok := other.(*Variable)
	return ok && v.Name == o.Name
}

func (v *Variable) Clone() Node { return &Variable{Name: v.Name} }

// UnnamedVariable is the anonymous placeholder variable.
type UnnamedVariable struct{}

func (*UnnamedVariable) isArgument() {}

func (*UnnamedVariable) String() string { return "_" }

func (*UnnamedVariable) Equal(other Node) bool {
	_, ok := other.(*UnnamedVariable)
	return ok
}

func (*UnnamedVariable) Clone() Node { return &UnnamedVariable{} }

// StringConstant is a string literal argument.
type StringConstant struct {
	Value string
}

func (*StringConstant) isArgument() {}

func (c *StringConstant) String() string { return fmt.Sprintf("%q", c.Value) }

func (c *StringConstant) Equal(other Node) bool {
	o, ok := other.(*StringConstant)
	return ok && c.Value == o.Value
}

func (c *StringConstant) Clone() Node { return &StringConstant{Value: c.Value} }

// NumberKind distinguishes the numeric domains a constant can live in.
type NumberKind int

const (
	NumberSigned NumberKind = iota
	NumberUnsigned
	NumberFloat
)

func (k NumberKind) String() string {
	switch k {
	case NumberSigned:
		return "signed"
	case NumberUnsigned:
		return "unsigned"
	case NumberFloat:
		return "float"
	default:
		return "?"
	}
}

// NumericConstant is a numeric literal argument. The value is kept as its
// literal spelling; two constants are equal iff kind and spelling match.
type NumericConstant struct {
	Kind  NumberKind
	Value string
}

func (*NumericConstant) isArgument() {}

func (c *NumericConstant) String() string { return c.Value }

func (c *NumericConstant) Equal(other Node) bool {
	o, ok := other.(*NumericConstant)
	return ok && c.Kind == o.Kind && c.Value == o.Value
}

func (c *NumericConstant) Clone() Node {
	return &NumericConstant{Kind: c.Kind, Value: c.Value}
}

// NilConstant is the nil record reference.
type NilConstant struct{}

func (*NilConstant) isArgument() {}

func (*NilConstant) String() string { return "nil" }

func (*NilConstant) Equal(other Node) bool {
	_, ok := other.(*NilConstant)
	return ok
}

func (*NilConstant) Clone() Node { return &NilConstant{} }

// IntrinsicFunctor is an operator applied to argument operands, e.g. x+1.
type IntrinsicFunctor struct {
	Op   string
	Args []Argument
}

func (*IntrinsicFunctor) isArgument() {}

func (f *IntrinsicFunctor) String() string {
	parts := make([]string, 0, len(f.Args))
	for _, a := range f.Args {
		parts = append(parts, a.String())
	}
	return f.Op + "(" + strings.Join(parts, ", ") + ")"
}

func (f *IntrinsicFunctor) Equal(other Node) bool {
	o, ok := other.(*IntrinsicFunctor)
	if !ok || f.Op != o.Op || len(f.Args) != len(o.Args) {
		return false
	}
	for i := range f.Args {
		if !f.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

func (f *IntrinsicFunctor) Clone() Node {
	args := make([]Argument, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.Clone().(Argument)
	}
	return &IntrinsicFunctor{Op: f.Op, Args: args}
}

// Atom is a relation name applied to an ordered argument list. It doubles as
// a clause head and as a positive body literal.
type Atom struct {
	Name QualifiedName
	Args []Argument
}

func (*Atom) isLiteral() {}

// Arity returns the number of arguments.
func (a *Atom) Arity() int { return len(a.Args) }

func (a *Atom) String() string {
	parts := make([]string, 0, len(a.Args))
	for _, arg := range a.Args {
		parts = append(parts, arg.String())
	}
	return string(a.Name) + "(" + strings.Join(parts, ", ") + ")"
}

func (a *Atom) Equal(other Node) bool {
	o, ok := other.(*Atom)
	if !ok || a.Name != o.Name || len(a.Args) != len(o.Args) {
		return false
	}
	for i := range a.Args {
		if !a.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

func (a *Atom) Clone() Node { return a.CloneAtom() }

// CloneAtom is Clone with a concrete result type.
func (a *Atom) CloneAtom() *Atom {
	args := make([]Argument, len(a.Args))
	for i, arg := range a.Args {
		args[i] = arg.Clone().(Argument)
	}
	return &Atom{Name: a.Name, Args: args}
}

// Negation is a negated atom in a clause body.
type Negation struct {
	Atom *Atom
}

func (*Negation) isLiteral() {}

func (n *Negation) String() string { return "!" + n.Atom.String() }

func (n *Negation) Equal(other Node) bool {
	o, ok := other.(*Negation)
	return ok && n.Atom.Equal(o.Atom)
}

func (n *Negation) Clone() Node { return &Negation{Atom: n.Atom.CloneAtom()} }

// BinaryConstraint is a comparison between two arguments, e.g. x < y.
type BinaryConstraint struct {
	Op  string
	Lhs Argument
	Rhs Argument
}

func (*BinaryConstraint) isLiteral() {}

func (c *BinaryConstraint) String() string {
	return c.Lhs.String() + " " + c.Op + " " + c.Rhs.String()
}

func (c *BinaryConstraint) Equal(other Node) bool {
	o, ok := other.(*BinaryConstraint)
	return ok && c.Op == o.Op && c.Lhs.Equal(o.Lhs) && c.Rhs.Equal(o.Rhs)
}

func (c *BinaryConstraint) Clone() Node {
	return &BinaryConstraint{
		Op:  c.Op,
		Lhs: c.Lhs.Clone().(Argument),
		Rhs: c.Rhs.Clone().(Argument),
	}
}
