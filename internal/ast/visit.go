package ast

// VisitArguments calls f for every argument under n, depth-first, including
// functor operands.
func VisitArguments(n Node, f func(Argument)) {
	switch t := n.(type) {
	case *Atom:
		for _, arg := range t.Args {
			VisitArguments(arg, f)
		}
	case *Negation:
		VisitArguments(t.Atom, f)
	case *BinaryConstraint:
		VisitArguments(t.Lhs, f)
		VisitArguments(t.Rhs, f)
	case *IntrinsicFunctor:
		f(t)
		for _, arg := range t.Args {
			VisitArguments(arg, f)
		}
	case Argument:
		f(t)
	}
}

// VisitVariables calls f for every named variable under n, depth-first.
func VisitVariables(n Node, f func(*Variable)) {
	VisitArguments(n, func(arg Argument) {
		if v, ok := arg.(*Variable); ok {
			f(v)
		}
	})
}

// VisitArguments calls f for every argument in the clause, head first.
func (c *Clause) VisitArguments(f func(Argument)) {
	VisitArguments(c.Head, f)
	for _, lit := range c.Body {
		VisitArguments(lit, f)
	}
}

// VisitVariables calls f for every named variable in the clause, head first.
func (c *Clause) VisitVariables(f func(*Variable)) {
	c.VisitArguments(func(arg Argument) {
		if v, ok := arg.(*Variable); ok {
			f(v)
		}
	})
}

// VariableNames returns the set of distinct variable names in the clause.
func (c *Clause) VariableNames() map[string]struct{} {
	names := make(map[string]struct{})
	c.VisitVariables(func(v *Variable) {
		names[v.Name] = struct{}{}
	})
	return names
}

// Rewriter rewrites a single node, returning its replacement. Returning the
// node unchanged leaves it in place.
type Rewriter interface {
	Rewrite(Node) Node
}

// RewriterFunc adapts a function to the Rewriter interface.
type RewriterFunc func(Node) Node

func (f RewriterFunc) Rewrite(n Node) Node { return f(n) }

// RewriteNode applies r post-order: children are rewritten first, so the
// parent sees already-rewritten children before r decides its own fate.
func RewriteNode(n Node, r Rewriter) Node {
	switch t := n.(type) {
	case *Atom:
		for i, arg := range t.Args {
			t.Args[i] = RewriteNode(arg, r).(Argument)
		}
	case *Negation:
		t.Atom = RewriteNode(t.Atom, r).(*Atom)
	case *BinaryConstraint:
		t.Lhs = RewriteNode(t.Lhs, r).(Argument)
		t.Rhs = RewriteNode(t.Rhs, r).(Argument)
	case *IntrinsicFunctor:
		for i, arg := range t.Args {
			t.Args[i] = RewriteNode(arg, r).(Argument)
		}
	}
	return r.Rewrite(n)
}

// Rewrite applies r to every node of the clause, post-order.
func (c *Clause) Rewrite(r Rewriter) {
	c.Head = RewriteNode(c.Head, r).(*Atom)
	for i, lit := range c.Body {
		c.Body[i] = RewriteNode(lit, r).(Literal)
	}
}

// Rewrite applies r to every node of every clause in the program, post-order.
func (p *Program) Rewrite(r Rewriter) {
	for _, clause := range p.Clauses {
		clause.Rewrite(r)
	}
}
