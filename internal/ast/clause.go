package ast

import "strings"

// Clause is a rule `Head :- Body.`; a fact is a clause with an empty body.
// The head is always present and always an atom.
type Clause struct {
	Head *Atom
	Body []Literal
}

func (c *Clause) String() string {
	if len(c.Body) == 0 {
		return c.Head.String() + "."
	}
	parts := make([]string, 0, len(c.Body))
	for _, lit := range c.Body {
		parts = append(parts, lit.String())
	}
	return c.Head.String() + " :- " + strings.Join(parts, ", ") + "."
}

// Clone returns a deep copy sharing no nodes with the receiver.
func (c *Clause) Clone() *Clause {
	body := make([]Literal, len(c.Body))
	for i, lit := range c.Body {
		body[i] = lit.Clone().(Literal)
	}
	return &Clause{Head: c.Head.CloneAtom(), Body: body}
}

// Equal reports deep structural equality of head and body, in order.
func (c *Clause) Equal(other *Clause) bool {
	if other == nil || !c.Head.Equal(other.Head) || len(c.Body) != len(other.Body) {
		return false
	}
	for i := range c.Body {
		if !c.Body[i].Equal(other.Body[i]) {
			return false
		}
	}
	return true
}

// BodyAtoms returns the body as atoms, or false if any body literal is not
// an atom.
func (c *Clause) BodyAtoms() ([]*Atom, bool) {
	atoms := make([]*Atom, len(c.Body))
	for i, lit := range c.Body {
		atom, ok := lit.(*Atom)
		if !ok {
			return nil, false
		}
		atoms[i] = atom
	}
	return atoms, true
}

// ReorderBodyAtoms returns a clone of the clause whose body position i holds
// the original body atom perm[i]. The permutation must cover the body exactly
// and every body literal must be an atom; violations indicate an upstream bug
// and panic.
func (c *Clause) ReorderBodyAtoms(perm []int) *Clause {
	if len(perm) != len(c.Body) {
		panic("ast: permutation length does not match clause body")
	}
	atoms, ok := c.BodyAtoms()
	if !ok {
		panic("ast: cannot reorder a body containing non-atom literals")
	}
	reordered := c.Clone()
	for i, j := range perm {
		reordered.Body[i] = atoms[j].CloneAtom()
	}
	return reordered
}
