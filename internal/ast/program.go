package ast

import "strings"

// Attribute is a named, typed column of a relation declaration.
type Attribute struct {
	Name string
	Type string
}

// Relation is a relation declaration. Identity is the qualified name.
type Relation struct {
	Name       QualifiedName
	Attributes []Attribute
}

// Arity returns the number of declared attributes.
func (r *Relation) Arity() int { return len(r.Attributes) }

func (r *Relation) String() string {
	parts := make([]string, 0, len(r.Attributes))
	for _, attr := range r.Attributes {
		parts = append(parts, attr.Name+":"+attr.Type)
	}
	return ".decl " + string(r.Name) + "(" + strings.Join(parts, ", ") + ")"
}

// Clone returns a deep copy of the relation declaration.
func (r *Relation) Clone() *Relation {
	attrs := make([]Attribute, len(r.Attributes))
	copy(attrs, r.Attributes)
	return &Relation{Name: r.Name, Attributes: attrs}
}

// DirectiveKind is the kind of an I/O directive.
type DirectiveKind int

const (
	DirectiveInput DirectiveKind = iota
	DirectiveOutput
	DirectivePrintSize
	DirectiveLimitSize
)

func (k DirectiveKind) String() string {
	switch k {
	case DirectiveInput:
		return "input"
	case DirectiveOutput:
		return "output"
	case DirectivePrintSize:
		return "printsize"
	case DirectiveLimitSize:
		return "limitsize"
	default:
		return "?"
	}
}

// Directive attaches an I/O behavior to a relation, e.g. `.input edge`.
type Directive struct {
	Kind   DirectiveKind
	Name   QualifiedName
	Params map[string]string
}

func (d *Directive) String() string {
	return "." + d.Kind.String() + " " + string(d.Name)
}

// Clone returns a deep copy of the directive.
func (d *Directive) Clone() *Directive {
	var params map[string]string
	if d.Params != nil {
		params = make(map[string]string, len(d.Params))
		for k, v := range d.Params {
			params[k] = v
		}
	}
	return &Directive{Kind: d.Kind, Name: d.Name, Params: params}
}

// Program is a whole Datalog program: relation declarations, I/O directives,
// and clauses. Clause order is program order and is preserved by all
// operations.
type Program struct {
	Relations  []*Relation
	Directives []*Directive
	Clauses    []*Clause
}

// Relation returns the declaration with the given name, or nil.
func (p *Program) Relation(name QualifiedName) *Relation {
	for _, rel := range p.Relations {
		if rel.Name == name {
			return rel
		}
	}
	return nil
}

// ClausesOf returns the clauses whose head refers to the given relation, in
// program order.
func (p *Program) ClausesOf(name QualifiedName) []*Clause {
	var clauses []*Clause
	for _, clause := range p.Clauses {
		if clause.Head.Name == name {
			clauses = append(clauses, clause)
		}
	}
	return clauses
}

// AddClause appends a clause to the program.
func (p *Program) AddClause(c *Clause) {
	p.Clauses = append(p.Clauses, c)
}

// RemoveClause removes the first clause structurally equal to c. It reports
// whether a clause was removed.
func (p *Program) RemoveClause(c *Clause) bool {
	for i, clause := range p.Clauses {
		if clause.Equal(c) {
			p.Clauses = append(p.Clauses[:i], p.Clauses[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveRelation removes the declaration with the given name together with
// its directives. Clauses are untouched; callers remove those first.
func (p *Program) RemoveRelation(name QualifiedName) bool {
	removed := false
	for i, rel := range p.Relations {
		if rel.Name == name {
			p.Relations = append(p.Relations[:i], p.Relations[i+1:]...)
			removed = true
			break
		}
	}
	if removed {
		kept := p.Directives[:0]
		for _, dir := range p.Directives {
			if dir.Name != name {
				kept = append(kept, dir)
			}
		}
		p.Directives = kept
	}
	return removed
}

// Clone returns a deep copy of the program.
func (p *Program) Clone() *Program {
	clone := &Program{
		Relations:  make([]*Relation, len(p.Relations)),
		Directives: make([]*Directive, len(p.Directives)),
		Clauses:    make([]*Clause, len(p.Clauses)),
	}
	for i, rel := range p.Relations {
		clone.Relations[i] = rel.Clone()
	}
	for i, dir := range p.Directives {
		clone.Directives[i] = dir.Clone()
	}
	for i, clause := range p.Clauses {
		clone.Clauses[i] = clause.Clone()
	}
	return clone
}

// Equal reports deep structural equality of two programs, element by element.
func (p *Program) Equal(other *Program) bool {
	if other == nil ||
		len(p.Relations) != len(other.Relations) ||
		len(p.Directives) != len(other.Directives) ||
		len(p.Clauses) != len(other.Clauses) {
		return false
	}
	for i, rel := range p.Relations {
		o := other.Relations[i]
		if rel.Name != o.Name || len(rel.Attributes) != len(o.Attributes) {
			return false
		}
		for j := range rel.Attributes {
			if rel.Attributes[j] != o.Attributes[j] {
				return false
			}
		}
	}
	for i, dir := range p.Directives {
		o := other.Directives[i]
		if dir.Kind != o.Kind || dir.Name != o.Name {
			return false
		}
	}
	for i := range p.Clauses {
		if !p.Clauses[i].Equal(other.Clauses[i]) {
			return false
		}
	}
	return true
}
