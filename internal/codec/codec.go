// Package codec reads and writes Datalog programs in a structured YAML
// document form. There is no Datalog surface-syntax grammar here: relations,
// directives, clauses and arguments are all explicit YAML nodes.
package codec

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andreabedini/souffle/internal/ast"
)

type programDoc struct {
	Relations  []relationDoc  `yaml:"relations"`
	Directives []directiveDoc `yaml:"directives,omitempty"`
	Clauses    []clauseDoc    `yaml:"clauses,omitempty"`
}

type relationDoc struct {
	Name       string         `yaml:"name"`
	Attributes []attributeDoc `yaml:"attributes,omitempty"`
}

type attributeDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type directiveDoc struct {
	Kind   string            `yaml:"kind"`
	Name   string            `yaml:"name"`
	Params map[string]string `yaml:"params,omitempty"`
}

type clauseDoc struct {
	Head atomDoc      `yaml:"head"`
	Body []literalDoc `yaml:"body,omitempty"`
}

type atomDoc struct {
	Name string   `yaml:"name"`
	Args []argDoc `yaml:"args,omitempty"`
}

// literalDoc carries exactly one of its fields.
type literalDoc struct {
	Atom       *atomDoc       `yaml:"atom,omitempty"`
	Negation   *atomDoc       `yaml:"negation,omitempty"`
	Constraint *constraintDoc `yaml:"constraint,omitempty"`
}

type constraintDoc struct {
	Op  string `yaml:"op"`
	Lhs argDoc `yaml:"lhs"`
	Rhs argDoc `yaml:"rhs"`
}

// argDoc carries exactly one argument form.
type argDoc struct {
	Var     string      `yaml:"var,omitempty"`
	Str     *string     `yaml:"string,omitempty"`
	Number  string      `yaml:"number,omitempty"`
	Kind    string      `yaml:"kind,omitempty"`
	Nil     bool        `yaml:"nil,omitempty"`
	Unnamed bool        `yaml:"unnamed,omitempty"`
	Functor *functorDoc `yaml:"functor,omitempty"`
}

type functorDoc struct {
	Op   string   `yaml:"op"`
	Args []argDoc `yaml:"args,omitempty"`
}

// Load reads the program document at path.
func Load(path string) (*ast.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a program document from r.
func Decode(r io.Reader) (*ast.Program, error) {
	var doc programDoc
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("error decoding program document: %w", err)
	}
	return doc.toProgram()
}

// Save writes the program document to path.
func Save(path string, program *ast.Program) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Encode(f, program)
}

// Encode writes a program document to w.
func Encode(w io.Writer, program *ast.Program) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return encoder.Encode(fromProgram(program))
}

func (doc *programDoc) toProgram() (*ast.Program, error) {
	program := &ast.Program{}

	for _, rel := range doc.Relations {
		if rel.Name == "" {
			return nil, fmt.Errorf("relation without a name")
		}
		attrs := make([]ast.Attribute, 0, len(rel.Attributes))
		for _, attr := range rel.Attributes {
			attrs = append(attrs, ast.Attribute{Name: attr.Name, Type: attr.Type})
		}
		program.Relations = append(program.Relations, &ast.Relation{
			Name:       ast.QualifiedName(rel.Name),
			Attributes: attrs,
		})
	}

	for _, dir := range doc.Directives {
		kind, err := directiveKind(dir.Kind)
		if err != nil {
			return nil, err
		}
		program.Directives = append(program.Directives, &ast.Directive{
			Kind:   kind,
			Name:   ast.QualifiedName(dir.Name),
			Params: dir.Params,
		})
	}

	for i, clause := range doc.Clauses {
		head, err := clause.Head.toAtom()
		if err != nil {
			return nil, fmt.Errorf("clause %d head: %w", i, err)
		}
		body := make([]ast.Literal, 0, len(clause.Body))
		for j, lit := range clause.Body {
			converted, err := lit.toLiteral()
			if err != nil {
				return nil, fmt.Errorf("clause %d body literal %d: %w", i, j, err)
			}
			body = append(body, converted)
		}
		program.Clauses = append(program.Clauses, &ast.Clause{Head: head, Body: body})
	}

	return program, nil
}

func directiveKind(kind string) (ast.DirectiveKind, error) {
	switch kind {
	case "input":
		return ast.DirectiveInput, nil
	case "output":
		return ast.DirectiveOutput, nil
	case "printsize":
		return ast.DirectivePrintSize, nil
	case "limitsize":
		return ast.DirectiveLimitSize, nil
	default:
		return 0, fmt.Errorf("unknown directive kind %q", kind)
	}
}

func (doc *atomDoc) toAtom() (*ast.Atom, error) {
	if doc.Name == "" {
		return nil, fmt.Errorf("atom without a name")
	}
	args := make([]ast.Argument, 0, len(doc.Args))
	for i, arg := range doc.Args {
		converted, err := arg.toArgument()
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		args = append(args, converted)
	}
	return &ast.Atom{Name: ast.QualifiedName(doc.Name), Args: args}, nil
}

func (doc *literalDoc) toLiteral() (ast.Literal, error) {
	set := 0
	if doc.Atom != nil {
		set++
	}
	if doc.Negation != nil {
		set++
	}
	if doc.Constraint != nil {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("literal must set exactly one of atom, negation, constraint")
	}

	switch {
	case doc.Atom != nil:
		return doc.Atom.toAtom()
	case doc.Negation != nil:
		atom, err := doc.Negation.toAtom()
		if err != nil {
			return nil, err
		}
		return &ast.Negation{Atom: atom}, nil
	default:
		lhs, err := doc.Constraint.Lhs.toArgument()
		if err != nil {
			return nil, fmt.Errorf("constraint lhs: %w", err)
		}
		rhs, err := doc.Constraint.Rhs.toArgument()
		if err != nil {
			return nil, fmt.Errorf("constraint rhs: %w", err)
		}
		if doc.Constraint.Op == "" {
			return nil, fmt.Errorf("constraint without an operator")
		}
		return &ast.BinaryConstraint{Op: doc.Constraint.Op, Lhs: lhs, Rhs: rhs}, nil
	}
}

func (doc *argDoc) toArgument() (ast.Argument, error) {
	set := 0
	if doc.Var != "" {
		set++
	}
	if doc.Str != nil {
		set++
	}
	if doc.Number != "" {
		set++
	}
	if doc.Nil {
		set++
	}
	if doc.Unnamed {
		set++
	}
	if doc.Functor != nil {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("argument must set exactly one of var, string, number, nil, unnamed, functor")
	}

	switch {
	case doc.Var != "":
		return &ast.Variable{Name: doc.Var}, nil
	case doc.Str != nil:
		return &ast.StringConstant{Value: *doc.Str}, nil
	case doc.Number != "":
		kind, err := numberKind(doc.Kind)
		if err != nil {
			return nil, err
		}
		return &ast.NumericConstant{Kind: kind, Value: doc.Number}, nil
	case doc.Nil:
		return &ast.NilConstant{}, nil
	case doc.Unnamed:
		return &ast.UnnamedVariable{}, nil
	default:
		if doc.Functor.Op == "" {
			return nil, fmt.Errorf("functor without an operator")
		}
		args := make([]ast.Argument, 0, len(doc.Functor.Args))
		for i, arg := range doc.Functor.Args {
			converted, err := arg.toArgument()
			if err != nil {
				return nil, fmt.Errorf("functor argument %d: %w", i, err)
			}
			args = append(args, converted)
		}
		return &ast.IntrinsicFunctor{Op: doc.Functor.Op, Args: args}, nil
	}
}

func numberKind(kind string) (ast.NumberKind, error) {
	switch kind {
	case "", "signed":
		return ast.NumberSigned, nil
	case "unsigned":
		return ast.NumberUnsigned, nil
	case "float":
		return ast.NumberFloat, nil
	default:
		return 0, fmt.Errorf("unknown number kind %q", kind)
	}
}

func fromProgram(program *ast.Program) programDoc {
	var doc programDoc

	for _, rel := range program.Relations {
		attrs := make([]attributeDoc, 0, len(rel.Attributes))
		for _, attr := range rel.Attributes {
			attrs = append(attrs, attributeDoc{Name: attr.Name, Type: attr.Type})
		}
		doc.Relations = append(doc.Relations, relationDoc{
			Name:       string(rel.Name),
			Attributes: attrs,
		})
	}

	for _, dir := range program.Directives {
		doc.Directives = append(doc.Directives, directiveDoc{
			Kind:   dir.Kind.String(),
			Name:   string(dir.Name),
			Params: dir.Params,
		})
	}

	for _, clause := range program.Clauses {
		converted := clauseDoc{Head: fromAtom(clause.Head)}
		for _, lit := range clause.Body {
			converted.Body = append(converted.Body, fromLiteral(lit))
		}
		doc.Clauses = append(doc.Clauses, converted)
	}

	return doc
}

func fromAtom(atom *ast.Atom) atomDoc {
	doc := atomDoc{Name: string(atom.Name)}
	for _, arg := range atom.Args {
		doc.Args = append(doc.Args, fromArgument(arg))
	}
	return doc
}

func fromLiteral(lit ast.Literal) literalDoc {
	switch t := lit.(type) {
	case *ast.Atom:
		atom := fromAtom(t)
		return literalDoc{Atom: &atom}
	case *ast.Negation:
		atom := fromAtom(t.Atom)
		return literalDoc{Negation: &atom}
	case *ast.BinaryConstraint:
		return literalDoc{Constraint: &constraintDoc{
			Op:  t.Op,
			Lhs: fromArgument(t.Lhs),
			Rhs: fromArgument(t.Rhs),
		}}
	default:
		panic(fmt.Sprintf("codec: unsupported literal %T", lit))
	}
}

func fromArgument(arg ast.Argument) argDoc {
	switch t := arg.(type) {
	case *ast.Variable:
		return argDoc{Var: t.Name}
	case *ast.StringConstant:
		value := t.Value
		return argDoc{Str: &value}
	case *ast.NumericConstant:
		doc := argDoc{Number: t.Value}
		if t.Kind != ast.NumberSigned {
			doc.Kind = t.Kind.String()
		}
		return doc
	case *ast.NilConstant:
		return argDoc{Nil: true}
	case *ast.UnnamedVariable:
		return argDoc{Unnamed: true}
	case *ast.IntrinsicFunctor:
		functor := functorDoc{Op: t.Op}
		for _, a := range t.Args {
			functor.Args = append(functor.Args, fromArgument(a))
		}
		return argDoc{Functor: &functor}
	default:
		panic(fmt.Sprintf("codec: unsupported argument %T", arg))
	}
}
