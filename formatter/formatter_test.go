package formatter

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/andreabedini/souffle/internal/ast"
	tt "github.com/andreabedini/souffle/internal/types"
)

func TestProgram(t *testing.T) {
	t.Parallel()

	p := &ast.Program{
		Relations: []*ast.Relation{
			{Name: "edge", Attributes: []ast.Attribute{{Name: "x", Type: "number"}, {Name: "y", Type: "number"}}},
			{Name: "path", Attributes: []ast.Attribute{{Name: "x", Type: "number"}, {Name: "y", Type: "number"}}},
		},
		Directives: []*ast.Directive{
			{Kind: ast.DirectiveInput, Name: "edge"},
			{Kind: ast.DirectiveOutput, Name: "path"},
		},
		Clauses: []*ast.Clause{
			{
				Head: &ast.Atom{Name: "path", Args: []ast.Argument{&ast.Variable{Name: "x"}, &ast.Variable{Name: "y"}}},
				Body: []ast.Literal{
					&ast.Atom{Name: "edge", Args: []ast.Argument{&ast.Variable{Name: "x"}, &ast.Variable{Name: "y"}}},
				},
			},
		},
	}

	expected := `.decl edge(x:number, y:number)
.decl path(x:number, y:number)
.input edge
.output path

path(x, y) :- edge(x, y).
`
	assert.Equal(t, expected, Program(p))
}

func TestProgramEmpty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", Program(&ast.Program{}))
}

func TestGenerateFormattedReport(t *testing.T) {
	color.NoColor = true

	changes := []tt.Change{
		{Pass: "dedup-clause-bodies", Message: "rewrote clause bodies"},
		{Pass: "reduce-singleton-relations", Message: "merged 1 redundant relation(s), removing 1 clause(s)",
			ClausesRemoved: 1, RelationsRemoved: 1},
	}

	out := GenerateFormattedReport("program.yaml", changes)
	assert.Contains(t, out, "program.yaml")
	assert.Contains(t, out, "dedup-clause-bodies")
	assert.Contains(t, out, "reduce-singleton-relations")
	assert.Contains(t, out, "1 clause(s) and 1 relation(s) removed")

	empty := GenerateFormattedReport("program.yaml", nil)
	assert.Contains(t, empty, "already minimal")
}
