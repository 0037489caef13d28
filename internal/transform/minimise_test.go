package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreabedini/souffle/internal/analysis"
	"github.com/andreabedini/souffle/internal/ast"
)

func program(relations []string, clauses ...*ast.Clause) *ast.Program {
	p := &ast.Program{}
	for _, name := range relations {
		p.Relations = append(p.Relations, &ast.Relation{Name: ast.QualifiedName(name)})
	}
	p.Clauses = clauses
	return p
}

func unit(p *ast.Program) *analysis.TranslationUnit {
	return analysis.NewTranslationUnit(p)
}

func TestDedupClauseBodies(t *testing.T) {
	t.Parallel()

	t.Run("repeated body literal is dropped", func(t *testing.T) {
		t.Parallel()
		tu := unit(program([]string{"A", "B"},
			clause(atom("A", v("x")), atom("B", v("x")), atom("B", v("x")))))

		require.True(t, DedupClauseBodies(tu))

		clauses := tu.Program().Clauses
		require.Len(t, clauses, 1)
		assert.True(t, clauses[0].Equal(clause(atom("A", v("x")), atom("B", v("x")))))
	})

	t.Run("first occurrences survive in order", func(t *testing.T) {
		t.Parallel()
		tu := unit(program([]string{"A", "B", "C"},
			clause(atom("A", v("x")),
				atom("B", v("x")), atom("C", v("x")), atom("B", v("x")), atom("C", v("x")))))

		require.True(t, DedupClauseBodies(tu))

		clauses := tu.Program().Clauses
		require.Len(t, clauses, 1)
		assert.True(t, clauses[0].Equal(
			clause(atom("A", v("x")), atom("B", v("x")), atom("C", v("x")))))
	})

	t.Run("distinct literals are kept", func(t *testing.T) {
		t.Parallel()
		tu := unit(program([]string{"A", "B"},
			clause(atom("A", v("x"), v("y")), atom("B", v("x")), atom("B", v("y")))))

		assert.False(t, DedupClauseBodies(tu))
		require.Len(t, tu.Program().Clauses, 1)
	})

	t.Run("repeated negations are deduplicated too", func(t *testing.T) {
		t.Parallel()
		neg := func() ast.Literal { return &ast.Negation{Atom: atom("B", v("x"))} }
		tu := unit(program([]string{"A", "B", "C"},
			clause(atom("A", v("x")), atom("C", v("x")), neg(), neg())))

		require.True(t, DedupClauseBodies(tu))
		clauses := tu.Program().Clauses
		require.Len(t, clauses, 1)
		assert.Len(t, clauses[0].Body, 2)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		tu := unit(program([]string{"A", "B"},
			clause(atom("A", v("x")), atom("B", v("x")), atom("B", v("x")))))

		require.True(t, DedupClauseBodies(tu))
		after := tu.Program().Clone()
		assert.False(t, DedupClauseBodies(tu))
		assert.True(t, tu.Program().Equal(after))
	})
}

func TestRemoveSelfImpliedClauses(t *testing.T) {
	t.Parallel()

	t.Run("head repeated in body removes the clause", func(t *testing.T) {
		t.Parallel()
		tu := unit(program([]string{"A", "B"},
			clause(atom("A", v("x")), atom("A", v("x")), atom("B", v("x")))))

		require.True(t, RemoveSelfImpliedClauses(tu))
		assert.Empty(t, tu.Program().Clauses)
	})

	t.Run("renamed head variable is not self-implication", func(t *testing.T) {
		t.Parallel()
		tu := unit(program([]string{"A", "B"},
			clause(atom("A", v("x")), atom("A", v("y")), atom("B", v("x"), v("y")))))

		assert.False(t, RemoveSelfImpliedClauses(tu))
		assert.Len(t, tu.Program().Clauses, 1)
	})

	t.Run("facts are kept", func(t *testing.T) {
		t.Parallel()
		tu := unit(program([]string{"A"}, clause(atom("A", num("1")))))

		assert.False(t, RemoveSelfImpliedClauses(tu))
		assert.Len(t, tu.Program().Clauses, 1)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		tu := unit(program([]string{"A", "B"},
			clause(atom("A", v("x")), atom("A", v("x"))),
			clause(atom("A", v("x")), atom("B", v("x")))))

		require.True(t, RemoveSelfImpliedClauses(tu))
		after := tu.Program().Clone()
		assert.False(t, RemoveSelfImpliedClauses(tu))
		assert.True(t, tu.Program().Equal(after))
	})
}

func TestReduceLocallyEquivalentClauses(t *testing.T) {
	t.Parallel()

	t.Run("renamed clause in the same relation is removed", func(t *testing.T) {
		t.Parallel()
		first := clause(atom("R", v("x"), v("y")), atom("P", v("x"), v("z")), atom("Q", v("z"), v("y")))
		second := clause(atom("R", v("a"), v("b")), atom("P", v("a"), v("c")), atom("Q", v("c"), v("b")))
		tu := unit(program([]string{"R", "P", "Q"}, first, second))

		require.True(t, ReduceLocallyEquivalentClauses(tu))

		clauses := tu.Program().Clauses
		require.Len(t, clauses, 1)
		assert.True(t, clauses[0].Equal(first), "representative must be the first clause in program order")
	})

	t.Run("reordered clause in the same relation is removed", func(t *testing.T) {
		t.Parallel()
		first := clause(atom("R", v("x"), v("y")), atom("P", v("x")), atom("Q", v("y")))
		second := clause(atom("R", v("x"), v("y")), atom("Q", v("y")), atom("P", v("x")))
		tu := unit(program([]string{"R", "P", "Q"}, first, second))

		require.True(t, ReduceLocallyEquivalentClauses(tu))
		require.Len(t, tu.Program().Clauses, 1)
		assert.True(t, tu.Program().Clauses[0].Equal(first))
	})

	t.Run("clauses of different relations are untouched", func(t *testing.T) {
		t.Parallel()
		tu := unit(program([]string{"R", "S", "P"},
			clause(atom("R", v("x")), atom("P", v("x"))),
			clause(atom("S", v("x")), atom("P", v("x")))))

		assert.False(t, ReduceLocallyEquivalentClauses(tu))
		assert.Len(t, tu.Program().Clauses, 2)
	})

	t.Run("differing constants keep both clauses", func(t *testing.T) {
		t.Parallel()
		tu := unit(program([]string{"R", "P"},
			clause(atom("R", num("1")), atom("P", num("1"))),
			clause(atom("R", num("2")), atom("P", num("2")))))

		assert.False(t, ReduceLocallyEquivalentClauses(tu))
		assert.Len(t, tu.Program().Clauses, 2)
	})

	t.Run("clause with a negation forms a singleton class", func(t *testing.T) {
		t.Parallel()
		negated := func() *ast.Clause {
			return clause(atom("R", v("x")), atom("P", v("x")), &ast.Negation{Atom: atom("Q", v("x"))})
		}
		tu := unit(program([]string{"R", "P", "Q"}, negated(), negated()))

		assert.False(t, ReduceLocallyEquivalentClauses(tu))
		assert.Len(t, tu.Program().Clauses, 2, "inadmissible clauses are never deleted")
	})

	t.Run("three-way equivalence class keeps one representative", func(t *testing.T) {
		t.Parallel()
		tu := unit(program([]string{"R", "P"},
			clause(atom("R", v("x")), atom("P", v("x"))),
			clause(atom("R", v("y")), atom("P", v("y"))),
			clause(atom("R", v("z")), atom("P", v("z")))))

		require.True(t, ReduceLocallyEquivalentClauses(tu))
		assert.Len(t, tu.Program().Clauses, 1)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		tu := unit(program([]string{"R", "P"},
			clause(atom("R", v("x")), atom("P", v("x"))),
			clause(atom("R", v("y")), atom("P", v("y")))))

		require.True(t, ReduceLocallyEquivalentClauses(tu))
		after := tu.Program().Clone()
		assert.False(t, ReduceLocallyEquivalentClauses(tu))
		assert.True(t, tu.Program().Equal(after))
	})
}

func TestReduceSingletonRelations(t *testing.T) {
	t.Parallel()

	chain := func(rel string, vars ...string) *ast.Clause {
		return clause(atom(rel, v(vars[0]), v(vars[1])),
			atom("P", v(vars[0]), v(vars[2])), atom("Q", v(vars[2]), v(vars[1])))
	}

	t.Run("equivalent singletons are merged and references rewritten", func(t *testing.T) {
		t.Parallel()
		p := program([]string{"R", "S", "T", "P", "Q"},
			chain("R", "x", "y", "z"),
			chain("S", "a", "b", "c"),
			clause(atom("T", v("u"), v("w")), atom("S", v("u"), v("w"))))
		tu := unit(p)

		require.True(t, ReduceSingletonRelations(tu))

		assert.Nil(t, p.Relation("S"), "merged relation must be removed")
		assert.NotNil(t, p.Relation("R"))
		require.Len(t, p.Clauses, 2)

		// every S reference now points at R
		for _, c := range p.Clauses {
			for _, lit := range c.Body {
				if a, ok := lit.(*ast.Atom); ok {
					assert.NotEqual(t, ast.QualifiedName("S"), a.Name)
				}
			}
		}
		rewritten := p.ClausesOf("T")
		require.Len(t, rewritten, 1)
		assert.True(t, rewritten[0].Equal(
			clause(atom("T", v("u"), v("w")), atom("R", v("u"), v("w")))))
	})

	t.Run("earlier singleton survives", func(t *testing.T) {
		t.Parallel()
		p := program([]string{"R", "S", "P", "Q"},
			chain("R", "x", "y", "z"),
			chain("S", "a", "b", "c"))
		tu := unit(p)

		require.True(t, ReduceSingletonRelations(tu))
		assert.NotNil(t, p.Relation("R"))
		assert.Nil(t, p.Relation("S"))
	})

	t.Run("IO relations never participate", func(t *testing.T) {
		t.Parallel()
		p := program([]string{"R", "S", "P", "Q"},
			chain("R", "x", "y", "z"),
			chain("S", "a", "b", "c"))
		p.Directives = append(p.Directives, &ast.Directive{Kind: ast.DirectiveOutput, Name: "S"})
		tu := unit(p)

		assert.False(t, ReduceSingletonRelations(tu))
		assert.NotNil(t, p.Relation("R"))
		assert.NotNil(t, p.Relation("S"))
		assert.Len(t, p.Clauses, 2)
	})

	t.Run("non-singleton relations never participate", func(t *testing.T) {
		t.Parallel()
		p := program([]string{"R", "S", "P", "Q"},
			chain("R", "x", "y", "z"),
			chain("S", "a", "b", "c"),
			clause(atom("S", v("a"), v("b")), atom("P", v("a"), v("b"))))
		tu := unit(p)

		assert.False(t, ReduceSingletonRelations(tu))
		assert.NotNil(t, p.Relation("S"))
	})

	t.Run("three equivalent singletons collapse onto the first", func(t *testing.T) {
		t.Parallel()
		p := program([]string{"R", "S", "U", "P", "Q"},
			chain("R", "x", "y", "z"),
			chain("S", "a", "b", "c"),
			chain("U", "d", "e", "f"))
		tu := unit(p)

		require.True(t, ReduceSingletonRelations(tu))
		assert.NotNil(t, p.Relation("R"))
		assert.Nil(t, p.Relation("S"))
		assert.Nil(t, p.Relation("U"))
		assert.Len(t, p.Clauses, 1)
	})

	t.Run("merged relation directives are removed", func(t *testing.T) {
		t.Parallel()
		p := program([]string{"R", "S", "P", "Q"},
			chain("R", "x", "y", "z"),
			chain("S", "a", "b", "c"))
		p.Directives = append(p.Directives, &ast.Directive{Kind: ast.DirectiveLimitSize, Name: "S"})
		tu := unit(p)

		require.True(t, ReduceSingletonRelations(tu), "limitsize does not make a relation IO")
		assert.Empty(t, p.Directives)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		p := program([]string{"R", "S", "P", "Q"},
			chain("R", "x", "y", "z"),
			chain("S", "a", "b", "c"))
		tu := unit(p)

		require.True(t, ReduceSingletonRelations(tu))
		after := tu.Program().Clone()
		assert.False(t, ReduceSingletonRelations(tu))
		assert.True(t, tu.Program().Equal(after))
	})
}

func TestMinimise(t *testing.T) {
	t.Parallel()

	t.Run("runs all four sub-passes once", func(t *testing.T) {
		t.Parallel()
		p := program([]string{"A", "B", "R", "S", "P", "Q"},
			// duplicate body literal
			clause(atom("A", v("x")), atom("B", v("x")), atom("B", v("x"))),
			// self-implied
			clause(atom("B", v("x")), atom("B", v("x")), atom("A", v("x"))),
			// locally equivalent pair
			clause(atom("R", v("x")), atom("P", v("x"))),
			clause(atom("R", v("y")), atom("P", v("y"))),
			// singleton equivalent to R? no - S matches Q-shaped body
			clause(atom("S", v("x")), atom("Q", v("x"))))
		tu := unit(p)

		assert.True(t, Minimise(tu))

		// A kept with a single body literal
		aClauses := p.ClausesOf("A")
		require.Len(t, aClauses, 1)
		assert.True(t, aClauses[0].Equal(clause(atom("A", v("x")), atom("B", v("x")))))

		// self-implied clause removed
		assert.Empty(t, p.ClausesOf("B"))

		// local equivalence reduced
		assert.Len(t, p.ClausesOf("R"), 1)
	})

	t.Run("minimal program reports no change", func(t *testing.T) {
		t.Parallel()
		tu := unit(program([]string{"R", "P"},
			clause(atom("R", v("x")), atom("P", v("x")))))

		assert.False(t, Minimise(tu))
	})

	t.Run("deterministic across identical inputs", func(t *testing.T) {
		t.Parallel()
		build := func() *analysis.TranslationUnit {
			return unit(program([]string{"R", "S", "P", "Q"},
				clause(atom("R", v("x"), v("y")), atom("P", v("x"), v("z")), atom("Q", v("z"), v("y"))),
				clause(atom("R", v("a"), v("b")), atom("P", v("a"), v("c")), atom("Q", v("c"), v("b"))),
				clause(atom("S", v("x"), v("y")), atom("Q", v("x"), v("y")), atom("Q", v("x"), v("y")))))
		}

		first := build()
		second := build()
		assert.Equal(t, Minimise(first), Minimise(second))
		assert.True(t, first.Program().Equal(second.Program()))
	})

	t.Run("monotone shrinkage", func(t *testing.T) {
		t.Parallel()
		p := program([]string{"R", "S", "P", "Q"},
			clause(atom("R", v("x")), atom("P", v("x")), atom("P", v("x"))),
			clause(atom("S", v("x")), atom("S", v("x"))),
			clause(atom("Q", v("x")), atom("P", v("x"))),
			clause(atom("Q", v("y")), atom("P", v("y"))))
		tu := unit(p)

		clausesBefore := len(p.Clauses)
		relationsBefore := len(p.Relations)
		Minimise(tu)
		assert.LessOrEqual(t, len(p.Clauses), clausesBefore)
		assert.LessOrEqual(t, len(p.Relations), relationsBefore)
	})
}
