// Package transform implements the program minimisation pass: it shrinks a
// Datalog program by removing semantically redundant clauses and relations
// while preserving the set of derivable tuples.
package transform

import (
	"github.com/andreabedini/souffle/internal/analysis"
	"github.com/andreabedini/souffle/internal/ast"
)

// DedupClauseBodies removes repeated literals within each clause body,
// keeping the first occurrence of each. It reports whether any clause
// changed.
func DedupClauseBodies(tu *analysis.TranslationUnit) bool {
	program := tu.Program()

	var toRemove, toAdd []*ast.Clause
	for _, clause := range program.Clauses {
		duplicates := make(map[int]struct{})
		for i := range clause.Body {
			for j := 0; j < i; j++ {
				if clause.Body[i].Equal(clause.Body[j]) {
					duplicates[i] = struct{}{}
					break
				}
			}
		}
		if len(duplicates) == 0 {
			continue
		}

		minimised := &ast.Clause{Head: clause.Head.CloneAtom()}
		for i, lit := range clause.Body {
			if _, dup := duplicates[i]; !dup {
				minimised.Body = append(minimised.Body, lit.Clone().(ast.Literal))
			}
		}
		toRemove = append(toRemove, clause)
		toAdd = append(toAdd, minimised)
	}

	for _, clause := range toRemove {
		program.RemoveClause(clause)
	}
	for _, clause := range toAdd {
		program.AddClause(clause)
	}

	if len(toAdd) > 0 {
		tu.InvalidateAnalyses()
	}
	return len(toAdd) > 0
}

// RemoveSelfImpliedClauses deletes every clause whose head appears verbatim
// among its own body literals. Such clauses derive their head only when it
// already holds, so they contribute nothing to the fixpoint. It reports
// whether any clause was removed.
func RemoveSelfImpliedClauses(tu *analysis.TranslationUnit) bool {
	program := tu.Program()

	selfImplied := func(clause *ast.Clause) bool {
		for _, lit := range clause.Body {
			if clause.Head.Equal(lit) {
				return true
			}
		}
		return false
	}

	var toRemove []*ast.Clause
	for _, clause := range program.Clauses {
		if selfImplied(clause) {
			toRemove = append(toRemove, clause)
		}
	}
	for _, clause := range toRemove {
		program.RemoveClause(clause)
	}

	if len(toRemove) > 0 {
		tu.InvalidateAnalyses()
	}
	return len(toRemove) > 0
}

// ReduceLocallyEquivalentClauses collapses, within each relation, clauses
// that are bijectively equivalent to an earlier clause of the same relation.
// The first clause of each equivalence class in program order survives. It
// reports whether any clause was removed.
func ReduceLocallyEquivalentClauses(tu *analysis.TranslationUnit) bool {
	program := tu.Program()

	var toRemove []*ast.Clause
	for _, rel := range program.Relations {
		var representatives []*ast.Clause

		for _, clause := range program.ClausesOf(rel.Name) {
			redundant := false
			for _, rep := range representatives {
				if BijectivelyEquivalent(rep, clause) {
					redundant = true
					break
				}
			}
			if redundant {
				toRemove = append(toRemove, clause)
			} else {
				representatives = append(representatives, clause)
			}
		}
	}

	for _, clause := range toRemove {
		program.RemoveClause(clause)
	}

	if len(toRemove) > 0 {
		tu.InvalidateAnalyses()
	}
	return len(toRemove) > 0
}

// renameAtoms rewrites every atom whose name has a canonical replacement.
type renameAtoms struct {
	canonical map[ast.QualifiedName]ast.QualifiedName
}

func (r renameAtoms) Rewrite(n ast.Node) ast.Node {
	if atom, ok := n.(*ast.Atom); ok {
		if name, found := r.canonical[atom.Name]; found {
			renamed := atom.CloneAtom()
			renamed.Name = name
			return renamed
		}
	}
	return n
}

// ReduceSingletonRelations merges non-I/O relations that have exactly one
// clause each when those clauses are bijectively equivalent. The earlier
// singleton survives; the later one's clause, declaration and directives are
// removed and every reference to its name is rewritten to the surviving
// name. It reports whether any merge happened.
func ReduceSingletonRelations(tu *analysis.TranslationUnit) bool {
	program := tu.Program()
	ioTypes := tu.IOTypes()

	// find all singleton relations to consider
	var singletonClauses []*ast.Clause
	for _, rel := range program.Relations {
		if ioTypes.IsIO(rel.Name) {
			continue
		}
		if clauses := program.ClausesOf(rel.Name); len(clauses) == 1 {
			singletonClauses = append(singletonClauses, clauses[0])
		}
	}

	redundant := make(map[*ast.Clause]struct{})
	canonical := make(map[ast.QualifiedName]ast.QualifiedName)

	// check pairwise equivalence of the singletons; the equivalence check
	// ignores the head relation name, which is exactly what makes merging
	// differently-named singletons sound
	for i := 0; i < len(singletonClauses); i++ {
		first := singletonClauses[i]
		if _, dead := redundant[first]; dead {
			continue
		}
		for j := i + 1; j < len(singletonClauses); j++ {
			second := singletonClauses[j]
			if _, dead := redundant[second]; dead {
				continue
			}
			if BijectivelyEquivalent(first, second) {
				redundant[second] = struct{}{}
				canonical[second.Head.Name] = first.Head.Name
			}
		}
	}

	// remove redundant relation definitions
	for clause := range redundant {
		name := clause.Head.Name
		if program.Relation(name) == nil {
			panic("transform: singleton relation does not exist in program")
		}
		program.RemoveClause(clause)
		program.RemoveRelation(name)
	}

	// replace each appearance of a merged relation with its canonical name
	program.Rewrite(renameAtoms{canonical: canonical})

	if len(canonical) > 0 {
		tu.InvalidateAnalyses()
	}
	return len(canonical) > 0
}

// Minimise runs the four minimisation sub-passes once each, in order:
// body deduplication, self-implication removal, local equivalence reduction,
// and singleton relation unification. It reports whether any of them changed
// the program. Callers wanting a fixpoint re-run it until it reports false.
func Minimise(tu *analysis.TranslationUnit) bool {
	changed := false
	changed = DedupClauseBodies(tu) || changed
	changed = RemoveSelfImpliedClauses(tu) || changed
	changed = ReduceLocallyEquivalentClauses(tu) || changed
	changed = ReduceSingletonRelations(tu) || changed
	return changed
}
