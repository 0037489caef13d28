package transform

import (
	"github.com/andreabedini/souffle/internal/ast"
)

// admissibleClause reports whether a clause may participate in the bijective
// equivalence check: every body literal is an atom and every argument is a
// named variable or a constant.
func admissibleClause(clause *ast.Clause) bool {
	for _, lit := range clause.Body {
		if _, ok := lit.(*ast.Atom); !ok {
			return false
		}
	}

	valid := true
	clause.VisitArguments(func(arg ast.Argument) {
		switch arg.(type) {
		case *ast.Variable, *ast.StringConstant, *ast.NumericConstant, *ast.NilConstant:
		default:
			valid = false
		}
	})
	return valid
}

// validMove reports whether the atom at position leftIdx in the left clause
// can be matched with the atom at position rightIdx in the right clause.
// Index 0 refers to the head atom, index 1 to the first body atom, and so on.
func validMove(left *ast.Clause, leftIdx int, right *ast.Clause, rightIdx int) bool {
	if leftIdx == 0 && rightIdx == 0 {
		return left.Head.Name == right.Head.Name
	}
	if leftIdx == 0 || rightIdx == 0 {
		return false
	}

	leftAtom, ok := left.Body[leftIdx-1].(*ast.Atom)
	if !ok {
		panic("transform: expected atom in admissible clause body")
	}
	rightAtom, ok := right.Body[rightIdx-1].(*ast.Atom)
	if !ok {
		panic("transform: expected atom in admissible clause body")
	}
	return leftAtom.Name == rightAtom.Name
}

// validMapping reports whether a consistent variable renaming exists that
// makes the left clause, reordered by perm, equal to the right clause
// argument by argument. perm follows the oracle convention: perm[i] == j
// means the atom at position i moves to position j, with position 0 the head.
func validMapping(left, right *ast.Clause, perm []int) bool {
	// deduce the body permutation from the full clause permutation
	bodyPerm := make([]int, len(perm)-1)
	for i, j := range perm[1:] {
		bodyPerm[i] = j - 1
	}

	// the clause reorder routine expects <perm[i] == j> to mean that
	// position i receives atom j; invert once to convert
	inverse := make([]int, len(bodyPerm))
	for i, j := range bodyPerm {
		inverse[j] = i
	}
	reordered := left.ReorderBodyAtoms(inverse)

	// walk both clauses in lockstep, body first and head last, threading a
	// left-to-right variable mapping through every argument pair
	leftAtoms, ok := reordered.BodyAtoms()
	if !ok {
		panic("transform: expected atom in admissible clause body")
	}
	rightAtoms, ok := right.BodyAtoms()
	if !ok {
		panic("transform: expected atom in admissible clause body")
	}
	leftAtoms = append(leftAtoms, reordered.Head)
	rightAtoms = append(rightAtoms, right.Head)

	varMap := make(map[string]string)
	for i := range leftAtoms {
		leftArgs := leftAtoms[i].Args
		rightArgs := rightAtoms[i].Args
		for j := range leftArgs {
			if !argumentsMatch(leftArgs[j], rightArgs[j], varMap) {
				return false
			}
		}
	}
	return true
}

// argumentsMatch checks one argument pair under the running variable map.
func argumentsMatch(left, right ast.Argument, varMap map[string]string) bool {
	switch l := left.(type) {
	case *ast.Variable:
		r, ok := right.(*ast.Variable)
		if !ok {
			return false
		}
		mapped, bound := varMap[l.Name]
		if !bound {
			varMap[l.Name] = r.Name
			return true
		}
		return mapped == r.Name
	case *ast.StringConstant:
		r, ok := right.(*ast.StringConstant)
		return ok && l.Value == r.Value
	case *ast.NumericConstant:
		r, ok := right.(*ast.NumericConstant)
		return ok && l.Kind == r.Kind && l.Value == r.Value
	case *ast.NilConstant:
		_, ok := right.(*ast.NilConstant)
		return ok
	default:
		return false
	}
}

// BijectivelyEquivalent reports whether two clauses are equal up to a
// reordering of body atoms and a consistent renaming of variables. The head
// relation names are not compared: only head arguments take part. Clauses
// containing negations, constraints or non-primitive arguments are never
// equivalent to anything.
func BijectivelyEquivalent(left, right *ast.Clause) bool {
	if !admissibleClause(left) || !admissibleClause(right) {
		return false
	}

	// rules must be the same length to be equal
	if len(left.Body) != len(right.Body) {
		return false
	}

	// head atoms must have the same arity
	if left.Head.Arity() != right.Head.Arity() {
		return false
	}

	// rules must have the same number of distinct variables
	if len(left.VariableNames()) != len(right.VariableNames()) {
		return false
	}

	// set up the compatibility matrix over head and body positions, with
	// the head pinned at index 0
	size := len(left.Body) + 1
	matrix := make([][]int, size)
	for i := range matrix {
		matrix[i] = make([]int, size)
	}
	matrix[0][0] = 1
	for i := 1; i < size; i++ {
		for j := 1; j < size; j++ {
			if validMove(left, i, right, j) {
				matrix[i][j] = 1
			}
		}
	}

	for _, perm := range validPermutations(matrix) {
		if validMapping(left, right, perm) {
			return true
		}
	}
	return false
}
