package analysis

import (
	"github.com/andreabedini/souffle/internal/ast"
)

const ioTypeAnalysisName = "io-type"

// IOTypeAnalysis records which relations sit on the program's I/O boundary.
// A relation is I/O iff it is the target of an input, output or printsize
// directive; such relations are externally observable and must keep their
// names.
type IOTypeAnalysis struct {
	io map[ast.QualifiedName]struct{}
}

func (a *IOTypeAnalysis) Name() string { return ioTypeAnalysisName }

func (a *IOTypeAnalysis) Run(p *ast.Program) {
	a.io = make(map[ast.QualifiedName]struct{})
	for _, dir := range p.Directives {
		switch dir.Kind {
		case ast.DirectiveInput, ast.DirectiveOutput, ast.DirectivePrintSize:
			a.io[dir.Name] = struct{}{}
		}
	}
}

// IsIO reports whether the named relation is externally observable.
func (a *IOTypeAnalysis) IsIO(name ast.QualifiedName) bool {
	_, ok := a.io[name]
	return ok
}
