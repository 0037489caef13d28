// Package analysis holds read-only analyses over a Datalog program and the
// translation unit that owns them.
package analysis

import (
	"github.com/andreabedini/souffle/internal/ast"
)

// Analysis is a derived, read-only view of a program. Analyses are cached on
// the translation unit; mutating the program does not refresh them, and they
// are rebuilt on the next use after InvalidateAnalyses.
type Analysis interface {
	Name() string
	Run(p *ast.Program)
}

// TranslationUnit owns a program together with the analyses computed over it.
type TranslationUnit struct {
	program  *ast.Program
	analyses map[string]Analysis
}

// NewTranslationUnit wraps the given program.
func NewTranslationUnit(p *ast.Program) *TranslationUnit {
	return &TranslationUnit{
		program:  p,
		analyses: make(map[string]Analysis),
	}
}

// Program returns the owned program.
func (tu *TranslationUnit) Program() *ast.Program { return tu.program }

// InvalidateAnalyses drops all cached analyses. Transforms call this after
// mutating the program.
func (tu *TranslationUnit) InvalidateAnalyses() {
	tu.analyses = make(map[string]Analysis)
}

// analysis returns the cached analysis with the given name, running the
// freshly-constructed one on first use.
func (tu *TranslationUnit) analysis(name string, construct func() Analysis) Analysis {
	if a, ok := tu.analyses[name]; ok {
		return a
	}
	a := construct()
	a.Run(tu.program)
	tu.analyses[name] = a
	return a
}

// IOTypes returns the I/O-kind analysis for the program.
func (tu *TranslationUnit) IOTypes() *IOTypeAnalysis {
	return tu.analysis(ioTypeAnalysisName, func() Analysis {
		return &IOTypeAnalysis{}
	}).(*IOTypeAnalysis)
}
