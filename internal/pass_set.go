package internal

import (
	"github.com/andreabedini/souffle/internal/analysis"
	"github.com/andreabedini/souffle/internal/transform"
)

/*
* Implement each minimisation sub-pass as a separate struct
 */

// Pass defines the interface for all transform passes.
type Pass interface {
	// Apply runs the pass on the translation unit and reports whether the
	// program changed.
	Apply(tu *analysis.TranslationUnit) bool

	// Name returns the name of the pass.
	Name() string
}

type BodyDedupPass struct{}

func (p *BodyDedupPass) Apply(tu *analysis.TranslationUnit) bool {
	return transform.DedupClauseBodies(tu)
}

func (p *BodyDedupPass) Name() string {
	return "dedup-clause-bodies"
}

type SelfImplicationPass struct{}

func (p *SelfImplicationPass) Apply(tu *analysis.TranslationUnit) bool {
	return transform.RemoveSelfImpliedClauses(tu)
}

func (p *SelfImplicationPass) Name() string {
	return "remove-self-implied"
}

type LocalEquivalencePass struct{}

func (p *LocalEquivalencePass) Apply(tu *analysis.TranslationUnit) bool {
	return transform.ReduceLocallyEquivalentClauses(tu)
}

func (p *LocalEquivalencePass) Name() string {
	return "reduce-local-equivalence"
}

type SingletonRelationPass struct{}

func (p *SingletonRelationPass) Apply(tu *analysis.TranslationUnit) bool {
	return transform.ReduceSingletonRelations(tu)
}

func (p *SingletonRelationPass) Name() string {
	return "reduce-singleton-relations"
}

// defaultPasses returns the minimisation sub-passes in their required order.
// A slice rather than a map: pass order is part of the contract.
func defaultPasses() []Pass {
	return []Pass{
		&BodyDedupPass{},
		&SelfImplicationPass{},
		&LocalEquivalencePass{},
		&SingletonRelationPass{},
	}
}
