package internal

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/andreabedini/souffle/internal/analysis"
	"github.com/andreabedini/souffle/internal/codec"
	tt "github.com/andreabedini/souffle/internal/types"
)

// Engine manages the minimisation process.
type Engine struct {
	ignoredPasses map[string]bool
	passes        []Pass
	logger        *zap.Logger

	fixpoint      bool
	maxIterations int

	watcher    *fsnotify.Watcher
	watchDirs  []string
	isWatching bool
}

// Options configures an Engine.
type Options struct {
	// Fixpoint re-runs the pass pipeline until no pass reports a change.
	Fixpoint bool

	// MaxIterations caps fixpoint iteration. Zero means the default cap.
	MaxIterations int
}

const defaultMaxIterations = 10

// NewEngine creates a new minimisation engine with the default passes.
func NewEngine(logger *zap.Logger, opts Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}
	return &Engine{
		passes:        defaultPasses(),
		logger:        logger,
		fixpoint:      opts.Fixpoint,
		maxIterations: maxIterations,
	}
}

// EnableFixpoint makes subsequent runs iterate the pipeline to a fixpoint.
func (e *Engine) EnableFixpoint() {
	e.fixpoint = true
}

// IgnorePass disables the named pass for subsequent runs.
func (e *Engine) IgnorePass(name string) {
	if e.ignoredPasses == nil {
		e.ignoredPasses = make(map[string]bool)
	}
	e.ignoredPasses[name] = true
}

// Run applies the registered passes to the translation unit in registration
// order and returns one Change per pass that modified the program. With the
// fixpoint option the pipeline is re-run until it settles or the iteration
// cap is reached.
func (e *Engine) Run(filename string, tu *analysis.TranslationUnit) []tt.Change {
	var changes []tt.Change

	iterations := 1
	if e.fixpoint {
		iterations = e.maxIterations
	}

	for i := 0; i < iterations; i++ {
		changed := false
		for _, pass := range e.passes {
			if e.ignoredPasses[pass.Name()] {
				continue
			}

			program := tu.Program()
			clausesBefore := len(program.Clauses)
			relationsBefore := len(program.Relations)

			if !pass.Apply(tu) {
				continue
			}
			changed = true

			change := tt.Change{
				Pass:             pass.Name(),
				Filename:         filename,
				ClausesRemoved:   clausesBefore - len(program.Clauses),
				RelationsRemoved: relationsBefore - len(program.Relations),
			}
			change.Message = describeChange(change)
			changes = append(changes, change)

			e.logger.Debug("pass changed program",
				zap.String("pass", pass.Name()),
				zap.Int("clausesRemoved", change.ClausesRemoved),
				zap.Int("relationsRemoved", change.RelationsRemoved))
		}
		if !changed {
			break
		}
	}

	return changes
}

// RunFile loads the program at path, minimises it, and returns the changes
// together with the minimised translation unit.
func (e *Engine) RunFile(path string) (*analysis.TranslationUnit, []tt.Change, error) {
	program, err := codec.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading program: %w", err)
	}
	tu := analysis.NewTranslationUnit(program)
	changes := e.Run(path, tu)
	return tu, changes, nil
}

func describeChange(c tt.Change) string {
	switch {
	case c.RelationsRemoved > 0:
		return fmt.Sprintf("merged %d redundant relation(s), removing %d clause(s)",
			c.RelationsRemoved, c.ClausesRemoved)
	case c.ClausesRemoved > 0:
		return fmt.Sprintf("removed %d redundant clause(s)", c.ClausesRemoved)
	default:
		return "rewrote clause bodies"
	}
}
