package souffle

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/andreabedini/souffle/internal/analysis"
	"github.com/andreabedini/souffle/internal/ast"
)

const testDocument = `
relations:
  - name: R
  - name: S
  - name: P
directives:
  - {kind: input, name: P}
clauses:
  - head: {name: R, args: [{var: x}]}
    body:
      - atom: {name: P, args: [{var: x}]}
      - atom: {name: P, args: [{var: x}]}
  - head: {name: S, args: [{var: y}]}
    body:
      - atom: {name: P, args: [{var: y}]}
`

func writeTestProgram(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(testDocument), 0o644))
	return path
}

func TestMinimise(t *testing.T) {
	t.Parallel()

	p := &ast.Program{
		Relations: []*ast.Relation{{Name: "A"}, {Name: "B"}},
		Clauses: []*ast.Clause{
			{
				Head: &ast.Atom{Name: "A", Args: []ast.Argument{&ast.Variable{Name: "x"}}},
				Body: []ast.Literal{
					&ast.Atom{Name: "B", Args: []ast.Argument{&ast.Variable{Name: "x"}}},
					&ast.Atom{Name: "B", Args: []ast.Argument{&ast.Variable{Name: "x"}}},
				},
			},
		},
	}
	tu := analysis.NewTranslationUnit(p)

	assert.True(t, Minimise(tu))
	require.Len(t, p.Clauses, 1)
	assert.Len(t, p.Clauses[0].Body, 1)

	assert.False(t, Minimise(tu), "minimisation is idempotent")
}

func TestNewWithConfiguration(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "souffle.yaml")
	cfg := `
name: test
fixpoint: true
max-iterations: 3
passes:
  reduce-singleton-relations: false
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	engine, err := New(zap.NewNop(), cfgPath)
	require.NoError(t, err)

	path := writeTestProgram(t, dir, "program.yaml")
	_, changes, err := engine.RunFile(path)
	require.NoError(t, err)

	// dedup still runs, the disabled singleton merge does not
	require.Len(t, changes, 1)
	assert.Equal(t, "dedup-clause-bodies", changes[0].Pass)
}

func TestNewMissingConfiguration(t *testing.T) {
	t.Parallel()

	_, err := New(zap.NewNop(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestProcessPathsSingleFile(t *testing.T) {
	t.Parallel()

	engine, err := New(zap.NewNop(), "")
	require.NoError(t, err)

	path := writeTestProgram(t, t.TempDir(), "program.yaml")
	results, err := ProcessPaths(context.Background(), zap.NewNop(), engine, []string{path})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, path, results[0].Filename)
	assert.NotEmpty(t, results[0].Changes)
	assert.Nil(t, results[0].Tu.Program().Relation("S"), "singleton S must be merged into R")
}

func TestProcessPathsDirectory(t *testing.T) {
	t.Parallel()

	engine, err := New(zap.NewNop(), "")
	require.NoError(t, err)

	dir := t.TempDir()
	writeTestProgram(t, dir, "one.yaml")
	writeTestProgram(t, dir, "two.yml")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("not a program"), 0o644))

	results, err := ProcessPaths(context.Background(), zap.NewNop(), engine, []string{dir})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestProcessPathsRejectsOtherFiles(t *testing.T) {
	t.Parallel()

	engine, err := New(zap.NewNop(), "")
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "program.txt")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	_, err = ProcessPaths(context.Background(), zap.NewNop(), engine, []string{path})
	assert.Error(t, err)
}
