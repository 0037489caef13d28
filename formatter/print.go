// Package formatter renders Datalog programs as text and change reports for
// the terminal.
package formatter

import (
	"strings"

	"github.com/andreabedini/souffle/internal/ast"
)

// Program renders a whole program in Datalog notation: declarations first,
// then directives, then clauses, all in program order.
func Program(p *ast.Program) string {
	var builder strings.Builder
	for _, rel := range p.Relations {
		builder.WriteString(rel.String())
		builder.WriteString("\n")
	}
	for _, dir := range p.Directives {
		builder.WriteString(dir.String())
		builder.WriteString("\n")
	}
	if len(p.Relations)+len(p.Directives) > 0 && len(p.Clauses) > 0 {
		builder.WriteString("\n")
	}
	for _, clause := range p.Clauses {
		builder.WriteString(clause.String())
		builder.WriteString("\n")
	}
	return builder.String()
}
