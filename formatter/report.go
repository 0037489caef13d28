package formatter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	tt "github.com/andreabedini/souffle/internal/types"
)

var (
	passStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgGreen)
	noStyle      = color.New(color.FgWhite)
)

// GenerateFormattedReport formats the changes recorded for one file into a
// human-readable block.
func GenerateFormattedReport(filename string, changes []tt.Change) string {
	var builder strings.Builder
	builder.WriteString(fileStyle.Sprint(filename) + "\n")
	if len(changes) == 0 {
		builder.WriteString(lineStyle.Sprint(" --> ") + noStyle.Sprint("already minimal") + "\n")
		return builder.String()
	}
	for _, change := range changes {
		builder.WriteString(lineStyle.Sprint(" --> "))
		builder.WriteString(passStyle.Sprint(change.Pass))
		builder.WriteString(": ")
		builder.WriteString(messageStyle.Sprint(change.Message))
		builder.WriteString("\n")
	}
	builder.WriteString(summaryLine(changes))
	return builder.String()
}

func summaryLine(changes []tt.Change) string {
	clauses, relations := 0, 0
	for _, change := range changes {
		clauses += change.ClausesRemoved
		relations += change.RelationsRemoved
	}
	return noStyle.Sprint(fmt.Sprintf("%d clause(s) and %d relation(s) removed\n", clauses, relations))
}
