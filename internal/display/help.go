package display

import (
	"fmt"
	"strings"
)

// HelpEntry is one row of the help table
type HelpEntry struct {
	Usage string
	Desc  string
}

// HelpMarkdown builds the help text with a table per section
func HelpMarkdown(commands, slash []HelpEntry) string {
	var b strings.Builder

	b.WriteString("# Commands\n\n")
	writeTable(&b, commands)

	if len(slash) > 0 {
		b.WriteString("\n# Console\n\n")
		writeTable(&b, slash)
	}

	b.WriteString("\nPaths given to `cd` are always relative to the current directory.\n")
	return b.String()
}

func writeTable(b *strings.Builder, entries []HelpEntry) {
	b.WriteString("| Command | Description |\n")
	b.WriteString("|---|---|\n")
	for _, e := range entries {
		fmt.Fprintf(b, "| `%s` | %s |\n", e.Usage, e.Desc)
	}
}
