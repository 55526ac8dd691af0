package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"gridshell/pkg/gridtypes"
)

// HelpRenderer renders the command catalogue as a terminal help page using
// glamour. When glamour cannot initialize, rendering falls back to the raw
// markdown.
type HelpRenderer struct {
	renderer *glamour.TermRenderer
}

// NewHelpRenderer creates a help renderer with terminal auto-detection.
func NewHelpRenderer() *HelpRenderer {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		renderer = nil
	}
	return &HelpRenderer{renderer: renderer}
}

// Render produces the help page for a set of catalogue entries.
func (h *HelpRenderer) Render(entries []gridtypes.CommandSuggestion) string {
	markdown := helpMarkdown(entries)
	if h.renderer == nil {
		return markdown
	}
	rendered, err := h.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}

// helpMarkdown builds the markdown source of the help page.
func helpMarkdown(entries []gridtypes.CommandSuggestion) string {
	var b strings.Builder
	b.WriteString("# gridshell commands\n\n")
	b.WriteString("Type commands in plain English. Destructive commands ask for confirmation.\n\n")
	b.WriteString("| Command | Description | Example |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, entry := range entries {
		fmt.Fprintf(&b, "| `%s` | %s | `%s` |\n", entry.Command, entry.Description, entry.Example)
	}
	return b.String()
}
