package services

import (
	"strings"

	"gridshell/internal/parser"
)

// AutoCompleteService provides tab completion for the interactive shell,
// backed by the canonical command catalogue. It implements the
// readline.AutoCompleter interface.
type AutoCompleteService struct {
	initialized bool
}

// NewAutoCompleteService creates a new AutoCompleteService instance.
func NewAutoCompleteService() *AutoCompleteService {
	return &AutoCompleteService{}
}

// Name returns the service name "autocomplete" for registration.
func (a *AutoCompleteService) Name() string {
	return "autocomplete"
}

// Initialize sets up the AutoCompleteService for operation.
func (a *AutoCompleteService) Initialize() error {
	a.initialized = true
	return nil
}

// Do implements the readline.AutoCompleter interface. It completes the
// current line against the first words of the catalogue templates.
func (a *AutoCompleteService) Do(line []rune, pos int) (newLine [][]rune, offset int) {
	if !a.initialized {
		return nil, 0
	}

	prefix := strings.ToLower(string(line[:pos]))
	var suggestions [][]rune
	for _, entry := range parser.Suggest("") {
		template := templateHead(entry.Command)
		if prefix == "" || strings.HasPrefix(template, prefix) {
			suggestions = append(suggestions, []rune(strings.TrimPrefix(template, prefix)))
		}
	}
	return suggestions, len(prefix)
}

// templateHead returns the literal lead of a catalogue template, stopping
// before the first placeholder ("set [cell] to ..." → "set ").
func templateHead(template string) string {
	if i := strings.Index(template, "["); i >= 0 {
		return strings.ToLower(template[:i])
	}
	return strings.ToLower(template)
}
