// Package gridtypes provides the shared type definitions for the gridshell
// command engine: intents, parsed commands, validation results, audit
// operations, and the response shape consumed by callers.
package gridtypes

// CommandIntent is the closed set of operation categories a free-text
// command can be classified into. Unknown is the terminal fallback when no
// pattern matches.
type CommandIntent string

// Supported command intents.
const (
	IntentReadCell       CommandIntent = "read_cell"
	IntentWriteCell      CommandIntent = "write_cell"
	IntentReadRange      CommandIntent = "read_range"
	IntentWriteRange     CommandIntent = "write_range"
	IntentSetFormula     CommandIntent = "set_formula"
	IntentFormatCells    CommandIntent = "format_cells"
	IntentSortData       CommandIntent = "sort_data"
	IntentFilterData     CommandIntent = "filter_data"
	IntentCreateChart    CommandIntent = "create_chart"
	IntentFindReplace    CommandIntent = "find_replace"
	IntentInsertRow      CommandIntent = "insert_row"
	IntentDeleteRow      CommandIntent = "delete_row"
	IntentInsertColumn   CommandIntent = "insert_column"
	IntentDeleteColumn   CommandIntent = "delete_column"
	IntentAnalyzeData    CommandIntent = "analyze_data"
	IntentAddComment     CommandIntent = "add_comment"
	IntentReplyComment   CommandIntent = "reply_comment"
	IntentResolveComment CommandIntent = "resolve_comment"
	IntentDeleteComment  CommandIntent = "delete_comment"
	IntentGetComments    CommandIntent = "get_comments"
	IntentUnknown        CommandIntent = "unknown"
)

// destructiveIntents is the fixed set of intents whose effects are hard to
// reverse from the user's perspective. Membership here is the only input to
// the confirmation gate.
var destructiveIntents = map[CommandIntent]bool{
	IntentDeleteRow:    true,
	IntentDeleteColumn: true,
	IntentFindReplace:  true,
}

// IsDestructive reports whether the intent requires confirmation before its
// effects may be applied. It depends on the intent alone, never on parameter
// values.
func (i CommandIntent) IsDestructive() bool {
	return destructiveIntents[i]
}

// Parameters carries the intent-dependent arguments extracted from a parsed
// command. Which fields are populated depends on the intent; validators treat
// zero values as "not captured".
type Parameters struct {
	// Cell is an A1-style reference (columns A-Z/AA..., rows 1-based).
	Cell string `json:"cell,omitempty"`
	// Range is a two-corner reference like "A1:B10". Corner order is not
	// normalized.
	Range string `json:"range,omitempty"`
	// ContextRange records the caller's current selection whenever one was
	// available, regardless of whether it was used. Validators use it to
	// tell explicit from inferred input apart.
	ContextRange string `json:"contextRange,omitempty"`
	// UsedSelection is true when the cell or range above was substituted
	// from the selection rather than captured from the command text.
	UsedSelection bool `json:"-"`
	// Value holds a scalar cell value (string, float64, or bool).
	Value any `json:"value,omitempty"`
	// Values holds a 2D array for range writes.
	Values [][]any `json:"values,omitempty"`
	// Formula is always normalized to start with "=".
	Formula string `json:"formula,omitempty"`
	// Format holds the structural format map for format_cells.
	Format *CellFormat `json:"format,omitempty"`
	// Sort holds sort options; the column index is 0-based.
	Sort *SortOptions `json:"options,omitempty"`
	// Criteria holds the filter specification for filter_data.
	Criteria *FilterCriteria `json:"criteria,omitempty"`
	// Row is a 1-based row number; 0 means not captured.
	Row int `json:"row,omitempty"`
	// Column is a 0-based column index; -1 means not captured. The
	// row/column asymmetry (1-based rows, 0-based columns) matches
	// spreadsheet addressing and is intentional.
	Column int `json:"column,omitempty"`
	// HasColumn distinguishes column 0 ("A") from "not captured".
	HasColumn bool `json:"-"`
	// Find and Replace carry the find_replace search terms.
	Find    string `json:"find,omitempty"`
	Replace string `json:"replace,omitempty"`
	// ChartType names the chart kind for create_chart.
	ChartType string `json:"chartType,omitempty"`
	// Comment carries the comment body for the comment intents, CommentID
	// the target comment for replies/resolution/deletion.
	Comment   string `json:"comment,omitempty"`
	CommentID string `json:"commentId,omitempty"`
	// Suggestions is populated only when the intent is unknown.
	Suggestions []string `json:"suggestions,omitempty"`
}

// ParsedCommand is the typed result of classifying and extracting one
// free-text command.
type ParsedCommand struct {
	Intent     CommandIntent `json:"intent"`
	Parameters Parameters    `json:"parameters"`
	// TargetRange is a convenience alias for the cell or range the command
	// operates on, whichever was captured.
	TargetRange string `json:"targetRange,omitempty"`
	// RequiresConfirmation is a pure function of Intent: membership in the
	// destructive set.
	RequiresConfirmation bool `json:"requiresConfirmation"`
}

// ValidationResult reports whether a parsed command can be dispatched.
// Errors are user-facing and example-bearing; warnings never block
// execution.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// CommandSuggestion is one entry of the canonical command catalogue surfaced
// by suggestion lookups and shell autocompletion.
type CommandSuggestion struct {
	Command     string `yaml:"command" json:"command"`
	Description string `yaml:"description" json:"description"`
	Example     string `yaml:"example" json:"example"`
}
