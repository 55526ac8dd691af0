package parser

import (
	"fmt"
	"regexp"
	"strings"

	"gridshell/pkg/gridtypes"
)

var (
	cellRefFormat  = regexp.MustCompile(`^[A-Z]+[0-9]+$`)
	rangeRefFormat = regexp.MustCompile(`^[A-Z]+[0-9]+:[A-Z]+[0-9]+$`)
)

// cellIntents require a single-cell reference; rangeIntents require a
// two-corner range reference.
var cellIntents = map[gridtypes.CommandIntent]bool{
	gridtypes.IntentReadCell:   true,
	gridtypes.IntentWriteCell:  true,
	gridtypes.IntentSetFormula: true,
	gridtypes.IntentAddComment: true,
}

var rangeIntents = map[gridtypes.CommandIntent]bool{
	gridtypes.IntentReadRange:   true,
	gridtypes.IntentWriteRange:  true,
	gridtypes.IntentFormatCells: true,
	gridtypes.IntentSortData:    true,
	gridtypes.IntentFilterData:  true,
	gridtypes.IntentCreateChart: true,
	gridtypes.IntentAnalyzeData: true,
}

// Validate checks a parsed command for dispatchability. Errors are
// user-facing and carry a corrective example where one helps; warnings
// (ambiguity notices, selection substitution) never block execution.
func Validate(cmd gridtypes.ParsedCommand) gridtypes.ValidationResult {
	result := gridtypes.ValidationResult{Valid: true, Errors: []string{}, Warnings: []string{}}

	if cmd.Intent == gridtypes.IntentUnknown {
		result.Valid = false
		result.Errors = append(result.Errors, "Could not understand the command")
		if len(cmd.Parameters.Suggestions) > 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Did you mean: %s", strings.Join(cmd.Parameters.Suggestions, "; ")))
		}
		return result
	}

	p := cmd.Parameters

	if cellIntents[cmd.Intent] {
		switch {
		case p.Cell == "":
			result.Errors = append(result.Errors, "Cell reference is required")
		case !cellRefFormat.MatchString(p.Cell):
			result.Errors = append(result.Errors,
				fmt.Sprintf("Invalid cell reference %q - format like A1", p.Cell))
		}
	}

	if rangeIntents[cmd.Intent] {
		switch {
		case p.Range == "":
			result.Errors = append(result.Errors, "Range reference is required - format like A1:B10")
		case !rangeRefFormat.MatchString(p.Range):
			result.Errors = append(result.Errors,
				fmt.Sprintf("Invalid range reference %q - format like A1:B10", p.Range))
		}
	}

	switch cmd.Intent {
	case gridtypes.IntentWriteCell:
		if p.Value == nil {
			result.Errors = append(result.Errors,
				"Value is required - try 'set A1 to 100'")
		}
	case gridtypes.IntentSetFormula:
		if p.Formula == "" {
			result.Errors = append(result.Errors,
				"Formula is required - try 'calculate SUM(A1:A10) in A11'")
		}
	case gridtypes.IntentWriteRange:
		if len(p.Values) == 0 {
			result.Errors = append(result.Errors,
				"Values are required - try 'set A1:B2 to 1,2;3,4'")
		}
	case gridtypes.IntentFormatCells:
		if p.Format == nil {
			result.Errors = append(result.Errors,
				"No recognized formatting - try currency, percentage, date, bold, italic, red, blue or green")
		}
	case gridtypes.IntentAddComment, gridtypes.IntentReplyComment:
		if p.Comment == "" {
			result.Errors = append(result.Errors,
				"Comment text is required - try \"add comment 'check this' to A1\"")
		}
	}

	switch cmd.Intent {
	case gridtypes.IntentReplyComment, gridtypes.IntentResolveComment, gridtypes.IntentDeleteComment:
		if p.CommentID == "" {
			result.Errors = append(result.Errors, "Comment id is required")
		}
	}

	if p.UsedSelection {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Using current selection %s", p.ContextRange))
	}

	// Destructive commands that lack specificity still execute after
	// confirmation, but the ambiguity is worth surfacing.
	switch cmd.Intent {
	case gridtypes.IntentDeleteRow:
		if p.Row == 0 {
			result.Warnings = append(result.Warnings,
				"No row number given - try 'delete row 5' to be specific")
		}
	case gridtypes.IntentDeleteColumn:
		if !p.HasColumn {
			result.Warnings = append(result.Warnings,
				"No column letter given - try 'delete column C' to be specific")
		}
	case gridtypes.IntentFindReplace:
		if p.Range == "" {
			result.Warnings = append(result.Warnings,
				"No range given - the replacement applies to the whole worksheet")
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}
