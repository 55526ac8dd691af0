package parser

import (
	"regexp"
	"strings"

	"gridshell/internal/context"
	"gridshell/pkg/gridtypes"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// refKind names the reference parameter an intent operates on, driving both
// context substitution and validation.
type refKind int

const (
	refNone refKind = iota
	refCell
	refRange
)

// intentRefKinds maps each intent to the reference parameter it requires.
// find_replace is deliberately absent: without an explicit range it applies
// to the whole worksheet, and a live selection must not silently narrow it.
var intentRefKinds = map[gridtypes.CommandIntent]refKind{
	gridtypes.IntentReadCell:    refCell,
	gridtypes.IntentWriteCell:   refCell,
	gridtypes.IntentSetFormula:  refCell,
	gridtypes.IntentAddComment:  refCell,
	gridtypes.IntentReadRange:   refRange,
	gridtypes.IntentWriteRange:  refRange,
	gridtypes.IntentFormatCells: refRange,
	gridtypes.IntentSortData:    refRange,
	gridtypes.IntentFilterData:  refRange,
	gridtypes.IntentCreateChart: refRange,
	gridtypes.IntentAnalyzeData: refRange,
}

// Parse classifies a free-text command and extracts its typed parameters.
// The command is whitespace-collapsed and matched case-insensitively against
// the original-cased text, so formulas and values keep their identifiers
// intact, including runes whose lowercase form has a different byte width.
func Parse(command string, sessionCtx *context.GridContext) gridtypes.ParsedCommand {
	normalized := strings.TrimSpace(whitespaceRun.ReplaceAllString(command, " "))

	parsed := gridtypes.ParsedCommand{Intent: gridtypes.IntentUnknown}

	for _, pattern := range intentPatterns {
		m := pattern.re.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}
		parsed.Intent = pattern.intent
		parsed.Parameters = pattern.extract(m)
		break
	}

	if parsed.Intent == gridtypes.IntentUnknown {
		parsed.Parameters.Suggestions = rankSuggestions(strings.ToLower(normalized), 3)
		return parsed
	}

	resolveContext(&parsed, sessionCtx)

	parsed.RequiresConfirmation = parsed.Intent.IsDestructive()
	parsed.TargetRange = parsed.Parameters.Range
	if parsed.TargetRange == "" {
		parsed.TargetRange = parsed.Parameters.Cell
	}
	return parsed
}

// resolveContext substitutes the caller's live selection for the missing
// reference parameter of a cell- or range-bearing intent. Whenever a
// selection exists it is also recorded as ContextRange, so validators and
// callers can tell explicit from inferred input apart even when an explicit
// reference took precedence.
func resolveContext(parsed *gridtypes.ParsedCommand, sessionCtx *context.GridContext) {
	kind := intentRefKinds[parsed.Intent]
	if kind == refNone || sessionCtx == nil {
		return
	}
	selection := sessionCtx.CurrentSelection()
	if selection == "" {
		return
	}

	parsed.Parameters.ContextRange = NormalizeRangeReference(selection)

	switch kind {
	case refCell:
		if parsed.Parameters.Cell == "" {
			parsed.Parameters.Cell = parsed.Parameters.ContextRange
			parsed.Parameters.UsedSelection = true
		}
	case refRange:
		if parsed.Parameters.Range == "" {
			parsed.Parameters.Range = parsed.Parameters.ContextRange
			parsed.Parameters.UsedSelection = true
		}
	}
}
