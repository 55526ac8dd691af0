package parser

import (
	"regexp"
	"strconv"
	"strings"

	"gridshell/pkg/gridtypes"
)

// intentPattern ties one textual pattern to the intent it classifies and the
// extractor that lifts its captures into typed parameters. Patterns match
// case-insensitively against the original-cased command, so values, formulas,
// and search terms keep their casing; references and keyword captures are
// normalized explicitly.
type intentPattern struct {
	intent  gridtypes.CommandIntent
	re      *regexp.Regexp
	extract func(m []string) gridtypes.Parameters
}

const (
	cellRef  = `([a-z]+[0-9]+)`
	rangeRef = `([a-z]+[0-9]+:[a-z]+[0-9]+)`
)

// intentPatterns is the ordered dispatch table. Patterns are tried top to
// bottom and the first match wins, so ordering is load-bearing: multi-cell
// intents (read_range, write_range) sit above their single-cell
// counterparts, and word-specific intents (find_replace, set_formula,
// comments) sit above the generic set/get patterns that could shadow them.
var intentPatterns = []intentPattern{
	// find_replace
	{gridtypes.IntentFindReplace, re(`^replace (.+?) with (.+?) in ` + rangeRef + `$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Find: m[1], Replace: m[2], Range: NormalizeRangeReference(m[3])}
	}},
	{gridtypes.IntentFindReplace, re(`^find (.+?) and replace (?:it )?with (.+)$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Find: m[1], Replace: m[2]}
	}},
	{gridtypes.IntentFindReplace, re(`^replace (.+?) with (.+)$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Find: m[1], Replace: m[2]}
	}},

	// set_formula (before write_cell so "calculate ... in A11" and
	// "set formula ..." are not captured as cell writes)
	{gridtypes.IntentSetFormula, re(`^calculate (.+) in ` + cellRef + `$`), extractFormula},
	{gridtypes.IntentSetFormula, re(`^(?:set|put|add) (?:the )?formula (.+) (?:in|to) ` + cellRef + `$`), extractFormula},

	// comments (before the delete/get patterns that would shadow them)
	{gridtypes.IntentAddComment, re(`^(?:add )?comment ['"]?(.+?)['"]? (?:to|on) ` + cellRef + `$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Comment: m[1], Cell: NormalizeCellReference(m[2])}
	}},
	{gridtypes.IntentAddComment, re(`^add comment ['"]?(.+?)['"]?$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Comment: m[1]}
	}},
	{gridtypes.IntentReplyComment, re(`^reply ['"]?(.+?)['"]? to comment ([a-z0-9-]+)$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Comment: m[1], CommentID: strings.ToLower(m[2])}
	}},
	{gridtypes.IntentResolveComment, re(`^resolve comment ([a-z0-9-]+)$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{CommentID: strings.ToLower(m[1])}
	}},
	{gridtypes.IntentDeleteComment, re(`^(?:delete|remove) comment ([a-z0-9-]+)$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{CommentID: strings.ToLower(m[1])}
	}},
	{gridtypes.IntentGetComments, re(`^(?:get|show|list) comments(?: (?:on|for|in) ` + cellRef + `)?$`), func(m []string) gridtypes.Parameters {
		p := gridtypes.Parameters{}
		if m[1] != "" {
			p.Cell = NormalizeCellReference(m[1])
		}
		return p
	}},

	// write_range before write_cell: a range reference must never be
	// mis-captured as a cell reference.
	{gridtypes.IntentWriteRange, re(`^set ` + rangeRef + ` to (.+)$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Range: NormalizeRangeReference(m[1]), Values: extractValues(m[2])}
	}},
	{gridtypes.IntentWriteRange, re(`^fill ` + rangeRef + ` with (.+)$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Range: NormalizeRangeReference(m[1]), Values: extractValues(m[2])}
	}},

	// read_range before read_cell for the same reason.
	{gridtypes.IntentReadRange, re(`^(?:get|read|show) (?:the )?values? (?:of|in|from) ` + rangeRef + `$`), extractRange},
	{gridtypes.IntentReadRange, re(`^(?:get|read|show) ` + rangeRef + `$`), extractRange},
	{gridtypes.IntentReadRange, re(`^what(?:'s| is) in ` + rangeRef + `\??$`), extractRange},

	// write_cell
	{gridtypes.IntentWriteCell, re(`^set ` + cellRef + ` to (.+)$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Cell: NormalizeCellReference(m[1]), Value: ParseValue(m[2])}
	}},
	{gridtypes.IntentWriteCell, re(`^(?:put|write) (.+?) (?:in|into) ` + cellRef + `$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Cell: NormalizeCellReference(m[2]), Value: ParseValue(m[1])}
	}},

	// read_cell
	{gridtypes.IntentReadCell, re(`^(?:get|read|show) (?:the )?value (?:of|in|from) ` + cellRef + `$`), extractCell},
	{gridtypes.IntentReadCell, re(`^(?:get|read|show) ` + cellRef + `$`), extractCell},
	{gridtypes.IntentReadCell, re(`^what(?:'s| is) (?:in )?` + cellRef + `\??$`), extractCell},

	// format_cells
	{gridtypes.IntentFormatCells, re(`^format ` + rangeRef + ` as (.+)$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Range: NormalizeRangeReference(m[1]), Format: ParseFormat(m[2])}
	}},
	{gridtypes.IntentFormatCells, re(`^format (?:this|selected|selection) as (.+)$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Format: ParseFormat(m[1])}
	}},
	{gridtypes.IntentFormatCells, re(`^make ` + rangeRef + ` (.+)$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Range: NormalizeRangeReference(m[1]), Format: ParseFormat(m[2])}
	}},
	{gridtypes.IntentFormatCells, re(`^make (?:this|selected|selection) (.+)$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Format: ParseFormat(m[1])}
	}},

	// sort_data
	{gridtypes.IntentSortData, re(`^sort ` + rangeRef + ` by column ([a-z]+)( descending| desc| ascending| asc)?$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Range: NormalizeRangeReference(m[1]), Sort: sortOptions(m[2], m[3])}
	}},
	{gridtypes.IntentSortData, re(`^sort ` + rangeRef + `( descending| desc| ascending| asc)?$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Range: NormalizeRangeReference(m[1]), Sort: sortOptions("a", m[2])}
	}},
	{gridtypes.IntentSortData, re(`^sort (?:this|selected|selection) by column ([a-z]+)( descending| desc| ascending| asc)?$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Sort: sortOptions(m[1], m[2])}
	}},

	// filter_data
	{gridtypes.IntentFilterData, re(`^filter ` + rangeRef + ` where column ([a-z]+) (equals|contains|is greater than|is less than|is not empty)(?: (.+))?$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Range: NormalizeRangeReference(m[1]), Criteria: filterCriteria(m[2], m[3], m[4])}
	}},
	{gridtypes.IntentFilterData, re(`^filter (?:this|selected|selection) where column ([a-z]+) (equals|contains|is greater than|is less than|is not empty)(?: (.+))?$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Criteria: filterCriteria(m[1], m[2], m[3])}
	}},

	// create_chart
	{gridtypes.IntentCreateChart, re(`^create (?:a )?(bar|line|pie|column|scatter)?\s*chart (?:from|of|for) ` + rangeRef + `$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{ChartType: chartType(m[1]), Range: NormalizeRangeReference(m[2])}
	}},
	{gridtypes.IntentCreateChart, re(`^create (?:a )?(bar|line|pie|column|scatter)?\s*chart (?:from|of|for) (?:this|selected|selection)$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{ChartType: chartType(m[1])}
	}},
	{gridtypes.IntentCreateChart, re(`^chart ` + rangeRef + `(?: as (bar|line|pie|column|scatter))?$`), func(m []string) gridtypes.Parameters {
		return gridtypes.Parameters{Range: NormalizeRangeReference(m[1]), ChartType: chartType(m[2])}
	}},

	// analyze_data
	{gridtypes.IntentAnalyzeData, re(`^analy[sz]e (?:the )?data (?:in|from) ` + rangeRef + `$`), extractRange},
	{gridtypes.IntentAnalyzeData, re(`^(?:analy[sz]e|summari[sz]e) ` + rangeRef + `$`), extractRange},
	{gridtypes.IntentAnalyzeData, re(`^(?:analy[sz]e|summari[sz]e) (?:this|selected|selection|data|the data)$`), func([]string) gridtypes.Parameters {
		return gridtypes.Parameters{}
	}},

	// row and column structure
	{gridtypes.IntentInsertRow, re(`^(?:insert|add) (?:a )?(?:new )?row(?: (?:at |before |above )?([0-9]+))?$`), extractRow},
	{gridtypes.IntentDeleteRow, re(`^(?:delete|remove) row(?: ([0-9]+))?$`), extractRow},
	{gridtypes.IntentInsertColumn, re(`^(?:insert|add) (?:a )?(?:new )?column(?: (?:at |before )?([a-z]+))?$`), extractColumn},
	{gridtypes.IntentDeleteColumn, re(`^(?:delete|remove) column(?: ([a-z]+))?$`), extractColumn},
}

func re(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + pattern)
}

func extractCell(m []string) gridtypes.Parameters {
	return gridtypes.Parameters{Cell: NormalizeCellReference(m[1])}
}

func extractRange(m []string) gridtypes.Parameters {
	return gridtypes.Parameters{Range: NormalizeRangeReference(m[1])}
}

// extractFormula keeps the original casing of the matched formula so
// identifiers like SUM(A1:A10) survive, and normalizes it to start with "=".
func extractFormula(m []string) gridtypes.Parameters {
	formula := strings.TrimSpace(m[1])
	if !strings.HasPrefix(formula, "=") {
		formula = "=" + formula
	}
	return gridtypes.Parameters{Cell: NormalizeCellReference(m[2]), Formula: formula}
}

func extractRow(m []string) gridtypes.Parameters {
	p := gridtypes.Parameters{}
	if m[1] != "" {
		if row, err := strconv.Atoi(m[1]); err == nil {
			p.Row = row
		}
	}
	return p
}

func extractColumn(m []string) gridtypes.Parameters {
	p := gridtypes.Parameters{Column: -1}
	if m[1] != "" {
		p.Column = ColumnLetterToNumber(m[1])
		p.HasColumn = p.Column >= 0
	}
	return p
}

// extractValues parses a 2D literal like "1,2;3,4" into rows of typed
// values. Rows are separated by ";" and cells by ",".
func extractValues(text string) [][]any {
	var values [][]any
	for _, rowText := range strings.Split(text, ";") {
		rowText = strings.TrimSpace(rowText)
		if rowText == "" {
			continue
		}
		var row []any
		for _, cellText := range strings.Split(rowText, ",") {
			row = append(row, ParseValue(cellText))
		}
		values = append(values, row)
	}
	return values
}

func sortOptions(column, direction string) *gridtypes.SortOptions {
	opts := &gridtypes.SortOptions{Column: ColumnLetterToNumber(column), Ascending: true}
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "descending", "desc":
		opts.Ascending = false
	}
	return opts
}

var filterOperators = map[string]string{
	"equals":          "equals",
	"contains":        "contains",
	"is greater than": "greater_than",
	"is less than":    "less_than",
	"is not empty":    "not_empty",
}

func filterCriteria(column, operator, value string) *gridtypes.FilterCriteria {
	return &gridtypes.FilterCriteria{
		Column:   ColumnLetterToNumber(column),
		Operator: filterOperators[strings.ToLower(operator)],
		Value:    strings.TrimSpace(value),
	}
}

func chartType(t string) string {
	t = strings.TrimSpace(strings.ToLower(t))
	if t == "" {
		return "bar"
	}
	return t
}
