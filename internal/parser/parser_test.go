package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridshell/internal/context"
	"gridshell/pkg/gridtypes"
)

func newTestContext(selection string) *context.GridContext {
	ctx := context.New()
	ctx.SetTestMode(true)
	ctx.SetSelection(selection)
	return ctx
}

func TestParse_WriteCell(t *testing.T) {
	parsed := Parse("set A1 to 100", newTestContext(""))

	assert.Equal(t, gridtypes.IntentWriteCell, parsed.Intent)
	assert.Equal(t, "A1", parsed.Parameters.Cell)
	assert.Equal(t, float64(100), parsed.Parameters.Value)
	assert.Equal(t, "A1", parsed.TargetRange)
	assert.False(t, parsed.RequiresConfirmation)
}

func TestParse_CaseInsensitiveKeywordsAndReferences(t *testing.T) {
	parsed := Parse("SET a1 TO 5", newTestContext(""))

	assert.Equal(t, gridtypes.IntentWriteCell, parsed.Intent)
	assert.Equal(t, "A1", parsed.Parameters.Cell)
	assert.Equal(t, float64(5), parsed.Parameters.Value)
}

func TestParse_ValueCasingPreserved(t *testing.T) {
	parsed := Parse("set B2 to Hello World", newTestContext(""))

	assert.Equal(t, gridtypes.IntentWriteCell, parsed.Intent)
	assert.Equal(t, "Hello World", parsed.Parameters.Value)
}

func TestParse_NonASCIIValuesIntact(t *testing.T) {
	// Runes whose lowercase form has a different UTF-8 width must survive
	// capture byte for byte.
	tests := []struct {
		command  string
		expected string
	}{
		{"set A1 to İstanbul", "İstanbul"},
		{"set A1 to Ⱥbc", "Ⱥbc"},
		{"set A1 to ȺȾ İİİ", "ȺȾ İİİ"},
	}
	for _, tt := range tests {
		parsed := Parse(tt.command, newTestContext(""))
		assert.Equal(t, gridtypes.IntentWriteCell, parsed.Intent, "command %q", tt.command)
		assert.Equal(t, tt.expected, parsed.Parameters.Value, "command %q", tt.command)
	}
}

func TestParse_WhitespaceCollapsed(t *testing.T) {
	parsed := Parse("  set   A1   to   100  ", newTestContext(""))

	assert.Equal(t, gridtypes.IntentWriteCell, parsed.Intent)
	assert.Equal(t, "A1", parsed.Parameters.Cell)
}

func TestParse_RangeBeforeCellPriority(t *testing.T) {
	// "get values of A1:B10" must classify as read_range, never read_cell,
	// even though "A1" alone would match a cell pattern.
	parsed := Parse("get values of A1:B10", newTestContext(""))

	assert.Equal(t, gridtypes.IntentReadRange, parsed.Intent)
	assert.Equal(t, "A1:B10", parsed.Parameters.Range)
	assert.Empty(t, parsed.Parameters.Cell)
}

func TestParse_ReadCell(t *testing.T) {
	parsed := Parse("get value of B2", newTestContext(""))

	assert.Equal(t, gridtypes.IntentReadCell, parsed.Intent)
	assert.Equal(t, "B2", parsed.Parameters.Cell)
}

func TestParse_FormulaKeepsOriginalCasing(t *testing.T) {
	parsed := Parse("calculate SUM(A1:A10) in A11", newTestContext(""))

	assert.Equal(t, gridtypes.IntentSetFormula, parsed.Intent)
	assert.Equal(t, "A11", parsed.Parameters.Cell)
	assert.Equal(t, "=SUM(A1:A10)", parsed.Parameters.Formula)
}

func TestParse_FormulaAlreadyPrefixed(t *testing.T) {
	parsed := Parse("set formula =AVERAGE(B1:B5) in B6", newTestContext(""))

	assert.Equal(t, gridtypes.IntentSetFormula, parsed.Intent)
	assert.Equal(t, "=AVERAGE(B1:B5)", parsed.Parameters.Formula)
}

func TestParse_FormatCells(t *testing.T) {
	parsed := Parse("format A1:B10 as currency", newTestContext(""))

	assert.Equal(t, gridtypes.IntentFormatCells, parsed.Intent)
	assert.Equal(t, "A1:B10", parsed.Parameters.Range)
	require.NotNil(t, parsed.Parameters.Format)
	assert.Equal(t, "$#,##0.00", parsed.Parameters.Format.NumberFormat)
}

func TestParse_MakeBold(t *testing.T) {
	parsed := Parse("make E1:E5 bold", newTestContext(""))

	assert.Equal(t, gridtypes.IntentFormatCells, parsed.Intent)
	assert.Equal(t, "E1:E5", parsed.Parameters.Range)
	require.NotNil(t, parsed.Parameters.Format)
	require.NotNil(t, parsed.Parameters.Format.Bold)
	assert.True(t, *parsed.Parameters.Format.Bold)
}

func TestParse_SortData(t *testing.T) {
	parsed := Parse("sort A1:C10 by column A", newTestContext(""))

	assert.Equal(t, gridtypes.IntentSortData, parsed.Intent)
	assert.Equal(t, "A1:C10", parsed.Parameters.Range)
	require.NotNil(t, parsed.Parameters.Sort)
	// Sort columns are 0-based even though rows are 1-based.
	assert.Equal(t, 0, parsed.Parameters.Sort.Column)
	assert.True(t, parsed.Parameters.Sort.Ascending)
}

func TestParse_SortDescending(t *testing.T) {
	parsed := Parse("sort A1:C10 by column B descending", newTestContext(""))

	require.NotNil(t, parsed.Parameters.Sort)
	assert.Equal(t, 1, parsed.Parameters.Sort.Column)
	assert.False(t, parsed.Parameters.Sort.Ascending)
}

func TestParse_FilterData(t *testing.T) {
	parsed := Parse("filter A1:C10 where column B is greater than 50", newTestContext(""))

	assert.Equal(t, gridtypes.IntentFilterData, parsed.Intent)
	require.NotNil(t, parsed.Parameters.Criteria)
	assert.Equal(t, 1, parsed.Parameters.Criteria.Column)
	assert.Equal(t, "greater_than", parsed.Parameters.Criteria.Operator)
	assert.Equal(t, "50", parsed.Parameters.Criteria.Value)
}

func TestParse_CreateChart(t *testing.T) {
	parsed := Parse("create a pie chart from A1:B10", newTestContext(""))

	assert.Equal(t, gridtypes.IntentCreateChart, parsed.Intent)
	assert.Equal(t, "pie", parsed.Parameters.ChartType)
	assert.Equal(t, "A1:B10", parsed.Parameters.Range)

	parsed = Parse("create chart from C1:D5", newTestContext(""))
	assert.Equal(t, gridtypes.IntentCreateChart, parsed.Intent)
	assert.Equal(t, "bar", parsed.Parameters.ChartType)
}

func TestParse_WriteRange(t *testing.T) {
	parsed := Parse("set A1:B2 to 1,2;3,4", newTestContext(""))

	assert.Equal(t, gridtypes.IntentWriteRange, parsed.Intent)
	assert.Equal(t, "A1:B2", parsed.Parameters.Range)
	require.Len(t, parsed.Parameters.Values, 2)
	assert.Equal(t, []any{float64(1), float64(2)}, parsed.Parameters.Values[0])
	assert.Equal(t, []any{float64(3), float64(4)}, parsed.Parameters.Values[1])
}

func TestParse_FindReplace(t *testing.T) {
	parsed := Parse("replace old with new in A1:C10", newTestContext(""))

	assert.Equal(t, gridtypes.IntentFindReplace, parsed.Intent)
	assert.Equal(t, "old", parsed.Parameters.Find)
	assert.Equal(t, "new", parsed.Parameters.Replace)
	assert.Equal(t, "A1:C10", parsed.Parameters.Range)
	assert.True(t, parsed.RequiresConfirmation)
}

func TestParse_FindReplaceIgnoresSelection(t *testing.T) {
	// Without an explicit range, a replacement applies to the whole
	// worksheet; a live selection must not silently narrow it.
	parsed := Parse("replace old with new", newTestContext("A1:B2"))

	assert.Equal(t, gridtypes.IntentFindReplace, parsed.Intent)
	assert.Empty(t, parsed.Parameters.Range)
	assert.Empty(t, parsed.Parameters.ContextRange)
	assert.False(t, parsed.Parameters.UsedSelection)
}

func TestParse_RowColumnStructure(t *testing.T) {
	parsed := Parse("delete row 7", newTestContext(""))
	assert.Equal(t, gridtypes.IntentDeleteRow, parsed.Intent)
	assert.Equal(t, 7, parsed.Parameters.Row)
	assert.True(t, parsed.RequiresConfirmation)

	parsed = Parse("insert row at 3", newTestContext(""))
	assert.Equal(t, gridtypes.IntentInsertRow, parsed.Intent)
	assert.Equal(t, 3, parsed.Parameters.Row)
	assert.False(t, parsed.RequiresConfirmation)

	// Column letters convert to 0-based indices; rows stay 1-based.
	parsed = Parse("delete column C", newTestContext(""))
	assert.Equal(t, gridtypes.IntentDeleteColumn, parsed.Intent)
	assert.Equal(t, 2, parsed.Parameters.Column)
	assert.True(t, parsed.Parameters.HasColumn)
	assert.True(t, parsed.RequiresConfirmation)

	parsed = Parse("add column A", newTestContext(""))
	assert.Equal(t, gridtypes.IntentInsertColumn, parsed.Intent)
	assert.Equal(t, 0, parsed.Parameters.Column)
	assert.True(t, parsed.Parameters.HasColumn)
}

func TestParse_ConfirmationIsPureFunctionOfIntent(t *testing.T) {
	destructive := []string{
		"delete row 7",
		"delete column Z",
		"replace a with b in A1:B2",
		"replace a with b",
		"delete row",
	}
	for _, cmd := range destructive {
		parsed := Parse(cmd, newTestContext(""))
		assert.True(t, parsed.RequiresConfirmation, "command %q", cmd)
	}

	safe := []string{
		"set A1 to 100",
		"get value of B2",
		"sort A1:C10 by column A",
		"insert row at 2",
		"analyze A1:B10",
	}
	for _, cmd := range safe {
		parsed := Parse(cmd, newTestContext(""))
		assert.False(t, parsed.RequiresConfirmation, "command %q", cmd)
	}
}

func TestParse_ContextSubstitution(t *testing.T) {
	parsed := Parse("analyze this", newTestContext("A1:B10"))

	assert.Equal(t, gridtypes.IntentAnalyzeData, parsed.Intent)
	assert.Equal(t, "A1:B10", parsed.Parameters.Range)
	assert.Equal(t, "A1:B10", parsed.Parameters.ContextRange)
	assert.True(t, parsed.Parameters.UsedSelection)
}

func TestParse_ExplicitRangeWinsOverSelection(t *testing.T) {
	parsed := Parse("analyze data in C1:D20", newTestContext("A1:B10"))

	assert.Equal(t, gridtypes.IntentAnalyzeData, parsed.Intent)
	// Explicit wins, selection is still recorded for transparency.
	assert.Equal(t, "C1:D20", parsed.Parameters.Range)
	assert.Equal(t, "A1:B10", parsed.Parameters.ContextRange)
	assert.False(t, parsed.Parameters.UsedSelection)
}

func TestParse_NoSelectionNoSubstitution(t *testing.T) {
	parsed := Parse("analyze this", newTestContext(""))

	assert.Equal(t, gridtypes.IntentAnalyzeData, parsed.Intent)
	assert.Empty(t, parsed.Parameters.Range)
	assert.Empty(t, parsed.Parameters.ContextRange)
}

func TestParse_Comments(t *testing.T) {
	parsed := Parse("add comment 'check this figure' to D4", newTestContext(""))
	assert.Equal(t, gridtypes.IntentAddComment, parsed.Intent)
	assert.Equal(t, "D4", parsed.Parameters.Cell)
	assert.Equal(t, "check this figure", parsed.Parameters.Comment)

	parsed = Parse("reply 'fixed' to comment 3f2a", newTestContext(""))
	assert.Equal(t, gridtypes.IntentReplyComment, parsed.Intent)
	assert.Equal(t, "fixed", parsed.Parameters.Comment)
	assert.Equal(t, "3f2a", parsed.Parameters.CommentID)

	parsed = Parse("resolve comment 3f2a", newTestContext(""))
	assert.Equal(t, gridtypes.IntentResolveComment, parsed.Intent)

	parsed = Parse("delete comment 3f2a", newTestContext(""))
	assert.Equal(t, gridtypes.IntentDeleteComment, parsed.Intent)
	assert.False(t, parsed.RequiresConfirmation, "comment deletion is not in the destructive set")

	parsed = Parse("show comments on D4", newTestContext(""))
	assert.Equal(t, gridtypes.IntentGetComments, parsed.Intent)
	assert.Equal(t, "D4", parsed.Parameters.Cell)

	parsed = Parse("show comments", newTestContext(""))
	assert.Equal(t, gridtypes.IntentGetComments, parsed.Intent)
	assert.Empty(t, parsed.Parameters.Cell)
}

func TestParse_UnknownCommand(t *testing.T) {
	parsed := Parse("asdfghjkl", newTestContext(""))

	assert.Equal(t, gridtypes.IntentUnknown, parsed.Intent)
	assert.Empty(t, parsed.Parameters.Cell)
	assert.Empty(t, parsed.Parameters.Range)
	assert.False(t, parsed.RequiresConfirmation)
}

func TestParse_UnknownCommandWithSuggestions(t *testing.T) {
	parsed := Parse("please sort my numbers somehow", newTestContext(""))

	assert.Equal(t, gridtypes.IntentUnknown, parsed.Intent)
	assert.NotEmpty(t, parsed.Parameters.Suggestions)
	assert.LessOrEqual(t, len(parsed.Parameters.Suggestions), 3)
}
