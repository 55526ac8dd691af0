package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gridcontext "gridshell/internal/context"
	"gridshell/pkg/gridtypes"
)

// spySheet counts collaborator calls so tests can assert that rejected or
// gated commands never reach the spreadsheet.
type spySheet struct {
	calls map[string]int
}

func newSpySheet() *spySheet {
	return &spySheet{calls: make(map[string]int)}
}

func (s *spySheet) record(name string) { s.calls[name]++ }

func (s *spySheet) total() int {
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

func (s *spySheet) GetCell(ref string) (gridtypes.CellData, error) {
	s.record("GetCell")
	return gridtypes.CellData{}, nil
}

func (s *spySheet) SetCell(ref string, value any) error {
	s.record("SetCell")
	return nil
}

func (s *spySheet) GetRange(ref string) (gridtypes.RangeData, error) {
	s.record("GetRange")
	return gridtypes.RangeData{}, nil
}

func (s *spySheet) SetRange(ref string, values [][]any) error {
	s.record("SetRange")
	return nil
}

func (s *spySheet) SetFormula(ref, formula string) error {
	s.record("SetFormula")
	return nil
}

func (s *spySheet) ApplyFormat(ref string, format gridtypes.CellFormat) error {
	s.record("ApplyFormat")
	return nil
}

func (s *spySheet) FindAll(text string, opts gridtypes.FindOptions) ([]gridtypes.FindMatch, error) {
	s.record("FindAll")
	return nil, nil
}

func (s *spySheet) SortRange(ref string, opts gridtypes.SortOptions) error {
	s.record("SortRange")
	return nil
}

func (s *spySheet) FilterRange(ref string, criteria gridtypes.FilterCriteria) (gridtypes.RangeData, error) {
	s.record("FilterRange")
	return gridtypes.RangeData{}, nil
}

func (s *spySheet) InsertRow(row int) error {
	s.record("InsertRow")
	return nil
}

func (s *spySheet) DeleteRow(row int) error {
	s.record("DeleteRow")
	return nil
}

func (s *spySheet) InsertColumn(column int) error {
	s.record("InsertColumn")
	return nil
}

func (s *spySheet) DeleteColumn(column int) error {
	s.record("DeleteColumn")
	return nil
}

func (s *spySheet) CreateChart(def gridtypes.ChartDefinition) error {
	s.record("CreateChart")
	return nil
}

func (s *spySheet) Metadata() (gridtypes.WorksheetMetadata, error) {
	s.record("Metadata")
	return gridtypes.WorksheetMetadata{}, nil
}

func newTestDispatcher(t *testing.T) (*AIService, *SheetService, *gridcontext.GridContext) {
	t.Helper()
	sheet := NewSheetService()
	sheet.SetTestMode(true)
	require.NoError(t, sheet.Initialize())

	sessionCtx := gridcontext.New()
	sessionCtx.SetTestMode(true)

	ai := NewAIService(sheet, sessionCtx)
	require.NoError(t, ai.Initialize())
	return ai, sheet, sessionCtx
}

func TestAIService_InitializeRequiresSheet(t *testing.T) {
	ai := &AIService{}
	err := ai.Initialize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collaborator")
}

func TestAIService_WriteThenRead(t *testing.T) {
	ai, _, sessionCtx := newTestDispatcher(t)

	response := ai.ProcessCommand("set A1 to 100")
	require.True(t, response.Success)
	assert.Equal(t, "Set A1 to 100", response.Message)
	require.Len(t, response.Operations, 1)
	assert.Equal(t, gridtypes.OpSetValue, response.Operations[0].Type)
	assert.Equal(t, "A1", response.Operations[0].Target)
	assert.Equal(t, float64(100), response.Operations[0].Value)

	// Successful operations are recorded into the session context.
	assert.Len(t, sessionCtx.RecentOperations(), 1)

	response = ai.ProcessCommand("what is in A1")
	require.True(t, response.Success)
	assert.Equal(t, "A1 = 100", response.Message)
	assert.Empty(t, response.Operations)
}

func TestAIService_ValidationFailureNeverTouchesSheet(t *testing.T) {
	spy := newSpySheet()
	sessionCtx := gridcontext.New()
	sessionCtx.SetTestMode(true)
	ai := NewAIService(spy, sessionCtx)
	require.NoError(t, ai.Initialize())

	// A deictic format command with no live selection parses but fails
	// validation on the missing range.
	response := ai.ProcessCommand("format this as bold")
	assert.False(t, response.Success)
	assert.NotEmpty(t, response.Error)
	assert.Empty(t, response.Operations)
	assert.Zero(t, spy.total())
}

func TestAIService_UnknownCommandFails(t *testing.T) {
	spy := newSpySheet()
	sessionCtx := gridcontext.New()
	sessionCtx.SetTestMode(true)
	ai := NewAIService(spy, sessionCtx)
	require.NoError(t, ai.Initialize())

	response := ai.ProcessCommand("do something amazing")
	assert.False(t, response.Success)
	assert.Contains(t, response.Message, "Could not understand the command")
	assert.Empty(t, response.Operations)
	assert.Zero(t, spy.total())
}

func TestAIService_DestructiveCommandIsGated(t *testing.T) {
	spy := newSpySheet()
	sessionCtx := gridcontext.New()
	sessionCtx.SetTestMode(true)
	ai := NewAIService(spy, sessionCtx)
	require.NoError(t, ai.Initialize())

	response := ai.ProcessCommand("delete row 5")
	assert.True(t, response.Success)
	assert.True(t, response.RequiresConfirmation)
	assert.Contains(t, response.Message, "delete row 5")
	assert.Empty(t, response.Operations)
	assert.Zero(t, spy.calls["DeleteRow"], "gated command must not execute")
	assert.Empty(t, sessionCtx.RecentOperations())
}

func TestAIService_ConfirmedDestructiveCommandExecutes(t *testing.T) {
	ai, sheet, sessionCtx := newTestDispatcher(t)
	require.NoError(t, sheet.SetCell("A5", "victim"))
	require.NoError(t, sheet.SetCell("A6", "survivor"))

	response := ai.ProcessCommand("delete row 5", WithConfirmation())
	require.True(t, response.Success)
	assert.False(t, response.RequiresConfirmation)
	assert.Equal(t, "Deleted row 5", response.Message)
	require.Len(t, response.Operations, 1)
	assert.Equal(t, gridtypes.OpDeleteRow, response.Operations[0].Type)

	data, err := sheet.GetCell("A5")
	require.NoError(t, err)
	assert.Equal(t, "survivor", data.Value)
	assert.Len(t, sessionCtx.RecentOperations(), 1)
}

func TestAIService_DeleteColumnConfirmationFlow(t *testing.T) {
	ai, sheet, _ := newTestDispatcher(t)
	require.NoError(t, sheet.SetCell("B1", "doomed"))

	response := ai.ProcessCommand("delete column B")
	assert.True(t, response.RequiresConfirmation)
	assert.Contains(t, response.Message, "column B")

	response = ai.ProcessCommand("delete column B", WithConfirmation())
	require.True(t, response.Success)
	data, err := sheet.GetCell("B1")
	require.NoError(t, err)
	assert.Nil(t, data.Value)
}

func TestAIService_FindReplaceMultipleCells(t *testing.T) {
	ai, sheet, _ := newTestDispatcher(t)
	require.NoError(t, sheet.SetCell("A1", "old value"))
	require.NoError(t, sheet.SetCell("A2", "OLD news"))
	require.NoError(t, sheet.SetCell("B1", "untouched"))

	response := ai.ProcessCommand("replace old with new", WithConfirmation())
	require.True(t, response.Success)
	assert.True(t, response.RequiresConfirmation)
	assert.Contains(t, response.Message, "2 cell(s)")
	require.Len(t, response.Operations, 2)
	for _, op := range response.Operations {
		assert.Equal(t, gridtypes.OpSetValue, op.Type)
	}

	data, err := sheet.GetCell("A1")
	require.NoError(t, err)
	assert.Equal(t, "new value", data.Value)
	data, err = sheet.GetCell("A2")
	require.NoError(t, err)
	assert.Equal(t, "new news", data.Value)
	data, err = sheet.GetCell("B1")
	require.NoError(t, err)
	assert.Equal(t, "untouched", data.Value)
}

func TestAIService_FindReplaceNoMatches(t *testing.T) {
	ai, _, _ := newTestDispatcher(t)

	response := ai.ProcessCommand("replace ghost with real", WithConfirmation())
	require.True(t, response.Success)
	assert.Contains(t, response.Message, "No occurrences")
	assert.Empty(t, response.Operations)
}

func TestAIService_ContextPatchResolvesSelection(t *testing.T) {
	ai, sheet, sessionCtx := newTestDispatcher(t)
	require.NoError(t, sheet.SetRange("A1:A3", [][]any{{float64(3)}, {float64(1)}, {float64(2)}}))

	response := ai.ProcessCommand("sort this by column A ascending",
		WithContextPatch(gridcontext.ContextPatch{Selection: "A1:A3"}))
	require.True(t, response.Success)
	assert.Contains(t, response.Message, "Sorted A1:A3")
	assert.Equal(t, "A1:A3", sessionCtx.CurrentSelection())

	data, err := sheet.GetRange("A1:A3")
	require.NoError(t, err)
	assert.Equal(t, float64(1), data.Values[0][0])
}

func TestAIService_FormulaRoundTrip(t *testing.T) {
	ai, sheet, _ := newTestDispatcher(t)

	response := ai.ProcessCommand("calculate SUM(A1:A10) in A11")
	require.True(t, response.Success)
	assert.Contains(t, response.Message, "=SUM(A1:A10)")

	data, err := sheet.GetCell("A11")
	require.NoError(t, err)
	assert.Equal(t, "=SUM(A1:A10)", data.Formula)
}

func TestAIService_FormatCells(t *testing.T) {
	ai, sheet, _ := newTestDispatcher(t)

	response := ai.ProcessCommand("format A1:B2 as bold")
	require.True(t, response.Success)
	require.Len(t, response.Operations, 1)
	assert.Equal(t, gridtypes.OpSetStyle, response.Operations[0].Type)

	format, err := sheet.CellFormatAt("B2")
	require.NoError(t, err)
	require.NotNil(t, format.Bold)
	assert.True(t, *format.Bold)
}

func TestAIService_ReadRangeSamplesRows(t *testing.T) {
	ai, sheet, _ := newTestDispatcher(t)
	require.NoError(t, sheet.SetRange("A1:A5", [][]any{
		{float64(1)}, {float64(2)}, {float64(3)}, {float64(4)}, {float64(5)},
	}))

	response := ai.ProcessCommand("show A1:A5")
	require.True(t, response.Success)
	assert.Contains(t, response.Message, "5 row(s) x 1 column(s)")
	assert.Contains(t, response.Message, "...and 2 more rows")
}

func TestAIService_AnalyzeData(t *testing.T) {
	ai, sheet, _ := newTestDispatcher(t)
	require.NoError(t, sheet.SetRange("A1:A4", [][]any{
		{float64(10)}, {float64(20)}, {"label"}, {nil},
	}))

	response := ai.ProcessCommand("analyze A1:A4")
	require.True(t, response.Success)
	assert.Contains(t, response.Message, "2 numeric cell(s)")
	assert.Contains(t, response.Message, "sum=30")
	assert.Contains(t, response.Message, "avg=15")
	assert.Contains(t, response.Message, "min=10")
	assert.Contains(t, response.Message, "max=20")
}

func TestAIService_CreateChartDefaultsToBar(t *testing.T) {
	ai, sheet, _ := newTestDispatcher(t)

	response := ai.ProcessCommand("create chart from A1:B5")
	require.True(t, response.Success)
	assert.Contains(t, response.Message, "bar chart")

	charts := sheet.Charts()
	require.Len(t, charts, 1)
	assert.Equal(t, "A1:B5", charts[0].DataRange)
}

func TestAIService_CommentLifecycle(t *testing.T) {
	ai, _, _ := newTestDispatcher(t)

	response := ai.ProcessCommand(`add comment "check this" to D4`)
	require.True(t, response.Success)
	assert.Contains(t, response.Message, "comment-0001")

	response = ai.ProcessCommand(`reply "done" to comment comment-0001`)
	require.True(t, response.Success)

	response = ai.ProcessCommand("resolve comment comment-0001")
	require.True(t, response.Success)

	response = ai.ProcessCommand("show comments on D4")
	require.True(t, response.Success)
	assert.Contains(t, response.Message, "[resolved]")
	assert.Contains(t, response.Message, "done")
}

func TestAIService_CommentsUnsupportedCollaborator(t *testing.T) {
	spy := newSpySheet()
	sessionCtx := gridcontext.New()
	sessionCtx.SetTestMode(true)
	ai := NewAIService(spy, sessionCtx)
	require.NoError(t, ai.Initialize())

	response := ai.ProcessCommand(`add comment "hello" to A1`)
	assert.False(t, response.Success)
	assert.Contains(t, response.Error, "does not support comments")
}

func TestAIService_HandlerErrorBecomesFailureResponse(t *testing.T) {
	ai, _, sessionCtx := newTestDispatcher(t)

	// insert row without a number parses and validates but the handler
	// rejects the missing row.
	response := ai.ProcessCommand("insert row")
	assert.False(t, response.Success)
	assert.Equal(t, "Failed to execute command", response.Message)
	assert.Contains(t, response.Error, "row number is required")
	assert.Empty(t, sessionCtx.RecentOperations())
}
