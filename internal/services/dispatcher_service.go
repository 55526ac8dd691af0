package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"

	"gridshell/internal/context"
	"gridshell/internal/logger"
	"gridshell/internal/parser"
	"gridshell/pkg/gridtypes"
)

// sampleRowLimit caps how many rows a read_range message quotes before
// truncating with an "...and N more rows" suffix.
const sampleRowLimit = 3

// dispatchState tracks one ProcessCommand invocation through its
// parse-validate-dispatch lifecycle. There is no multi-call state: the
// engine cannot tell a first submission from a confirmed resubmission, so
// the caller carries the confirmation handshake.
type dispatchState string

const (
	stateReceived   dispatchState = "received"
	stateParsed     dispatchState = "parsed"
	stateRejected   dispatchState = "rejected"
	stateGated      dispatchState = "gated"
	stateDispatched dispatchState = "dispatched"
	stateSucceeded  dispatchState = "succeeded"
	stateFailed     dispatchState = "failed"
)

// processOptions collects the functional options of one ProcessCommand call.
type processOptions struct {
	confirmed bool
	patch     *context.ContextPatch
}

// ProcessOption configures one ProcessCommand invocation.
type ProcessOption func(*processOptions)

// WithConfirmation marks the command as confirmed by the user, letting
// destructive intents execute.
func WithConfirmation() ProcessOption {
	return func(o *processOptions) { o.confirmed = true }
}

// WithContextPatch merges a partial context update before parsing.
func WithContextPatch(patch context.ContextPatch) ProcessOption {
	return func(o *processOptions) { o.patch = &patch }
}

// AIService is the command dispatcher: the single public entry point that
// turns free text into a validated, typed operation against the spreadsheet
// collaborator and returns a structured response. The service itself is
// stateless aside from its collaborator handles; session state lives in the
// GridContext passed at construction.
type AIService struct {
	initialized bool
	sheet       gridtypes.Sheet
	comments    gridtypes.CommentStore
	sessionCtx  *context.GridContext
}

// NewAIService creates a dispatcher over a spreadsheet collaborator and a
// session context. The comment capability is detected from the collaborator
// when it implements CommentStore.
func NewAIService(sheet gridtypes.Sheet, sessionCtx *context.GridContext) *AIService {
	service := &AIService{sheet: sheet, sessionCtx: sessionCtx}
	if store, ok := sheet.(gridtypes.CommentStore); ok {
		service.comments = store
	}
	return service
}

// Name returns the service name "ai" for registration.
func (a *AIService) Name() string {
	return "ai"
}

// Initialize sets up the AIService for operation.
func (a *AIService) Initialize() error {
	if a.sheet == nil {
		return fmt.Errorf("ai service requires a spreadsheet collaborator")
	}
	if a.sessionCtx == nil {
		a.sessionCtx = context.GetGlobalContext()
	}
	a.initialized = true
	return nil
}

// SessionContext exposes the session context the dispatcher records
// operations into.
func (a *AIService) SessionContext() *context.GridContext {
	return a.sessionCtx
}

// ProcessCommand runs one parse-validate-dispatch cycle. The steps are
// fixed: merge the optional context patch, parse, validate (failing fast
// without touching the collaborator), gate destructive intents behind the
// Confirmed option, then dispatch to the intent's handler. Handler errors
// surface as failure responses, never as panics.
func (a *AIService) ProcessCommand(command string, opts ...ProcessOption) gridtypes.AIResponse {
	options := processOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	state := stateReceived
	if options.patch != nil {
		a.sessionCtx.UpdateContext(*options.patch)
	}

	parsed := parser.Parse(command, a.sessionCtx)
	state = stateParsed
	logger.CommandExecution(string(parsed.Intent), parsed.TargetRange)

	validation := parser.Validate(parsed)
	if !validation.Valid {
		state = stateRejected
		logger.Debug("Command rejected", "state", state, "errors", validation.Errors)
		return gridtypes.AIResponse{
			Success:    false,
			Message:    strings.Join(validation.Errors, ", "),
			Operations: []gridtypes.Operation{},
			Error:      validation.Errors[0],
		}
	}

	if parsed.RequiresConfirmation && !options.confirmed {
		state = stateGated
		logger.Debug("Command gated", "state", state, "intent", parsed.Intent)
		return gridtypes.AIResponse{
			Success:              true,
			Message:              a.confirmationPrompt(parsed),
			Operations:           []gridtypes.Operation{},
			RequiresConfirmation: true,
		}
	}

	state = stateDispatched
	response := a.dispatch(parsed)
	for _, warning := range validation.Warnings {
		logger.Warn(warning)
	}

	if response.Success {
		state = stateSucceeded
		for _, op := range response.Operations {
			a.sessionCtx.RecordOperation(op)
		}
	} else {
		state = stateFailed
	}
	logger.Debug("Command finished", "state", state, "intent", parsed.Intent)
	return response
}

// dispatch routes a validated command to its handler and converts handler
// failures into the failure response shape.
func (a *AIService) dispatch(parsed gridtypes.ParsedCommand) gridtypes.AIResponse {
	message, operations, err := a.runHandler(parsed)
	if err != nil {
		failure := gridtypes.AIResponse{
			Success:    false,
			Message:    "Failed to execute command",
			Operations: []gridtypes.Operation{},
			Error:      err.Error(),
		}
		// find_replace commits each replacement independently; report the
		// replacements that succeeded before the failure.
		if len(operations) > 0 {
			failure.Operations = operations
		}
		if parsed.Intent == gridtypes.IntentFindReplace {
			failure.RequiresConfirmation = true
		}
		return failure
	}

	response := gridtypes.AIResponse{
		Success:    true,
		Message:    message,
		Operations: operations,
	}
	if operations == nil {
		response.Operations = []gridtypes.Operation{}
	}
	// The find_replace response always reports the confirmation
	// requirement, even on the confirmed pass.
	if parsed.Intent == gridtypes.IntentFindReplace {
		response.RequiresConfirmation = true
	}
	return response
}

// runHandler maps an intent to its handler. Each handler issues exactly one
// collaborator call, find_replace excepted.
func (a *AIService) runHandler(parsed gridtypes.ParsedCommand) (message string, operations []gridtypes.Operation, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("command handler panicked: %v", r)
		}
	}()

	p := parsed.Parameters
	switch parsed.Intent {
	case gridtypes.IntentReadCell:
		return a.handleReadCell(p)
	case gridtypes.IntentWriteCell:
		return a.handleWriteCell(p)
	case gridtypes.IntentReadRange:
		return a.handleReadRange(p)
	case gridtypes.IntentWriteRange:
		return a.handleWriteRange(p)
	case gridtypes.IntentSetFormula:
		return a.handleSetFormula(p)
	case gridtypes.IntentFormatCells:
		return a.handleFormatCells(p)
	case gridtypes.IntentSortData:
		return a.handleSortData(p)
	case gridtypes.IntentFilterData:
		return a.handleFilterData(p)
	case gridtypes.IntentCreateChart:
		return a.handleCreateChart(p)
	case gridtypes.IntentFindReplace:
		return a.handleFindReplace(p)
	case gridtypes.IntentInsertRow:
		return a.handleInsertRow(p)
	case gridtypes.IntentDeleteRow:
		return a.handleDeleteRow(p)
	case gridtypes.IntentInsertColumn:
		return a.handleInsertColumn(p)
	case gridtypes.IntentDeleteColumn:
		return a.handleDeleteColumn(p)
	case gridtypes.IntentAnalyzeData:
		return a.handleAnalyzeData(p)
	case gridtypes.IntentAddComment:
		return a.handleAddComment(p)
	case gridtypes.IntentReplyComment:
		return a.handleReplyComment(p)
	case gridtypes.IntentResolveComment:
		return a.handleResolveComment(p)
	case gridtypes.IntentDeleteComment:
		return a.handleDeleteComment(p)
	case gridtypes.IntentGetComments:
		return a.handleGetComments(p)
	default:
		return "", nil, fmt.Errorf("no handler for intent %s", parsed.Intent)
	}
}

func (a *AIService) handleReadCell(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	data, err := a.sheet.GetCell(p.Cell)
	if err != nil {
		return "", nil, err
	}
	if data.Value == nil && data.Formula == "" {
		return fmt.Sprintf("%s is empty", p.Cell), nil, nil
	}
	message := fmt.Sprintf("%s = %s", p.Cell, stringifyValue(data.Value))
	if data.Formula != "" {
		message += fmt.Sprintf(" (formula %s)", data.Formula)
	}
	return message, nil, nil
}

func (a *AIService) handleWriteCell(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	if err := a.sheet.SetCell(p.Cell, p.Value); err != nil {
		return "", nil, err
	}
	op := a.sessionCtx.NewOperation(gridtypes.OpSetValue, p.Cell, p.Value, nil)
	return fmt.Sprintf("Set %s to %s", p.Cell, stringifyValue(p.Value)),
		[]gridtypes.Operation{op}, nil
}

func (a *AIService) handleReadRange(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	data, err := a.sheet.GetRange(p.Range)
	if err != nil {
		return "", nil, err
	}

	rows := len(data.Values)
	cols := 0
	if rows > 0 {
		cols = len(data.Values[0])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s contains %d row(s) x %d column(s)", p.Range, rows, cols)
	for i, row := range data.Values {
		if i == sampleRowLimit {
			fmt.Fprintf(&b, "\n...and %d more rows", rows-sampleRowLimit)
			break
		}
		cells := make([]string, len(row))
		for j, value := range row {
			cells[j] = stringifyValue(value)
		}
		fmt.Fprintf(&b, "\n%s", strings.Join(cells, " | "))
	}
	if data.Formulas != nil {
		b.WriteString("\nThe range contains formulas.")
	}
	return b.String(), nil, nil
}

func (a *AIService) handleWriteRange(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	if err := a.sheet.SetRange(p.Range, p.Values); err != nil {
		return "", nil, err
	}
	op := a.sessionCtx.NewOperation(gridtypes.OpSetValue, p.Range, p.Values, nil)
	return fmt.Sprintf("Wrote %d row(s) to %s", len(p.Values), p.Range),
		[]gridtypes.Operation{op}, nil
}

func (a *AIService) handleSetFormula(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	if err := a.sheet.SetFormula(p.Cell, p.Formula); err != nil {
		return "", nil, err
	}
	op := a.sessionCtx.NewOperation(gridtypes.OpSetFormula, p.Cell, p.Formula, nil)
	return fmt.Sprintf("Set formula %s in %s", p.Formula, p.Cell),
		[]gridtypes.Operation{op}, nil
}

func (a *AIService) handleFormatCells(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	if err := a.sheet.ApplyFormat(p.Range, *p.Format); err != nil {
		return "", nil, err
	}
	op := a.sessionCtx.NewOperation(gridtypes.OpSetStyle, p.Range, describeFormat(*p.Format), nil)
	return fmt.Sprintf("Formatted %s as %s", p.Range, describeFormat(*p.Format)),
		[]gridtypes.Operation{op}, nil
}

func (a *AIService) handleSortData(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	if err := a.sheet.SortRange(p.Range, *p.Sort); err != nil {
		return "", nil, err
	}
	direction := "ascending"
	if !p.Sort.Ascending {
		direction = "descending"
	}
	op := a.sessionCtx.NewOperation(gridtypes.OpSort, p.Range, p.Sort.Column, nil)
	return fmt.Sprintf("Sorted %s by column %s %s",
			p.Range, parser.ColumnNumberToLetter(p.Sort.Column), direction),
		[]gridtypes.Operation{op}, nil
}

func (a *AIService) handleFilterData(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	data, err := a.sheet.FilterRange(p.Range, *p.Criteria)
	if err != nil {
		return "", nil, err
	}
	op := a.sessionCtx.NewOperation(gridtypes.OpFilter, p.Range, p.Criteria.Operator, nil)
	message := fmt.Sprintf("%d row(s) in %s match the filter", len(data.Values), p.Range)
	for i, row := range data.Values {
		if i == sampleRowLimit {
			message += fmt.Sprintf("\n...and %d more rows", len(data.Values)-sampleRowLimit)
			break
		}
		cells := make([]string, len(row))
		for j, value := range row {
			cells[j] = stringifyValue(value)
		}
		message += "\n" + strings.Join(cells, " | ")
	}
	return message, []gridtypes.Operation{op}, nil
}

func (a *AIService) handleCreateChart(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	def := gridtypes.ChartDefinition{
		ID:        uuid.New().String(),
		Type:      p.ChartType,
		DataRange: p.Range,
	}
	if err := a.sheet.CreateChart(def); err != nil {
		return "", nil, err
	}
	op := a.sessionCtx.NewOperation(gridtypes.OpCreateChart, p.Range, p.ChartType, nil)
	return fmt.Sprintf("Created a %s chart over %s", p.ChartType, p.Range),
		[]gridtypes.Operation{op}, nil
}

// handleFindReplace is the one handler that loops over collaborator calls:
// it finds matches, then commits each replacement independently and in
// order, so a mid-loop failure leaves an accurate partial-success account
// in the returned operations.
func (a *AIService) handleFindReplace(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	matches, err := a.sheet.FindAll(p.Find, gridtypes.FindOptions{Range: p.Range})
	if err != nil {
		return "", nil, err
	}
	if len(matches) == 0 {
		scope := p.Range
		if scope == "" {
			scope = "the worksheet"
		}
		return fmt.Sprintf("No occurrences of %q found in %s", p.Find, scope), nil, nil
	}

	pattern, err := regexp.Compile("(?i)" + regexp.QuoteMeta(p.Find))
	if err != nil {
		return "", nil, err
	}

	operations := make([]gridtypes.Operation, 0, len(matches))
	var preview strings.Builder
	for _, match := range matches {
		replaced := pattern.ReplaceAllLiteralString(match.Value, p.Replace)
		newValue := parser.ParseValue(replaced)
		if err := a.sheet.SetCell(match.Cell, newValue); err != nil {
			return "", operations, fmt.Errorf("replacement failed at %s: %w", match.Cell, err)
		}
		operations = append(operations,
			a.sessionCtx.NewOperation(gridtypes.OpSetValue, match.Cell, newValue, match.Value))
		if len(operations) <= sampleRowLimit {
			fmt.Fprintf(&preview, "\n%s: %s", match.Cell, diffPreview(match.Value, replaced))
		}
	}
	if len(operations) > sampleRowLimit {
		fmt.Fprintf(&preview, "\n...and %d more cells", len(operations)-sampleRowLimit)
	}

	message := fmt.Sprintf("Replaced %q with %q in %d cell(s)%s",
		p.Find, p.Replace, len(operations), preview.String())
	return message, operations, nil
}

func (a *AIService) handleInsertRow(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	if p.Row < 1 {
		return "", nil, fmt.Errorf("row number is required - try 'insert row 5'")
	}
	if err := a.sheet.InsertRow(p.Row); err != nil {
		return "", nil, err
	}
	op := a.sessionCtx.NewOperation(gridtypes.OpInsertRow, fmt.Sprintf("row %d", p.Row), nil, nil)
	return fmt.Sprintf("Inserted a row at %d", p.Row), []gridtypes.Operation{op}, nil
}

func (a *AIService) handleDeleteRow(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	if p.Row < 1 {
		return "", nil, fmt.Errorf("row number is required - try 'delete row 5'")
	}
	if err := a.sheet.DeleteRow(p.Row); err != nil {
		return "", nil, err
	}
	op := a.sessionCtx.NewOperation(gridtypes.OpDeleteRow, fmt.Sprintf("row %d", p.Row), nil, nil)
	return fmt.Sprintf("Deleted row %d", p.Row), []gridtypes.Operation{op}, nil
}

func (a *AIService) handleInsertColumn(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	if !p.HasColumn {
		return "", nil, fmt.Errorf("column letter is required - try 'insert column C'")
	}
	if err := a.sheet.InsertColumn(p.Column); err != nil {
		return "", nil, err
	}
	letter := parser.ColumnNumberToLetter(p.Column)
	op := a.sessionCtx.NewOperation(gridtypes.OpInsertColumn, fmt.Sprintf("column %s", letter), nil, nil)
	return fmt.Sprintf("Inserted a column at %s", letter), []gridtypes.Operation{op}, nil
}

func (a *AIService) handleDeleteColumn(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	if !p.HasColumn {
		return "", nil, fmt.Errorf("column letter is required - try 'delete column C'")
	}
	if err := a.sheet.DeleteColumn(p.Column); err != nil {
		return "", nil, err
	}
	letter := parser.ColumnNumberToLetter(p.Column)
	op := a.sessionCtx.NewOperation(gridtypes.OpDeleteColumn, fmt.Sprintf("column %s", letter), nil, nil)
	return fmt.Sprintf("Deleted column %s", letter), []gridtypes.Operation{op}, nil
}

func (a *AIService) handleAnalyzeData(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	data, err := a.sheet.GetRange(p.Range)
	if err != nil {
		return "", nil, err
	}

	rows := len(data.Values)
	cols := 0
	if rows > 0 {
		cols = len(data.Values[0])
	}

	numericCount, emptyCount := 0, 0
	var sum, minVal, maxVal float64
	first := true
	for _, row := range data.Values {
		for _, value := range row {
			if value == nil || stringifyValue(value) == "" {
				emptyCount++
				continue
			}
			if n, ok := toFloat(value); ok {
				numericCount++
				sum += n
				if first || n < minVal {
					minVal = n
				}
				if first || n > maxVal {
					maxVal = n
				}
				first = false
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d row(s) x %d column(s), %d numeric cell(s), %d empty cell(s)",
		p.Range, rows, cols, numericCount, emptyCount)
	if numericCount > 0 {
		fmt.Fprintf(&b, "\nsum=%s avg=%s min=%s max=%s",
			stringifyValue(sum),
			stringifyValue(sum/float64(numericCount)),
			stringifyValue(minVal),
			stringifyValue(maxVal))
	}
	if data.Formulas != nil {
		b.WriteString("\nThe range contains formulas.")
	}
	return b.String(), nil, nil
}

func (a *AIService) handleAddComment(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	if a.comments == nil {
		return "", nil, fmt.Errorf("the spreadsheet collaborator does not support comments")
	}
	comment, err := a.comments.AddComment(p.Cell, "user", p.Comment)
	if err != nil {
		return "", nil, err
	}
	op := a.sessionCtx.NewOperation(gridtypes.OpComment, p.Cell, comment.Text, nil)
	return fmt.Sprintf("Added comment %s to %s", comment.ID, p.Cell),
		[]gridtypes.Operation{op}, nil
}

func (a *AIService) handleReplyComment(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	if a.comments == nil {
		return "", nil, fmt.Errorf("the spreadsheet collaborator does not support comments")
	}
	reply, err := a.comments.ReplyToComment(p.CommentID, "user", p.Comment)
	if err != nil {
		return "", nil, err
	}
	op := a.sessionCtx.NewOperation(gridtypes.OpComment, reply.Cell, reply.Text, nil)
	return fmt.Sprintf("Replied to comment %s", p.CommentID), []gridtypes.Operation{op}, nil
}

func (a *AIService) handleResolveComment(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	if a.comments == nil {
		return "", nil, fmt.Errorf("the spreadsheet collaborator does not support comments")
	}
	if err := a.comments.ResolveComment(p.CommentID); err != nil {
		return "", nil, err
	}
	op := a.sessionCtx.NewOperation(gridtypes.OpComment, p.CommentID, "resolved", nil)
	return fmt.Sprintf("Resolved comment %s", p.CommentID), []gridtypes.Operation{op}, nil
}

func (a *AIService) handleDeleteComment(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	if a.comments == nil {
		return "", nil, fmt.Errorf("the spreadsheet collaborator does not support comments")
	}
	if err := a.comments.DeleteComment(p.CommentID); err != nil {
		return "", nil, err
	}
	op := a.sessionCtx.NewOperation(gridtypes.OpComment, p.CommentID, "deleted", nil)
	return fmt.Sprintf("Deleted comment %s", p.CommentID), []gridtypes.Operation{op}, nil
}

func (a *AIService) handleGetComments(p gridtypes.Parameters) (string, []gridtypes.Operation, error) {
	if a.comments == nil {
		return "", nil, fmt.Errorf("the spreadsheet collaborator does not support comments")
	}
	comments, err := a.comments.Comments(p.Cell)
	if err != nil {
		return "", nil, err
	}
	if len(comments) == 0 {
		if p.Cell != "" {
			return fmt.Sprintf("No comments on %s", p.Cell), nil, nil
		}
		return "No comments on this worksheet", nil, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d comment(s)", len(comments))
	for _, comment := range comments {
		status := ""
		if comment.Resolved {
			status = " [resolved]"
		}
		fmt.Fprintf(&b, "\n%s %s (%s)%s: %s",
			comment.ID, comment.Cell, comment.Author, status, comment.Text)
		for _, reply := range comment.Replies {
			fmt.Fprintf(&b, "\n  ↳ %s: %s", reply.Author, reply.Text)
		}
	}
	return b.String(), nil, nil
}

// confirmationPrompt names the pending destructive effect for the caller's
// confirmation handshake.
func (a *AIService) confirmationPrompt(parsed gridtypes.ParsedCommand) string {
	p := parsed.Parameters
	switch parsed.Intent {
	case gridtypes.IntentDeleteRow:
		if p.Row > 0 {
			return fmt.Sprintf("This will delete row %d. Confirm to proceed.", p.Row)
		}
		return "This will delete a row. Confirm to proceed."
	case gridtypes.IntentDeleteColumn:
		if p.HasColumn {
			return fmt.Sprintf("This will delete column %s. Confirm to proceed.",
				parser.ColumnNumberToLetter(p.Column))
		}
		return "This will delete a column. Confirm to proceed."
	case gridtypes.IntentFindReplace:
		scope := p.Range
		if scope == "" {
			scope = "the whole worksheet"
		}
		return fmt.Sprintf("This will replace %q with %q in %s. Confirm to proceed.",
			p.Find, p.Replace, scope)
	default:
		return "This is a destructive command. Confirm to proceed."
	}
}

// diffPreview renders a compact inline old→new diff for one replaced cell.
func diffPreview(oldValue, newValue string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldValue, newValue, false)
	dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			fmt.Fprintf(&b, "[-%s]", d.Text)
		case diffmatchpatch.DiffInsert:
			fmt.Fprintf(&b, "[+%s]", d.Text)
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

// describeFormat renders a CellFormat for messages and audit records.
func describeFormat(format gridtypes.CellFormat) string {
	var parts []string
	if format.NumberFormat != "" {
		parts = append(parts, format.NumberFormat)
	}
	if format.Bold != nil && *format.Bold {
		parts = append(parts, "bold")
	}
	if format.Italic != nil && *format.Italic {
		parts = append(parts, "italic")
	}
	if format.FontColor != "" {
		parts = append(parts, "font color "+format.FontColor)
	}
	if format.Background != "" {
		parts = append(parts, "background "+format.Background)
	}
	if len(parts) == 0 {
		return "(no changes)"
	}
	return strings.Join(parts, ", ")
}
