package services

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"gridshell/internal/parser"
	"gridshell/pkg/gridtypes"
)

var cellRefPattern = regexp.MustCompile(`^([A-Z]+)([0-9]+)$`)

// cellEntry is one stored cell: a value, an optional stored (not evaluated)
// formula, and the accumulated format.
type cellEntry struct {
	value   any
	formula string
	format  gridtypes.CellFormat
}

// SheetService is the in-process spreadsheet collaborator: an in-memory
// worksheet keyed by A1-style references. It implements both the Sheet and
// CommentStore capabilities consumed by the dispatcher. Formula evaluation
// belongs to an external engine; formulas are stored verbatim.
type SheetService struct {
	initialized bool
	mu          sync.RWMutex
	name        string
	cells       map[string]*cellEntry
	comments    []gridtypes.Comment
	charts      []gridtypes.ChartDefinition
	testMode    bool
	commentSeq  int
}

// NewSheetService creates an empty in-memory worksheet named "Sheet1".
func NewSheetService() *SheetService {
	return &SheetService{
		name:  "Sheet1",
		cells: make(map[string]*cellEntry),
	}
}

// Name returns the service name "sheet" for registration.
func (s *SheetService) Name() string {
	return "sheet"
}

// Initialize sets up the SheetService for operation.
func (s *SheetService) Initialize() error {
	s.initialized = true
	return nil
}

// SetTestMode switches comment ID generation to a deterministic sequence.
func (s *SheetService) SetTestMode(testMode bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.testMode = testMode
}

// cellCoord is a parsed A1 reference: 0-based column, 1-based row.
type cellCoord struct {
	col int
	row int
}

func parseCellRef(ref string) (cellCoord, error) {
	m := cellRefPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(ref)))
	if m == nil {
		return cellCoord{}, fmt.Errorf("invalid cell reference %q", ref)
	}
	row, err := strconv.Atoi(m[2])
	if err != nil || row < 1 {
		return cellCoord{}, fmt.Errorf("invalid row in reference %q", ref)
	}
	return cellCoord{col: parser.ColumnLetterToNumber(m[1]), row: row}, nil
}

func (c cellCoord) ref() string {
	return fmt.Sprintf("%s%d", parser.ColumnNumberToLetter(c.col), c.row)
}

// parseRangeRef parses a two-corner reference and returns the normalized
// top-left and bottom-right corners, whatever order the corners were given
// in.
func parseRangeRef(ref string) (cellCoord, cellCoord, error) {
	parts := strings.SplitN(strings.ToUpper(strings.TrimSpace(ref)), ":", 2)
	if len(parts) != 2 {
		return cellCoord{}, cellCoord{}, fmt.Errorf("invalid range reference %q", ref)
	}
	first, err := parseCellRef(parts[0])
	if err != nil {
		return cellCoord{}, cellCoord{}, fmt.Errorf("invalid range reference %q", ref)
	}
	second, err := parseCellRef(parts[1])
	if err != nil {
		return cellCoord{}, cellCoord{}, fmt.Errorf("invalid range reference %q", ref)
	}
	topLeft := cellCoord{col: min(first.col, second.col), row: min(first.row, second.row)}
	bottomRight := cellCoord{col: max(first.col, second.col), row: max(first.row, second.row)}
	return topLeft, bottomRight, nil
}

// GetCell returns the value and formula stored at ref. Reading an empty
// cell yields zero CellData, not an error.
func (s *SheetService) GetCell(ref string) (gridtypes.CellData, error) {
	coord, err := parseCellRef(ref)
	if err != nil {
		return gridtypes.CellData{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.cells[coord.ref()]
	if !ok {
		return gridtypes.CellData{}, nil
	}
	return gridtypes.CellData{Value: entry.value, Formula: entry.formula}, nil
}

// SetCell stores a value at ref, clearing any stored formula.
func (s *SheetService) SetCell(ref string, value any) error {
	coord, err := parseCellRef(ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.ensureCell(coord.ref())
	entry.value = value
	entry.formula = ""
	return nil
}

// GetRange returns the values of a two-corner range, row-major. Formulas is
// populated only when the range contains at least one formula.
func (s *SheetService) GetRange(ref string) (gridtypes.RangeData, error) {
	topLeft, bottomRight, err := parseRangeRef(ref)
	if err != nil {
		return gridtypes.RangeData{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var data gridtypes.RangeData
	hasFormulas := false
	formulas := make([][]string, 0, bottomRight.row-topLeft.row+1)
	for row := topLeft.row; row <= bottomRight.row; row++ {
		rowValues := make([]any, 0, bottomRight.col-topLeft.col+1)
		rowFormulas := make([]string, 0, bottomRight.col-topLeft.col+1)
		for col := topLeft.col; col <= bottomRight.col; col++ {
			entry := s.cells[cellCoord{col: col, row: row}.ref()]
			if entry == nil {
				rowValues = append(rowValues, nil)
				rowFormulas = append(rowFormulas, "")
				continue
			}
			rowValues = append(rowValues, entry.value)
			rowFormulas = append(rowFormulas, entry.formula)
			if entry.formula != "" {
				hasFormulas = true
			}
		}
		data.Values = append(data.Values, rowValues)
		formulas = append(formulas, rowFormulas)
	}
	if hasFormulas {
		data.Formulas = formulas
	}
	return data, nil
}

// SetRange writes a 2D block of values anchored at the range's top-left
// corner. The block must fit inside the range.
func (s *SheetService) SetRange(ref string, values [][]any) error {
	topLeft, bottomRight, err := parseRangeRef(ref)
	if err != nil {
		return err
	}

	rows := bottomRight.row - topLeft.row + 1
	cols := bottomRight.col - topLeft.col + 1
	if len(values) > rows {
		return fmt.Errorf("%d rows of values do not fit in range %s", len(values), ref)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rowValues := range values {
		if len(rowValues) > cols {
			return fmt.Errorf("%d columns of values do not fit in range %s", len(rowValues), ref)
		}
		for j, value := range rowValues {
			entry := s.ensureCell(cellCoord{col: topLeft.col + j, row: topLeft.row + i}.ref())
			entry.value = value
			entry.formula = ""
		}
	}
	return nil
}

// SetFormula stores a formula at ref. The formula is kept verbatim; the
// engine does not evaluate it.
func (s *SheetService) SetFormula(ref string, formula string) error {
	coord, err := parseCellRef(ref)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(formula, "=") {
		formula = "=" + formula
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureCell(coord.ref()).formula = formula
	return nil
}

// ApplyFormat merges a format onto every cell of a cell or range reference.
// Only the fields set on the incoming format are applied.
func (s *SheetService) ApplyFormat(ref string, format gridtypes.CellFormat) error {
	refs, err := s.expandRef(ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cellRef := range refs {
		entry := s.ensureCell(cellRef)
		if format.NumberFormat != "" {
			entry.format.NumberFormat = format.NumberFormat
		}
		if format.Bold != nil {
			entry.format.Bold = format.Bold
		}
		if format.Italic != nil {
			entry.format.Italic = format.Italic
		}
		if format.FontColor != "" {
			entry.format.FontColor = format.FontColor
		}
		if format.Background != "" {
			entry.format.Background = format.Background
		}
		if format.FontSize != 0 {
			entry.format.FontSize = format.FontSize
		}
	}
	return nil
}

// CellFormatAt returns the accumulated format of one cell, for callers that
// need to inspect applied styling.
func (s *SheetService) CellFormatAt(ref string) (gridtypes.CellFormat, error) {
	coord, err := parseCellRef(ref)
	if err != nil {
		return gridtypes.CellFormat{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.cells[coord.ref()]
	if !ok {
		return gridtypes.CellFormat{}, nil
	}
	return entry.format, nil
}

// FindAll returns every cell whose stringified value contains text, in
// deterministic row-then-column order. Matching is case-insensitive unless
// opts.MatchCase is set; opts.Range restricts the search.
func (s *SheetService) FindAll(text string, opts gridtypes.FindOptions) ([]gridtypes.FindMatch, error) {
	var topLeft, bottomRight cellCoord
	bounded := opts.Range != ""
	if bounded {
		var err error
		topLeft, bottomRight, err = parseRangeRef(opts.Range)
		if err != nil {
			return nil, err
		}
	}

	needle := text
	if !opts.MatchCase {
		needle = strings.ToLower(text)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []gridtypes.FindMatch
	for ref, entry := range s.cells {
		coord, err := parseCellRef(ref)
		if err != nil {
			continue
		}
		if bounded && (coord.col < topLeft.col || coord.col > bottomRight.col ||
			coord.row < topLeft.row || coord.row > bottomRight.row) {
			continue
		}
		value := stringifyValue(entry.value)
		haystack := value
		if !opts.MatchCase {
			haystack = strings.ToLower(value)
		}
		if value != "" && strings.Contains(haystack, needle) {
			matches = append(matches, gridtypes.FindMatch{
				Cell:   ref,
				Value:  value,
				Row:    coord.row,
				Column: coord.col,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Row != matches[j].Row {
			return matches[i].Row < matches[j].Row
		}
		return matches[i].Column < matches[j].Column
	})
	return matches, nil
}

// SortRange reorders the rows of a range by one of its columns. The column
// index is 0-based relative to the range. Numeric values compare
// numerically, everything else as strings; empty cells sort last.
func (s *SheetService) SortRange(ref string, opts gridtypes.SortOptions) error {
	topLeft, bottomRight, err := parseRangeRef(ref)
	if err != nil {
		return err
	}
	if opts.Column < 0 || opts.Column > bottomRight.col-topLeft.col {
		return fmt.Errorf("sort column %d is outside range %s", opts.Column, ref)
	}

	data, err := s.GetRange(ref)
	if err != nil {
		return err
	}

	rows := data.Values
	sort.SliceStable(rows, func(i, j int) bool {
		less := compareValues(rows[i][opts.Column], rows[j][opts.Column])
		if opts.Ascending {
			return less < 0
		}
		return less > 0
	})

	return s.SetRange(ref, rows)
}

// FilterRange returns the rows of a range matching the criteria. The range
// itself is not mutated; filtering is a read.
func (s *SheetService) FilterRange(ref string, criteria gridtypes.FilterCriteria) (gridtypes.RangeData, error) {
	topLeft, bottomRight, err := parseRangeRef(ref)
	if err != nil {
		return gridtypes.RangeData{}, err
	}
	if criteria.Column < 0 || criteria.Column > bottomRight.col-topLeft.col {
		return gridtypes.RangeData{}, fmt.Errorf("filter column %d is outside range %s", criteria.Column, ref)
	}

	data, err := s.GetRange(ref)
	if err != nil {
		return gridtypes.RangeData{}, err
	}

	var filtered gridtypes.RangeData
	for _, row := range data.Values {
		if matchesCriteria(row[criteria.Column], criteria) {
			filtered.Values = append(filtered.Values, row)
		}
	}
	return filtered, nil
}

// InsertRow shifts every cell at or below the 1-based row down by one.
func (s *SheetService) InsertRow(row int) error {
	if row < 1 {
		return fmt.Errorf("row number must be 1 or greater, got %d", row)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shiftCells(func(c cellCoord) (cellCoord, bool) {
		if c.row >= row {
			return cellCoord{col: c.col, row: c.row + 1}, true
		}
		return c, true
	})
	return nil
}

// DeleteRow removes the 1-based row and shifts everything below it up.
func (s *SheetService) DeleteRow(row int) error {
	if row < 1 {
		return fmt.Errorf("row number must be 1 or greater, got %d", row)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shiftCells(func(c cellCoord) (cellCoord, bool) {
		switch {
		case c.row == row:
			return c, false
		case c.row > row:
			return cellCoord{col: c.col, row: c.row - 1}, true
		default:
			return c, true
		}
	})
	return nil
}

// InsertColumn shifts every cell at or right of the 0-based column right by
// one.
func (s *SheetService) InsertColumn(column int) error {
	if column < 0 {
		return fmt.Errorf("column index must be 0 or greater, got %d", column)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shiftCells(func(c cellCoord) (cellCoord, bool) {
		if c.col >= column {
			return cellCoord{col: c.col + 1, row: c.row}, true
		}
		return c, true
	})
	return nil
}

// DeleteColumn removes the 0-based column and shifts everything right of it
// left.
func (s *SheetService) DeleteColumn(column int) error {
	if column < 0 {
		return fmt.Errorf("column index must be 0 or greater, got %d", column)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shiftCells(func(c cellCoord) (cellCoord, bool) {
		switch {
		case c.col == column:
			return c, false
		case c.col > column:
			return cellCoord{col: c.col - 1, row: c.row}, true
		default:
			return c, true
		}
	})
	return nil
}

// CreateChart records a chart definition. Rendering is out of scope.
func (s *SheetService) CreateChart(def gridtypes.ChartDefinition) error {
	if _, _, err := parseRangeRef(def.DataRange); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.charts = append(s.charts, def)
	return nil
}

// Charts returns the recorded chart definitions.
func (s *SheetService) Charts() []gridtypes.ChartDefinition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	charts := make([]gridtypes.ChartDefinition, len(s.charts))
	copy(charts, s.charts)
	return charts
}

// Metadata summarizes the worksheet: its bounding dimensions, whether any
// formulas are stored, and the bounding data range.
func (s *SheetService) Metadata() (gridtypes.WorksheetMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meta := gridtypes.WorksheetMetadata{Name: s.name, DataRanges: []string{}}
	maxRow, maxCol := 0, -1
	for ref, entry := range s.cells {
		coord, err := parseCellRef(ref)
		if err != nil {
			continue
		}
		if entry.value == nil && entry.formula == "" {
			continue
		}
		if coord.row > maxRow {
			maxRow = coord.row
		}
		if coord.col > maxCol {
			maxCol = coord.col
		}
		if entry.formula != "" {
			meta.HasFormulas = true
		}
	}
	if maxRow > 0 {
		meta.RowCount = maxRow
		meta.ColumnCount = maxCol + 1
		meta.DataRanges = append(meta.DataRanges,
			fmt.Sprintf("A1:%s", cellCoord{col: maxCol, row: maxRow}.ref()))
	}
	return meta, nil
}

// AddComment attaches a comment to a cell and returns it with a fresh ID.
func (s *SheetService) AddComment(cell, author, text string) (gridtypes.Comment, error) {
	coord, err := parseCellRef(cell)
	if err != nil {
		return gridtypes.Comment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	comment := gridtypes.Comment{
		ID:     s.nextCommentID(),
		Cell:   coord.ref(),
		Author: author,
		Text:   text,
	}
	s.comments = append(s.comments, comment)
	return comment, nil
}

// ReplyToComment appends a reply to an existing comment thread.
func (s *SheetService) ReplyToComment(commentID, author, text string) (gridtypes.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.comments {
		if s.comments[i].ID == commentID {
			reply := gridtypes.Comment{
				ID:     s.nextCommentID(),
				Cell:   s.comments[i].Cell,
				Author: author,
				Text:   text,
			}
			s.comments[i].Replies = append(s.comments[i].Replies, reply)
			return reply, nil
		}
	}
	return gridtypes.Comment{}, fmt.Errorf("comment %s not found", commentID)
}

// ResolveComment marks a comment thread as resolved.
func (s *SheetService) ResolveComment(commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.comments {
		if s.comments[i].ID == commentID {
			s.comments[i].Resolved = true
			return nil
		}
	}
	return fmt.Errorf("comment %s not found", commentID)
}

// DeleteComment removes a comment thread.
func (s *SheetService) DeleteComment(commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.comments {
		if s.comments[i].ID == commentID {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("comment %s not found", commentID)
}

// Comments returns the comment threads on a cell, or every thread when cell
// is empty.
func (s *SheetService) Comments(cell string) ([]gridtypes.Comment, error) {
	if cell != "" {
		coord, err := parseCellRef(cell)
		if err != nil {
			return nil, err
		}
		cell = coord.ref()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []gridtypes.Comment
	for _, comment := range s.comments {
		if cell == "" || comment.Cell == cell {
			result = append(result, comment)
		}
	}
	return result, nil
}

// ensureCell returns the entry at ref, creating it if absent. Callers must
// hold the write lock.
func (s *SheetService) ensureCell(ref string) *cellEntry {
	entry, ok := s.cells[ref]
	if !ok {
		entry = &cellEntry{}
		s.cells[ref] = entry
	}
	return entry
}

// shiftCells rebuilds the cell map through a coordinate transform. The
// transform returns the new coordinate and whether the cell survives.
// Callers must hold the write lock.
func (s *SheetService) shiftCells(transform func(cellCoord) (cellCoord, bool)) {
	shifted := make(map[string]*cellEntry, len(s.cells))
	for ref, entry := range s.cells {
		coord, err := parseCellRef(ref)
		if err != nil {
			continue
		}
		next, keep := transform(coord)
		if !keep {
			continue
		}
		shifted[next.ref()] = entry
	}
	s.cells = shifted
}

// expandRef expands a cell or range reference into individual cell refs.
func (s *SheetService) expandRef(ref string) ([]string, error) {
	if strings.Contains(ref, ":") {
		topLeft, bottomRight, err := parseRangeRef(ref)
		if err != nil {
			return nil, err
		}
		var refs []string
		for row := topLeft.row; row <= bottomRight.row; row++ {
			for col := topLeft.col; col <= bottomRight.col; col++ {
				refs = append(refs, cellCoord{col: col, row: row}.ref())
			}
		}
		return refs, nil
	}
	coord, err := parseCellRef(ref)
	if err != nil {
		return nil, err
	}
	return []string{coord.ref()}, nil
}

func (s *SheetService) nextCommentID() string {
	if s.testMode {
		s.commentSeq++
		return fmt.Sprintf("comment-%04d", s.commentSeq)
	}
	return uuid.New().String()
}

// stringifyValue renders a stored value the way users typed it: floats
// without a trailing ".0" when integral.
func stringifyValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// compareValues orders two cell values: numbers before mixed comparisons,
// strings lexically, empty cells last. Returns -1, 0, or 1.
func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return 1
	}
	if b == nil {
		return -1
	}
	aNum, aOK := toFloat(a)
	bNum, bOK := toFloat(b)
	if aOK && bOK {
		switch {
		case aNum < bNum:
			return -1
		case aNum > bNum:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(stringifyValue(a), stringifyValue(b))
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// matchesCriteria evaluates one filter condition against a cell value.
func matchesCriteria(value any, criteria gridtypes.FilterCriteria) bool {
	switch criteria.Operator {
	case "not_empty":
		return value != nil && stringifyValue(value) != ""
	case "equals":
		return strings.EqualFold(stringifyValue(value), criteria.Value)
	case "contains":
		return strings.Contains(
			strings.ToLower(stringifyValue(value)), strings.ToLower(criteria.Value))
	case "greater_than":
		n, ok := toFloat(value)
		threshold, err := strconv.ParseFloat(criteria.Value, 64)
		return ok && err == nil && n > threshold
	case "less_than":
		n, ok := toFloat(value)
		threshold, err := strconv.ParseFloat(criteria.Value, 64)
		return ok && err == nil && n < threshold
	default:
		return false
	}
}
