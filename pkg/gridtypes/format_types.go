package gridtypes

// CellFormat is the structural formatting map applied by format_cells.
// Only the fields a command mentioned are set; nil pointers mean "leave
// untouched" so formats can be layered.
type CellFormat struct {
	NumberFormat string `json:"numberFormat,omitempty"`
	Bold         *bool  `json:"bold,omitempty"`
	Italic       *bool  `json:"italic,omitempty"`
	FontColor    string `json:"fontColor,omitempty"`
	Background   string `json:"background,omitempty"`
	FontSize     int    `json:"fontSize,omitempty"`
}

// SortOptions configures sort_data. Column is a 0-based index into the
// sorted range, unlike the 1-based row numbers used in cell references.
type SortOptions struct {
	Column    int  `json:"column"`
	Ascending bool `json:"ascending"`
}

// FilterCriteria is the filter specification for filter_data. Operator is
// one of "equals", "contains", "greater_than", "less_than", "not_empty".
type FilterCriteria struct {
	Column   int    `json:"column"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// Comment is one cell comment, optionally threaded with replies.
type Comment struct {
	ID       string    `json:"id"`
	Cell     string    `json:"cell"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	Resolved bool      `json:"resolved"`
	Replies  []Comment `json:"replies,omitempty"`
}

// ChartDefinition records a chart created over a data range. Rendering is
// out of scope for the engine; the definition is the stored artifact.
type ChartDefinition struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	DataRange string `json:"dataRange"`
	Title     string `json:"title,omitempty"`
}
