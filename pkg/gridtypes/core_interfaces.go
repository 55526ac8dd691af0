package gridtypes

// CellData is the collaborator's answer for a single cell read.
type CellData struct {
	Value   any    `json:"value"`
	Formula string `json:"formula,omitempty"`
}

// RangeData is the collaborator's answer for a range read. Formulas is nil
// when the range contains none; when present it is shaped exactly like
// Values with "" for formula-free cells.
type RangeData struct {
	Values   [][]any    `json:"values"`
	Formulas [][]string `json:"formulas,omitempty"`
}

// FindMatch locates one occurrence of a searched text.
type FindMatch struct {
	Cell   string `json:"cell"`
	Value  string `json:"value"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
}

// FindOptions narrows a FindAll search.
type FindOptions struct {
	// Range restricts the search to a two-corner reference; empty searches
	// the whole worksheet.
	Range string `json:"range,omitempty"`
	// MatchCase requires exact casing; default is case-insensitive.
	MatchCase bool `json:"matchCase,omitempty"`
}

// WorksheetMetadata summarizes the active worksheet for analyze_data and
// diagnostics.
type WorksheetMetadata struct {
	Name        string   `json:"name"`
	RowCount    int      `json:"rowCount"`
	ColumnCount int      `json:"columnCount"`
	HasFormulas bool     `json:"hasFormulas"`
	DataRanges  []string `json:"dataRanges"`
}

// Sheet is the spreadsheet collaborator consumed by the command dispatcher.
// Implementations may resolve in-process or suspend on a remote transport;
// each dispatcher handler issues exactly one Sheet call per command so the
// engine never holds partial state across collaborator failures (find_replace
// excepted, which loops over FindAll matches and commits each replacement
// independently).
type Sheet interface {
	GetCell(ref string) (CellData, error)
	SetCell(ref string, value any) error
	GetRange(ref string) (RangeData, error)
	SetRange(ref string, values [][]any) error
	SetFormula(ref string, formula string) error
	ApplyFormat(ref string, format CellFormat) error
	FindAll(text string, opts FindOptions) ([]FindMatch, error)
	SortRange(ref string, opts SortOptions) error
	FilterRange(ref string, criteria FilterCriteria) (RangeData, error)
	InsertRow(row int) error
	DeleteRow(row int) error
	InsertColumn(column int) error
	DeleteColumn(column int) error
	CreateChart(def ChartDefinition) error
	Metadata() (WorksheetMetadata, error)
}

// CommentStore is the collaborator capability backing the comment intents.
// The in-memory sheet implements it alongside Sheet; remote deployments may
// not, in which case comment commands fail at dispatch with a collaborator
// error.
type CommentStore interface {
	AddComment(cell, author, text string) (Comment, error)
	ReplyToComment(commentID, author, text string) (Comment, error)
	ResolveComment(commentID string) error
	DeleteComment(commentID string) error
	Comments(cell string) ([]Comment, error)
}

// Service defines the interface for gridshell services. Services are
// registered at startup and initialized before the shell accepts input.
type Service interface {
	Name() string
	Initialize() error
}

// ServiceRegistry manages registration and retrieval of services.
type ServiceRegistry interface {
	GetService(name string) (Service, error)
	RegisterService(service Service) error
}
