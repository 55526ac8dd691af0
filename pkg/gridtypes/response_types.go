package gridtypes

import "time"

// OperationType categorizes an applied spreadsheet mutation in the audit log.
type OperationType string

// Operation types recorded by command handlers.
const (
	OpSetValue     OperationType = "set_value"
	OpSetFormula   OperationType = "set_formula"
	OpSetStyle     OperationType = "set_style"
	OpInsertRow    OperationType = "insert_row"
	OpDeleteRow    OperationType = "delete_row"
	OpInsertColumn OperationType = "insert_column"
	OpDeleteColumn OperationType = "delete_column"
	OpSort         OperationType = "sort"
	OpFilter       OperationType = "filter"
	OpCreateChart  OperationType = "create_chart"
	OpComment      OperationType = "comment"
)

// Operation is one immutable audit record created by a handler after a
// successful mutation. Entries are appended to the session's recent-operation
// log and never modified afterward.
type Operation struct {
	ID        string        `json:"id"`
	Type      OperationType `json:"type"`
	Target    string        `json:"target"`
	Value     any           `json:"value,omitempty"`
	OldValue  any           `json:"oldValue,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// AIResponse is the terminal output of one parse-validate-dispatch cycle.
// It is never partially filled: Success=true comes with a populated Message
// (and Operations for writes); Success=false comes with Error set and an
// empty Operations slice.
type AIResponse struct {
	Success              bool        `json:"success"`
	Message              string      `json:"message"`
	Operations           []Operation `json:"operations"`
	RequiresConfirmation bool        `json:"requiresConfirmation"`
	Error                string      `json:"error,omitempty"`
}

// Message is one conversation-history entry of the session context.
type Message struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}
