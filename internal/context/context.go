// Package context provides session state management for gridshell.
// It maintains the live selection, the bounded recent-operation log, and the
// bounded conversation history shared between the shell and the engine.
package context

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"gridshell/pkg/gridtypes"
)

// Bounds for the append-only session logs. When a log exceeds its bound the
// oldest entries are dropped from the head.
const (
	MaxRecentOperations   = 10
	MaxConversationLength = 20
)

// GridContext holds the mutable per-session state the engine reads to
// resolve deictic references ("this", "selected") and appends audit records
// to. The engine itself stays stateless: the context is passed in by the
// owning caller and mutated only between commands, never concurrently.
type GridContext struct {
	sessionID        string
	currentWorkbook  string
	currentWorksheet string
	currentSelection string
	recentOperations []gridtypes.Operation
	history          []gridtypes.Message
	testMode         bool
}

// ContextPatch is a partial update merged into a GridContext. Nil or empty
// fields leave the existing value untouched, except Selection which may be
// cleared explicitly via ClearSelection.
type ContextPatch struct {
	Workbook       string
	Worksheet      string
	Selection      string
	ClearSelection bool
}

// New creates a GridContext with a fresh session ID and empty logs.
func New() *GridContext {
	ctx := &GridContext{
		recentOperations: make([]gridtypes.Operation, 0, MaxRecentOperations),
		history:          make([]gridtypes.Message, 0, MaxConversationLength),
		currentWorksheet: "Sheet1",
	}
	ctx.sessionID = ctx.generateSessionID()
	return ctx
}

// generateSessionID creates a session ID, deterministic in test mode.
func (ctx *GridContext) generateSessionID() string {
	if ctx.testMode {
		return "session-00000000-0000-0000-0000-000000000000"
	}
	return fmt.Sprintf("session-%s", uuid.New().String())
}

// SetTestMode switches the context to deterministic behavior for tests and
// regenerates the session ID accordingly.
func (ctx *GridContext) SetTestMode(testMode bool) {
	ctx.testMode = testMode
	ctx.sessionID = ctx.generateSessionID()
}

// SessionID returns the session identifier.
func (ctx *GridContext) SessionID() string {
	return ctx.sessionID
}

// CurrentWorkbook returns the active workbook name, possibly empty.
func (ctx *GridContext) CurrentWorkbook() string {
	return ctx.currentWorkbook
}

// CurrentWorksheet returns the active worksheet name.
func (ctx *GridContext) CurrentWorksheet() string {
	return ctx.currentWorksheet
}

// CurrentSelection returns the live selection reference ("A1" or "A1:B10"),
// or "" when nothing is selected.
func (ctx *GridContext) CurrentSelection() string {
	return ctx.currentSelection
}

// SetSelection updates the live selection reference.
func (ctx *GridContext) SetSelection(ref string) {
	ctx.currentSelection = ref
}

// UpdateContext merges a partial update into the context. Only non-empty
// patch fields are applied.
func (ctx *GridContext) UpdateContext(patch ContextPatch) {
	if patch.Workbook != "" {
		ctx.currentWorkbook = patch.Workbook
	}
	if patch.Worksheet != "" {
		ctx.currentWorksheet = patch.Worksheet
	}
	if patch.ClearSelection {
		ctx.currentSelection = ""
	} else if patch.Selection != "" {
		ctx.currentSelection = patch.Selection
	}
}

// RecordOperation appends an immutable audit record, truncating the log at
// the head when it exceeds MaxRecentOperations.
func (ctx *GridContext) RecordOperation(op gridtypes.Operation) {
	ctx.recentOperations = append(ctx.recentOperations, op)
	if len(ctx.recentOperations) > MaxRecentOperations {
		ctx.recentOperations = ctx.recentOperations[len(ctx.recentOperations)-MaxRecentOperations:]
	}
}

// RecentOperations returns a copy of the bounded operation log, oldest
// first.
func (ctx *GridContext) RecentOperations() []gridtypes.Operation {
	ops := make([]gridtypes.Operation, len(ctx.recentOperations))
	copy(ops, ctx.recentOperations)
	return ops
}

// AddMessage appends one conversation entry, truncating at the head when the
// history exceeds MaxConversationLength.
func (ctx *GridContext) AddMessage(role, content string) {
	msg := gridtypes.Message{Role: role, Content: content, Time: ctx.now()}
	ctx.history = append(ctx.history, msg)
	if len(ctx.history) > MaxConversationLength {
		ctx.history = ctx.history[len(ctx.history)-MaxConversationLength:]
	}
}

// ConversationHistory returns a copy of the bounded message history, oldest
// first.
func (ctx *GridContext) ConversationHistory() []gridtypes.Message {
	msgs := make([]gridtypes.Message, len(ctx.history))
	copy(msgs, ctx.history)
	return msgs
}

func (ctx *GridContext) now() time.Time {
	if ctx.testMode {
		return time.Unix(1609459200, 0).UTC()
	}
	return time.Now()
}

// NewOperation builds an audit record with a fresh ID and timestamp. The
// record is immutable once created.
func (ctx *GridContext) NewOperation(opType gridtypes.OperationType, target string, value, oldValue any) gridtypes.Operation {
	id := uuid.New().String()
	if ctx.testMode {
		id = fmt.Sprintf("op-%08d", len(ctx.recentOperations)+1)
	}
	return gridtypes.Operation{
		ID:        id,
		Type:      opType,
		Target:    target,
		Value:     value,
		OldValue:  oldValue,
		Timestamp: ctx.now(),
	}
}
