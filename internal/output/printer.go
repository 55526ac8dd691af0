package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gridshell/pkg/gridtypes"
)

// Printer is the main output handler supporting plain, styled, and JSON
// output. Styling is injected through a StyleProvider so the printer carries
// no service dependencies.
type Printer struct {
	styleProvider StyleProvider
	writer        io.Writer
	mode          Mode
	forcePlain    bool
	testMode      bool
	silent        bool
	prefix        string

	mu sync.Mutex
}

// NewPrinter creates a new Printer with the given options. By default it
// writes to os.Stdout with automatic mode detection.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer: os.Stdout,
		mode:   ModeAuto,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Print outputs text without any semantic styling.
func (p *Printer) Print(text string) {
	p.output(SemanticPlain, text, false)
}

// Printf outputs formatted text without any semantic styling.
func (p *Printer) Printf(format string, args ...interface{}) {
	p.output(SemanticPlain, fmt.Sprintf(format, args...), false)
}

// Println outputs text with a newline without any semantic styling.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text, true)
}

// Info outputs informational text with info styling.
func (p *Printer) Info(text string) {
	p.output(SemanticInfo, text, true)
}

// Success outputs success text with success styling.
func (p *Printer) Success(text string) {
	p.output(SemanticSuccess, text, true)
}

// Warning outputs warning text with warning styling.
func (p *Printer) Warning(text string) {
	p.output(SemanticWarning, text, true)
}

// Error outputs error text with error styling.
func (p *Printer) Error(text string) {
	p.output(SemanticError, text, true)
}

// Confirmation outputs a pending destructive-command prompt.
func (p *Printer) Confirmation(text string) {
	p.output(SemanticConfirmation, text, true)
}

// Operation outputs one recorded spreadsheet operation.
func (p *Printer) Operation(text string) {
	p.output(SemanticOperation, text, true)
}

// Response renders a full dispatcher response: the message with the styling
// its outcome calls for, followed by one line per recorded operation.
func (p *Printer) Response(response gridtypes.AIResponse) {
	if p.mode == ModeJSON {
		p.mu.Lock()
		defer p.mu.Unlock()
		encoded, err := json.Marshal(response)
		if err != nil {
			return
		}
		_, _ = fmt.Fprintln(p.writer, string(encoded))
		return
	}

	switch {
	case !response.Success:
		p.Error(response.Message)
	case response.RequiresConfirmation && len(response.Operations) == 0:
		p.Confirmation(response.Message)
	default:
		p.Success(response.Message)
	}

	for _, op := range response.Operations {
		p.Operation(fmt.Sprintf("%s %s %s", op.ID, op.Type, op.Target))
	}
}

// output is the core method every public print path funnels through.
func (p *Printer) output(semantic SemanticType, text string, addNewline bool) {
	if p.silent {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var finalText string
	switch p.mode {
	case ModeJSON:
		finalText = p.renderJSON(semantic, text)
	case ModePlain, ModeAuto:
		finalText = p.renderText(semantic, text, addNewline)
	case ModeStyled:
		finalText = p.renderStyled(semantic, text, addNewline)
	}

	if p.prefix != "" {
		finalText = p.prefix + finalText
	}

	_, _ = fmt.Fprint(p.writer, finalText)
}

// renderText renders text in plain or auto mode.
func (p *Printer) renderText(semantic SemanticType, text string, addNewline bool) string {
	var result string
	if !p.forcePlain && p.styleProvider != nil && p.styleProvider.IsAvailable() {
		result = p.styleProvider.GetStyle(string(semantic)).Render(text)
	} else {
		result = NewPlainStyleProvider().GetStyle(string(semantic)).Render(text)
	}
	if addNewline && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	return result
}

// renderStyled renders text with forced styling, falling back to plain when
// no provider is available.
func (p *Printer) renderStyled(semantic SemanticType, text string, addNewline bool) string {
	if p.styleProvider != nil && p.styleProvider.IsAvailable() {
		result := p.styleProvider.GetStyle(string(semantic)).Render(text)
		if addNewline && !strings.HasSuffix(result, "\n") {
			result += "\n"
		}
		return result
	}
	return p.renderText(semantic, text, addNewline)
}

// renderJSON renders one output line as structured JSON.
func (p *Printer) renderJSON(semantic SemanticType, text string) string {
	line := map[string]interface{}{
		"type":    semantic,
		"message": text,
	}
	encoded, err := json.Marshal(line)
	if err != nil {
		return text + "\n"
	}
	return string(encoded) + "\n"
}

// SetWriter changes the output writer. Useful for tests and redirection.
func (p *Printer) SetWriter(writer io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writer = writer
}

// IsStylable returns true if the printer can apply styles.
func (p *Printer) IsStylable() bool {
	return !p.forcePlain && p.styleProvider != nil && p.styleProvider.IsAvailable()
}
