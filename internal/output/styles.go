package output

import (
	"github.com/charmbracelet/lipgloss"
)

// PlainTextStyle implements TextStyle for plain text output. Semantic
// meaning survives as a short prefix so piped output stays readable.
type PlainTextStyle struct {
	prefix string
}

// NewPlainTextStyle creates a new plain text style with an optional prefix.
func NewPlainTextStyle(prefix string) *PlainTextStyle {
	return &PlainTextStyle{prefix: prefix}
}

// Render implements TextStyle.Render for plain text output.
func (p *PlainTextStyle) Render(text string) string {
	if p.prefix != "" {
		return p.prefix + text
	}
	return text
}

// PlainStyleProvider implements StyleProvider for plain text output. It is
// the fallback when no styled provider is configured or when plain mode is
// forced.
type PlainStyleProvider struct {
	available bool
}

// NewPlainStyleProvider creates a new plain style provider.
func NewPlainStyleProvider() *PlainStyleProvider {
	return &PlainStyleProvider{available: true}
}

// GetStyle implements StyleProvider.GetStyle with semantic prefixes.
func (p *PlainStyleProvider) GetStyle(semantic string) TextStyle {
	switch semantic {
	case "success":
		return NewPlainTextStyle("✓ ")
	case "warning":
		return NewPlainTextStyle("⚠ ")
	case "error":
		return NewPlainTextStyle("✗ ")
	case "info":
		return NewPlainTextStyle("ℹ ")
	case "confirmation":
		return NewPlainTextStyle("? ")
	case "operation":
		return NewPlainTextStyle("  · ")
	default:
		return NewPlainTextStyle("")
	}
}

// IsAvailable implements StyleProvider.IsAvailable.
func (p *PlainStyleProvider) IsAvailable() bool {
	return p.available
}

// lipglossTextStyle adapts a lipgloss.Style to the TextStyle interface.
type lipglossTextStyle struct {
	style lipgloss.Style
}

// Render implements TextStyle.Render.
func (l lipglossTextStyle) Render(text string) string {
	return l.style.Render(text)
}

// TerminalStyleProvider implements StyleProvider with lipgloss colors for
// interactive terminals.
type TerminalStyleProvider struct {
	styles map[string]lipgloss.Style
}

// NewTerminalStyleProvider creates a lipgloss-backed style provider with the
// default gridshell palette.
func NewTerminalStyleProvider() *TerminalStyleProvider {
	return &TerminalStyleProvider{
		styles: map[string]lipgloss.Style{
			"success":      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			"warning":      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			"error":        lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			"info":         lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			"confirmation": lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true),
			"operation":    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).PaddingLeft(2),
		},
	}
}

// GetStyle implements StyleProvider.GetStyle.
func (t *TerminalStyleProvider) GetStyle(semantic string) TextStyle {
	if style, ok := t.styles[semantic]; ok {
		return lipglossTextStyle{style: style}
	}
	return lipglossTextStyle{style: lipgloss.NewStyle()}
}

// IsAvailable implements StyleProvider.IsAvailable.
func (t *TerminalStyleProvider) IsAvailable() bool {
	return true
}
