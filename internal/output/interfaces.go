// Package output provides a unified console output system for gridshell.
// It uses dependency injection to support optional styling while keeping the
// package free of service dependencies.
package output

// StyleProvider is the interface styling backends implement to provide
// styled text rendering. The output package depends only on this interface,
// not on concrete styling libraries.
type StyleProvider interface {
	// GetStyle returns a TextStyle for the given semantic type.
	GetStyle(semantic string) TextStyle

	// IsAvailable returns true if the provider is ready to provide styles,
	// letting the printer gracefully fall back to plain text.
	IsAvailable() bool
}

// TextStyle represents the capability to render text with styling.
// It is implemented by lipgloss.Style and by the plain fallback styles.
type TextStyle interface {
	Render(text string) string
}

// Mode defines the output modes the printer can operate in.
type Mode int

const (
	// ModeAuto detects the best output mode from the environment.
	ModeAuto Mode = iota

	// ModeStyled forces styled output.
	ModeStyled

	// ModePlain forces plain text output.
	ModePlain

	// ModeJSON outputs structured JSON for machine consumption.
	ModeJSON
)

// SemanticType defines the semantic meaning of output for consistent styling.
type SemanticType string

const (
	// SemanticPlain represents plain text without any semantic meaning.
	SemanticPlain SemanticType = "plain"
	// SemanticInfo represents informational text.
	SemanticInfo SemanticType = "info"
	// SemanticSuccess represents success or completion text.
	SemanticSuccess SemanticType = "success"
	// SemanticWarning represents warning text.
	SemanticWarning SemanticType = "warning"
	// SemanticError represents error text.
	SemanticError SemanticType = "error"
	// SemanticConfirmation represents a pending destructive-command prompt.
	SemanticConfirmation SemanticType = "confirmation"
	// SemanticOperation represents one recorded spreadsheet operation.
	SemanticOperation SemanticType = "operation"
)
