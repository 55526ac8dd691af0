package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridshell/pkg/gridtypes"
)

func TestPrinter_PlainSemanticPrefixes(t *testing.T) {
	tests := []struct {
		name  string
		print func(*Printer)
		want  string
	}{
		{"success", func(p *Printer) { p.Success("done") }, "✓ done\n"},
		{"warning", func(p *Printer) { p.Warning("careful") }, "⚠ careful\n"},
		{"error", func(p *Printer) { p.Error("broken") }, "✗ broken\n"},
		{"info", func(p *Printer) { p.Info("note") }, "ℹ note\n"},
		{"confirmation", func(p *Printer) { p.Confirmation("sure?") }, "? sure?\n"},
		{"plain", func(p *Printer) { p.Println("text") }, "text\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printer := NewPrinter(TestMode(), WithWriter(&buf))
			tt.print(printer)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrinter_Printf(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(TestMode(), WithWriter(&buf))

	printer.Printf("%s = %d", "A1", 100)
	assert.Equal(t, "A1 = 100", buf.String())
}

func TestPrinter_Silent(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(TestMode(), WithWriter(&buf), Silent())

	printer.Success("invisible")
	assert.Empty(t, buf.String())
}

func TestPrinter_Prefix(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(TestMode(), WithWriter(&buf), WithPrefix("[grid] "))

	printer.Println("hello")
	assert.Equal(t, "[grid] hello\n", buf.String())
}

func TestPrinter_JSONMode(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(JSON(), WithWriter(&buf))

	printer.Error("broken")

	var line map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["type"])
	assert.Equal(t, "broken", line["message"])
}

func TestPrinter_ResponseSuccessWithOperations(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(TestMode(), WithWriter(&buf))

	printer.Response(gridtypes.AIResponse{
		Success: true,
		Message: "Set A1 to 100",
		Operations: []gridtypes.Operation{
			{ID: "op-00000001", Type: gridtypes.OpSetValue, Target: "A1"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "✓ Set A1 to 100")
	assert.Contains(t, out, "op-00000001 set_value A1")
}

func TestPrinter_ResponseConfirmation(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(TestMode(), WithWriter(&buf))

	printer.Response(gridtypes.AIResponse{
		Success:              true,
		Message:              "This will delete row 5. Confirm to proceed.",
		Operations:           []gridtypes.Operation{},
		RequiresConfirmation: true,
	})

	assert.True(t, strings.HasPrefix(buf.String(), "? "))
}

func TestPrinter_ResponseFailure(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(TestMode(), WithWriter(&buf))

	printer.Response(gridtypes.AIResponse{
		Success: false,
		Message: "Could not understand the command",
		Error:   "Could not understand the command",
	})

	assert.True(t, strings.HasPrefix(buf.String(), "✗ "))
}

func TestPrinter_ResponseJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(JSON(), WithWriter(&buf))

	printer.Response(gridtypes.AIResponse{Success: true, Message: "ok"})

	var decoded gridtypes.AIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.True(t, decoded.Success)
	assert.Equal(t, "ok", decoded.Message)
}

func TestPrinter_IsStylable(t *testing.T) {
	plain := NewPrinter(TestMode())
	assert.False(t, plain.IsStylable())

	styled := NewPrinter(WithStyles(NewTerminalStyleProvider()))
	assert.True(t, styled.IsStylable())
}

func TestHelpMarkdown(t *testing.T) {
	entries := []gridtypes.CommandSuggestion{
		{Command: "set [cell] to [value]", Description: "Write a value to a cell", Example: "set A1 to 100"},
	}

	markdown := helpMarkdown(entries)
	assert.Contains(t, markdown, "# gridshell commands")
	assert.Contains(t, markdown, "`set [cell] to [value]`")
	assert.Contains(t, markdown, "set A1 to 100")
}

func TestHelpRenderer_RenderNeverEmpty(t *testing.T) {
	renderer := NewHelpRenderer()
	out := renderer.Render([]gridtypes.CommandSuggestion{
		{Command: "analyze [range]", Description: "Summarize the data in a range", Example: "analyze A1:C20"},
	})
	assert.Contains(t, out, "analyze")
}
