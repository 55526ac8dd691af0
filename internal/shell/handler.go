// Package shell provides the interactive shell for gridshell. It wires the
// service layer together, reads lines through readline, routes them to the
// command dispatcher, and drives the confirmation handshake for destructive
// commands.
package shell

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"gridshell/internal/context"
	"gridshell/internal/logger"
	"gridshell/internal/output"
	"gridshell/internal/parser"
	"gridshell/internal/services"
)

// confirmationReplies are the inputs accepted as a yes during the
// confirmation handshake. Anything else cancels the pending command.
var confirmationReplies = map[string]bool{
	"y":       true,
	"yes":     true,
	"confirm": true,
}

// Handler runs the interactive loop. It is stateful in exactly one way: a
// destructive command is parked in pendingCommand until the next input line
// confirms or cancels it.
type Handler struct {
	ai             *services.AIService
	printer        *output.Printer
	help           *output.HelpRenderer
	pendingCommand string
}

// NewHandler creates a shell handler over a dispatcher and a printer.
func NewHandler(ai *services.AIService, printer *output.Printer) *Handler {
	return &Handler{
		ai:      ai,
		printer: printer,
		help:    output.NewHelpRenderer(),
	}
}

// InitializeServices registers and initializes the gridshell service stack:
// configuration first, then the spreadsheet collaborator, the dispatcher
// over it, and autocompletion.
func InitializeServices(testMode bool) error {
	globalCtx := context.GetGlobalContext()
	globalCtx.SetTestMode(testMode)

	registry := services.GetGlobalRegistry()

	if !registry.HasService("configuration") {
		if err := registry.RegisterService(services.NewConfigurationService()); err != nil {
			return err
		}
	}

	sheet := services.NewSheetService()
	sheet.SetTestMode(testMode)
	if !registry.HasService("sheet") {
		if err := registry.RegisterService(sheet); err != nil {
			return err
		}
	}

	if !registry.HasService("ai") {
		if err := registry.RegisterService(services.NewAIService(sheet, globalCtx)); err != nil {
			return err
		}
	}

	if !registry.HasService("autocomplete") {
		if err := registry.RegisterService(services.NewAutoCompleteService()); err != nil {
			return err
		}
	}

	if err := registry.InitializeAll(); err != nil {
		return err
	}

	logger.Debug("Services initialized")
	return nil
}

// ProcessInput handles one line of user input. It returns false when the
// shell should exit.
func (h *Handler) ProcessInput(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return true
	}

	if h.pendingCommand != "" {
		h.resolvePending(line)
		return true
	}

	switch strings.ToLower(line) {
	case "exit", "quit":
		return false
	case "help", "?":
		h.printer.Print(h.help.Render(parser.Suggest("")))
		return true
	}

	sessionCtx := h.ai.SessionContext()
	sessionCtx.AddMessage("user", line)

	response := h.ai.ProcessCommand(line)
	sessionCtx.AddMessage("assistant", response.Message)
	h.printer.Response(response)

	// A gated destructive command produced no operations yet; park it until
	// the next line answers the prompt.
	if response.Success && response.RequiresConfirmation && len(response.Operations) == 0 {
		h.pendingCommand = line
	}
	return true
}

// resolvePending answers the confirmation handshake with the given reply.
func (h *Handler) resolvePending(reply string) {
	command := h.pendingCommand
	h.pendingCommand = ""

	sessionCtx := h.ai.SessionContext()
	sessionCtx.AddMessage("user", reply)

	if !confirmationReplies[strings.ToLower(reply)] {
		sessionCtx.AddMessage("assistant", "Cancelled")
		h.printer.Info("Cancelled")
		return
	}

	response := h.ai.ProcessCommand(command, services.WithConfirmation())
	sessionCtx.AddMessage("assistant", response.Message)
	h.printer.Response(response)
}

// AwaitingConfirmation reports whether a destructive command is parked.
func (h *Handler) AwaitingConfirmation() bool {
	return h.pendingCommand != ""
}

// Run starts the interactive readline loop and blocks until the user exits.
func (h *Handler) Run(prompt string, completer readline.AutoCompleter) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     filepath.Join(os.TempDir(), ".gridshell_history"),
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer func() { _ = rl.Close() }()

	for {
		if h.AwaitingConfirmation() {
			rl.SetPrompt("confirm [y/N]> ")
		} else {
			rl.SetPrompt(prompt)
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if h.AwaitingConfirmation() {
				h.pendingCommand = ""
				h.printer.Info("Cancelled")
			}
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if !h.ProcessInput(line) {
			return nil
		}
	}
}
