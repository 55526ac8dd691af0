// Package main provides the gridshell CLI application entry point.
// gridshell is an interactive shell that interprets plain-English
// spreadsheet commands and executes them against a worksheet.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gridshell/internal/logger"
	"gridshell/internal/output"
	"gridshell/internal/services"
	"gridshell/internal/shell"
	"gridshell/internal/version"
)

var (
	logLevel string
	logFile  string
	testMode bool
	plain    bool
	jsonOut  bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gridshell",
	Short: "gridshell - plain-English spreadsheet commands",
	Long: `gridshell interprets plain-English commands like "set A1 to 100" or
"sort A1:C10 by column B" and executes them against a worksheet.
Destructive commands ask for confirmation before anything changes.`,
	Run: runShell,
}

// shellCmd is the explicit version of the default behavior.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell",
	Long:  `Start the interactive gridshell session.`,
	Run:   runShell,
}

// batchCmd executes a .grid script file non-interactively.
var batchCmd = &cobra.Command{
	Use:   "batch <script.grid>",
	Short: "Execute a .grid script file in batch mode",
	Long: `Execute a .grid script file directly without entering interactive mode.
Each line is processed as if it had been typed at the prompt, so a
destructive command must be followed by a "y" line to confirm it.`,
	Args: cobra.ExactArgs(1),
	Run:  runBatch,
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display the gridshell version, codename, and build details.`,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.GetFormattedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&testMode, "test-mode", false, "Run in deterministic test mode")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "Disable styled output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Emit responses as JSON lines")

	for _, flag := range []string{"log-level", "log-file", "test-mode"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", flag, err)
			os.Exit(1)
		}
	}

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := logger.Configure(logLevel, logFile, testMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

// newPrinter builds the printer the output flags call for.
func newPrinter() *output.Printer {
	switch {
	case jsonOut:
		return output.NewPrinter(output.JSON())
	case plain || testMode:
		return output.NewPrinter(output.PlainText())
	default:
		return output.NewPrinter(output.WithStyles(output.NewTerminalStyleProvider()))
	}
}

// resolveServices fetches the initialized services the shell needs from the
// global registry.
func resolveServices() (*services.AIService, *services.ConfigurationService, *services.AutoCompleteService, error) {
	aiRaw, err := services.GetGlobalRegistry().GetService("ai")
	if err != nil {
		return nil, nil, nil, err
	}
	configRaw, err := services.GetGlobalRegistry().GetService("configuration")
	if err != nil {
		return nil, nil, nil, err
	}
	completeRaw, err := services.GetGlobalRegistry().GetService("autocomplete")
	if err != nil {
		return nil, nil, nil, err
	}
	return aiRaw.(*services.AIService),
		configRaw.(*services.ConfigurationService),
		completeRaw.(*services.AutoCompleteService),
		nil
}

func runShell(_ *cobra.Command, _ []string) {
	logger.Info("Starting gridshell", "version", version.GetVersion())

	if err := shell.InitializeServices(testMode); err != nil {
		logger.Fatal("Failed to initialize services", "error", err)
	}

	ai, config, completer, err := resolveServices()
	if err != nil {
		logger.Fatal("Failed to resolve services", "error", err)
	}

	printer := newPrinter()
	printer.Println(version.GetFormattedVersion())
	printer.Println("Type a command in plain English, 'help' for examples, or 'exit' to quit.")

	handler := shell.NewHandler(ai, printer)
	if err := handler.Run(config.GetString(services.ConfigKeyPrompt), completer); err != nil {
		logger.Fatal("Shell terminated", "error", err)
	}
}

func runBatch(_ *cobra.Command, args []string) {
	scriptPath := args[0]
	logger.Info("Starting gridshell batch mode", "script", scriptPath)

	if err := validateScriptFile(scriptPath); err != nil {
		logger.Fatal("Script validation failed", "error", err)
	}

	if err := shell.InitializeServices(testMode); err != nil {
		logger.Fatal("Failed to initialize services", "error", err)
	}

	ai, _, _, err := resolveServices()
	if err != nil {
		logger.Fatal("Failed to resolve services", "error", err)
	}

	handler := shell.NewHandler(ai, newPrinter())
	if err := executeBatchScript(scriptPath, handler); err != nil {
		logger.Fatal("Script execution failed", "error", err)
	}

	logger.Info("Script executed successfully", "script", scriptPath)
}

func validateScriptFile(scriptPath string) error {
	if _, err := os.Stat(scriptPath); os.IsNotExist(err) {
		return fmt.Errorf("script file does not exist: %s", scriptPath)
	}
	if ext := filepath.Ext(scriptPath); ext != ".grid" {
		return fmt.Errorf("script file must have .grid extension, got: %s", ext)
	}
	return nil
}

// executeBatchScript feeds the script to the handler line by line, stopping
// early if a line asks the shell to exit.
func executeBatchScript(scriptPath string, handler *shell.Handler) error {
	file, err := os.Open(scriptPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if !handler.ProcessInput(scanner.Text()) {
			break
		}
	}
	return scanner.Err()
}
