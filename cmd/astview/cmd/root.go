package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/astview/foundation/ast"
	"github.com/msto63/astview/internal/source"
	"github.com/msto63/astview/pkg/core/config"
	"github.com/msto63/astview/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool

	appConfig *config.Config
	logFile   *os.File
)

var rootCmd = &cobra.Command{
	Use:   "astview",
	Short: "astview - AST-Baumansicht",
	Long: `astview stellt Syntaxbäume (AST) als aufklappbare Baumansicht dar.

Der AST wird als JSON- oder YAML-Dokument gelesen, wie es ein externer
Parser schreibt. Ohne Datei wird ein eingebautes Beispielprogramm angezeigt.

Ausgaben:
  render   - HTML-Seite oder Fragment mit <details>-Sektionen
  text     - Eingerückter Textbaum (optional farbig)
  tui      - Interaktive Terminal-Ansicht
  serve    - Debug-Seite mit Live-Reload`,
	SilenceUsage:       true,
	PersistentPreRunE:  loadConfig,
	PersistentPostRunE: closeLog,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: ./astview.toml, $"+config.EnvVar+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	cfg, path, err := config.Resolve(cfgFile)
	if err != nil {
		printError("Config konnte nicht geladen werden", err)
		return err
	}
	if verbose {
		cfg.General.LogLevel = "debug"
	}
	appConfig = cfg

	if cfg.General.LogFile != "" {
		f, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			printError("Log-Datei konnte nicht geöffnet werden", err)
			return err
		}
		logFile = f
	}

	newLogger(os.Stderr).Debug("Configuration loaded", "path", path, "command", cmd.Name())
	return nil
}

func closeLog(cmd *cobra.Command, args []string) error {
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}

// newLogger builds the application logger writing to out and the
// configured log file; a nil out logs to the file only
func newLogger(out io.Writer) *logging.Logger {
	cfg := logging.DefaultLoggerConfig("astview")
	if appConfig != nil {
		cfg.Level = appConfig.General.LogLevel
		cfg.Format = appConfig.General.LogFormat
	}
	cfg.Output = out
	if logFile != nil {
		if out == nil {
			cfg.Output = logFile
		} else {
			cfg.AdditionalOutputs = []io.Writer{logFile}
		}
	}
	if cfg.Output == nil {
		return logging.Discard()
	}
	return logging.FromConfig(cfg)
}

// loadTree loads the AST named by args, or the demo tree
func loadTree(args []string, logger *logging.Logger) (interface{}, string, error) {
	if len(args) == 0 {
		return source.Demo(), source.DemoName, nil
	}

	tree, err := source.Load(args[0])
	if err != nil {
		return nil, args[0], err
	}
	for _, verr := range ast.Validate(tree) {
		logger.WarnErr("AST validation", verr)
	}
	return tree, args[0], nil
}

// sourcePath returns the file argument, or "" for the demo tree
func sourcePath(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}
