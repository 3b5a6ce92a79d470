package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/astview/internal/tui/treeview"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [datei]",
	Short: "Startet die interaktive Baumansicht",
	Long: `Startet die interaktive Baumansicht im Terminal.

Nur die Wurzel ist anfangs aufgeklappt. Eine Datei wird bei Änderungen
automatisch neu geladen.

Tastenkuerzel:
  ↑/↓, k/j        Cursor bewegen
  Enter / Space   Sektion auf-/zuklappen
  →/l             Sektion aufklappen
  ←/h             Sektion zuklappen oder zum Elternknoten springen
  e / c           Alle auf-/zuklappen
  r               Neu laden
  g / G           Zum Anfang / Ende springen
  q / Ctrl+C      Beenden`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// stderr belongs to the terminal UI; log to the configured file only
	cfg := treeview.Config{
		Source:       sourcePath(args),
		Title:        appConfig.Render.Title,
		PollInterval: appConfig.Server.PollInterval.Duration,
		Color:        appConfig.ColorEnabled(),
		Logger:       newLogger(nil),
	}

	if err := treeview.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "TUI Fehler: %v\n", err)
		return err
	}
	return nil
}
