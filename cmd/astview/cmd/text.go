package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/astview/internal/outline"
)

var textColor bool

var textCmd = &cobra.Command{
	Use:   "text [datei]",
	Short: "Gibt den AST als eingerückten Textbaum aus",
	Long: `Gibt den AST als eingerückten Textbaum aus.

Jede Sektion steht als "label {" mit einer Zeile pro Feld, Blätter
stehen direkt hinter ihrem Schlüssel. Mit --color werden Labels,
Schlüssel und Blätter farbig dargestellt.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runText,
}

func init() {
	rootCmd.AddCommand(textCmd)
	textCmd.Flags().BoolVar(&textColor, "color", false, "Farbige Ausgabe")
}

func runText(cmd *cobra.Command, args []string) error {
	logger := newLogger(os.Stderr).Named("text")

	tree, _, err := loadTree(args, logger)
	if err != nil {
		printError("AST konnte nicht geladen werden", err)
		return err
	}

	opts := outline.TextOptions{}
	if textColor {
		opts.Styles = outline.DefaultStyles()
	}
	if err := outline.Write(cmd.OutOrStdout(), outline.Build(tree), opts); err != nil {
		printError("Text konnte nicht geschrieben werden", err)
		return err
	}
	return nil
}
