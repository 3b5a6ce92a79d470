package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/astview/internal/render"
	"github.com/msto63/astview/internal/source"
)

var (
	renderOutput   string
	renderFragment bool
	renderTitle    string
)

var renderCmd = &cobra.Command{
	Use:   "render [datei]",
	Short: "Rendert den AST als HTML",
	Long: `Rendert den AST als HTML-Baum.

Sequenzen und Knoten werden zu <details>-Sektionen mit einer Tabelle
ihrer Felder, Token, Literale, Variablen und Werte zu Textblättern.

Beispiele:
  astview render ast.json -o ast.html
  astview render ast.yaml --fragment
  parser | astview render -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Ausgabedatei (default: stdout)")
	renderCmd.Flags().BoolVar(&renderFragment, "fragment", false, "Nur das HTML-Fragment ohne Seite ausgeben")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "Seitentitel (default aus Config)")
}

func runRender(cmd *cobra.Command, args []string) error {
	logger := newLogger(os.Stderr).Named("render")

	tree, name, err := loadTree(args, logger)
	if err != nil {
		printError("AST konnte nicht geladen werden", err)
		return err
	}

	out, closeOut, err := openOutput(cmd, renderOutput)
	if err != nil {
		printError("Ausgabe konnte nicht geöffnet werden", err)
		return err
	}
	defer closeOut()

	if renderFragment {
		err = render.RenderHTML(out, tree, logger)
	} else {
		title := renderTitle
		if title == "" {
			title = appConfig.Render.Title
		}
		page := render.Page(title, render.New(logger).Render(tree), render.PageOptions{})
		err = render.WritePage(out, page)
	}
	if err != nil {
		printError("HTML konnte nicht geschrieben werden", err)
		return err
	}

	logger.Debug("Rendered", "source", name, "output", renderOutput, "fragment", renderFragment)
	return nil
}

// openOutput returns the command output for "" and "-", else creates path
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == source.Stdin {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
