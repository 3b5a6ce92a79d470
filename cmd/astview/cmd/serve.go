package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/astview/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve [datei]",
	Short: "Startet die Debug-Seite mit Live-Reload",
	Long: `Startet einen HTTP-Server, der den AST als Baumansicht ausliefert.

Ändert sich die Datei, wird der Baum über eine WebSocket-Verbindung
in allen geöffneten Seiten ersetzt; aufgeklappte Sektionen bleiben offen.

Routen:
  /           HTML-Seite mit Live-Reload
  /fragment   Nur das HTML-Fragment
  /ws         WebSocket für Live-Reload
  /healthz    Health-Report als JSON

Beispiele:
  astview serve ast.json
  astview serve ast.json --addr :9000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen-Adresse (default aus Config, 127.0.0.1:8087)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := serveAddr
	if addr == "" {
		addr = appConfig.ServerAddress()
	}

	srv := server.New(server.Config{
		Addr:            addr,
		Source:          sourcePath(args),
		PollInterval:    appConfig.Server.PollInterval.Duration,
		Title:           appConfig.Render.Title,
		ShutdownTimeout: appConfig.Server.ShutdownTimeout.Duration,
	}, newLogger(os.Stderr))

	fmt.Fprintf(cmd.OutOrStdout(), "astview Debug-Seite: http://%s/\n", addr)
	if err := srv.Start(ctx); err != nil {
		printError("Server-Fehler", err)
		return err
	}
	return nil
}
