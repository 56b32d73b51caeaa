package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesync"
	"github.com/SeamusWaldron/cubesync/internal/logger"
	"github.com/SeamusWaldron/cubesync/internal/server"
	"github.com/SeamusWaldron/cubesync/internal/storage"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the active session over websocket",
	Long: `Serve the active session to websocket clients on /ws. Every client sees
the same cube: moves, scans and solves from any client are broadcast to
all of them and saved to the database.

Prometheus metrics are served on /metrics and a health check on /healthz.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: server.address from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace(false)
	if err != nil {
		return err
	}
	defer w.Close()

	if w.session == nil {
		if err := w.create("serve"); err != nil {
			return err
		}
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Address
	}

	opts := []server.Option{
		server.WithLogger(logger.Log),
		server.WithPersist(func(snap cubesync.Snapshot) error {
			return storage.SaveSnapshot(w.db, w.sessionID, snap)
		}),
	}
	if cfg.Oracle.Timeout > 0 {
		opts = append(opts, server.WithSolveTimeout(cfg.Oracle.Timeout))
	}
	srv := server.New(w.session, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving session %s on %s\n", w.sessionID, addr)
	return srv.ListenAndServe(ctx, addr)
}
