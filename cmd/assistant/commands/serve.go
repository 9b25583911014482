// ABOUTME: Serve command running the HTTP API server
// ABOUTME: Blocks until interrupted, then shuts down gracefully
package commands

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var serveAddr string

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server

Serves the document ingestion and question answering endpoints.
Listens on LISTEN_ADDR unless overridden with --addr.`,
		RunE: runServe,
		Example: `  # Start the server on the configured address
  assistant serve

  # Start on a specific address
  assistant serve --addr 0.0.0.0:9000`,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides LISTEN_ADDR)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	p, err := newPipeline()
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = p.cfg.ListenAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Printf("Assistant API listening on %s", addr)
	}

	return p.newServer().Run(ctx, addr)
}
