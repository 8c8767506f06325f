package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iammathew/openfga-dsl/internal/config"
	"github.com/iammathew/openfga-dsl/internal/lsp"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Start the authorization-model Language Server Protocol server",
	Long: `Start a Language Server Protocol server over stdin/stdout, providing
editor integration for authorization-model source files: diagnostics,
hover, completion, document symbols, and semantic tokens.

It is typically started automatically by an editor, not run by hand.`,
	RunE: runLSP,
}

func runLSP(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	server := lsp.NewServer(!cfg.SemanticTokens.Disabled)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return server.Run(ctx)
}
