package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information — set at build time via -ldflags.
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "openfga",
		Short: "Authorization-model DSL compiler and language server",
		Long: `openfga compiles authorization-model source files into the
canonical JSON schema an evaluator consumes, and can run as a Language
Server Protocol server for editor integration.`,
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(lspCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
