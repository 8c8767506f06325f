package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iammathew/openfga-dsl/internal/config"
	"github.com/iammathew/openfga-dsl/internal/project"
)

// showCmd reads an existing canonical JSON model and pretty-prints it,
// round-tripping through project.Unmarshal/Marshal to prove the
// lossy-but-defined projection is reversible on real input rather than
// just documented.
var showCmd = &cobra.Command{
	Use:   "show <model.json>",
	Short: "Pretty-print an existing canonical JSON authorization model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		model, err := project.Unmarshal(data)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}

		reprojected, err := project.Marshal(model)
		if err != nil {
			return fmt.Errorf("re-projecting %s: %w", args[0], err)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		indented, err := indentJSON(reprojected, cfg.Output.Indent)
		if err != nil {
			return fmt.Errorf("formatting JSON: %w", err)
		}

		fmt.Println(string(indented))
		return nil
	},
}
