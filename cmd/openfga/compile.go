package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iammathew/openfga-dsl/internal/config"
	"github.com/iammathew/openfga-dsl/internal/fsutil"
	"github.com/iammathew/openfga-dsl/internal/project"
)

var compileOutput string

func init() {
	compileCmd.Flags().StringVar(&compileOutput, "output", "", "write the canonical JSON model here (a directory when the input is a directory)")
}

var compileCmd = &cobra.Command{
	Use:   "compile <input>",
	Short: "Compile an authorization-model source file (or directory of .fga files) to canonical JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		info, err := os.Stat(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		if info.IsDir() {
			return compileDir(args[0], cfg)
		}
		return compileFile(args[0], compileOutput, cfg)
	},
}

func compileDir(dir string, cfg *config.Config) error {
	files, err := fsutil.FindModelFiles(dir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .fga files found under %s", dir)
	}

	failed := 0
	for _, f := range files {
		out := compileOutput
		if out != "" {
			rel, err := filepath.Rel(dir, f)
			if err != nil {
				rel = filepath.Base(f)
			}
			out = filepath.Join(compileOutput, strings.TrimSuffix(rel, filepath.Ext(rel))+".json")
		}
		if err := compileFile(f, out, cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed to compile", failed, len(files))
	}
	return nil
}

func compileFile(inputPath, outputPath string, cfg *config.Config) error {
	src, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	model, reports, ok := compileSource(string(src))
	if !ok {
		printReports(reports, inputPath, string(src))
		return fmt.Errorf("compilation of %s failed with %d error(s)", inputPath, len(reports))
	}

	data, err := project.Marshal(*model)
	if err != nil {
		return fmt.Errorf("projecting %s to JSON: %w", inputPath, err)
	}
	indented, err := indentJSON(data, cfg.Output.Indent)
	if err != nil {
		return fmt.Errorf("formatting JSON for %s: %w", inputPath, err)
	}

	if outputPath == "" {
		fmt.Println(string(indented))
		return nil
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(outputPath, indented, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	fmt.Printf("wrote %s\n", outputPath)
	return nil
}
