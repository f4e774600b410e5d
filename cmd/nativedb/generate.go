package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/nativedb/pkg/classify"
	"github.com/GriffinCanCode/nativedb/pkg/codegen/golang"
	"github.com/GriffinCanCode/nativedb/pkg/layout"
	"github.com/GriffinCanCode/nativedb/pkg/logger"
)

var (
	outDir    string
	goPackage string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write bindings for every configured target",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("out") {
			cfg.Output = outDir
		}
		if cmd.Flags().Changed("package") {
			cfg.Go.Package = goPackage
		}

		res, err := load(cmd.Context())
		if err != nil {
			return err
		}
		if res.HasErrors() {
			printDiagnostics(cmd.ErrOrStderr(), res.Diagnostics())
			return fmt.Errorf("refusing to generate from a database with errors")
		}

		for _, target := range cfg.Targets {
			// one calculator per target
			calc := layout.New(res.DB.Structs)

			var files map[string]string
			switch target {
			case "go":
				gen := golang.New(golang.Options{
					Package:    cfg.Go.Package,
					Runtime:    cfg.Go.Runtime,
					Classifier: classify.Default(),
				})
				files, err = gen.GenerateWithValidation(res.DB, calc)
			default:
				err = fmt.Errorf("unknown target %q", target)
			}
			if err != nil {
				return fmt.Errorf("target %s: %w", target, err)
			}

			dir := filepath.Join(cfg.Output, target)
			if err := writeFiles(dir, files); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: wrote %d files to %s\n", target, len(files), dir)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&outDir, "out", "o", "out", "output directory; each target writes to a subdirectory")
	generateCmd.Flags().StringVar(&goPackage, "package", "natives", "package name of generated Go code")
}

func writeFiles(dir string, files map[string]string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		logger.Debug("Wrote file", "path", path, "bytes", len(content))
	}
	return nil
}
