package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/nativedb/pkg/database"
	"github.com/GriffinCanCode/nativedb/pkg/diag"
	"github.com/GriffinCanCode/nativedb/pkg/layout"
)

var warningsAsErrors bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Parse and validate a source tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := load(cmd.Context())
		if err != nil {
			return err
		}

		all := res.Diagnostics()
		calc := layout.New(res.DB.Structs)
		for _, name := range res.DB.StructNames() {
			calc.Size(name)
		}
		for _, w := range calc.Warnings {
			all.Warnings = append(all.Warnings, diag.Diagnostic{Message: w})
		}

		out := cmd.OutOrStdout()
		printDiagnostics(out, all)
		fmt.Fprintf(out, "%d natives in %d namespaces, %d enums, %d structs: %d errors, %d warnings\n",
			res.DB.NativeCount(), len(res.DB.Namespaces), len(res.DB.Enums), len(res.DB.Structs),
			len(all.Errors), len(all.Warnings))

		if all.HasErrors() {
			return fmt.Errorf("%d files failed to parse", failedFiles(res))
		}
		if warningsAsErrors && len(all.Warnings) > 0 {
			return fmt.Errorf("%d warnings", len(all.Warnings))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&warningsAsErrors, "strict", false, "treat warnings as errors")
}

func printDiagnostics(w io.Writer, all diag.List) {
	all.Each(func(sev diag.Severity, d diag.Diagnostic) {
		fmt.Fprintf(w, "%s: %s\n", sev, d.Error())
	})
}

func failedFiles(res *database.Result) int {
	n := 0
	for i := range res.Files {
		if res.Files[i].HasErrors() {
			n++
		}
	}
	return n
}
