package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/nativedb/pkg/export"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump the database as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := load(cmd.Context())
		if err != nil {
			return err
		}
		if res.HasErrors() {
			printDiagnostics(cmd.ErrOrStderr(), res.Diagnostics())
			return fmt.Errorf("refusing to export a database with errors")
		}

		data, err := export.Marshal(res.DB)
		if err != nil {
			return err
		}
		data = append(data, '\n')

		if exportOut == "" || exportOut == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", exportOut, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "exported %d natives to %s\n", res.DB.NativeCount(), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "output file, - for stdout")
}
