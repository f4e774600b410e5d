package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/nativedb/pkg/layout"
)

var layoutCmd = &cobra.Command{
	Use:   "layout [struct...]",
	Short: "Print computed struct layouts",
	Long:  "Print offset, size and alignment of every field. With no arguments every struct is printed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := load(cmd.Context())
		if err != nil {
			return err
		}
		db := res.DB

		names := args
		if len(names) == 0 {
			names = db.StructNames()
		}

		calc := layout.New(db.Structs)
		out := cmd.OutOrStdout()
		for _, name := range names {
			def, ok := db.Structs[name]
			if !ok {
				return fmt.Errorf("unknown struct %s", name)
			}
			fields, total := calc.Layout(def)
			fmt.Fprintf(out, "struct %s: %d bytes\n", def.Name, total)
			fmt.Fprintf(out, "  %6s %6s %6s  %s\n", "offset", "size", "align", "field")
			for _, f := range fields {
				fmt.Fprintf(out, "  %6d %6d %6d  %s %s\n", f.Offset, f.Size, f.Alignment, f.Field.Type, f.Field.Name)
			}
			fmt.Fprintln(out)
		}
		for _, w := range calc.Warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
		return nil
	},
}
