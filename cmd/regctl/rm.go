package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:     "rm <path> <name>",
		Aliases: []string{"delete"},
		Short:   "Delete a value",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRm(args)
		},
	})
}

func runRm(args []string) error {
	reg, done, err := openKey(args[0], false)
	if err != nil {
		return err
	}
	defer done()

	if !reg.DeleteValue(args[1]) {
		return fmt.Errorf("value %q not found in %s", args[1], reg.Path())
	}
	printVerbose("Deleted %s from %s\n", args[1], reg.Path())
	return nil
}
