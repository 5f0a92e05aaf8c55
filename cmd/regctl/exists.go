package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tlqtangok/reg-api/pkg/types"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "exists <path> <name>",
		Short: "Report whether a value exists",
		Long: `The exists command prints true or false. A missing key counts as a
missing value and is not created.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExists(args)
		},
	})
}

func runExists(args []string) error {
	path := keyDisplayPath(args[0])
	found := false
	reg, done, err := openKey(args[0], false)
	switch {
	case errors.Is(err, types.ErrNotFound):
	case err != nil:
		return err
	default:
		defer done()
		found = reg.ValueExists(args[1])
	}

	if jsonOut {
		return printJSON(map[string]any{"path": path, "name": args[1], "exists": found})
	}
	printInfo("%t\n", found)
	return nil
}
