package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tlqtangok/reg-api/internal/numtext"
	"github.com/tlqtangok/reg-api/pkg/registry"
	"github.com/tlqtangok/reg-api/pkg/types"
)

var (
	getNumber  bool
	getDefault string
)

func init() {
	cmd := newGetCmd()
	cmd.Flags().BoolVar(&getNumber, "number", false, "Parse the value as a number")
	cmd.Flags().StringVar(&getDefault, "default", "", "Print this instead of failing when the value is absent")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <path> <name>",
		Short: "Print a value",
		Long: `The get command prints the text stored under a value name.

Example:
  regctl get 'Software\MyApp' app_name
  regctl get 'HKLM\Software\MyApp' version --number
  regctl get 'Software\MyApp' missing --default none`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args, cmd.Flags().Changed("default"))
		},
	}
}

func runGet(args []string, haveDefault bool) error {
	keyPath, name := args[0], args[1]

	path := keyDisplayPath(keyPath)
	reg, done, err := openKey(keyPath, false)
	switch {
	case errors.Is(err, types.ErrNotFound) && haveDefault:
	case err != nil:
		return err
	default:
		defer done()
	}

	var value string
	switch {
	case reg != nil && reg.ValueExists(name) && getNumber:
		value = numtext.Format(registry.ReadNumber(reg, name, 0.0))
	case reg != nil && reg.ValueExists(name):
		value = reg.ReadString(name, "")
	case haveDefault:
		value = getDefault
	default:
		return fmt.Errorf("value %q not found in %s", name, path)
	}

	if jsonOut {
		return printJSON(map[string]string{"path": path, "name": name, "value": value})
	}
	printInfo("%s\n", value)
	return nil
}
