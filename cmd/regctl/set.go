package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tlqtangok/reg-api/internal/numtext"
	"github.com/tlqtangok/reg-api/pkg/registry"
)

var setNumber bool

func init() {
	cmd := newSetCmd()
	cmd.Flags().BoolVar(&setNumber, "number", false, "Store the value in canonical number form")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <name> <value>",
		Short: "Store a value",
		Long: `The set command stores text under a value name, creating the key
if it does not exist.

Example:
  regctl set 'Software\MyApp' app_name MyApp
  regctl set 'Software\MyApp' pi 3.141590 --number   # stored as 3.14159`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
}

func runSet(args []string) error {
	keyPath, name, value := args[0], args[1], args[2]

	reg, done, err := openKey(keyPath, true)
	if err != nil {
		return err
	}
	defer done()

	var ok bool
	if setNumber {
		ok, err = writeNumberText(reg, name, value)
		if err != nil {
			return err
		}
	} else {
		ok = reg.WriteString(name, value)
	}
	if !ok {
		return fmt.Errorf("failed to write %q", name)
	}
	printVerbose("Stored %s in %s\n", name, reg.Path())
	return nil
}

// writeNumberText stores value as an int64 when it has no fractional
// part or exponent, and as a float64 otherwise.
func writeNumberText(reg *registry.Registry, name, value string) (bool, error) {
	if !strings.ContainsAny(value, ".eE") {
		if n, ok := numtext.ParseExact[int64](value); ok {
			return registry.WriteNumber(reg, name, n), nil
		}
	} else if f, ok := numtext.ParseExact[float64](value); ok {
		return registry.WriteNumber(reg, name, f), nil
	}
	return false, fmt.Errorf("%q is not a number", value)
}
