package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var valuesShowData bool

func init() {
	cmd := &cobra.Command{
		Use:   "values <path>",
		Short: "List the values of a key",
		Long: `The values command lists value names in a key, sorted
case-insensitively.

Example:
  regctl values 'Software\MyApp'
  regctl values 'Software\MyApp' --data --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValues(args)
		},
	}
	cmd.Flags().BoolVar(&valuesShowData, "data", false, "Show value data")
	rootCmd.AddCommand(cmd)
}

type valueEntry struct {
	Name string `json:"name"`
	Data string `json:"data,omitempty"`
}

func runValues(args []string) error {
	reg, done, err := openKey(args[0], false)
	if err != nil {
		return err
	}
	defer done()

	names, err := reg.ValueNames()
	if err != nil {
		return fmt.Errorf("failed to list values: %w", err)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	entries := make([]valueEntry, 0, len(names))
	for _, n := range names {
		e := valueEntry{Name: n}
		if valuesShowData {
			e.Data = reg.ReadString(n, "")
		}
		entries = append(entries, e)
	}

	if jsonOut {
		return printJSON(entries)
	}
	for _, e := range entries {
		display := e.Name
		if display == "" {
			display = "(Default)"
		}
		if valuesShowData {
			printInfo("%s = %s\n", display, e.Data)
		} else {
			printInfo("%s\n", display)
		}
	}
	return nil
}
