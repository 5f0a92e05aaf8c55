package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tlqtangok/reg-api/pkg/types"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "import <file.reg>",
		Short: "Apply a .reg file to the store",
		Long: `The import command applies the keys, values, and deletions of a
.reg file. UTF-8, UTF-16LE (with BOM), and REGEDIT4 files are accepted.
Sections without an HKEY prefix land under --root.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args)
		},
	})
}

type importer interface {
	Import([]byte, types.RegParseOptions) error
}

func runImport(args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	root, err := types.ParseRootKey(cfg.Root)
	if err != nil {
		return err
	}

	sh, err := openStore()
	if err != nil {
		return err
	}
	defer sh.close()

	im, ok := sh.Store.(importer)
	if !ok {
		return fmt.Errorf("backend %q cannot import .reg files", cfg.Backend)
	}
	if err := im.Import(data, types.RegParseOptions{DefaultRoot: root}); err != nil {
		return fmt.Errorf("failed to import: %w", err)
	}
	printInfo("Imported %s\n", args[0])
	return nil
}
