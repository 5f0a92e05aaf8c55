package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tlqtangok/reg-api/pkg/types"
)

var (
	exportOutput   string
	exportEncoding string
	exportBOM      bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole store as a .reg file",
		Long: `The export command renders every key of the store in Windows
Registry Editor format. Only the file and memory backends can be exported.

Example:
  regctl export -o backup.reg
  regctl export --to-encoding UTF-16LE --bom -o for-regedit.reg
  regctl export --to-encoding WINDOWS-1252     # REGEDIT4 header`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport()
		},
	}
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&exportEncoding, "to-encoding", "UTF-8", "UTF-8, UTF-16LE, or WINDOWS-1252")
	cmd.Flags().BoolVar(&exportBOM, "bom", false, "Prefix the output with a byte order mark")
	rootCmd.AddCommand(cmd)
}

type exporter interface {
	Export(types.RegExportOptions) ([]byte, error)
}

func runExport() error {
	sh, err := openStore()
	if err != nil {
		return err
	}
	defer sh.close()

	ex, ok := sh.Store.(exporter)
	if !ok {
		return fmt.Errorf("backend %q cannot be exported", cfg.Backend)
	}
	data, err := ex.Export(types.RegExportOptions{OutputEncoding: exportEncoding, WithBOM: exportBOM})
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	if exportOutput == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	printInfo("Exported to %s\n", exportOutput)
	return nil
}
