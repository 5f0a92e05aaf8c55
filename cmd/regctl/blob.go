package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tlqtangok/reg-api/internal/textcodec"
)

var blobOutput string

func init() {
	blobCmd := &cobra.Command{
		Use:   "blob",
		Short: "Store or fetch binary data as base64 text",
	}

	put := &cobra.Command{
		Use:   "put <path> <name> <file|->",
		Short: "Encode a file (or stdin) and store it",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlobPut(args)
		},
	}

	get := &cobra.Command{
		Use:   "get <path> <name>",
		Short: "Decode a stored blob to stdout or a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlobGet(args)
		},
	}
	get.Flags().StringVarP(&blobOutput, "output", "o", "", "Write to this file instead of stdout")

	blobCmd.AddCommand(put, get)
	rootCmd.AddCommand(blobCmd)
}

func runBlobPut(args []string) error {
	var (
		data []byte
		err  error
	)
	if args[2] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[2])
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	reg, done, err := openKey(args[0], true)
	if err != nil {
		return err
	}
	defer done()

	if !reg.WriteString(args[1], textcodec.Encode(data)) {
		return fmt.Errorf("failed to write %q", args[1])
	}
	printVerbose("Stored %d bytes as %s\n", len(data), args[1])
	return nil
}

func runBlobGet(args []string) error {
	reg, done, err := openKey(args[0], false)
	if err != nil {
		return err
	}
	defer done()

	if !reg.ValueExists(args[1]) {
		return fmt.Errorf("value %q not found in %s", args[1], reg.Path())
	}
	data := textcodec.Decode(reg.ReadString(args[1], ""))

	if blobOutput != "" {
		if err := os.WriteFile(blobOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		printVerbose("Wrote %d bytes to %s\n", len(data), blobOutput)
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}
