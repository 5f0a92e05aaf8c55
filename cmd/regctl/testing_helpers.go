package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// useTempStore points the CLI at a fresh .reg file and resets global flags.
func useTempStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.reg")
	cfg = config{Backend: backendFile, File: path, Root: "HKCU", Encoding: "UTF-8"}
	verbose, quiet, jsonOut = false, false, false
	getNumber, getDefault, setNumber, valuesShowData = false, "", false, false
	blobOutput, exportOutput, exportEncoding, exportBOM = "", "", "UTF-8", false
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	return string(<-done), fnErr
}
