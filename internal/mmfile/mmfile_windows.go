//go:build windows

package mmfile

import "os"

// Map reads the whole file. A mapped view would pin the file and block the
// rename that replaces it on the next write.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
