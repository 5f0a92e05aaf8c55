package writer

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWriter_CreatesAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.reg")
	w := &FileWriter{Path: path, FullSync: true}

	require.NoError(t, w.WriteRegistry([]byte("first")))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))

	require.NoError(t, w.WriteRegistry([]byte("second")))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileWriter_Perm(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	path := filepath.Join(t.TempDir(), "store.reg")
	w := &FileWriter{Path: path, Perm: 0o640}
	require.NoError(t, w.WriteRegistry([]byte("x")))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestFileWriter_MissingDir(t *testing.T) {
	w := &FileWriter{Path: filepath.Join(t.TempDir(), "nope", "store.reg")}
	assert.Error(t, w.WriteRegistry([]byte("x")))
}

func TestMemWriter(t *testing.T) {
	var w MemWriter
	require.NoError(t, w.WriteRegistry([]byte("abc")))
	require.NoError(t, w.WriteRegistry([]byte("de")))
	assert.Equal(t, []byte("de"), w.Bytes())
	assert.Equal(t, 2, w.Writes())

	boom := errors.New("boom")
	w.Err = boom
	assert.ErrorIs(t, w.WriteRegistry([]byte("zz")), boom)
	assert.Equal(t, []byte("de"), w.Bytes())
}
