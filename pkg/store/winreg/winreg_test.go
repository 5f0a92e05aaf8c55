package winreg

import (
	"fmt"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlqtangok/reg-api/internal/format"
	"github.com/tlqtangok/reg-api/pkg/types"
)

func TestOpen_Platform(t *testing.T) {
	s, err := Open(nil)
	if runtime.GOOS != "windows" {
		require.ErrorIs(t, err, types.ErrUnsupported)
		assert.Nil(t, s)
		return
	}
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestStore_RoundTrip(t *testing.T) {
	if runtime.GOOS != "windows" {
		t.Skip("native registry requires Windows")
	}
	s, err := Open(nil)
	require.NoError(t, err)

	path := fmt.Sprintf(`Software\reg-api-test-%d`, os.Getpid())
	k, existing, err := s.CreateKey(types.CurrentUser, path, types.AccessReadWrite)
	require.NoError(t, err)
	assert.False(t, existing)
	defer k.Close()

	require.NoError(t, k.SetValue("s", types.REG_SZ, format.EncodeSZ("hello")))

	n, typ, err := k.GetValue("s", nil)
	require.NoError(t, err)
	assert.Equal(t, types.REG_SZ, typ)

	short := make([]byte, 1)
	_, _, err = k.GetValue("s", short)
	assert.ErrorIs(t, err, types.ErrShortBuffer)

	buf := make([]byte, n)
	_, _, err = k.GetValue("s", buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", format.DecodeSZ(buf))

	names, err := k.ValueNames()
	require.NoError(t, err)
	assert.Contains(t, names, "s")

	require.NoError(t, k.DeleteValue("s"))
	_, _, err = k.GetValue("s", nil)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
