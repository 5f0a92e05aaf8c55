package registry

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlqtangok/reg-api/internal/format"
	"github.com/tlqtangok/reg-api/pkg/store/memory"
	"github.com/tlqtangok/reg-api/pkg/types"
)

func newTestRegistry(t *testing.T, opts *Options) (*Registry, *memory.Store) {
	t.Helper()
	s := memory.New()
	r := New(s, opts)
	require.True(t, r.ChangeRoot(`Software\RegAPI\Test`))
	t.Cleanup(func() { r.Close() })
	return r, s
}

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestChangeRoot_CreatesThenReopens(t *testing.T) {
	s := memory.New()
	r := New(s, nil)
	assert.False(t, r.IsOpen())
	assert.Equal(t, types.CurrentUser, r.Root())

	require.True(t, r.ChangeRoot(`Software/App/`))
	assert.True(t, r.IsOpen())
	assert.Equal(t, `Software\App`, r.Path())
	require.True(t, r.WriteString("k", "v"))

	other := New(s, nil)
	require.True(t, other.ChangeRoot(`SOFTWARE\app`))
	assert.Equal(t, "v", other.ReadString("k", ""))
	require.NoError(t, other.Close())
	require.NoError(t, other.Close())
	assert.False(t, other.IsOpen())
	assert.Equal(t, "", other.Path())
}

func TestChangeRoot_UsesConfiguredRoot(t *testing.T) {
	s := memory.New()
	r := New(s, &Options{Root: types.LocalMachine})
	require.True(t, r.ChangeRoot("Vendor"))
	require.True(t, r.WriteString("x", "1"))

	_, err := s.OpenKey(types.CurrentUser, "Vendor", types.AccessRead)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = s.OpenKey(types.LocalMachine, "Vendor", types.AccessRead)
	assert.NoError(t, err)
}

type countingStore struct {
	types.Store
	open, closed int
}

type countingKey struct {
	types.Key
	s *countingStore
}

func (k countingKey) Close() error {
	k.s.closed++
	return k.Key.Close()
}

func (c *countingStore) OpenKey(root types.RootKey, path string, a types.Access) (types.Key, error) {
	k, err := c.Store.OpenKey(root, path, a)
	if err != nil {
		return nil, err
	}
	c.open++
	return countingKey{Key: k, s: c}, nil
}

func (c *countingStore) CreateKey(root types.RootKey, path string, a types.Access) (types.Key, bool, error) {
	k, existing, err := c.Store.CreateKey(root, path, a)
	if err != nil {
		return nil, false, err
	}
	c.open++
	return countingKey{Key: k, s: c}, existing, nil
}

func TestChangeRoot_ReleasesPreviousHandle(t *testing.T) {
	cs := &countingStore{Store: memory.New()}
	r := New(cs, nil)

	require.True(t, r.ChangeRoot("A"))
	require.True(t, r.ChangeRoot("B"))
	require.True(t, r.ChangeRoot("A"))
	assert.Equal(t, 3, cs.open)
	assert.Equal(t, 2, cs.closed)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	assert.Equal(t, 3, cs.closed)
}

func TestChangeRoot_Limits(t *testing.T) {
	log, buf := captureLogger()
	lim := types.Limits{MaxKeyNameLen: 4, MaxTreeDepth: 2}
	r := New(memory.New(), &Options{Logger: log, Limits: &lim})

	assert.False(t, r.ChangeRoot("toolong"))
	assert.False(t, r.ChangeRoot(`a\b\c`))
	assert.True(t, r.ChangeRoot(`a\b`))
	assert.Contains(t, buf.String(), "path rejected")
}

func TestClosedFacadeDegrades(t *testing.T) {
	r := New(memory.New(), nil)

	assert.False(t, r.ValueExists("x"))
	assert.Equal(t, "d", r.ReadString("x", "d"))
	assert.False(t, r.WriteString("x", "v"))
	assert.False(t, r.DeleteValue("x"))
	assert.Equal(t, 7, ReadNumber(r, "x", 7))
	assert.False(t, WriteNumber(r, "x", 1))
	assert.False(t, StoreRef(r, "p", new(int)))

	_, err := r.ValueNames()
	assert.ErrorIs(t, err, types.ErrNotOpen)

	_, err = ReadObject[point3](r, "obj")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Error(t, WriteObject(r, "obj", point3{}))
}

func TestStringReadWriteDelete(t *testing.T) {
	r, _ := newTestRegistry(t, nil)

	assert.Equal(t, "fallback", r.ReadString("nope", "fallback"))
	assert.False(t, r.ValueExists("nope"))
	assert.False(t, r.DeleteValue("nope"))

	require.True(t, r.WriteString("greeting", "héllo wörld"))
	assert.True(t, r.ValueExists("greeting"))
	assert.True(t, r.ValueExists("GREETING"))
	assert.Equal(t, "héllo wörld", r.ReadString("greeting", ""))

	require.True(t, r.WriteString("greeting", ""))
	assert.True(t, r.ValueExists("greeting"))
	assert.Equal(t, "", r.ReadString("greeting", "def"))

	require.True(t, r.DeleteValue("greeting"))
	assert.False(t, r.ValueExists("greeting"))
}

func TestReadString_StopsAtNUL(t *testing.T) {
	r, s := newTestRegistry(t, nil)
	k, err := s.OpenKey(types.CurrentUser, r.Path(), types.AccessReadWrite)
	require.NoError(t, err)
	defer k.Close()

	raw := append(format.EncodeSZ("abc"), format.EncodeSZ("hidden")...)
	require.NoError(t, k.SetValue("embedded", types.REG_SZ, raw))
	require.NoError(t, k.SetValue("unterminated", types.REG_SZ, []byte{'x', 0, 'y', 0}))
	require.NoError(t, k.SetValue("dw", types.REG_DWORD, format.EncodeDWORD(99)))

	assert.Equal(t, "abc", r.ReadString("embedded", ""))
	assert.Equal(t, "xy", r.ReadString("unterminated", ""))
	assert.Equal(t, "99", r.ReadString("dw", ""))
	assert.Equal(t, 99, ReadNumber(r, "dw", 0))
}

func TestWriteString_ValueLimit(t *testing.T) {
	log, buf := captureLogger()
	lim := types.Limits{MaxValueSize: 8, MaxValueNameLen: 3}
	r, _ := newTestRegistry(t, &Options{Logger: log, Limits: &lim})

	assert.True(t, r.WriteString("a", "abc"))
	assert.False(t, r.WriteString("a", "abcd"))
	assert.False(t, r.WriteString("long", "x"))
	assert.Equal(t, "abc", r.ReadString("a", ""))
	assert.Contains(t, buf.String(), "write failed")
}

func TestWriteString_RejectsInvalidUTF8(t *testing.T) {
	log, buf := captureLogger()
	r, _ := newTestRegistry(t, &Options{Logger: log})

	assert.False(t, r.WriteString("raw", "a\xffb\xfe"))
	assert.False(t, r.ValueExists("raw"))
	assert.Equal(t, "def", r.ReadString("raw", "def"))
	assert.Contains(t, buf.String(), "not valid UTF-8")

	require.True(t, r.WriteString("raw", "ok"))
	assert.False(t, r.WriteString("raw", "\xc3"))
	assert.Equal(t, "ok", r.ReadString("raw", ""))
}

func TestValueNames(t *testing.T) {
	r, _ := newTestRegistry(t, nil)
	require.True(t, r.WriteString("b", "1"))
	require.True(t, r.WriteString("a", "2"))

	names, err := r.ValueNames()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, names)
}

// growingKey reports a size that is too small once, as if the value grew
// between the size query and the fetch.
type growingKey struct {
	types.Key
	calls int
}

func (g *growingKey) GetValue(name string, buf []byte) (int, types.RegType, error) {
	g.calls++
	if buf == nil && g.calls == 1 {
		return 2, types.REG_SZ, nil
	}
	return g.Key.GetValue(name, buf)
}

func TestReadRaw_RetriesOnShortBuffer(t *testing.T) {
	r, _ := newTestRegistry(t, nil)
	require.True(t, r.WriteString("v", "longer text"))

	g := &growingKey{Key: r.key}
	r.key = g
	assert.Equal(t, "longer text", r.ReadString("v", ""))
	assert.Equal(t, 3, g.calls)
}

func TestEndToEnd(t *testing.T) {
	r, _ := newTestRegistry(t, nil)

	require.True(t, r.WriteString("app_name", "MyApp"))
	require.True(t, WriteNumber(r, "version", 2))
	require.True(t, WriteNumber(r, "pi", 3.14159))

	assert.Equal(t, "MyApp", r.ReadString("app_name", ""))
	assert.Equal(t, 2, ReadNumber(r, "version", 0))
	assert.InDelta(t, 3.14159, ReadNumber(r, "pi", 0.0), 1e-9)
	assert.Equal(t, "3.14159", r.ReadString("pi", ""))

	for _, name := range []string{"app_name", "version", "pi"} {
		require.True(t, r.DeleteValue(name))
		assert.False(t, r.ValueExists(name))
	}
}

func TestMetrics(t *testing.T) {
	r, _ := newTestRegistry(t, nil)
	r.WriteString("m", "1")
	r.ReadString("m", "")

	var buf bytes.Buffer
	WriteMetrics(&buf)
	out := buf.String()
	assert.True(t, strings.Contains(out, `regapi_ops_total{op="write",result="ok"}`))
	assert.True(t, strings.Contains(out, `regapi_ops_total{op="read",result="ok"}`))
	assert.Contains(t, out, "regapi_value_bytes")
}
