package procref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlqtangok/reg-api/pkg/types"
)

func TestRegisterResolve(t *testing.T) {
	tab := New(1234)
	v := []int{11, 22, 33}
	h := tab.Register(&v)
	require.NotZero(t, h)

	got, ok := tab.Resolve(h)
	require.True(t, ok)
	assert.Same(t, &v, got.(*[]int))

	// Same pointer keeps its handle.
	assert.Equal(t, h, tab.Register(&v))
	assert.Equal(t, 1, tab.Len())
}

func TestRegister_DistinguishesTypesAtSameAddress(t *testing.T) {
	type pair struct{ A, B int }
	tab := New(1)
	p := &pair{1, 2}
	hp := tab.Register(p)
	ha := tab.Register(&p.A)
	assert.NotEqual(t, hp, ha)

	got, ok := tab.Resolve(ha)
	require.True(t, ok)
	_, isInt := got.(*int)
	assert.True(t, isInt)
}

func TestRegister_RejectsNonPointers(t *testing.T) {
	tab := New(1)
	var nilPtr *int
	assert.Zero(t, tab.Register(nil))
	assert.Zero(t, tab.Register(nilPtr))
	assert.Zero(t, tab.Register(42))
	assert.Zero(t, tab.Len())
}

func TestRelease(t *testing.T) {
	tab := New(1)
	x := 5
	h := tab.Register(&x)
	require.True(t, tab.Release(h))
	assert.False(t, tab.Release(h))
	_, ok := tab.Resolve(h)
	assert.False(t, ok)

	// Re-registering after release issues a fresh handle.
	assert.NotEqual(t, h, tab.Register(&x))
}

func TestTablesDoNotShareHandles(t *testing.T) {
	a, b := New(1), New(1)
	x := 1
	h := a.Register(&x)
	_, ok := b.Resolve(h)
	assert.False(t, ok)
}

func TestTokenRoundTrip(t *testing.T) {
	tab := New(4321)
	tok := tab.Token(0xdeadbeef)
	assert.Equal(t, "deadbeef_4321", tok)

	h, pid, err := ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xdeadbeef), h)
	assert.Equal(t, 4321, pid)
}

func TestParseToken_Malformed(t *testing.T) {
	for _, in := range []string{"", "deadbeef", "zz_12", "ff_", "_12", "ff_x12", "ff_-3"} {
		_, _, err := ParseToken(in)
		require.ErrorIs(t, err, types.ErrMalformed, "input %q", in)
	}
}

func TestParseToken_Lenient(t *testing.T) {
	tests := []struct {
		in  string
		h   uint64
		pid int
	}{
		{"  1_1", 1, 1},
		{"ff_12\n", 0xff, 12},
		{"ff_12x", 0xff, 12},
		{"0xAB_ +7", 0xab, 7},
		{"\tc0ffee_ 99 trailing", 0xc0ffee, 99},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			h, pid, err := ParseToken(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.h, h)
			assert.Equal(t, tt.pid, pid)
		})
	}
}
