package textcodec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	// Lengths 0..64 cover every len%3 class many times over.
	for n := 0; n <= 64; n++ {
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(i*37 + n)
		}
		got := Decode(Encode(b))
		require.Equal(t, len(b), len(got), "length for n=%d", n)
		if n > 0 {
			require.Equal(t, b, got, "bytes for n=%d", n)
		}
	}
}

func TestPadding(t *testing.T) {
	tests := []struct {
		n       int
		wantPad int
	}{
		{0, 0}, {1, 2}, {2, 1}, {3, 0}, {4, 2}, {5, 1}, {6, 0}, {12, 0}, {13, 2},
	}
	for _, tt := range tests {
		enc := Encode(make([]byte, tt.n))
		assert.Zero(t, len(enc)%4, "n=%d", tt.n)
		assert.Equal(t, EncodedLen(tt.n), len(enc), "n=%d", tt.n)
		pad := len(enc) - len(strings.TrimRight(enc, string(Pad)))
		assert.Equal(t, tt.wantPad, pad, "n=%d", tt.n)
	}
}

func TestEncodeKnownVectors(t *testing.T) {
	assert.Equal(t, "", Encode(nil))
	assert.Equal(t, "Zg==", Encode([]byte("f")))
	assert.Equal(t, "Zm8=", Encode([]byte("fo")))
	assert.Equal(t, "Zm9v", Encode([]byte("foo")))
	assert.Equal(t, "Zm9vYmFy", Encode([]byte("foobar")))
	// 12-byte struct {11, 22, 33} as little-endian int32s
	assert.Equal(t, "CwAAABYAAAAhAAAA", Encode([]byte{11, 0, 0, 0, 22, 0, 0, 0, 33, 0, 0, 0}))
}

func TestDecodeStopsAtFirstInvalidSymbol(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"padding ends input", "Zm8=Zm9v", "fo"},
		{"garbage mid-stream", "Zm9v*YmFy", "foo"},
		{"NUL terminator", "Zm9vYmFy\x00trailing", "foobar"},
		{"whitespace", "Zm9v Ym", "foo"},
		{"leading invalid", "!Zm9v", ""},
		{"lone trailing symbol", "Zm9vY", "foo"},
		{"truncated group", "Zm9vYm", "foob"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.in)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestDecodeNeverPanics(t *testing.T) {
	inputs := []string{"=", "==", "====", "A", "AB", "ABC", "\xff\xfe", strings.Repeat("/", 1001)}
	for _, in := range inputs {
		assert.NotPanics(t, func() { _ = Decode(in) }, "input %q", in)
	}
}
