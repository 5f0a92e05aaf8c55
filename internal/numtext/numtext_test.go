package numtext

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_Canonical(t *testing.T) {
	assert.Equal(t, "3.14", Format(3.14000))
	assert.Equal(t, "3.14", Format(3.14))
	assert.Equal(t, "5", Format(5.0))
	assert.Equal(t, "3.14159", Format(3.14159))
	assert.Equal(t, "3.14159", Format(3.141592653))
	assert.Equal(t, "0.00001", Format(0.00001))
	assert.Equal(t, "0", Format(0.000001))
	assert.Equal(t, "-2.5", Format(-2.5))
	assert.Equal(t, "100", Format(100.0))
	assert.Equal(t, "99.99", Format(float32(99.99)))
}

func TestFormat_Integers(t *testing.T) {
	assert.Equal(t, "123", Format(123))
	assert.Equal(t, "-7", Format(int8(-7)))
	assert.Equal(t, "0", Format(uint(0)))
	assert.Equal(t, "18446744073709551615", Format(uint64(math.MaxUint64)))
	assert.Equal(t, "-9223372036854775808", Format(int64(math.MinInt64)))
	assert.Equal(t, "1000", Format(int32(1000)), "integral zeros are not trimmed")
}

func TestFormat_NamedTypes(t *testing.T) {
	type Version int
	type Ratio float64
	assert.Equal(t, "42", Format(Version(42)))
	assert.Equal(t, "0.5", Format(Ratio(0.5)))
	assert.Equal(t, Version(42), Parse("42", Version(0)))
}

func TestRoundTrip_SameType(t *testing.T) {
	ints := []int{0, 1, -1, 123, -456789, math.MaxInt32, math.MinInt32}
	for _, v := range ints {
		assert.Equal(t, v, Parse(Format(v), 0), "int %d", v)
	}
	floats := []float64{0, 3.14159, -3.14159, 2.5, 1e6, 0.00001, -12345.6789}
	for _, v := range floats {
		assert.Equal(t, v, Parse(Format(v), 0.0), "float %v", v)
	}
	assert.Equal(t, float32(99.99), Parse(Format(float32(99.99)), float32(0)))
	assert.Equal(t, uint16(65535), Parse(Format(uint16(65535)), uint16(0)))
}

func TestParse_DefaultOnFailure(t *testing.T) {
	assert.Equal(t, 42, Parse("", 42))
	assert.Equal(t, 42, Parse("   ", 42))
	assert.Equal(t, 42, Parse("abc", 42))
	assert.Equal(t, 42, Parse("-", 42))
	assert.Equal(t, 1.5, Parse(".", 1.5))
	assert.Equal(t, 1.5, Parse("inf", 1.5))
	assert.Equal(t, int8(9), Parse("300", int8(9)), "overflow")
	assert.Equal(t, uint(9), Parse("-1", uint(9)), "negative into unsigned")
	assert.Equal(t, 1.5, Parse("1e400", 1.5), "float overflow")
}

func TestParse_LenientPrefix(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"trailing garbage", "123abc", 123},
		{"leading whitespace", "  \t7.25", 7.25},
		{"trailing dot", "5.", 5},
		{"leading dot", ".5", 0.5},
		{"explicit plus", "+2", 2},
		{"exponent", "1e3x", 1000},
		{"dangling exponent", "2e", 2},
		{"dangling signed exponent", "2e+", 2},
		{"second dot", "1.2.3", 1.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in, -1.0))
		})
	}

	assert.Equal(t, 123, Parse("123abc", 0))
	assert.Equal(t, 3, Parse("3.14", 0), "int extraction stops at the decimal point")
	assert.Equal(t, -8, Parse("-8 apples", 0))
}

func TestParseStrict(t *testing.T) {
	assert.Equal(t, 0, ParseStrict("123abc", 0))
	assert.Equal(t, 0, ParseStrict("3.14", 0))
	assert.Equal(t, 123, ParseStrict(" 123 ", 0))
	assert.Equal(t, 3.14, ParseStrict("3.14", 0.0))
	assert.Equal(t, 7.0, ParseStrict("", 7.0))
}

func TestParseExact(t *testing.T) {
	n, ok := ParseExact[int64]("-17")
	require.True(t, ok)
	assert.Equal(t, int64(-17), n)

	_, ok = ParseExact[int64]("17x")
	assert.False(t, ok)

	_, ok = ParseExact[uint8]("300")
	assert.False(t, ok, "overflow")

	f, ok := ParseExact[float64]("2.5e3")
	require.True(t, ok)
	assert.Equal(t, 2500.0, f)
}
