// Package numtext converts numbers to and from their canonical text form.
//
// Canonical form is fixed-point decimal with Precision fractional digits,
// trailing fractional zeros removed, and a dangling decimal point removed.
// Integers never carry a fractional part.
//
// Parsing follows stream-extraction rules: leading whitespace is skipped,
// the longest numeric prefix is consumed, and anything after it is ignored.
// Only an empty string or a hard failure (no digits, overflow) yields the
// caller's default. ParseStrict additionally rejects trailing characters.
package numtext

import (
	"reflect"
	"strconv"
	"strings"
)

// Precision is the number of fractional digits Format renders before trimming.
const Precision = 5

// Number is the set of types Format and Parse accept.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Format renders v in canonical form.
func Format[T Number](v T) string {
	rt := reflect.TypeFor[T]()
	switch rt.Kind() {
	case reflect.Float32, reflect.Float64:
		s := strconv.FormatFloat(float64(v), 'f', Precision, rt.Bits())
		return trimFraction(s)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(uint64(v), 10)
	default:
		return strconv.FormatInt(int64(v), 10)
	}
}

func trimFraction(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Parse extracts a T from the start of text, ignoring trailing characters.
func Parse[T Number](text string, def T) T {
	v, _, ok := parse[T](text)
	if !ok {
		return def
	}
	return v
}

// ParseStrict is Parse without the trailing-character tolerance: text must
// be a number with optional surrounding whitespace.
func ParseStrict[T Number](text string, def T) T {
	v, rest, ok := parse[T](text)
	if !ok || strings.TrimSpace(rest) != "" {
		return def
	}
	return v
}

// ParseExact is ParseStrict with an explicit ok instead of a default.
func ParseExact[T Number](text string) (T, bool) {
	v, rest, ok := parse[T](text)
	if !ok || strings.TrimSpace(rest) != "" {
		var zero T
		return zero, false
	}
	return v, true
}

func parse[T Number](text string) (v T, rest string, ok bool) {
	s := strings.TrimLeft(text, " \t\n\v\f\r")
	if s == "" {
		return v, text, false
	}
	rt := reflect.TypeFor[T]()
	switch rt.Kind() {
	case reflect.Float32, reflect.Float64:
		n := floatPrefix(s)
		if n == 0 {
			return v, s, false
		}
		f, err := strconv.ParseFloat(s[:n], rt.Bits())
		if err != nil {
			return v, s, false
		}
		return T(f), s[n:], true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := intPrefix(s, false)
		if n == 0 {
			return v, s, false
		}
		u, err := strconv.ParseUint(strings.TrimPrefix(s[:n], "+"), 10, rt.Bits())
		if err != nil {
			return v, s, false
		}
		return T(u), s[n:], true
	default:
		n := intPrefix(s, true)
		if n == 0 {
			return v, s, false
		}
		i, err := strconv.ParseInt(s[:n], 10, rt.Bits())
		if err != nil {
			return v, s, false
		}
		return T(i), s[n:], true
	}
}

// intPrefix returns the length of the leading [sign]digits run, or 0 when
// there are no digits. Negative signs are only accepted when signed is true.
func intPrefix(s string, signed bool) int {
	i := 0
	if i < len(s) && (s[i] == '+' || (signed && s[i] == '-')) {
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == start {
		return 0
	}
	return i
}

// floatPrefix returns the length of the leading decimal floating-point
// literal: [sign] digits [. digits] [(e|E) [sign] digits]. At least one
// mantissa digit is required; an exponent without digits is not consumed.
func floatPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > exp {
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
