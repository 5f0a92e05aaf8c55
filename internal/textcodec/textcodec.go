// Package textcodec renders arbitrary bytes as printable text using the
// standard 64-symbol alphabet (A-Z, a-z, 0-9, '+', '/') with '=' padding.
//
// Encoding is byte-identical to base64.StdEncoding. Decoding differs: it
// never fails. It consumes symbols left to right and stops at the first
// character outside the alphabet (padding, terminator, or garbage),
// returning every complete byte assembled before that point.
package textcodec

import (
	"encoding/base64"
	"strings"
)

// Alphabet is the 64-symbol set, in index order.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// Pad is emitted to round the encoded length up to a multiple of 4.
const Pad = '='

// Encode maps b to alphabet text padded to a multiple of 4 symbols.
func Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// EncodedLen returns the length of Encode's output for n input bytes.
func EncodedLen(n int) int {
	return base64.StdEncoding.EncodedLen(n)
}

// Decode reverses Encode. Input after the first non-alphabet symbol is
// ignored, as is a trailing group too short to complete a byte.
func Decode(s string) []byte {
	end := validPrefix(s)
	s = s[:end]
	// A lone trailing symbol carries 6 bits, not enough for a byte.
	if len(s)%4 == 1 {
		s = s[:len(s)-1]
	}
	out, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		// Unreachable: s holds only alphabet symbols in a decodable length.
		return nil
	}
	return out
}

// validPrefix returns the length of the leading run of alphabet symbols.
func validPrefix(s string) int {
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(Alphabet, s[i]) < 0 {
			return i
		}
	}
	return len(s)
}
