package format

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// EncodeSZ returns the REG_SZ payload for s: UTF-16LE code units followed
// by a NUL code unit. Invalid UTF-8 is replaced with U+FFFD.
func EncodeSZ(s string) []byte {
	enc, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		// The UTF-16 encoder substitutes rather than failing.
		enc = nil
	}
	out := make([]byte, 0, len(enc)+len(SZTerminator))
	out = append(out, enc...)
	return append(out, SZTerminator...)
}

// DecodeSZ converts a REG_SZ payload back to UTF-8. Decoding stops at the
// first NUL code unit; payloads stored without a terminator, or with an
// odd trailing byte, are still decoded up to their last whole code unit.
func DecodeSZ(b []byte) string {
	b = b[:len(b)&^1]
	for i := 0; i < len(b); i += UTF16CodeUnitSize {
		if b[i] == 0 && b[i+1] == 0 {
			b = b[:i]
			break
		}
	}
	if len(b) == 0 {
		return ""
	}
	dec, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(dec)
}

// DecodeUTF16 converts UTF-16LE text (BOM optional) to UTF-8 without
// stopping at NULs. Used for whole-file .reg imports.
func DecodeUTF16(b []byte) ([]byte, error) {
	b = bytes.TrimPrefix(b, UTF16LEBOM)
	return utf16le.NewDecoder().Bytes(b[:len(b)&^1])
}

// EncodeUTF16 converts UTF-8 text to UTF-16LE, optionally prefixed with a BOM.
func EncodeUTF16(s string, withBOM bool) ([]byte, error) {
	enc, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, err
	}
	if !withBOM {
		return enc, nil
	}
	return append(append([]byte{}, UTF16LEBOM...), enc...), nil
}
