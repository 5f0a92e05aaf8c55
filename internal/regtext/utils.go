package regtext

import (
	"fmt"
	"strings"
)

// unescapeRegString undoes the \\ and \" escapes used inside quoted names
// and string data.
func unescapeRegString(s string) string {
	if strings.IndexByte(s, '\\') == -1 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '"') {
			i++
			c = s[i]
		}
		b.WriteByte(c)
	}
	return b.String()
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, Backslash, EscapedBackslash)
	return strings.ReplaceAll(s, Quote, EscapedQuote)
}

// findClosingQuote returns the index of the quote closing the one at
// line[0], skipping quotes preceded by an odd number of backslashes.
func findClosingQuote(line string) int {
	for i := 1; i < len(line); i++ {
		if line[i] != '"' {
			continue
		}
		n := 0
		for j := i - 1; j >= 1 && line[j] == '\\'; j-- {
			n++
		}
		if n%2 == 0 {
			return i
		}
	}
	return -1
}

// parseHexBytes decodes the comma-separated bytes after the first colon.
// Whitespace and continuation backslashes are ignored; a single digit is
// read as a low nibble.
func parseHexBytes(payload string) ([]byte, error) {
	colon := strings.IndexByte(payload, ':')
	if colon < 0 {
		return nil, fmt.Errorf("invalid hex data %q: missing colon", payload)
	}
	body := payload[colon+1:]
	out := make([]byte, 0, len(body)/3+1)
	for _, part := range strings.Split(body, HexByteSeparator) {
		part = strings.Map(func(r rune) rune {
			if r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\\' {
				return -1
			}
			return r
		}, part)
		if part == "" {
			continue
		}
		if len(part) > 2 {
			return nil, fmt.Errorf("invalid hex byte %q", part)
		}
		var v byte
		for i := 0; i < len(part); i++ {
			n := hexCharToNibble(part[i])
			if n == 0xFF {
				return nil, fmt.Errorf("invalid hex byte %q", part)
			}
			v = v<<4 | n
		}
		out = append(out, v)
	}
	return out, nil
}

func hexCharToNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0xFF
	}
}

// writeHex appends data as "xx,xx,..." wrapping with ",\" once the line
// passes HexLineWidth. col is the column the payload starts at.
func writeHex(b *strings.Builder, data []byte, col int) {
	for i, c := range data {
		fmt.Fprintf(b, HexByteFormat, c)
		col += 2
		if i == len(data)-1 {
			break
		}
		b.WriteString(HexByteSeparator)
		col++
		if col >= HexLineWidth-4 {
			b.WriteString(Backslash + CRLF + "  ")
			col = 2
		}
	}
}
