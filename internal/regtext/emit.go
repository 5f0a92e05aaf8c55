package regtext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tlqtangok/reg-api/internal/format"
	"github.com/tlqtangok/reg-api/pkg/types"
)

// ExportReg renders sections as .reg text in the order given. Windows-1252
// output carries the REGEDIT4 header; every other encoding uses the
// version 5 header.
func ExportReg(sections []types.Section, opts types.RegExportOptions) ([]byte, error) {
	var b strings.Builder
	if strings.EqualFold(opts.OutputEncoding, EncodingWindows1252) {
		b.WriteString(RegFileHeaderV4 + CRLF + CRLF)
	} else {
		b.WriteString(RegFileHeader + CRLF + CRLF)
	}
	for _, sec := range sections {
		b.WriteString(KeyOpenBracket + sec.FullPath() + KeyCloseBracket + CRLF)
		for _, v := range sec.Values {
			emitValue(&b, v)
		}
		b.WriteString(CRLF)
	}
	return encodeOutput(b.String(), opts)
}

func emitValue(b *strings.Builder, v types.Value) {
	start := b.Len()
	if v.Name == "" {
		b.WriteString(DefaultValuePrefix)
	} else {
		b.WriteString(Quote + escapeString(v.Name) + Quote + ValueAssignment)
	}

	switch {
	case v.Type == types.REG_SZ && isPlainSZ(v.Data):
		b.WriteString(Quote + escapeString(format.DecodeSZ(v.Data)) + Quote)
	case v.Type == types.REG_DWORD && len(v.Data) == format.DWORDSize:
		b.WriteString(DWORDPrefix)
		fmt.Fprintf(b, DWORDHexFormat, format.ReadU32(v.Data, 0))
	case v.Type == types.REG_BINARY:
		b.WriteString(HexPrefix)
		writeHex(b, v.Data, b.Len()-start)
	default:
		fmt.Fprintf(b, HexTypeFormat, uint32(v.Type))
		writeHex(b, v.Data, b.Len()-start)
	}
	b.WriteString(CRLF)
}

// isPlainSZ reports whether data survives a quoted-string round trip:
// exactly one terminator, no embedded NULs, no stray bytes, and no
// characters that would break the line-oriented format.
func isPlainSZ(data []byte) bool {
	s := format.DecodeSZ(data)
	if strings.ContainsAny(s, "\r\n") {
		return false
	}
	return bytes.Equal(format.EncodeSZ(s), data)
}
