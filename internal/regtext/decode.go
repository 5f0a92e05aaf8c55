package regtext

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/tlqtangok/reg-api/internal/format"
	"github.com/tlqtangok/reg-api/pkg/types"
)

var errUnsupportedEncoding = types.Errorf(types.ErrKindUnsupported, "regtext: unsupported encoding")

// decodeInput converts raw .reg bytes to UTF-8. A BOM wins over enc; with
// neither, a REGEDIT4 header selects Windows-1252 and anything else is
// taken as UTF-8.
func decodeInput(data []byte, enc string) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, format.UTF16LEBOM):
		return format.DecodeUTF16(data)
	case bytes.HasPrefix(data, format.UTF8BOM):
		return data[len(format.UTF8BOM):], nil
	}
	switch strings.ToUpper(enc) {
	case "":
		if bytes.HasPrefix(data, []byte(RegFileHeaderV4)) {
			return charmap.Windows1252.NewDecoder().Bytes(data)
		}
		return data, nil
	case EncodingUTF8:
		return data, nil
	case EncodingUTF16LE:
		return format.DecodeUTF16(data)
	case EncodingWindows1252:
		return charmap.Windows1252.NewDecoder().Bytes(data)
	default:
		return nil, errUnsupportedEncoding
	}
}

// encodeOutput converts UTF-8 .reg text to the requested encoding.
func encodeOutput(text string, opts types.RegExportOptions) ([]byte, error) {
	switch strings.ToUpper(opts.OutputEncoding) {
	case "", EncodingUTF8:
		if opts.WithBOM {
			return append(append([]byte{}, format.UTF8BOM...), text...), nil
		}
		return []byte(text), nil
	case EncodingUTF16LE:
		return format.EncodeUTF16(text, opts.WithBOM)
	case EncodingWindows1252:
		out, err := charmap.Windows1252.NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, types.Wrap(types.ErrKindUnsupported, "regtext: text not representable in Windows-1252", err)
		}
		return out, nil
	default:
		return nil, errUnsupportedEncoding
	}
}
