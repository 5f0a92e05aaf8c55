package regtext

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlqtangok/reg-api/internal/format"
	"github.com/tlqtangok/reg-api/pkg/types"
)

func sampleSections() []types.Section {
	return []types.Section{
		{Root: types.CurrentUser, Path: `Software\App`, Values: []types.Value{
			{Name: "", Type: types.REG_SZ, Data: format.EncodeSZ("def")},
			{Name: "Count", Type: types.REG_DWORD, Data: format.EncodeDWORD(7)},
			{Name: `Q"uote`, Type: types.REG_SZ, Data: format.EncodeSZ(`C:\x`)},
			{Name: "blob", Type: types.REG_BINARY, Data: []byte{0xde, 0xad}},
			{Name: "multi", Type: types.REG_MULTI_SZ, Data: []byte{'a', 0, 0, 0, 0, 0}},
		}},
		{Root: types.LocalMachine, Path: ""},
	}
}

func TestExportReg_Text(t *testing.T) {
	out, err := ExportReg(sampleSections(), types.RegExportOptions{})
	require.NoError(t, err)
	text := string(out)

	assert.True(t, strings.HasPrefix(text, RegFileHeader+CRLF+CRLF))
	assert.Contains(t, text, "[HKEY_CURRENT_USER\\Software\\App]\r\n")
	assert.Contains(t, text, "@=\"def\"\r\n")
	assert.Contains(t, text, "\"Count\"=dword:00000007\r\n")
	assert.Contains(t, text, `"Q\"uote"="C:\\x"`)
	assert.Contains(t, text, "\"blob\"=hex:de,ad\r\n")
	assert.Contains(t, text, "\"multi\"=hex(7):61,00,00,00,00,00\r\n")
	assert.Contains(t, text, "[HKEY_LOCAL_MACHINE]\r\n")
}

func TestExportReg_NonPlainStringFallsBackToHex(t *testing.T) {
	secs := []types.Section{{Root: types.CurrentUser, Path: "A", Values: []types.Value{
		{Name: "nul", Type: types.REG_SZ, Data: []byte{'a', 0, 0, 0, 'b', 0, 0, 0}},
		{Name: "noterm", Type: types.REG_SZ, Data: []byte{'a', 0}},
	}}}
	out, err := ExportReg(secs, types.RegExportOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "\"nul\"=hex(1):61,00,00,00,62,00,00,00")
	assert.Contains(t, string(out), "\"noterm\"=hex(1):61,00")
}

func TestExportReg_WrapsLongHex(t *testing.T) {
	data := bytes.Repeat([]byte{0xab}, 100)
	secs := []types.Section{{Root: types.CurrentUser, Path: "A", Values: []types.Value{
		{Name: "big", Type: types.REG_BINARY, Data: data},
	}}}
	out, err := ExportReg(secs, types.RegExportOptions{})
	require.NoError(t, err)
	for _, line := range strings.Split(string(out), CRLF) {
		assert.LessOrEqual(t, len(line), HexLineWidth)
	}

	ops, err := ParseReg(out, types.RegParseOptions{})
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, data, ops[1].(types.OpSetValue).Data)
}

func TestExportReg_RoundTrip(t *testing.T) {
	for _, enc := range []string{"", EncodingUTF8, EncodingUTF16LE, EncodingWindows1252} {
		t.Run("enc="+enc, func(t *testing.T) {
			out, err := ExportReg(sampleSections(), types.RegExportOptions{OutputEncoding: enc, WithBOM: enc == EncodingUTF16LE})
			require.NoError(t, err)

			ops, err := ParseReg(out, types.RegParseOptions{})
			require.NoError(t, err)

			var sets []types.OpSetValue
			for _, op := range ops {
				if s, ok := op.(types.OpSetValue); ok {
					sets = append(sets, s)
				}
			}
			want := sampleSections()[0].Values
			require.Len(t, sets, len(want))
			for i, v := range want {
				assert.Equal(t, v.Name, sets[i].Name)
				assert.Equal(t, v.Type, sets[i].Type)
				assert.Equal(t, v.Data, sets[i].Data)
			}
		})
	}
}

func TestExportReg_Encodings(t *testing.T) {
	out, err := ExportReg(nil, types.RegExportOptions{OutputEncoding: EncodingUTF16LE, WithBOM: true})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, format.UTF16LEBOM))

	out, err = ExportReg(nil, types.RegExportOptions{OutputEncoding: EncodingWindows1252})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte(RegFileHeaderV4)))

	_, err = ExportReg(nil, types.RegExportOptions{OutputEncoding: "UTF-32"})
	assert.ErrorIs(t, err, types.ErrUnsupported)
}
