// Package format holds the byte-level payload encodings shared by the
// backends and the facade: REG_SZ text as UTF-16LE with a NUL terminator,
// and little-endian DWORD/QWORD integers, exactly as the Windows registry
// stores them.
package format

const (
	// UTF16CodeUnitSize is the size of a UTF-16 code unit in bytes.
	UTF16CodeUnitSize = 2

	// DWORDSize is the payload size of REG_DWORD values.
	DWORDSize = 4

	// QWORDSize is the payload size of REG_QWORD values.
	QWORDSize = 8
)

var (
	// UTF16LEBOM is the byte order mark for UTF-16 little-endian.
	UTF16LEBOM = []byte{0xFF, 0xFE}

	// UTF8BOM is the byte order mark for UTF-8.
	UTF8BOM = []byte{0xEF, 0xBB, 0xBF}

	// SZTerminator ends every REG_SZ payload.
	SZTerminator = []byte{0x00, 0x00}
)
