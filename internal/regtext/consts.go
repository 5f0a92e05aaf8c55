package regtext

const (
	// RegFileHeader is the header line of version 5 (Unicode) .reg files.
	RegFileHeader = "Windows Registry Editor Version 5.00"

	// RegFileHeaderV4 is the header of legacy ANSI exports.
	RegFileHeaderV4 = "REGEDIT4"

	KeyOpenBracket     = "["
	KeyCloseBracket    = "]"
	DeleteKeyPrefix    = "-"
	ValueAssignment    = "="
	DefaultValuePrefix = "@="
	CommentPrefix      = ";"
	DeleteValueToken   = "-"

	Quote            = "\""
	Backslash        = "\\"
	EscapedQuote     = "\\\""
	EscapedBackslash = "\\\\"

	CRLF = "\r\n"
	CR   = "\r"

	DWORDPrefix    = "dword:"
	HexPrefix      = "hex:"
	HexTypeOpen    = "hex("
	HexTypeFormat  = "hex(%x):"
	DWORDHexFormat = "%08x"
	DWORDHexLength = 8

	HexByteSeparator = ","
	HexByteFormat    = "%02x"

	// HexLineWidth is where emitted hex payloads wrap with a trailing
	// backslash, matching regedit.exe output.
	HexLineWidth = 80

	EncodingUTF8        = "UTF-8"
	EncodingUTF16LE     = "UTF-16LE"
	EncodingWindows1252 = "WINDOWS-1252"

	ScannerInitialBufferSize = 64 * 1024
	ScannerMaxLineSize       = 1024 * 1024
)
