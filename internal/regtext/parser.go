package regtext

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/tlqtangok/reg-api/internal/format"
	"github.com/tlqtangok/reg-api/pkg/types"
)

// ParseReg converts .reg text into edit operations in file order. Section
// paths carrying an HKEY prefix select that anchor; bare paths resolve
// under opts.DefaultRoot.
func ParseReg(data []byte, opts types.RegParseOptions) ([]types.EditOp, error) {
	text, err := decodeInput(data, opts.InputEncoding)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(bytes.NewReader(text))
	scanner.Buffer(make([]byte, 0, ScannerInitialBufferSize), ScannerMaxLineSize)

	var (
		ops        []types.EditOp
		seenHeader bool
		inSection  bool
		root       types.RootKey
		path       string
		lineNo     int
		pending    strings.Builder
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(strings.TrimRight(scanner.Text(), CR))
		if pending.Len() > 0 || strings.HasSuffix(line, Backslash) && !strings.HasPrefix(line, KeyOpenBracket) {
			if strings.HasSuffix(line, Backslash) {
				pending.WriteString(strings.TrimSuffix(line, Backslash))
				continue
			}
			pending.WriteString(line)
			line = pending.String()
			pending.Reset()
		}
		if line == "" || strings.HasPrefix(line, CommentPrefix) {
			continue
		}
		if !seenHeader {
			if line != RegFileHeader && line != RegFileHeaderV4 {
				return nil, types.Errorf(types.ErrKindMalformed, "regtext: missing header")
			}
			seenHeader = true
			continue
		}
		if strings.HasPrefix(line, KeyOpenBracket) {
			if !strings.HasSuffix(line, KeyCloseBracket) {
				return nil, types.Errorf(types.ErrKindMalformed, "regtext: line %d: malformed section %q", lineNo, line)
			}
			section := line[len(KeyOpenBracket) : len(line)-len(KeyCloseBracket)]
			del := strings.HasPrefix(section, DeleteKeyPrefix)
			if del {
				section = section[len(DeleteKeyPrefix):]
			}
			root, path = resolveSection(section, opts.DefaultRoot)
			if del {
				ops = append(ops, types.OpDeleteKey{Root: root, Path: path})
				inSection = false
				continue
			}
			ops = append(ops, types.OpCreateKey{Root: root, Path: path})
			inSection = true
			continue
		}
		if !inSection {
			return nil, types.Errorf(types.ErrKindMalformed, "regtext: line %d: value without section", lineNo)
		}
		op, err := parseValueLine(root, path, line)
		if err != nil {
			return nil, types.Wrap(types.ErrKindMalformed, "regtext: line "+strconv.Itoa(lineNo), err)
		}
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !seenHeader {
		return nil, types.Errorf(types.ErrKindMalformed, "regtext: missing header")
	}
	return ops, nil
}

func resolveSection(section string, def types.RootKey) (types.RootKey, string) {
	if root, rest, ok := types.SplitRootPath(section); ok {
		return root, rest
	}
	return def, types.NormalizePath(section)
}

func parseValueLine(root types.RootKey, path, line string) (types.EditOp, error) {
	if strings.HasPrefix(line, DefaultValuePrefix) {
		return parseValue(root, path, "", line[len(DefaultValuePrefix):])
	}
	if !strings.HasPrefix(line, Quote) {
		return nil, types.Errorf(types.ErrKindMalformed, "malformed value line %q", line)
	}
	end := findClosingQuote(line)
	if end < 0 {
		return nil, types.Errorf(types.ErrKindMalformed, "unterminated value name in %q", line)
	}
	name := unescapeRegString(line[1:end])
	rest := strings.TrimSpace(line[end+1:])
	if !strings.HasPrefix(rest, ValueAssignment) {
		return nil, types.Errorf(types.ErrKindMalformed, "missing '=' in %q", line)
	}
	return parseValue(root, path, name, rest[len(ValueAssignment):])
}

func parseValue(root types.RootKey, path, name, payload string) (types.EditOp, error) {
	payload = strings.TrimSpace(payload)
	switch {
	case payload == DeleteValueToken:
		return types.OpDeleteValue{Root: root, Path: path, Name: name}, nil

	case strings.HasPrefix(payload, Quote):
		if findClosingQuote(payload) != len(payload)-1 {
			return nil, types.Errorf(types.ErrKindMalformed, "unterminated string %q", payload)
		}
		s := unescapeRegString(payload[1 : len(payload)-1])
		return types.OpSetValue{Root: root, Path: path, Name: name, Type: types.REG_SZ, Data: format.EncodeSZ(s)}, nil

	case strings.HasPrefix(payload, DWORDPrefix):
		digits := payload[len(DWORDPrefix):]
		if len(digits) != DWORDHexLength {
			return nil, types.Errorf(types.ErrKindMalformed, "invalid dword %q", payload)
		}
		n, err := strconv.ParseUint(digits, 16, 32)
		if err != nil {
			return nil, types.Wrap(types.ErrKindMalformed, "invalid dword", err)
		}
		return types.OpSetValue{Root: root, Path: path, Name: name, Type: types.REG_DWORD, Data: format.EncodeDWORD(uint32(n))}, nil

	case strings.HasPrefix(payload, HexPrefix), strings.HasPrefix(payload, HexTypeOpen):
		typ := types.REG_BINARY
		if strings.HasPrefix(payload, HexTypeOpen) {
			closing := strings.IndexByte(payload, ')')
			if closing < 0 {
				return nil, types.Errorf(types.ErrKindMalformed, "invalid hex type in %q", payload)
			}
			n, err := strconv.ParseUint(payload[len(HexTypeOpen):closing], 16, 32)
			if err != nil {
				return nil, types.Wrap(types.ErrKindMalformed, "invalid hex type", err)
			}
			typ = types.RegType(n)
		}
		data, err := parseHexBytes(payload)
		if err != nil {
			return nil, types.Wrap(types.ErrKindMalformed, "invalid hex payload", err)
		}
		return types.OpSetValue{Root: root, Path: path, Name: name, Type: typ, Data: data}, nil
	}
	return nil, types.Errorf(types.ErrKindMalformed, "unsupported value %q", payload)
}
