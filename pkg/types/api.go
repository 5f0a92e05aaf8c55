package types

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindNotOpen         ErrKind = iota + 1 // no key is open on the facade
	ErrKindNotFound                           // missing key/value
	ErrKindSizeMismatch                       // decoded object bytes differ from the type size
	ErrKindProcessMismatch                    // ref capsule produced by another process
	ErrKindMalformed                          // stored text could not be parsed
	ErrKindNotFlat                            // type has no fixed memory layout
	ErrKindLimit                              // name/value exceeds configured limits
	ErrKindUnsupported                        // backend not available on this platform
	ErrKindCorrupt                            // persisted store could not be loaded
	ErrKindAccess                             // handle lacks the requested access
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNotOpen:
		return "not-open"
	case ErrKindNotFound:
		return "not-found"
	case ErrKindSizeMismatch:
		return "size-mismatch"
	case ErrKindProcessMismatch:
		return "process-mismatch"
	case ErrKindMalformed:
		return "malformed"
	case ErrKindNotFlat:
		return "not-flat"
	case ErrKindLimit:
		return "limit"
	case ErrKindUnsupported:
		return "unsupported"
	case ErrKindCorrupt:
		return "corrupt"
	case ErrKindAccess:
		return "access-denied"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so errors.Is(err, ErrNotFound)
// holds for every not-found error regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Errorf builds a typed error with a formatted message.
func Errorf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a typed category to an underlying error.
func Wrap(kind ErrKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the category of err, or 0 when err carries none.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Sentinels commonly returned by implementations.
var (
	// ErrNotOpen indicates an operation was attempted with no key open.
	ErrNotOpen = &Error{Kind: ErrKindNotOpen, Msg: "no registry key is open"}
	// ErrNotFound indicates a missing key or value.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrSizeMismatch indicates decoded object data has the wrong length.
	ErrSizeMismatch = &Error{Kind: ErrKindSizeMismatch, Msg: "data size mismatch"}
	// ErrProcessMismatch indicates a ref capsule written by another process.
	ErrProcessMismatch = &Error{Kind: ErrKindProcessMismatch, Msg: "ref belongs to another process"}
	// ErrMalformed indicates stored text that does not parse.
	ErrMalformed = &Error{Kind: ErrKindMalformed, Msg: "malformed value text"}
	// ErrNotFlat indicates a type without a fixed, self-contained layout.
	ErrNotFlat = &Error{Kind: ErrKindNotFlat, Msg: "type has no fixed layout"}
	// ErrLimit indicates a name or payload exceeding the configured limits.
	ErrLimit = &Error{Kind: ErrKindLimit, Msg: "registry limit exceeded"}
	// ErrUnsupported indicates a backend that cannot run on this platform.
	ErrUnsupported = &Error{Kind: ErrKindUnsupported, Msg: "unsupported on this platform"}
	// ErrCorrupt indicates a persisted store that could not be loaded.
	ErrCorrupt = &Error{Kind: ErrKindCorrupt, Msg: "corrupt registry store"}
	// ErrAccessDenied indicates a write through a read-only handle.
	ErrAccessDenied = &Error{Kind: ErrKindAccess, Msg: "access denied"}
)

// ErrShortBuffer is returned by Key.GetValue when buf cannot hold the value.
// The returned size is still the required length.
var ErrShortBuffer = errors.New("registry: buffer too small")

// -----------------------------------------------------------------------------
// Value Types
// -----------------------------------------------------------------------------

// RegType enumerates Windows registry value types.
// (The numbers align with Windows definitions.)
type RegType uint32

const (
	REG_NONE      RegType = 0
	REG_SZ        RegType = 1
	REG_EXPAND_SZ RegType = 2
	REG_BINARY    RegType = 3
	REG_DWORD     RegType = 4
	REG_DWORD_BE  RegType = 5
	REG_LINK      RegType = 6
	REG_MULTI_SZ  RegType = 7
	REG_QWORD     RegType = 11
)

// String implements the Stringer interface for RegType
func (t RegType) String() string {
	switch t {
	case REG_NONE:
		return "REG_NONE"
	case REG_SZ:
		return "REG_SZ"
	case REG_EXPAND_SZ:
		return "REG_EXPAND_SZ"
	case REG_BINARY:
		return "REG_BINARY"
	case REG_DWORD:
		return "REG_DWORD"
	case REG_DWORD_BE:
		return "REG_DWORD_BE"
	case REG_LINK:
		return "REG_LINK"
	case REG_MULTI_SZ:
		return "REG_MULTI_SZ"
	case REG_QWORD:
		return "REG_QWORD"
	default:
		return fmt.Sprintf("UNKNOWN_TYPE_%d", int32(t))
	}
}

// Value is one named entry with its raw payload.
type Value struct {
	Name string
	Type RegType
	Data []byte
}

// Section is one key with its values, as found in a .reg file or a store
// snapshot. An empty Path denotes the root anchor itself.
type Section struct {
	Root   RootKey
	Path   string
	Values []Value
}

// FullPath renders the section's key as "HKEY_...\Path".
func (s Section) FullPath() string {
	if s.Path == "" {
		return s.Root.String()
	}
	return s.Root.String() + `\` + s.Path
}

// -----------------------------------------------------------------------------
// Edit operations (produced by the .reg parser)
// -----------------------------------------------------------------------------

// EditOp represents a high-level registry edit.
type EditOp interface{ isEdit() }

type OpSetValue struct {
	Root RootKey
	Path string
	Name string
	Type RegType
	Data []byte
}

func (OpSetValue) isEdit() {}

type OpDeleteValue struct {
	Root RootKey
	Path string
	Name string
}

func (OpDeleteValue) isEdit() {}

type OpCreateKey struct {
	Root RootKey
	Path string
}

func (OpCreateKey) isEdit() {}

type OpDeleteKey struct {
	Root RootKey
	Path string
}

func (OpDeleteKey) isEdit() {}

// RegParseOptions controls .reg import.
type RegParseOptions struct {
	// InputEncoding declares the .reg text encoding ("UTF-8", "UTF-16LE",
	// "WINDOWS-1252"). Empty means detect from the BOM and header.
	InputEncoding string

	// DefaultRoot anchors section paths that do not start with an HKEY name.
	DefaultRoot RootKey
}

// RegExportOptions controls .reg export.
type RegExportOptions struct {
	// OutputEncoding is "UTF-8" (default) or "UTF-16LE" (regedit.exe's format).
	OutputEncoding string
	WithBOM        bool
}
