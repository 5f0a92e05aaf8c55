package types

import "unicode/utf8"

// ============================================================================
// Windows Registry Limits Constants
// ============================================================================
// These constants define the documented limits imposed by the Windows
// Registry. Names are measured in characters, payloads in bytes.

const (
	// WindowsMaxKeyNameLen is the hard limit for a single key name segment.
	WindowsMaxKeyNameLen = 255

	// WindowsMaxKeyNameLenHalf is half the Windows limit, useful for
	// strict validation scenarios.
	WindowsMaxKeyNameLenHalf = 128

	// WindowsMaxValueNameLen is the hard limit for registry value names.
	WindowsMaxValueNameLen = 16383

	// WindowsMaxValueNameLenSmall is a much smaller limit for strict
	// validation scenarios.
	WindowsMaxValueNameLenSmall = 255

	// WindowsMaxValueSize1MB is the standard maximum size of a value payload.
	WindowsMaxValueSize1MB = 1 << 20

	// WindowsMaxValueSize10MB is a relaxed maximum for large payloads.
	WindowsMaxValueSize10MB = 10 << 20

	// WindowsMaxValueSize64KB is a conservative maximum for constrained
	// environments.
	WindowsMaxValueSize64KB = 64 << 10

	// WindowsMaxTreeDepthPractical is the practical nesting limit.
	WindowsMaxTreeDepthPractical = 512

	// WindowsMaxTreeDepthDeep allows very deep trees for special cases.
	WindowsMaxTreeDepthDeep = 1024

	// WindowsMaxTreeDepthShallow is a conservative nesting limit.
	WindowsMaxTreeDepthShallow = 128
)

// Limits defines the size checks the facade applies before touching the
// store. A zero field disables that check.
type Limits struct {
	// MaxKeyNameLen is the maximum length of one path segment in characters.
	MaxKeyNameLen int

	// MaxValueNameLen is the maximum length of a value name in characters.
	MaxValueNameLen int

	// MaxValueSize is the maximum encoded payload size in bytes
	// (UTF-16LE text including its terminator).
	MaxValueSize int

	// MaxTreeDepth is the maximum number of segments in a key path.
	MaxTreeDepth int
}

// DefaultLimits returns the standard Windows registry limits.
func DefaultLimits() Limits {
	return Limits{
		MaxKeyNameLen:   WindowsMaxKeyNameLen,
		MaxValueNameLen: WindowsMaxValueNameLen,
		MaxValueSize:    WindowsMaxValueSize1MB,
		MaxTreeDepth:    WindowsMaxTreeDepthPractical,
	}
}

// RelaxedLimits returns more permissive limits.
// Use with caution - these allow values that may not load on real Windows systems.
func RelaxedLimits() Limits {
	return Limits{
		MaxKeyNameLen:   WindowsMaxKeyNameLen,
		MaxValueNameLen: WindowsMaxValueNameLen,
		MaxValueSize:    WindowsMaxValueSize10MB,
		MaxTreeDepth:    WindowsMaxTreeDepthDeep,
	}
}

// StrictLimits returns conservative limits for constrained environments.
func StrictLimits() Limits {
	return Limits{
		MaxKeyNameLen:   WindowsMaxKeyNameLenHalf,
		MaxValueNameLen: WindowsMaxValueNameLenSmall,
		MaxValueSize:    WindowsMaxValueSize64KB,
		MaxTreeDepth:    WindowsMaxTreeDepthShallow,
	}
}

// CheckPath validates a normalized key path against the segment and depth limits.
func (l Limits) CheckPath(path string) error {
	segs := SplitPath(path)
	if l.MaxTreeDepth > 0 && len(segs) > l.MaxTreeDepth {
		return Errorf(ErrKindLimit, "key path depth %d exceeds %d", len(segs), l.MaxTreeDepth)
	}
	if l.MaxKeyNameLen > 0 {
		for _, s := range segs {
			if n := utf8.RuneCountInString(s); n > l.MaxKeyNameLen {
				return Errorf(ErrKindLimit, "key name %q is %d characters, limit %d", s, n, l.MaxKeyNameLen)
			}
		}
	}
	return nil
}

// CheckValue validates a value name and its encoded payload size.
func (l Limits) CheckValue(name string, size int) error {
	if l.MaxValueNameLen > 0 {
		if n := utf8.RuneCountInString(name); n > l.MaxValueNameLen {
			return Errorf(ErrKindLimit, "value name is %d characters, limit %d", n, l.MaxValueNameLen)
		}
	}
	if l.MaxValueSize > 0 && size > l.MaxValueSize {
		return Errorf(ErrKindLimit, "value %q is %d bytes, limit %d", name, size, l.MaxValueSize)
	}
	return nil
}
